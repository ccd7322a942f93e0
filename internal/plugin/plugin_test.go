package plugin

import (
	"testing"

	"github.com/stretchr/testify/require"
)

const sample = `
[[plugin]]
alias = "vivado"
command = "vivado"
args = ["-mode", "batch"]
description = "Xilinx Vivado synthesis flow"

[plugin.filesets]
xdc = "*.xdc"

[[plugin]]
alias = "modelsim"
command = "vsim"
`

func TestLoadParsesEveryPlugin(t *testing.T) {
	reg, err := Load([]byte(sample))
	require.NoError(t, err)
	require.Len(t, reg.List(), 2)
}

func TestGetReturnsNamedPlugin(t *testing.T) {
	reg, err := Load([]byte(sample))
	require.NoError(t, err)

	p, ok := reg.Get("vivado")
	require.True(t, ok)
	require.Equal(t, "vivado", p.Command)

	fsets := p.Filesets()
	require.Len(t, fsets, 1)
	require.Equal(t, "xdc", fsets[0].Name)
}

func TestListIsSortedByAlias(t *testing.T) {
	reg, err := Load([]byte(sample))
	require.NoError(t, err)

	list := reg.List()
	require.Equal(t, "modelsim", list[0].Alias)
	require.Equal(t, "vivado", list[1].Alias)
}

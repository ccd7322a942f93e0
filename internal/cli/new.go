package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

const entityTemplate = `entity %s is
end entity %s;

architecture rtl of %s is
begin
end architecture rtl;
`

var newCmd = &cobra.Command{
	Use:   "new <entity>",
	Short: "scaffold a new VHDL design unit file from a template",
	Args:  cobra.ExactArgs(1),
	RunE:  runNew,
}

func init() {
	rootCmd.AddCommand(newCmd)
}

func runNew(cmd *cobra.Command, args []string) error {
	name := args[0]
	dir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("orbit: %w", err)
	}
	path := filepath.Join(dir, name+".vhd")
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("orbit: %s already exists", path)
	}
	contents := fmt.Sprintf(entityTemplate, name, name, name)
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		return fmt.Errorf("orbit: write %s: %w", path, err)
	}
	log.WithField("file", path).Info("created")
	return nil
}

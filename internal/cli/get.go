package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hdlorbit/orbit/internal/vcs"
)

var (
	getVersion    string
	getDisableSSH bool
)

var getCmd = &cobra.Command{
	Use:   "get <url>",
	Short: "install an IP from its source URL into the local store",
	Args:  cobra.ExactArgs(1),
	RunE:  runGet,
}

func init() {
	rootCmd.AddCommand(getCmd)
	getCmd.Flags().StringVar(&getVersion, "version", "", "version tag to install")
	getCmd.Flags().BoolVar(&getDisableSSH, "disable-ssh", false, "rewrite ssh URLs to https")
}

func runGet(cmd *cobra.Command, args []string) error {
	_, rootDir, err := currentManifest()
	if err != nil {
		return err
	}
	cfg, err := loadConfig(rootDir)
	if err != nil {
		return err
	}

	url := args[0]
	if getDisableSSH {
		url = vcs.RewriteToHTTPS(url)
	}

	name := strings.TrimSuffix(filepath.Base(url), ".git")
	dir := filepath.Join(resolveStoreDir(cfg), fmt.Sprintf("%s-%s", name, getVersion))
	if err := (vcs.GitFetcher{}).Clone(url, getVersion, dir); err != nil {
		return err
	}
	log.WithField("dir", dir).Info("installed")
	return nil
}

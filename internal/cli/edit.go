package cli

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/spf13/cobra"

	"github.com/hdlorbit/orbit/internal/catalog"
)

var editPathOnly bool

var editCmd = &cobra.Command{
	Use:   "edit <ip>",
	Short: "open a development IP in $EDITOR, or print its path with --path",
	Args:  cobra.ExactArgs(1),
	RunE:  runEdit,
}

func init() {
	rootCmd.AddCommand(editCmd)
	editCmd.Flags().BoolVar(&editPathOnly, "path", false, "print the IP's path instead of opening an editor")
}

func runEdit(cmd *cobra.Command, args []string) error {
	_, rootDir, err := currentManifest()
	if err != nil {
		return err
	}
	cfg, err := loadConfig(rootDir)
	if err != nil {
		return err
	}

	cat, err := catalog.New().WithDevelopment(cfg.Env.PathDevelopment)
	if err != nil {
		return err
	}
	statuses := cat.Get(args[0])
	var dir string
	for _, s := range statuses {
		if s.Source == catalog.Development {
			dir = s.Dir
			break
		}
	}
	if dir == "" {
		return fmt.Errorf("orbit: %q is not a development IP", args[0])
	}

	if editPathOnly {
		fmt.Println(dir)
		return nil
	}

	editor := cfg.Core.Editor
	if editor == "" {
		editor = os.Getenv("EDITOR")
	}
	if editor == "" {
		return fmt.Errorf("orbit: no editor configured; set core.editor or $EDITOR")
	}

	c := exec.Command(editor, dir)
	c.Stdin, c.Stdout, c.Stderr = os.Stdin, os.Stdout, os.Stderr
	return c.Run()
}

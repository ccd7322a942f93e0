package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/hdlorbit/orbit/internal/environment"
)

var envBuildDir string

var envCmd = &cobra.Command{
	Use:   "env [key...]",
	Short: "print ORBIT_* environment variables from the current build directory's .env",
	RunE:  runEnv,
}

func init() {
	rootCmd.AddCommand(envCmd)
	envCmd.Flags().StringVar(&envBuildDir, "build-dir", "", "build directory to read .env from")
}

func runEnv(cmd *cobra.Command, args []string) error {
	_, rootDir, err := currentManifest()
	if err != nil {
		return err
	}
	cfg, err := loadConfig(rootDir)
	if err != nil {
		return err
	}
	buildDir := resolveBuildDir(envBuildDir, cfg)
	if !filepath.IsAbs(buildDir) {
		buildDir = filepath.Join(rootDir, buildDir)
	}

	env, err := environment.Load(buildDir)
	if err != nil {
		return err
	}

	if len(args) == 0 {
		for _, k := range env.SortedKeys() {
			v, _ := env.Get(k)
			fmt.Printf("%s=%q\n", k, v)
		}
		return nil
	}
	for _, k := range args {
		v, _ := env.Get(k)
		fmt.Println(v)
	}
	return nil
}

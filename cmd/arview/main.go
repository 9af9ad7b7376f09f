package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"arview/internal/config"
	"arview/internal/logging"
	"arview/internal/viewer"
)

func main() {
	// Change working directory to executable location for deployed
	// builds, so shader assets resolve. Skip for "go run", which puts
	// the binary in a temp directory.
	if execPath, err := os.Executable(); err == nil {
		execDir := filepath.Dir(execPath)
		if !strings.Contains(execDir, "go-build") {
			os.Chdir(execDir)
		}
	}

	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		configPath string
		assetPath  string
	)

	cmd := &cobra.Command{
		Use:   "arview",
		Short: "AR-style model viewer with surface detection and placement",
		Long: `arview renders a 3D model with an orbit preview camera and, in AR
mode, detects surfaces and places copies of the model where you aim.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if assetPath != "" {
				cfg.Model.Asset = assetPath
			}

			log := logging.New(logging.ParseLevel(cfg.LogLevel))
			return viewer.New(cfg, log).Run()
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "path to a YAML config file")
	cmd.Flags().StringVarP(&assetPath, "asset", "a", "", "model file to load (overrides config)")
	return cmd
}

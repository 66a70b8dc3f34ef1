// Package main provides the careernav command line tool and HTTP API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/Surya0265/CareerNav/internal/config"
	"github.com/Surya0265/CareerNav/internal/logger"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

// app carries state shared by every subcommand once the root command has
// loaded configuration.
type app struct {
	v       *viper.Viper
	cfgFile string
	cfg     *config.Config
	log     *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{v: config.NewViper()}

	rootCmd := &cobra.Command{
		Use:   "careernav",
		Short: "Resume text extraction and skill analysis",
		Long: "careernav extracts contact details, skills, keywords and experience and project entries " +
			"from resumes, either from the command line or through a REST API.",
		SilenceUsage:      true,
		PersistentPreRunE: a.load,
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if a.log != nil {
				_ = a.log.Sync()
			}
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (yaml, json or toml)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug logging")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")
	rootCmd.PersistentFlags().String("taxonomy", "", "JSON skill taxonomy replacing the built-in catalog")
	_ = a.v.BindPFlag("log.debug", rootCmd.PersistentFlags().Lookup("debug"))
	_ = a.v.BindPFlag("log.json", rootCmd.PersistentFlags().Lookup("json"))
	_ = a.v.BindPFlag("extraction.taxonomy-file", rootCmd.PersistentFlags().Lookup("taxonomy"))

	rootCmd.AddCommand(
		newExtractCmd(a),
		newSkillsCmd(a),
		newValidateCmd(),
		newServeCmd(a),
		newVersionCmd(),
	)
	return rootCmd
}

// load reads configuration and builds the logger.
func (a *app) load(_ *cobra.Command, _ []string) error {
	cfg, err := config.LoadWith(a.v, a.cfgFile)
	if err != nil {
		return err
	}
	log, err := logger.New(cfg.Log.JSON, cfg.Log.Debug)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	a.cfg = cfg
	a.log = log
	return nil
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

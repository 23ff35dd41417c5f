package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/kozaktomas/physiognomy/internal/config"
	"github.com/kozaktomas/physiognomy/internal/log"
)

var rootCmd = &cobra.Command{
	Use:   "physiognomy",
	Short: "Rule-based facial trait analysis from face landmarks",
	Long: `Physiognomy evaluates named face landmarks against a declarative rule
catalog and reports matched traits per facial region (the three thirds and
the five features). It can also render landmark overlays and produce a
narrative reading through Gemini or OpenAI.`,
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().String("catalog", "", "Rule catalog YAML (defaults to CATALOG_PATH or the embedded catalog)")
	rootCmd.PersistentFlags().Bool("strict", false, "Reject rules that reference unknown metrics (the embedded catalog has inert an_duong rules, so this needs a complete --catalog)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error (defaults to LOG_LEVEL)")
}

func initConfig() {
	// .env file is optional, don't fail if not found
	_ = godotenv.Load()

	cfg := config.Load()
	level := cfg.Log.Level
	if l, _ := rootCmd.PersistentFlags().GetString("log-level"); l != "" {
		level = l
	}
	log.Init(log.Options{Level: level, File: cfg.Log.File, Env: cfg.Log.Env})
}

// loadConfig reads the environment and applies the persistent flags that
// override it.
func loadConfig(cmd *cobra.Command) *config.Config {
	cfg := config.Load()
	if path := mustGetString(cmd, "catalog"); path != "" {
		cfg.Catalog.Path = path
	}
	if cmd.Flags().Changed("strict") {
		cfg.Catalog.Strict = mustGetBool(cmd, "strict")
	}
	return cfg
}

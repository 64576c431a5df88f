// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the diagdiff CLI. It reads an integer
// matrix and prints the absolute difference between its diagonal sums.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/pdiddy/diagdiff/internal/logging"
	"github.com/pdiddy/diagdiff/internal/output"
	"github.com/pdiddy/diagdiff/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd computes the diagonal difference of the input matrix.
var rootCmd = &cobra.Command{
	Use:   "diagdiff [file]",
	Short: "Absolute difference between the diagonal sums of an integer matrix",
	Long: `diagdiff reads a row count n followed by n lines of whitespace-separated
integers and writes |primary diagonal sum - secondary diagonal sum|.

Input comes from the named file, or stdin when no file or "-" is given.
The result goes to the file named by OUTPUT_PATH (or --output), or stdout.

Only rows as long as the widest row take part in the sums; shorter rows are
skipped. Use --strict to require a square matrix instead.`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Configure(logging.Config{
			Level:   viper.GetString("log.level"),
			Console: viper.GetBool("log.console"),
		})
	},
	RunE: runCompute,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: diagdiff.yaml in . or ~/.config/diagdiff)")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error (default: $LOG_LEVEL, else warn)")
	rootCmd.PersistentFlags().Bool("log-console", false, "human-readable log lines instead of JSON")
	rootCmd.PersistentFlags().String("history-dir", ".diagdiff", "directory containing history.db")

	mustBind("log.level", rootCmd.PersistentFlags().Lookup("log-level"))
	mustBind("log.console", rootCmd.PersistentFlags().Lookup("log-console"))
	mustBind("history.dir", rootCmd.PersistentFlags().Lookup("history-dir"))
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("diagdiff")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "diagdiff"))
		}
	}

	viper.SetEnvPrefix("DIAGDIFF")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	_ = viper.BindEnv("output.path", "DIAGDIFF_OUTPUT_PATH", output.EnvPath)

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadConfig assembles the effective configuration from flags, env, and file.
func loadConfig() types.Config {
	cfg := types.Config{
		Compute: types.ComputeConfig{
			InputFormat: types.InputFormat(viper.GetString("compute.input_format")),
			Mode:        types.Mode(viper.GetString("compute.mode")),
		},
		Output: types.OutputConfig{
			Path:   viper.GetString("output.path"),
			Format: types.OutputFormat(viper.GetString("output.format")),
		},
		History: types.HistoryConfig{
			Enabled:    viper.GetBool("history.enabled"),
			Dir:        viper.GetString("history.dir"),
			MaxResults: viper.GetInt("history.max_results"),
		},
		Log: types.LogConfig{
			Level: viper.GetString("log.level"),
		},
	}
	if viper.GetBool("compute.strict") {
		cfg.Compute.Mode = types.ModeStrict
	}
	return cfg
}

// mustBind binds a config key to a registered flag.
func mustBind(key string, f *pflag.Flag) {
	if f == nil {
		panic(fmt.Sprintf("flag for %s not registered", key))
	}
	if err := viper.BindPFlag(key, f); err != nil {
		panic(err)
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

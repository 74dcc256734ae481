package main

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	appLog "github.com/charlcd/hd44780/internal/log"
)

var (
	configPath string
	logLevel   string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "hd44780ctl",
	Short: "Drive an HD44780 character LCD wired to GPIO pins.",
	Long: `hd44780ctl writes text, a clock or a walking custom glyph to an HD44780 ` +
		`character LCD in 4-bit mode. Pins, geometry and glyphs are read from the config ` +
		`file, which is created with defaults on first use.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return appLog.SetLevel(logLevel)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", defaultConfigPath(), "path to the YAML config")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "debug, info, warn or error")
}

func defaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "hd44780ctl.yaml"
	}
	return filepath.Join(dir, "hd44780ctl", "config.yaml")
}

// Execute adds all child commands to the root command and sets flags
// appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

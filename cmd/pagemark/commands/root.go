// Package commands implements the CLI commands for pagemark.
package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "pagemark",
	Short: "Convert web pages to LLM-friendly Markdown",
	Long: `Pagemark converts HTML documents into simplified Markdown suitable
for language model consumption.

Point it at a URL or a local file and get clean Markdown with optional
links, images, and a front matter metadata block.

Examples:
  # Convert a page, text only
  pagemark convert https://example.com/article

  # Keep links and images, add front matter
  pagemark convert --links --images --metadata https://example.com

  # Convert a local file to JSON (markdown + stats)
  pagemark convert -f page.html --format json

  # JavaScript-rendered pages
  pagemark convert --fetch-mode dynamic https://example.com/app`,
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().String("config", "", "config file (default $HOME/.pagemark.yaml)")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "suppress progress output")

	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	_ = viper.BindPFlag("quiet", rootCmd.PersistentFlags().Lookup("quiet"))
}

func initConfig() {
	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}
		viper.AddConfigPath(".")
		viper.SetConfigName(".pagemark")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("PAGEMARK")
	viper.AutomaticEnv()

	// Read config file (ignore error if not found)
	_ = viper.ReadInConfig()
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// logError prints an error message to stderr.
func logError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
}

// logInfo prints an info message to stderr (unless quiet mode).
func logInfo(format string, args ...any) {
	if !viper.GetBool("quiet") {
		fmt.Fprintf(os.Stderr, format+"\n", args...)
	}
}

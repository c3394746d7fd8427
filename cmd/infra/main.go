package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/fivetwenty-io/infra-client/cmd/infra/commands"
	"github.com/fivetwenty-io/infra-client/internal/constants"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "infra",
	Short: "Signed financial API CLI",
	Long: `A command-line interface for the card issuing and instant payment API.

Requests are signed with the private key of a project or organization.
Configure one with 'infra config set' or the INFRA_* environment variables.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringP("config", "c", "", "config file (default is $HOME/.infra/config.yml)")
	rootCmd.PersistentFlags().String("project-id", "", "project ID to sign requests as")
	rootCmd.PersistentFlags().String("organization-id", "", "organization ID to sign requests as")
	rootCmd.PersistentFlags().String("workspace-id", "", "workspace acted on by an organization")
	rootCmd.PersistentFlags().String("private-key-file", "", "PEM file holding the signing key")
	rootCmd.PersistentFlags().StringP("environment", "e", "sandbox", "API environment (sandbox, production)")
	rootCmd.PersistentFlags().String("host", "", "API base URL override")
	rootCmd.PersistentFlags().String("language", constants.DefaultLanguage, "answer language (en-US, pt-BR)")
	rootCmd.PersistentFlags().Int("retries", 0, "retries for connection errors and 5xx answers")
	rootCmd.PersistentFlags().String("output", "", "output format (table, json, yaml); table on terminals, json otherwise")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "log HTTP requests to stderr")
	rootCmd.PersistentFlags().String("bookmark-store", "", "bookmark store (memory, nats, none)")
	rootCmd.PersistentFlags().Duration("bookmark-ttl", constants.BookmarkTTL, "how long stored bookmarks are kept")
	rootCmd.PersistentFlags().String("nats-url", "", "NATS server for shared bookmarks")
	rootCmd.PersistentFlags().String("nats-bucket", constants.DefaultBookmarkBucket, "NATS key-value bucket for bookmarks")
	rootCmd.PersistentFlags().Bool("seal", false, "encrypt stored cursors with a passphrase")

	// Bind flags to viper
	for _, name := range []string{
		"config", "project-id", "organization-id", "workspace-id", "private-key-file",
		"environment", "host", "language", "retries", "output", "verbose",
		"bookmark-store", "bookmark-ttl", "nats-url", "nats-bucket", "seal",
	} {
		_ = viper.BindPFlag(name, rootCmd.PersistentFlags().Lookup(name))
	}

	// Add commands
	rootCmd.AddCommand(commands.NewVersionCommand(version, commit, date))
	rootCmd.AddCommand(commands.NewConfigCommand())
	rootCmd.AddCommand(commands.NewKeygenCommand())
	rootCmd.AddCommand(commands.NewBalanceCommand())
	rootCmd.AddCommand(commands.NewCardsCommand())
	rootCmd.AddCommand(commands.NewLogsCommand())
	rootCmd.AddCommand(commands.NewCountriesCommand())
	rootCmd.AddCommand(commands.NewPageCommand())
}

func initConfig() {
	cfgFile := viper.GetString("config")

	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		// Search config in ~/.infra/config.yml
		viper.AddConfigPath(filepath.Join(home, ".infra"))
		viper.SetConfigType("yml")
		viper.SetConfigName("config")
	}

	// Read in environment variables that match, e.g. INFRA_PROJECT_ID
	viper.SetEnvPrefix("INFRA")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	// If a config file is found, read it in
	if err := viper.ReadInConfig(); err == nil {
		if viper.GetBool("verbose") {
			fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
		}
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := rootCmd.ExecuteContext(ctx)

	stop()

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

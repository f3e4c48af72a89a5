package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Config holds settings shared by every subcommand
type Config struct {
	ServerURL string
	Token     string
	Output    string
}

// DefaultConfig reads PLAYERADMIN_SERVER and PLAYERADMIN_TOKEN
func DefaultConfig() *Config {
	server := os.Getenv("PLAYERADMIN_SERVER")
	if server == "" {
		server = "http://localhost:8080"
	}
	return &Config{
		ServerURL: server,
		Token:     os.Getenv("PLAYERADMIN_TOKEN"),
		Output:    "text",
	}
}

var (
	cfg    *Config
	client *Client
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cfg = DefaultConfig()

	rootCmd := &cobra.Command{
		Use:   "playeradmin",
		Short: "CLI tool for the player admin API",
		Long: `playeradmin is a CLI tool for the player admin JSON API.

It lists, counts, creates, updates and deletes players, seeds random demo
players and produces admin password hashes for the server.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cfg.Output != "text" && cfg.Output != "json" {
				return fmt.Errorf("unknown output format %q", cfg.Output)
			}
			client = NewClient(cfg.ServerURL, cfg.Token)
			return nil
		},
		SilenceUsage: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfg.ServerURL, "server", cfg.ServerURL, "Server URL (env: PLAYERADMIN_SERVER)")
	flags.StringVar(&cfg.Token, "token", cfg.Token, "Admin password (env: PLAYERADMIN_TOKEN)")
	flags.StringVarP(&cfg.Output, "output", "o", cfg.Output, "Output format: text, json")

	rootCmd.AddCommand(
		newPlayersCmd(),
		newSeedCmd(),
		newHealthCmd(),
		newHashPasswordCmd(),
	)

	return rootCmd
}

func newHealthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check server health",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := client.Health(cmd.Context())
			if err != nil {
				return err
			}
			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

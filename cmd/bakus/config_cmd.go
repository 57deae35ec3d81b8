package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Nomadcxx/bakus/internal/config"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage bakus configuration",
		Long: `Commands for managing bakus configuration.

The config file is stored at: ~/.config/bakus/config.toml

Examples:
  bakus config init              # Create default config file
  bakus config init --api-token  # Also generate a token for the local API
  bakus config show              # Display current configuration
  bakus config path              # Show config file path`,
	}

	cmd.AddCommand(newConfigInitCmd())
	cmd.AddCommand(newConfigShowCmd())
	cmd.AddCommand(newConfigPathCmd())

	return cmd
}

func configFilePath() (string, error) {
	if cfgFile != "" {
		return cfgFile, nil
	}
	return config.ConfigPath()
}

func newConfigInitCmd() *cobra.Command {
	var (
		force    bool
		apiToken bool
		server   string
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create default configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := configFilePath()
			if err != nil {
				return err
			}
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("config already exists at %s (use --force to overwrite)", path)
			}

			cfg := config.DefaultConfig()
			if server != "" {
				cfg.Server.URL = server
			}
			if apiToken {
				token, err := config.GenerateAPIToken()
				if err != nil {
					return err
				}
				cfg.API.Token = token
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			if err := cfg.Save(path); err != nil {
				return fmt.Errorf("failed to save config: %w", err)
			}

			fmt.Printf("✓ Created config file: %s\n", path)
			fmt.Println("\nNext steps:")
			fmt.Println("  1. Check server.url points at your Bakus server")
			fmt.Println("  2. Run 'bakus login'")
			fmt.Println("  3. Run 'bakus additions' to see your downloads")
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite existing config file")
	cmd.Flags().BoolVar(&apiToken, "api-token", false, "generate a token guarding the local API")
	cmd.Flags().StringVar(&server, "server", "", "Bakus server URL")

	return cmd
}

func newConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Display current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgFile)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			path, _ := configFilePath()
			if _, err := os.Stat(path); err != nil {
				fmt.Printf("Config file: %s (not found, showing defaults)\n\n", path)
			} else {
				fmt.Printf("Config file: %s\n\n", path)
			}

			shown := *cfg
			shown.API.Token = maskToken(cfg.API.Token)
			out, err := shown.ToTOML()
			if err != nil {
				return err
			}
			fmt.Print(out)
			return nil
		},
	}
}

func newConfigPathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Show config file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := configFilePath()
			if err != nil {
				return err
			}
			fmt.Println(path)
			return nil
		},
	}
}

// maskToken keeps the first and last four characters of a token
func maskToken(token string) string {
	if token == "" {
		return ""
	}
	if len(token) <= 8 {
		return "****"
	}
	return token[:4] + "..." + token[len(token)-4:]
}

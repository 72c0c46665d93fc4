package main

import (
	"fmt"
	"os"
	"path/filepath"

	"eurlexscraper/pkg/config"
	"eurlexscraper/pkg/ui"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

const defaultConfigPath = "eurlexscraper.yaml"

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration files",
	Long: `Manage EUR-Lex Scraper configuration files.

Configuration can be loaded from:
  - Command line flags (highest priority)
  - Environment variables (EURLEX_*, PORT)
  - .env file in the working directory
  - Configuration file
  - Default values (lowest priority)`,
}

// initCmd represents the config init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create an example configuration file",
	Long: `Create an example configuration file holding the default values.

The file will be created in the current directory as 'eurlexscraper.yaml'
unless a different path is specified with the --config flag.`,
	Args: cobra.NoArgs,
	RunE: runConfigInit,
}

// showCmd represents the config show command
var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Long: `Show the effective configuration after merging every source:
  - Environment variables
  - Configuration file
  - Default values`,
	Args: cobra.NoArgs,
	RunE: runConfigShow,
}

// validateCmd represents the config validate command
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate configuration file",
	Long: `Validate a configuration file for syntax errors and invalid values.

This command checks:
  - YAML syntax
  - Port range and date formats
  - Log level and format
  - Log file and static directory accessibility`,
	Args: cobra.NoArgs,
	RunE: runConfigValidate,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(initCmd)
	configCmd.AddCommand(showCmd)
	configCmd.AddCommand(validateCmd)
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	configPath := configFile
	if configPath == "" {
		configPath = defaultConfigPath
	}

	if _, err := os.Stat(configPath); err == nil {
		ui.PrintError("Configuration file already exists", configPath)
		return fmt.Errorf("remove %s first to overwrite it", configPath)
	}

	if err := config.DefaultConfig().Save(configPath); err != nil {
		return err
	}

	ui.PrintSuccess("Configuration file created: " + configPath)
	fmt.Fprintln(cmd.ErrOrStderr(), "\nNext steps:")
	fmt.Fprintln(cmd.ErrOrStderr(), "1. Edit the search query and date range")
	fmt.Fprintln(cmd.ErrOrStderr(), "2. Run 'eurlexscraper config validate' to check the configuration")
	fmt.Fprintln(cmd.ErrOrStderr(), "3. Start the service with 'eurlexscraper serve'")
	return nil
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configFile, nil)
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to format configuration: %w", err)
	}

	ui.PrintHighlight("Current Configuration")
	fmt.Fprint(cmd.OutOrStdout(), string(data))

	fmt.Fprintln(cmd.ErrOrStderr(), "\nConfiguration sources (in order of priority):")
	fmt.Fprintln(cmd.ErrOrStderr(), "1. Command line flags")
	fmt.Fprintln(cmd.ErrOrStderr(), "2. Environment variables (EURLEX_*, PORT)")
	fmt.Fprintln(cmd.ErrOrStderr(), "3. .env file")
	if configFile != "" {
		fmt.Fprintf(cmd.ErrOrStderr(), "4. Configuration file: %s\n", configFile)
	} else {
		fmt.Fprintln(cmd.ErrOrStderr(), "4. Configuration file: (searched in default locations)")
	}
	fmt.Fprintln(cmd.ErrOrStderr(), "5. Default values")
	return nil
}

func runConfigValidate(cmd *cobra.Command, args []string) error {
	path := configFile
	if path == "" {
		for _, candidate := range []string{
			defaultConfigPath,
			"eurlexscraper.yml",
			filepath.Join(os.Getenv("HOME"), ".config", "eurlexscraper", "config.yaml"),
		} {
			if _, err := os.Stat(candidate); err == nil {
				path = candidate
				break
			}
		}
		if path == "" {
			ui.PrintError("No configuration file found", "Specify a file with --config flag")
			return fmt.Errorf("no configuration file found")
		}
	}

	ui.PrintInfo("Validating configuration", path)

	cfg, err := config.Load(path, nil)
	if err != nil {
		ui.PrintError("Configuration validation failed", err.Error())
		return err
	}

	warnings := []string{}
	problems := []string{}

	if cfg.Logging.File != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.Logging.File), 0755); err != nil {
			problems = append(problems, fmt.Sprintf("Cannot create log directory: %v", err))
		}
	}
	if info, err := os.Stat(cfg.Server.StaticDir); err != nil || !info.IsDir() {
		warnings = append(warnings, fmt.Sprintf("Static directory %q not found, built-in pages will be served", cfg.Server.StaticDir))
	}
	if cfg.Search.MaxPages == 0 {
		warnings = append(warnings, "max_pages is 0, pagination is unbounded")
	}
	if cfg.Search.DateFrom > cfg.Search.DateTo {
		warnings = append(warnings, "date_from is after date_to, the search will return nothing")
	}

	if len(problems) > 0 {
		ui.PrintError("Configuration has errors:")
		for _, p := range problems {
			fmt.Fprintf(cmd.ErrOrStderr(), "  - %s\n", p)
		}
		return fmt.Errorf("configuration has %d errors", len(problems))
	}

	if len(warnings) > 0 {
		ui.PrintWarning("Configuration warnings:")
		for _, w := range warnings {
			fmt.Fprintf(cmd.ErrOrStderr(), "  - %s\n", w)
		}
	}

	ui.PrintSuccess("Configuration is valid")

	fmt.Fprintln(cmd.ErrOrStderr(), "\nConfiguration summary:")
	fmt.Fprintf(cmd.ErrOrStderr(), "  Port: %d\n", cfg.Server.Port)
	fmt.Fprintf(cmd.ErrOrStderr(), "  Query: %s\n", cfg.Search.Query)
	fmt.Fprintf(cmd.ErrOrStderr(), "  Period: %s to %s\n", cfg.Search.DateFrom, cfg.Search.DateTo)
	fmt.Fprintf(cmd.ErrOrStderr(), "  Max pages: %d\n", cfg.Search.MaxPages)
	fmt.Fprintf(cmd.ErrOrStderr(), "  Log level: %s\n", cfg.Logging.Level)
	return nil
}

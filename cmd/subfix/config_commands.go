package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"subfix/internal/config"
)

func newConfigCommand() *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration utilities",
	}

	configCmd.AddCommand(newConfigInitCommand())
	configCmd.AddCommand(newConfigShowCommand())

	return configCmd
}

func newConfigInitCommand() *cobra.Command {
	var targetPath string
	var overwrite bool

	cmd := &cobra.Command{
		Use:         "init",
		Short:       "Create a sample configuration file",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			target := strings.TrimSpace(targetPath)
			if target == "" {
				defaultPath, err := config.DefaultConfigPath()
				if err != nil {
					return fmt.Errorf("determine default config path: %w", err)
				}
				target = defaultPath
			} else {
				expanded, err := config.ExpandPath(target)
				if err != nil {
					return fmt.Errorf("resolve config path: %w", err)
				}
				target = expanded
			}

			dir := filepath.Dir(target)
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("create config directory %q: %w", dir, err)
			}

			if !overwrite {
				if _, err := os.Stat(target); err == nil {
					return fmt.Errorf("config file already exists at %s (use --overwrite to replace it)", target)
				} else if err != nil && !os.IsNotExist(err) {
					return fmt.Errorf("check config path: %w", err)
				}
			}

			if err := config.CreateSample(target); err != nil {
				return fmt.Errorf("create sample config: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Wrote sample configuration to %s\n", target)
			return nil
		},
	}

	cmd.Flags().StringVarP(&targetPath, "path", "p", "", "Destination for the configuration file")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Overwrite existing configuration if present")
	return cmd
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:         "show",
		Short:       "Show the resolved configuration",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, path, exists, err := config.Load("")
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Config path: %s\n", path)
			if !exists {
				fmt.Fprintln(out, "Config file did not exist; defaults were used")
			}
			fmt.Fprintf(out, "Language: %s\n", cfg.Defaults.Language)
			fmt.Fprintf(out, "Content type: %s\n", cfg.Defaults.ContentType)
			fmt.Fprintf(out, "SDH mode: %s\n", yesNo(cfg.Defaults.SDHMode))
			fmt.Fprintf(out, "Remove SDH: %s\n", yesNo(cfg.Defaults.RemoveSDH))
			fmt.Fprintf(out, "Punct fix: %s\n", yesNo(cfg.Defaults.PunctFix))
			fmt.Fprintf(out, "Check speed: %s\n", yesNo(cfg.Defaults.CheckSpeed))
			fmt.Fprintf(out, "Output suffix: %s\n", cfg.Defaults.OutputSuffix)
			fmt.Fprintf(out, "Violation suffix: %s\n", cfg.Defaults.ViolationSuffix)
			fmt.Fprintf(out, "Log level: %s\n", cfg.Logging.Level)
			fmt.Fprintf(out, "Log format: %s\n", cfg.Logging.Format)
			fmt.Fprintf(out, "History enabled: %s\n", yesNo(cfg.History.Enabled))
			fmt.Fprintf(out, "History path: %s\n", cfg.History.Path)
			fmt.Fprintf(out, "Batch workers: %d\n", cfg.Batch.Workers)
			fmt.Fprintf(out, "Batch lock file: %s\n", cfg.Batch.LockFile)
			return nil
		},
	}
}

package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sdejongh/dirdiff/pkg/config"
)

// NewConfigCommand creates the config command
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration",
		Long:  `View or create the dirdiff configuration file.`,
	}

	cmd.AddCommand(newConfigShowCommand())
	cmd.AddCommand(newConfigInitCommand())

	return cmd
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			maxDepth := "unlimited"
			if cfg.Filter.MaxDepth != nil {
				maxDepth = fmt.Sprintf("%d", *cfg.Filter.MaxDepth)
			}

			fmt.Fprintf(w, "Method: %s\n", cfg.Report.Method)
			fmt.Fprintf(w, "Context Lines: %d\n", cfg.Report.ContextLines)
			fmt.Fprintf(w, "Tag Directories: %t\n", cfg.Report.TagDirectories)
			fmt.Fprintf(w, "Ignore: %s\n", strings.Join(cfg.Filter.Ignore, ", "))
			fmt.Fprintf(w, "Shallow Ignore: %s\n", strings.Join(cfg.Filter.ShallowIgnore, ", "))
			fmt.Fprintf(w, "Include: %s\n", strings.Join(cfg.Filter.Include, ", "))
			fmt.Fprintf(w, "Max Depth: %s\n", maxDepth)
			fmt.Fprintf(w, "Strategy: %s\n", cfg.Performance.Strategy)
			fmt.Fprintf(w, "Concurrent Scan: %t\n", cfg.Performance.ConcurrentScan)
			fmt.Fprintf(w, "Output Format: %s\n", cfg.Output.Format)
			fmt.Fprintf(w, "Log Format: %s\n", cfg.Logging.Format)
			fmt.Fprintf(w, "Log Level: %s\n", cfg.Logging.Level)

			return nil
		},
	}
}

func newConfigInitCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create default configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := globalFlags.ConfigFile
			if path == "" {
				var err error
				if path, err = config.DefaultConfigPath(); err != nil {
					return err
				}
			}

			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("configuration file already exists: %s (use --force to overwrite)", path)
			}

			cfg := config.Default()
			if err := config.SaveToFile(cfg, path); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Configuration file created at: %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing configuration file")

	return cmd
}

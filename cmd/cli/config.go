package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/anstrom/portmerge/internal/config"
	"github.com/anstrom/portmerge/internal/errors"
)

const defaultConfigPath = "config.yaml"

var forceInit bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the portmerge configuration",
	Long: `Configuration is read from ./config.yaml (or --config), PORTMERGE_*
environment variables, a .env file in the working directory and command-line
flags, in increasing order of precedence.`,
}

var configInitCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write a configuration file with default values",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := defaultConfigPath
		if len(args) > 0 {
			path = args[0]
		}
		if err := initConfigFile(path, forceInit); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Configuration written to %s\n", path)
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration as YAML",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		data, err := yaml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("failed to marshal config: %w", err)
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

func init() {
	configInitCmd.Flags().BoolVarP(&forceInit, "force", "f", false, "overwrite an existing file")

	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
	rootCmd.AddCommand(configCmd)
}

// initConfigFile writes the default configuration to path. An existing file
// is kept unless force is set.
func initConfigFile(path string, force bool) error {
	if path == "" {
		return errors.ErrConfigMissing("path")
	}
	if _, err := os.Stat(path); err == nil && !force {
		return errors.NewConfigFieldError(errors.CodeConfiguration,
			"Configuration file already exists, use --force to overwrite", "path", path)
	}
	return config.Default().Save(path)
}

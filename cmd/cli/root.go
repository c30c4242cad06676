// Package cli provides the command-line interface of portmerge.
// It implements the Cobra-based command tree: the merge run, which is also
// the default action, and configuration file management.
package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/anstrom/portmerge/internal/config"
	"github.com/anstrom/portmerge/internal/errors"
	"github.com/anstrom/portmerge/internal/logging"
)

const (
	envPrefix = "PORTMERGE"
	envFile   = ".env"
)

var (
	cfgFile string
	verbose bool

	// Negated display switches, applied after the configuration is decoded.
	noBanner   bool
	noUnicode  bool
	noProgress bool
)

// Build information - these will be set by ldflags during build.
var (
	version   = "dev"
	commit    = "none"
	buildTime = "unknown"
)

// flagKeys maps command-line flags to configuration keys.
var flagKeys = map[string]string{
	"scan-dir":         "input.scan_dir",
	"pattern":          "input.scan_pattern",
	"table":            "input.table",
	"encoding":         "input.fallback_encodings",
	"output":           "output.path",
	"format":           "output.format",
	"sheet":            "output.sheet",
	"merged-xml":       "output.merged_xml",
	"print":            "output.print",
	"extra-ports":      "risk.extra_ports",
	"extra-services":   "risk.extra_services",
	"log-level":        "logging.level",
	"log-file":         "logging.output",
	"color":            "display.color",
	"margin":           "display.margin",
	"pad":              "display.padding",
	"metrics-textfile": "metrics.textfile",
}

// rootCmd represents the base command; without a subcommand it runs a merge.
var rootCmd = &cobra.Command{
	Use:   "portmerge",
	Short: "Merge nmap scans and a port inventory into a survey table",
	Long: `portmerge merges every nmap XML document found in a directory, combines
the open ports it reports with an inventory table (xlsx, csv or tsv),
removes duplicates, flags ports that must not be exposed and writes the
result as a styled survey workbook.`,
	Version:      getVersion(),
	SilenceUsage: true,
	Args:         cobra.NoArgs,
	RunE:         runMerge,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(exitCode(err))
	}
}

// exitCode maps a command error to the process status: 2 when the run could
// not produce anything or the configuration is unusable, 1 otherwise.
func exitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.IsFatal(err):
		return 2
	default:
		return 1
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	flags.BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	addRunFlags(flags, config.Default())

	for name, key := range flagKeys {
		if err := viper.BindPFlag(key, flags.Lookup(name)); err != nil {
			logging.Warn("Failed to bind flag", "flag", name, "error", err)
		}
	}
}

// addRunFlags registers the flags that override configuration values. Their
// defaults mirror def so an unset flag never masks the config file.
func addRunFlags(flags *pflag.FlagSet, def *config.Config) {
	flags.String("scan-dir", def.Input.ScanDir, "directory searched for nmap XML documents")
	flags.String("pattern", def.Input.ScanPattern, "file name pattern of scan documents")
	flags.String("table", def.Input.Table, "inventory table (xlsx, csv or tsv); empty disables it")
	flags.StringSlice("encoding", def.Input.FallbackEncodings, "encodings tried when a text table is not UTF-8")
	flags.StringP("output", "o", def.Output.Path, "survey table path")
	flags.String("format", def.Output.Format, "survey table format (xlsx, csv)")
	flags.String("sheet", def.Output.Sheet, "sheet name of the xlsx output")
	flags.String("merged-xml", def.Output.MergedXML, "merged scan document path; empty disables it")
	flags.Bool("print", def.Output.Print, "also print the records to the console")
	flags.StringSlice("extra-ports", nil, "additional dangerous ports")
	flags.StringSlice("extra-services", nil, "additional dangerous services")
	flags.String("log-level", def.Logging.Level, "log level (debug, info, warn, error)")
	flags.String("log-file", def.Logging.Output, "log destination (stdout, stderr or a file path)")
	flags.String("color", def.Display.Color, "colorize output (auto, always, never)")
	flags.Int("margin", def.Display.Margin, "spaces left of the banner")
	flags.Int("pad", def.Display.Padding, "spaces inside the banner box")
	flags.String("metrics-textfile", def.Metrics.Textfile, "write run metrics in Prometheus text format to this file")

	flags.BoolVar(&noBanner, "no-banner", false, "do not print the banner")
	flags.BoolVar(&noUnicode, "no-unicode", false, "draw the banner with ASCII characters")
	flags.BoolVar(&noProgress, "no-progress", false, "do not show progress bars")
}

// initConfig reads in .env, the config file and ENV variables if set.
func initConfig() {
	if _, err := os.Stat(envFile); err == nil {
		if err := godotenv.Load(envFile); err != nil {
			logging.Warn("Failed to load environment file", "path", envFile, "error", err)
		}
	}

	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Search for config in current directory
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	bindEnv()

	if err := setConfigDefaults(); err != nil {
		logging.Warn("Failed to set configuration defaults", "error", err)
	}

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		if verbose {
			logging.Info("Using config file", "path", viper.ConfigFileUsed())
		}
	} else if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound || cfgFile != "" {
		logging.Warn("Failed to read config file", "error", err)
	}
}

// bindEnv maps variables such as PORTMERGE_INPUT_SCAN_DIR onto config keys.
func bindEnv() {
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
}

// setConfigDefaults registers every key of config.Default with viper, so
// environment variables can reach keys absent from the config file.
func setConfigDefaults() error {
	data, err := yaml.Marshal(config.Default())
	if err != nil {
		return err
	}
	var tree map[string]any
	if err := yaml.Unmarshal(data, &tree); err != nil {
		return err
	}
	setDefaults("", tree)
	return nil
}

func setDefaults(prefix string, tree map[string]any) {
	for key, value := range tree {
		if prefix != "" {
			key = prefix + "." + key
		}
		if sub, ok := value.(map[string]any); ok {
			setDefaults(key, sub)
			continue
		}
		viper.SetDefault(key, value)
	}
}

// loadConfig decodes the effective configuration: flags over environment over
// config file over defaults.
func loadConfig() (*config.Config, error) {
	var cfg config.Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, errors.WrapConfigError(errors.CodeConfiguration, "Failed to decode configuration", err)
	}

	applyDisplaySwitches(&cfg)
	if verbose {
		cfg.Logging.Level = "debug"
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

func applyDisplaySwitches(cfg *config.Config) {
	if noBanner {
		cfg.Display.Banner = false
	}
	if noUnicode {
		cfg.Display.Unicode = false
	}
	if noProgress {
		cfg.Display.Progress = false
	}
}

// getVersion returns the version string.
func getVersion() string {
	return fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, buildTime)
}

// SetVersion sets the version information (called from main).
func SetVersion(v, c, bt string) {
	version = v
	commit = c
	buildTime = bt
	rootCmd.Version = getVersion()
}

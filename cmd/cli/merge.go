package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/anstrom/portmerge/internal/config"
	"github.com/anstrom/portmerge/internal/errors"
	"github.com/anstrom/portmerge/internal/export"
	"github.com/anstrom/portmerge/internal/logging"
	"github.com/anstrom/portmerge/internal/metrics"
	"github.com/anstrom/portmerge/internal/pipeline"
	"github.com/anstrom/portmerge/internal/progress"
)

var mergeCmd = &cobra.Command{
	Use:   "merge",
	Short: "Merge scan documents and the inventory table into the survey table",
	Long: `Merge discovers the nmap XML documents in the scan directory, merges them
into one document, extracts open ports from it and from the inventory table,
removes duplicate rows, flags dangerous ports and writes the survey table.

This is also what portmerge does when started without a command.`,
	Example: `  portmerge merge --scan-dir ./scans --table 开放端口.xlsx
  portmerge merge --format csv -o survey.csv --print
  portmerge --no-unicode --margin 2 --pad 1`,
	Args: cobra.NoArgs,
	RunE: runMerge,
}

func init() {
	rootCmd.AddCommand(mergeCmd)
}

func runMerge(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	return executeMerge(cfg, cmd.OutOrStdout())
}

// executeMerge performs one run with cfg, writing banner, console table and
// summary to out.
func executeMerge(cfg *config.Config, out io.Writer) error {
	useColor := colorEnabled(cfg.Display.Color, out)

	if cfg.Display.Banner {
		printBanner(out, bannerStyle{
			Unicode: cfg.Display.Unicode,
			Color:   useColor,
			Margin:  cfg.Display.Margin,
			Padding: cfg.Display.Padding,
		})
	}

	logger, err := logging.New(cfg.LogConfig())
	if err != nil {
		return errors.WrapConfigError(errors.CodeConfiguration, "Failed to initialize logging", err)
	}
	defer func() {
		if cerr := logger.Close(); cerr != nil {
			fmt.Fprintf(out, "Warning: failed to close log file: %v\n", cerr)
		}
	}()
	previous := logging.Default()
	logging.SetDefault(logger)
	defer logging.SetDefault(previous)

	var tracker progress.Tracker = progress.Nop{}
	if cfg.Display.Progress {
		tracker = newProgressTracker(out, useColor)
	}

	runMetrics := metrics.NewPrometheusMetrics()
	p := pipeline.New(pipelineOptions(cfg), logger.WithComponent("pipeline"),
		pipeline.WithMetrics(runMetrics),
		pipeline.WithProgress(tracker),
	)

	result, runErr := p.Run(buildSinks(cfg, out)...)

	if cfg.Metrics.Textfile != "" {
		if err := runMetrics.WriteTextfile(cfg.Metrics.Textfile); err != nil {
			logger.ErrorSource("Failed to write metrics textfile", cfg.Metrics.Textfile, err)
		}
	}

	printSummary(out, newPalette(useColor), cfg, result, logger.OutputPath(), runErr)
	return runErr
}

func pipelineOptions(cfg *config.Config) pipeline.Options {
	return pipeline.Options{
		ScanDir:           cfg.Input.ScanDir,
		ScanPattern:       cfg.Input.ScanPattern,
		TablePath:         cfg.Input.Table,
		FallbackEncodings: cfg.Input.FallbackEncodings,
		MergedXML:         cfg.Output.MergedXML,
		ExtraPorts:        cfg.Risk.ExtraPorts,
		ExtraServices:     cfg.Risk.ExtraServices,
	}
}

// buildSinks returns the survey table sink followed by the console sink
// when printing is enabled.
func buildSinks(cfg *config.Config, out io.Writer) []export.Sink {
	var sinks []export.Sink
	switch cfg.Output.Format {
	case config.FormatCSV:
		sinks = append(sinks, export.NewCSVSink(cfg.Output.Path))
	default:
		xlsx := export.NewXLSXSink(cfg.Output.Path)
		xlsx.Sheet = cfg.Output.Sheet
		sinks = append(sinks, xlsx)
	}
	if cfg.Output.Print {
		sinks = append(sinks, export.NewTableSink(out))
	}
	return sinks
}

func printSummary(out io.Writer, pal palette, cfg *config.Config, result *pipeline.Result, logPath string, runErr error) {
	fmt.Fprintln(out)
	if result == nil {
		fmt.Fprintf(out, "%s %v\n", pal.failed.Sprint("Merge failed:"), runErr)
		return
	}

	fmt.Fprintf(out, "%s %d scan document(s), %d table row(s), %d scan row(s)\n",
		pal.info.Sprint("Sources:"), len(result.Documents), result.TableRecords, result.ScanRecords)
	if result.Merge != nil && len(result.Merge.Failures) > 0 {
		fmt.Fprintf(out, "%s %d scan document(s) could not be parsed\n",
			pal.warn.Sprint("Warning:"), len(result.Merge.Failures))
	}
	if result.TableErr != nil {
		fmt.Fprintf(out, "%s table skipped: %v\n", pal.warn.Sprint("Warning:"), result.TableErr)
	}
	if result.MergedXML != "" {
		fmt.Fprintf(out, "%s %s\n", pal.info.Sprint("Merged document:"), result.MergedXML)
	}

	switch {
	case errors.IsCode(runErr, errors.CodeNoData):
		fmt.Fprintf(out, "%s no usable records found, nothing written\n", pal.failed.Sprint("Error:"))
	case runErr != nil:
		fmt.Fprintf(out, "%s %v\n", pal.failed.Sprint("Error:"), runErr)
	default:
		fmt.Fprintf(out, "%s deduplication %s, %d record(s), %s dangerous\n",
			pal.info.Sprint("Result:"), result.Mode, len(result.Records), pal.warn.Sprint(result.Flagged))
		fmt.Fprintf(out, "%s %s\n", pal.success.Sprint("Written:"), cfg.Output.Path)
	}

	if logPath != "" {
		fmt.Fprintf(out, "%s %s\n", pal.info.Sprint("Log:"), logPath)
	}
}

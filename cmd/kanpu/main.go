package main

import (
	"fmt"
	"log"
	"os"
	"runtime/debug"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/rgehrsitz/kanpu/internal/calculation"
	"github.com/rgehrsitz/kanpu/internal/config"
	"github.com/rgehrsitz/kanpu/internal/domain"
	"github.com/rgehrsitz/kanpu/internal/output"
	"github.com/rgehrsitz/kanpu/internal/storage"
	"github.com/rgehrsitz/kanpu/internal/taxtable"
)

// simpleCLILogger implements calculation.Logger using the standard log package
type simpleCLILogger struct{}

func (simpleCLILogger) Debugf(format string, args ...any) { log.Printf("DEBUG: "+format, args...) }
func (simpleCLILogger) Infof(format string, args ...any)  { log.Printf("INFO: "+format, args...) }
func (simpleCLILogger) Warnf(format string, args ...any)  { log.Printf("WARN: "+format, args...) }
func (simpleCLILogger) Errorf(format string, args ...any) { log.Printf("ERROR: "+format, args...) }

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "kanpu %s (commit %s, built %s, tables %s)\n", version, commit, date, taxtable.DefaultVersion)
			if info := buildInfo(); info != "" {
				fmt.Fprintln(out, info)
			}
		},
	}
}

func buildInfo() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		return bi.String()
	}
	return ""
}

var rootCmd = &cobra.Command{
	Use:   "kanpu",
	Short: "Japanese tax refund estimator",
	Long: "Estimates the income tax refund and resident tax reduction a salaried worker\n" +
		"in Japan gets from iDeCo, insurance, medical, donation and housing loan deductions.",
	SilenceUsage: true,
}

// cliLogger returns the debug logger when --debug is set
func cliLogger(cmd *cobra.Command) calculation.Logger {
	if debugMode, _ := cmd.Flags().GetBool("debug"); debugMode {
		return simpleCLILogger{}
	}
	return calculation.NopLogger{}
}

func dataDir(cmd *cobra.Command) (string, error) {
	if dir, _ := cmd.Flags().GetString("data-dir"); dir != "" {
		return dir, nil
	}
	return storage.DefaultDir()
}

// loadTables reads --tables when given, otherwise the stored dataset
func loadTables(cmd *cobra.Command, logger calculation.Logger) (*domain.TaxTables, error) {
	if file, _ := cmd.Flags().GetString("tables"); file != "" {
		logger.Debugf("loading tax tables from %s", file)
		return taxtable.LoadFromFile(file)
	}

	dir, err := dataDir(cmd)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve data directory: %w", err)
	}
	provider := storage.NewTableProvider(storage.NewTableRepository(dir, logger), logger)
	return provider.Current(time.Now())
}

var calculateCmd = &cobra.Command{
	Use:   "calculate [input-file]",
	Short: "Estimate the refund for an input file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := cliLogger(cmd)

		outputFormat, _ := cmd.Flags().GetString("format")
		if verbose, _ := cmd.Flags().GetBool("verbose"); verbose && (outputFormat == "console" || outputFormat == "") {
			outputFormat = "console-verbose"
		}
		formatter := output.GetFormatterByName(outputFormat)
		if formatter == nil {
			return fmt.Errorf("unsupported format %q (available: %s)", outputFormat, strings.Join(output.FormatterNames(), ", "))
		}

		tables, err := loadTables(cmd, logger)
		if err != nil {
			return err
		}

		input, err := config.NewInputParserForTables(tables).LoadFromFile(args[0])
		if err != nil {
			return err
		}

		calc := calculation.NewRefundCalculator(tables)
		calc.SetLogger(logger)
		result, err := calc.Calculate(input)
		if err != nil {
			return err
		}

		data, err := formatter.Format(result)
		if err != nil {
			return fmt.Errorf("failed to format results: %w", err)
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

var validateCmd = &cobra.Command{
	Use:   "validate [input-file]",
	Short: "Check an input file without calculating",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tables := taxtable.Default()
		if file, _ := cmd.Flags().GetString("tables"); file != "" {
			var err error
			if tables, err = taxtable.LoadFromFile(file); err != nil {
				return err
			}
		}
		if _, err := config.NewInputParserForTables(tables).LoadFromFile(args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: ok\n", args[0])
		return nil
	},
}

var tablesCmd = &cobra.Command{
	Use:   "tables",
	Short: "Print the tax table dataset",
	Long: "Prints the built-in tax tables so they can be edited and passed back with\n" +
		"calculate --tables. With --stored the dataset currently kept in the data\n" +
		"directory is printed instead.",
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		stored, _ := cmd.Flags().GetBool("stored")

		tables := taxtable.Default()
		if stored {
			var err error
			if tables, err = loadTables(cmd, cliLogger(cmd)); err != nil {
				return err
			}
		}

		data, err := taxtable.Marshal(tables, format)
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

func init() {
	rootCmd.PersistentFlags().String("data-dir", "", "Directory for stored tax tables (default: user config dir)")

	calculateCmd.Flags().StringP("format", "f", "console", "Output format (console, console-verbose, html, json, json-compact, csv, yaml)")
	calculateCmd.Flags().BoolP("verbose", "v", false, "Include calculation steps and assumptions in console output")
	calculateCmd.Flags().String("tables", "", "Path to a tax table file (yaml or json)")
	calculateCmd.Flags().Bool("debug", false, "Enable debug output for detailed calculations")

	validateCmd.Flags().String("tables", "", "Path to a tax table file bounding the residence year (default: built-in tables)")

	tablesCmd.Flags().StringP("format", "f", "yaml", "Output format (yaml, json)")
	tablesCmd.Flags().Bool("stored", false, "Print the stored dataset instead of the built-in one")
	tablesCmd.Flags().Bool("debug", false, "Enable debug output")

	rootCmd.AddCommand(calculateCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(tablesCmd)
	rootCmd.AddCommand(versionCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Package cmd implements the fieldscope CLI commands.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/agristack/fieldscope"
	"github.com/agristack/fieldscope/internal/cmd/output"
	"github.com/agristack/fieldscope/pkg/constants"
	"github.com/agristack/fieldscope/pkg/logging"
	"github.com/agristack/fieldscope/pkg/telemetry"
)

var (
	configFile   string
	outputFormat string
	verbose      bool
	quiet        bool

	// Version information set by main.
	Version = "dev"
	// Commit is the git commit hash.
	Commit = "unknown"
	// Date is the build date.
	Date = "unknown"
	// BuiltBy is the build system identifier.
	BuiltBy = "unknown"
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "fieldscope",
	Short: "Field device telemetry reconciliation and diagnostics",
	Long: `Fieldscope reconciles the two telemetry feeds of a field device, the
portal's log export and the report service's exported table, into a single
canonical stream and runs a diagnostic check battery over it: battery and
signal health, defect and malfunction codes, PCB humidity, accelerometer
alerts, duplicate records, and transmissions lost to connectivity blackouts.`,
	PersistentPreRunE: setupCommand,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute(version, commit, date, builtBy string) {
	Version = version
	Commit = commit
	Date = date
	BuiltBy = builtBy

	// Set up context with signal handling for graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default is $HOME/.fieldscope.yaml)")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "", "output format: table, json, yaml, markdown")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress non-error log output")

	rootCmd.PersistentFlags().String("portal", "", "portal log export file for the device")
	rootCmd.PersistentFlags().String("report", "", "report export, a file path or an HTTP URL")
	rootCmd.PersistentFlags().String("device", "", "device identifier")
	rootCmd.PersistentFlags().String("start", "", "earliest log timestamp to keep (2006-01-02 15:04:05)")
	rootCmd.PersistentFlags().String("end", "", "latest log timestamp to keep (2006-01-02 15:04:05)")
	rootCmd.PersistentFlags().Int("gap-threshold", 0, "expected seconds between records for gap synthesis")

	for _, flag := range []string{"portal", "report", "device", "start", "end", "gap-threshold"} {
		if err := viper.BindPFlag(flag, rootCmd.PersistentFlags().Lookup(flag)); err != nil {
			panic(fmt.Sprintf("Failed to bind %s flag: %v", flag, err))
		}
	}
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		// Search config in home directory with name ".fieldscope" (without extension)
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".fieldscope")
	}

	// Load .env files first (before Viper env binding)
	loadEnvFiles()

	viper.SetEnvPrefix("fieldscope")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))

	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}

	configureLogging()
}

// setupCommand is called before any command runs.
func setupCommand(_ *cobra.Command, _ []string) error {
	if outputFormat == "" {
		outputFormat = string(output.DetectFormat(""))
	}
	_, err := output.ParseFormat(outputFormat)
	return err
}

// configureLogging sets up the logging system based on configuration.
func configureLogging() {
	level := zerolog.InfoLevel
	if verbose || viper.GetBool("verbose") {
		level = zerolog.DebugLevel
	}
	if quiet || viper.GetBool("quiet") {
		level = zerolog.WarnLevel
	}
	if envLevel := os.Getenv("LOG_LEVEL"); envLevel != "" {
		if parsed, err := zerolog.ParseLevel(envLevel); err == nil {
			level = parsed
		}
	}

	config := &logging.Config{
		Level:     level.String(),
		Format:    os.Getenv("LOG_FORMAT"),
		Output:    os.Getenv("LOG_OUTPUT"),
		AddCaller: level <= zerolog.DebugLevel,
	}
	if config.Format == "" {
		config.Format = "auto"
	}
	if config.Output == "" {
		config.Output = "stderr"
	}

	logging.Configure(config)
}

// loadEnvFiles loads environment variables from .env files.
// .env.local overrides .env.
func loadEnvFiles() {
	for _, envFile := range []string{".env", ".env.local"} {
		if err := godotenv.Load(envFile); err == nil && verbose {
			fmt.Fprintf(os.Stderr, "Loaded %s\n", envFile)
		}
	}
}

// newSession builds an instance from the resolved configuration and runs
// the full fetch-and-reconcile pipeline.
func newSession(ctx context.Context) (*fieldscope.Session, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.CommandTimeout)
	defer cancel()

	opts := []fieldscope.Option{
		fieldscope.WithDevice(viper.GetString("device")),
	}
	if portal := viper.GetString("portal"); portal != "" {
		opts = append(opts, fieldscope.WithPortalExport(portal))
	}
	if report := viper.GetString("report"); report != "" {
		opts = append(opts, fieldscope.WithReportExport(report, viper.GetString("report_api_key")))
	}
	if start, end := viper.GetString("start"), viper.GetString("end"); start != "" || end != "" {
		opts = append(opts, fieldscope.WithBounds(start, end))
	}
	if threshold := viper.GetInt("gap-threshold"); threshold > 0 {
		opts = append(opts, fieldscope.WithGapThreshold(threshold))
	}

	fs, err := fieldscope.New(opts...)
	if err != nil {
		return nil, err
	}
	return fs.Run(ctx)
}

// render writes the data in the selected output format.
func render(data any) error {
	return output.NewFormatter(output.Format(outputFormat)).Format(os.Stdout, data)
}

// tablePayload shapes a telemetry table for the selected output format:
// structured documents for json and yaml, flat rows for table and markdown.
func tablePayload(t *telemetry.Table) any {
	switch output.Format(outputFormat) {
	case output.FormatJSON, output.FormatYAML:
		return output.DocumentFromTable(t)
	default:
		return output.FromTable(t)
	}
}

package cmd

import (
	"fmt"

	"github.com/harrison/irida-samplelist/internal/buildinfo"
	"github.com/harrison/irida-samplelist/internal/config"
	"github.com/harrison/irida-samplelist/internal/logger"
	"github.com/harrison/irida-samplelist/internal/manifest"
	"github.com/harrison/irida-samplelist/internal/models"
	"github.com/spf13/cobra"
)

// NewRootCommand creates and returns the root cobra command for irida-samplelist
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "irida-samplelist",
		Short: "Prepare sequencing files and a SampleList.csv for IRIDA upload",
		Long: `irida-samplelist scans a directory of FASTQ or FASTA files, matches them
to the samples of a samplesheet, renames them to carry the sequencing date and
writes the SampleList.csv manifest used by the IRIDA uploader.

The samplesheet needs the columns sample, project_id and sequencing_date. It
may be a CSV/TSV file, an .xls workbook or a gs://bucket/object path.

Configuration is loaded from --config or $IRIDA_SAMPLELIST_CONFIG if set.
CLI flags override configuration file settings.

Examples:
  # Paired FASTQ reads in the current directory
  irida-samplelist --samplesheet samples.csv --fastq

  # Consensus FASTA files in another directory
  irida-samplelist -d ~/runs/run42 -s ~/runs/run42/samples.csv --fasta

  # Show what would happen without touching anything
  irida-samplelist -s samples.csv --fastq --dry-run

  # Undo the renames of the last run
  irida-samplelist revert -d ~/runs/run42`,
		Args:    cobra.NoArgs,
		Version: buildinfo.Get().String(),
		RunE:    runGenerate,
		// Silence usage on errors to avoid duplicate help text
		SilenceUsage: true,
	}

	cmd.Flags().StringP("directory", "d", ".", "Directory containing the sequencing files")
	cmd.Flags().StringP("samplesheet", "s", "", "Samplesheet path (local file or gs://bucket/object)")
	cmd.Flags().Bool("fastq", false, "Match paired FASTQ reads")
	cmd.Flags().Bool("fasta", false, "Match consensus FASTA files")
	cmd.Flags().String("config", "", "Path to config file (default: $"+config.EnvConfigPath+")")
	cmd.Flags().Bool("dry-run", false, "Print the manifest and planned renames without changing anything")
	cmd.Flags().Int64("min-size", 0, "Minimum file size in bytes; files must be larger (default 50)")
	cmd.Flags().String("log-level", "", "Log level: trace, debug, info, warn, error (default info)")
	cmd.Flags().String("output", "", "Manifest file name inside the directory (default "+config.DefaultManifestName+")")
	cmd.Flags().String("date-format", "", "Go time layout used to normalize sequencing dates (e.g. 2006-01-02)")

	_ = cmd.MarkFlagRequired("samplesheet")
	cmd.MarkFlagsMutuallyExclusive("fastq", "fasta")
	cmd.MarkFlagsOneRequired("fastq", "fasta")

	cmd.AddCommand(NewRevertCommand())

	return cmd
}

// loadConfig reads the config file and applies explicitly set flags on top
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	configPath, _ := cmd.Flags().GetString("config")
	path := config.ResolvePath(configPath)

	cfg, err := config.LoadConfig(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config from %s: %w", path, err)
	}

	var (
		logLevel     *string
		minFileSize  *int64
		manifestName *string
		dateFormat   *string
		dryRun       *bool
	)

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		v, _ := flags.GetString("log-level")
		logLevel = &v
	}
	if flags.Changed("min-size") {
		v, _ := flags.GetInt64("min-size")
		minFileSize = &v
	}
	if flags.Changed("output") {
		v, _ := flags.GetString("output")
		manifestName = &v
	}
	if flags.Changed("date-format") {
		v, _ := flags.GetString("date-format")
		dateFormat = &v
	}
	if flags.Changed("dry-run") {
		v, _ := flags.GetBool("dry-run")
		dryRun = &v
	}

	cfg.MergeWithFlags(logLevel, minFileSize, manifestName, dateFormat, dryRun)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// runGenerate implements the root command
func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	directory, _ := cmd.Flags().GetString("directory")
	samplesheetPath, _ := cmd.Flags().GetString("samplesheet")
	fasta, _ := cmd.Flags().GetBool("fasta")

	fileType := models.FileTypeFastq
	if fasta {
		fileType = models.FileTypeFasta
	}

	log := logger.NewConsoleLogger(cmd.ErrOrStderr(), cfg.LogLevel)
	log.Debugf("Matching %s files with %q", fileType, patternFor(cfg, fileType))

	summary, err := manifest.Generate(cmd.Context(), manifest.Options{
		Directory:   directory,
		Samplesheet: samplesheetPath,
		FileType:    fileType,
		Config:      cfg,
		Logger:      log,
		Out:         cmd.OutOrStdout(),
		Report:      cmd.ErrOrStderr(),
	})
	if summary != nil {
		log.LogSummary(*summary)
	}
	return err
}

func patternFor(cfg *config.Config, ft models.FileType) string {
	if ft == models.FileTypeFasta {
		return cfg.Patterns.Fasta
	}
	return cfg.Patterns.Fastq
}

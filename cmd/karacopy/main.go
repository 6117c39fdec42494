package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/Nomadcxx/karacopy/internal/config"
	"github.com/Nomadcxx/karacopy/internal/exporter"
	"github.com/Nomadcxx/karacopy/internal/library"
	"github.com/Nomadcxx/karacopy/internal/logging"
	"github.com/Nomadcxx/karacopy/internal/paths"
	"github.com/Nomadcxx/karacopy/internal/plans"
	"github.com/Nomadcxx/karacopy/internal/ui"
	"github.com/spf13/cobra"
)

var (
	version   = "dev" // Set by build flags: -ldflags="-X main.version=1.0.0"
	cfgFile   string
	verbose   bool
	noColor   bool
	minYear   int
	maxYear   int
	assumeYes bool
	savePlan  bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "karacopy <source_dir> <dest_dir>",
		Short: "Copy music with synced lyrics into a karaoke playlist folder",
		Long: `KaraCopy copies the karaoke-ready subset of a music library into a
destination folder, preserving the Artist/Album directory structure.

A media file (.mp3/.m4a) is copied only when a synced lyrics file (.lrc)
with the same name sits next to it; the lyrics file and album art come
along. Album folders labeled with a year in square brackets, like
"Danseparc [1983]", can be filtered by year.

The full plan and totals are shown before anything is copied, and an
existing destination folder is only wiped after a second confirmation.

Examples:
  karacopy ~/Music ~/Playlists/Karaoke
  karacopy ~/Music ~/Playlists/1980s --min-year 1980 --max-year 1989
  karacopy ~/Music /mnt/usb/party --yes`,
		Args: cobra.ExactArgs(2),
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if noColor {
				ui.DisableColors()
			}
		},
		RunE:          runCopy,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ~/.config/karacopy/config.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")

	addScanFlags(rootCmd)
	rootCmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "skip confirmation prompts")

	rootCmd.AddCommand(newScanCmd())
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newVersionCmd())

	if err := rootCmd.Execute(); err != nil {
		ui.ErrorMsg("%v", err)
		os.Exit(1)
	}
}

// addScanFlags registers the flags shared by the root copy run and scan
func addScanFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&minYear, "min-year", 0, "lower inclusive bound on album year (0 = unbounded)")
	cmd.Flags().IntVar(&maxYear, "max-year", 0, "upper inclusive bound on album year (0 = unbounded)")
	cmd.Flags().BoolVar(&savePlan, "save-plan", false, "save the copy plan JSON under ~/.config/karacopy/plans")
}

func loadConfig() (*config.Config, error) {
	if cfgFile != "" {
		return config.LoadFrom(cfgFile)
	}
	return config.Load()
}

// newLogger builds the file logger; an unwritable log location degrades to
// a no-op logger rather than blocking the run.
func newLogger(cfg *config.Config) *logging.Logger {
	log, err := logging.New(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: logging disabled: %v\n", err)
		return logging.Nop()
	}
	if verbose {
		log.SetLevel(logging.LevelDebug)
	}
	return log
}

// resolveFilter merges year flags with config defaults; flags win when set
func resolveFilter(cmd *cobra.Command, cfg *config.Config) library.YearFilter {
	filter := library.YearFilter{Min: cfg.Options.MinYear, Max: cfg.Options.MaxYear}
	if cmd.Flags().Changed("min-year") {
		filter.Min = minYear
	}
	if cmd.Flags().Changed("max-year") {
		filter.Max = maxYear
	}
	return filter
}

func newExporter(cfg *config.Config, log *logging.Logger) *exporter.Exporter {
	return exporter.New(
		exporter.WithExtensions(library.Extensions{
			Media:  cfg.Extensions.Media,
			Lyrics: cfg.Extensions.Lyrics,
			Art:    cfg.Extensions.Art,
		}),
		exporter.WithLogger(log),
		exporter.WithAssumeYes(assumeYes || cfg.Options.AssumeYes),
	)
}

func runCopy(cmd *cobra.Command, args []string) error {
	source, dest := args[0], args[1]

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	log := newLogger(cfg)
	defer log.Close()

	exp := newExporter(cfg, log)

	plan, err := exp.Scan(source, resolveFilter(cmd, cfg))
	if err != nil {
		return err
	}
	plan.Command = strings.Join(os.Args, " ")

	if savePlan {
		if err := writePlan(plan); err != nil {
			return err
		}
	}

	summary, err := exp.RunPlan(plan, dest)
	if err != nil {
		return err
	}

	if !summary.Aborted {
		log.Info("run", "export finished",
			logging.F("user", paths.ActualUser()),
			logging.F("source", source),
			logging.F("dest", dest),
			logging.F("files", summary.FilesCopied))
	}
	return nil
}

func writePlan(plan *plans.CopyPlan) error {
	path, err := plans.DefaultPath()
	if err != nil {
		return err
	}
	if err := plan.Write(path); err != nil {
		return err
	}
	ui.SuccessMsg("Plan saved to %s", path)
	return nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("karacopy %s\n", version)
		},
	}
}

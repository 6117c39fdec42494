package main

import (
	"os"
	"strings"

	"github.com/Nomadcxx/karacopy/internal/ui"
	"github.com/spf13/cobra"
)

func newScanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan <source_dir>",
		Short: "Preview which files an export would copy",
		Long: `Scan the source library and print the copy plan without touching
the filesystem.

Shows every file that would be copied plus the totals (file count, media
file count, total size). Use --save-plan to keep the plan as JSON.

Examples:
  karacopy scan ~/Music
  karacopy scan ~/Music --min-year 1980 --max-year 1989
  karacopy scan ~/Music --save-plan`,
		Args: cobra.ExactArgs(1),
		RunE: runScan,
	}

	addScanFlags(cmd)

	return cmd
}

func runScan(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	log := newLogger(cfg)
	defer log.Close()

	exp := newExporter(cfg, log)

	plan, err := exp.Scan(args[0], resolveFilter(cmd, cfg))
	if err != nil {
		return err
	}
	plan.Command = strings.Join(os.Args, " ")

	exp.ShowPlan(plan)

	if plan.Summary.TotalFiles == 0 {
		ui.WarningMsg("No matching files; a copy run would do nothing")
	} else {
		ui.InfoMsg("Run 'karacopy %s <dest_dir>' to copy these files", args[0])
	}

	if savePlan {
		return writePlan(plan)
	}
	return nil
}

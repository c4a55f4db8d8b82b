package ui

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/ultraday/internal/export"
	"github.com/javiermolinar/ultraday/internal/logger"
)

func (a *App) exportCmd() *cobra.Command {
	var outDir string

	names := make([]string, 0, len(export.Formats))
	for _, f := range export.Formats {
		names = append(names, string(f))
	}

	cmd := &cobra.Command{
		Use:       "export [" + strings.Join(names, "|") + "]",
		Short:     "Export the day as PDF, iCalendar or JSON",
		ValidArgs: names,
		Long: `Write the day's plan to a file named dayplan_YYYY-MM-DD.<format>.

The file goes to --out, or to the export directory from the config.

Examples:
  ultraday export
  ultraday export ics --date tomorrow
  ultraday export json --out /tmp`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format := export.FormatPDF
			if len(args) == 1 {
				f, err := export.ParseFormat(args[0])
				if err != nil {
					return err
				}
				format = f
			}

			p, err := a.loadPlan(cmd.Context())
			if err != nil {
				return err
			}

			dir := outDir
			if dir == "" {
				dir = a.config.Export.Dir
			}
			path, err := export.ToFile(dir, format, p, a.exportOptions())
			if err != nil {
				logger.Error("export failed", "format", format, "date", p.Date.Format("2006-01-02"), "err", err)
				return fmt.Errorf("exporting %s: %w", format, err)
			}
			logger.Info("exported plan", "format", format, "path", path)
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %s\n", path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outDir, "out", "o", "", "Directory to write the file to")
	return cmd
}

func (a *App) exportOptions() export.Options {
	return export.Options{
		Language: a.config.Export.Language,
		Author:   a.config.Export.Author,
		Now:      a.now(),
	}
}

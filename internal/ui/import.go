package ui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/ultraday/internal/db"
	"github.com/javiermolinar/ultraday/internal/slot"
)

func (a *App) importCmd() *cobra.Command {
	var overwrite bool

	cmd := &cobra.Command{
		Use:   "import [database_path]",
		Short: "Import day plans from another database",
		Long: `Copy every day plan from another ultraday database into the current one.

Days that already have a plan are skipped unless --overwrite is given.

Example:
  ultraday import /path/to/laptop.db`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sourcePath, err := resolvePath(args[0])
			if err != nil {
				return err
			}
			destPath, err := resolvePath(a.config.Storage.DBPath)
			if err != nil {
				return err
			}

			if sourcePath == destPath {
				return fmt.Errorf("source database matches current database")
			}

			info, err := os.Stat(sourcePath)
			if err != nil {
				if os.IsNotExist(err) {
					return fmt.Errorf("source database does not exist: %s", sourcePath)
				}
				return fmt.Errorf("checking source database: %w", err)
			}
			if info.IsDir() {
				return fmt.Errorf("source database path is a directory: %s", sourcePath)
			}

			imported, skipped, err := importPlans(cmd.Context(), a.repo, sourcePath, overwrite)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d plan(s) from %s", imported, sourcePath)
			if skipped > 0 {
				fmt.Fprintf(cmd.OutOrStdout(), ", skipped %d existing", skipped)
			}
			fmt.Fprintln(cmd.OutOrStdout())
			return nil
		},
	}

	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Replace plans that already exist")
	return cmd
}

func importPlans(ctx context.Context, dest slot.Repository, sourcePath string, overwrite bool) (imported, skipped int, err error) {
	sourceRepo, err := db.New(sourcePath)
	if err != nil {
		return 0, 0, fmt.Errorf("opening source database: %w", err)
	}
	defer func() { _ = sourceRepo.Close() }()

	dates, err := sourceRepo.ListPlanDates(ctx)
	if err != nil {
		return 0, 0, fmt.Errorf("listing source plans: %w", err)
	}

	for _, date := range dates {
		if !overwrite {
			existing, err := dest.GetPlan(ctx, date)
			if err != nil {
				return imported, skipped, fmt.Errorf("checking %s: %w", date.Format("2006-01-02"), err)
			}
			if existing != nil {
				skipped++
				continue
			}
		}

		p, err := sourceRepo.GetPlan(ctx, date)
		if err != nil {
			return imported, skipped, fmt.Errorf("reading %s: %w", date.Format("2006-01-02"), err)
		}
		if p == nil {
			continue
		}
		if err := dest.SavePlan(ctx, p); err != nil {
			return imported, skipped, fmt.Errorf("importing %s: %w", date.Format("2006-01-02"), err)
		}
		imported++
	}

	return imported, skipped, nil
}

func resolvePath(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", fmt.Errorf("empty path")
	}

	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolving home directory: %w", err)
		}
		path = filepath.Join(home, path[2:])
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	return absPath, nil
}

package ui

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/ultraday/internal/config"
	"github.com/javiermolinar/ultraday/internal/tui/theme"
)

func (a *App) configCmd() *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "config",
		Short: "View or edit configuration",
		Long: `Interactive configuration management.

If no config file exists, creates one with default values.
Otherwise, displays current config and allows editing.

Example:
  ultraday config`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if path == "" {
				path = config.DefaultConfigPath()
			}
			return runConfigInteractive(cmd.InOrStdin(), cmd.OutOrStdout(), path)
		},
	}

	cmd.Flags().StringVar(&path, "file", "", "Config file to edit (default ~/.config/ultraday/config.toml)")
	return cmd
}

func runConfigInteractive(in io.Reader, out io.Writer, path string) error {
	fmt.Fprintf(out, "Config file: %s\n\n", path)

	cfg, err := config.LoadFrom(path)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		fmt.Fprintln(out, "No config file found. Creating with default values...")
		if err := cfg.SaveTo(path); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}
		fmt.Fprintf(out, "Created %s\n\n", path)
	}

	printConfig(out, cfg)

	reader := bufio.NewReader(in)
	if !promptYesNo(reader, out, "\nWould you like to edit the configuration?") {
		return nil
	}

	cfg.Planner.StartTime = promptValue(reader, out, "Day start (HH:MM)", cfg.Planner.StartTime)
	cfg.Planner.EndTime = promptValue(reader, out, "Day end (HH:MM)", cfg.Planner.EndTime)
	cfg.Planner.Interval = promptInt(reader, out, "Slot interval (minutes)", cfg.Planner.Interval)
	cfg.Planner.WorkingDays = promptSlice(reader, out, "Working days (comma-separated)", cfg.Planner.WorkingDays)
	cfg.Export.Dir = promptValue(reader, out, "Export directory", cfg.Export.Dir)
	cfg.Export.Language = promptValue(reader, out, "Export language (en, de)", cfg.Export.Language)
	cfg.Export.Author = promptValue(reader, out, "Export author", cfg.Export.Author)
	cfg.LLM.Provider = promptValue(reader, out, "LLM provider", cfg.LLM.Provider)
	cfg.LLM.Model = promptValue(reader, out, "LLM model", cfg.LLM.Model)
	cfg.LLM.BaseURL = promptValue(reader, out, "LLM base URL (Ollama/LM Studio)", cfg.LLM.BaseURL)
	cfg.Storage.DBPath = promptValue(reader, out, "Database path", cfg.Storage.DBPath)
	cfg.Server.Addr = promptValue(reader, out, "HTTP API address", cfg.Server.Addr)
	cfg.UI.Theme = promptTheme(reader, out, cfg.UI.Theme)

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if err := cfg.SaveTo(path); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Fprintln(out, "\nConfiguration saved!")
	return nil
}

func printConfig(out io.Writer, cfg *config.Config) {
	fmt.Fprintln(out, "Current configuration:")
	fmt.Fprintln(out, "──────────────────────")
	fmt.Fprintln(out, "[planner]")
	fmt.Fprintf(out, "  start_time   = %s\n", cfg.Planner.StartTime)
	fmt.Fprintf(out, "  end_time     = %s\n", cfg.Planner.EndTime)
	fmt.Fprintf(out, "  interval     = %d\n", cfg.Planner.Interval)
	fmt.Fprintf(out, "  working_days = %s\n", strings.Join(cfg.Planner.WorkingDays, ", "))
	fmt.Fprintln(out, "\n[export]")
	fmt.Fprintf(out, "  dir          = %s\n", cfg.Export.Dir)
	fmt.Fprintf(out, "  language     = %s\n", cfg.Export.Language)
	if cfg.Export.Author != "" {
		fmt.Fprintf(out, "  author       = %s\n", cfg.Export.Author)
	}
	fmt.Fprintln(out, "\n[llm]")
	fmt.Fprintf(out, "  provider     = %s\n", cfg.LLM.Provider)
	fmt.Fprintf(out, "  model        = %s\n", cfg.LLM.Model)
	fmt.Fprintf(out, "  base_url     = %s\n", cfg.LLM.BaseURL)
	fmt.Fprintln(out, "\n[storage]")
	fmt.Fprintf(out, "  db_path      = %s\n", cfg.Storage.DBPath)
	fmt.Fprintln(out, "\n[server]")
	fmt.Fprintf(out, "  addr         = %s\n", cfg.Server.Addr)
	fmt.Fprintln(out, "\n[ui]")
	fmt.Fprintf(out, "  theme        = %s\n", cfg.UI.Theme)
}

func promptValue(reader *bufio.Reader, out io.Writer, label, current string) string {
	if current == "" {
		fmt.Fprintf(out, "  %s: ", label)
	} else {
		fmt.Fprintf(out, "  %s [%s]: ", label, current)
	}
	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(input)
	if input == "" {
		return current
	}
	return input
}

func promptInt(reader *bufio.Reader, out io.Writer, label string, current int) int {
	for {
		value := promptValue(reader, out, label, strconv.Itoa(current))
		n, err := strconv.Atoi(value)
		if err == nil && n > 0 {
			return n
		}
		fmt.Fprintf(out, "  Invalid number %q.\n", value)
	}
}

func promptSlice(reader *bufio.Reader, out io.Writer, label string, current []string) []string {
	input := promptValue(reader, out, label, strings.Join(current, ", "))
	parts := strings.Split(input, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}

func promptTheme(reader *bufio.Reader, out io.Writer, current string) string {
	options := strings.Join(theme.Available(), ", ")
	label := fmt.Sprintf("UI theme (%s)", options)
	for {
		value := strings.ToLower(promptValue(reader, out, label, current))
		if theme.IsAvailable(value) {
			return value
		}
		fmt.Fprintf(out, "  Invalid theme %q. Available: %s\n", value, options)
	}
}

// Package export renders a day plan as PDF, iCalendar or JSON documents.
package export

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/javiermolinar/ultraday/internal/slot"
)

// Format is an export document type.
type Format string

// Supported formats.
const (
	FormatPDF  Format = "pdf"
	FormatICS  Format = "ics"
	FormatJSON Format = "json"
)

// Formats lists the supported formats in display order.
var Formats = []Format{FormatPDF, FormatICS, FormatJSON}

// ErrUnknownFormat is returned for an unsupported export format.
var ErrUnknownFormat = errors.New("format must be pdf, ics or json")

// ParseFormat parses a format name, case-insensitively. "ical" is accepted for ics.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatPDF, FormatICS, FormatJSON:
		return f, nil
	case "ical":
		return FormatICS, nil
	}
	return "", fmt.Errorf("%w, got %q", ErrUnknownFormat, s)
}

// ContentType returns the MIME type of documents in format f.
func (f Format) ContentType() string {
	switch f {
	case FormatPDF:
		return "application/pdf"
	case FormatICS:
		return "text/calendar; charset=utf-8"
	default:
		return "application/json"
	}
}

// Options controls document rendering.
type Options struct {
	Language string    // "en" or "de"
	Author   string    // document author metadata
	Now      time.Time // generation time; zero means time.Now()
}

func (o Options) now() time.Time {
	if o.Now.IsZero() {
		return time.Now()
	}
	return o.Now
}

// FileName returns the conventional file name for a plan export,
// e.g. "dayplan_2025-01-09.pdf".
func FileName(date time.Time, f Format) string {
	return fmt.Sprintf("dayplan_%s.%s", date.Format("2006-01-02"), f)
}

// Write renders plan in format f to w. The plan is snapshotted first so
// the caller may keep editing it while the document is produced.
func Write(w io.Writer, f Format, plan *slot.Plan, opts Options) error {
	snap := plan.Snapshot()
	switch f {
	case FormatPDF:
		return WritePDF(w, snap, opts)
	case FormatICS:
		return WriteICS(w, snap, opts)
	case FormatJSON:
		return WriteJSON(w, snap, opts)
	}
	return fmt.Errorf("%w, got %q", ErrUnknownFormat, f)
}

// ToFile renders plan into dir using FileName and returns the written path.
// A partially written file is removed on failure.
func ToFile(dir string, f Format, plan *slot.Plan, opts Options) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating export directory: %w", err)
	}
	path := filepath.Join(dir, FileName(plan.Date, f))

	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating export file: %w", err)
	}
	if err := Write(file, f, plan, opts); err != nil {
		_ = file.Close()
		_ = os.Remove(path)
		return "", err
	}
	if err := file.Close(); err != nil {
		return "", fmt.Errorf("closing export file: %w", err)
	}
	return path, nil
}

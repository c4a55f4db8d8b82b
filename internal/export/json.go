package export

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/javiermolinar/ultraday/internal/slot"
)

type jsonExport struct {
	ExportedAt string        `json:"exported_at"`
	Date       string        `json:"date"`
	Settings   slot.Settings `json:"settings"`
	Stats      jsonStats     `json:"stats"`
	Slots      []slot.Slot   `json:"slots"`
}

type jsonStats struct {
	Total        int            `json:"total"`
	Occupied     int            `json:"occupied"`
	Blocked      int            `json:"blocked"`
	Available    int            `json:"available"`
	Productivity int            `json:"productivity"`
	Minutes      map[string]int `json:"minutes_by_category"`
}

// newJSONStats converts stats into their wire form.
func newJSONStats(st slot.Stats) jsonStats {
	minutes := make(map[string]int, len(st.Minutes))
	for c, m := range st.Minutes {
		minutes[string(c)] = m
	}
	return jsonStats{
		Total:        st.Total,
		Occupied:     st.Occupied,
		Blocked:      st.Blocked,
		Available:    st.Available,
		Productivity: st.Productivity,
		Minutes:      minutes,
	}
}

// WriteJSON renders plan with its settings and statistics as indented JSON.
func WriteJSON(w io.Writer, plan *slot.Plan, opts Options) error {
	export := jsonExport{
		ExportedAt: opts.now().UTC().Format(time.RFC3339),
		Date:       plan.Date.Format("2006-01-02"),
		Settings:   plan.Settings,
		Stats:      newJSONStats(plan.Stats()),
		Slots:      plan.Slots,
	}
	if export.Slots == nil {
		export.Slots = []slot.Slot{}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(export); err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}
	return nil
}

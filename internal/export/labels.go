package export

import "github.com/javiermolinar/ultraday/internal/slot"

// labels holds the user-facing strings of exported documents.
type labels struct {
	Title        string
	GeneratedOn  string
	WorkingHours string
	Interval     string // format with minutes
	TasksSummary string // format with occupied, total, percent
	DayPlan      string
	NoTasks      string
	ColTime      string
	ColTask      string
	ColDetails   string
	Category     string
	Priority     string
	Statistics   string
	Total        string
	Planned      string
	Available    string
	Productivity string
	CreatedWith  string
	Page         string // format with page number and alias for the total
	Categories   map[slot.Category]string
	Priorities   map[slot.Priority]string
}

var english = labels{
	Title:        "ULTRA DAY PLANNER",
	GeneratedOn:  "Generated on",
	WorkingHours: "Working hours",
	Interval:     "Interval: %d minutes",
	TasksSummary: "%d/%d tasks (%d%%)",
	DayPlan:      "DAY PLAN",
	NoTasks:      "No tasks planned for this day",
	ColTime:      "TIME",
	ColTask:      "TASK",
	ColDetails:   "DETAILS",
	Category:     "Category",
	Priority:     "Priority",
	Statistics:   "STATISTICS",
	Total:        "Total",
	Planned:      "Planned",
	Available:    "Available",
	Productivity: "Productivity",
	CreatedWith:  "Created with Ultra Day Planner",
	Page:         "Page %d of %s",
	Categories: map[slot.Category]string{
		slot.CategoryWork:     "Work",
		slot.CategoryPersonal: "Personal",
		slot.CategoryHealth:   "Health",
		slot.CategoryOther:    "Other",
	},
	Priorities: map[slot.Priority]string{
		slot.PriorityLow:    "Low",
		slot.PriorityMedium: "Medium",
		slot.PriorityHigh:   "High",
	},
}

var german = labels{
	Title:        "ULTRA DAY PLANNER",
	GeneratedOn:  "Generiert am",
	WorkingHours: "Arbeitszeit",
	Interval:     "Intervall: %d Minuten",
	TasksSummary: "%d/%d Aufgaben (%d%%)",
	DayPlan:      "TAGESPLAN",
	NoTasks:      "Keine Aufgaben für diesen Tag geplant",
	ColTime:      "ZEIT",
	ColTask:      "AUFGABE",
	ColDetails:   "DETAILS",
	Category:     "Kategorie",
	Priority:     "Priorität",
	Statistics:   "STATISTIKEN",
	Total:        "Gesamt",
	Planned:      "Geplant",
	Available:    "Verfügbar",
	Productivity: "Produktivität",
	CreatedWith:  "Erstellt mit Ultra Day Planner",
	Page:         "Seite %d von %s",
	Categories: map[slot.Category]string{
		slot.CategoryWork:     "Arbeit",
		slot.CategoryPersonal: "Persönlich",
		slot.CategoryHealth:   "Gesundheit",
		slot.CategoryOther:    "Sonstiges",
	},
	Priorities: map[slot.Priority]string{
		slot.PriorityLow:    "Niedrig",
		slot.PriorityMedium: "Mittel",
		slot.PriorityHigh:   "Hoch",
	},
}

func labelsFor(lang string) labels {
	if lang == "de" {
		return german
	}
	return english
}

package export

import (
	"fmt"
	"io"
	"strconv"
	"time"

	ical "github.com/emersion/go-ical"
	"github.com/google/uuid"

	"github.com/javiermolinar/ultraday/internal/slot"
)

const prodID = "-//ultraday//Day Planner//EN"

// icalPriority maps task priority to the RFC 5545 PRIORITY scale (1 highest).
var icalPriority = map[slot.Priority]int{
	slot.PriorityHigh:   1,
	slot.PriorityMedium: 5,
	slot.PriorityLow:    9,
}

// EventUID returns the stable UID of the calendar event exported for a
// task, so re-importing an updated plan replaces events instead of
// duplicating them.
func EventUID(date time.Time, slotID string) string {
	name := date.Format("2006-01-02") + "/" + slotID
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte("ultraday:"+name)).String() + "@ultraday"
}

// WriteICS renders one VEVENT per task of plan. Times are floating local
// times on the plan's date.
func WriteICS(w io.Writer, plan *slot.Plan, opts Options) error {
	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, prodID)

	stamp := opts.now().UTC()
	day := time.Date(plan.Date.Year(), plan.Date.Month(), plan.Date.Day(), 0, 0, 0, 0, time.Local)

	for _, t := range plan.Tasks() {
		start := day.Add(time.Duration(slot.TimeToMinutes(t.Time)) * time.Minute)
		end := day.Add(time.Duration(t.EndMinutes(plan.Settings.Interval)) * time.Minute)

		event := ical.NewEvent()
		event.Props.SetText(ical.PropUID, EventUID(plan.Date, t.ID))
		event.Props.SetDateTime(ical.PropDateTimeStamp, stamp)
		event.Props.SetDateTime(ical.PropDateTimeStart, start)
		event.Props.SetDateTime(ical.PropDateTimeEnd, end)
		event.Props.SetText(ical.PropSummary, t.Title)
		if t.Description != "" {
			event.Props.SetText(ical.PropDescription, t.Description)
		}
		if t.Category != "" {
			event.Props.SetText(ical.PropCategories, string(t.Category))
		}
		if p, ok := icalPriority[t.Priority]; ok {
			prop := ical.NewProp(ical.PropPriority)
			prop.Value = strconv.Itoa(p)
			event.Props.Set(prop)
		}
		cal.Children = append(cal.Children, event.Component)
	}

	if err := ical.NewEncoder(w).Encode(cal); err != nil {
		return fmt.Errorf("encoding calendar: %w", err)
	}
	return nil
}

package server

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/javiermolinar/ultraday/internal/dateutil"
	"github.com/javiermolinar/ultraday/internal/export"
	"github.com/javiermolinar/ultraday/internal/logger"
	"github.com/javiermolinar/ultraday/internal/slot"
)

// PlanResponse is the JSON shape of a day plan.
type PlanResponse struct {
	Date     string        `json:"date"`
	Settings slot.Settings `json:"settings"`
	Slots    []slot.Slot   `json:"slots"`
	Stats    StatsResponse `json:"stats"`
}

// StatsResponse mirrors slot.Stats.
type StatsResponse struct {
	Total             int                   `json:"total"`
	Occupied          int                   `json:"occupied"`
	Blocked           int                   `json:"blocked"`
	Available         int                   `json:"available"`
	Productivity      int                   `json:"productivity"`
	MinutesByCategory map[slot.Category]int `json:"minutesByCategory"`
}

func newPlanResponse(p *slot.Plan) PlanResponse {
	st := p.Stats()
	slots := p.Slots
	if slots == nil {
		slots = []slot.Slot{}
	}
	return PlanResponse{
		Date:     p.Date.Format("2006-01-02"),
		Settings: p.Settings,
		Slots:    slots,
		Stats: StatsResponse{
			Total:             st.Total,
			Occupied:          st.Occupied,
			Blocked:           st.Blocked,
			Available:         st.Available,
			Productivity:      st.Productivity,
			MinutesByCategory: st.Minutes,
		},
	}
}

// GET /api/v1/plans/:date
func (s *Server) getPlan(c echo.Context) error {
	p, err := s.loadPlan(c)
	if err != nil {
		return err
	}
	return success(c, newPlanResponse(p), "plan loaded")
}

// PUT /api/v1/plans/:date/settings
//
// Rebuilds the day from the posted settings. Planned tasks are discarded.
func (s *Server) putSettings(c echo.Context) error {
	var settings slot.Settings
	if err := c.Bind(&settings); err != nil {
		return badRequest(CodeInvalidBody, "request body must be a settings object")
	}
	if err := settings.Validate(); err != nil {
		return badRequest(CodeInvalidSettings, err.Error())
	}

	return s.mutate(c, "settings applied", func(p *slot.Plan) error {
		if err := p.ApplySettings(settings); err != nil {
			return badRequest(CodeInvalidSettings, err.Error())
		}
		logger.Info("plan rebuilt", "date", p.Date.Format("2006-01-02"), "slots", len(p.Slots))
		return nil
	})
}

// PUT /api/v1/plans/:date/slots/:id
//
// The body is the full updated slot. Only its task fields are used: the
// occupancy, blocking and end time follow from the title and duration the
// way the edit forms derive them, and an empty title frees the slot. An id
// that is not part of the day leaves the plan unchanged.
func (s *Server) putSlot(c echo.Context) error {
	var body slot.Slot
	if err := c.Bind(&body); err != nil {
		return badRequest(CodeInvalidBody, "request body must be a slot object")
	}
	id := c.Param("id")

	if body.Category != "" && !body.Category.Valid() {
		return badRequest(CodeInvalidSlot, slot.ErrInvalidCategory.Error())
	}
	if body.Priority != "" && !body.Priority.Valid() {
		return badRequest(CodeInvalidSlot, slot.ErrInvalidPriority.Error())
	}
	if body.Duration < 0 {
		return badRequest(CodeInvalidSlot, "duration must not be negative")
	}

	return s.mutate(c, "slot updated", func(p *slot.Plan) error {
		current, ok := slot.Find(p.Slots, id)
		if !ok {
			logger.Debug("update for unknown slot ignored", "id", id)
			return nil
		}

		task := slot.NewTask(current, body.Title, body.Description, body.Duration,
			p.Settings.Interval, body.Category, body.Priority)
		if !task.IsOccupied {
			// Freeing a slot that holds no task keeps its blocking intact.
			if current.IsOccupied {
				p.Delete(id)
			}
			return nil
		}
		p.Update(task)
		return nil
	})
}

// DELETE /api/v1/plans/:date/slots/:id
func (s *Server) deleteSlot(c echo.Context) error {
	id := c.Param("id")
	return s.mutate(c, "slot cleared", func(p *slot.Plan) error {
		p.Delete(id)
		return nil
	})
}

// GET /api/v1/plans/:date/export/:format
func (s *Server) exportPlan(c echo.Context) error {
	format, err := export.ParseFormat(c.Param("format"))
	if err != nil {
		return badRequest(CodeInvalidFormat, err.Error())
	}

	p, err := s.loadPlan(c)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	opts := export.Options{
		Language: s.cfg.Export.Language,
		Author:   s.cfg.Export.Author,
		Now:      s.now(),
	}
	if err := export.Write(&buf, format, p, opts); err != nil {
		return internalError("export "+string(format), err)
	}

	name := export.FileName(p.Date, format)
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", name))
	return c.Blob(http.StatusOK, format.ContentType(), buf.Bytes())
}

// mutate runs fn on the plan for the request's date and saves the result,
// holding the server lock for the whole cycle.
func (s *Server) mutate(c echo.Context, message string, fn func(*slot.Plan) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.loadPlan(c)
	if err != nil {
		return err
	}
	if err := fn(p); err != nil {
		return err
	}
	if err := s.repo.SavePlan(c.Request().Context(), p); err != nil {
		return internalError("saving plan", err)
	}
	return success(c, newPlanResponse(p), message)
}

func (s *Server) loadPlan(c echo.Context) (*slot.Plan, error) {
	date, err := s.parseDate(c.Param("date"))
	if err != nil {
		return nil, badRequest(CodeInvalidDate, err.Error())
	}
	p, err := s.planFor(c.Request().Context(), date)
	if err != nil {
		return nil, internalError("loading plan", err)
	}
	return p, nil
}

func (s *Server) parseDate(raw string) (time.Time, error) {
	return dateutil.ParseRelativeDate(raw, s.now())
}

func (s *Server) planFor(ctx context.Context, date time.Time) (*slot.Plan, error) {
	p, err := s.repo.GetPlan(ctx, date)
	if err != nil {
		return nil, err
	}
	if p != nil {
		return p, nil
	}
	return slot.NewPlan(date, s.cfg.Planner)
}

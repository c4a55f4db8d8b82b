package export

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/javiermolinar/ultraday/internal/dateutil"
	"github.com/javiermolinar/ultraday/internal/slot"
)

type rgb struct{ r, g, b int }

var (
	colorPrimary   = rgb{40, 40, 40}
	colorSecondary = rgb{80, 80, 80}
	colorAccent    = rgb{59, 130, 246}
	colorText      = rgb{55, 65, 81}
	colorLight     = rgb{107, 114, 128}
	colorBorder    = rgb{200, 200, 200}
	colorWhite     = rgb{255, 255, 255}
	colorStripe    = rgb{248, 250, 252}
	colorPanel     = rgb{249, 250, 251}
	colorGreen     = rgb{34, 197, 94}
	colorPurple    = rgb{168, 85, 247}
)

var priorityColors = map[slot.Priority]rgb{
	slot.PriorityLow:    colorLight,
	slot.PriorityMedium: {234, 179, 8},
	slot.PriorityHigh:   {239, 68, 68},
}

type font struct {
	size  float64
	style string
}

var (
	fontTitle    = font{24, "B"}
	fontSubtitle = font{16, "B"}
	fontHeading  = font{14, "B"}
	fontBody     = font{11, ""}
	fontSmall    = font{9, ""}
	fontCaption  = font{8, ""}
)

// Layout in millimetres.
const (
	pdfMargin    = 20.0
	spaceSection = 12.0
	spaceTask    = 8.0
	spaceHeader  = 15.0
	rowHeight    = 18.0
	colTask      = 50.0
	colDetails   = 120.0
	titleWidth   = 65.0
	detailsWidth = 50.0
)

// pdfDoc tracks the cursor while a plan document is laid out.
type pdfDoc struct {
	pdf    *fpdf.Fpdf
	tr     func(string) string
	l      labels
	y      float64
	width  float64
	height float64
}

// WritePDF renders plan as an A4 day plan document.
func WritePDF(w io.Writer, plan *slot.Plan, opts Options) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AliasNbPages("")

	now := opts.now()
	pdf.SetCreationDate(now)
	pdf.SetTitle(FileName(plan.Date, FormatPDF), true)
	pdf.SetCreator("ultraday", true)
	if opts.Author != "" {
		pdf.SetAuthor(opts.Author, true)
	}

	width, height := pdf.GetPageSize()
	d := &pdfDoc{
		pdf:    pdf,
		tr:     pdf.UnicodeTranslatorFromDescriptor(""),
		l:      labelsFor(opts.Language),
		y:      pdfMargin,
		width:  width,
		height: height,
	}
	pdf.SetFooterFunc(d.footer)
	pdf.AddPage()

	stats := slot.ComputeStats(plan.Slots, plan.Settings.Interval)
	d.header(plan.Date, now, opts.Language)
	d.info(plan.Settings, stats)
	d.tasks(plan.Tasks())
	d.statistics(stats)

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("rendering pdf: %w", err)
	}
	return nil
}

func (d *pdfDoc) header(date, now time.Time, lang string) {
	d.setFont(fontTitle)
	d.setColor(colorPrimary)
	d.text(pdfMargin, d.y, d.l.Title)
	d.y += spaceHeader

	d.setFont(fontBody)
	d.setColor(colorSecondary)
	d.text(pdfMargin, d.y, dateutil.FormatLong(date, lang))
	d.textRight(d.width-pdfMargin, d.y, d.l.GeneratedOn+" "+dateutil.FormatShort(now, lang))
	d.y += spaceSection

	d.rule(d.y, colorPrimary, 1)
	d.y += spaceSection
}

func (d *pdfDoc) info(s slot.Settings, st slot.Stats) {
	d.box(pdfMargin, d.y-3, d.contentWidth(), 12, colorStripe)
	d.setFont(fontSmall)
	d.setColor(colorText)
	d.text(pdfMargin+5, d.y+2, fmt.Sprintf("%s: %s - %s", d.l.WorkingHours, s.StartTime, s.EndTime))
	d.text(pdfMargin+80, d.y+2, fmt.Sprintf(d.l.Interval, s.Interval))
	d.textRight(d.width-pdfMargin-5, d.y+2, fmt.Sprintf(d.l.TasksSummary, st.Occupied, st.Total, st.Productivity))
	d.y += spaceHeader
}

func (d *pdfDoc) tasks(tasks []slot.Slot) {
	d.setFont(fontSubtitle)
	d.setColor(colorPrimary)
	d.text(pdfMargin, d.y, d.l.DayPlan)
	d.y += spaceSection

	if len(tasks) == 0 {
		d.box(pdfMargin, d.y-3, d.contentWidth(), 20, colorPanel)
		d.setFont(fontBody)
		d.setColor(colorLight)
		d.text(pdfMargin+10, d.y+8, d.l.NoTasks)
		d.y += 25
		return
	}

	d.tableHeader()
	for i, t := range tasks {
		if d.pageBreak(rowHeight) {
			d.tableHeader()
		}
		d.taskRow(i, t)
	}
}

func (d *pdfDoc) tableHeader() {
	d.box(pdfMargin, d.y-3, d.contentWidth(), 8, colorAccent)
	d.setFont(fontSmall)
	d.setColor(colorWhite)
	d.text(pdfMargin+5, d.y+2, d.l.ColTime)
	d.text(pdfMargin+colTask, d.y+2, d.l.ColTask)
	d.text(pdfMargin+colDetails, d.y+2, d.l.ColDetails)
	d.y += spaceTask + 2
}

func (d *pdfDoc) taskRow(index int, t slot.Slot) {
	fill := colorWhite
	if index%2 == 1 {
		fill = colorStripe
	}
	d.box(pdfMargin, d.y-3, d.contentWidth(), rowHeight, fill)

	d.setFont(fontBody)
	d.setColor(colorAccent)
	timeText := t.Time
	if t.EndTime != "" {
		timeText += " - " + t.EndTime
	}
	d.text(pdfMargin+5, d.y+3, timeText)
	if t.Duration > 0 {
		d.setFont(fontSmall)
		d.setColor(colorLight)
		d.text(pdfMargin+5, d.y+8, fmt.Sprintf("(%d min)", t.Duration))
	}

	d.setFont(fontHeading)
	d.setColor(colorPrimary)
	titleLines := d.wrap(t.Title, titleWidth)
	if len(titleLines) > 0 {
		d.pdf.Text(pdfMargin+colTask, d.y+3, titleLines[0])
	}
	if len(titleLines) > 1 {
		d.setFont(fontSmall)
		d.pdf.Text(pdfMargin+colTask, d.y+8, titleLines[1])
	}

	d.setFont(fontSmall)
	d.setColor(colorText)
	detailsY := d.y + 3
	if t.Category != "" {
		d.text(pdfMargin+colDetails, detailsY, d.l.Category+": "+d.l.Categories[t.Category])
		detailsY += 4
	}
	if t.Priority != "" {
		c, ok := priorityColors[t.Priority]
		if !ok {
			c = colorText
		}
		d.setColor(c)
		d.text(pdfMargin+colDetails, detailsY, d.l.Priority+": "+d.l.Priorities[t.Priority])
		detailsY += 4
		d.setColor(colorText)
	}
	if desc := strings.TrimSpace(t.Description); desc != "" {
		first, rest, multiline := strings.Cut(desc, "\n")
		lines := d.wrap(first, detailsWidth)
		if len(lines) > 0 {
			d.pdf.Text(pdfMargin+colDetails, detailsY, lines[0])
			if len(lines) > 1 || (multiline && strings.TrimSpace(rest) != "") {
				d.pdf.Text(pdfMargin+colDetails+d.pdf.GetStringWidth(lines[0]), detailsY, "...")
			}
		}
	}

	d.y += rowHeight
}

func (d *pdfDoc) statistics(st slot.Stats) {
	d.y += spaceSection
	d.pageBreak(30)
	d.rule(d.y, colorBorder, 0.5)
	d.y += spaceSection

	d.setFont(fontSubtitle)
	d.setColor(colorPrimary)
	d.text(pdfMargin, d.y, d.l.Statistics)
	d.y += spaceSection

	boxes := []struct {
		label string
		value string
		color rgb
	}{
		{d.l.Total, fmt.Sprint(st.Total), colorText},
		{d.l.Planned, fmt.Sprint(st.Occupied), colorGreen},
		{d.l.Available, fmt.Sprint(st.Available), colorAccent},
		{d.l.Productivity, fmt.Sprintf("%d%%", st.Productivity), colorPurple},
	}
	boxWidth := (d.contentWidth() - 20) / 4
	for i, b := range boxes {
		x := pdfMargin + float64(i)*(boxWidth+5)
		d.box(x, d.y-3, boxWidth, 15, colorPanel)

		d.setFont(fontBody)
		d.setColor(b.color)
		d.textCentered(x, boxWidth, d.y+3, b.value)

		d.setFont(fontSmall)
		d.setColor(colorLight)
		d.textCentered(x, boxWidth, d.y+8, b.label)
	}
	d.y += 15
}

// footer runs for every page as it is closed.
func (d *pdfDoc) footer() {
	footerY := d.height - 15
	d.rule(footerY-5, colorBorder, 0.5)

	d.setFont(fontCaption)
	d.setColor(colorLight)
	d.text(pdfMargin, footerY, d.l.CreatedWith)
	d.textRight(d.width-pdfMargin, footerY, fmt.Sprintf(d.l.Page, d.pdf.PageNo(), "{nb}"))
}

// pageBreak starts a new page when h more millimetres would run into the
// footer, and reports whether it did.
func (d *pdfDoc) pageBreak(h float64) bool {
	if d.y+h <= d.height-pdfMargin-20 {
		return false
	}
	d.pdf.AddPage()
	d.y = pdfMargin
	return true
}

func (d *pdfDoc) contentWidth() float64 {
	return d.width - 2*pdfMargin
}

func (d *pdfDoc) setFont(f font) {
	d.pdf.SetFont("Helvetica", f.style, f.size)
}

func (d *pdfDoc) setColor(c rgb) {
	d.pdf.SetTextColor(c.r, c.g, c.b)
}

func (d *pdfDoc) text(x, y float64, s string) {
	d.pdf.Text(x, y, d.tr(s))
}

func (d *pdfDoc) textRight(right, y float64, s string) {
	s = d.tr(s)
	d.pdf.Text(right-d.pdf.GetStringWidth(s), y, s)
}

func (d *pdfDoc) textCentered(x, w, y float64, s string) {
	s = d.tr(s)
	d.pdf.Text(x+(w-d.pdf.GetStringWidth(s))/2, y, s)
}

func (d *pdfDoc) rule(y float64, c rgb, width float64) {
	d.pdf.SetLineWidth(width)
	d.pdf.SetDrawColor(c.r, c.g, c.b)
	d.pdf.Line(pdfMargin, y, d.width-pdfMargin, y)
}

func (d *pdfDoc) box(x, y, w, h float64, fill rgb) {
	d.pdf.SetFillColor(fill.r, fill.g, fill.b)
	d.pdf.Rect(x, y, w, h, "F")
	d.pdf.SetDrawColor(colorBorder.r, colorBorder.g, colorBorder.b)
	d.pdf.SetLineWidth(0.3)
	d.pdf.Rect(x, y, w, h, "D")
}

// wrap translates s for the core fonts and breaks it into lines no wider
// than w at the current font. Words longer than a line are cut.
func (d *pdfDoc) wrap(s string, w float64) []string {
	var lines []string
	var line string
	for _, word := range strings.Fields(d.tr(s)) {
		candidate := word
		if line != "" {
			candidate = line + " " + word
		}
		if d.pdf.GetStringWidth(candidate) <= w {
			line = candidate
			continue
		}
		if line != "" {
			lines = append(lines, line)
		}
		for d.pdf.GetStringWidth(word) > w && len(word) > 1 {
			cut := len(word) - 1
			for cut > 1 && d.pdf.GetStringWidth(word[:cut]) > w {
				cut--
			}
			lines = append(lines, word[:cut])
			word = word[cut:]
		}
		line = word
	}
	if line != "" {
		lines = append(lines, line)
	}
	return lines
}

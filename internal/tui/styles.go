package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/javiermolinar/ultraday/internal/slot"
	"github.com/javiermolinar/ultraday/internal/tui/theme"
	"github.com/javiermolinar/ultraday/internal/tui/view"
)

// Styles holds all lipgloss styles for the TUI, derived from a theme.
type Styles struct {
	palette *theme.Palette

	App lipgloss.Style

	// Header
	Title      lipgloss.Style
	HeaderDate lipgloss.Style
	Muted      lipgloss.Style
	Bar        lipgloss.Style

	// Slot rows
	FreeRow     lipgloss.Style
	BlockedRow  lipgloss.Style
	SelectedRow lipgloss.Style
	TimeColumn  lipgloss.Style
	CurrentMark lipgloss.Style

	// Footer
	Prompt lipgloss.Style
	Status lipgloss.Style
	Error  lipgloss.Style
	Help   lipgloss.Style

	// Modal
	ModalBg             lipgloss.Color
	ModalFrame          lipgloss.Style
	ModalHeader         lipgloss.Style
	ModalTitle          lipgloss.Style
	ModalFooter         lipgloss.Style
	ModalBody           lipgloss.Style
	ModalTag            lipgloss.Style
	ModalSection        lipgloss.Style
	ModalSectionFocused lipgloss.Style
	ModalInput          lipgloss.Style
	ModalPlaceholder    lipgloss.Style
	ModalCursor         lipgloss.Style
	ModalHint           lipgloss.Style
	ModalWarning        lipgloss.Style
	ModalButton         lipgloss.Style
	ModalButtonActive   lipgloss.Style
	OptionActive        lipgloss.Style
	OptionInactive      lipgloss.Style
}

// NewStyles creates a new Styles instance from a theme.
func NewStyles(t *theme.Theme) *Styles {
	p := theme.NewPalette(t)
	s := &Styles{palette: p}

	s.App = lipgloss.NewStyle().Foreground(p.Fg).Background(p.Bg)

	s.Title = lipgloss.NewStyle().Bold(true).Foreground(p.Accent).Background(p.Bg)
	s.HeaderDate = lipgloss.NewStyle().Bold(true).Foreground(p.Fg).Background(p.Bg)
	s.Muted = lipgloss.NewStyle().Foreground(p.FgMuted).Background(p.Bg)
	s.Bar = lipgloss.NewStyle().Foreground(p.Accent).Background(p.Bg)

	s.FreeRow = lipgloss.NewStyle().Foreground(p.FgMuted).Background(p.Bg)
	s.BlockedRow = lipgloss.NewStyle().Foreground(p.FgMuted).Background(p.Blocked).Faint(true)
	s.SelectedRow = lipgloss.NewStyle().Foreground(p.Fg).Background(p.BgSelection).Bold(true)
	s.TimeColumn = lipgloss.NewStyle().Foreground(p.FgMuted)
	s.CurrentMark = lipgloss.NewStyle().Foreground(p.Current).Bold(true)

	s.Prompt = lipgloss.NewStyle().Foreground(p.Fg).Background(p.BgHighlight)
	s.Status = lipgloss.NewStyle().Foreground(p.Accent).Background(p.Bg)
	s.Error = lipgloss.NewStyle().Foreground(p.Warning).Background(p.Bg).Bold(true)
	s.Help = lipgloss.NewStyle().Foreground(p.FgMuted).Background(p.Bg)

	m := p.Modal
	s.ModalBg = m.Bg
	s.ModalFrame = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.Border).
		BorderBackground(m.Bg).
		Background(m.Bg).
		Foreground(m.Text).
		Padding(1, 2)
	s.ModalHeader = lipgloss.NewStyle().Background(m.Bg)
	s.ModalTitle = lipgloss.NewStyle().Bold(true).Foreground(m.Border).Background(m.Bg)
	s.ModalFooter = lipgloss.NewStyle().Foreground(m.Muted).Background(m.Bg)
	s.ModalBody = lipgloss.NewStyle().Foreground(m.Text).Background(m.Bg)
	s.ModalTag = lipgloss.NewStyle().Foreground(m.ReverseText).Background(m.Border).Padding(0, 1)
	s.ModalSection = lipgloss.NewStyle().Foreground(m.Muted).Background(m.Bg).Bold(true)
	s.ModalSectionFocused = lipgloss.NewStyle().Foreground(m.Border).Background(m.Bg).Bold(true)
	s.ModalInput = lipgloss.NewStyle().Foreground(m.Text).Background(m.Bg)
	s.ModalPlaceholder = lipgloss.NewStyle().Foreground(m.Muted).Background(m.Bg)
	s.ModalCursor = lipgloss.NewStyle().Foreground(m.Bg).Background(m.Text)
	s.ModalHint = lipgloss.NewStyle().Foreground(m.Muted).Background(m.Bg).Italic(true)
	s.ModalWarning = lipgloss.NewStyle().Foreground(p.Warning).Background(m.Bg)
	s.ModalButton = lipgloss.NewStyle().Foreground(m.Text).Background(m.Panel).Padding(0, 2)
	s.ModalButtonActive = lipgloss.NewStyle().Foreground(p.TextOnAccent).Background(p.Accent).Bold(true).Padding(0, 2)
	s.OptionActive = lipgloss.NewStyle().Foreground(p.TextOnAccent).Background(p.Accent).Padding(0, 1)
	s.OptionInactive = lipgloss.NewStyle().Foreground(m.Muted).Background(m.Panel).Padding(0, 1)

	return s
}

// TaskRow returns the row style for a task of category c. Tasks that
// already ended are drawn in the muted shade.
func (s *Styles) TaskRow(c slot.Category, past bool) lipgloss.Style {
	cc := s.palette.Category(c)
	bg := cc.Bg
	if past {
		bg = cc.BgPast
	}
	return lipgloss.NewStyle().Foreground(cc.Text).Background(bg)
}

// CategoryLabel returns the foreground style for category labels.
func (s *Styles) CategoryLabel(c slot.Category) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(s.palette.Category(c).Fg)
}

func (s *Styles) modalStyles() view.ModalStyles {
	return view.ModalStyles{
		HeaderStyle:       s.ModalHeader,
		TitleStyle:        s.ModalTitle,
		FooterStyle:       s.ModalFooter,
		FrameStyle:        s.ModalFrame,
		ButtonStyle:       s.ModalButton,
		ButtonActiveStyle: s.ModalButtonActive,
		BodyStyle:         s.ModalBody,
	}
}

func (s *Styles) taskFormStyles() view.TaskFormStyles {
	return view.TaskFormStyles{
		Tag:                 s.ModalTag,
		Body:                s.ModalBody,
		SectionTitle:        s.ModalSection,
		SectionTitleFocused: s.ModalSectionFocused,
		OptionActive:        s.OptionActive,
		OptionInactive:      s.OptionInactive,
		Hint:                s.ModalHint,
		Warning:             s.ModalWarning,
	}
}

func (s *Styles) headerStyles() view.HeaderStyles {
	return view.HeaderStyles{
		Title: s.Title,
		Date:  s.HeaderDate,
		Muted: s.Muted,
		Bar:   s.Bar,
		Bg:    s.palette.Bg,
	}
}

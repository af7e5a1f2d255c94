package cli

import (
	"fmt"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/inspectreport/pkg/report"
	"github.com/matzehuels/inspectreport/pkg/report/page"
)

var (
	previewBoldStyle = lipgloss.NewStyle().Bold(true).Foreground(colorWhite)
	previewTextStyle = lipgloss.NewStyle().Foreground(colorGray)
	previewDimStyle  = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// Page Text
// =============================================================================

// pageLines returns the text of p in reading order: top to bottom, then left
// to right, each line prefixed with its baseline in millimetres. Image slots
// are listed as "[photo]" lines.
func pageLines(p page.Page) []previewLine {
	var lines []previewLine
	for _, op := range p.Ops {
		switch o := op.(type) {
		case page.Text:
			lines = append(lines, previewLine{y: o.Y, x: o.X, text: o.Value, bold: o.Bold})
		case page.Image:
			lines = append(lines, previewLine{y: o.Y, x: o.X, text: fmt.Sprintf("[photo %.0f×%.0f mm]", o.W, o.H), image: true})
		}
	}
	slices.SortStableFunc(lines, func(a, b previewLine) int {
		if a.y != b.y {
			if a.y < b.y {
				return -1
			}
			return 1
		}
		switch {
		case a.x < b.x:
			return -1
		case a.x > b.x:
			return 1
		}
		return 0
	})
	return lines
}

type previewLine struct {
	y, x  float64
	text  string
	bold  bool
	image bool
}

func (l previewLine) render() string {
	prefix := previewDimStyle.Render(fmt.Sprintf("%6.1f ", l.y))
	switch {
	case l.image:
		return prefix + StyleWarning.Render(l.text)
	case l.bold:
		return prefix + previewBoldStyle.Render(l.text)
	}
	return prefix + previewTextStyle.Render(l.text)
}

// =============================================================================
// PreviewModel - Interactive page browser
// =============================================================================

// PreviewModel is the bubbletea model that browses the pages of a document.
type PreviewModel struct {
	Doc    *report.Document
	Page   int
	Offset int
	Height int

	lines [][]previewLine
}

// NewPreviewModel creates a browser positioned on the first page.
func NewPreviewModel(doc *report.Document) PreviewModel {
	m := PreviewModel{Doc: doc, Height: 20}
	for _, p := range doc.Pages {
		m.lines = append(m.lines, pageLines(p))
	}
	return m
}

func (m PreviewModel) Init() tea.Cmd {
	return nil
}

func (m PreviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "right", "l", "n", "pgdown":
			if m.Page < len(m.lines)-1 {
				m.Page++
				m.Offset = 0
			}
		case "left", "h", "p", "pgup":
			if m.Page > 0 {
				m.Page--
				m.Offset = 0
			}
		case "home", "g":
			m.Page, m.Offset = 0, 0
		case "end", "G":
			m.Page, m.Offset = max(0, len(m.lines)-1), 0
		case "down", "j":
			if m.Offset < m.maxOffset() {
				m.Offset++
			}
		case "up", "k":
			if m.Offset > 0 {
				m.Offset--
			}
		}
	case tea.WindowSizeMsg:
		m.Height = max(5, msg.Height-6)
		m.Offset = min(m.Offset, m.maxOffset())
	}
	return m, nil
}

func (m PreviewModel) maxOffset() int {
	if m.Page >= len(m.lines) {
		return 0
	}
	return max(0, len(m.lines[m.Page])-m.Height)
}

func (m PreviewModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.Doc.FileName))
	b.WriteString(previewDimStyle.Render(fmt.Sprintf("  page %d/%d · score %d", m.Page+1, len(m.lines), m.Doc.Score)))
	b.WriteString("\n")
	b.WriteString(previewDimStyle.Render("←/→ page  ↑/↓ scroll  q quit"))
	b.WriteString("\n\n")

	if len(m.lines) == 0 {
		return b.String()
	}
	lines := m.lines[m.Page]
	end := min(len(lines), m.Offset+m.Height)
	for _, l := range lines[m.Offset:end] {
		b.WriteString(l.render())
		b.WriteString("\n")
	}
	if end < len(lines) {
		b.WriteString(previewDimStyle.Render(fmt.Sprintf("  … %d more", len(lines)-end)))
		b.WriteString("\n")
	}
	if n := len(m.Doc.Degraded); n > 0 {
		b.WriteString("\n")
		b.WriteString(StyleWarning.Render(fmt.Sprintf("%d photo(s) drawn as placeholders", n)))
	}
	return b.String()
}

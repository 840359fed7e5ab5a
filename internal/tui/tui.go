// Package tui provides a Bubble Tea picker over the directory history views.
package tui

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/fakeyudi/cdd/internal/direction"
	"github.com/fakeyudi/cdd/internal/resolve"
)

// ErrCancelled is returned by Run when the picker is closed without a choice.
var ErrCancelled = errors.New("no directory selected")

// ── Styles ────────────

var (
	// Title bar at the very top
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("62")).
			Padding(0, 2)

	activeTabStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("62")).
			Padding(0, 1)

	inactiveTabStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("245")).
				Background(lipgloss.Color("235")).
				Padding(0, 1)

	tabSepStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("238")).
			Background(lipgloss.Color("235"))

	indexStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("178"))

	countStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("33")).
			Bold(true)

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	statusBarStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("235")).
			Foreground(lipgloss.Color("245")).
			Padding(0, 1)

	selectedRowStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("15")).
				Background(lipgloss.Color("237"))
)

// ── Tab definitions ─────────────────

type tabID int

const (
	tabBackwards tabID = iota
	tabForwards
	tabCommon
	tabCount
)

var tabNames = [tabCount]string{"Recent", "Oldest", "Most visited"}

var tabSigns = [tabCount]string{direction.Backwards, direction.Forwards, direction.Common}

// ── Model ────────────────────

// Model is the root Bubble Tea model for the picker.
type Model struct {
	rows      [tabCount][]resolve.Row
	activeTab tabID
	filter    textinput.Model
	cursor    int
	viewport  viewport.Model
	width     int
	height    int
	ready     bool
	chosen    string
}

// New creates a picker over every view of r, opening on the view named by d
// (backwards when unset).
func New(r *resolve.Resolver, d direction.State) Model {
	m := Model{}
	for t := tabID(0); t < tabCount; t++ {
		var o resolve.Options
		o.Direction.MustAssign(tabSigns[t])
		o.ShowAll = true
		m.rows[t] = r.History(o).Rows
		if d.Sign() == tabSigns[t] {
			m.activeTab = t
		}
	}

	ti := textinput.New()
	ti.Prompt = "  filter: "
	ti.Placeholder = "type to narrow"
	ti.Focus()
	m.filter = ti
	return m
}

// Chosen returns the selected directory, or "" when nothing was selected.
func (m Model) Chosen() string { return m.chosen }

// visible returns the rows of the active tab whose path contains the filter
// text, ignoring case.
func (m Model) visible() []resolve.Row {
	rows := m.rows[m.activeTab]
	q := strings.ToLower(strings.TrimSpace(m.filter.Value()))
	if q == "" {
		return rows
	}
	var out []resolve.Row
	for _, row := range rows {
		if strings.Contains(strings.ToLower(row.Path), q) {
			out = append(out, row)
		}
	}
	return out
}

// ── Bubble Tea interface ───────────────

func (m Model) Init() tea.Cmd { return textinput.Blink }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "ctrl+c":
			m.chosen = ""
			return m, tea.Quit
		case "enter":
			if rows := m.visible(); len(rows) > 0 {
				m.chosen = rows[m.cursor].Path
				return m, tea.Quit
			}
			return m, nil
		case "tab", "right":
			m.activeTab = (m.activeTab + 1) % tabCount
			m.cursor = 0
			m.refresh()
			return m, nil
		case "shift+tab", "left":
			m.activeTab = (m.activeTab - 1 + tabCount) % tabCount
			m.cursor = 0
			m.refresh()
			return m, nil
		case "up", "ctrl+p":
			if m.cursor > 0 {
				m.cursor--
				m.refresh()
			}
			return m, nil
		case "down", "ctrl+n":
			if m.cursor < len(m.visible())-1 {
				m.cursor++
				m.refresh()
			}
			return m, nil
		}
		var cmd tea.Cmd
		before := m.filter.Value()
		m.filter, cmd = m.filter.Update(msg)
		if m.filter.Value() != before {
			m.cursor = 0
			m.refresh()
		}
		return m, cmd

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.initViewport()
		return m, nil
	}
	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if !m.ready {
		return "Loading…"
	}

	title := titleStyle.Width(m.width).Render("  cdd  pick a directory")

	var tabParts []string
	for i := tabID(0); i < tabCount; i++ {
		label := fmt.Sprintf(" %s %s (%d) ", tabSigns[i], tabNames[i], len(m.rows[i]))
		if i == m.activeTab {
			tabParts = append(tabParts, activeTabStyle.Render(label))
		} else {
			tabParts = append(tabParts, inactiveTabStyle.Render(label))
		}
		if i < tabCount-1 {
			tabParts = append(tabParts, tabSepStyle.Render("│"))
		}
	}
	tabRow := lipgloss.NewStyle().
		Background(lipgloss.Color("235")).
		Width(m.width).
		Render(lipgloss.JoinHorizontal(lipgloss.Top, tabParts...))

	hint := "  ←/→ view  ↑/↓ select  enter go  esc cancel"
	count := fmt.Sprintf("%d/%d", len(m.visible()), len(m.rows[m.activeTab]))
	pad := m.width - lipgloss.Width(hint) - len(count) - 2
	if pad < 1 {
		pad = 1
	}
	statusBar := statusBarStyle.Width(m.width).Render(hint + strings.Repeat(" ", pad) + count)

	return lipgloss.JoinVertical(lipgloss.Left, title, tabRow, m.filter.View(), m.viewport.View(), statusBar)
}

// ── Viewport management ───────────────────────────────────────────────────────

func (m *Model) initViewport() {
	// title, tabs, filter and status bar take one row each
	vpHeight := m.height - 4
	if vpHeight < 1 {
		vpHeight = 1
	}
	m.viewport = viewport.New(m.width, vpHeight)
	m.refresh()
}

// refresh re-renders the list and scrolls the cursor into view.
func (m *Model) refresh() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(m.renderRows())
	switch {
	case m.cursor < m.viewport.YOffset:
		m.viewport.SetYOffset(m.cursor)
	case m.cursor >= m.viewport.YOffset+m.viewport.Height:
		m.viewport.SetYOffset(m.cursor - m.viewport.Height + 1)
	}
}

func (m *Model) renderRows() string {
	rows := m.visible()
	if len(rows) == 0 {
		return dimStyle.Render("  (no matching directories)")
	}
	lines := make([]string, len(rows))
	for i, row := range rows {
		idx := fmt.Sprintf("%4d", row.Index)
		if row.Common {
			idx = fmt.Sprintf("%4s", fmt.Sprintf(",%d", row.Index))
		}
		line := indexStyle.Render(idx) + "  "
		if row.Common {
			line += countStyle.Render(fmt.Sprintf("(%2d)", row.Count)) + " "
		}
		line += row.Path
		if i == m.cursor {
			line = selectedRowStyle.Width(m.width).Render(line)
		}
		lines[i] = line
	}
	return strings.Join(lines, "\n")
}

// Run starts the picker and returns the chosen directory. Keys are read from
// the terminal and the interface is drawn on stderr, leaving stdin and stdout
// to the shell wrapper.
func Run(m Model) (string, error) {
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithInputTTY(), tea.WithOutput(os.Stderr))
	final, err := p.Run()
	if err != nil {
		return "", err
	}
	chosen := final.(Model).Chosen()
	if chosen == "" {
		return "", ErrCancelled
	}
	return chosen, nil
}

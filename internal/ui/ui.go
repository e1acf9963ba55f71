// Package ui implements the terminal UI for the window inspector.
package ui

import (
	"fmt"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
	gloss "github.com/charmbracelet/lipgloss"

	"larch/internal/xcb"
)

// Row describes one top-level window of the display.
type Row struct {
	Id   uint32
	Name string
	Rect xcb.Rect
}

// Lister enumerates the display's top-level windows.
type Lister func() ([]Row, error)

type Model struct {
	list Lister
	rows []Row
	err  error
}

func NewModel(list Lister) Model {
	return Model{list: list}
}

type msgRows []Row

type msgErr struct {
	err error
}

func (m Model) refresh() tea.Msg {
	rows, err := m.list()
	if err != nil {
		return msgErr{err}
	}
	return msgRows(rows)
}

func (m Model) Init() tea.Cmd {
	return m.refresh
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "ctrl+r", "f5":
			return m, m.refresh
		}
	case msgRows:
		m.rows = msg
		m.err = nil
	case msgErr:
		m.err = msg.err
	}
	return m, nil
}

func (m Model) View() string {
	if m.err != nil {
		return errStyle.Render(fmt.Sprintf("\n  ERROR: %s\n", m.err))
	}
	out := "\n"
	out += cyanStyle.Render("  ID          Geometry            Name")
	out += "\n"
	out += grayStyle.Render(fmt.Sprintf("  %d windows", len(m.rows)))
	out += "\n"
	for _, row := range m.rows {
		str := "  " + pad(strconv.FormatUint(uint64(row.Id), 10), 12)
		str += pad(fmt.Sprintf("%dx%d+%d+%d", row.Rect.Width, row.Rect.Height, row.Rect.X, row.Rect.Y), 20)
		str += row.Name + "\n"
		out += gloss.NewStyle().Render(str)
	}
	out += grayStyle.Render("\n  q: quit    ctrl+r: refresh\n")
	return out
}

func pad(str string, length int) string {
	for len(str) < length {
		str += " "
	}
	return str
}

var (
	cyanStyle = gloss.NewStyle().Foreground(gloss.Color("14"))
	grayStyle = gloss.NewStyle().Foreground(gloss.Color("8"))
	errStyle  = gloss.NewStyle().Foreground(gloss.Color("9"))
)

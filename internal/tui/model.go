// Package tui is a terminal monitor for the engine: a live 4x4 view of the
// active bank with keyboard control of the simulated encoders.
package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"quadbank/internal/config"
	"quadbank/internal/encoder"
	"quadbank/internal/hardware"
	"quadbank/internal/render"
)

// Model displays engine snapshots and feeds a simulated input source. It
// never touches the engine directly: snapshots arrive over a channel and
// bank changes go back out over another, keeping the engine single-owner.
type Model struct {
	snaps    <-chan encoder.Snapshot
	bankReq  chan<- int
	input    *hardware.Sim
	snap     encoder.Snapshot
	selected int
	quitting bool
}

type snapshotMsg encoder.Snapshot

// NewModel wires the monitor to its channels and input source.
func NewModel(snaps <-chan encoder.Snapshot, bankReq chan<- int, input *hardware.Sim) Model {
	return Model{snaps: snaps, bankReq: bankReq, input: input}
}

func listenSnapshots(snaps <-chan encoder.Snapshot) tea.Cmd {
	return func() tea.Msg {
		return snapshotMsg(<-snaps)
	}
}

func (m Model) Init() tea.Cmd {
	return listenSnapshots(m.snaps)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case snapshotMsg:
		m.snap = encoder.Snapshot(msg)
		return m, listenSnapshots(m.snaps)

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.quitting = true
			return m, tea.Quit

		case "tab":
			m.selected = (m.selected + 1) % encoder.PhysicalEncoders
		case "shift+tab":
			m.selected = (m.selected + encoder.PhysicalEncoders - 1) % encoder.PhysicalEncoders

		case "left", "h":
			m.input.Turn(m.selected, -1)
		case "right", "l":
			m.input.Turn(m.selected, 1)
		case "down", "j":
			m.input.Turn(m.selected, -8)
		case "up", "k":
			m.input.Turn(m.selected, 8)

		case " ":
			m.input.Tap(m.selected)

		case "1", "2", "3", "4":
			select {
			case m.bankReq <- int(msg.String()[0] - '1'):
			default:
			}
		}
	}
	return m, nil
}

var (
	titleStyle    = lipgloss.NewStyle().Bold(true)
	dimStyle      = lipgloss.NewStyle().Faint(true)
	selectedStyle = lipgloss.NewStyle().Bold(true).Underline(true)
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("quadbank  bank %d", m.snap.Bank+1)))
	b.WriteString("\n\n")

	for row := 0; row < 4; row++ {
		var cells []string
		for col := 0; col < 4; col++ {
			cells = append(cells, m.renderCell(row*4+col))
		}
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cells...))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render("tab select · arrows turn · space press · 1-4 bank · q quit"))
	return b.String()
}

// renderCell draws one encoder: a colored pad glyph, the 7-bit value, and a
// small bar for the indicator ring.
func (m Model) renderCell(idx int) string {
	c := render.ColorRGB(m.snap.Color[idx])
	pad := lipgloss.NewStyle().
		Foreground(lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", c.R*2, c.G*2, c.B*2))).
		Render("■")

	label := fmt.Sprintf("%2d", idx)
	if idx == m.selected {
		label = selectedStyle.Render(label)
	}

	var body string
	switch m.snap.Phenotype[idx] {
	case config.PhenotypeRotary:
		body = fmt.Sprintf("%s %3d %s", pad, m.snap.Indicator[idx], bar(m.snap.Indicator[idx]))
	case config.PhenotypeSwitch:
		state := "off"
		if m.snap.Toggle[idx] != 0 {
			state = "on"
		}
		body = fmt.Sprintf("%s %-3s     ", pad, state)
	default:
		body = dimStyle.Render("—        ")
	}

	return fmt.Sprintf(" %s %s ", label, body)
}

// bar renders a 4-cell indicator bar for a 7-bit value.
func bar(v uint8) string {
	filled := int(v) * 4 / 128
	return strings.Repeat("█", filled) + strings.Repeat("░", 4-filled)
}

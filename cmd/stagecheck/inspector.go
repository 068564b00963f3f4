package main

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/stageviewer/internal/engine/layers"
	"github.com/Faultbox/stageviewer/internal/viewer"
)

const tickInterval = 50 * time.Millisecond

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#0b5cad"))
	headerStyle = lipgloss.NewStyle().Bold(true)
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#8a8f98"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#b3261e"))
	boxStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)

	stateStyles = map[string]lipgloss.Style{
		"full":   lipgloss.NewStyle().Foreground(lipgloss.Color("#1e7b34")),
		"ghost":  lipgloss.NewStyle().Foreground(lipgloss.Color("#8a8f98")).Italic(true),
		"hidden": lipgloss.NewStyle().Foreground(lipgloss.Color("#b3261e")).Strikethrough(true),
	}
)

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// inspector drives a headless viewer and prints what a rendered frame would
// show. Each tick runs one viewer frame, so camera approaches play out live.
type inspector struct {
	v *viewer.Viewer
}

func newInspector(v *viewer.Viewer) inspector {
	return inspector{v: v}
}

// Init implements tea.Model.
func (m inspector) Init() tea.Cmd {
	return tick()
}

// Update implements tea.Model.
func (m inspector) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			return m, tea.Quit
		case "right", "n", "l":
			m.v.Next()
		case "left", "p", "h":
			m.v.Prev()
		case "home", "o":
			m.v.Overview()
		case "r":
			m.v.HandleGesture(viewer.Gesture{Kind: viewer.GestureReset})
		case "R", "f5":
			m.v.Retry()
		}
	case tickMsg:
		m.v.Tick()
		return m, tick()
	}
	return m, nil
}

// View implements tea.Model.
func (m inspector) View() string {
	v := m.v
	var b strings.Builder

	ref := v.Ref()
	if ref == "" {
		ref = "(placeholder)"
	}
	b.WriteString(titleStyle.Render("stagecheck") + "  " + ref + "  " + dimStyle.Render(v.Status().String()) + "\n\n")

	switch v.Status() {
	case viewer.StatusLoading:
		b.WriteString("Loading model...\n")
		return b.String() + m.help()
	case viewer.StatusFailed:
		b.WriteString(errorStyle.Render(fmt.Sprintf("Load failed: %v", v.Err())) + "\n")
		return b.String() + m.help()
	}

	if v.Staging() {
		head := fmt.Sprintf("Stage %d of %d", v.Stage(), v.StageCount())
		if st, ok := v.CurrentStage(); ok {
			if st.Title != "" {
				head += "  " + st.Title
			}
			if st.Description != "" {
				head += "\n" + dimStyle.Render(st.Description)
			}
		}
		b.WriteString(headerStyle.Render(head) + "\n")
	} else {
		b.WriteString(dimStyle.Render("Staging inactive") + "\n")
	}

	var meshes strings.Builder
	for _, row := range meshRows(v) {
		fmt.Fprintf(&meshes, "%-32s %s\n", row.name, stateStyles[row.state].Render(row.state))
	}
	b.WriteString(boxStyle.Render(strings.TrimRight(meshes.String(), "\n")) + "\n")

	b.WriteString(cameraSummary(v) + "\n")
	for _, l := range v.Labels() {
		fmt.Fprintf(&b, "label  %-24s %s\n", l.Caption(), formatVec(l.Scene))
	}
	return b.String() + "\n" + m.help()
}

func (m inspector) help() string {
	return dimStyle.Render("left/right: stage  o: overview  r: reset view  R: retry  q: quit")
}

type meshRow struct {
	name  string
	state string
}

// meshRows lists every mesh with the state the active stage gives it.
func meshRows(v *viewer.Viewer) []meshRow {
	s := v.Scene()
	if s == nil {
		return nil
	}
	res := v.Resolution()
	rows := make([]meshRow, 0, len(s.Meshes()))
	for _, mesh := range s.Meshes() {
		state := "full"
		switch {
		case !mesh.Visible:
			state = "hidden"
		case res.Class[mesh.ID] == layers.Ghost:
			state = "ghost"
		}
		rows = append(rows, meshRow{name: mesh.Name, state: state})
	}
	return rows
}

func cameraSummary(v *viewer.Viewer) string {
	cam := v.Camera()
	goal := v.Animator().Goal()
	line := fmt.Sprintf("camera %s -> %s", formatVec(cam.Position), formatVec(cam.Target))
	if v.Animator().Animating() {
		line += dimStyle.Render(fmt.Sprintf("  moving to %s -> %s", formatVec(goal.Position), formatVec(goal.Target)))
	}
	return line
}

func formatVec(p mgl32.Vec3) string {
	return fmt.Sprintf("(%.2f, %.2f, %.2f)", p[0], p[1], p[2])
}

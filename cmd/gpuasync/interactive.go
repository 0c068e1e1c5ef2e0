package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	gpuasync "github.com/wippyai/gpu-async"
	"github.com/wippyai/gpu-async/passes/asyncconv"
	"github.com/wippyai/gpu-async/rewrite"
	"github.com/wippyai/gpu-async/text"
)

var (
	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	patternStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))
)

// snapshot is the printed module after a sweep. Index 0 is the input.
type snapshot struct {
	text  string
	apps  []rewrite.Application
	index int
}

type interactiveModel struct {
	err       error
	filename  string
	snapshots []snapshot
	result    asyncconv.Result
	view      viewport.Model
	current   int
	maxIter   int
	ready     bool
}

type loadedMsg struct {
	err       error
	snapshots []snapshot
	result    asyncconv.Result
}

func newInteractiveModel(filename string, maxIter int) *interactiveModel {
	return &interactiveModel{filename: filename, maxIter: maxIter}
}

func (m *interactiveModel) Init() tea.Cmd {
	return m.convert
}

func (m *interactiveModel) convert() tea.Msg {
	src, err := readInput(m.filename)
	if err != nil {
		return loadedMsg{err: err}
	}
	module, err := text.Parse(src)
	if err != nil {
		return loadedMsg{err: err}
	}

	snaps := []snapshot{{text: text.Print(module)}}
	res, err := gpuasync.Convert(module, gpuasync.Config{
		MaxIterations: m.maxIter,
		OnIteration: func(it rewrite.Iteration) {
			snaps = append(snaps, snapshot{index: it.Index, apps: it.Applications, text: text.Print(it.Root)})
		},
	})
	return loadedMsg{err: err, snapshots: snaps, result: res}
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit

		case "left", "h":
			if m.current > 0 {
				m.current--
				m.refresh()
			}
			return m, nil

		case "right", "l":
			if m.current < len(m.snapshots)-1 {
				m.current++
				m.refresh()
			}
			return m, nil

		case "home":
			m.current = 0
			m.refresh()
			return m, nil

		case "end":
			m.current = max(len(m.snapshots)-1, 0)
			m.refresh()
			return m, nil
		}

	case tea.WindowSizeMsg:
		height := max(msg.Height-m.chromeHeight(), 1)
		if !m.ready {
			m.view = viewport.New(msg.Width, height)
			m.ready = true
			m.refresh()
		} else {
			m.view.Width = msg.Width
			m.view.Height = height
		}

	case loadedMsg:
		m.err = msg.err
		m.snapshots = msg.snapshots
		m.result = msg.result
		m.current = max(len(m.snapshots)-1, 0)
		m.refresh()
		return m, nil
	}

	var cmd tea.Cmd
	m.view, cmd = m.view.Update(msg)
	return m, cmd
}

// chromeHeight is the number of lines around the viewport.
func (m *interactiveModel) chromeHeight() int {
	return 6
}

func (m *interactiveModel) refresh() {
	if !m.ready || len(m.snapshots) == 0 {
		return
	}
	m.view.SetContent(m.snapshots[m.current].text)
	m.view.GotoTop()
}

func (m *interactiveModel) View() string {
	if m.err != nil && len(m.snapshots) == 0 {
		return errorStyle.Render(fmt.Sprintf("Error: %v\n\nPress q to quit.", m.err))
	}
	if len(m.snapshots) == 0 || !m.ready {
		return "Converting..."
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("gpuasync"))
	b.WriteString(" ")
	b.WriteString(m.filename)
	b.WriteString("  ")
	for i := range m.snapshots {
		label := fmt.Sprintf(" %d ", i)
		if i == 0 {
			label = " input "
		}
		if i == m.current {
			b.WriteString(selectedStyle.Render(label))
		} else {
			b.WriteString(label)
		}
	}
	b.WriteString("\n")

	snap := m.snapshots[m.current]
	switch {
	case snap.index == 0:
		b.WriteString(helpStyle.Render("input module"))
	case len(snap.apps) == 0:
		b.WriteString(helpStyle.Render(fmt.Sprintf("sweep %d: nothing applied", snap.index)))
	default:
		b.WriteString(fmt.Sprintf("sweep %d: ", snap.index))
		b.WriteString(patternStyle.Render(summarizeApps(snap.apps)))
	}
	b.WriteString("\n")
	if m.err != nil {
		b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
	} else {
		b.WriteString(valueStyle.Render(fmt.Sprintf("%d sweep(s), %d application(s), %d region(s)",
			m.result.Iterations, m.result.Applied, m.result.Regions)))
	}
	b.WriteString("\n\n")
	b.WriteString(m.view.View())
	b.WriteString("\n\n")
	b.WriteString(helpStyle.Render("←/→ sweep • ↑/↓ scroll • home/end first/last • q quit"))
	return b.String()
}

// summarizeApps counts applications per pattern, in first application order.
func summarizeApps(apps []rewrite.Application) string {
	var (
		order  []string
		counts = make(map[string]int)
	)
	for _, a := range apps {
		if counts[a.Pattern] == 0 {
			order = append(order, a.Pattern)
		}
		counts[a.Pattern]++
	}
	parts := make([]string, len(order))
	for i, name := range order {
		parts[i] = fmt.Sprintf("%s x%d", name, counts[name])
	}
	return strings.Join(parts, ", ")
}

func runInteractive(filename string, maxIter int) error {
	p := tea.NewProgram(newInteractiveModel(filename, maxIter), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

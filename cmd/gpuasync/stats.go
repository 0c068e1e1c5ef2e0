package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/gomlx/exceptions"

	"github.com/wippyai/gpu-async/dialect"
	"github.com/wippyai/gpu-async/ir"
	"github.com/wippyai/gpu-async/passes/asyncconv"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	kindStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

// moduleStats summarizes a converted module.
type moduleStats struct {
	ops         map[ir.Kind]int
	funcs       int
	regions     int
	inRegions   int
	deviceBytes uint64
}

func collectStats(module *ir.Operation) moduleStats {
	s := moduleStats{ops: make(map[ir.Kind]int)}
	module.Walk(func(op *ir.Operation) ir.WalkResult {
		s.ops[op.Kind()]++
		switch {
		case op.Is(dialect.Func):
			s.funcs++
		case op.Is(dialect.GPUAsyncExecute):
			s.regions++
			// Yield excluded.
			s.inRegions += dialect.ExecuteBody(op).Len() - 1
		case op.Is(dialect.GPUAlloc):
			s.deviceBytes += staticBytes(op.Result(0).Type())
		}
		return ir.Advance
	})
	return s
}

// staticBytes returns the byte size of t, or 0 when it has none.
func staticBytes(t ir.Type) uint64 {
	var n int
	if exceptions.TryCatch[error](func() { n = ir.SizeBytes(t) }) != nil {
		return 0
	}
	return uint64(n)
}

func renderStats(name string, res asyncconv.Result, s moduleStats) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("gpuasync"))
	b.WriteString(" ")
	b.WriteString(name)
	b.WriteString("\n\n")

	row := func(label string, value any) {
		fmt.Fprintf(&b, "  %-22s %s\n", label, valueStyle.Render(fmt.Sprint(value)))
	}
	row("sweeps", res.Iterations)
	row("patterns applied", res.Applied)
	row("functions", s.funcs)
	row("execute regions", s.regions)
	row("ops in regions", s.inRegions)
	row("static device memory", humanize.Bytes(s.deviceBytes))

	kinds := make([]ir.Kind, 0, len(s.ops))
	for k := range s.ops {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool {
		if s.ops[kinds[i]] != s.ops[kinds[j]] {
			return s.ops[kinds[i]] > s.ops[kinds[j]]
		}
		return kinds[i] < kinds[j]
	})
	b.WriteString("\n")
	for _, k := range kinds {
		fmt.Fprintf(&b, "  %s %s\n", kindStyle.Render(fmt.Sprintf("%-40s", k)), valueStyle.Render(fmt.Sprint(s.ops[k])))
	}
	b.WriteString("\n")
	return b.String()
}

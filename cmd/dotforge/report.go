package main

// report.go — the end-of-run report. Exactly one report is printed per
// run: every created path, every warning, and on failure every artifact
// that was rolled back.

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"dotforge/internal/axis"
	"dotforge/internal/generate"
	"dotforge/internal/linker"
	"dotforge/internal/txn"
)

var (
	headStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#5B8DEF"))
	warnStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F7B801"))
	errStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))
	okStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#4CAF50")).Bold(true)
	dimStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#999999"))
)

func printSummary(cfg axis.Configuration, warnings []string) {
	fmt.Println(headStyle.Render("configuration"))
	fmt.Print(cfg.Summary())
	for _, w := range warnings {
		fmt.Println(warnStyle.Render("warning: " + w))
	}
}

func printReport(w io.Writer, r *generate.Report) {
	if r == nil {
		return
	}
	for _, warn := range r.Warnings {
		fmt.Fprintln(w, warnStyle.Render("warning: "+warn))
	}
	switch r.State {
	case txn.StateDone:
		fmt.Fprintln(w, okStyle.Render(fmt.Sprintf("created %d paths", len(r.Created))))
		for _, p := range r.Created {
			fmt.Fprintln(w, dimStyle.Render("  "+p))
		}
		if r.Standards != linker.ModeAbsent {
			fmt.Fprintf(w, "standards: %s\n", r.Standards)
		}
	case txn.StateFailed:
		if len(r.RolledBack) > 0 {
			fmt.Fprintln(w, errStyle.Render(fmt.Sprintf("rolled back %d paths", len(r.RolledBack))))
			for _, p := range r.RolledBack {
				fmt.Fprintln(w, dimStyle.Render("  "+p))
			}
		}
	}
}

// Package tui shows a running strategy search in the terminal.
package tui

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/napolitain/isle-solver/internal/solver/strategy"
)

// SolveFunc runs a search, reporting improvements through onImprove.
type SolveFunc func(ctx context.Context, onImprove func(strategy.Improvement)) (*strategy.Result, error)

// App drives one search under a bubbletea program.
type App struct {
	workshops int
	solve     SolveFunc
	program   atomic.Pointer[tea.Program]
}

// NewApp creates a live view for a search over the given workshop count.
func NewApp(workshops int, solve SolveFunc) *App {
	return &App{workshops: workshops, solve: solve}
}

// Progress forwards a search progress snapshot to the view. It is safe to
// call before Run and from any goroutine.
func (a *App) Progress(p strategy.Progress) {
	if prog := a.program.Load(); prog != nil {
		prog.Send(progressMsg(p))
	}
}

// Run starts the search and the view. Quitting the view cancels the search;
// the best result found so far is still returned.
func (a *App) Run(ctx context.Context) (*strategy.Result, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	prog := tea.NewProgram(newSearchModel(a.workshops), tea.WithContext(ctx))
	a.program.Store(prog)
	defer a.program.Store(nil)

	done := make(chan doneMsg, 1)
	go func() {
		res, err := a.solve(ctx, func(imp strategy.Improvement) {
			prog.Send(improvedMsg(imp))
		})
		msg := doneMsg{result: res, err: err}
		done <- msg
		prog.Send(msg)
	}()

	_, runErr := prog.Run()
	killed := ctx.Err() != nil
	cancel()
	msg := <-done
	if msg.err != nil {
		return msg.result, msg.err
	}
	if runErr != nil && !killed {
		return msg.result, fmt.Errorf("live view failed: %w", runErr)
	}
	return msg.result, nil
}

var (
	title  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	label  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	value  = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	good   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	bad    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	box    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("6")).Padding(0, 1)
	footer = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Italic(true)
)

type (
	improvedMsg strategy.Improvement
	progressMsg strategy.Progress
	doneMsg     struct {
		result *strategy.Result
		err    error
	}
)

type searchModel struct {
	workshops int
	best      *strategy.Improvement
	progress  strategy.Progress
	finished  bool
	result    *strategy.Result
	err       error
}

func newSearchModel(workshops int) searchModel {
	return searchModel{workshops: workshops}
}

func (m searchModel) Init() tea.Cmd {
	return nil
}

func (m searchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			return m, tea.Quit
		}
	case improvedMsg:
		imp := strategy.Improvement(msg)
		m.best = &imp
		if imp.Candidates > m.progress.Candidates {
			m.progress.Candidates = imp.Candidates
		}
		m.progress.Improvements = imp.Found
	case progressMsg:
		m.progress = strategy.Progress(msg)
	case doneMsg:
		m.finished = true
		m.result = msg.result
		m.err = msg.err
		if msg.result != nil {
			m.progress.Candidates = msg.result.Candidates
			m.progress.Improvements = msg.result.Improvements
			m.progress.Elapsed = msg.result.Elapsed
		}
		return m, tea.Quit
	}
	return m, nil
}

func (m searchModel) View() string {
	var b strings.Builder
	b.WriteString(title.Render(fmt.Sprintf("Island Sanctuary - %d workshop(s)", m.workshops)))
	b.WriteString("\n\n")

	row := func(k, v string) {
		b.WriteString(label.Render(fmt.Sprintf("%-14s", k)))
		b.WriteString(value.Render(v))
		b.WriteByte('\n')
	}
	row("Candidates", fmt.Sprintf("%d", m.progress.Candidates))
	row("Improvements", fmt.Sprintf("%d", m.progress.Improvements))
	row("Progress", fmt.Sprintf("%.1f%%", 100*m.progress.Fraction()))
	row("Elapsed", m.progress.Elapsed.Round(10*time.Millisecond).String())

	b.WriteByte('\n')
	switch {
	case m.best != nil:
		b.WriteString(box.Render(strings.TrimRight(m.best.Strategy().String(), "\n")))
	case m.finished:
		b.WriteString(bad.Render("No recipe-disjoint combination exists."))
	default:
		b.WriteString(label.Render("Searching..."))
	}
	b.WriteString("\n\n")

	switch {
	case m.err != nil:
		b.WriteString(bad.Render("Stopped: " + m.err.Error()))
	case m.finished:
		b.WriteString(good.Render("Search complete."))
	default:
		b.WriteString(footer.Render("q to stop and keep the best so far"))
	}
	b.WriteByte('\n')
	return b.String()
}

package generator

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ConflictResolution is the decision for one conflicting file during an
// update run.
type ConflictResolution int

const (
	// Skip keeps the local file.
	Skip ConflictResolution = iota
	// Overwrite replaces the local file with the fresh render.
	Overwrite
	// ShowDiff asks the caller to display a diff and prompt again.
	ShowDiff
	// Cancel aborts the remaining conflicts.
	Cancel
)

func (r ConflictResolution) String() string {
	switch r {
	case Skip:
		return "skip"
	case Overwrite:
		return "overwrite"
	case ShowDiff:
		return "diff"
	case Cancel:
		return "cancel"
	}
	return "unknown"
}

// ConflictStrategy decides what happens to one conflicting file.
type ConflictStrategy interface {
	Resolve(path string, local, fresh []byte) (ConflictResolution, error)
}

// Resolver applies one strategy across an update run.
type Resolver struct {
	strategy ConflictStrategy
}

// NewResolver picks the strategy from the CLI flags. force overrides every
// conflict and cannot be combined with skip or diff.
func NewResolver(force, skip, diff bool) (*Resolver, error) {
	if force && (skip || diff) {
		return nil, fmt.Errorf("--force cannot be combined with --skip or --diff")
	}
	switch {
	case force:
		return &Resolver{strategy: ForceStrategy{}}, nil
	case skip:
		return &Resolver{strategy: SkipStrategy{}}, nil
	case diff:
		return &Resolver{strategy: DiffStrategy{}}, nil
	}
	return &Resolver{strategy: InteractiveStrategy{}}, nil
}

// ResolveConflict decides one file.
func (r *Resolver) ResolveConflict(path string, local, fresh []byte) (ConflictResolution, error) {
	return r.strategy.Resolve(path, local, fresh)
}

// ForceStrategy overwrites every conflict.
type ForceStrategy struct{}

func (ForceStrategy) Resolve(string, []byte, []byte) (ConflictResolution, error) {
	return Overwrite, nil
}

// SkipStrategy keeps every local file.
type SkipStrategy struct{}

func (SkipStrategy) Resolve(string, []byte, []byte) (ConflictResolution, error) {
	return Skip, nil
}

// DiffStrategy pages the diff before prompting, and re-pages it when the
// prompt asks for it again. It never returns ShowDiff to the caller.
type DiffStrategy struct{}

func (DiffStrategy) Resolve(path string, local, fresh []byte) (ConflictResolution, error) {
	for {
		if err := pageDiff(path, local, fresh); err != nil {
			return Cancel, err
		}
		res, err := promptConflict(path, local, fresh)
		if err != nil || res != ShowDiff {
			return res, err
		}
	}
}

// InteractiveStrategy prompts per file. A ShowDiff answer goes back to the
// caller, which displays the diff and asks again.
type InteractiveStrategy struct{}

func (InteractiveStrategy) Resolve(path string, local, fresh []byte) (ConflictResolution, error) {
	return promptConflict(path, local, fresh)
}

var (
	conflictTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214"))
	conflictPathStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("81"))
	conflictMetaStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	conflictCursorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("170"))
)

type conflictChoice struct {
	label string
	res   ConflictResolution
}

// conflictPrompt is the arrow-key menu shown for one conflicting file.
type conflictPrompt struct {
	path    string
	meta    string
	choices []conflictChoice
	cursor  int
	aborted bool
}

func newConflictPrompt(path string, local, fresh []byte) conflictPrompt {
	meta := fmt.Sprintf("local %s, update %s", humanSize(len(local)), humanSize(len(fresh)))
	if info, err := os.Stat(path); err == nil {
		meta += ", modified " + humanAge(time.Since(info.ModTime()))
	}
	return conflictPrompt{
		path: path,
		meta: meta,
		choices: []conflictChoice{
			{"keep my version", Skip},
			{"take the update", Overwrite},
			{"view the diff", ShowDiff},
			{"cancel the update", Cancel},
		},
	}
}

func (m conflictPrompt) Init() tea.Cmd { return nil }

func (m conflictPrompt) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.choices)-1 {
			m.cursor++
		}
	case "enter":
		return m, tea.Quit
	case "q", "esc", "ctrl+c":
		m.aborted = true
		return m, tea.Quit
	}
	return m, nil
}

func (m conflictPrompt) View() string {
	s := conflictTitleStyle.Render("Conflict: ") + conflictPathStyle.Render(m.path) + "\n"
	s += conflictMetaStyle.Render(m.meta) + "\n\n"
	for i, c := range m.choices {
		if i == m.cursor {
			s += conflictCursorStyle.Render("> "+c.label) + "\n"
		} else {
			s += "  " + c.label + "\n"
		}
	}
	s += "\n" + conflictMetaStyle.Render("↑/↓ move, enter select, q cancel") + "\n"
	return s
}

func promptConflict(path string, local, fresh []byte) (ConflictResolution, error) {
	final, err := tea.NewProgram(newConflictPrompt(path, local, fresh)).Run()
	if err != nil {
		return Cancel, fmt.Errorf("conflict prompt: %w", err)
	}
	m := final.(conflictPrompt)
	if m.aborted {
		return Cancel, nil
	}
	return m.choices[m.cursor].res, nil
}

// diffPager scrolls a rendered diff in the alternate screen.
type diffPager struct {
	title   string
	content string
	vp      viewport.Model
	ready   bool
}

func (m diffPager) Init() tea.Cmd { return nil }

func (m diffPager) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		const headerHeight = 2
		if !m.ready {
			m.vp = viewport.New(msg.Width, msg.Height-headerHeight)
			m.vp.SetContent(m.content)
			m.ready = true
		} else {
			m.vp.Width = msg.Width
			m.vp.Height = msg.Height - headerHeight
		}
	}
	var cmd tea.Cmd
	m.vp, cmd = m.vp.Update(msg)
	return m, cmd
}

func (m diffPager) View() string {
	if !m.ready {
		return "loading diff..."
	}
	header := conflictTitleStyle.Render(m.title) + conflictMetaStyle.Render("  (↑/↓ scroll, q close)")
	return header + "\n\n" + m.vp.View()
}

func pageDiff(path string, local, fresh []byte) error {
	diff := NewDiffGenerator().GenerateDiffDefault(path, path, local, fresh)
	if diff == "" {
		diff = "no textual changes"
	}
	pager := diffPager{title: "Changes to " + path, content: diff}
	if _, err := tea.NewProgram(pager, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("diff pager: %w", err)
	}
	return nil
}

func humanSize(n int) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(n)/(1<<10))
	}
	return fmt.Sprintf("%d B", n)
}

func humanAge(d time.Duration) string {
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	}
	return fmt.Sprintf("%dd ago", int(d.Hours()/24))
}

package generator

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// DiffOptions tune unified diff output. Zero values pick the defaults:
// three context lines, tabs as four spaces, no line numbers.
type DiffOptions struct {
	ContextLines int
	TabWidth     int
	ShowLineNums bool
}

func (o DiffOptions) normalized() DiffOptions {
	if o.ContextLines <= 0 {
		o.ContextLines = 3
	}
	if o.TabWidth <= 0 {
		o.TabWidth = 4
	}
	return o
}

var (
	diffHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("81"))
	diffHunkStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	diffAddStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	diffDelStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	diffCtxStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

// DiffGenerator renders colored unified diffs sized to the terminal.
type DiffGenerator struct {
	width int
}

// NewDiffGenerator sizes the diff to the current terminal, falling back to
// 100 columns when stdout is not one.
func NewDiffGenerator() *DiffGenerator {
	width := 100
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 20 {
		width = w
	}
	return &DiffGenerator{width: width}
}

// GenerateDiffDefault renders the diff of two contents with default options.
func (g *DiffGenerator) GenerateDiffDefault(oldPath, newPath string, oldContent, newContent []byte) string {
	return g.GenerateDiff(oldPath, newPath, oldContent, newContent, DiffOptions{})
}

// GenerateDiff renders a unified diff of two contents. Identical contents
// produce an empty string; binary content a one-line summary.
func (g *DiffGenerator) GenerateDiff(oldPath, newPath string, oldContent, newContent []byte, opts DiffOptions) string {
	if bytes.Equal(oldContent, newContent) {
		return ""
	}
	opts = opts.normalized()

	var b strings.Builder
	b.WriteString(diffHeaderStyle.Render("--- "+oldPath) + "\n")
	b.WriteString(diffHeaderStyle.Render("+++ "+newPath) + "\n")

	if isBinary(oldContent) || isBinary(newContent) {
		b.WriteString(fmt.Sprintf("binary content differs (%d -> %d bytes)\n",
			len(oldContent), len(newContent)))
		return b.String()
	}

	edits := diffLines(splitLines(oldContent), splitLines(newContent))
	for _, h := range groupHunks(edits, opts.ContextLines) {
		b.WriteString(diffHunkStyle.Render(fmt.Sprintf("@@ -%d,%d +%d,%d @@",
			h.oldStart, h.oldCount, h.newStart, h.newCount)) + "\n")
		for _, e := range h.edits {
			b.WriteString(g.formatEdit(e, opts) + "\n")
		}
	}
	return b.String()
}

type lineKind int

const (
	lineContext lineKind = iota
	lineRemoved
	lineAdded
)

// lineEdit is one line of the edit script. Line numbers are 1-based and
// zero on the side the line does not exist on.
type lineEdit struct {
	kind    lineKind
	text    string
	oldLine int
	newLine int
}

// diffLines computes a line-level edit script from the classic longest
// common subsequence table. Generated files are small, so the quadratic
// table is fine.
func diffLines(a, b []string) []lineEdit {
	n, m := len(a), len(b)
	lcs := make([][]int, n+1)
	for i := range lcs {
		lcs[i] = make([]int, m+1)
	}
	for i := n - 1; i >= 0; i-- {
		for j := m - 1; j >= 0; j-- {
			switch {
			case a[i] == b[j]:
				lcs[i][j] = lcs[i+1][j+1] + 1
			case lcs[i+1][j] >= lcs[i][j+1]:
				lcs[i][j] = lcs[i+1][j]
			default:
				lcs[i][j] = lcs[i][j+1]
			}
		}
	}

	var edits []lineEdit
	i, j := 0, 0
	for i < n && j < m {
		switch {
		case a[i] == b[j]:
			edits = append(edits, lineEdit{lineContext, a[i], i + 1, j + 1})
			i++
			j++
		case lcs[i+1][j] >= lcs[i][j+1]:
			edits = append(edits, lineEdit{lineRemoved, a[i], i + 1, 0})
			i++
		default:
			edits = append(edits, lineEdit{lineAdded, b[j], 0, j + 1})
			j++
		}
	}
	for ; i < n; i++ {
		edits = append(edits, lineEdit{lineRemoved, a[i], i + 1, 0})
	}
	for ; j < m; j++ {
		edits = append(edits, lineEdit{lineAdded, b[j], 0, j + 1})
	}
	return edits
}

type diffHunk struct {
	edits    []lineEdit
	oldStart int
	oldCount int
	newStart int
	newCount int
}

// groupHunks windows the edit script into unified hunks, merging changes
// whose context lines would overlap.
func groupHunks(edits []lineEdit, context int) []diffHunk {
	var hunks []diffHunk
	i := 0
	for i < len(edits) {
		if edits[i].kind == lineContext {
			i++
			continue
		}
		start := i - context
		if start < 0 {
			start = 0
		}
		last := i
		j := i + 1
		for j < len(edits) {
			if edits[j].kind != lineContext {
				last = j
				j++
				continue
			}
			if j-last > 2*context {
				break
			}
			j++
		}
		end := last + context + 1
		if end > len(edits) {
			end = len(edits)
		}
		hunks = append(hunks, makeHunk(edits[start:end]))
		i = end
	}
	return hunks
}

func makeHunk(edits []lineEdit) diffHunk {
	h := diffHunk{edits: edits}
	for _, e := range edits {
		if e.kind != lineAdded {
			if h.oldStart == 0 {
				h.oldStart = e.oldLine
			}
			h.oldCount++
		}
		if e.kind != lineRemoved {
			if h.newStart == 0 {
				h.newStart = e.newLine
			}
			h.newCount++
		}
	}
	return h
}

func (g *DiffGenerator) formatEdit(e lineEdit, opts DiffOptions) string {
	prefix, style := " ", diffCtxStyle
	switch e.kind {
	case lineAdded:
		prefix, style = "+", diffAddStyle
	case lineRemoved:
		prefix, style = "-", diffDelStyle
	}

	line := prefix
	if opts.ShowLineNums {
		line += lineRef(e)
	}
	line += strings.ReplaceAll(e.text, "\t", strings.Repeat(" ", opts.TabWidth))

	if runes := []rune(line); len(runes) > g.width {
		line = string(runes[:g.width-1]) + "…"
	}
	return style.Render(line)
}

func lineRef(e lineEdit) string {
	switch e.kind {
	case lineAdded:
		return fmt.Sprintf("%4s %4d ", "", e.newLine)
	case lineRemoved:
		return fmt.Sprintf("%4d %4s ", e.oldLine, "")
	}
	return fmt.Sprintf("%4d %4d ", e.oldLine, e.newLine)
}

// splitLines drops the final newline so a trailing "\n" does not read as an
// extra empty line.
func splitLines(content []byte) []string {
	s := strings.TrimSuffix(string(content), "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

func isBinary(content []byte) bool {
	sample := content
	if len(sample) > 1024 {
		sample = sample[:1024]
	}
	return bytes.IndexByte(sample, 0) != -1
}

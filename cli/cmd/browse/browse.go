// Package browse implements an interactive fuzzy finder over loaded values.
package browse

import (
	"context"
	"fmt"
	"io"
	"iter"
	"log/slog"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ardnew/dotenv/dotenv"
	"github.com/ardnew/dotenv/log"
)

const (
	prompt        = "/ "
	defaultWidth  = 80
	defaultHeight = 12
)

// Styles.
var (
	promptStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)
	nameStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	matchStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("4")).Bold(true)
	kindStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("5"))
	valueStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	hintStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("4"))
)

// entry is one loaded value.
type entry struct {
	name  string
	value dotenv.Value
}

// pair yields the entry as a single name and value.
func (e entry) pair(yield func(string, dotenv.Value) bool) { yield(e.name, e.value) }

// export writes the entry to w as a dotenv assignment.
func (e entry) export(ctx context.Context, w io.Writer) error {
	return dotenv.Export(ctx, w, dotenv.FormatDotenv, e.pair)
}

// entries adapts a slice of entry to [fuzzy.Source], matching on names.
type entries []entry

func (e entries) String(i int) string { return e[i].name }
func (e entries) Len() int            { return len(e) }

// find returns the entries whose names fuzzy-match query, best first.
// An empty query matches everything in load order.
func (e entries) find(query string) fuzzy.Matches {
	if strings.TrimSpace(query) == "" {
		all := make(fuzzy.Matches, len(e))
		for i := range e {
			all[i] = fuzzy.Match{Str: e[i].name, Index: i}
		}

		return all
	}

	return fuzzy.FindFrom(query, e)
}

// model is the Bubble Tea model for the browser.
type model struct {
	ctxFunc  func() context.Context
	logger   log.Logger
	input    textinput.Model
	entries  entries
	matches  fuzzy.Matches
	selected int
	offset   int
	width    int
	height   int
	chosen   *entry
	quitting bool
}

func newModel(ctx context.Context, values iter.Seq2[string, dotenv.Value], logger log.Logger) model {
	ti := textinput.New()
	ti.Prompt = promptStyle.Render(prompt)
	ti.Placeholder = "filter by name"
	ti.Focus()
	ti.CharLimit = 256
	ti.Width = defaultWidth

	var es entries
	for name, v := range values {
		es = append(es, entry{name: name, value: v})
	}

	return model{
		ctxFunc: func() context.Context { return ctx },
		logger:  logger,
		input:   ti,
		entries: es,
		matches: es.find(""),
		width:   defaultWidth,
		height:  defaultHeight,
	}
}

// Run starts the browser over values. The TUI draws on stderr; the entry
// chosen with Enter is written to out as a dotenv assignment.
func Run(
	ctx context.Context,
	values iter.Seq2[string, dotenv.Value],
	out io.Writer,
	logger log.Logger,
) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	m := newModel(ctx, values, logger)

	logger.TraceContext(ctx, "browse start", slog.Int("entries", len(m.entries)))

	final, err := tea.NewProgram(m,
		tea.WithContext(ctx),
		tea.WithOutput(os.Stderr),
	).Run()
	if err != nil {
		return err
	}

	if fm, ok := final.(model); ok && fm.chosen != nil {
		err = fm.chosen.export(ctx, out)
	}

	return err
}

func (m model) Init() tea.Cmd { return textinput.Blink }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = max(msg.Height-3, 1)
		m.input.Width = msg.Width - len(prompt) - 2
		m.scroll()

		return m, nil
	}

	var cmd tea.Cmd

	m.input, cmd = m.input.Update(msg)

	return m, cmd
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		m.quitting = true

		return m, tea.Quit

	case tea.KeyEnter:
		if len(m.matches) > 0 {
			e := m.entries[m.matches[m.selected].Index]
			m.chosen = &e

			m.logger.TraceContext(m.ctxFunc(), "browse chosen",
				slog.String("name", e.name),
			)
		}

		m.quitting = true

		return m, tea.Quit

	case tea.KeyUp, tea.KeyCtrlP:
		if m.selected > 0 {
			m.selected--
		}

		m.scroll()

		return m, nil

	case tea.KeyDown, tea.KeyCtrlN:
		if m.selected < len(m.matches)-1 {
			m.selected++
		}

		m.scroll()

		return m, nil
	}

	var cmd tea.Cmd

	before := m.input.Value()
	m.input, cmd = m.input.Update(msg)

	if m.input.Value() != before {
		m.matches = m.entries.find(m.input.Value())
		m.selected = 0
		m.offset = 0
	}

	return m, cmd
}

// scroll keeps the selection inside the visible window.
func (m *model) scroll() {
	switch {
	case m.selected < m.offset:
		m.offset = m.selected
	case m.selected >= m.offset+m.height:
		m.offset = m.selected - m.height + 1
	}
}

func (m model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(m.input.View())
	b.WriteString("\n")

	if len(m.matches) == 0 {
		b.WriteString(hintStyle.Render("no matches"))
		b.WriteString("\n")

		return b.String()
	}

	end := min(m.offset+m.height, len(m.matches))

	for i := m.offset; i < end; i++ {
		b.WriteString(m.renderRow(m.matches[i], i == m.selected))
		b.WriteString("\n")
	}

	b.WriteString(hintStyle.Render(fmt.Sprintf(
		"%d/%d  ↑/↓ select  enter print  esc quit",
		len(m.matches), len(m.entries),
	)))
	b.WriteString("\n")

	return b.String()
}

// renderRow renders one match as "NAME kind value" with the matched
// characters of NAME highlighted, truncated to the terminal width.
func (m model) renderRow(match fuzzy.Match, selected bool) string {
	e := m.entries[match.Index]

	if selected {
		return selectedStyle.Render(truncate(
			fmt.Sprintf("%s %s %s", e.name, e.value.Kind, oneLine(e.value.String())),
			m.width,
		))
	}

	matched := make(map[int]bool, len(match.MatchedIndexes))
	for _, idx := range match.MatchedIndexes {
		matched[idx] = true
	}

	var b strings.Builder

	for i, r := range e.name {
		if matched[i] {
			b.WriteString(matchStyle.Render(string(r)))
		} else {
			b.WriteString(nameStyle.Render(string(r)))
		}
	}

	b.WriteString(" ")
	b.WriteString(kindStyle.Render(e.value.Kind.String()))
	b.WriteString(" ")

	used := lipgloss.Width(b.String())
	b.WriteString(valueStyle.Render(truncate(oneLine(e.value.String()), m.width-used)))

	return b.String()
}

// oneLine replaces line breaks so multi-line values fit one row.
func oneLine(s string) string { return strings.ReplaceAll(s, "\n", "⏎") }

// truncate shortens s to at most width cells, marking the cut with "…".
func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}

	if lipgloss.Width(s) <= width {
		return s
	}

	r := []rune(s)
	for len(r) > 0 && lipgloss.Width(string(r))+1 > width {
		r = r[:len(r)-1]
	}

	return string(r) + "…"
}

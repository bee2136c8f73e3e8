package main

import (
	"fmt"
	"strings"

	"github.com/binrec/nrbf-go/nrbf"
	"github.com/binrec/nrbf-go/record"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var replCmd = &cobra.Command{
	Use:   "repl <nrbf-file>",
	Short: "Browse an NRBF stream's record graph interactively",
	Long: `Open an interactive tree browser over an NRBF stream's decoded
record graph. Use up/down (or j/k) to move the selection, enter to view
a record's full member detail, and q to quit.`,
	Args: cobra.ExactArgs(1),
	RunE: runRepl,
}

var (
	replTitleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	replSelectedStyle = lipgloss.NewStyle().Background(lipgloss.Color("4")).Foreground(lipgloss.Color("15"))
	replDimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

func runRepl(cmd *cobra.Command, args []string) error {
	g, err := decodeFile(args[0])
	if err != nil {
		return err
	}

	m := newReplModel(g)
	program := tea.NewProgram(m, tea.WithAltScreen())
	_, err = program.Run()
	return err
}

type treeLine struct {
	label string
	rec   record.Record
}

type replModel struct {
	g      *nrbf.Graph
	lines  []treeLine
	cursor int

	list   viewport.Model
	detail viewport.Model

	width, height int
	ready         bool
}

func newReplModel(g *nrbf.Graph) *replModel {
	m := &replModel{g: g}
	m.lines = flattenGraph(g)
	return m
}

// flattenGraph walks g once (reusing the same visited-set DFS the library
// exposes for other consumers) and produces one line per distinct record.
func flattenGraph(g *nrbf.Graph) []treeLine {
	lines := []treeLine{{label: fmt.Sprintf("header: root=%d major=%d minor=%d", g.Header.RootId, g.Header.MajorVersion, g.Header.MinorVersion)}}
	for id, lib := range g.Libraries {
		lines = append(lines, treeLine{label: fmt.Sprintf("library %d: %s", id, lib.LibraryName)})
	}

	g.Walk(func(rec record.Record) bool {
		lines = append(lines, treeLine{label: describeRecord(rec), rec: rec})
		return true
	})
	return lines
}

func describeRecord(rec record.Record) string {
	id, hasId := rec.ObjectID()
	switch v := rec.(type) {
	case *record.ClassRecord:
		return fmt.Sprintf("[%d] %s %s", id, v.OriginalKind, v.Info.Name)
	case *record.BinaryObjectStringRecord:
		return fmt.Sprintf("[%d] BinaryObjectString %q", id, v.Value)
	case *record.BinaryArrayRecord:
		return fmt.Sprintf("[%d] BinaryArray %s lengths=%v", id, v.ArrayKind, v.Lengths)
	case *record.ArraySingleObjectRecord:
		return fmt.Sprintf("[%d] ArraySingleObject len=%d", id, record.LogicalLength(v.Elements))
	case *record.ArraySingleStringRecord:
		return fmt.Sprintf("[%d] ArraySingleString len=%d", id, record.LogicalLength(v.Elements))
	case *record.ArraySinglePrimitiveRecord:
		return fmt.Sprintf("[%d] ArraySinglePrimitive %s len=%d", id, v.ElementType, len(v.Elements))
	default:
		if hasId {
			return fmt.Sprintf("[%d] %s", id, rec.RecordKind())
		}
		return rec.RecordKind().String()
	}
}

func detailFor(g *nrbf.Graph, rec record.Record) string {
	if rec == nil {
		return ""
	}
	v, ok := rec.(*record.ClassRecord)
	if !ok {
		return describeRecord(rec)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", v.OriginalKind, v.Info.Name)
	for _, name := range v.Info.MemberNames {
		fmt.Fprintf(&b, "  %s = %s\n", name, formatValue(v.Values[name]))
	}
	if refs := g.ReferencedBy(v.Info.ObjectId); len(refs) > 0 {
		fmt.Fprintf(&b, "  referenced by: %v\n", refs)
	}
	return b.String()
}

func (m *replModel) Init() tea.Cmd { return nil }

func (m *replModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		listHeight := m.height - 3
		if !m.ready {
			m.list = viewport.New(m.width, listHeight)
			m.detail = viewport.New(m.width, listHeight)
			m.ready = true
		} else {
			m.list.Width, m.list.Height = m.width, listHeight
			m.detail.Width, m.detail.Height = m.width, listHeight
		}
		m.refresh()

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
			m.refresh()
		case "down", "j":
			if m.cursor < len(m.lines)-1 {
				m.cursor++
			}
			m.refresh()
		case "enter":
			m.refresh()
		}
	}
	return m, nil
}

func (m *replModel) refresh() {
	if !m.ready {
		return
	}
	var b strings.Builder
	for i, line := range m.lines {
		style := lipgloss.NewStyle()
		if i == m.cursor {
			style = replSelectedStyle
		}
		fmt.Fprintln(&b, style.Render(line.label))
	}
	m.list.SetContent(b.String())
	m.detail.SetContent(detailFor(m.g, m.lines[m.cursor].rec))
}

func (m *replModel) View() string {
	if !m.ready {
		return "loading..."
	}
	header := replTitleStyle.Render(fmt.Sprintf("nrbfdump repl — %d records (enter: detail, j/k: move, q: quit)", len(m.lines)))
	body := lipgloss.JoinHorizontal(lipgloss.Top, m.list.View(), replDimStyle.Render(" │ "), m.detail.View())
	return lipgloss.JoinVertical(lipgloss.Left, header, body)
}

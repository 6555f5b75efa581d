package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/syntree/pkg/forest"
)

// List styles.
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
	listTerminalStyle = lipgloss.NewStyle().Foreground(colorGreen).Italic(true)
)

// viewCommand creates the view command for interactive tree browsing.
func (c *CLI) viewCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "view <bracket-or-file>",
		Short: "Browse a syntax tree interactively in the terminal",
		Long: `Browse a syntax tree interactively in the terminal.

Nodes are listed in depth-first order with indentation showing tree
depth. Subtrees can be collapsed and expanded to navigate large trees.

Keys:
  up/k, down/j   move the cursor
  enter, space   collapse or expand the selected subtree
  q, esc         quit`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := loadForest(args[0])
			if err != nil {
				return err
			}
			if f.NodeCount() == 0 {
				printInfo("Forest is empty")
				return nil
			}

			model := NewTreeModel(f)
			_, err = tea.NewProgram(model, tea.WithContext(cmd.Context())).Run()
			return err
		},
	}
}

// treeRow is one visible line of the browser.
type treeRow struct {
	node     *forest.Node
	depth    int
	children int
}

// TreeModel is the bubbletea model for the tree browser.
type TreeModel struct {
	forest    *forest.Forest
	collapsed map[int64]bool
	rows      []treeRow
	Cursor    int
	Height    int
	Offset    int
}

// NewTreeModel creates a browser over the given forest.
func NewTreeModel(f *forest.Forest) TreeModel {
	m := TreeModel{
		forest:    f,
		collapsed: make(map[int64]bool),
		Height:    20,
	}
	m.rebuildRows()
	return m
}

// rebuildRows flattens the forest depth-first, skipping collapsed subtrees.
func (m *TreeModel) rebuildRows() {
	m.rows = m.rows[:0]
	for _, root := range m.forest.Roots() {
		m.appendRows(root, 0)
	}
	if m.Cursor >= len(m.rows) {
		m.Cursor = len(m.rows) - 1
	}
}

func (m *TreeModel) appendRows(n *forest.Node, depth int) {
	children := m.forest.ChildrenOf(n.ID)
	m.rows = append(m.rows, treeRow{node: n, depth: depth, children: len(children)})
	if m.collapsed[n.ID] {
		return
	}
	for _, c := range children {
		m.appendRows(c, depth+1)
	}
}

func (m TreeModel) Init() tea.Cmd {
	return nil
}

func (m TreeModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.rows)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter", " ":
			row := m.rows[m.Cursor]
			if row.children > 0 {
				m.collapsed[row.node.ID] = !m.collapsed[row.node.ID]
				m.rebuildRows()
			}
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m TreeModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Syntax Tree"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ collapse/expand  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.rows) {
		end = len(m.rows)
	}

	for i := m.Offset; i < end; i++ {
		row := m.rows[i]

		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		marker := "  "
		if row.children > 0 {
			marker = "▾ "
			if m.collapsed[row.node.ID] {
				marker = "▸ "
			}
		}

		label := row.node.Label
		line := cursor + strings.Repeat("  ", row.depth) + marker + label
		if row.children > 0 {
			line += listDimStyle.Render(fmt.Sprintf(" (%d)", row.children))
		}

		switch {
		case i == m.Cursor:
			b.WriteString(listSelectedStyle.Render(line))
		case row.node.Kind == forest.Terminal:
			b.WriteString(listTerminalStyle.Render(line))
		default:
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.rows))))

	return b.String()
}

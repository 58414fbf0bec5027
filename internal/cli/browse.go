package cli

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/tburdett/owl2json/pkg/errors"
	"github.com/tburdett/owl2json/pkg/hierarchy"
)

var (
	browseHeaderStyle   = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	browseSelectedStyle = lipgloss.NewStyle().Foreground(colorGreen).Bold(true)
	browseLeafStyle     = lipgloss.NewStyle().Foreground(colorWhite)
	browseAggStyle      = lipgloss.NewStyle().Foreground(colorDim).Italic(true)
)

// browseCommand creates the browse command.
func (c *CLI) browseCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "browse <file.json>",
		Short: "Explore a generated tree interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := readTree(args[0])
			if err != nil {
				return err
			}
			p := tea.NewProgram(newBrowseModel(root), tea.WithAltScreen(), tea.WithContext(cmd.Context()))
			_, err = p.Run()
			return err
		},
	}
}

func readTree(path string) (*hierarchy.Node, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "tree file %s", path)
		}
		return nil, err
	}
	defer f.Close()
	root, err := hierarchy.ReadJSON(f)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "%s", path)
	}
	return root, nil
}

// browseModel is the bubbletea model for drilling through a tree. path runs
// from the root to the node whose children are listed; cursors remembers
// the selection at each level above the current one.
type browseModel struct {
	path    []*hierarchy.Node
	cursors []int
	cursor  int
	offset  int
	height  int
}

func newBrowseModel(root *hierarchy.Node) browseModel {
	return browseModel{path: []*hierarchy.Node{root}, height: 15}
}

func (m browseModel) current() *hierarchy.Node { return m.path[len(m.path)-1] }

func (m browseModel) selected() (*hierarchy.Node, bool) {
	kids := m.current().Children
	if m.cursor >= len(kids) {
		return nil, false
	}
	return kids[m.cursor], true
}

func (m browseModel) Init() tea.Cmd { return nil }

func (m browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.current().Children)-1 {
				m.cursor++
			}
		case "home", "g":
			m.cursor = 0
		case "end", "G":
			m.cursor = max(0, len(m.current().Children)-1)
		case "enter", "right", "l":
			if n, ok := m.selected(); ok && !n.IsLeaf() {
				m.path = append(m.path, n)
				m.cursors = append(m.cursors, m.cursor)
				m.cursor, m.offset = 0, 0
			}
		case "backspace", "left", "h":
			if len(m.path) > 1 {
				m.path = m.path[:len(m.path)-1]
				m.cursor = m.cursors[len(m.cursors)-1]
				m.cursors = m.cursors[:len(m.cursors)-1]
				m.offset = max(0, m.cursor-m.height+1)
			}
		}
	case tea.WindowSizeMsg:
		m.height = max(5, msg.Height-8)
	}

	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+m.height {
		m.offset = m.cursor - m.height + 1
	}
	return m, nil
}

func (m browseModel) View() string {
	var b strings.Builder
	cur := m.current()

	names := make([]string, len(m.path))
	for i, n := range m.path {
		names[i] = n.Name
	}
	b.WriteString(StyleTitle.Render(strings.Join(names, " › ")))
	b.WriteString(StyleDim.Render(fmt.Sprintf("  size %d", cur.Size)))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("↑/↓ navigate  ⏎/→ open  ←/⌫ back  q quit"))
	b.WriteString("\n\n")

	if cur.IsLeaf() {
		b.WriteString(StyleDim.Render("  (no children)"))
		b.WriteString("\n")
		return b.String()
	}

	end := min(m.offset+m.height, len(cur.Children))
	rows := make([][]string, 0, end-m.offset)
	for i := m.offset; i < end; i++ {
		n := cur.Children[i]
		mark := "  "
		if i == m.cursor {
			mark = "▸ "
		}
		kids := "—"
		if !n.IsLeaf() {
			kids = strconv.Itoa(len(n.Children))
		}
		rows = append(rows, []string{mark, n.Name, strconv.Itoa(n.Size), share(n.Size, cur.Size), kids})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Class", "Size", "Share", "Children").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return browseHeaderStyle
			}
			idx := m.offset + row
			if idx >= len(cur.Children) {
				return lipgloss.NewStyle()
			}
			switch n := cur.Children[idx]; {
			case idx == m.cursor:
				return browseSelectedStyle
			case n.IsAggregate():
				return browseAggStyle
			default:
				return browseLeafStyle
			}
		})

	b.WriteString(t.Render())
	b.WriteString("\n")
	b.WriteString(StyleDim.Render(fmt.Sprintf("  [%d/%d]", m.cursor+1, len(cur.Children))))
	if n, ok := m.selected(); ok && n.URI != "" {
		b.WriteString("  ")
		b.WriteString(StyleDim.Render(n.URI))
	}
	b.WriteString("\n")
	return b.String()
}

// share formats part as a percentage of whole.
func share(part, whole int) string {
	if whole <= 0 {
		return "—"
	}
	return fmt.Sprintf("%.1f%%", 100*float64(part)/float64(whole))
}

package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/texpack/texpack/pkg/mapfile"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// TextureListModel - Interactive map browsing
// =============================================================================

// TextureListModel is the bubbletea model for browsing atlas textures.
// The left pane lists textures; selecting one shows its frames.
type TextureListModel struct {
	Map      *mapfile.Map
	Cursor   int
	Expanded bool
	Height   int
	Offset   int
}

// NewTextureListModel creates a texture list model over a parsed map.
func NewTextureListModel(m *mapfile.Map) TextureListModel {
	return TextureListModel{
		Map:    m,
		Height: 15,
	}
}

func (m TextureListModel) Init() tea.Cmd {
	return nil
}

func (m TextureListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			if m.Expanded {
				m.Expanded = false
				return m, nil
			}
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Map.Textures)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			m.Expanded = !m.Expanded
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m TextureListModel) View() string {
	if m.Expanded {
		return m.frameView()
	}
	return m.listView()
}

// listView renders the scrolling texture table.
func (m TextureListModel) listView() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Atlas Textures"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ frames  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Map.Textures) {
		end = len(m.Map.Textures)
	}

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		t := m.Map.Textures[i]

		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		size := "—"
		if len(t.Frames) > 0 {
			size = fmt.Sprintf("%dx%d", t.Frames[0][2], t.Frames[0][3])
		}
		rows = append(rows, []string{cursor, t.Name, fmt.Sprintf("%d", len(t.Frames)), size})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	tbl := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Texture", "Frames", "Size").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if m.Offset+row == m.Cursor {
				return listSelectedStyle
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		})

	b.WriteString(tbl.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Map.Textures))))

	return b.String()
}

// frameView renders the frames of the selected texture.
func (m TextureListModel) frameView() string {
	t := m.Map.Textures[m.Cursor]

	var b strings.Builder
	b.WriteString(StyleTitle.Render(t.Name))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("esc back  q quit"))
	b.WriteString("\n\n")

	for i, f := range t.Frames {
		line := fmt.Sprintf("  frame %-3d %4d,%-4d %dx%d", i, f[0], f[1], f[2], f[3])
		b.WriteString(StyleValue.Render(line))
		b.WriteString("\n")
	}
	return b.String()
}

package cli

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/texpack/texpack/pkg/mapfile"
)

// inspectCommand creates the inspect command for examining map files.
func (c *CLI) inspectCommand() *cobra.Command {
	var interactive bool

	cmd := &cobra.Command{
		Use:   "inspect <map-file>",
		Short: "Summarize an atlas map file",
		Long: `Inspect an atlas map file in either format and print its textures
and frame positions. With --interactive, browse textures in a list.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := readMap(args[0])
			if err != nil {
				return err
			}
			if interactive {
				return runTextureBrowser(m)
			}
			printMap(args[0], m)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "browse textures interactively")
	return cmd
}

// readMap opens and parses a map file in either format.
func readMap(path string) (*mapfile.Map, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return mapfile.Read(f)
}

// printMap prints a static summary of a parsed map file.
func printMap(path string, m *mapfile.Map) {
	printKeyValue("File", path)
	printKeyValue("Format", m.Format)
	if m.Format == "binary" {
		printKeyValue("Canvas", fmt.Sprintf("%dx%d", m.Width, m.Height))
	}
	printKeyValue("Textures", fmt.Sprintf("%d", len(m.Textures)))
	printKeyValue("Frames", fmt.Sprintf("%d", m.FrameCount()))
	fmt.Println()

	for _, t := range m.Textures {
		printInfo("%s (%d frames)", t.Name, len(t.Frames))
		for _, f := range t.Frames {
			printDetail("%4d,%-4d %dx%d", f[0], f[1], f[2], f[3])
		}
	}
}

// runTextureBrowser launches the interactive texture list.
func runTextureBrowser(m *mapfile.Map) error {
	model := NewTextureListModel(m)
	_, err := tea.NewProgram(model).Run()
	return err
}

package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/texpack/texpack/pkg/pack"
	"github.com/texpack/texpack/pkg/pipeline"
)

// Tree output formats.
const (
	treeFormatDOT = "dot"
	treeFormatSVG = "svg"
	treeFormatPNG = "png"
)

// treeCommand creates the tree command for visualizing the packing tree.
// The atlas is packed in memory only; no image or map files are written.
func (c *CLI) treeCommand() *cobra.Command {
	var (
		output string
		format string
		size   int
	)

	cmd := &cobra.Command{
		Use:   "tree [name=path ...]",
		Short: "Export the packing tree for a set of textures",
		Long: `Pack the given textures in memory and export the resulting region
tree as Graphviz DOT, SVG, or PNG. Useful for seeing how the packer
splits the canvas.

Examples:
  texpack tree hero.png tile.png                 # DOT to stdout
  texpack tree -f svg -o tree.svg sprites/*.png`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runTree(cmd, args, output, format, size)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout for dot if empty)")
	cmd.Flags().StringVarP(&format, "format", "f", treeFormatDOT, "output format: dot, svg, or png")
	cmd.Flags().IntVarP(&size, "size", "s", 0, "fixed square canvas size (0 = grow automatically)")

	return cmd
}

func (c *CLI) runTree(cmd *cobra.Command, args []string, output, format string, size int) error {
	if format != treeFormatDOT && format != treeFormatSVG && format != treeFormatPNG {
		return fmt.Errorf("invalid format: %s (must be 'dot', 'svg', or 'png')", format)
	}

	specs, err := parseSpecs(args)
	if err != nil {
		return err
	}
	runner, err := c.newRunner(cmd.Context(), cacheBackendFile, "")
	if err != nil {
		return err
	}
	defer runner.Cache.Close()

	textures, _, err := runner.Measure(cmd.Context(), specs)
	if err != nil {
		return err
	}
	a, err := pipeline.Pack(textures, size)
	if err != nil {
		return err
	}
	loggerFromContext(cmd.Context()).Debug("packed for tree export", "width", a.Width, "height", a.Height)

	dot := pack.ToDOT(a.Root())

	var data []byte
	switch format {
	case treeFormatDOT:
		data = []byte(dot)
	case treeFormatSVG:
		data, err = pack.RenderSVG(dot)
	case treeFormatPNG:
		data, err = pack.RenderPNG(dot)
	}
	if err != nil {
		return err
	}

	if output == "" {
		if format != treeFormatDOT {
			output = "tree." + format
		} else {
			fmt.Print(dot)
			return nil
		}
	} else if filepath.Ext(output) == "" {
		output += "." + strings.TrimPrefix(format, ".")
	}

	if err := os.WriteFile(output, data, 0o644); err != nil {
		return err
	}
	printSuccess("Wrote packing tree")
	printFile(output)
	return nil
}

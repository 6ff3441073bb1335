package cli

import (
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/texpack/texpack/pkg/catalog"
)

// publishCommand creates the publish command for pushing a map file to the
// atlas catalog.
func (c *CLI) publishCommand() *cobra.Command {
	var (
		uri      string
		database string
		name     string
	)

	cmd := &cobra.Command{
		Use:   "publish <map-file>",
		Short: "Publish an atlas map to the catalog",
		Long: `Publish a map file to the MongoDB-backed atlas catalog so other
tools can look up frame positions by atlas name. Republishing under
the same name replaces the previous record.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			m, err := readMap(args[0])
			if err != nil {
				return err
			}
			if name == "" {
				name = nameFromPath(args[0])
			}

			store, err := catalog.Connect(cmd.Context(), uri, database)
			if err != nil {
				return err
			}
			defer store.Close(cmd.Context())

			rec := catalog.NewRecord(name, uuid.NewString(), m, raw)
			if err := store.Publish(cmd.Context(), rec); err != nil {
				return err
			}

			printSuccess("Published %q (%d textures, %d frames)", name, len(m.Textures), m.FrameCount())
			printDetail("Checksum: %s", rec.Checksum)
			return nil
		},
	}

	cmd.Flags().StringVar(&uri, "uri", "mongodb://localhost:27017", "MongoDB connection URI")
	cmd.Flags().StringVar(&database, "database", "", "database name (default: texpack)")
	cmd.Flags().StringVarP(&name, "name", "n", "", "atlas name (default: map filename without extension)")

	return cmd
}

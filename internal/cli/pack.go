package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/texpack/texpack/pkg/manifest"
	"github.com/texpack/texpack/pkg/pipeline"
)

// packOpts holds the command-line flags for the pack command.
type packOpts struct {
	imagePath    string // output canvas path
	mapPath      string // output map path
	mapFormat    string // "json" or "binary"
	mode         string // canvas color mode
	size         int    // fixed square canvas side; 0 enables auto-growth
	manifestPath string // TOML manifest instead of positional specs
	cacheBackend string // dimension cache backend
	redisAddr    string // redis address for --cache-backend redis
}

// packCommand creates the pack command, the main entry point for building
// an atlas from source images.
func (c *CLI) packCommand() *cobra.Command {
	opts := packOpts{}

	cmd := &cobra.Command{
		Use:   "pack [name=path ...]",
		Short: "Pack source images into a texture atlas",
		Long: `Pack source images into a single atlas image and write a map file
recording where each frame landed.

Each positional argument is one texture: either a frame path, or
name=path for an explicit name, or a quoted "name=a.png b.png" for a
multi-frame texture. Alternatively, --manifest reads the job from a
TOML file.

Examples:
  texpack pack hero.png tile.png
  texpack pack "hero=walk_0.png walk_1.png" tile.png
  texpack pack --manifest atlas.toml
  texpack pack -s 512 --map-format binary sprites/*.png`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runPack(cmd, args, &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.imagePath, "output-image-filename", "o", pipeline.DefaultImagePath, "output atlas image path")
	cmd.Flags().StringVarP(&opts.mapPath, "output-map-filename", "m", "", "output map path (default: image path with .map)")
	cmd.Flags().StringVar(&opts.mapFormat, "map-format", pipeline.DefaultMapFormat, "map format: json or binary")
	cmd.Flags().StringVar(&opts.mode, "image-mode", pipeline.DefaultMode, "canvas color mode (RGBA, RGB, L)")
	cmd.Flags().IntVarP(&opts.size, "size", "s", 0, "fixed square canvas size (0 = grow automatically)")
	cmd.Flags().StringVar(&opts.manifestPath, "manifest", "", "read textures from a TOML manifest")
	cmd.Flags().StringVar(&opts.cacheBackend, "cache-backend", cacheBackendFile, "dimension cache backend: file, redis, or none")
	cmd.Flags().StringVar(&opts.redisAddr, "redis-addr", defaultRedisAddr(), "redis address for --cache-backend redis")

	return cmd
}

func (c *CLI) runPack(cmd *cobra.Command, args []string, opts *packOpts) error {
	pipeOpts, err := buildPipelineOptions(args, opts)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(cmd.Context(), opts.cacheBackend, opts.redisAddr)
	if err != nil {
		return err
	}
	defer runner.Cache.Close()

	prog := newProgress(loggerFromContext(cmd.Context()))
	spin := newSpinnerWithContext(cmd.Context(), "packing textures")
	spin.Start()
	res, err := runner.Execute(cmd.Context(), pipeOpts)
	spin.Stop()
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Packed %d frames", res.Stats.FrameCount))

	printSuccess("Atlas %dx%d (%d textures, %d frames)",
		res.Atlas.Width, res.Atlas.Height, len(res.Atlas.Textures), res.Stats.FrameCount)
	printFile(res.ImagePath)
	printFile(res.MapPath)
	printStats(res.Stats.FrameCount, res.Stats.CacheHits)
	printNextStep("Inspect the map", fmt.Sprintf("texpack inspect %s", res.MapPath))
	return nil
}

// buildPipelineOptions assembles pipeline options from either a manifest
// file or positional texture specs. Manifest values yield to explicitly
// set flags.
func buildPipelineOptions(args []string, opts *packOpts) (pipeline.Options, error) {
	pipeOpts := pipeline.Options{
		Size:      opts.size,
		ImagePath: opts.imagePath,
		MapPath:   opts.mapPath,
		MapFormat: opts.mapFormat,
		Mode:      opts.mode,
	}

	if opts.manifestPath != "" {
		man, err := manifest.Load(opts.manifestPath)
		if err != nil {
			return pipeline.Options{}, err
		}
		specs := make([]pipeline.Spec, 0, len(man.Textures))
		for _, t := range man.Textures {
			specs = append(specs, pipeline.Spec{Name: t.Name, Frames: t.Frames})
		}
		pipeOpts.Specs = specs
		if opts.imagePath == pipeline.DefaultImagePath && man.Atlas.Image != "" {
			pipeOpts.ImagePath = man.Atlas.Image
		}
		if opts.mapPath == "" && man.Atlas.Map != "" {
			pipeOpts.MapPath = man.Atlas.Map
		}
		if opts.mapFormat == pipeline.DefaultMapFormat && man.Atlas.MapFormat != "" {
			pipeOpts.MapFormat = man.Atlas.MapFormat
		}
		if opts.mode == pipeline.DefaultMode && man.Atlas.Mode != "" {
			pipeOpts.Mode = man.Atlas.Mode
		}
		if opts.size == 0 && man.Atlas.Size > 0 {
			pipeOpts.Size = man.Atlas.Size
		}
		return pipeOpts, nil
	}

	specs, err := parseSpecs(args)
	if err != nil {
		return pipeline.Options{}, err
	}
	pipeOpts.Specs = specs
	return pipeOpts, nil
}

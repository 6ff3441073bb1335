package pipeline

import (
	"bytes"
	"context"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/texpack/texpack/pkg/atlas"
	"github.com/texpack/texpack/pkg/cache"
	"github.com/texpack/texpack/pkg/errors"
	"github.com/texpack/texpack/pkg/mapfile"
	"github.com/texpack/texpack/pkg/observability"
)

// DimensionTTL bounds how long measured image dimensions stay cached.
// Entries are keyed by file size and mtime, so stale hits are not a
// correctness concern, only a storage one.
const DimensionTTL = 30 * 24 * time.Hour

// Runner executes the pack pipeline: measure sources, pack the atlas,
// render the canvas, and serialize the map.
type Runner struct {
	Cache  cache.Cache
	Logger *log.Logger
}

// NewRunner creates a Runner. A nil cache disables dimension caching and
// a nil logger discards all output.
func NewRunner(c cache.Cache, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Runner{Cache: c, Logger: logger}
}

// Stats carries per-stage timings for a completed run.
type Stats struct {
	MeasureTime time.Duration
	PackTime    time.Duration
	RenderTime  time.Duration
	CacheHits   int
	FrameCount  int
}

// Result is the outcome of a pipeline run.
type Result struct {
	BuildID   string
	Atlas     *atlas.Atlas
	ImagePath string
	MapPath   string
	MapData   []byte
	Stats     Stats
}

// Execute runs the full pipeline and writes the canvas image and map file
// to the paths in opts. Options are validated first so that path and
// format errors surface before any packing work.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	id := uuid.NewString()
	logger := r.Logger.With("build", id)
	logger.Debug("starting pipeline", "textures", len(opts.Specs))

	start := time.Now()
	observability.Pipeline().OnMeasureStart(ctx, len(opts.Specs))
	textures, hits, err := r.Measure(ctx, opts.Specs)
	measureTime := time.Since(start)
	observability.Pipeline().OnMeasureComplete(ctx, countFrames(textures), measureTime, err)
	if err != nil {
		return nil, err
	}

	start = time.Now()
	observability.Pipeline().OnPackStart(ctx, countFrames(textures))
	a, err := Pack(textures, opts.Size)
	packTime := time.Since(start)
	if err != nil {
		observability.Pipeline().OnPackComplete(ctx, 0, 0, packTime, err)
		return nil, err
	}
	observability.Pipeline().OnPackComplete(ctx, a.Width, a.Height, packTime, nil)
	logger.Debug("packed atlas", "width", a.Width, "height", a.Height, "frames", a.FrameCount())

	start = time.Now()
	observability.Pipeline().OnRenderStart(ctx, opts.ImagePath)
	err = a.WriteImage(opts.ImagePath, opts.Mode)
	renderTime := time.Since(start)
	observability.Pipeline().OnRenderComplete(ctx, opts.ImagePath, renderTime, err)
	if err != nil {
		return nil, err
	}

	mapData, err := EncodeMap(a, opts.MapFormat)
	if err != nil {
		return nil, err
	}
	if err := os.WriteFile(opts.MapPath, mapData, 0o644); err != nil {
		return nil, errors.Wrap(errors.ErrCodeSerialization, err, "writing map file %s", opts.MapPath)
	}

	logger.Info("atlas written",
		"image", opts.ImagePath,
		"map", opts.MapPath,
		"size", a.Width,
	)
	return &Result{
		BuildID:   id,
		Atlas:     a,
		ImagePath: opts.ImagePath,
		MapPath:   opts.MapPath,
		MapData:   mapData,
		Stats: Stats{
			MeasureTime: measureTime,
			PackTime:    packTime,
			RenderTime:  renderTime,
			CacheHits:   hits,
			FrameCount:  a.FrameCount(),
		},
	}, nil
}

// Measure probes every frame's dimensions and assembles the texture list
// in input order. It returns the number of dimension cache hits.
func (r *Runner) Measure(ctx context.Context, specs []Spec) ([]*atlas.Texture, int, error) {
	textures := make([]*atlas.Texture, 0, len(specs))
	hits := 0
	for _, s := range specs {
		if err := ctx.Err(); err != nil {
			return nil, hits, err
		}
		t := &atlas.Texture{Name: s.Name}
		for _, path := range s.Frames {
			f, hit, err := r.measureFrame(ctx, path)
			if err != nil {
				return nil, hits, err
			}
			if hit {
				hits++
			}
			t.Frames = append(t.Frames, f)
		}
		textures = append(textures, t)
	}
	return textures, hits, nil
}

// measureFrame resolves the dimensions of one source image, consulting the
// cache first. Cache failures degrade to a direct probe.
func (r *Runner) measureFrame(ctx context.Context, path string) (*atlas.Frame, bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, false, errors.Wrap(errors.ErrCodeSourceImage, err, "reading source image %s", path)
	}
	key := cache.DimensionKey(path, info.Size(), info.ModTime().UnixNano())

	if d, ok, err := r.Cache.Get(ctx, key); err != nil {
		r.Logger.Warn("dimension cache read failed", "path", path, "error", err)
	} else if ok {
		f, err := atlas.NewFrameWithSize(path, d.Width, d.Height)
		if err != nil {
			return nil, false, err
		}
		observability.Cache().OnCacheHit(ctx, "dim")
		return f, true, nil
	}
	observability.Cache().OnCacheMiss(ctx, "dim")

	f, err := atlas.NewFrame(path)
	if err != nil {
		return nil, false, err
	}
	d := cache.Dimensions{Width: f.Rect.Width, Height: f.Rect.Height}
	if err := r.Cache.Set(ctx, key, d, DimensionTTL); err != nil {
		r.Logger.Warn("dimension cache write failed", "path", path, "error", err)
	} else {
		observability.Cache().OnCacheSet(ctx, "dim")
	}
	return f, false, nil
}

// countFrames totals the frames across a texture list.
func countFrames(textures []*atlas.Texture) int {
	n := 0
	for _, t := range textures {
		n += len(t.Frames)
	}
	return n
}

// Pack builds an atlas from the given textures. A positive size packs into
// a fixed square canvas; zero enables auto-growth.
func Pack(textures []*atlas.Texture, size int) (*atlas.Atlas, error) {
	if size > 0 {
		return atlas.BuildFixed(textures, size)
	}
	return atlas.Build(textures)
}

// EncodeMap serializes the atlas map in the given format.
func EncodeMap(a *atlas.Atlas, format string) ([]byte, error) {
	var buf bytes.Buffer
	switch format {
	case FormatJSON:
		if err := mapfile.WriteJSON(&buf, a); err != nil {
			return nil, err
		}
	case FormatBinary:
		if err := mapfile.WriteBinary(&buf, a); err != nil {
			return nil, err
		}
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown map format %q", format)
	}
	return buf.Bytes(), nil
}

// Package pkg provides the core libraries for the texpack atlas builder.
//
// # Overview
//
// Texpack packs collections of source images into a single texture atlas
// image and records where each frame landed in a companion map file. The
// pkg directory is organized into four main areas:
//
//  1. [geom], [pack], [atlas] - Domain logic (rectangles, region packing, growth)
//  2. [imgio], [mapfile], [manifest] - Codecs (images, map files, TOML manifests)
//  3. [cache], [catalog] - Infrastructure (dimension cache, published atlas store)
//  4. [pipeline] - Orchestration (measure, pack, render, serialize)
//
// # Architecture
//
// The typical data flow through texpack:
//
//	Source Images / Manifest
//	         |
//	     [pipeline] measure   (imgio probes dimensions, cache skips repeats)
//	         |
//	     [atlas] pack         (binary region tree in pack, auto-growth)
//	         |
//	     [atlas] compose      (paste frames onto one canvas via imgio)
//	         |
//	     [mapfile] serialize  (binary or JSON map alongside the image)
//
// Each stage depends only on the stages before it. The CLI in internal/cli
// wires the stages together through pkg/pipeline.
//
// # Quick Start
//
// Pack two textures and write the atlas with a JSON map:
//
//	import (
//	    "context"
//	    "github.com/texpack/texpack/pkg/pipeline"
//	)
//
//	r := pipeline.NewRunner(nil, nil)
//	res, err := r.Execute(context.Background(), pipeline.Options{
//	    Specs: []pipeline.Spec{
//	        {Name: "hero", Frames: []string{"hero_0.png", "hero_1.png"}},
//	        {Name: "tile", Frames: []string{"tile.png"}},
//	    },
//	    ImagePath: "atlas.png",
//	})
//
// # Main Packages
//
// ## Domain Logic
//
// [geom] - Integer rectangles with the perimeter ordering the packer sorts by.
//
// [pack] - Binary region tree. Each free region either holds one occupant
// plus two child regions or is an empty leaf. Includes DOT export of the
// tree for inspection.
//
// [atlas] - Textures, frames, and the growth loop that retries packing on a
// larger canvas until every frame fits.
//
// ## Codecs
//
// [imgio] - Image decoding, canvas construction, and encoding for the
// formats the pipeline reads and writes.
//
// [mapfile] - Binary and JSON map serialization and the matching readers.
//
// [manifest] - TOML manifests describing a pack job as a file instead of
// command-line arguments.
//
// ## Infrastructure
//
// [cache] - Dimension cache with file, Redis, and null backends so repeated
// builds skip re-probing unchanged source images.
//
// [catalog] - MongoDB-backed store for publishing finished atlas maps where
// other tools can query them.
//
// ## Orchestration
//
// [pipeline] - Runs measure, pack, render, and serialize as one operation
// with per-stage timings.
package pkg

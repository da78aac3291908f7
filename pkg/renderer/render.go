package renderer

import (
	"context"
	"fmt"
	"image"
	"time"

	"github.com/hippopotamus-prime/go-raytracer/pkg/scene"
)

// Tile represents a rectangular region of the output image
type Tile struct {
	ID     int             // Unique tile identifier
	Bounds image.Rectangle // Pixel bounds (x0,y0,x1,y1)
}

// NewTile creates a new tile with the specified bounds
func NewTile(id int, bounds image.Rectangle) *Tile {
	return &Tile{
		ID:     id,
		Bounds: bounds,
	}
}

// NewTileGrid creates a grid of tiles covering the specified dimensions
func NewTileGrid(width, height, tileSize int) []*Tile {
	var tiles []*Tile
	tileID := 0

	// Calculate number of tiles in each dimension
	tilesX := (width + tileSize - 1) / tileSize // Ceiling division
	tilesY := (height + tileSize - 1) / tileSize

	for tileY := 0; tileY < tilesY; tileY++ {
		for tileX := 0; tileX < tilesX; tileX++ {
			x0 := tileX * tileSize
			y0 := tileY * tileSize
			x1 := min(x0+tileSize, width) // Don't exceed image bounds
			y1 := min(y0+tileSize, height)

			tiles = append(tiles, NewTile(tileID, image.Rect(x0, y0, x1, y1)))
			tileID++
		}
	}

	return tiles
}

// Renderer traces a whole scene into an image using a pool of tile workers.
type Renderer struct {
	scene  *scene.Scene
	config Config
	logger Logger
}

// NewRenderer creates a renderer for the given scene. A nil logger falls
// back to DefaultLogger.
func NewRenderer(sc *scene.Scene, config Config, logger Logger) (*Renderer, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = DefaultLogger{}
	}

	return &Renderer{
		scene:  sc,
		config: config,
		logger: logger,
	}, nil
}

// Render traces the full image and returns it with the accumulated ray
// counts. It blocks until every tile is rendered or ctx is cancelled.
func (r *Renderer) Render(ctx context.Context) (*image.RGBA, RenderStats, error) {
	if r.scene.BVH == nil {
		if err := r.scene.Preprocess(); err != nil {
			return nil, RenderStats{}, err
		}
	}

	raytracer, err := NewRaytracer(r.scene, r.config.MaxDepth)
	if err != nil {
		return nil, RenderStats{}, err
	}

	width := r.scene.View.Width
	height := r.scene.View.Height
	target := NewRenderTarget(width, height)
	tiles := NewTileGrid(width, height, r.config.TileSize)

	workerPool := NewWorkerPool(raytracer, target, r.config.TileSize, r.config.NumWorkers())
	workerPool.Start(ctx)
	defer workerPool.Stop()

	r.logger.Printf("Rendering %dx%d image: %d tiles (using %d workers)...\n",
		width, height, len(tiles), workerPool.GetNumWorkers())
	startTime := time.Now()

	for _, tile := range tiles {
		workerPool.SubmitTask(TileTask{Tile: tile})
	}

	var stats RenderStats
	for completed := 0; completed < len(tiles); completed++ {
		result, err := workerPool.GetResult(ctx)
		if err != nil {
			r.logger.Printf("Rendering cancelled after %d/%d tiles\n", completed, len(tiles))
			return nil, RenderStats{}, fmt.Errorf("render cancelled: %w", err)
		}
		stats.Merge(result.Stats)
	}

	elapsed := time.Since(startTime)
	r.logger.Printf("Render complete in %v: %d rays (%d primary, %d shadow, %d reflection, %d refraction)\n",
		elapsed.Round(time.Millisecond), stats.TotalRays(),
		stats.PrimaryRays, stats.ShadowRays, stats.ReflectionRays, stats.RefractionRays)

	return target.ToRGBA(), stats, nil
}

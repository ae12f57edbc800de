// Package preview rasterizes line meshes into an isometric PNG image.
package preview

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"
	"os"

	"github.com/chazu/interlace/pkg/mesh"
	v3 "github.com/deadsy/sdfx/vec/v3"
	"golang.org/x/image/vector"
)

// ErrNothingToDraw is returned when every mesh is empty.
var ErrNothingToDraw = errors.New("preview: nothing to draw")

// Options controls image size and styling.
type Options struct {
	Width, Height int
	Margin        int     // pixels kept clear on every side
	LineWidth     float32 // stroke width in pixels
	PointSize     float32 // side of the square drawn for bare vertices
	Background    color.Color
	Palette       []color.Color // mesh i is drawn in Palette[i%len(Palette)]
}

// DefaultOptions returns an 800x800 preview on a white background.
func DefaultOptions() Options {
	return Options{
		Width:      800,
		Height:     800,
		Margin:     20,
		LineWidth:  2,
		PointSize:  3,
		Background: color.White,
		Palette: []color.Color{
			color.RGBA{0x1f, 0x4e, 0x79, 0xff},
			color.RGBA{0xc0, 0x39, 0x2b, 0xff},
			color.RGBA{0x27, 0xae, 0x60, 0xff},
			color.RGBA{0x8e, 0x44, 0xad, 0xff},
			color.RGBA{0xd3, 0x54, 0x00, 0xff},
		},
	}
}

var (
	cos30 = math.Cos(math.Pi / 6)
	sin30 = 0.5
)

// project maps model space (z up) onto the isometric image plane
// (y down).
func project(v v3.Vec) (x, y float64) {
	return (v.X - v.Y) * cos30, (v.X+v.Y)*sin30 - v.Z
}

// fit maps projected coordinates into the pixel rectangle.
type fit struct {
	scale, offX, offY float64
}

func newFit(meshes []*mesh.LineMesh, opts Options) (fit, bool) {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, m := range meshes {
		for _, v := range m.Vertices {
			x, y := project(v)
			minX, maxX = min(minX, x), max(maxX, x)
			minY, maxY = min(minY, y), max(maxY, y)
		}
	}
	if math.IsInf(minX, 1) {
		return fit{}, false
	}

	availW := float64(opts.Width - 2*opts.Margin)
	availH := float64(opts.Height - 2*opts.Margin)
	spanX, spanY := maxX-minX, maxY-minY
	scale := 1.0
	switch {
	case spanX > 0 && spanY > 0:
		scale = min(availW/spanX, availH/spanY)
	case spanX > 0:
		scale = availW / spanX
	case spanY > 0:
		scale = availH / spanY
	}
	// Centre the drawing.
	offX := float64(opts.Width)/2 - (minX+maxX)/2*scale
	offY := float64(opts.Height)/2 - (minY+maxY)/2*scale
	return fit{scale: scale, offX: offX, offY: offY}, true
}

func (f fit) pixel(v v3.Vec) (float32, float32) {
	x, y := project(v)
	return float32(x*f.scale + f.offX), float32(y*f.scale + f.offY)
}

// Render draws every mesh into a new image. Lines are stroked as quads and
// line-less vertices as small squares. All shapes share one winding so
// overlaps never cancel in the rasterizer's accumulated coverage.
func Render(meshes []*mesh.LineMesh, opts Options) (*image.RGBA, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("preview: image size %dx%d must be positive", opts.Width, opts.Height)
	}
	if 2*opts.Margin >= min(opts.Width, opts.Height) {
		return nil, fmt.Errorf("preview: margin %d leaves no room in %dx%d", opts.Margin, opts.Width, opts.Height)
	}
	if len(opts.Palette) == 0 {
		opts.Palette = DefaultOptions().Palette
	}

	f, ok := newFit(meshes, opts)
	if !ok {
		return nil, ErrNothingToDraw
	}

	dst := image.NewRGBA(image.Rect(0, 0, opts.Width, opts.Height))
	bg := opts.Background
	if bg == nil {
		bg = color.White
	}
	draw.Draw(dst, dst.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)

	r := vector.NewRasterizer(opts.Width, opts.Height)
	for i, m := range meshes {
		if m.IsEmpty() {
			continue
		}
		r.Reset(opts.Width, opts.Height)
		if len(m.Lines) == 0 {
			for _, v := range m.Vertices {
				x, y := f.pixel(v)
				addSquare(r, x, y, opts.PointSize/2)
			}
		} else {
			for _, seg := range m.Segments() {
				x0, y0 := f.pixel(seg.A)
				x1, y1 := f.pixel(seg.B)
				addStroke(r, x0, y0, x1, y1, opts.LineWidth/2)
			}
		}
		src := image.NewUniform(opts.Palette[i%len(opts.Palette)])
		r.Draw(dst, dst.Bounds(), src, image.Point{})
	}
	return dst, nil
}

// addStroke adds the quad covering the segment (x0,y0)-(x1,y1) with the
// given half width. Segments that project to a point become squares.
func addStroke(r *vector.Rasterizer, x0, y0, x1, y1, half float32) {
	dx, dy := x1-x0, y1-y0
	length := float32(math.Hypot(float64(dx), float64(dy)))
	if length == 0 {
		addSquare(r, x0, y0, half)
		return
	}
	nx, ny := -dy/length*half, dx/length*half
	r.MoveTo(x0+nx, y0+ny)
	r.LineTo(x1+nx, y1+ny)
	r.LineTo(x1-nx, y1-ny)
	r.LineTo(x0-nx, y0-ny)
	r.ClosePath()
}

// addSquare adds an axis-aligned square wound the same way as addStroke.
func addSquare(r *vector.Rasterizer, x, y, half float32) {
	r.MoveTo(x-half, y-half)
	r.LineTo(x-half, y+half)
	r.LineTo(x+half, y+half)
	r.LineTo(x+half, y-half)
	r.ClosePath()
}

// SavePNG encodes img to path. Failures are *mesh.OutputError values.
func SavePNG(path string, img image.Image) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return &mesh.OutputError{Op: "create", Path: path, Err: err}
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = &mesh.OutputError{Op: "close", Path: path, Err: cerr}
		}
	}()
	if err := png.Encode(f, img); err != nil {
		return &mesh.OutputError{Op: "encode", Path: path, Err: err}
	}
	return nil
}

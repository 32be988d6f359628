// Package fonts derives character cell metrics from a monospace face.
package fonts

import (
	"fmt"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/opentype"

	"github.com/javanhut/ravenstate/screen"
)

type metricsKey struct {
	pt, dpiX, dpiY float64
}

// Provider computes cell sizes for a parsed font. Results are cached per
// (size, dpi) since every window with the same settings shares them.
type Provider struct {
	font  *opentype.Font
	cache map[metricsKey]screen.CellSize
}

// NewProvider parses fontData. Nil selects the bundled Go Mono face.
func NewProvider(fontData []byte) (*Provider, error) {
	if fontData == nil {
		fontData = gomono.TTF
	}
	parsed, err := opentype.Parse(fontData)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}
	return &Provider{font: parsed, cache: make(map[metricsKey]screen.CellSize)}, nil
}

// CellSize returns the cell size for a font size in points at the given DPI.
// A face that cannot be built is unrecoverable and panics.
func (p *Provider) CellSize(pt, dpiX, dpiY float64) screen.CellSize {
	key := metricsKey{pt, dpiX, dpiY}
	if cs, ok := p.cache[key]; ok {
		return cs
	}

	face, err := opentype.NewFace(p.font, &opentype.FaceOptions{
		Size:    pt,
		DPI:     (dpiX + dpiY) / 2,
		Hinting: font.HintingFull,
	})
	if err != nil {
		panic(fmt.Sprintf("fonts: failed to create face at %gpt: %v", pt, err))
	}
	defer face.Close()

	metrics := face.Metrics()
	height := (metrics.Ascent + metrics.Descent).Ceil()

	// Cell width from 'M'
	advance, _ := face.GlyphAdvance('M')
	width := advance.Ceil()

	// Non-square pixels stretch the width
	if dpiY > 0 && dpiX != dpiY {
		width = int(math.Round(float64(width) * dpiX / dpiY))
	}

	cs := screen.CellSize{Width: uint32(max(width, 1)), Height: uint32(max(height, 1))}
	p.cache[key] = cs
	return cs
}

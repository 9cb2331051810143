// internal/derivative/derivative.go
package derivative

import (
	"bytes"
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

// Spec describes a derivative: a bounding box the output must fit inside and
// the JPEG quality it is encoded at. Derivatives are always JPEG.
type Spec struct {
	MaxWidth  int
	MaxHeight int
	Quality   int
}

// Canonical derivative specs
var (
	Thumbnail = Spec{MaxWidth: 150, MaxHeight: 150, Quality: 85}
	Preview   = Spec{MaxWidth: 800, MaxHeight: 600, Quality: 90}
)

// Extension is the file extension every derivative is stored under.
const Extension = ".jpg"

// Generate re-encodes src to fit within the spec's bounding box, preserving
// aspect ratio and never upscaling. Sources with transparency are flattened
// onto white before encoding.
func Generate(src []byte, spec Spec) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(src))
	if err != nil {
		return nil, fmt.Errorf("failed to decode source image: %w", err)
	}

	img = flatten(img)
	img = imaging.Fit(img, spec.MaxWidth, spec.MaxHeight, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(spec.Quality)); err != nil {
		return nil, fmt.Errorf("failed to encode derivative: %w", err)
	}

	return buf.Bytes(), nil
}

// flatten composites a non-opaque image onto a white background so the JPEG
// encoder sees plain RGB
func flatten(img image.Image) image.Image {
	if op, ok := img.(interface{ Opaque() bool }); ok && op.Opaque() {
		return img
	}

	bounds := img.Bounds()
	bg := imaging.New(bounds.Dx(), bounds.Dy(), color.White)
	return imaging.Overlay(bg, img, image.Pt(0, 0), 1.0)
}

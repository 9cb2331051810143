// internal/exif/exif.go
package exif

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"strings"
	"time"

	goexif "github.com/rwcarlsen/goexif/exif"

	// Container formats used for dimension probing
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/tiff"
)

// ErrUnreadableImage is returned when the image container itself cannot be
// decoded. It is diagnostic only; callers still receive a usable (all-absent)
// metadata record alongside it.
var ErrUnreadableImage = errors.New("could not open image")

// exifTimeLayout is the only textual layout EXIF date tags are parsed under.
const exifTimeLayout = "2006:01:02 15:04:05"

// Metadata represents EXIF metadata extracted from an image. Every field is
// independently optional: zero values mean absent, except Width/Height which
// are always set when the image container decoded.
type Metadata struct {
	DateTaken    *time.Time
	GPS          *GPSInfo
	CameraMake   string
	CameraModel  string
	FocalLength  string
	Aperture     string
	ShutterSpeed string
	ISO          int
	Width        int
	Height       int
}

// GPSInfo represents a decoded GPS position in decimal degrees
type GPSInfo struct {
	Latitude  float64
	Longitude float64
}

// Extract extracts metadata from raw image bytes. Tag-level failures degrade
// to absent fields and are never surfaced as errors; the only error returned
// is ErrUnreadableImage, when the image container cannot be decoded at all.
func Extract(data []byte) (*Metadata, error) {
	meta := &Metadata{}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return meta, fmt.Errorf("%w: %v", ErrUnreadableImage, err)
	}
	meta.Width = cfg.Width
	meta.Height = cfg.Height

	x, err := goexif.Decode(bytes.NewReader(data))
	if err != nil {
		// No EXIF segment; dimensions are all we have
		return meta, nil
	}

	meta.DateTaken = extractDate(x)
	meta.GPS = extractGPS(x)
	extractCamera(x, meta)
	extractTechnical(x, meta)

	return meta, nil
}

// extractDate applies the date fallback chain: original capture time, then
// digitization time, then the generic DateTime tag.
func extractDate(x *goexif.Exif) *time.Time {
	candidates := []goexif.FieldName{
		goexif.DateTimeOriginal,
		goexif.DateTimeDigitized,
		goexif.DateTime,
	}

	values := make([]string, 0, len(candidates))
	for _, name := range candidates {
		values = append(values, tagString(x, name))
	}

	return chooseDate(values)
}

// chooseDate returns the first candidate that parses under the EXIF layout.
// A present but malformed value is skipped, not retried with other layouts.
func chooseDate(candidates []string) *time.Time {
	for _, value := range candidates {
		if value == "" {
			continue
		}
		if t, err := time.Parse(exifTimeLayout, value); err == nil {
			return &t
		}
	}
	return nil
}

// gpsParts collects the four GPS tags needed for a coordinate. All four must
// be present before any conversion happens.
type gpsParts struct {
	lat    [3]Rational
	lon    [3]Rational
	hasLat bool
	hasLon bool
	latRef string
	lonRef string
}

// coordinate converts the collected parts, or returns nil if anything is
// missing or fails to decode. A half-populated pair is never produced.
func (g gpsParts) coordinate() *GPSInfo {
	if !g.hasLat || !g.hasLon || g.latRef == "" || g.lonRef == "" {
		return nil
	}

	lat, ok := DMSToDegrees(g.lat[0], g.lat[1], g.lat[2], g.latRef)
	if !ok {
		return nil
	}
	lon, ok := DMSToDegrees(g.lon[0], g.lon[1], g.lon[2], g.lonRef)
	if !ok {
		return nil
	}

	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return nil
	}

	return &GPSInfo{Latitude: lat, Longitude: lon}
}

func extractGPS(x *goexif.Exif) *GPSInfo {
	parts := gpsParts{
		latRef: tagString(x, goexif.GPSLatitudeRef),
		lonRef: tagString(x, goexif.GPSLongitudeRef),
	}
	parts.lat, parts.hasLat = tagDMS(x, goexif.GPSLatitude)
	parts.lon, parts.hasLon = tagDMS(x, goexif.GPSLongitude)

	return parts.coordinate()
}

func extractCamera(x *goexif.Exif, meta *Metadata) {
	meta.CameraMake = tagString(x, goexif.Make)
	meta.CameraModel = tagString(x, goexif.Model)
}

func extractTechnical(x *goexif.Exif, meta *Metadata) {
	if r, ok := tagRational(x, goexif.FocalLength, 0); ok {
		meta.FocalLength = formatFocalLength(r)
	}
	if r, ok := tagRational(x, goexif.FNumber, 0); ok {
		meta.Aperture = formatAperture(r)
	}
	if r, ok := tagRational(x, goexif.ExposureTime, 0); ok {
		meta.ShutterSpeed = formatShutterSpeed(r)
	}
	if tag, err := x.Get(goexif.ISOSpeedRatings); err == nil {
		if iso, err := tag.Int(0); err == nil {
			meta.ISO = iso
		}
	}
}

// formatFocalLength renders a focal length rational as whole millimeters
func formatFocalLength(r Rational) string {
	f, err := r.Float()
	if err != nil {
		return ""
	}
	return fmt.Sprintf("%.0fmm", f)
}

// formatAperture renders an F-number rational with one decimal place
func formatAperture(r Rational) string {
	f, err := r.Float()
	if err != nil {
		return ""
	}
	return fmt.Sprintf("f/%.1f", f)
}

// formatShutterSpeed renders an exposure time. A numerator of 1 keeps the
// fraction form; anything else collapses to a two-decimal value in seconds.
func formatShutterSpeed(r Rational) string {
	if r.Den == 0 {
		return ""
	}
	if r.Num == 1 {
		return fmt.Sprintf("1/%d", r.Den)
	}
	f, err := r.Float()
	if err != nil {
		return ""
	}
	return fmt.Sprintf("%.2fs", f)
}

// tagString reads a string tag, or "" when the tag is missing or malformed
func tagString(x *goexif.Exif, name goexif.FieldName) string {
	tag, err := x.Get(name)
	if err != nil {
		return ""
	}
	s, err := tag.StringVal()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(strings.Trim(s, "\x00"))
}

// tagRational reads one rational component of a tag
func tagRational(x *goexif.Exif, name goexif.FieldName, index int) (Rational, bool) {
	tag, err := x.Get(name)
	if err != nil {
		return Rational{}, false
	}
	num, den, err := tag.Rat2(index)
	if err != nil {
		return Rational{}, false
	}
	return Rational{Num: num, Den: den}, true
}

// tagDMS reads the three rational components of a GPS coordinate tag
func tagDMS(x *goexif.Exif, name goexif.FieldName) ([3]Rational, bool) {
	var dms [3]Rational
	for i := range dms {
		r, ok := tagRational(x, name, i)
		if !ok {
			return dms, false
		}
		dms[i] = r
	}
	return dms, true
}

// Package imaging turns an uploaded picture into a bounded WebP file.
package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"

	"github.com/chai2010/webp"
	"golang.org/x/image/draw"
)

const (
	ContentType = "image/webp"
	Ext         = ".webp"

	// DefaultMaxPixels bounds the decoded size of an upload (40 MP).
	DefaultMaxPixels = 40_000_000
)

var (
	ErrNotImage = errors.New("unsupported or corrupt image")
	ErrTooLarge = errors.New("image dimensions too large")
)

type Normalizer struct {
	MaxSide   int
	MaxPixels int
	Quality   float32
}

func NewNormalizer(maxSide, quality int) Normalizer {
	if quality <= 0 || quality > 100 {
		quality = 80
	}
	return Normalizer{MaxSide: maxSide, MaxPixels: DefaultMaxPixels, Quality: float32(quality)}
}

// Normalize decodes r (jpeg, png, gif or webp), scales it down so that no
// side exceeds MaxSide and re-encodes it as WebP. The header is checked
// before decoding, so a small file cannot claim a huge canvas.
func (n Normalizer) Normalize(r io.Reader) ([]byte, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotImage, err)
	}
	if n.MaxPixels > 0 && int64(cfg.Width)*int64(cfg.Height) > int64(n.MaxPixels) {
		return nil, fmt.Errorf("%w: %dx%d", ErrTooLarge, cfg.Width, cfg.Height)
	}

	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotImage, err)
	}

	img = fit(img, n.MaxSide)

	var buf bytes.Buffer
	if err := webp.Encode(&buf, img, &webp.Options{Quality: n.Quality}); err != nil {
		return nil, fmt.Errorf("failed to encode webp: %w", err)
	}
	return buf.Bytes(), nil
}

func fit(img image.Image, maxSide int) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if maxSide <= 0 || (w <= maxSide && h <= maxSide) {
		return img
	}

	nw, nh := maxSide, h*maxSide/w
	if h > w {
		nw, nh = w*maxSide/h, maxSide
	}
	nw, nh = max(nw, 1), max(nh, 1)

	dst := image.NewRGBA(image.Rect(0, 0, nw, nh))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Over, nil)
	return dst
}

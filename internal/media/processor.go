// Package media turns uploaded photos into web-sized WebP objects.
package media

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"

	"github.com/chai2010/webp"
	"golang.org/x/image/draw"
)

const maxUploadBytes = 10 << 20

var ErrUnsupportedImage = errors.New("media: unsupported image")

type Processor struct {
	maxWidth int
	quality  float32
}

func NewProcessor(maxWidth int) *Processor {
	return &Processor{maxWidth: maxWidth, quality: 80}
}

// ToWebP decodes a JPEG, PNG or WebP image, scales it down to the
// configured width keeping its aspect ratio, and encodes it as WebP.
func (p *Processor) ToWebP(r io.Reader) ([]byte, error) {
	src, _, err := image.Decode(io.LimitReader(r, maxUploadBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedImage, err)
	}

	img := p.resize(src)

	var buf bytes.Buffer
	if err := webp.Encode(&buf, img, &webp.Options{Quality: p.quality}); err != nil {
		return nil, fmt.Errorf("encode webp: %w", err)
	}
	return buf.Bytes(), nil
}

func (p *Processor) resize(src image.Image) image.Image {
	b := src.Bounds()
	if p.maxWidth <= 0 || b.Dx() <= p.maxWidth {
		return src
	}

	h := b.Dy() * p.maxWidth / b.Dx()
	if h < 1 {
		h = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, p.maxWidth, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
	return dst
}

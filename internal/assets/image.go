package assets

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/draw"

	// Registered decoders for fallback thumbnails.
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// DecodeImage decodes a PNG, JPEG, WebP, BMP or TGA image into RGBA.
func DecodeImage(data []byte) (*image.RGBA, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if errors.Is(err, image.ErrFormat) {
		if rgba, tgaErr := decodeTGA(data); tgaErr == nil {
			return rgba, nil
		}
	}
	if err != nil {
		return nil, fmt.Errorf("decoding image: %w", err)
	}
	if rgba, ok := img.(*image.RGBA); ok {
		return rgba, nil
	}
	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	return rgba, nil
}

// LoadImage fetches and decodes the image behind ref.
func (m *Manager) LoadImage(ctx context.Context, ref string) (*image.RGBA, error) {
	data, fresh, err := m.fetch(ctx, ref)
	if err != nil {
		return nil, err
	}
	img, err := DecodeImage(data)
	if err != nil {
		m.bytes.Delete(ref)
		return nil, fmt.Errorf("%s: %w", ref, err)
	}
	if fresh {
		m.share(ctx, ref, data)
	}
	return img, nil
}

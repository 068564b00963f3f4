package assets

import (
	"errors"
	"fmt"
	"image"
	"image/color"
)

// TGA image types.
const (
	tgaUncompressed = 2  // true-color
	tgaRLE          = 10 // RLE compressed true-color
)

const tgaHeaderSize = 18

var errTGATruncated = errors.New("tga: pixel data truncated")

// decodeTGA decodes uncompressed and RLE true-color TGA images with 24 or 32
// bits per pixel. TGA has no magic number, so it is tried only after the
// registered decoders reject the data.
func decodeTGA(data []byte) (*image.RGBA, error) {
	if len(data) < tgaHeaderSize {
		return nil, errors.New("tga: header too short")
	}

	idLength := int(data[0])
	colorMapType := data[1]
	imageType := data[2]
	width := int(data[12]) | int(data[13])<<8
	height := int(data[14]) | int(data[15])<<8
	bpp := int(data[16])
	topToBottom := data[17]&0x20 != 0

	if colorMapType != 0 {
		return nil, errors.New("tga: color-mapped images not supported")
	}
	if imageType != tgaUncompressed && imageType != tgaRLE {
		return nil, fmt.Errorf("tga: unsupported image type %d", imageType)
	}
	if bpp != 24 && bpp != 32 {
		return nil, fmt.Errorf("tga: unsupported bit depth %d", bpp)
	}
	if width == 0 || height == 0 {
		return nil, errors.New("tga: empty image")
	}

	offset := tgaHeaderSize + idLength
	if offset > len(data) {
		return nil, errTGATruncated
	}
	d := tgaDecoder{
		img:         image.NewRGBA(image.Rect(0, 0, width, height)),
		src:         data[offset:],
		bpp:         bpp / 8,
		topToBottom: topToBottom,
	}

	var err error
	if imageType == tgaUncompressed {
		err = d.raw()
	} else {
		err = d.rle()
	}
	if err != nil {
		return nil, err
	}
	return d.img, nil
}

type tgaDecoder struct {
	img         *image.RGBA
	src         []byte
	pos         int
	bpp         int
	topToBottom bool
}

// pixel reads one BGR(A) pixel.
func (d *tgaDecoder) pixel() (color.RGBA, bool) {
	if d.pos+d.bpp > len(d.src) {
		return color.RGBA{}, false
	}
	p := d.src[d.pos:]
	c := color.RGBA{R: p[2], G: p[1], B: p[0], A: 255}
	if d.bpp == 4 {
		c.A = p[3]
	}
	d.pos += d.bpp
	return c, true
}

// set stores the n-th pixel in file order; rows are bottom-up unless the
// descriptor says otherwise.
func (d *tgaDecoder) set(n int, c color.RGBA) {
	w, h := d.img.Rect.Dx(), d.img.Rect.Dy()
	x, y := n%w, n/w
	if !d.topToBottom {
		y = h - 1 - y
	}
	d.img.SetRGBA(x, y, c)
}

func (d *tgaDecoder) raw() error {
	total := d.img.Rect.Dx() * d.img.Rect.Dy()
	for n := 0; n < total; n++ {
		c, ok := d.pixel()
		if !ok {
			return errTGATruncated
		}
		d.set(n, c)
	}
	return nil
}

// rle decodes run-length packets. A truncated stream leaves the remaining
// pixels transparent.
func (d *tgaDecoder) rle() error {
	total := d.img.Rect.Dx() * d.img.Rect.Dy()
	n := 0
	for n < total && d.pos < len(d.src) {
		header := d.src[d.pos]
		d.pos++
		count := int(header&0x7F) + 1

		if header&0x80 != 0 {
			c, ok := d.pixel()
			if !ok {
				break
			}
			for i := 0; i < count && n < total; i++ {
				d.set(n, c)
				n++
			}
			continue
		}
		for i := 0; i < count && n < total; i++ {
			c, ok := d.pixel()
			if !ok {
				return nil
			}
			d.set(n, c)
			n++
		}
	}
	return nil
}

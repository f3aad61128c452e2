package grid

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	_ "image/png" // png header images

	"golang.org/x/image/bmp"
)

// CanonicalImage encodes img as a 32-bit BMP after normalizing it to NRGBA,
// so two images with the same pixels always produce the same bytes.
func CanonicalImage(img image.Image) ([]byte, error) {
	if img == nil {
		return nil, nil
	}
	b := img.Bounds()
	norm := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(norm, norm.Bounds(), img, b.Min, draw.Src)

	var buf bytes.Buffer
	if err := bmp.Encode(&buf, norm); err != nil {
		return nil, fmt.Errorf("encode bmp: %w", err)
	}
	return buf.Bytes(), nil
}

// DecodeImage decodes PNG or BMP bytes.
func DecodeImage(data []byte) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	return img, nil
}

// SameImage reports whether two image values are pixel-identical.
// Two nil values are the same.
func SameImage(a, b image.Image) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return imageKey(a) == imageKey(b)
}

// imageSize returns the pixel size of an image, or zero for nil.
func imageSize(img image.Image) Size {
	if img == nil {
		return Size{}
	}
	b := img.Bounds()
	return Size{W: float32(b.Dx()), H: float32(b.Dy())}
}

// cellImage returns the image held by a cell value, decoding encoded bytes.
// Anything else yields nil.
func cellImage(v any) image.Image {
	switch t := v.(type) {
	case image.Image:
		return t
	case []byte:
		img, err := DecodeImage(t)
		if err != nil {
			return nil
		}
		return img
	default:
		return nil
	}
}

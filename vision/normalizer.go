package vision

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/nfnt/resize"
)

const (
	// InputWidth and InputHeight are the spatial dimensions the model expects.
	InputWidth  = 640
	InputHeight = 640
	// Channels is fixed to RGB; any alpha channel is discarded.
	Channels = 3
	// TensorSize is the element count of one normalized image tensor.
	TensorSize = InputWidth * InputHeight * Channels
)

// ErrDecode reports an image that could not be decoded.
var ErrDecode = errors.New("failed to decode image")

// Normalize converts raw image bytes into a planar (channel-major)
// 3x640x640 float tensor with every value scaled into [0,1].
func Normalize(data []byte) ([]float32, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	resized := resize.Resize(InputWidth, InputHeight, img, resize.Lanczos3)
	return ToPlanar(Scale(Interleave(resized))), nil
}

// Interleave renders a 640x640 image as a row-major, channel-interleaved
// RGB byte buffer. The image must already be resized to the input shape.
func Interleave(img image.Image) []uint8 {
	buf := make([]uint8, TensorSize)
	bounds := img.Bounds()
	i := 0
	for y := 0; y < InputHeight; y++ {
		for x := 0; x < InputWidth; x++ {
			r, g, b, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			buf[i] = uint8(r >> 8)
			buf[i+1] = uint8(g >> 8)
			buf[i+2] = uint8(b >> 8)
			i += Channels
		}
	}
	return buf
}

// Scale maps byte values into [0,1] floats.
func Scale(buf []uint8) []float32 {
	out := make([]float32, len(buf))
	for i, v := range buf {
		out[i] = float32(v) / 255.0
	}
	return out
}

// ToPlanar remaps a pixel-major (interleaved) tensor to channel-major
// layout. Values are untouched; only indices move.
func ToPlanar(interleaved []float32) []float32 {
	planar := make([]float32, len(interleaved))
	plane := InputWidth * InputHeight
	for y := 0; y < InputHeight; y++ {
		for x := 0; x < InputWidth; x++ {
			pixel := (y*InputWidth + x) * Channels
			for c := 0; c < Channels; c++ {
				planar[c*plane+y*InputWidth+x] = interleaved[pixel+c]
			}
		}
	}
	return planar
}

// ToInterleaved is the inverse of ToPlanar.
func ToInterleaved(planar []float32) []float32 {
	interleaved := make([]float32, len(planar))
	plane := InputWidth * InputHeight
	for y := 0; y < InputHeight; y++ {
		for x := 0; x < InputWidth; x++ {
			pixel := (y*InputWidth + x) * Channels
			for c := 0; c < Channels; c++ {
				interleaved[pixel+c] = planar[c*plane+y*InputWidth+x]
			}
		}
	}
	return interleaved
}

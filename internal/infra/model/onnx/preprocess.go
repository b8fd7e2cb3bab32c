package onnx

import (
	"bytes"
	"image"
	_ "image/jpeg"
	_ "image/png"

	"github.com/nfnt/resize"
)

// preprocess decodes raw image bytes, resizes with nearest-neighbor to
// size x size and flattens to [H,W,3] float32. Pixel values stay in 0..255;
// the graph itself owns any normalization. Fixed pipeline, no branching on
// image content.
func preprocess(raw []byte, size int) ([]float32, error) {
	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, err
	}

	resized := resize.Resize(uint(size), uint(size), img, resize.NearestNeighbor)

	bounds := resized.Bounds()
	data := make([]float32, 0, bounds.Dx()*bounds.Dy()*3)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := resized.At(x, y).RGBA()
			data = append(data, float32(r>>8), float32(g>>8), float32(b>>8))
		}
	}
	return data, nil
}

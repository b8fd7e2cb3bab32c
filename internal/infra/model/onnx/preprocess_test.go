package onnx

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
)

func encodePNG(t *testing.T, w, h int, c color.RGBA) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func TestPreprocessShape(t *testing.T) {
	tests := []struct {
		name string
		w, h int
	}{
		{"small square", 10, 10},
		{"landscape", 64, 32},
		{"portrait", 32, 64},
		{"already target size", 224, 224},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := encodePNG(t, tt.w, tt.h, color.RGBA{R: 120, G: 60, B: 30, A: 255})
			data, err := preprocess(raw, 224)
			if err != nil {
				t.Fatalf("preprocess: %v", err)
			}
			if len(data) != 224*224*3 {
				t.Errorf("length: got %d, want %d", len(data), 224*224*3)
			}
		})
	}
}

func TestPreprocessKeepsRawPixelRange(t *testing.T) {
	// uniform image: every pixel must come through as the raw 0..255 values
	raw := encodePNG(t, 16, 16, color.RGBA{R: 200, G: 30, B: 5, A: 255})
	data, err := preprocess(raw, 224)
	if err != nil {
		t.Fatalf("preprocess: %v", err)
	}

	for i := 0; i < len(data); i += 3 {
		if data[i] != 200 || data[i+1] != 30 || data[i+2] != 5 {
			t.Fatalf("pixel %d: got (%v,%v,%v), want (200,30,5)", i/3, data[i], data[i+1], data[i+2])
		}
	}
}

func TestPreprocessCorruptBytes(t *testing.T) {
	tests := []struct {
		name string
		raw  []byte
	}{
		{"empty", nil},
		{"not an image", []byte("definitely not a png")},
		{"truncated png header", []byte{0x89, 0x50, 0x4e, 0x47}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := preprocess(tt.raw, 224); err == nil {
				t.Errorf("expected decode error")
			}
		})
	}
}

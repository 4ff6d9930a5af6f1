package blobstore

import (
	"bytes"
	"image"
	_ "image/gif" // registers the GIF decoder with image.Decode
	_ "image/jpeg" // registers the JPEG decoder with image.Decode
	"image/png"
	"path/filepath"
	"strings"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // registers the WebP decoder with image.Decode
)

// previewMaxDimension bounds the longer side of a generated image preview.
const previewMaxDimension = 256

// previewTextCap bounds the byte length of a generated text preview.
const previewTextCap = 4096

var previewableImageExts = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".webp": true,
}

var previewableTextExts = map[string]bool{
	".txt":  true,
	".md":   true,
	".json": true,
}

// generatePreview attempts to build a small preview buffer for a leaf
// file. It never returns an error: any decode or encode failure simply
// yields ok=false, matching the "generation failure never fails ingest"
// policy.
func generatePreview(originalName string, plaintext []byte) (preview []byte, ok bool) {
	ext := strings.ToLower(filepath.Ext(originalName))

	switch {
	case previewableTextExts[ext]:
		return textPreview(plaintext), true
	case previewableImageExts[ext]:
		return imagePreview(plaintext)
	default:
		return nil, false
	}
}

func textPreview(data []byte) []byte {
	if len(data) <= previewTextCap {
		return data
	}
	return data[:previewTextCap]
}

func imagePreview(data []byte) ([]byte, bool) {
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, false
	}

	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w <= 0 || h <= 0 {
		return nil, false
	}
	if w <= previewMaxDimension && h <= previewMaxDimension {
		return encodePreviewPNG(src)
	}

	scale := float64(previewMaxDimension) / float64(max(w, h))
	dstW := int(float64(w) * scale)
	dstH := int(float64(h) * scale)
	if dstW < 1 {
		dstW = 1
	}
	if dstH < 1 {
		dstH = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, dstW, dstH))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, draw.Over, nil)

	return encodePreviewPNG(dst)
}

func encodePreviewPNG(img image.Image) ([]byte, bool) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, false
	}
	return buf.Bytes(), true
}

package media

import (
	"image"
	"image/color"
	"image/gif"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, 0, color.RGBA{R: 255, A: 255})
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create png: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
}

func writeGIF(t *testing.T, path string, frames int) {
	t.Helper()
	anim := &gif.GIF{}
	palette := color.Palette{color.Black, color.White}
	for i := 0; i < frames; i++ {
		frame := image.NewPaletted(image.Rect(0, 0, 8, 8), palette)
		frame.SetColorIndex(i%8, 0, 1)
		anim.Image = append(anim.Image, frame)
		anim.Delay = append(anim.Delay, 5)
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create gif: %v", err)
	}
	defer f.Close()
	if err := gif.EncodeAll(f, anim); err != nil {
		t.Fatalf("encode gif: %v", err)
	}
}

func TestLoaderDecodesImage(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pic.png")
	writePNG(t, path, 64, 48)

	load := NewLoader(800, 600)
	h, err := load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	img, ok := h.(*Image)
	if !ok {
		t.Fatalf("expected *Image handle, got %T", h)
	}
	if img.Kind() != KindImage || img.Path() != path {
		t.Fatalf("unexpected handle metadata: %s %s", img.Kind(), img.Path())
	}
	if b := img.Bounds(); b.Dx() != 64 || b.Dy() != 48 {
		t.Fatalf("unexpected bounds %v", b)
	}
}

func TestLoaderFitsOversizedImage(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "big.png")
	writePNG(t, path, 400, 200)

	load := NewLoader(100, 100)
	h, err := load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b := h.(*Image).Bounds()
	if b.Dx() > 100 || b.Dy() > 100 {
		t.Fatalf("expected image fitted within 100x100, got %v", b)
	}
	// Aspect ratio preserved: 400x200 fits to 100x50.
	if b.Dx() != 100 || b.Dy() != 50 {
		t.Fatalf("expected 100x50, got %v", b)
	}
}

func TestLoaderDecodesGIFFrames(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "anim.gif")
	writeGIF(t, path, 3)

	load := NewLoader(0, 0)
	h, err := load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	g, ok := h.(*GIF)
	if !ok {
		t.Fatalf("expected *GIF handle, got %T", h)
	}
	if len(g.Frames) != 3 || len(g.Delays) != 3 {
		t.Fatalf("expected 3 frames with delays, got %d/%d", len(g.Frames), len(g.Delays))
	}
	for i, d := range g.Delays {
		if d <= 0 {
			t.Fatalf("frame %d: non-positive delay %v", i, d)
		}
	}
}

func TestLoaderVideoIsMetadataOnly(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "clip.mp4")
	writeFile(t, path, "frames")

	load := NewLoader(0, 0)
	h, err := load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if h.Kind() != KindVideo {
		t.Fatalf("expected video handle, got %s", h.Kind())
	}
}

func TestLoaderRejectsUnknownAndMissing(t *testing.T) {
	load := NewLoader(0, 0)
	if _, err := load("notes.txt"); err == nil {
		t.Fatalf("expected error for unsupported media")
	}
	if _, err := load(filepath.Join(t.TempDir(), "gone.png")); err == nil {
		t.Fatalf("expected error for missing file")
	}
	if _, err := load(filepath.Join(t.TempDir(), "gone.mp4")); err == nil {
		t.Fatalf("expected error for missing video")
	}
}

func TestLoaderCorruptImageFails(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.png")
	writeFile(t, path, "not a png")

	load := NewLoader(0, 0)
	if _, err := load(path); err == nil {
		t.Fatalf("expected decode error")
	}
}

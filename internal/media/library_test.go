package media

import (
	"archive/zip"
	"io"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func writeArchive(t *testing.T, path string, entries map[string]string) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create archive: %v", err)
	}
	defer f.Close()
	w := zip.NewWriter(f)
	for name, content := range entries {
		ew, err := w.Create(name)
		if err != nil {
			t.Fatalf("archive entry %s: %v", name, err)
		}
		if _, err := ew.Write([]byte(content)); err != nil {
			t.Fatalf("archive entry %s: %v", name, err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close archive: %v", err)
	}
}

func TestKindOf(t *testing.T) {
	cases := map[string]Kind{
		"a/b/photo.JPG": KindImage,
		"clip.webm":     KindVideo,
		"anim.gif":      KindGIF,
		"pic.webp":      KindImage,
		"notes.txt":     KindUnknown,
		"noext":         KindUnknown,
	}
	for path, want := range cases {
		if got := KindOf(path); got != want {
			t.Errorf("KindOf(%q) = %q, want %q", path, got, want)
		}
	}
}

func TestScanClassifiesLooseFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.png"), "x")
	writeFile(t, filepath.Join(dir, "sub", "b.gif"), "x")
	writeFile(t, filepath.Join(dir, "c.mp4"), "x")
	writeFile(t, filepath.Join(dir, "ignore.txt"), "x")

	lib, err := Scan(dir, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(lib.Images) != 1 || len(lib.GIFs) != 1 || len(lib.Videos) != 1 {
		t.Fatalf("unexpected counts: %d images, %d gifs, %d videos",
			len(lib.Images), len(lib.GIFs), len(lib.Videos))
	}
	if lib.Count() != 3 || len(lib.All()) != 3 {
		t.Fatalf("expected 3 media paths, got %d", lib.Count())
	}
}

func TestScanEnumeratesArchives(t *testing.T) {
	dir := t.TempDir()
	writeArchive(t, filepath.Join(dir, "pack.zip"), map[string]string{
		"img/cat.png":  "pixels",
		"vid/fish.mp4": "frames",
		"readme.md":    "skip me",
	})
	writeArchive(t, filepath.Join(dir, "more.gmodel"), map[string]string{
		"dog.jpeg": "pixels",
	})
	// A corrupt archive is skipped, not fatal.
	writeFile(t, filepath.Join(dir, "broken.zip"), "not a zip")

	lib, err := Scan(dir, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(lib.Images) != 2 || len(lib.Videos) != 1 {
		t.Fatalf("unexpected counts: %d images, %d videos", len(lib.Images), len(lib.Videos))
	}
	for _, p := range lib.All() {
		if _, _, ok := SplitArchivePath(p); !ok {
			t.Fatalf("expected archive-form path, got %q", p)
		}
	}
}

func TestOpenArchiveEntry(t *testing.T) {
	dir := t.TempDir()
	archive := filepath.Join(dir, "pack.zip")
	writeArchive(t, archive, map[string]string{"cat.png": "pixels"})

	r, err := Open(ArchivePath(archive, "cat.png"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("read entry: %v", err)
	}
	if err := r.Close(); err != nil {
		t.Fatalf("close entry: %v", err)
	}
	if string(data) != "pixels" {
		t.Fatalf("unexpected entry content %q", data)
	}

	if _, err := Open(ArchivePath(archive, "missing.png")); err == nil {
		t.Fatalf("expected error for missing entry")
	}
}

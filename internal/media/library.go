package media

import (
	"archive/zip"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// archiveSep joins an archive path and an entry name in a single media
// path, e.g. "models/pack.zip!img/cat.png".
const archiveSep = "!"

// ArchivePath builds the combined path for an entry inside an archive.
func ArchivePath(archive, entry string) string {
	return archive + archiveSep + entry
}

// SplitArchivePath splits a combined archive path. ok is false for plain
// file paths.
func SplitArchivePath(path string) (archive, entry string, ok bool) {
	i := strings.Index(path, archiveSep)
	if i < 0 {
		return "", "", false
	}
	return path[:i], path[i+1:], true
}

// Library is the set of media paths available for display, grouped by kind.
type Library struct {
	Images []string
	GIFs   []string
	Videos []string
}

// All returns every path in the library in a single slice.
func (l *Library) All() []string {
	out := make([]string, 0, l.Count())
	out = append(out, l.Images...)
	out = append(out, l.GIFs...)
	out = append(out, l.Videos...)
	return out
}

// Count returns the total number of media paths.
func (l *Library) Count() int {
	return len(l.Images) + len(l.GIFs) + len(l.Videos)
}

func (l *Library) add(path string) {
	switch KindOf(path) {
	case KindImage:
		l.Images = append(l.Images, path)
	case KindGIF:
		l.GIFs = append(l.GIFs, path)
	case KindVideo:
		l.Videos = append(l.Videos, path)
	}
}

// Scan walks dir collecting loose media files and the media entries of zip
// archives. An unreadable archive is logged and skipped; it does not abort
// the scan.
func Scan(dir string, logger *slog.Logger) (*Library, error) {
	if logger == nil {
		logger = slog.Default()
	}
	lib := &Library{}

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if IsArchive(path) {
			if aerr := scanArchive(path, lib); aerr != nil {
				logger.Warn("skipping unreadable archive", "archive", path, "error", aerr)
			}
			return nil
		}
		lib.add(path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan media directory %s: %w", dir, err)
	}

	logger.Info("media library scanned",
		"dir", dir,
		"images", len(lib.Images),
		"gifs", len(lib.GIFs),
		"videos", len(lib.Videos))
	return lib, nil
}

func scanArchive(path string, lib *Library) error {
	r, err := zip.OpenReader(path)
	if err != nil {
		return err
	}
	defer r.Close()

	for _, f := range r.File {
		if f.FileInfo().IsDir() {
			continue
		}
		if KindOf(f.Name) == KindUnknown {
			continue
		}
		lib.add(ArchivePath(path, f.Name))
	}
	return nil
}

// Open opens a media path for reading, resolving archive entries. The
// caller closes the returned reader.
func Open(path string) (io.ReadCloser, error) {
	archive, entry, ok := SplitArchivePath(path)
	if !ok {
		return os.Open(path)
	}

	r, err := zip.OpenReader(archive)
	if err != nil {
		return nil, fmt.Errorf("failed to open archive %s: %w", archive, err)
	}
	for _, f := range r.File {
		if f.Name != entry {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			r.Close()
			return nil, fmt.Errorf("failed to open archive entry %s: %w", path, err)
		}
		return &archiveEntry{ReadCloser: rc, archive: r}, nil
	}
	r.Close()
	return nil, fmt.Errorf("entry %s not found in archive %s", entry, archive)
}

// archiveEntry closes the archive together with the entry reader.
type archiveEntry struct {
	io.ReadCloser
	archive *zip.ReadCloser
}

func (a *archiveEntry) Close() error {
	err := a.ReadCloser.Close()
	if cerr := a.archive.Close(); err == nil {
		err = cerr
	}
	return err
}

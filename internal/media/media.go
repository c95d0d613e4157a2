// Package media classifies and loads the media files shown on popup
// surfaces: images, GIFs, and videos, either loose on disk or inside zip
// archives.
package media

import (
	"path/filepath"
	"strings"
)

// Kind is the broad category of a media file.
type Kind string

const (
	KindImage   Kind = "image"
	KindGIF     Kind = "gif"
	KindVideo   Kind = "video"
	KindUnknown Kind = "unknown"
)

var kindByExt = map[string]Kind{
	".jpg":  KindImage,
	".jpeg": KindImage,
	".png":  KindImage,
	".bmp":  KindImage,
	".webp": KindImage,
	".gif":  KindGIF,
	".mp4":  KindVideo,
	".avi":  KindVideo,
	".mov":  KindVideo,
	".wmv":  KindVideo,
	".flv":  KindVideo,
	".webm": KindVideo,
}

// KindOf classifies a path by its extension.
func KindOf(path string) Kind {
	ext := strings.ToLower(filepath.Ext(path))
	if k, ok := kindByExt[ext]; ok {
		return k
	}
	return KindUnknown
}

// IsArchive reports whether the path is a media archive. Both .zip and
// .gmodel use the zip format.
func IsArchive(path string) bool {
	lower := strings.ToLower(path)
	return strings.HasSuffix(lower, ".zip") || strings.HasSuffix(lower, ".gmodel")
}

// Handle is a loaded piece of media ready to be hosted on a surface.
type Handle interface {
	// Path returns the source path the media was loaded from. For archive
	// entries this is archive.zip!entry form.
	Path() string
	// Kind returns the media's category.
	Kind() Kind
}

// Loader loads one media path into a Handle. Implementations may fail per
// path; callers contain those failures per item.
type Loader func(path string) (Handle, error)

package media

import (
	"fmt"
	"image"
	"image/gif"
	"time"

	"github.com/disintegration/imaging"

	// Extend image.Decode with WebP; imaging registers the rest.
	_ "golang.org/x/image/webp"
)

// Image is a decoded still image scaled to fit its display bounds.
type Image struct {
	path string
	Img  image.Image
}

func (i *Image) Path() string { return i.path }
func (i *Image) Kind() Kind   { return KindImage }

// Bounds returns the decoded image size.
func (i *Image) Bounds() image.Rectangle { return i.Img.Bounds() }

// GIF is a decoded animation with per-frame delays.
type GIF struct {
	path   string
	Frames []image.Image
	Delays []time.Duration
}

func (g *GIF) Path() string { return g.path }
func (g *GIF) Kind() Kind   { return KindGIF }

// Video is a metadata-only handle; frame decoding belongs to the playback
// subsystem, not the preload path.
type Video struct {
	path string
}

func (v *Video) Path() string { return v.path }
func (v *Video) Kind() Kind   { return KindVideo }

// NewLoader returns a Loader that dispatches on media kind. Still images
// are downscaled to fit maxWidth x maxHeight; GIFs keep their native size;
// videos yield metadata-only handles after an existence check.
func NewLoader(maxWidth, maxHeight int) Loader {
	return func(path string) (Handle, error) {
		switch KindOf(path) {
		case KindImage:
			return loadImage(path, maxWidth, maxHeight)
		case KindGIF:
			return loadGIF(path)
		case KindVideo:
			return loadVideo(path)
		default:
			return nil, fmt.Errorf("unsupported media type: %s", path)
		}
	}
}

func loadImage(path string, maxWidth, maxHeight int) (*Image, error) {
	r, err := Open(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	img, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", path, err)
	}

	if maxWidth > 0 && maxHeight > 0 {
		b := img.Bounds()
		if b.Dx() > maxWidth || b.Dy() > maxHeight {
			img = imaging.Fit(img, maxWidth, maxHeight, imaging.Lanczos)
		}
	}
	return &Image{path: path, Img: img}, nil
}

func loadGIF(path string) (*GIF, error) {
	r, err := Open(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	anim, err := gif.DecodeAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to decode gif %s: %w", path, err)
	}

	g := &GIF{path: path}
	for i, frame := range anim.Image {
		g.Frames = append(g.Frames, frame)
		// GIF delays are in hundredths of a second; zero means browsers'
		// conventional 100ms.
		d := time.Duration(anim.Delay[i]) * 10 * time.Millisecond
		if d <= 0 {
			d = 100 * time.Millisecond
		}
		g.Delays = append(g.Delays, d)
	}
	return g, nil
}

func loadVideo(path string) (*Video, error) {
	// Verify the source is readable without decoding any frames.
	r, err := Open(path)
	if err != nil {
		return nil, err
	}
	r.Close()
	return &Video{path: path}, nil
}

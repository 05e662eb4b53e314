// Package media resolves catalog image references to URLs and prepares
// resized derivatives for images shipped with the site.
package media

import (
	"errors"
	"fmt"
	"image"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/disintegration/imaging"
)

// Variant selects the rendition of an image.
type Variant string

const (
	// Card is the cropped grid thumbnail.
	Card Variant = "card"
	// Full is the detail view image.
	Full Variant = "full"
)

const (
	cardWidth   = 600
	cardHeight  = 450
	fullMaxSide = 1600
	jpegQuality = 80
)

// Resolver maps image references to URLs. Remote references get sizing query
// parameters; local keys are served from the asset tree, preferring prepared
// derivatives.
type Resolver struct {
	// SourceDir holds original local images, served under AssetPrefix+"/img".
	SourceDir string
	// DerivedDir receives prepared derivatives, served under AssetPrefix+"/derived".
	DerivedDir string
	// AssetPrefix is the URL prefix of the asset handler, e.g. "/assets".
	AssetPrefix string

	mu      sync.RWMutex
	derived map[string]bool
}

// NewResolver returns a resolver rooted at the given public asset directory.
func NewResolver(assetDir, prefix string) *Resolver {
	return &Resolver{
		SourceDir:   filepath.Join(assetDir, "img"),
		DerivedDir:  filepath.Join(assetDir, "derived"),
		AssetPrefix: strings.TrimRight(prefix, "/"),
		derived:     map[string]bool{},
	}
}

// IsRemote reports whether ref is an absolute http(s) URL.
func IsRemote(ref string) bool {
	return strings.HasPrefix(ref, "https://") || strings.HasPrefix(ref, "http://")
}

// URL resolves ref for the given variant.
func (r *Resolver) URL(ref string, v Variant) string {
	if ref == "" {
		return ""
	}
	if IsRemote(ref) {
		return remoteURL(ref, v)
	}
	key := strings.TrimLeft(path.Clean("/"+ref), "/")
	r.mu.RLock()
	ok := r.derived[derivedName(key, v)]
	r.mu.RUnlock()
	if ok {
		return r.AssetPrefix + "/derived/" + derivedName(key, v)
	}
	return r.AssetPrefix + "/img/" + key
}

func remoteURL(ref string, v Variant) string {
	u, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	q := u.Query()
	switch v {
	case Card:
		q.Set("w", strconv.Itoa(cardWidth))
		q.Set("h", strconv.Itoa(cardHeight))
		q.Set("fit", "crop")
	default:
		q.Set("w", strconv.Itoa(fullMaxSide))
	}
	q.Set("q", strconv.Itoa(jpegQuality))
	u.RawQuery = q.Encode()
	return u.String()
}

func derivedName(key string, v Variant) string {
	base := strings.TrimSuffix(key, path.Ext(key))
	base = strings.ReplaceAll(base, "/", "-")
	return fmt.Sprintf("%s-%s.jpg", base, v)
}

// Prepare writes card and full derivatives for every local reference whose
// source file exists. Remote references are skipped. It returns the number of
// derivatives written.
func (r *Resolver) Prepare(refs []string) (int, error) {
	if err := os.MkdirAll(r.DerivedDir, 0o755); err != nil {
		return 0, fmt.Errorf("media: create derived dir: %w", err)
	}
	written := 0
	var errs []error
	for _, ref := range refs {
		if ref == "" || IsRemote(ref) {
			continue
		}
		key := strings.TrimLeft(path.Clean("/"+ref), "/")
		src, err := imaging.Open(filepath.Join(r.SourceDir, filepath.FromSlash(key)))
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			errs = append(errs, fmt.Errorf("media: open %s: %w", key, err))
			continue
		}
		for _, v := range []Variant{Card, Full} {
			name := derivedName(key, v)
			if err := imaging.Save(render(src, v), filepath.Join(r.DerivedDir, name), imaging.JPEGQuality(jpegQuality)); err != nil {
				errs = append(errs, fmt.Errorf("media: save %s: %w", name, err))
				continue
			}
			r.mu.Lock()
			r.derived[name] = true
			r.mu.Unlock()
			written++
		}
	}
	return written, errors.Join(errs...)
}

func render(src image.Image, v Variant) image.Image {
	if v == Card {
		return imaging.Fill(src, cardWidth, cardHeight, imaging.Center, imaging.Lanczos)
	}
	b := src.Bounds()
	if b.Dx() <= fullMaxSide && b.Dy() <= fullMaxSide {
		return src
	}
	return imaging.Fit(src, fullMaxSide, fullMaxSide, imaging.Lanczos)
}

package authorsite

import (
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"
	"io"
	"mime/multipart"
	"os"
	"path"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gosimple/slug"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

// Upload limits. Documents and images have distinct ceilings.
const (
	maxPDFBytes   = 60 << 20 // 60 MiB
	maxImageBytes = 15 << 20 // 15 MiB

	thumbWidth  = 480
	jpegQuality = 80

	timestampLayout = "20060102-150405"
)

// Stable rejection codes surfaced to the caller, so a failed upload is
// distinguishable from other failures.
var (
	ErrMissingFile = errors.New("missing_file")
	ErrTooLarge    = errors.New("too_large")
	ErrBadType     = errors.New("bad_type")
)

type uploadKind int

const (
	kindDocument uploadKind = iota
	kindImage
)

func (k uploadKind) limit() int64 {
	if k == kindDocument {
		return maxPDFBytes
	}
	return maxImageBytes
}

// extFor maps a sniffed MIME type to the extension the stored file gets.
// The client-supplied filename and Content-Type header play no part.
func (k uploadKind) extFor(mt *mimetype.MIME) (string, bool) {
	if k == kindDocument {
		if mt.Is("application/pdf") {
			return "pdf", true
		}
		return "", false
	}
	switch {
	case mt.Is("image/jpeg"):
		return "jpg", true
	case mt.Is("image/png"):
		return "png", true
	case mt.Is("image/webp"):
		return "webp", true
	}
	return "", false
}

// sniffUpload checks the reported size against the kind's ceiling, then
// sniffs the actual file content and returns the extension for its type.
func sniffUpload(fh *multipart.FileHeader, kind uploadKind) (string, error) {
	if fh == nil {
		return "", ErrMissingFile
	}
	if fh.Size > kind.limit() {
		return "", ErrTooLarge
	}
	f, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()
	mt, err := mimetype.DetectReader(f)
	if err != nil {
		return "", fmt.Errorf("sniff upload: %w", err)
	}
	ext, ok := kind.extFor(mt)
	if !ok {
		return "", ErrBadType
	}
	return ext, nil
}

// placeUpload streams the uploaded file to dst, overwriting any previous
// file of the same name.
func placeUpload(fh *multipart.FileHeader, dst string) error {
	src, err := fh.Open()
	if err != nil {
		return fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()
	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("create %s: %w", dst, err)
	}
	if _, err := io.Copy(out, src); err != nil {
		out.Close()
		return fmt.Errorf("write %s: %w", dst, err)
	}
	return out.Close()
}

// ingest runs validate -> name -> place for one uploaded file and
// returns the root-relative path of the stored asset. Nothing is
// written when validation rejects the file.
func (s *Store) ingest(fh *multipart.FileHeader, kind uploadKind, relDir string, nameFn func(ext string) string) (string, error) {
	ext, err := sniffUpload(fh, kind)
	if err != nil {
		return "", err
	}
	rel := path.Join(relDir, nameFn(ext))
	if err := placeUpload(fh, s.AssetPath(rel)); err != nil {
		return "", err
	}
	return rel, nil
}

// --- Asset naming ---

// slugify lowercases, transliterates to ASCII and collapses disallowed
// runs to single hyphens. An input that slugs to nothing yields "file".
func slugify(s string) string {
	if out := slug.Make(s); out != "" {
		return out
	}
	return "file"
}

func textOr(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

// bookAssetName derives the shared base name for a book's PDF and cover.
// Identical title and year silently overwrite the prior file.
func bookAssetName(titleRU string, year int, ext string) string {
	return slugify(fmt.Sprintf("%s-%d", textOr(titleRU, "book"), year)) + "." + ext
}

func photoAssetName(captionRU string, now time.Time, ext string) string {
	base := textOr(captionRU, "photo") + "-" + now.Format(timestampLayout)
	return slugify(base) + "." + ext
}

func logoAssetName(now time.Time, ext string) string {
	return "logo-" + now.Format(timestampLayout) + "." + ext
}

// --- Thumbnails ---

// photoThumbRel maps a stored photo name to its thumbnail path within
// the same category directory.
func photoThumbRel(category, name string) string {
	base := name[:len(name)-len(path.Ext(name))]
	return path.Join("uploads", "photos", category, "thumbs", base+".jpg")
}

// makeThumbnail writes a downscaled JPEG copy of the image at srcPath.
// Callers treat failure as non-fatal; galleries fall back to the full
// image.
func makeThumbnail(srcPath, dstPath string) error {
	f, err := os.Open(srcPath)
	if err != nil {
		return fmt.Errorf("open %s: %w", srcPath, err)
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return fmt.Errorf("decode %s: %w", srcPath, err)
	}
	bounds := img.Bounds()
	if w, h := bounds.Dx(), bounds.Dy(); w > thumbWidth {
		scaled := image.NewRGBA(image.Rect(0, 0, thumbWidth, h*thumbWidth/w))
		draw.CatmullRom.Scale(scaled, scaled.Bounds(), img, bounds, draw.Over, nil)
		img = scaled
	}
	out, err := os.Create(dstPath)
	if err != nil {
		return fmt.Errorf("create %s: %w", dstPath, err)
	}
	if err := jpeg.Encode(out, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		out.Close()
		return fmt.Errorf("encode %s: %w", dstPath, err)
	}
	return out.Close()
}

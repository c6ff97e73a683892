package authorsite

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path"
	"time"

	"github.com/labstack/echo/v4"
)

// writeBooksArchive packages every referenced book PDF into a zip.
// A PDF whose file has gone missing is skipped rather than failing the
// whole archive.
func (s *Store) writeBooksArchive(w io.Writer, books []Book) error {
	zw := zip.NewWriter(w)
	for _, b := range books {
		if b.PDF == "" {
			continue
		}
		src, err := os.Open(s.AssetPath(b.PDF))
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return fmt.Errorf("open %s: %w", b.PDF, err)
		}
		entry, err := zw.Create(path.Base(b.PDF))
		if err != nil {
			src.Close()
			return fmt.Errorf("archive %s: %w", b.PDF, err)
		}
		if _, err := io.Copy(entry, src); err != nil {
			src.Close()
			return fmt.Errorf("archive %s: %w", b.PDF, err)
		}
		src.Close()
	}
	return zw.Close()
}

// handleBooksArchive builds the bundle in a temp file first so a failed
// build is still a clean 500 instead of a truncated download.
func (a *App) handleBooksArchive(c echo.Context) error {
	books := a.Store.Books()

	tmp, err := os.CreateTemp(a.Store.dataDir, "books_*.zip")
	if err != nil {
		return fmt.Errorf("create archive: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := a.Store.writeBooksArchive(tmp, books); err != nil {
		tmp.Close()
		return fmt.Errorf("build archive: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	name := "books_" + time.Now().Format("20060102_150405") + ".zip"
	return c.Attachment(tmp.Name(), name)
}

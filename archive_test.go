package authorsite

import (
	"archive/zip"
	"bytes"
	"os"
	"testing"
)

func TestWriteBooksArchive(t *testing.T) {
	s := setupTestStore(t)

	books := []Book{
		{TitleRU: "Дала", Year: 2021, PDF: "uploads/books/dala-2021.pdf"},
		{TitleRU: "Жол", Year: 2019, PDF: "uploads/books/zhol-2019.pdf"},
	}
	for _, b := range books {
		if err := os.WriteFile(s.AssetPath(b.PDF), []byte("%PDF-"+b.TitleRU), 0o644); err != nil {
			t.Fatalf("write pdf: %v", err)
		}
	}

	var buf bytes.Buffer
	if err := s.writeBooksArchive(&buf, books); err != nil {
		t.Fatalf("writeBooksArchive failed: %v", err)
	}

	zr, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	if err != nil {
		t.Fatalf("open archive: %v", err)
	}
	if len(zr.File) != 2 {
		t.Fatalf("got %d entries, want 2", len(zr.File))
	}
	names := map[string]bool{}
	for _, f := range zr.File {
		names[f.Name] = true
	}
	for _, want := range []string{"dala-2021.pdf", "zhol-2019.pdf"} {
		if !names[want] {
			t.Errorf("archive is missing %s", want)
		}
	}
}

func TestWriteBooksArchiveSkipsMissingFiles(t *testing.T) {
	s := setupTestStore(t)

	books := []Book{
		{TitleRU: "Дала", Year: 2021, PDF: "uploads/books/dala-2021.pdf"},
		{TitleRU: "Жоқ", Year: 2020, PDF: "uploads/books/gone.pdf"},
		{TitleRU: "Бос", Year: 2018}, // no PDF at all
	}
	if err := os.WriteFile(s.AssetPath(books[0].PDF), []byte("%PDF-x"), 0o644); err != nil {
		t.Fatalf("write pdf: %v", err)
	}

	var buf bytes.Buffer
	if err := s.writeBooksArchive(&buf, books); err != nil {
		t.Fatalf("writeBooksArchive failed: %v", err)
	}

	zr, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	if err != nil {
		t.Fatalf("open archive: %v", err)
	}
	if len(zr.File) != 1 {
		t.Fatalf("got %d entries, want 1", len(zr.File))
	}
	if zr.File[0].Name != "dala-2021.pdf" {
		t.Errorf("entry = %q, want dala-2021.pdf", zr.File[0].Name)
	}
}

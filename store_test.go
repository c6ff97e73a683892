package authorsite

import (
	"os"
	"path/filepath"
	"testing"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	s.logf = func(string, ...any) {}
	return s
}

func TestNewStoreCreatesDirectories(t *testing.T) {
	s := setupTestStore(t)

	for _, rel := range []string{
		"data",
		"uploads/books",
		"uploads/covers",
		"uploads/photos/awards/thumbs",
		"uploads/photos/family/thumbs",
		"uploads/logo",
	} {
		info, err := os.Stat(filepath.Join(s.root, filepath.FromSlash(rel)))
		if err != nil {
			t.Fatalf("expected %s to exist: %v", rel, err)
		}
		if !info.IsDir() {
			t.Errorf("%s is not a directory", rel)
		}
	}
}

func TestAddAndListBooks(t *testing.T) {
	s := setupTestStore(t)

	book := Book{
		TitleRU: "Дала",
		TitleKK: "Дала",
		Year:    2021,
		DescRU:  "Описание",
		PDF:     "uploads/books/dala-2021.pdf",
		Cover:   "uploads/covers/dala-2021.jpg",
	}
	if err := s.AddBook(book); err != nil {
		t.Fatalf("AddBook failed: %v", err)
	}

	books := s.Books()
	if len(books) != 1 {
		t.Fatalf("got %d books, want 1", len(books))
	}
	got := books[0]
	if got.ID == "" {
		t.Error("expected an id to be assigned")
	}
	if got.TitleRU != book.TitleRU {
		t.Errorf("TitleRU = %q, want %q", got.TitleRU, book.TitleRU)
	}
	if got.Year != book.Year {
		t.Errorf("Year = %d, want %d", got.Year, book.Year)
	}
	if got.PDF != book.PDF {
		t.Errorf("PDF = %q, want %q", got.PDF, book.PDF)
	}
}

func TestBooksSortedByYearThenTitle(t *testing.T) {
	s := setupTestStore(t)

	for _, b := range []Book{
		{TitleRU: "Б", Year: 2020},
		{TitleRU: "В", Year: 2019},
		{TitleRU: "А", Year: 2022},
		{TitleRU: "А", Year: 2020},
	} {
		if err := s.AddBook(b); err != nil {
			t.Fatalf("AddBook failed: %v", err)
		}
	}

	books := s.Books()
	want := []struct {
		title string
		year  int
	}{
		{"А", 2022},
		{"А", 2020},
		{"Б", 2020},
		{"В", 2019},
	}
	if len(books) != len(want) {
		t.Fatalf("got %d books, want %d", len(books), len(want))
	}
	for i, w := range want {
		if books[i].TitleRU != w.title || books[i].Year != w.year {
			t.Errorf("books[%d] = %q/%d, want %q/%d", i, books[i].TitleRU, books[i].Year, w.title, w.year)
		}
	}
}

func TestDeleteBookRemovesAssets(t *testing.T) {
	s := setupTestStore(t)

	pdf := "uploads/books/dala-2021.pdf"
	cover := "uploads/covers/dala-2021.jpg"
	for _, rel := range []string{pdf, cover} {
		if err := os.WriteFile(s.AssetPath(rel), []byte("x"), 0o644); err != nil {
			t.Fatalf("write asset: %v", err)
		}
	}
	if err := s.AddBook(Book{TitleRU: "Дала", Year: 2021, PDF: pdf, Cover: cover}); err != nil {
		t.Fatalf("AddBook failed: %v", err)
	}

	deleted, err := s.DeleteBook(0, "")
	if err != nil {
		t.Fatalf("DeleteBook failed: %v", err)
	}
	if !deleted {
		t.Fatal("expected delete to report success")
	}
	if len(s.Books()) != 0 {
		t.Error("expected no books after delete")
	}
	for _, rel := range []string{pdf, cover} {
		if _, err := os.Stat(s.AssetPath(rel)); !os.IsNotExist(err) {
			t.Errorf("expected %s to be removed", rel)
		}
	}
}

func TestDeleteBookOutOfRangeIsNoop(t *testing.T) {
	s := setupTestStore(t)

	if err := s.AddBook(Book{TitleRU: "Дала", Year: 2021}); err != nil {
		t.Fatalf("AddBook failed: %v", err)
	}

	for _, idx := range []int{-1, 1, 99} {
		deleted, err := s.DeleteBook(idx, "")
		if err != nil {
			t.Fatalf("DeleteBook(%d) failed: %v", idx, err)
		}
		if deleted {
			t.Errorf("DeleteBook(%d) should be a no-op", idx)
		}
	}
	if len(s.Books()) != 1 {
		t.Error("book should survive out-of-range deletes")
	}
}

func TestDeleteBookStaleID(t *testing.T) {
	s := setupTestStore(t)

	if err := s.AddBook(Book{TitleRU: "Дала", Year: 2021}); err != nil {
		t.Fatalf("AddBook failed: %v", err)
	}

	deleted, err := s.DeleteBook(0, "not-the-real-id")
	if err != ErrStaleIndex {
		t.Fatalf("err = %v, want ErrStaleIndex", err)
	}
	if deleted {
		t.Error("stale delete must not remove anything")
	}
	if len(s.Books()) != 1 {
		t.Error("book should survive a stale delete")
	}

	// A matching id deletes normally.
	id := s.Books()[0].ID
	deleted, err = s.DeleteBook(0, id)
	if err != nil || !deleted {
		t.Fatalf("DeleteBook with matching id = (%v, %v), want (true, nil)", deleted, err)
	}
}

func TestBackfilledBookIDsPersist(t *testing.T) {
	s := setupTestStore(t)

	// A hand-edited file without ids: the id assigned on first read must
	// survive to the next read, or a rendered delete form goes stale.
	seed := `[{"title_ru":"Дала","title_kk":"","year":2021,"desc_ru":"","desc_kk":"","pdf":"","cover":""}]`
	if err := os.WriteFile(s.booksFile(), []byte(seed), 0o644); err != nil {
		t.Fatalf("seed books file: %v", err)
	}

	id := s.Books()[0].ID
	if id == "" {
		t.Fatal("expected an id to be assigned")
	}
	if again := s.Books()[0].ID; again != id {
		t.Fatalf("id changed between reads: %q then %q", id, again)
	}

	deleted, err := s.DeleteBook(0, id)
	if err != nil || !deleted {
		t.Fatalf("DeleteBook with rendered id = (%v, %v), want (true, nil)", deleted, err)
	}
}

func TestBackfilledPhotoIDsPersist(t *testing.T) {
	s := setupTestStore(t)

	seed := `{"awards":[{"src":"uploads/photos/awards/a.jpg","caption_ru":"","caption_kk":""}],"family":[]}`
	if err := os.WriteFile(s.photosFile(), []byte(seed), 0o644); err != nil {
		t.Fatalf("seed photos file: %v", err)
	}

	id := s.Photos().Awards[0].ID
	if id == "" {
		t.Fatal("expected an id to be assigned")
	}
	if again := s.Photos().Awards[0].ID; again != id {
		t.Fatalf("id changed between reads: %q then %q", id, again)
	}

	deleted, err := s.DeletePhoto(CategoryAwards, 0, id)
	if err != nil || !deleted {
		t.Fatalf("DeletePhoto with rendered id = (%v, %v), want (true, nil)", deleted, err)
	}
}

func TestMalformedBooksFileFallsBack(t *testing.T) {
	s := setupTestStore(t)

	if err := os.WriteFile(s.booksFile(), []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write malformed file: %v", err)
	}
	if got := s.Books(); len(got) != 0 {
		t.Errorf("got %d books from malformed file, want 0", len(got))
	}

	// The store stays writable afterwards.
	if err := s.AddBook(Book{TitleRU: "Дала", Year: 2021}); err != nil {
		t.Fatalf("AddBook after malformed read failed: %v", err)
	}
	if len(s.Books()) != 1 {
		t.Error("expected one book after rewrite")
	}
}

func TestPhotoBuckets(t *testing.T) {
	s := setupTestStore(t)

	if err := s.AddPhoto(CategoryAwards, Photo{Src: "uploads/photos/awards/a.jpg", CaptionRU: "Медаль"}); err != nil {
		t.Fatalf("AddPhoto failed: %v", err)
	}
	if err := s.AddPhoto(CategoryFamily, Photo{Src: "uploads/photos/family/f.jpg"}); err != nil {
		t.Fatalf("AddPhoto failed: %v", err)
	}
	// An unknown category lands in awards.
	if err := s.AddPhoto("bogus", Photo{Src: "uploads/photos/awards/b.jpg"}); err != nil {
		t.Fatalf("AddPhoto failed: %v", err)
	}

	buckets := s.Photos()
	if len(buckets.Awards) != 2 {
		t.Errorf("got %d awards photos, want 2", len(buckets.Awards))
	}
	if len(buckets.Family) != 1 {
		t.Errorf("got %d family photos, want 1", len(buckets.Family))
	}
	if buckets.Awards[0].ID == "" {
		t.Error("expected an id to be assigned")
	}
}

func TestDeletePhotoRemovesThumb(t *testing.T) {
	s := setupTestStore(t)

	src := "uploads/photos/awards/a.jpg"
	thumb := "uploads/photos/awards/thumbs/a.jpg"
	for _, rel := range []string{src, thumb} {
		if err := os.WriteFile(s.AssetPath(rel), []byte("x"), 0o644); err != nil {
			t.Fatalf("write asset: %v", err)
		}
	}
	if err := s.AddPhoto(CategoryAwards, Photo{Src: src, Thumb: thumb}); err != nil {
		t.Fatalf("AddPhoto failed: %v", err)
	}

	deleted, err := s.DeletePhoto(CategoryAwards, 0, "")
	if err != nil || !deleted {
		t.Fatalf("DeletePhoto = (%v, %v), want (true, nil)", deleted, err)
	}
	for _, rel := range []string{src, thumb} {
		if _, err := os.Stat(s.AssetPath(rel)); !os.IsNotExist(err) {
			t.Errorf("expected %s to be removed", rel)
		}
	}
}

func TestConfigDefaultsAndRoundTrip(t *testing.T) {
	s := setupTestStore(t)

	cfg := s.Config()
	def := DefaultConfig()
	if cfg.SiteTitle != def.SiteTitle {
		t.Errorf("SiteTitle = %q, want default %q", cfg.SiteTitle, def.SiteTitle)
	}
	if cfg.DefaultTheme != "light" {
		t.Errorf("DefaultTheme = %q, want light", cfg.DefaultTheme)
	}

	if err := s.UpdateConfig(func(c *Config) {
		c.SiteTitle = "Новый сайт"
		c.Accent = "#123abc"
		c.DefaultTheme = "dark"
	}); err != nil {
		t.Fatalf("UpdateConfig failed: %v", err)
	}

	cfg = s.Config()
	if cfg.SiteTitle != "Новый сайт" {
		t.Errorf("SiteTitle = %q after update", cfg.SiteTitle)
	}
	if cfg.Accent != "#123abc" {
		t.Errorf("Accent = %q, want #123abc", cfg.Accent)
	}
	if cfg.DefaultTheme != "dark" {
		t.Errorf("DefaultTheme = %q, want dark", cfg.DefaultTheme)
	}
}

func TestSanitizeConfig(t *testing.T) {
	def := DefaultConfig()

	cfg := sanitizeConfig(Config{
		SiteTitle:    "   ",
		Accent:       "#12345",
		DefaultTheme: "purple",
	})
	if cfg.SiteTitle != def.SiteTitle {
		t.Errorf("blank title should fall back, got %q", cfg.SiteTitle)
	}
	if cfg.Accent != def.Accent {
		t.Errorf("bad accent should fall back, got %q", cfg.Accent)
	}
	if cfg.DefaultTheme != "light" {
		t.Errorf("unknown theme should coerce to light, got %q", cfg.DefaultTheme)
	}

	cfg = sanitizeConfig(Config{SiteTitle: "X", TaglineRU: "Y", TaglineKK: "Z", Accent: "#AbCdEf", DefaultTheme: "dark"})
	if cfg.Accent != "#AbCdEf" {
		t.Errorf("valid accent was altered: %q", cfg.Accent)
	}
	if cfg.DefaultTheme != "dark" {
		t.Errorf("dark theme was altered: %q", cfg.DefaultTheme)
	}
}

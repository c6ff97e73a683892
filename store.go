package authorsite

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// ErrStaleIndex is returned when a delete names an index whose record id
// no longer matches the id the form was rendered with.
var ErrStaleIndex = errors.New("stale_index")

var accentRe = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// Store persists the three content collections as pretty-printed JSON
// files under <root>/data and owns the uploads directory tree.
//
// Each file has its own mutex held across the whole read-modify-write
// cycle, so concurrent mutations serialize instead of losing updates.
// Writes replace the file atomically via a temp file and rename.
type Store struct {
	root    string
	dataDir string

	booksMu  sync.Mutex
	photosMu sync.Mutex
	configMu sync.Mutex

	logf func(format string, args ...any)
}

// NewStore creates the data and uploads directories under root and
// returns a ready store. No JSON files are created until first write.
func NewStore(root string) (*Store, error) {
	s := &Store{
		root:    root,
		dataDir: filepath.Join(root, "data"),
		logf:    log.Printf,
	}
	dirs := []string{
		s.dataDir,
		filepath.Join(root, "uploads", "books"),
		filepath.Join(root, "uploads", "covers"),
		filepath.Join(root, "uploads", "photos", CategoryAwards, "thumbs"),
		filepath.Join(root, "uploads", "photos", CategoryFamily, "thumbs"),
		filepath.Join(root, "uploads", "logo"),
	}
	for _, d := range dirs {
		if err := os.MkdirAll(d, 0o775); err != nil {
			return nil, fmt.Errorf("create %s: %w", d, err)
		}
	}
	return s, nil
}

// Root returns the directory asset paths are relative to.
func (s *Store) Root() string { return s.root }

// AssetPath resolves a record's relative asset path ("uploads/books/x.pdf")
// to an absolute filesystem path.
func (s *Store) AssetPath(rel string) string {
	return filepath.Join(s.root, filepath.FromSlash(rel))
}

func (s *Store) booksFile() string  { return filepath.Join(s.dataDir, "books.json") }
func (s *Store) photosFile() string { return filepath.Join(s.dataDir, "photos.json") }
func (s *Store) configFile() string { return filepath.Join(s.dataDir, "config.json") }

// readJSON loads path into v. A missing file is normal and silent; a
// file that exists but does not parse is logged and treated as absent,
// so the caller falls back to defaults instead of failing the request.
func (s *Store) readJSON(path string, v any) bool {
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logf("store: read %s: %v", path, err)
		}
		return false
	}
	if err := json.Unmarshal(data, v); err != nil {
		s.logf("store: %s is malformed, using fallback: %v", path, err)
		return false
	}
	return true
}

// writeJSON serializes v as indented, Unicode-preserving JSON and
// atomically replaces path.
func (s *Store) writeJSON(path string, v any) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}

// removeAsset deletes a record's backing file best-effort. A file that
// is already gone is not an error.
func (s *Store) removeAsset(rel string) {
	if rel == "" {
		return
	}
	if err := os.Remove(s.AssetPath(rel)); err != nil && !os.IsNotExist(err) {
		s.logf("store: remove asset %s: %v", rel, err)
	}
}

// --- Books ---

func (s *Store) loadBooks() []Book {
	var books []Book
	if !s.readJSON(s.booksFile(), &books) {
		return nil
	}
	// Hand-edited or pre-id files get ids assigned and written back, so
	// the id a delete form rendered still matches on the next request.
	changed := false
	for i := range books {
		if books[i].ID == "" {
			books[i].ID = uuid.NewString()
			changed = true
		}
	}
	if changed {
		if err := s.writeJSON(s.booksFile(), books); err != nil {
			s.logf("store: persist backfilled book ids: %v", err)
		}
	}
	return books
}

// Books returns the persisted book collection, empty if the file is
// absent or malformed.
func (s *Store) Books() []Book {
	s.booksMu.Lock()
	defer s.booksMu.Unlock()
	return s.loadBooks()
}

// AddBook appends a book and rewrites the collection, re-sorted by year
// descending then Russian title ascending.
func (s *Store) AddBook(b Book) error {
	s.booksMu.Lock()
	defer s.booksMu.Unlock()
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	books := append(s.loadBooks(), b)
	sortBooks(books)
	return s.writeJSON(s.booksFile(), books)
}

// DeleteBook removes the book at idx along with its PDF and cover files.
// An out-of-range idx is a no-op. If id is non-empty it must match the
// record at idx; otherwise ErrStaleIndex is returned and nothing changes.
func (s *Store) DeleteBook(idx int, id string) (bool, error) {
	s.booksMu.Lock()
	defer s.booksMu.Unlock()
	books := s.loadBooks()
	if idx < 0 || idx >= len(books) {
		return false, nil
	}
	b := books[idx]
	if id != "" && b.ID != id {
		return false, ErrStaleIndex
	}
	s.removeAsset(b.PDF)
	s.removeAsset(b.Cover)
	books = append(books[:idx], books[idx+1:]...)
	if err := s.writeJSON(s.booksFile(), books); err != nil {
		return false, err
	}
	return true, nil
}

func sortBooks(books []Book) {
	sort.SliceStable(books, func(i, j int) bool {
		if books[i].Year != books[j].Year {
			return books[i].Year > books[j].Year
		}
		return strings.Compare(books[i].TitleRU, books[j].TitleRU) < 0
	})
}

// --- Photos ---

func (s *Store) loadPhotos() PhotoBuckets {
	var buckets PhotoBuckets
	if !s.readJSON(s.photosFile(), &buckets) {
		return PhotoBuckets{}
	}
	changed := false
	for _, bucket := range []*[]Photo{&buckets.Awards, &buckets.Family} {
		for i := range *bucket {
			if (*bucket)[i].ID == "" {
				(*bucket)[i].ID = uuid.NewString()
				changed = true
			}
		}
	}
	if changed {
		if err := s.writeJSON(s.photosFile(), buckets); err != nil {
			s.logf("store: persist backfilled photo ids: %v", err)
		}
	}
	return buckets
}

// Photos returns both photo buckets, empty if the file is absent or
// malformed.
func (s *Store) Photos() PhotoBuckets {
	s.photosMu.Lock()
	defer s.photosMu.Unlock()
	return s.loadPhotos()
}

// AddPhoto appends a photo to the named bucket and rewrites photos.json.
func (s *Store) AddPhoto(category string, p Photo) error {
	s.photosMu.Lock()
	defer s.photosMu.Unlock()
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	buckets := s.loadPhotos()
	bucket := buckets.Bucket(category)
	*bucket = append(*bucket, p)
	return s.writeJSON(s.photosFile(), buckets)
}

// DeletePhoto removes the photo at idx from the named bucket along with
// its image and thumbnail files. Same idx/id semantics as DeleteBook.
func (s *Store) DeletePhoto(category string, idx int, id string) (bool, error) {
	s.photosMu.Lock()
	defer s.photosMu.Unlock()
	buckets := s.loadPhotos()
	bucket := buckets.Bucket(category)
	if idx < 0 || idx >= len(*bucket) {
		return false, nil
	}
	p := (*bucket)[idx]
	if id != "" && p.ID != id {
		return false, ErrStaleIndex
	}
	s.removeAsset(p.Src)
	s.removeAsset(p.Thumb)
	*bucket = append((*bucket)[:idx], (*bucket)[idx+1:]...)
	if err := s.writeJSON(s.photosFile(), buckets); err != nil {
		return false, err
	}
	return true, nil
}

// --- Config ---

func (s *Store) loadConfig() Config {
	cfg := DefaultConfig()
	s.readJSON(s.configFile(), &cfg)
	return sanitizeConfig(cfg)
}

// Config returns the site configuration, falling back to the built-in
// defaults field by field when the file is absent or malformed.
func (s *Store) Config() Config {
	s.configMu.Lock()
	defer s.configMu.Unlock()
	return s.loadConfig()
}

// UpdateConfig applies fn to the current configuration under the store
// lock and rewrites config.json. fn sees sanitized current values, so a
// field it leaves untouched keeps its prior value.
func (s *Store) UpdateConfig(fn func(*Config)) error {
	s.configMu.Lock()
	defer s.configMu.Unlock()
	cfg := s.loadConfig()
	fn(&cfg)
	cfg = sanitizeConfig(cfg)
	return s.writeJSON(s.configFile(), cfg)
}

// sanitizeConfig enforces the accent color pattern and theme enum. A
// value that does not parse falls back to the default rather than being
// stored or rendered.
func sanitizeConfig(cfg Config) Config {
	def := DefaultConfig()
	if cfg.SiteTitle = strings.TrimSpace(cfg.SiteTitle); cfg.SiteTitle == "" {
		cfg.SiteTitle = def.SiteTitle
	}
	if cfg.TaglineRU = strings.TrimSpace(cfg.TaglineRU); cfg.TaglineRU == "" {
		cfg.TaglineRU = def.TaglineRU
	}
	if cfg.TaglineKK = strings.TrimSpace(cfg.TaglineKK); cfg.TaglineKK == "" {
		cfg.TaglineKK = def.TaglineKK
	}
	if !accentRe.MatchString(cfg.Accent) {
		cfg.Accent = def.Accent
	}
	if cfg.DefaultTheme != "dark" {
		cfg.DefaultTheme = "light"
	}
	return cfg
}

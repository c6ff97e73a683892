package authorsite

// Book is one published work: bilingual titles and descriptions plus
// the relative paths of its PDF and optional cover image.
// The collection is kept sorted by Year descending, then TitleRU ascending.
type Book struct {
	ID      string `json:"id"`
	TitleRU string `json:"title_ru"`
	TitleKK string `json:"title_kk"`
	Year    int    `json:"year"`
	DescRU  string `json:"desc_ru"`
	DescKK  string `json:"desc_kk"`
	PDF     string `json:"pdf"`
	Cover   string `json:"cover"`
}

// Photo is a gallery entry in one of the two buckets.
// Thumb is a best-effort downscaled copy; empty when generation failed.
type Photo struct {
	ID        string `json:"id"`
	Src       string `json:"src"`
	Thumb     string `json:"thumb,omitempty"`
	CaptionRU string `json:"caption_ru"`
	CaptionKK string `json:"caption_kk"`
}

// Photo bucket names.
const (
	CategoryAwards = "awards"
	CategoryFamily = "family"
)

// PhotoBuckets holds the two named photo collections persisted in photos.json.
type PhotoBuckets struct {
	Awards []Photo `json:"awards"`
	Family []Photo `json:"family"`
}

// Bucket returns the slice for a category name. Unknown names map to awards,
// the same coercion the upload form applies.
func (p *PhotoBuckets) Bucket(category string) *[]Photo {
	if category == CategoryFamily {
		return &p.Family
	}
	return &p.Awards
}

// Config is the singleton site configuration persisted in config.json.
type Config struct {
	SiteTitle    string `json:"site_title"`
	TaglineRU    string `json:"tagline_ru"`
	TaglineKK    string `json:"tagline_kk"`
	Accent       string `json:"accent"`
	DefaultTheme string `json:"default_theme"`
	SubscribeURL string `json:"subscribe_url"`
	DonateURL    string `json:"donate_url"`
	Logo         string `json:"logo"`
}

// DefaultConfig returns the built-in configuration used when config.json
// is absent or unreadable.
func DefaultConfig() Config {
	return Config{
		SiteTitle:    "Публичная веб-страница писателя Ғалымжана Алтекова",
		TaglineRU:    "Писатель · очерки · проза · исследования",
		TaglineKK:    "Жазушы · очерк · проза · зерттеулер",
		Accent:       "#8b5e34",
		DefaultTheme: "light",
	}
}

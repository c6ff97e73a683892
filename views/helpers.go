package views

import (
	"html"
	"strings"
)

func esc(s string) string {
	return html.EscapeString(s)
}

// assetURL turns a root-relative asset path into a URL path.
func assetURL(rel string) string {
	if rel == "" {
		return ""
	}
	if strings.HasPrefix(rel, "http://") || strings.HasPrefix(rel, "https://") {
		return rel
	}
	return "/" + strings.TrimPrefix(rel, "/")
}

// hrefOr falls back to a bare anchor when an external link is not set.
func hrefOr(url string) string {
	if url == "" {
		return "#"
	}
	return url
}

// Title returns the display title for the interface language, falling
// back to Russian when the Kazakh title is empty.
func (b Book) Title(lang string) string {
	if lang == "kk" && b.TitleKK != "" {
		return b.TitleKK
	}
	return b.TitleRU
}

// Desc returns the description for the interface language.
func (b Book) Desc(lang string) string {
	if lang == "kk" {
		return b.DescKK
	}
	return b.DescRU
}

// Caption returns the caption for the interface language.
func (p Photo) Caption(lang string) string {
	if lang == "kk" {
		return p.CaptionKK
	}
	return p.CaptionRU
}

// GridSrc prefers the thumbnail for gallery grids; the lightbox always
// opens the original.
func (p Photo) GridSrc() string {
	if p.Thumb != "" {
		return p.Thumb
	}
	return p.Src
}

// Tagline returns the tagline for the interface language.
func (s Site) Tagline(lang string) string {
	if lang == "kk" {
		return s.TaglineKK
	}
	return s.TaglineRU
}

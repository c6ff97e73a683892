// Package views renders the site as templ components built in Go, the
// same buffer-and-escape technique the markdown renderer pattern uses.
package views

// Site carries the sanitized site configuration into templates.
type Site struct {
	Title        string
	TaglineRU    string
	TaglineKK    string
	Accent       string
	Theme        string // "light" or "dark"
	SubscribeURL string
	DonateURL    string
	Logo         string // relative asset path, empty when absent
}

// Book is the view model for one book card.
type Book struct {
	ID      string
	TitleRU string
	TitleKK string
	Year    int
	DescRU  string
	DescKK  string
	PDF     string
	Cover   string
}

// Photo is the view model for one gallery entry.
type Photo struct {
	ID        string
	Src       string
	Thumb     string
	CaptionRU string
	CaptionKK string
}

// DayViews is one row of the admin traffic table.
type DayViews struct {
	Day   string
	Views int
}

// PageData is everything the single-page layout needs.
type PageData struct {
	Site Site
	Lang string
	T    func(string) string

	Books  []Book
	Awards []Photo
	Family []Photo

	IsAdmin bool
	CSRF    string
	Traffic []DayViews
}

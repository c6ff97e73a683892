package authorsite

import (
	"net/http"
	"os"
	"path/filepath"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"

	"github.com/altekov/authorsite/views"
)

// render writes the page component as an HTML response. The site has a
// single full-page view, so there is no status-code variant.
func render(c echo.Context, cmp templ.Component) error {
	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	c.Response().WriteHeader(http.StatusOK)
	return cmp.Render(c.Request().Context(), c.Response().Writer)
}

// handleHome renders the whole site as one page; sections are switched
// client-side by hash anchors.
func (a *App) handleHome(c echo.Context) error {
	lang := pickLang(c)
	cfg := a.Store.Config()
	books := a.Store.Books()
	photos := a.Store.Photos()

	if a.analytics != nil {
		if err := a.analytics.Record(lang); err != nil {
			c.Logger().Warnf("analytics: %v", err)
		}
	}

	logo := cfg.Logo
	if logo != "" {
		if _, err := os.Stat(a.Store.AssetPath(logo)); err != nil {
			logo = ""
		}
	}

	d := views.PageData{
		Site: views.Site{
			Title:        cfg.SiteTitle,
			TaglineRU:    cfg.TaglineRU,
			TaglineKK:    cfg.TaglineKK,
			Accent:       cfg.Accent,
			Theme:        cfg.DefaultTheme,
			SubscribeURL: cfg.SubscribeURL,
			DonateURL:    cfg.DonateURL,
			Logo:         logo,
		},
		Lang:    lang,
		T:       translator(lang),
		Books:   viewBooks(books),
		Awards:  viewPhotos(photos.Awards),
		Family:  viewPhotos(photos.Family),
		IsAdmin: IsAdmin(c),
		CSRF:    CsrfToken(c),
	}
	if d.IsAdmin && a.analytics != nil {
		rows, err := a.analytics.Summary(30)
		if err != nil {
			c.Logger().Warnf("analytics summary: %v", err)
		}
		for _, r := range rows {
			d.Traffic = append(d.Traffic, views.DayViews{Day: r.Day, Views: r.Views})
		}
	}
	return render(c, views.Page(d))
}

func viewBooks(books []Book) []views.Book {
	out := make([]views.Book, 0, len(books))
	for _, b := range books {
		out = append(out, views.Book{
			ID:      b.ID,
			TitleRU: b.TitleRU,
			TitleKK: b.TitleKK,
			Year:    b.Year,
			DescRU:  b.DescRU,
			DescKK:  b.DescKK,
			PDF:     b.PDF,
			Cover:   b.Cover,
		})
	}
	return out
}

func viewPhotos(photos []Photo) []views.Photo {
	out := make([]views.Photo, 0, len(photos))
	for _, p := range photos {
		out = append(out, views.Photo{
			ID:        p.ID,
			Src:       p.Src,
			Thumb:     p.Thumb,
			CaptionRU: p.CaptionRU,
			CaptionKK: p.CaptionKK,
		})
	}
	return out
}

func (a *App) handleFavicon(c echo.Context) error {
	return c.File(filepath.Join(a.Options.RootDir, "public", "favicon.svg"))
}

func (a *App) handleRobots(c echo.Context) error {
	return c.String(http.StatusOK, "User-agent: *\nAllow: /\n")
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	if he, ok := err.(*echo.HTTPError); !ok || he.Code >= 500 {
		c.Logger().Errorf("server error: %v", err)
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}

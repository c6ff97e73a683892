package authorsite

import (
	"crypto/subtle"
	"errors"
	"mime/multipart"
	"net/http"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
)

func redirectTo(c echo.Context, lang, anchor string) error {
	return c.Redirect(http.StatusSeeOther, "/?lang="+lang+"#"+anchor)
}

// requireAdmin rejects the request before any store or filesystem
// effect when the session does not carry the admin flag.
func requireAdmin(c echo.Context) error {
	if !IsAdmin(c) {
		return echo.NewHTTPError(http.StatusForbidden, "forbidden")
	}
	return nil
}

// uploadError maps validation rejections to 400s with their stable
// codes; anything else stays a server error.
func uploadError(err error) error {
	if errors.Is(err, ErrMissingFile) || errors.Is(err, ErrTooLarge) || errors.Is(err, ErrBadType) {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return err
}

func (a *App) handleLogin(c echo.Context) error {
	lang := pickLang(c)
	if !a.loginLimiter.Allow(c.RealIP()) {
		return c.String(http.StatusTooManyRequests, "too_many_attempts")
	}
	pass := c.FormValue("password")
	if subtle.ConstantTimeCompare([]byte(pass), []byte(a.Options.AdminPassword)) == 1 {
		if err := setAdminSession(c); err != nil {
			return err
		}
	}
	// Success and failure both redirect; a failed login stays silent.
	return redirectTo(c, lang, "admin")
}

func (a *App) handleLogout(c echo.Context) error {
	if err := clearAdminSession(c); err != nil {
		return err
	}
	return redirectTo(c, pickLang(c), "home")
}

func (a *App) handleSaveConfig(c echo.Context) error {
	if err := requireAdmin(c); err != nil {
		return err
	}
	lang := pickLang(c)

	// The logo is placed before the config write; a stored logo whose
	// config write then fails is an accepted orphan file.
	var logoRel string
	if fh, err := c.FormFile("logo"); err == nil && fh != nil && fh.Size > 0 {
		now := time.Now()
		rel, err := a.Store.ingest(fh, kindImage, "uploads/logo", func(ext string) string {
			return logoAssetName(now, ext)
		})
		if err != nil {
			return uploadError(err)
		}
		logoRel = rel
	}

	err := a.Store.UpdateConfig(func(cfg *Config) {
		cfg.SiteTitle = strings.TrimSpace(c.FormValue("site_title"))
		cfg.TaglineRU = strings.TrimSpace(c.FormValue("tagline_ru"))
		cfg.TaglineKK = strings.TrimSpace(c.FormValue("tagline_kk"))
		if v := c.FormValue("accent"); accentRe.MatchString(v) {
			cfg.Accent = v
		}
		if c.FormValue("default_theme") == "dark" {
			cfg.DefaultTheme = "dark"
		} else {
			cfg.DefaultTheme = "light"
		}
		cfg.SubscribeURL = strings.TrimSpace(c.FormValue("subscribe_url"))
		cfg.DonateURL = strings.TrimSpace(c.FormValue("donate_url"))
		if logoRel != "" {
			cfg.Logo = logoRel
		}
	})
	if err != nil {
		return err
	}
	return redirectTo(c, lang, "admin")
}

func (a *App) handleAddBook(c echo.Context) error {
	if err := requireAdmin(c); err != nil {
		return err
	}
	lang := pickLang(c)

	titleRU := strings.TrimSpace(c.FormValue("title_ru"))
	titleKK := strings.TrimSpace(c.FormValue("title_kk"))
	year, _ := strconv.Atoi(strings.TrimSpace(c.FormValue("year")))
	descRU := strings.TrimSpace(c.FormValue("desc_ru"))
	descKK := strings.TrimSpace(c.FormValue("desc_kk"))

	pdfFH, err := c.FormFile("pdf")
	if err != nil {
		return uploadError(ErrMissingFile)
	}
	// Browsers submit a zero-size part for an untouched file input.
	var coverFH *multipart.FileHeader
	if fh, err := c.FormFile("cover"); err == nil && fh != nil && fh.Size > 0 {
		coverFH = fh
	}

	// Both files are validated before either is placed, so a rejected
	// cover cannot leave an orphaned PDF behind.
	if _, err := sniffUpload(pdfFH, kindDocument); err != nil {
		return uploadError(err)
	}
	coverExt := ""
	if coverFH != nil {
		ext, err := sniffUpload(coverFH, kindImage)
		if err != nil {
			return uploadError(err)
		}
		coverExt = ext
	}

	pdfRel := path.Join("uploads", "books", bookAssetName(titleRU, year, "pdf"))
	if err := placeUpload(pdfFH, a.Store.AssetPath(pdfRel)); err != nil {
		return err
	}
	coverRel := ""
	if coverFH != nil {
		coverRel = path.Join("uploads", "covers", bookAssetName(titleRU, year, coverExt))
		if err := placeUpload(coverFH, a.Store.AssetPath(coverRel)); err != nil {
			return err
		}
	}

	if err := a.Store.AddBook(Book{
		TitleRU: titleRU,
		TitleKK: titleKK,
		Year:    year,
		DescRU:  descRU,
		DescKK:  descKK,
		PDF:     pdfRel,
		Cover:   coverRel,
	}); err != nil {
		return err
	}
	return redirectTo(c, lang, "books")
}

func (a *App) handleAddPhoto(c echo.Context) error {
	if err := requireAdmin(c); err != nil {
		return err
	}
	lang := pickLang(c)

	category := c.FormValue("category")
	if category != CategoryFamily {
		category = CategoryAwards
	}
	capRU := strings.TrimSpace(c.FormValue("caption_ru"))
	capKK := strings.TrimSpace(c.FormValue("caption_kk"))

	fh, err := c.FormFile("photo")
	if err != nil {
		return uploadError(ErrMissingFile)
	}
	now := time.Now()
	rel, err := a.Store.ingest(fh, kindImage, path.Join("uploads", "photos", category), func(ext string) string {
		return photoAssetName(capRU, now, ext)
	})
	if err != nil {
		return uploadError(err)
	}

	thumbRel := photoThumbRel(category, path.Base(rel))
	if err := makeThumbnail(a.Store.AssetPath(rel), a.Store.AssetPath(thumbRel)); err != nil {
		c.Logger().Warnf("thumbnail for %s: %v", rel, err)
		thumbRel = ""
	}

	if err := a.Store.AddPhoto(category, Photo{
		Src:       rel,
		Thumb:     thumbRel,
		CaptionRU: capRU,
		CaptionKK: capKK,
	}); err != nil {
		return err
	}
	return redirectTo(c, lang, category)
}

func (a *App) handleDeleteItem(c echo.Context) error {
	if err := requireAdmin(c); err != nil {
		return err
	}
	lang := pickLang(c)

	idx, err := strconv.Atoi(c.FormValue("idx"))
	if err != nil {
		idx = -1
	}
	id := c.FormValue("id")

	var anchor string
	switch c.FormValue("type") {
	case "book":
		anchor = "books"
		_, err = a.Store.DeleteBook(idx, id)
	case "award":
		anchor = "awards"
		_, err = a.Store.DeletePhoto(CategoryAwards, idx, id)
	case "family":
		anchor = "family"
		_, err = a.Store.DeletePhoto(CategoryFamily, idx, id)
	default:
		return redirectTo(c, lang, "home")
	}
	if errors.Is(err, ErrStaleIndex) {
		return echo.NewHTTPError(http.StatusConflict, ErrStaleIndex.Error())
	}
	if err != nil {
		return err
	}
	return redirectTo(c, lang, anchor)
}

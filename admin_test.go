package authorsite

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
)

func setupTestApp(t *testing.T) *App {
	t.Helper()
	return &App{
		Options: Options{
			AdminPassword: "secret",
			SessionSecret: "test-session-secret",
		},
		Echo:         echo.New(),
		Store:        setupTestStore(t),
		loginLimiter: newLoginLimiter(5, time.Minute),
	}
}

func postForm(a *App, target string, form url.Values) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	return a.Echo.NewContext(req, rec), rec
}

func TestMutationsRejectedWithoutSession(t *testing.T) {
	a := setupTestApp(t)

	// No session middleware ran, so no request here carries the admin
	// flag; every handler must refuse before touching the store.
	handlers := map[string]echo.HandlerFunc{
		"config": a.handleSaveConfig,
		"books":  a.handleAddBook,
		"photos": a.handleAddPhoto,
		"delete": a.handleDeleteItem,
	}
	for name, h := range handlers {
		c, _ := postForm(a, "/admin/"+name, url.Values{"title_ru": {"Дала"}})
		err := h(c)
		he, ok := err.(*echo.HTTPError)
		if !ok || he.Code != http.StatusForbidden {
			t.Errorf("%s: err = %v, want 403", name, err)
		}
	}
	if len(a.Store.Books()) != 0 {
		t.Error("store was mutated by a rejected request")
	}
}

func TestDeleteItemUnknownTypeRedirectsHome(t *testing.T) {
	a := setupTestApp(t)

	c, rec := postForm(a, "/admin/delete", url.Values{"type": {"bogus"}, "idx": {"0"}})
	setAdmin(t, c)
	if err := a.handleDeleteItem(c); err != nil {
		t.Fatalf("handleDeleteItem failed: %v", err)
	}
	if rec.Code != http.StatusSeeOther {
		t.Errorf("status = %d, want 303", rec.Code)
	}
	if loc := rec.Header().Get("Location"); !strings.Contains(loc, "#home") {
		t.Errorf("Location = %q, want home anchor", loc)
	}
}

func TestDeleteItemStaleIDConflicts(t *testing.T) {
	a := setupTestApp(t)
	if err := a.Store.AddBook(Book{TitleRU: "Дала", Year: 2021}); err != nil {
		t.Fatalf("AddBook failed: %v", err)
	}

	c, _ := postForm(a, "/admin/delete", url.Values{
		"type": {"book"},
		"idx":  {"0"},
		"id":   {"stale-id"},
	})
	setAdmin(t, c)
	err := a.handleDeleteItem(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusConflict {
		t.Fatalf("err = %v, want 409", err)
	}
	if len(a.Store.Books()) != 1 {
		t.Error("stale delete must not remove the book")
	}
}

func TestSaveConfigKeepsPriorAccentOnInvalidInput(t *testing.T) {
	a := setupTestApp(t)
	if err := a.Store.UpdateConfig(func(cfg *Config) { cfg.Accent = "#123abc" }); err != nil {
		t.Fatalf("UpdateConfig failed: %v", err)
	}

	c, rec := postForm(a, "/admin/config", url.Values{
		"site_title": {"Сайт"},
		"tagline_ru": {"Проза"},
		"tagline_kk": {"Проза"},
		"accent":     {"not-a-color"},
	})
	setAdmin(t, c)
	if err := a.handleSaveConfig(c); err != nil {
		t.Fatalf("handleSaveConfig failed: %v", err)
	}
	if rec.Code != http.StatusSeeOther {
		t.Errorf("status = %d, want 303", rec.Code)
	}
	if got := a.Store.Config().Accent; got != "#123abc" {
		t.Errorf("Accent = %q, invalid input must keep the prior value", got)
	}
}

// setAdmin marks the request context as authenticated without running
// the session middleware stack.
func setAdmin(t *testing.T, c echo.Context) {
	t.Helper()
	c.Set(adminContextKey, true)
}

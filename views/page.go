package views

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/a-h/templ"
)

// Page renders the whole site as a single document; sections become
// visible through hash-anchor tabs on the client.
func Page(d PageData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var buf bytes.Buffer
		renderPage(&buf, d)
		_, err := w.Write(buf.Bytes())
		return err
	})
}

func renderPage(buf *bytes.Buffer, d PageData) {
	t := d.T
	tagline := esc(d.Site.Tagline(d.Lang))
	title := esc(d.Site.Title)

	fmt.Fprintf(buf, `<!doctype html>
<html lang="%s" data-theme="%s">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>%s</title>
<meta name="description" content="%s">
<meta property="og:title" content="%s">
<meta property="og:description" content="%s">
<meta property="og:type" content="website">
<meta name="theme-color" content="%s">
<link rel="stylesheet" href="/public/styles.css">
<style>:root{--accent:%s}</style>
</head>
<body>
`, esc(d.Lang), esc(d.Site.Theme), title, tagline, title, tagline, esc(d.Site.Accent), esc(d.Site.Accent))

	renderHeader(buf, d)
	buf.WriteString(`<main class="wrap">`)
	renderHome(buf, d)
	renderBooks(buf, d)
	renderGallery(buf, d, "awards", t("awards_title"), d.Awards)
	renderGallery(buf, d, "family", t("family_title"), d.Family)
	renderAbout(buf, d)
	renderAdmin(buf, d)
	buf.WriteString(`</main>`)

	fmt.Fprintf(buf, `<footer>© %d %s</footer>`, time.Now().Year(), esc(t("footer")))
	renderOverlays(buf, d)
	renderScript(buf, d)
	buf.WriteString("</body>\n</html>\n")
}

func renderHeader(buf *bytes.Buffer, d PageData) {
	t := d.T
	buf.WriteString(`<header><div class="row"><div class="brand"><div class="logo">`)
	if d.Site.Logo != "" {
		fmt.Fprintf(buf, `<img src="%s" alt="logo">`, esc(assetURL(d.Site.Logo)))
	}
	fmt.Fprintf(buf, `</div><div class="title"><div class="site">%s</div><div class="tag">%s</div></div></div>`,
		esc(d.Site.Title), esc(d.Site.Tagline(d.Lang)))

	buf.WriteString(`<nav><div class="tabs">`)
	for _, tab := range []struct{ id, key string }{
		{"home", "nav_home"},
		{"books", "nav_books"},
		{"awards", "nav_awards"},
		{"family", "nav_family"},
		{"about", "nav_about"},
		{"admin", "nav_admin"},
	} {
		fmt.Fprintf(buf, `<a href="#%s" data-goto="%s" class="chip">%s</a>`, tab.id, tab.id, esc(t(tab.key)))
	}
	buf.WriteString(`</div></nav><div class="lang-theme">`)
	buf.WriteString(`<a class="chip" href="?lang=ru#home">RU</a><a class="chip" href="?lang=kk#home">KZ</a><a class="chip" href="?lang=en#home">EN</a>`)
	fmt.Fprintf(buf, `<button id="btnTheme" class="chip" type="button">%s</button>`, esc(t("theme")))
	buf.WriteString(`</div></div></header>`)
}

func renderHome(buf *bytes.Buffer, d PageData) {
	t := d.T
	buf.WriteString(`<section id="home" data-tab="home" class="active">`)
	fmt.Fprintf(buf, `<div class="hero"><div><h1 class="display">%s</h1><p class="muted">%s</p><div class="row">`,
		esc(d.Site.Title), esc(d.Site.Tagline(d.Lang)))
	fmt.Fprintf(buf, `<a class="btn" href="#books" data-goto="books">%s</a>`, esc(t("nav_books")))
	fmt.Fprintf(buf, `<a class="btn" href="%s" target="_blank" rel="noopener">%s</a>`, esc(hrefOr(d.Site.SubscribeURL)), esc(t("subscribe")))
	fmt.Fprintf(buf, `<a class="btn" href="%s" target="_blank" rel="noopener">%s</a>`, esc(hrefOr(d.Site.DonateURL)), esc(t("donate")))
	buf.WriteString(`</div></div><div class="card"><div class="row">`)
	fmt.Fprintf(buf, `<div class="chip">%s: %d</div><div class="chip">%s: %d</div>`,
		esc(t("nav_books")), len(d.Books), esc(t("nav_awards")), len(d.Awards))
	buf.WriteString(`</div></div></div></section>`)
}

func renderBooks(buf *bytes.Buffer, d PageData) {
	t := d.T
	buf.WriteString(`<section id="books" data-tab="books">`)
	fmt.Fprintf(buf, `<div class="row section-head"><h2>%s</h2><input id="bookSearch" type="text" placeholder="%s">`, esc(t("nav_books")), esc(t("search")))
	fmt.Fprintf(buf, `<a class="btn secondary" href="/books.zip">%s</a></div>`, esc(t("all_books_zip")))
	buf.WriteString(`<div class="grid books">`)
	for idx, b := range d.Books {
		title := esc(b.Title(d.Lang))
		pdf := esc(assetURL(b.PDF))
		fmt.Fprintf(buf, `<article class="card book" data-title="%s">`, title)
		fmt.Fprintf(buf, `<a class="cover" href="%s" data-pdf="%s">`, pdf, pdf)
		if b.Cover != "" {
			fmt.Fprintf(buf, `<img src="%s" alt="cover">`, esc(assetURL(b.Cover)))
		}
		fmt.Fprintf(buf, `</a><h3>%s</h3><div class="muted">%s: %d</div>`, title, esc(t("year")), b.Year)
		if desc := b.Desc(d.Lang); desc != "" {
			fmt.Fprintf(buf, `<p>%s</p>`, esc(desc))
		}
		fmt.Fprintf(buf, `<div class="row"><a class="btn" href="%s" data-pdf="%s">%s</a><a class="btn secondary" href="%s" download>%s</a></div>`,
			pdf, pdf, esc(t("read")), pdf, esc(t("download")))
		if d.IsAdmin {
			renderDeleteForm(buf, d, "book", idx, b.ID)
		}
		buf.WriteString(`</article>`)
	}
	buf.WriteString(`</div></section>`)
}

func renderGallery(buf *bytes.Buffer, d PageData, id, title string, photos []Photo) {
	itemType := "award"
	if id == "family" {
		itemType = "family"
	}
	fmt.Fprintf(buf, `<section id="%s" data-tab="%s"><h2>%s</h2><div class="grid gallery">`, id, id, esc(title))
	for idx, p := range photos {
		cap := esc(p.Caption(d.Lang))
		buf.WriteString(`<figure>`)
		fmt.Fprintf(buf, `<img src="%s" alt="%s" data-full="%s" class="js-lightbox">`,
			esc(assetURL(p.GridSrc())), cap, esc(assetURL(p.Src)))
		if cap != "" {
			fmt.Fprintf(buf, `<figcaption class="muted">%s</figcaption>`, cap)
		}
		if d.IsAdmin {
			renderDeleteForm(buf, d, itemType, idx, p.ID)
		}
		buf.WriteString(`</figure>`)
	}
	buf.WriteString(`</div></section>`)
}

func renderDeleteForm(buf *bytes.Buffer, d PageData, itemType string, idx int, id string) {
	fmt.Fprintf(buf, `<form method="post" action="/admin/delete?lang=%s" class="row js-confirm">`, esc(d.Lang))
	fmt.Fprintf(buf, `<input type="hidden" name="_csrf" value="%s">`, esc(d.CSRF))
	fmt.Fprintf(buf, `<input type="hidden" name="type" value="%s">`, itemType)
	fmt.Fprintf(buf, `<input type="hidden" name="idx" value="%d">`, idx)
	fmt.Fprintf(buf, `<input type="hidden" name="id" value="%s">`, esc(id))
	fmt.Fprintf(buf, `<button class="btn secondary" type="submit">%s</button></form>`, esc(d.T("delete")))
}

func renderAbout(buf *bytes.Buffer, d PageData) {
	t := d.T
	fmt.Fprintf(buf, `<section id="about" data-tab="about"><h2>%s</h2><div class="card"><p>%s</p><p class="muted">%s</p></div></section>`,
		esc(t("about_title")), esc(t("about_body")), esc(t("about_contact")))
}

func renderAdmin(buf *bytes.Buffer, d PageData) {
	t := d.T
	lang := esc(d.Lang)
	fmt.Fprintf(buf, `<section id="admin" data-tab="admin"><h2>%s</h2>`, esc(t("admin")))
	if !d.IsAdmin {
		fmt.Fprintf(buf, `<form method="post" action="/login?lang=%s" class="card login">`, lang)
		fmt.Fprintf(buf, `<label>%s<br><input type="password" name="password" required></label>`, esc(t("password")))
		fmt.Fprintf(buf, `<div class="row"><button class="btn" type="submit">%s</button></div></form></section>`, esc(t("login")))
		return
	}

	csrf := esc(d.CSRF)
	fmt.Fprintf(buf, `<form method="post" action="/logout?lang=%s" class="row"><button class="btn secondary" type="submit">%s</button></form>`,
		lang, esc(t("logout")))

	// Settings
	fmt.Fprintf(buf, `<form class="card" method="post" action="/admin/config?lang=%s" enctype="multipart/form-data">`, lang)
	fmt.Fprintf(buf, `<h3>%s</h3><input type="hidden" name="_csrf" value="%s"><div class="grid two">`, esc(t("settings")), csrf)
	fmt.Fprintf(buf, `<label>%s<br><input name="site_title" value="%s"></label>`, esc(t("site_title_label")), esc(d.Site.Title))
	fmt.Fprintf(buf, `<label>%s<br><input type="color" name="accent" value="%s"></label>`, esc(t("accent_color")), esc(d.Site.Accent))
	fmt.Fprintf(buf, `<label>%s<br><input name="tagline_ru" value="%s"></label>`, esc(t("tagline_ru_label")), esc(d.Site.TaglineRU))
	fmt.Fprintf(buf, `<label>%s<br><input name="tagline_kk" value="%s"></label>`, esc(t("tagline_kk_label")), esc(d.Site.TaglineKK))
	fmt.Fprintf(buf, `<label>%s<br><input name="subscribe_url" value="%s"></label>`, esc(t("subscribe_url")), esc(d.Site.SubscribeURL))
	fmt.Fprintf(buf, `<label>%s<br><input name="donate_url" value="%s"></label>`, esc(t("donate_url")), esc(d.Site.DonateURL))
	fmt.Fprintf(buf, `<label>%s<br><select name="default_theme">`, esc(t("default_theme")))
	for _, theme := range []string{"light", "dark"} {
		selected := ""
		if d.Site.Theme == theme {
			selected = " selected"
		}
		fmt.Fprintf(buf, `<option value="%s"%s>%s</option>`, theme, selected, esc(t(theme)))
	}
	fmt.Fprintf(buf, `</select></label><label>%s<br><input type="file" name="logo" accept="image/*"></label></div>`, esc(t("logo")))
	fmt.Fprintf(buf, `<div class="row"><button class="btn">%s</button></div></form>`, esc(t("save_config")))

	// Add book / add photo
	buf.WriteString(`<div class="admin">`)
	fmt.Fprintf(buf, `<form class="card" method="post" action="/admin/books?lang=%s" enctype="multipart/form-data">`, lang)
	fmt.Fprintf(buf, `<h3>%s</h3><input type="hidden" name="_csrf" value="%s">`, esc(t("add_book")), csrf)
	fmt.Fprintf(buf, `<label>%s<br><input name="title_ru" required></label>`, esc(t("book_title_ru")))
	fmt.Fprintf(buf, `<label>%s<br><input name="title_kk"></label>`, esc(t("book_title_kk")))
	fmt.Fprintf(buf, `<label>%s<br><input type="number" name="year" min="1900" max="%d" value="%d" required></label>`,
		esc(t("book_year")), time.Now().Year(), time.Now().Year())
	fmt.Fprintf(buf, `<label>%s<br><textarea name="desc_ru" rows="3"></textarea></label>`, esc(t("book_desc_ru")))
	fmt.Fprintf(buf, `<label>%s<br><textarea name="desc_kk" rows="3"></textarea></label>`, esc(t("book_desc_kk")))
	fmt.Fprintf(buf, `<label>%s<br><input type="file" name="pdf" accept="application/pdf" required></label>`, esc(t("book_pdf")))
	fmt.Fprintf(buf, `<label>%s<br><input type="file" name="cover" accept="image/*"></label>`, esc(t("book_cover")))
	fmt.Fprintf(buf, `<div class="row"><button class="btn">%s</button></div></form>`, esc(t("save")))

	fmt.Fprintf(buf, `<form class="card" method="post" action="/admin/photos?lang=%s" enctype="multipart/form-data">`, lang)
	fmt.Fprintf(buf, `<h3>%s</h3><input type="hidden" name="_csrf" value="%s">`, esc(t("add_photo")), csrf)
	fmt.Fprintf(buf, `<label>%s<br><select name="category"><option value="awards">%s</option><option value="family">%s</option></select></label>`,
		esc(t("category")), esc(t("awards")), esc(t("family")))
	fmt.Fprintf(buf, `<label>%s<br><input name="caption_ru"></label>`, esc(t("caption_ru")))
	fmt.Fprintf(buf, `<label>%s<br><input name="caption_kk"></label>`, esc(t("caption_kk")))
	fmt.Fprintf(buf, `<label>%s<br><input type="file" name="photo" accept="image/*" required></label>`, esc(t("photo_file")))
	fmt.Fprintf(buf, `<div class="row"><button class="btn">%s</button></div></form>`, esc(t("save")))
	buf.WriteString(`</div>`)

	if len(d.Traffic) > 0 {
		fmt.Fprintf(buf, `<div class="card traffic"><h3>%s</h3><table><thead><tr><th></th><th>%s</th></tr></thead><tbody>`,
			esc(t("traffic")), esc(t("views")))
		for _, row := range d.Traffic {
			fmt.Fprintf(buf, `<tr><td>%s</td><td>%d</td></tr>`, esc(row.Day), row.Views)
		}
		buf.WriteString(`</tbody></table></div>`)
	}
	buf.WriteString(`</section>`)
}

func renderOverlays(buf *bytes.Buffer, d PageData) {
	t := d.T
	fmt.Fprintf(buf, `<div class="modal" id="pdfModal"><div class="inner"><header class="bar"><strong>PDF</strong><div class="row">`+
		`<a id="pdfDownload" class="btn secondary" href="#" download>%s</a>`+
		`<button class="btn" type="button" data-close-pdf>×</button></div></header>`+
		`<object id="pdfObject" data="" type="application/pdf"></object></div></div>`, esc(t("download")))
	buf.WriteString(`<div class="lightbox" id="lightbox" role="dialog" aria-modal="true">` +
		`<button type="button" class="lightbox-close" id="lbClose">×</button><img alt=""></div>`)
}

func renderScript(buf *bytes.Buffer, d PageData) {
	buf.WriteString(`<script>
(function () {
  var tabs = document.querySelectorAll('section[data-tab]');
  var links = document.querySelectorAll('[data-goto]');
  function show(id) {
    id = (id || 'home').replace('#', '');
    tabs.forEach(function (s) { s.classList.toggle('active', s.dataset.tab === id); });
    links.forEach(function (a) { a.classList.toggle('active', a.dataset.goto === id); });
    if (location.hash !== '#' + id) history.replaceState(null, '', '#' + id);
  }
  links.forEach(function (a) {
    a.addEventListener('click', function (e) { e.preventDefault(); show(a.dataset.goto); });
  });
  window.addEventListener('hashchange', function () { show(location.hash); });
  show(location.hash);

  var q = document.getElementById('bookSearch');
  if (q) q.addEventListener('input', function () {
    var v = q.value.trim().toLowerCase();
    document.querySelectorAll('.book').forEach(function (card) {
      card.style.display = (card.dataset.title || '').toLowerCase().indexOf(v) >= 0 ? '' : 'none';
    });
  });

  var btn = document.getElementById('btnTheme');
  if (btn) {
    var saved = localStorage.getItem('theme');
    if (saved) document.documentElement.setAttribute('data-theme', saved);
    btn.addEventListener('click', function () {
      var next = document.documentElement.getAttribute('data-theme') === 'dark' ? 'light' : 'dark';
      document.documentElement.setAttribute('data-theme', next);
      localStorage.setItem('theme', next);
    });
  }

  var modal = document.getElementById('pdfModal');
  var obj = document.getElementById('pdfObject');
  var dl = document.getElementById('pdfDownload');
  document.querySelectorAll('[data-pdf]').forEach(function (a) {
    a.addEventListener('click', function (e) {
      e.preventDefault();
      obj.setAttribute('data', a.dataset.pdf);
      dl.setAttribute('href', a.dataset.pdf);
      modal.classList.add('open');
    });
  });
  function closePdf() { modal.classList.remove('open'); obj.removeAttribute('data'); }
  modal.addEventListener('click', function (e) { if (e.target === modal) closePdf(); });
  document.querySelectorAll('[data-close-pdf]').forEach(function (b) { b.addEventListener('click', closePdf); });

  var lb = document.getElementById('lightbox');
  var img = lb.querySelector('img');
  document.querySelectorAll('.js-lightbox').forEach(function (el) {
    el.addEventListener('click', function () {
      img.src = el.dataset.full || el.src;
      img.alt = el.alt || '';
      lb.classList.add('open');
    });
  });
  function closeLb() { lb.classList.remove('open'); img.src = ''; }
  lb.addEventListener('click', function (e) { if (e.target === lb) closeLb(); });
  document.getElementById('lbClose').addEventListener('click', closeLb);
  window.addEventListener('keydown', function (e) { if (e.key === 'Escape') { closePdf(); closeLb(); } });

  document.querySelectorAll('.js-confirm').forEach(function (f) {
    f.addEventListener('submit', function (e) { if (!confirm('Delete?')) e.preventDefault(); });
  });
})();
</script>`)
}

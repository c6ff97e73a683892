package authorsite

import (
	"github.com/labstack/echo/v4"
	"golang.org/x/text/language"
)

// Interface languages. Russian is the default and the fallback for
// missing keys.
var (
	langTags    = []language.Tag{language.Russian, language.Kazakh, language.English}
	langCodes   = []string{"ru", "kk", "en"}
	langMatcher = language.NewMatcher(langTags)
)

// pickLang resolves the interface language: an explicit ?lang= wins,
// otherwise the Accept-Language header is matched against the supported
// set.
func pickLang(c echo.Context) string {
	q := c.QueryParam("lang")
	for _, code := range langCodes {
		if q == code {
			return code
		}
	}
	_, idx := language.MatchStrings(langMatcher, c.Request().Header.Get("Accept-Language"))
	return langCodes[idx]
}

// translator returns a lookup function for one language with Russian
// fallback. Unknown keys come back verbatim.
func translator(lang string) func(string) string {
	table := i18n[lang]
	fallback := i18n["ru"]
	return func(key string) string {
		if v, ok := table[key]; ok {
			return v
		}
		if v, ok := fallback[key]; ok {
			return v
		}
		return key
	}
}

var i18n = map[string]map[string]string{
	"ru": {
		"nav_home":   "Главная",
		"nav_books":  "Книги",
		"nav_awards": "Награды",
		"nav_family": "Семья",
		"nav_about":  "О писателе",
		"nav_admin":  "Админ-панель",

		"search":        "Поиск по книгам…",
		"year":          "Год",
		"read":          "Читать",
		"download":      "Скачать",
		"all_books_zip": "Скачать все книги (ZIP)",

		"awards_title":  "Награды и медали",
		"family_title":  "Семейные фотографии",
		"about_title":   "О писателе",
		"about_body":    "Бұл — жазушы Ғалымжан Алтековтың ресми қоғамдық парақшасы. Здесь собраны его книги в формате PDF, награды и семейные фотографии. Контент пополняется и поддерживается лично автором / его представителем.",
		"about_contact": "Контакты для связи, презентаций, встреч можно разместить здесь (email/телефон/соцсети).",
		"footer":        "Ғалымжан Алтеков. Все права защищены.",

		"admin":    "Админ-панель",
		"login":    "Вход",
		"password": "Пароль",
		"logout":   "Выйти",

		"add_book":      "Добавить книгу",
		"book_title_ru": "Название (RU)",
		"book_title_kk": "Атауы (KZ)",
		"book_year":     "Год издания",
		"book_desc_ru":  "Описание (RU, необязательно)",
		"book_desc_kk":  "Сипаттамасы (KZ, міндетті емес)",
		"book_pdf":      "Файл книги (PDF)",
		"book_cover":    "Обложка (JPG/PNG/WebP, опционально)",
		"save":          "Сохранить",

		"add_photo":  "Добавить фотографию",
		"category":   "Категория",
		"awards":     "Награды",
		"family":     "Семья",
		"caption_ru": "Подпись (RU)",
		"caption_kk": "Сурет мәтіні (KZ)",
		"photo_file": "Файл фото (JPG/PNG/WebP)",
		"delete":     "Удалить",

		"theme":            "Тема",
		"light":            "Светлая",
		"dark":             "Тёмная",
		"subscribe":        "Подписаться",
		"donate":           "Донат",
		"settings":         "Настройки",
		"site_title_label": "Заголовок сайта",
		"tagline_ru_label": "Подзаголовок (RU)",
		"tagline_kk_label": "Подзаголовок (KZ)",
		"accent_color":     "Акцентный цвет",
		"default_theme":    "Тема по умолчанию",
		"subscribe_url":    "Ссылка «Подписаться»",
		"donate_url":       "Ссылка «Донат»",
		"logo":             "Логотип (PNG/JPG/WebP)",
		"save_config":      "Сохранить настройки",

		"traffic": "Посещения за 30 дней",
		"views":   "Просмотры",
	},
	"kk": {
		"nav_home":   "Басты",
		"nav_books":  "Кітаптар",
		"nav_awards": "Марапаттар",
		"nav_family": "Отбасы",
		"nav_about":  "Жазушы туралы",
		"nav_admin":  "Әкімші панелі",

		"search":        "Кітаптардан іздеу…",
		"year":          "Жыл",
		"read":          "Оқу",
		"download":      "Жүктеу",
		"all_books_zip": "Барлық кітапты ZIP түрінде жүктеу",

		"awards_title":  "Марапаттар мен медальдар",
		"family_title":  "Отбасы фотолары",
		"about_title":   "Жазушы туралы",
		"about_body":    "Бұл — жазушы Ғалымжан Алтековтың ресми қоғамдық парақшасы. Мұнда оның PDF форматындағы кітаптары, марапаттары мен отбасылық фотолары жинақталған.",
		"about_contact": "Байланыс, таныстырылым, кездесулер үшін контактілерді осында орналастыруға болады.",
		"footer":        "Ғалымжан Алтеков. Барлық құқықтар қорғалған.",

		"admin":    "Әкімші панелі",
		"login":    "Кіру",
		"password": "Құпия сөз",
		"logout":   "Шығу",

		"add_book":      "Кітап қосу",
		"book_title_ru": "Атауы (RU)",
		"book_title_kk": "Атауы (KZ)",
		"book_year":     "Шыққан жылы",
		"book_desc_ru":  "Сипаттама (RU, міндетті емес)",
		"book_desc_kk":  "Сипаттама (KZ, міндетті емес)",
		"book_pdf":      "Кітап файлы (PDF)",
		"book_cover":    "Мұқаба (JPG/PNG/WebP, опциялы)",
		"save":          "Сақтау",

		"add_photo":  "Фото қосу",
		"category":   "Санат",
		"awards":     "Марапаттар",
		"family":     "Отбасы",
		"caption_ru": "Сипаттама (RU)",
		"caption_kk": "Сипаттама (KZ)",
		"photo_file": "Фото файлы (JPG/PNG/WebP)",
		"delete":     "Жою",

		"theme":            "Тақырып",
		"light":            "Ашық",
		"dark":             "Қараңғы",
		"subscribe":        "Жазылу",
		"donate":           "Донат",
		"settings":         "Баптаулар",
		"site_title_label": "Сайт тақырыбы",
		"tagline_ru_label": "Астын тақырып (RU)",
		"tagline_kk_label": "Астын тақырып (KZ)",
		"accent_color":     "Акцент түсі",
		"default_theme":    "Әдепкі тема",
		"subscribe_url":    "«Жазылу» сілтемесі",
		"donate_url":       "«Донат» сілтемесі",
		"logo":             "Логотип (PNG/JPG/WebP)",
		"save_config":      "Баптауларды сақтау",

		"traffic": "30 күндегі кірулер",
		"views":   "Қаралым",
	},
	"en": {
		"nav_home":   "Home",
		"nav_books":  "Books",
		"nav_awards": "Awards",
		"nav_family": "Family",
		"nav_about":  "About",
		"nav_admin":  "Admin",

		"search":        "Search books…",
		"year":          "Year",
		"read":          "Read",
		"download":      "Download",
		"all_books_zip": "Download all books (ZIP)",

		"awards_title":  "Awards & Medals",
		"family_title":  "Family Photos",
		"about_title":   "About the Author",
		"about_body":    "The official public page of the writer Galymzhan Altekov: his books in PDF, awards and family photos, maintained by the author or his representative.",
		"about_contact": "Contact details for events and presentations can be placed here (email/phone/social).",
		"footer":        "Galymzhan Altekov. All rights reserved.",

		"admin":    "Admin",
		"login":    "Login",
		"password": "Password",
		"logout":   "Logout",

		"add_book":      "Add Book",
		"book_title_ru": "Title (RU)",
		"book_title_kk": "Title (KZ)",
		"book_year":     "Year",
		"book_desc_ru":  "Description (RU)",
		"book_desc_kk":  "Description (KZ)",
		"book_pdf":      "Book file (PDF)",
		"book_cover":    "Cover (JPG/PNG/WebP)",
		"save":          "Save",

		"add_photo":  "Add Photo",
		"category":   "Category",
		"awards":     "Awards",
		"family":     "Family",
		"caption_ru": "Caption (RU)",
		"caption_kk": "Caption (KZ)",
		"photo_file": "Photo file (JPG/PNG/WebP)",
		"delete":     "Delete",

		"theme":            "Theme",
		"light":            "Light",
		"dark":             "Dark",
		"subscribe":        "Subscribe",
		"donate":           "Donate",
		"settings":         "Settings",
		"site_title_label": "Site title",
		"tagline_ru_label": "Tagline (RU)",
		"tagline_kk_label": "Tagline (KZ)",
		"accent_color":     "Accent color",
		"default_theme":    "Default theme",
		"subscribe_url":    "Subscribe URL",
		"donate_url":       "Donate URL",
		"logo":             "Logo (PNG/JPG/WebP)",
		"save_config":      "Save settings",

		"traffic": "Visits, last 30 days",
		"views":   "Views",
	},
}

package browser

import (
	"fmt"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/microcosm-cc/bluemonday"

	"github.com/GriffinCanCode/ros/backend/internal/shared/paths"
)

const (
	// HomeURL is where a new browser window starts.
	HomeURL = "https://www.google.com/search?igu=1"
	// LocalScheme prefixes pages served from the virtual file system.
	LocalScheme = "local://"

	KindLocal = "local"
	KindWeb   = "web"
)

// maxExcerpt bounds Page.Text in runes.
const maxExcerpt = 280

// Page is what the browser shows for one URL. Web pages are loaded by the
// client, so only URL and Kind are set for them.
type Page struct {
	URL   string `json:"url"`
	Kind  string `json:"kind"`
	Title string `json:"title,omitempty"`
	HTML  string `json:"html,omitempty"`
	Text  string `json:"text,omitempty"`
}

// Normalize turns address bar input into a URL. Anything that is not
// http(s) or local is a search.
func Normalize(input string) string {
	if strings.HasPrefix(input, "http") || strings.HasPrefix(input, LocalScheme) {
		return input
	}
	return HomeURL + "&q=" + encodeURIComponent(input)
}

// LocalURL returns the local:// address of a file.
func LocalURL(path string) string {
	return LocalScheme + path
}

// encodeURIComponent escapes like the JavaScript function of that name,
// with spaces as %20.
func encodeURIComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

var sanitizer = bluemonday.UGCPolicy()

// Render builds a local page from file content. Scripts and event
// handlers are removed from the preview HTML.
func Render(path, content string) (Page, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		return Page{}, fmt.Errorf("failed to parse HTML: %w", err)
	}

	title := strings.TrimSpace(doc.Find("title").First().Text())
	if title == "" {
		_, title = paths.Split(path)
	}

	doc.Find("script, style").Remove()
	text := strings.Join(strings.Fields(doc.Find("body").Text()), " ")

	return Page{
		URL:   LocalURL(path),
		Kind:  KindLocal,
		Title: title,
		HTML:  sanitizer.Sanitize(content),
		Text:  excerpt(text, maxExcerpt),
	}, nil
}

func excerpt(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	runes := []rune(s)
	return string(runes[:limit]) + "…"
}

package collector

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// FromHTML mines the raw page markup for signals the computed-style walk
// cannot see: the declared theme color, site icons and the Open Graph image.
// It supplements the in-page collectors and tolerates any markup goquery can
// parse at all.
func FromHTML(html, pageURL string) (*Raw, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse page HTML: %w", err)
	}

	raw := &Raw{}

	// A declared theme-color is an explicit brand statement by the site.
	doc.Find(`meta[name="theme-color"]`).Each(func(i int, s *goquery.Selection) {
		if content, ok := s.Attr("content"); ok && strings.TrimSpace(content) != "" {
			raw.Colors = append(raw.Colors, ColorObservation{
				Color:    strings.TrimSpace(content),
				Property: "background",
				Context:  "theme",
				Count:    1,
			})
		}
	})

	// Icons and the Open Graph image are weak logo candidates; they only win
	// when the DOM walk found nothing better.
	doc.Find(`link[rel="icon"], link[rel="shortcut icon"], link[rel="apple-touch-icon"]`).Each(func(i int, s *goquery.Selection) {
		href, ok := s.Attr("href")
		if !ok || strings.TrimSpace(href) == "" {
			return
		}
		raw.Logos = append(raw.Logos, LogoCandidate{
			URL:   resolveRef(pageURL, href),
			Kind:  "img",
			Score: 1,
		})
	})
	doc.Find(`meta[property="og:image"]`).Each(func(i int, s *goquery.Selection) {
		if content, ok := s.Attr("content"); ok && strings.TrimSpace(content) != "" {
			raw.Logos = append(raw.Logos, LogoCandidate{
				URL:   resolveRef(pageURL, content),
				Kind:  "img",
				Score: 0.5,
			})
		}
	})

	return raw, nil
}

// resolveRef resolves a possibly relative reference against the page URL.
func resolveRef(pageURL, ref string) string {
	base, err := url.Parse(pageURL)
	if err != nil {
		return ref
	}
	r, err := url.Parse(strings.TrimSpace(ref))
	if err != nil {
		return ref
	}
	return base.ResolveReference(r).String()
}

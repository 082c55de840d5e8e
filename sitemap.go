package beeola

import (
	"encoding/xml"
	"net/http"

	"github.com/labstack/echo/v4"
)

type sitemapURLSet struct {
	XMLName  xml.Name     `xml:"urlset"`
	XMLNS    string       `xml:"xmlns,attr"`
	XMLNSXHT string       `xml:"xmlns:xhtml,attr"`
	URLs     []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc        string             `xml:"loc"`
	LastMod    string             `xml:"lastmod,omitempty"`
	Alternates []sitemapAlternate `xml:"xhtml:link,omitempty"`
}

// sitemapAlternate declares a language variant of the same page.
type sitemapAlternate struct {
	Rel      string `xml:"rel,attr"`
	Hreflang string `xml:"hreflang,attr"`
	Href     string `xml:"href,attr"`
}

// renderSitemap writes one url entry per post per language, each carrying
// hreflang alternates that join the translations of the same post.
func (a *App) renderSitemap(c echo.Context) error {
	base := a.Config.URL
	urls := []sitemapURL{
		{Loc: BuildURL(base)},
	}
	for _, lang := range a.Languages.Codes() {
		posts, err := a.Cache.ListPosts(lang, "")
		if err != nil {
			return err
		}
		for _, p := range posts {
			translations, err := a.Cache.Translations(p.Slug)
			if err != nil {
				return err
			}
			var alternates []sitemapAlternate
			if len(translations) > 1 {
				for _, t := range translations {
					alternates = append(alternates, sitemapAlternate{
						Rel:      "alternate",
						Hreflang: t,
						Href:     BuildURL(base, PostPath(p.Slug, t)),
					})
				}
			}
			urls = append(urls, sitemapURL{
				Loc:        BuildURL(base, PostPath(p.Slug, p.Lang)),
				LastMod:    p.Date,
				Alternates: alternates,
			})
		}
	}
	sitemap := sitemapURLSet{
		XMLNS:    "http://www.sitemaps.org/schemas/sitemap/0.9",
		XMLNSXHT: "http://www.w3.org/1999/xhtml",
		URLs:     urls,
	}
	c.Response().Header().Set(echo.HeaderContentType, "application/xml; charset=utf-8")
	c.Response().WriteHeader(http.StatusOK)
	c.Response().Write([]byte(xml.Header))
	return xml.NewEncoder(c.Response()).Encode(sitemap)
}

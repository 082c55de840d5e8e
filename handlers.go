package beeola

import (
	"database/sql"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// requestLang returns the language the middleware resolved for this request.
func requestLang(c echo.Context) string {
	if lang, ok := c.Get(langContextKey).(string); ok && lang != "" {
		return lang
	}
	return DefaultLanguage
}

// handleHome serves the post listing. "/" follows the visitor's resolved
// language preference; "/:lang/" pins the language explicitly.
func (a *App) handleHome(c echo.Context) error {
	lang := requestLang(c)
	if v := c.Param("lang"); v != "" {
		code, ok := a.Languages.Parse(v)
		if !ok {
			return echo.ErrNotFound
		}
		lang = code
	}
	tag := c.QueryParam("tag")
	posts, err := a.Cache.ListPosts(lang, tag)
	if err != nil {
		return err
	}
	tags, err := a.Cache.ListTags(lang)
	if err != nil {
		return err
	}
	return Render(c, a.Views.Home(posts, tag, tags, lang))
}

// splitLangSlug takes the wildcard remainder of a post URL ("my-post" or
// "fr/my-post") and separates the language tag from the bare slug.
func (a *App) splitLangSlug(rest string) (slug, lang string) {
	rest = strings.Trim(rest, "/")
	if head, tail, ok := strings.Cut(rest, "/"); ok {
		if code, supported := a.Languages.Parse(head); supported {
			return tail, code
		}
	}
	return rest, DefaultLanguage
}

// handlePost serves a single post page with its prev/next neighbours and the
// list of languages it is available in.
func (a *App) handlePost(c echo.Context) error {
	slug, lang := a.splitLangSlug(c.Param("*"))
	if slug == "" {
		return echo.ErrNotFound
	}
	post, err := a.Cache.GetPost(slug, lang)
	if err != nil {
		if err == sql.ErrNoRows {
			return RenderStatus(c, http.StatusNotFound, a.Views.NotFound())
		}
		return err
	}
	prev, next, err := a.Cache.Adjacent(slug, lang)
	if err != nil {
		return err
	}
	translations, err := a.Cache.Translations(slug)
	if err != nil {
		return err
	}
	page := PostPage{
		Post:         post,
		Prev:         prev,
		Next:         next,
		Translations: translations,
	}
	if a.Config.StatsEnabled {
		if views, err := a.Store.ViewCount(slug, lang); err == nil {
			page.Views = views
		}
	}
	return Render(c, a.Views.Post(page))
}

func (a *App) handleSitemap(c echo.Context) error {
	return a.renderSitemap(c)
}

// handleFeed serves the RSS feed, per language when the URL carries one.
func (a *App) handleFeed(c echo.Context) error {
	lang := DefaultLanguage
	if v := c.Param("lang"); v != "" {
		code, ok := a.Languages.Parse(v)
		if !ok {
			return echo.ErrNotFound
		}
		lang = code
	}
	posts, err := a.Cache.ListPosts(lang, "")
	if err != nil {
		return err
	}
	return a.renderRSS(c, posts, lang)
}

func handleBlogRedirect(c echo.Context) error {
	return c.Redirect(http.StatusMovedPermanently, "/")
}

func (a *App) handleFavicon(c echo.Context) error {
	return c.File(a.staticDir + "/favicon.svg")
}

// handleRobots generates robots.txt dynamically using the site URL.
func (a *App) handleRobots(c echo.Context) error {
	body := fmt.Sprintf("User-agent: *\nAllow: /\nDisallow: /admin/\n\nSitemap: %s/sitemap.xml\n", a.Config.URL)
	return c.String(http.StatusOK, body)
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	he, ok := err.(*echo.HTTPError)
	if ok && he.Code == http.StatusNotFound {
		_ = RenderStatus(c, http.StatusNotFound, a.Views.NotFound())
		return
	}
	code := http.StatusInternalServerError
	if ok {
		code = he.Code
	}
	if code >= 500 {
		c.Logger().Errorf("server error: %v", err)
		_ = RenderStatus(c, code, a.Views.ServerError())
		return
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}

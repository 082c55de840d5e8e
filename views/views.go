// Package views provides the default templ components for the site. Every
// component is a plain templ.ComponentFunc writing HTML, so a binary can
// swap any of them out through beeola.ViewFuncs without a template step.
package views

import (
	"context"
	"html"
	"io"
	"strconv"
	"strings"

	"github.com/a-h/templ"

	beeola "github.com/gbozee/beeola.me"
)

// Defaults returns the complete default view set for the given site config.
func Defaults(cfg beeola.SiteConfig) beeola.ViewFuncs {
	return beeola.ViewFuncs{
		Home: func(posts []beeola.BlogPost, activeTag string, tags []string, lang string) templ.Component {
			return Home(cfg, posts, activeTag, tags, lang)
		},
		Post: func(page beeola.PostPage) templ.Component {
			return Post(cfg, page)
		},
		AdminLogin: func(showError bool, csrfToken string) templ.Component {
			return AdminLogin(cfg, showError, csrfToken)
		},
		AdminDashboard: func(posts []beeola.BlogPost, views map[string]int, message, csrfToken string) templ.Component {
			return AdminDashboard(cfg, posts, views, message, csrfToken)
		},
		AdminFormPartial: AdminFormPartial,
		AdminImages:      AdminImages,
		NotFound: func() templ.Component {
			return StatusPage(cfg, "Not found", "This page does not exist. It may have moved, or never was.")
		},
		ServerError: func() templ.Component {
			return StatusPage(cfg, "Something broke", "An unexpected error occurred. Try again in a moment.")
		},
	}
}

func component(render func(b *strings.Builder)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		render(&b)
		_, err := io.WriteString(w, b.String())
		return err
	})
}

func esc(s string) string {
	return html.EscapeString(s)
}

// layout writes the shared document shell around a page body.
func layout(b *strings.Builder, cfg beeola.SiteConfig, title, jsonLD string, lang string, body func(*strings.Builder)) {
	if lang == "" {
		lang = beeola.DefaultLanguage
	}
	b.WriteString(`<!DOCTYPE html><html lang="` + esc(lang) + `"><head><meta charset="utf-8"/>`)
	b.WriteString(`<meta name="viewport" content="width=device-width, initial-scale=1"/>`)
	b.WriteString(`<title>` + esc(title) + `</title>`)
	if cfg.Description != "" {
		b.WriteString(`<meta name="description" content="` + esc(cfg.Description) + `"/>`)
	}
	b.WriteString(`<link rel="alternate" type="application/rss+xml" href="/feed.xml"/>`)
	b.WriteString(`<link rel="stylesheet" href="/public/site.css"/>`)
	if jsonLD != "" {
		b.WriteString(`<script type="application/ld+json">` + jsonLD + `</script>`)
	}
	b.WriteString(`</head><body><header class="site-header"><a class="site-name" href="/">` + esc(cfg.Name) + `</a></header><main>`)
	body(b)
	b.WriteString(`</main><footer class="site-footer"><a href="/feed.xml">rss</a></footer></body></html>`)
}

// Home renders the post listing for one language, with tag filter pills.
func Home(cfg beeola.SiteConfig, posts []beeola.BlogPost, activeTag string, tags []string, lang string) templ.Component {
	return component(func(b *strings.Builder) {
		layout(b, cfg, cfg.Name, beeola.WebsiteJsonLD(cfg), lang, func(b *strings.Builder) {
			if len(tags) > 0 {
				b.WriteString(`<nav class="tags">`)
				cls := "tag"
				if activeTag == "" {
					cls = "tag active"
				}
				b.WriteString(`<a class="` + cls + `" href="` + homeHref(lang) + `">all</a>`)
				for _, t := range tags {
					cls := "tag"
					if t == activeTag {
						cls = "tag active"
					}
					b.WriteString(`<a class="` + cls + `" href="` + homeHref(lang) + `?tag=` + beeola.PathEscape(t) + `">` + esc(t) + `</a>`)
				}
				b.WriteString(`</nav>`)
			}
			b.WriteString(`<section class="posts">`)
			for _, p := range posts {
				b.WriteString(`<article class="post-card"><h2><a href="` + esc(p.Link) + `">` + esc(p.Title) + `</a></h2>`)
				b.WriteString(`<time datetime="` + esc(p.Date) + `">` + esc(FormatDate(p.Date)) + `</time>`)
				if p.Summary != "" {
					b.WriteString(`<p>` + esc(p.Summary) + `</p>`)
				}
				b.WriteString(`</article>`)
			}
			b.WriteString(`</section>`)
		})
	})
}

func homeHref(lang string) string {
	if lang == beeola.DefaultLanguage {
		return "/"
	}
	return "/" + lang + "/"
}

// Post renders a single post page: title, byline, the pre-rendered body
// inserted verbatim, a language switcher, a discuss link, and a prev/next
// navigation footer.
func Post(cfg beeola.SiteConfig, page beeola.PostPage) templ.Component {
	p := page.Post
	return component(func(b *strings.Builder) {
		layout(b, cfg, p.Title+" — "+cfg.Name, beeola.BlogPostingJsonLD(p, cfg), p.Lang, func(b *strings.Builder) {
			b.WriteString(`<article class="post"><h1>` + esc(p.Title) + `</h1>`)

			b.WriteString(`<p class="byline">`)
			if cfg.Author != "" {
				b.WriteString(esc(cfg.Author) + ` · `)
			}
			b.WriteString(`<time datetime="` + esc(p.Date) + `">` + esc(FormatDate(p.Date)) + `</time>`)
			if page.Views > 0 {
				b.WriteString(` · ` + strconv.Itoa(page.Views) + ` views`)
			}
			b.WriteString(`</p>`)

			if len(page.Translations) > 1 {
				b.WriteString(`<p class="translations">Translated by readers into: `)
				first := true
				for _, link := range LanguageLinks(p.Slug, p.Lang, page.Translations) {
					if !first {
						b.WriteString(` · `)
					}
					first = false
					if link.Active {
						b.WriteString(`<strong>` + esc(link.Label) + `</strong>`)
					} else {
						b.WriteString(`<a href="` + esc(link.Href) + `">` + esc(link.Label) + `</a>`)
					}
				}
				b.WriteString(`</p>`)
			}

			// Post bodies are trusted, pre-rendered HTML.
			b.WriteString(`<div class="post-body">` + p.Content + `</div>`)

			if len(p.Tags) > 0 {
				b.WriteString(`<p class="post-tags">`)
				for i, t := range p.Tags {
					if i > 0 {
						b.WriteString(` `)
					}
					b.WriteString(`<a class="tag" href="` + homeHref(p.Lang) + `?tag=` + beeola.PathEscape(t) + `">` + esc(t) + `</a>`)
				}
				b.WriteString(`</p>`)
			}

			discuss := beeola.DiscussURL(beeola.CanonicalURL(cfg.URL, p.Slug))
			b.WriteString(`<p class="discuss"><a href="` + esc(discuss) + `" target="_blank" rel="noopener noreferrer">Discuss on Twitter</a></p>`)

			b.WriteString(`</article>`)

			b.WriteString(`<nav class="post-nav"><ul>`)
			if page.Prev != nil {
				b.WriteString(`<li class="prev"><a href="` + esc(page.Prev.Link) + `" rel="prev">&larr; ` + esc(page.Prev.Title) + `</a></li>`)
			}
			if page.Next != nil {
				b.WriteString(`<li class="next"><a href="` + esc(page.Next.Link) + `" rel="next">` + esc(page.Next.Title) + ` &rarr;</a></li>`)
			}
			b.WriteString(`</ul></nav>`)

			// View-count beacon; the endpoint is a no-op when stats are off.
			langSlug := beeola.LangSlug(p.Slug, p.Lang)
			b.WriteString(`<script>fetch('/api/view/',{method:'POST',headers:{'Content-Type':'application/x-www-form-urlencoded'},body:'slug='+encodeURIComponent('` + esc(langSlug) + `')})</script>`)
		})
	})
}

// StatusPage renders a minimal titled message page (404/500).
func StatusPage(cfg beeola.SiteConfig, title, message string) templ.Component {
	return component(func(b *strings.Builder) {
		layout(b, cfg, title+" — "+cfg.Name, "", "", func(b *strings.Builder) {
			b.WriteString(`<section class="status"><h1>` + esc(title) + `</h1><p>` + esc(message) + `</p><p><a href="/">Back home</a></p></section>`)
		})
	})
}

// AdminLogin renders the password form.
func AdminLogin(cfg beeola.SiteConfig, showError bool, csrfToken string) templ.Component {
	return component(func(b *strings.Builder) {
		layout(b, cfg, "Admin — "+cfg.Name, "", "", func(b *strings.Builder) {
			b.WriteString(`<section class="admin-login"><h1>Admin</h1>`)
			if showError {
				b.WriteString(`<p class="error">Wrong password.</p>`)
			}
			b.WriteString(`<form method="post" action="/admin/login/">`)
			b.WriteString(`<input type="hidden" name="_csrf" value="` + esc(csrfToken) + `"/>`)
			b.WriteString(`<input type="password" name="password" autofocus/>`)
			b.WriteString(`<button type="submit">Sign in</button></form></section>`)
		})
	})
}

// AdminDashboard lists every post variant with edit/delete controls.
func AdminDashboard(cfg beeola.SiteConfig, posts []beeola.BlogPost, views map[string]int, message, csrfToken string) templ.Component {
	return component(func(b *strings.Builder) {
		layout(b, cfg, "Dashboard — "+cfg.Name, "", "", func(b *strings.Builder) {
			b.WriteString(`<section class="admin"><h1>Posts</h1>`)
			if message != "" {
				b.WriteString(`<p class="notice">` + esc(message) + `</p>`)
			}
			b.WriteString(`<p><a href="/admin/images/">Images</a></p>`)
			b.WriteString(`<table><thead><tr><th>Title</th><th>Lang</th><th>Date</th><th>Views</th><th>Status</th></tr></thead><tbody>`)
			for _, p := range posts {
				status := "draft"
				if p.Published {
					status = "published"
				}
				b.WriteString(`<tr><td><a href="/admin/post/` + esc(p.Lang) + `/` + esc(p.Slug) + `/">` + esc(p.Title) + `</a></td>`)
				b.WriteString(`<td>` + esc(p.Lang) + `</td><td>` + esc(p.Date) + `</td>`)
				b.WriteString(`<td>` + strconv.Itoa(views[p.Slug+"/"+p.Lang]) + `</td><td>` + status + `</td></tr>`)
			}
			b.WriteString(`</tbody></table>`)
			b.WriteString(`<form method="post" action="/admin/logout/"><input type="hidden" name="_csrf" value="` + esc(csrfToken) + `"/><button type="submit">Sign out</button></form>`)
			b.WriteString(`</section>`)
		})
	})
}

// AdminFormPartial renders the post editing form fragment.
func AdminFormPartial(post beeola.BlogPost, langs []string, csrfToken string) templ.Component {
	return component(func(b *strings.Builder) {
		b.WriteString(`<form method="post" action="/admin/save/" class="post-form">`)
		b.WriteString(`<input type="hidden" name="_csrf" value="` + esc(csrfToken) + `"/>`)
		b.WriteString(`<input name="title" value="` + esc(post.Title) + `" placeholder="Title"/>`)
		b.WriteString(`<input name="slug" value="` + esc(post.Slug) + `" placeholder="slug"/>`)
		b.WriteString(`<select name="lang">`)
		for _, l := range langs {
			sel := ""
			if l == post.Lang {
				sel = ` selected`
			}
			b.WriteString(`<option value="` + esc(l) + `"` + sel + `>` + esc(LanguageLabel(l)) + `</option>`)
		}
		b.WriteString(`</select>`)
		b.WriteString(`<input name="date" value="` + esc(post.Date) + `" placeholder="YYYY-MM-DD"/>`)
		b.WriteString(`<input name="tags" value="` + esc(beeola.JoinTags(post.Tags)) + `" placeholder="tags, comma, separated"/>`)
		b.WriteString(`<textarea name="summary" placeholder="Summary">` + esc(post.Summary) + `</textarea>`)
		b.WriteString(`<textarea name="content" placeholder="Rendered HTML body">` + esc(post.Content) + `</textarea>`)
		checked := ""
		if post.Published {
			checked = ` checked`
		}
		b.WriteString(`<label><input type="checkbox" name="published"` + checked + `/> Published</label>`)
		b.WriteString(`<button type="submit">Save</button></form>`)
	})
}

// AdminImages renders the uploaded image list plus the upload form.
func AdminImages(images []beeola.Image, csrfToken string) templ.Component {
	return component(func(b *strings.Builder) {
		b.WriteString(`<section class="admin-images"><h1>Images</h1>`)
		b.WriteString(`<form method="post" action="/admin/images/upload/" enctype="multipart/form-data">`)
		b.WriteString(`<input type="hidden" name="_csrf" value="` + esc(csrfToken) + `"/>`)
		b.WriteString(`<input type="file" name="image" accept="image/*"/><button type="submit">Upload</button></form>`)
		b.WriteString(`<ul>`)
		for _, img := range images {
			b.WriteString(`<li><img src="/public/uploads/` + esc(img.Filename) + `" width="120" alt="` + esc(img.OriginalName) + `"/>`)
			b.WriteString(`<code>/public/uploads/` + esc(img.Filename) + `</code> ` + strconv.Itoa(img.Width) + `x` + strconv.Itoa(img.Height) + `</li>`)
		}
		b.WriteString(`</ul></section>`)
	})
}

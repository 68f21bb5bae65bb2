package views

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"

	"github.com/kylekorndoerfer/inkpress"
	"github.com/kylekorndoerfer/inkpress/content"
	"github.com/kylekorndoerfer/inkpress/markdown"
)

func (v *viewSet) layout(meta inkpress.PageMeta, jsonLD string, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		title := meta.Title
		if title == "" {
			title = v.cfg.Name
		}
		fmt.Fprintf(w, `<!DOCTYPE html><html lang="en"><head><meta charset="utf-8"/>`)
		fmt.Fprintf(w, `<meta name="viewport" content="width=device-width, initial-scale=1"/>`)
		fmt.Fprintf(w, `<title>%s</title>`, esc(title))
		if meta.Description != "" {
			fmt.Fprintf(w, `<meta name="description" content="%s"/>`, esc(meta.Description))
		}
		if meta.URL != "" {
			fmt.Fprintf(w, `<link rel="canonical" href="%s"/>`, esc(meta.URL))
			fmt.Fprintf(w, `<meta property="og:url" content="%s"/>`, esc(meta.URL))
		}
		fmt.Fprintf(w, `<meta property="og:title" content="%s"/>`, esc(title))
		if meta.OGType != "" {
			fmt.Fprintf(w, `<meta property="og:type" content="%s"/>`, esc(meta.OGType))
		}
		fmt.Fprintf(w, `<link rel="alternate" type="application/rss+xml" title="%s" href="/feed.xml"/>`, esc(v.cfg.Name))
		fmt.Fprintf(w, `<link rel="stylesheet" href="/public/site.css"/>`)
		if jsonLD != "" {
			fmt.Fprintf(w, `<script type="application/ld+json">%s</script>`, jsonLD)
		}
		fmt.Fprintf(w, `</head><body><header class="site-header"><a href="/" class="site-title">%s</a>`, esc(v.cfg.Name))
		fmt.Fprintf(w, `<nav><a href="/about/">About</a> <a href="/feed.xml">RSS</a></nav></header><main>`)
		if err := body.Render(ctx, w); err != nil {
			return err
		}
		_, err := fmt.Fprintf(w, `</main><footer class="site-footer">&copy; %s</footer></body></html>`, esc(v.cfg.Author))
		return err
	})
}

func (v *viewSet) postList(posts []content.Post, activeTag string, tags []string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		fmt.Fprintf(w, `<section id="blog" class="post-list">`)
		if len(tags) > 0 {
			fmt.Fprintf(w, `<div class="tag-filter"><a href="/" class="%s">All</a>`, TagClass(activeTag == ""))
			for _, t := range tags {
				fmt.Fprintf(w, `<a href="/?tag=%s" class="%s">%s</a>`, PathEscape(t), TagClass(activeTag == t), esc(t))
			}
			fmt.Fprintf(w, `</div>`)
		}
		for _, p := range posts {
			fmt.Fprintf(w, `<article class="post-card"><h2><a href="/blog/%s/">%s</a></h2>`, esc(p.Slug), esc(p.Title))
			fmt.Fprintf(w, `<time datetime="%s">%s</time>`, esc(p.Date), esc(DisplayDate(p.Date)))
			if p.Summary != "" {
				fmt.Fprintf(w, `<p>%s</p>`, esc(p.Summary))
			}
			if len(p.Tags) > 0 {
				fmt.Fprintf(w, `<div class="post-tags">`)
				for _, t := range p.Tags {
					fmt.Fprintf(w, `<a href="/?tag=%s" class="%s">%s</a>`, PathEscape(t), TagClass(false), esc(t))
				}
				fmt.Fprintf(w, `</div>`)
			}
			fmt.Fprintf(w, `</article>`)
		}
		if len(posts) == 0 {
			fmt.Fprintf(w, `<p class="empty">Nothing published yet.</p>`)
		}
		_, err := fmt.Fprintf(w, `</section>`)
		return err
	})
}

// Home renders the blog listing page.
func (v *viewSet) Home(posts []content.Post, activeTag string, tags []string, siteURL string) templ.Component {
	meta := inkpress.PageMeta{
		Title:       v.cfg.Name,
		Description: v.cfg.Description,
		URL:         inkpress.BuildURL(siteURL),
		OGType:      "website",
	}
	return v.layout(meta, inkpress.WebsiteJsonLD(v.cfg), v.postList(posts, activeTag, tags))
}

// HomePartial renders the listing without the layout shell, for HTMX swaps.
func (v *viewSet) HomePartial(posts []content.Post, activeTag string, tags []string, _ string) templ.Component {
	return v.postList(posts, activeTag, tags)
}

// BlogSection renders just the post list fragment.
func (v *viewSet) BlogSection(posts []content.Post, activeTag string, tags []string) templ.Component {
	return v.postList(posts, activeTag, tags)
}

func (v *viewSet) article(post content.Post, related []content.Post) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		fmt.Fprintf(w, `<article class="post"><h1>%s</h1>`, esc(post.Title))
		fmt.Fprintf(w, `<time datetime="%s">%s</time>`, esc(post.Date), esc(DisplayDate(post.Date)))
		if post.Draft {
			fmt.Fprintf(w, `<span class="draft-badge">draft</span>`)
		}
		if err := markdown.Markdown(post.Body).Render(ctx, w); err != nil {
			return err
		}
		fmt.Fprintf(w, `</article>`)
		if len(related) > 0 {
			fmt.Fprintf(w, `<aside class="related"><h2>Related posts</h2><ul>`)
			for _, r := range related {
				fmt.Fprintf(w, `<li><a href="/blog/%s/">%s</a></li>`, esc(r.Slug), esc(r.Title))
			}
			fmt.Fprintf(w, `</ul></aside>`)
		}
		return nil
	})
}

// Post renders a single blog post page with related posts.
func (v *viewSet) Post(post content.Post, posts []content.Post, siteURL string) templ.Component {
	meta := inkpress.PageMeta{
		Title:       post.Title + " — " + v.cfg.Name,
		Description: post.Summary,
		URL:         inkpress.BuildURL(siteURL, "blog", post.Slug),
		OGType:      "article",
	}
	related := inkpress.FilterRelatedPosts(post, posts)
	return v.layout(meta, inkpress.BlogPostingJsonLD(post, v.cfg), v.article(post, related))
}

// PostPartial renders the article fragment for HTMX swaps.
func (v *viewSet) PostPartial(post content.Post, posts []content.Post, _ string) templ.Component {
	return v.article(post, inkpress.FilterRelatedPosts(post, posts))
}

// Page renders a standalone page such as About.
func (v *viewSet) Page(page content.Post, siteURL string) templ.Component {
	meta := inkpress.PageMeta{
		Title:       page.Title + " — " + v.cfg.Name,
		Description: page.Summary,
		URL:         inkpress.BuildURL(siteURL, page.Slug),
		OGType:      "website",
	}
	return v.layout(meta, "", v.article(page, nil))
}

// NotFound renders the 404 page.
func (v *viewSet) NotFound() templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, `<section class="error-page"><h1>404</h1><p>That page does not exist. <a href="/">Back home.</a></p></section>`)
		return err
	})
	return v.layout(inkpress.PageMeta{Title: "Not found — " + v.cfg.Name}, "", body)
}

// ServerError renders the 500 page.
func (v *viewSet) ServerError() templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, `<section class="error-page"><h1>500</h1><p>Something went wrong. Try again shortly.</p></section>`)
		return err
	})
	return v.layout(inkpress.PageMeta{Title: "Server error — " + v.cfg.Name}, "", body)
}

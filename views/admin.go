package views

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"

	"github.com/kylekorndoerfer/inkpress"
	"github.com/kylekorndoerfer/inkpress/content"
)

// AdminLogin renders the password form.
func (v *viewSet) AdminLogin(showError bool, csrfToken string) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		fmt.Fprintf(w, `<section class="admin-login"><h1>Sign in</h1>`)
		if showError {
			fmt.Fprintf(w, `<p class="error">Wrong password.</p>`)
		}
		fmt.Fprintf(w, `<form method="post" action="/admin/login/">`)
		fmt.Fprintf(w, `<input type="hidden" name="_csrf" value="%s"/>`, esc(csrfToken))
		fmt.Fprintf(w, `<input type="password" name="password" autofocus required/>`)
		_, err := fmt.Fprintf(w, `<button type="submit">Sign in</button></form></section>`)
		return err
	})
	return v.layout(inkpress.PageMeta{Title: "Admin — " + v.cfg.Name}, "", body)
}

// AdminDashboard lists every ingested entry, drafts included, alongside the
// latest content-integrity report.
func (v *viewSet) AdminDashboard(posts []content.Post, report *content.Report, message string, csrfToken string) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		fmt.Fprintf(w, `<section class="admin"><h1>Content</h1>`)
		if message != "" {
			fmt.Fprintf(w, `<p class="notice">%s</p>`, esc(message))
		}
		fmt.Fprintf(w, `<form method="post" action="/admin/sync/" class="inline"><input type="hidden" name="_csrf" value="%s"/><button type="submit">Sync content</button></form>`, esc(csrfToken))
		fmt.Fprintf(w, `<form method="post" action="/admin/check/" class="inline"><input type="hidden" name="_csrf" value="%s"/><button type="submit">Run check</button></form>`, esc(csrfToken))
		fmt.Fprintf(w, `<form method="post" action="/admin/logout/" class="inline"><input type="hidden" name="_csrf" value="%s"/><button type="submit">Sign out</button></form>`, esc(csrfToken))

		if report != nil {
			if report.OK() {
				fmt.Fprintf(w, `<p class="check-ok">Last check: %d files, no problems.</p>`, report.Files)
			} else {
				fmt.Fprintf(w, `<div class="check-problems"><p>Last check: %d files, %d problems.</p><ul>`, report.Files, len(report.Problems))
				for _, prob := range report.Problems {
					fmt.Fprintf(w, `<li>%s</li>`, esc(prob.String()))
				}
				fmt.Fprintf(w, `</ul></div>`)
			}
		}

		fmt.Fprintf(w, `<table class="admin-table"><thead><tr><th>Title</th><th>Kind</th><th>Date</th><th>Tags</th><th>Status</th></tr></thead><tbody>`)
		for _, p := range posts {
			status := "published"
			if p.Draft {
				status = "draft"
			}
			fmt.Fprintf(w, `<tr><td><a href="/admin/post/%s/">%s</a></td><td>%s</td><td>%s</td><td>%s</td><td class="status-%s">%s</td></tr>`,
				esc(p.Slug), esc(p.Title), esc(string(p.Kind)), esc(p.Date), esc(JoinTags(p.Tags)), status, status)
		}
		fmt.Fprintf(w, `</tbody></table>`)
		_, err := fmt.Fprintf(w, `<p><a href="/admin/images/">Manage images</a></p></section>`)
		return err
	})
	return v.layout(inkpress.PageMeta{Title: "Admin — " + v.cfg.Name}, "", body)
}

// AdminImages lists uploaded images with delete controls.
func (v *viewSet) AdminImages(images []inkpress.Image, csrfToken string) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		fmt.Fprintf(w, `<section class="admin"><h1>Images</h1>`)
		fmt.Fprintf(w, `<form method="post" action="/admin/images/upload/" enctype="multipart/form-data">`)
		fmt.Fprintf(w, `<input type="hidden" name="_csrf" value="%s"/>`, esc(csrfToken))
		fmt.Fprintf(w, `<input type="file" name="image" accept="image/*" required/><button type="submit">Upload</button></form>`)
		fmt.Fprintf(w, `<ul class="image-list">`)
		for _, img := range images {
			fmt.Fprintf(w, `<li><img src="/public/uploads/%s" alt="%s" width="120"/> <code>/public/uploads/%s</code> %dx%d, %d bytes</li>`,
				esc(img.Filename), esc(img.OriginalName), esc(img.Filename), img.Width, img.Height, img.Size)
		}
		fmt.Fprintf(w, `</ul>`)
		_, err := fmt.Fprintf(w, `<p><a href="/admin/">Back to content</a></p></section>`)
		return err
	})
	return v.layout(inkpress.PageMeta{Title: "Images — " + v.cfg.Name}, "", body)
}

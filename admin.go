package inkpress

import (
	"crypto/subtle"
	"database/sql"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/kylekorndoerfer/inkpress/content"
)

func (a *App) handleAdmin(c echo.Context) error {
	if !IsAdmin(c) {
		return Render(c, a.Views.AdminLogin(false, CsrfToken(c)))
	}
	return a.renderAdminDashboard(c, c.QueryParam("msg"))
}

// handleAdminPreview renders any entry, drafts included, with the public
// post template so a draft can be proofread before publishing.
func (a *App) handleAdminPreview(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	slug := c.Param("slug")
	post, err := a.Store.GetAny(slug)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.NoContent(http.StatusNotFound)
		}
		return err
	}
	if post.Kind == content.KindPage {
		return Render(c, a.Views.Page(post, a.Config.URL))
	}
	return Render(c, a.Views.Post(post, nil, a.Config.URL))
}

func (a *App) handleAdminLogin(c echo.Context) error {
	if !a.loginLimiter.Allow(c.RealIP()) {
		return c.String(http.StatusTooManyRequests, "Too many login attempts. Try again later.")
	}
	pass := c.FormValue("password")
	if subtle.ConstantTimeCompare([]byte(pass), []byte(a.Config.AdminPassword)) == 1 {
		if err := setAdminSession(c); err != nil {
			return err
		}
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	return Render(c, a.Views.AdminLogin(true, CsrfToken(c)))
}

func handleAdminLogout(c echo.Context) error {
	if err := clearAdminSession(c); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/admin/")
}

// handleAdminSync re-ingests the content directory. The files stay the
// source of truth; this is the only write path into the content table.
func (a *App) handleAdminSync(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	result, err := a.Store.SyncDir(a.Config.ContentDir)
	if err != nil {
		return err
	}
	a.setLastReport(result.Report)
	a.Cache.Invalidate()
	msg := fmt.Sprintf("synced %d entries, removed %d", result.Upserted, result.Removed)
	if !result.Report.OK() {
		msg = fmt.Sprintf("%s, %d problems found", msg, len(result.Report.Problems))
	}
	return a.renderAdminDashboard(c, msg)
}

// handleAdminCheck runs the content-integrity pass without touching the store.
func (a *App) handleAdminCheck(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	report, err := content.CheckDir(a.Config.ContentDir)
	if err != nil {
		return err
	}
	a.setLastReport(report)
	msg := fmt.Sprintf("checked %d files, %d problems", report.Files, len(report.Problems))
	return a.renderAdminDashboard(c, msg)
}

func (a *App) renderAdminDashboard(c echo.Context, msg string) error {
	posts, err := a.Store.ListAll()
	if err != nil {
		return err
	}
	return Render(c, a.Views.AdminDashboard(posts, a.lastReport(), msg, CsrfToken(c)))
}

func (a *App) setLastReport(r *content.Report) {
	a.reportMu.Lock()
	a.report = r
	a.reportMu.Unlock()
}

func (a *App) lastReport() *content.Report {
	a.reportMu.Lock()
	defer a.reportMu.Unlock()
	return a.report
}

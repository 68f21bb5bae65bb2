// Package views provides the default templ components for an inkpress site.
// Sites that want full control over markup supply their own ViewFuncs instead.
package views

import "github.com/kylekorndoerfer/inkpress"

// New builds the default set of view functions for the given site config.
func New(cfg inkpress.SiteConfig) inkpress.ViewFuncs {
	v := &viewSet{cfg: cfg}
	return inkpress.ViewFuncs{
		Home:           v.Home,
		HomePartial:    v.HomePartial,
		BlogSection:    v.BlogSection,
		Post:           v.Post,
		PostPartial:    v.PostPartial,
		Page:           v.Page,
		AdminLogin:     v.AdminLogin,
		AdminDashboard: v.AdminDashboard,
		AdminImages:    v.AdminImages,
		NotFound:       v.NotFound,
		ServerError:    v.ServerError,
	}
}

type viewSet struct {
	cfg inkpress.SiteConfig
}

package main

import (
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kylekorndoerfer/inkpress"
	"github.com/kylekorndoerfer/inkpress/views"
)

func serveCmd() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the inkpress HTTP server",
		Long: `Run the inkpress HTTP server.

Site branding and credentials come from environment variables:

  SITE_NAME             Site name shown in templates and the RSS feed
  SITE_URL              Canonical site URL
  SITE_DESCRIPTION      Site description for meta tags and RSS
  SITE_AUTHOR           Author name for JSON-LD
  DATABASE_PATH         SQLite database path (default data/blog.db)
  CONTENT_DIR           Markdown content directory (default content)
  ADMIN_PASSWORD        Required: admin login password
  ADMIN_SESSION_SECRET  Required: session encryption secret
  COOKIE_SECURE         Set "true" when serving over HTTPS
  ANALYTICS_ENABLED     Set "true" to record page visits`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := configFromEnv()
			cfg.Addr = addr
			app := inkpress.New(cfg, views.New(cfg))
			return app.Start()
		},
	}
	cmd.Flags().StringVar(&addr, "addr", ":3000", "listen address")
	return cmd
}

func configFromEnv() inkpress.SiteConfig {
	return inkpress.SiteConfig{
		Name:        inkpress.EnvOr("SITE_NAME", "Blog"),
		URL:         inkpress.EnvOr("SITE_URL", "http://localhost:3000"),
		Description: os.Getenv("SITE_DESCRIPTION"),
		Author:      os.Getenv("SITE_AUTHOR"),

		DatabasePath: inkpress.EnvOr("DATABASE_PATH", "data/blog.db"),
		ContentDir:   inkpress.EnvOr("CONTENT_DIR", "content"),

		AnalyticsEnabled:      boolEnv("ANALYTICS_ENABLED"),
		AnalyticsDatabasePath: inkpress.EnvOr("ANALYTICS_DATABASE_PATH", "data/analytics.db"),

		AdminPassword: inkpress.MustEnv("ADMIN_PASSWORD"),
		SessionSecret: inkpress.MustEnv("ADMIN_SESSION_SECRET"),
		CookieSecure:  boolEnv("COOKIE_SECURE"),
	}
}

func boolEnv(key string) bool {
	return strings.EqualFold(os.Getenv(key), "true")
}

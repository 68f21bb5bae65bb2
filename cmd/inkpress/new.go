package main

import (
	"fmt"
	"os"
	"path/filepath"
	"text/template"
	"time"

	"github.com/spf13/cobra"

	"github.com/kylekorndoerfer/inkpress"
	"github.com/kylekorndoerfer/inkpress/content"
	"github.com/kylekorndoerfer/inkpress/scaffold"
)

// stubData holds the template variables passed to the content stub templates.
type stubData struct {
	Title string
	Date  string
}

func newCmd() *cobra.Command {
	var dir string
	cmd := &cobra.Command{
		Use:   "new post|page <title>",
		Short: "Create a new Markdown content file with front matter",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, title := args[0], args[1]
			path, err := runNew(dir, kind, title)
			if err != nil {
				return err
			}
			cmd.Printf("created %s\n", path)
			return nil
		},
	}
	cmd.Flags().StringVar(&dir, "content", inkpress.EnvOr("CONTENT_DIR", "content"), "Markdown content directory")
	return cmd
}

func runNew(dir, kind, title string) (string, error) {
	var tmplName, subdir string
	switch kind {
	case "post":
		tmplName, subdir = "templates/post.md.tmpl", "posts"
	case "page":
		tmplName, subdir = "templates/page.md.tmpl", "pages"
	default:
		return "", fmt.Errorf("unknown content kind %q (want post or page)", kind)
	}

	slug := content.Slugify(title)
	if slug == "" {
		return "", fmt.Errorf("cannot derive a slug from title %q", title)
	}

	outPath := filepath.Join(dir, subdir, slug+".md")
	if _, err := os.Stat(outPath); err == nil {
		return "", fmt.Errorf("%s already exists", outPath)
	}

	raw, err := scaffold.Templates.ReadFile(tmplName)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", tmplName, err)
	}
	tmpl, err := template.New(filepath.Base(tmplName)).Parse(string(raw))
	if err != nil {
		return "", fmt.Errorf("parse template %s: %w", tmplName, err)
	}

	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return "", err
	}
	f, err := os.Create(outPath)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", outPath, err)
	}
	defer f.Close()

	data := stubData{Title: title, Date: time.Now().Format("2006-01-02")}
	if err := tmpl.Execute(f, data); err != nil {
		return "", fmt.Errorf("execute template %s: %w", tmplName, err)
	}
	return outPath, nil
}

// Package markdown renders Markdown bodies to HTML as templ components.
// It wraps goldmark with a custom fenced-code renderer that emits the
// language badge and highlight-line metadata the site templates expect.
package markdown

import (
	"bytes"
	"context"
	"fmt"
	"html"
	"io"
	"strconv"
	"strings"

	"github.com/a-h/templ"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	ghtml "github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"

	"github.com/kylekorndoerfer/inkpress/content"
)

// engine is stateless and safe for concurrent use.
var engine = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithParserOptions(parser.WithAutoHeadingID()),
	goldmark.WithRendererOptions(
		ghtml.WithUnsafe(),
		renderer.WithNodeRenderers(util.Prioritized(&codeBlockRenderer{}, 100)),
	),
)

// Markdown returns a templ.Component that renders md as HTML.
func Markdown(md string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		out, err := Render(md)
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, out)
		return err
	})
}

// Render converts a Markdown body to HTML.
func Render(md string) (string, error) {
	var buf bytes.Buffer
	if err := engine.Convert([]byte(md), &buf); err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return buf.String(), nil
}

// codeBlockRenderer renders fenced code blocks with a language badge and a
// data-highlight-lines attribute carrying {3,5-7} style fence metadata.
type codeBlockRenderer struct{}

func (r *codeBlockRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(ast.KindFencedCodeBlock, r.render)
}

func (r *codeBlockRenderer) render(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	n := node.(*ast.FencedCodeBlock)

	info := ""
	if n.Info != nil {
		info = string(n.Info.Segment.Value(source))
	}
	lang, highlight := content.ParseFenceInfo(info)

	if !entering {
		_, _ = w.WriteString("</code></pre>")
		if lang != "" {
			_, _ = w.WriteString("</div>")
		}
		_, _ = w.WriteString("\n")
		return ast.WalkContinue, nil
	}

	if lang != "" {
		escaped := html.EscapeString(lang)
		_, _ = w.WriteString(`<div class="code-block-wrapper"><span class="code-lang code-lang-` + escaped + `">` + escaped + `</span>`)
		_, _ = w.WriteString(`<pre class="code-block"><code class="language-` + escaped + `"`)
		if len(highlight) > 0 {
			_, _ = w.WriteString(` data-highlight-lines="` + joinInts(highlight) + `"`)
		}
		_, _ = w.WriteString(">")
	} else {
		_, _ = w.WriteString(`<pre class="code-block"><code>`)
	}

	l := n.Lines().Len()
	for i := 0; i < l; i++ {
		line := n.Lines().At(i)
		_, _ = w.Write(util.EscapeHTML(line.Value(source)))
	}
	return ast.WalkContinue, nil
}

func joinInts(nums []int) string {
	parts := make([]string, len(nums))
	for i, n := range nums {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ",")
}

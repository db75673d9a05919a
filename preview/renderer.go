// Package preview renders markdown documents to HTML.
package preview

import (
	"bytes"
	_ "embed"
	"html"
	"strings"

	chromahtml "github.com/alecthomas/chroma/formatters/html"
	"github.com/alecthomas/chroma/styles"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	alertcallouts "github.com/zmtcreative/gm-alert-callouts"
)

const codeStyle = "github"

//go:embed page.html
var pageTemplate string

// Renderer wraps goldmark with the extensions the editor supports.
type Renderer struct {
	md  goldmark.Markdown
	css string
}

func NewRenderer() *Renderer {
	md := goldmark.New(
		goldmark.WithExtensions(
			alertcallouts.AlertCallouts,
			extension.GFM,
			extension.Table,
			extension.Strikethrough,
			extension.TaskList,
			extension.Linkify,
			highlighting.NewHighlighting(
				highlighting.WithStyle(codeStyle),
				highlighting.WithFormatOptions(
					chromahtml.WithClasses(true),
				),
			),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
	)
	return &Renderer{md: md, css: highlightCSS()}
}

// highlightCSS returns the stylesheet matching the classes chroma emits.
func highlightCSS() string {
	var buf bytes.Buffer
	formatter := chromahtml.New(chromahtml.WithClasses(true))
	if err := formatter.WriteCSS(&buf, styles.Get(codeStyle)); err != nil {
		return ""
	}
	return buf.String()
}

// Fragment converts markdown source into an HTML fragment.
func (r *Renderer) Fragment(source []byte) (string, error) {
	var buf bytes.Buffer
	if err := r.md.Convert(source, &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Page returns a complete HTML document with the rendered markdown inside.
func (r *Renderer) Page(source []byte, title string) (string, error) {
	fragment, err := r.Fragment(source)
	if err != nil {
		return "", err
	}
	return r.fill(fragment, title), nil
}

func (r *Renderer) fill(fragment, title string) string {
	return strings.NewReplacer(
		"{{TITLE}}", html.EscapeString(title),
		"{{CSS}}", r.css,
		"{{CONTENT}}", fragment,
	).Replace(pageTemplate)
}

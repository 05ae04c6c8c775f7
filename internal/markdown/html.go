// Package markdown renders note text to sanitized HTML and to styled
// terminal output.
package markdown

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	chromastyles "github.com/alecthomas/chroma/v2/styles"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/util"
)

// DefaultCodeTheme is the chroma style used for highlighted code blocks.
const DefaultCodeTheme = "monokai"

var classPattern = regexp.MustCompile(`^[a-zA-Z0-9 _-]+$`)

// HTML converts Markdown to sanitized HTML. It is safe for concurrent use.
type HTML struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
	style  *chroma.Style
	format *chromahtml.Formatter
}

// NewHTML returns an HTML renderer highlighting code with the named chroma
// theme. Unknown themes fall back to chroma's default.
func NewHTML(codeTheme string) *HTML {
	if codeTheme == "" {
		codeTheme = DefaultCodeTheme
	}
	h := &HTML{
		style:  chromastyles.Get(codeTheme),
		format: chromahtml.New(chromahtml.WithClasses(true)),
	}

	h.md = goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithRendererOptions(
			renderer.WithNodeRenderers(util.Prioritized(&codeBlockRenderer{h: h}, 200)),
		),
	)

	p := bluemonday.UGCPolicy()
	p.AllowAttrs("class").Matching(classPattern).OnElements("span", "code", "pre", "div")
	p.AllowAttrs("type", "checked", "disabled").OnElements("input")
	h.policy = p
	return h
}

// Render returns the sanitized HTML for markdown.
func (h *HTML) Render(markdown string) (string, error) {
	var buf bytes.Buffer
	if err := h.md.Convert([]byte(markdown), &buf); err != nil {
		return "", fmt.Errorf("convert markdown: %w", err)
	}
	return strings.TrimSpace(h.policy.Sanitize(buf.String())), nil
}

// MustRender is Render with errors mapped to an empty string.
func (h *HTML) MustRender(markdown string) string {
	out, err := h.Render(markdown)
	if err != nil {
		return ""
	}
	return out
}

// CSS returns the stylesheet for highlighted code blocks.
func (h *HTML) CSS() string {
	var buf bytes.Buffer
	if err := h.format.WriteCSS(&buf, h.style); err != nil {
		return ""
	}
	return buf.String()
}

// codeBlockRenderer replaces goldmark's fenced code output with chroma
// highlighted markup.
type codeBlockRenderer struct {
	h *HTML
}

func (r *codeBlockRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(ast.KindFencedCodeBlock, r.renderFencedCode)
}

func (r *codeBlockRenderer) renderFencedCode(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	n := node.(*ast.FencedCodeBlock)

	var code bytes.Buffer
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		code.Write(seg.Value(source))
	}

	lexer := lexers.Get(string(n.Language(source)))
	if lexer == nil {
		lexer = lexers.Analyse(code.String())
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	iter, err := lexer.Tokenise(nil, code.String())
	if err != nil {
		return ast.WalkStop, fmt.Errorf("tokenise code block: %w", err)
	}
	if err := r.h.format.Format(w, r.h.style, iter); err != nil {
		return ast.WalkStop, fmt.Errorf("highlight code block: %w", err)
	}
	return ast.WalkSkipChildren, nil
}

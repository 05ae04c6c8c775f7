package notes

import (
	"bytes"
	"fmt"
	"html"
	"os"
	"path/filepath"
	"strings"

	"github.com/mandolyte/mdtopdf"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// Format is an export file format.
type Format string

const (
	FormatMarkdown Format = "md"
	FormatHTML     Format = "html"
	FormatPDF      Format = "pdf"
)

// ParseFormat maps a user supplied name onto a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(s, ".")) {
	case "md", "markdown", "":
		return FormatMarkdown, nil
	case "html", "htm":
		return FormatHTML, nil
	case "pdf":
		return FormatPDF, nil
	}
	return "", fmt.Errorf("unknown export format %q", s)
}

// Renderer turns markdown into HTML. CSS returns the stylesheet the
// rendered markup's classes refer to.
type Renderer interface {
	Render(markdown string) (string, error)
	CSS() string
}

// Exporter writes single notes to files under Dir.
type Exporter struct {
	Fs       afero.Fs
	Dir      string
	Renderer Renderer // used when a note has no stored markup
}

type frontMatter struct {
	ID    int64  `yaml:"id"`
	Date  string `yaml:"date"`
	Title string `yaml:"title,omitempty"`
}

// FileName returns the export file name for a note.
func FileName(n Note, f Format) string {
	return fmt.Sprintf("note-%d.%s", n.ID, f)
}

// Export writes n in format f and returns the written path.
func (e *Exporter) Export(n Note, f Format) (string, error) {
	fs := e.Fs
	if fs == nil {
		fs = afero.NewOsFs()
	}
	if err := fs.MkdirAll(e.Dir, 0755); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}
	path := filepath.Join(e.Dir, FileName(n, f))

	var data []byte
	var err error
	switch f {
	case FormatMarkdown:
		data, err = MarkdownDocument(n)
	case FormatHTML:
		data, err = e.htmlDocument(n)
	case FormatPDF:
		data, err = pdfDocument(n)
	default:
		err = fmt.Errorf("unknown export format %q", f)
	}
	if err != nil {
		return "", err
	}

	if err := afero.WriteFile(fs, path, data, 0644); err != nil {
		return "", fmt.Errorf("write export: %w", err)
	}
	return path, nil
}

// MarkdownDocument returns the note text prefixed with YAML front matter.
func MarkdownDocument(n Note) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("---\n")
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(frontMatter{ID: n.ID, Date: n.Date, Title: n.Title()}); err != nil {
		return nil, fmt.Errorf("encode front matter: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encode front matter: %w", err)
	}
	buf.WriteString("---\n\n")
	buf.WriteString(n.Text)
	if !strings.HasSuffix(n.Text, "\n") {
		buf.WriteByte('\n')
	}
	return buf.Bytes(), nil
}

// ParseMarkdownDocument splits an exported markdown file back into a note.
// Files without front matter yield a note with only Text set.
func ParseMarkdownDocument(data []byte) (Note, error) {
	content := string(data)
	if !strings.HasPrefix(content, "---\n") {
		return Note{Text: content}, nil
	}
	rest := content[len("---\n"):]
	end := strings.Index(rest, "\n---\n")
	if end < 0 {
		return Note{}, fmt.Errorf("unterminated front matter")
	}

	var fm frontMatter
	if err := yaml.Unmarshal([]byte(rest[:end]), &fm); err != nil {
		return Note{}, fmt.Errorf("parse front matter: %w", err)
	}
	body := strings.TrimPrefix(rest[end+len("\n---\n"):], "\n")
	return Note{ID: fm.ID, Date: fm.Date, Text: strings.TrimSuffix(body, "\n")}, nil
}

func (e *Exporter) htmlDocument(n Note) ([]byte, error) {
	body := n.HTML
	if body == "" && e.Renderer != nil {
		rendered, err := e.Renderer.Render(n.Text)
		if err != nil {
			return nil, fmt.Errorf("render note %d: %w", n.ID, err)
		}
		body = rendered
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n<title>%s</title>\n",
		html.EscapeString(n.Title()))
	if e.Renderer != nil {
		if css := e.Renderer.CSS(); css != "" {
			buf.WriteString("<style>\n")
			buf.WriteString(css)
			buf.WriteString("</style>\n")
		}
	}
	buf.WriteString("</head>\n<body>\n")
	fmt.Fprintf(&buf, "<p class=\"note-date\">%s</p>\n", html.EscapeString(n.Date))
	buf.WriteString(body)
	buf.WriteString("\n</body>\n</html>\n")
	return buf.Bytes(), nil
}

// pdfDocument renders through a temp file since the PDF renderer only
// writes to a path on disk.
func pdfDocument(n Note) ([]byte, error) {
	tmp, err := os.MkdirTemp("", "notepane-pdf-*")
	if err != nil {
		return nil, fmt.Errorf("create temp dir: %w", err)
	}
	defer os.RemoveAll(tmp)

	pdfPath := filepath.Join(tmp, FileName(n, FormatPDF))
	renderer := mdtopdf.NewPdfRenderer("P", "A4", pdfPath, "", nil, mdtopdf.LIGHT)
	if err := renderer.Process([]byte(n.Text)); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	data, err := os.ReadFile(pdfPath)
	if err != nil {
		return nil, fmt.Errorf("read pdf: %w", err)
	}
	return data, nil
}

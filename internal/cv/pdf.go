package cv

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// FontSet names a TTF family on disk: <Dir>/<Family>-Regular.ttf plus the
// optional -Bold, -Italic and -BoldItalic variants.
type FontSet struct {
	Dir    string
	Family string
}

// DocInfo is written into the PDF metadata. Date pins both the creation and
// modification timestamps.
type DocInfo struct {
	Title  string
	Author string
	Date   time.Time
}

const (
	coreFamily    = "Helvetica"
	defaultFamily = "DejaVuSansCondensed"
	pageMargin   = 18.0
	bodySize     = 10.0
	lineHeight   = 5.0
	listIndent   = 5.0
	blockSpacing = 1.5
)

var fontVariants = []struct{ style, suffix string }{
	{"B", "-Bold.ttf"},
	{"I", "-Italic.ttf"},
	{"BI", "-BoldItalic.ttf"},
}

// PDFConverter lays out a small HTML subset with gofpdf: h1-h3, p, div,
// section, header, footer, ul/ol/li, hr, br, img, b/strong, i/em and a.
// Unknown elements contribute their text.
type PDFConverter struct {
	family   string
	fonts    map[string][]byte // style -> TTF, nil when using the core font
	assetDir string
}

// NewPDFConverter loads the font family once. With an empty Dir it falls back
// to the core Helvetica font, which only covers cp1252.
func NewPDFConverter(fonts FontSet, assetDir string) (*PDFConverter, error) {
	c := &PDFConverter{family: coreFamily, assetDir: assetDir}
	if fonts.Dir == "" {
		slog.Warn("cv font dir not configured, falling back to core font", "family", coreFamily)
		return c, nil
	}

	family := fonts.Family
	if family == "" {
		family = defaultFamily
	}
	regular, err := os.ReadFile(filepath.Join(fonts.Dir, family+"-Regular.ttf"))
	if err != nil {
		return nil, fmt.Errorf("load font %s: %w", family, err)
	}
	c.family = family
	c.fonts = map[string][]byte{"": regular}
	for _, v := range fontVariants {
		data, err := os.ReadFile(filepath.Join(fonts.Dir, family+v.suffix))
		if err != nil {
			slog.Debug("font variant missing, using regular", "family", family, "style", v.style)
			data = regular
		}
		c.fonts[v.style] = data
	}
	return c, nil
}

// HTMLToPDF renders doc to PDF bytes. Identical input yields identical output.
func (c *PDFConverter) HTMLToPDF(doc string, info DocInfo) ([]byte, error) {
	root, err := html.Parse(strings.NewReader(doc))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetCatalogSort(true)
	pdf.SetCreationDate(info.Date)
	pdf.SetModificationDate(info.Date)
	pdf.SetTitle(info.Title, true)
	pdf.SetAuthor(info.Author, true)
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(true, pageMargin)

	tr := func(s string) string { return s }
	if c.fonts == nil {
		tr = pdf.UnicodeTranslatorFromDescriptor("")
	} else {
		pdf.AddUTF8FontFromBytes(c.family, "", c.fonts[""])
		for _, v := range fontVariants {
			pdf.AddUTF8FontFromBytes(c.family, v.style, c.fonts[v.style])
		}
	}

	pdf.AliasNbPages("")
	pdf.SetFooterFunc(func() {
		pdf.SetY(-12)
		pdf.SetFont(c.family, "", 8)
		pdf.SetTextColor(120, 120, 120)
		pdf.CellFormat(0, 6, fmt.Sprintf("%d/{nb}", pdf.PageNo()), "", 0, "C", false, 0, "")
	})
	pdf.AddPage()

	w := &layout{pdf: pdf, family: c.family, tr: tr, size: bodySize, lh: lineHeight, assetDir: c.assetDir}
	w.applyFont()
	w.walk(root)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("write pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// layout carries the inline state while walking the tree.
type layout struct {
	pdf      *gofpdf.Fpdf
	family   string
	tr       func(string) string
	assetDir string

	size   float64
	lh     float64
	bold   int
	italic int
	href   string
	depth  int
}

func (w *layout) applyFont() {
	style := ""
	if w.bold > 0 {
		style += "B"
	}
	if w.italic > 0 {
		style += "I"
	}
	if w.href != "" {
		style += "U"
	}
	w.pdf.SetFont(w.family, style, w.size)
	if w.href != "" {
		w.pdf.SetTextColor(30, 80, 160)
	} else {
		w.pdf.SetTextColor(34, 34, 34)
	}
}

func (w *layout) atLineStart() bool {
	left, _, _, _ := w.pdf.GetMargins()
	return w.pdf.GetX() <= left+0.01
}

func (w *layout) newline() {
	if !w.atLineStart() {
		w.pdf.Ln(w.lh)
	}
}

func (w *layout) gap(h float64) {
	w.newline()
	w.pdf.Ln(h)
}

func (w *layout) walk(n *html.Node) {
	switch n.Type {
	case html.TextNode:
		w.text(n.Data)
		return
	case html.ElementNode:
		w.element(n)
		return
	}
	w.children(n)
}

func (w *layout) children(n *html.Node) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		w.walk(c)
	}
}

func (w *layout) element(n *html.Node) {
	switch n.DataAtom {
	case atom.Head, atom.Script, atom.Style, atom.Title:
		return
	case atom.H1:
		w.heading(n, 20)
	case atom.H2:
		w.heading(n, 12.5)
		x, y := w.pdf.GetXY()
		right := 210 - pageMargin
		w.pdf.SetDrawColor(150, 150, 150)
		w.pdf.SetLineWidth(0.2)
		w.pdf.Line(x, y, right, y)
		w.pdf.Ln(1.5)
	case atom.H3:
		w.heading(n, 11)
	case atom.P, atom.Div, atom.Section, atom.Header, atom.Footer:
		w.newline()
		w.children(n)
		w.gap(blockSpacing)
	case atom.Ul, atom.Ol:
		w.newline()
		w.depth++
		w.children(n)
		w.depth--
		w.gap(blockSpacing)
	case atom.Li:
		w.item(n)
	case atom.Br:
		w.pdf.Ln(w.lh)
	case atom.Hr:
		w.newline()
		y := w.pdf.GetY() + 1
		w.pdf.SetLineWidth(0.2)
		w.pdf.Line(pageMargin, y, 210-pageMargin, y)
		w.pdf.SetY(y + 2)
	case atom.B, atom.Strong:
		w.bold++
		w.applyFont()
		w.children(n)
		w.bold--
		w.applyFont()
	case atom.I, atom.Em:
		w.italic++
		w.applyFont()
		w.children(n)
		w.italic--
		w.applyFont()
	case atom.A:
		prev := w.href
		w.href = attr(n, "href")
		w.applyFont()
		w.children(n)
		w.href = prev
		w.applyFont()
	case atom.Img:
		w.image(attr(n, "src"))
	default:
		w.children(n)
	}
}

func (w *layout) heading(n *html.Node, size float64) {
	w.gap(blockSpacing)
	prevSize, prevLH := w.size, w.lh
	w.size, w.lh = size, size*0.5
	w.bold++
	w.applyFont()
	w.children(n)
	w.newline()
	w.bold--
	w.size, w.lh = prevSize, prevLH
	w.applyFont()
}

func (w *layout) item(n *html.Node) {
	w.newline()
	left, top, right, _ := w.pdf.GetMargins()
	indent := left + float64(w.depth)*listIndent
	w.pdf.SetLeftMargin(indent)
	w.pdf.SetX(indent - 3)
	w.pdf.Write(w.lh, w.tr("•"))
	w.pdf.SetX(indent)
	w.children(n)
	w.newline()
	w.pdf.SetMargins(left, top, right)
}

func (w *layout) text(s string) {
	if s = collapseSpace(s); s == "" {
		return
	}
	if w.atLineStart() {
		s = strings.TrimLeft(s, " ")
		if s == "" {
			return
		}
	}
	if w.href != "" {
		w.pdf.WriteLinkString(w.lh, w.tr(s), w.href)
		return
	}
	w.pdf.Write(w.lh, w.tr(s))
}

// image embeds local PNG/JPEG files from the asset dir. Remote and missing
// images are skipped.
func (w *layout) image(src string) {
	if src == "" || w.assetDir == "" || strings.Contains(src, "://") {
		return
	}
	path := filepath.Join(w.assetDir, filepath.Clean("/"+src))
	if _, err := os.Stat(path); err != nil {
		slog.Warn("cv image not found", "path", path)
		return
	}
	w.newline()
	w.pdf.ImageOptions(path, w.pdf.GetX(), w.pdf.GetY(), 28, 0, true, gofpdf.ImageOptions{ReadDpi: true}, 0, "")
	w.pdf.Ln(2)
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// collapseSpace folds whitespace runs into single spaces, keeping one
// leading or trailing space when the input had one.
func collapseSpace(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		if s != "" {
			return " "
		}
		return ""
	}
	out := strings.Join(fields, " ")
	if isSpace(s[0]) {
		out = " " + out
	}
	if isSpace(s[len(s)-1]) {
		out += " "
	}
	return out
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\n' || b == '\t' || b == '\r' || b == '\f'
}

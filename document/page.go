// Package document adapts HTML documents to utility generator: it enumerates
// elements carrying class attribute and receives generated stylesheet.
package document

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
	"golang.org/x/net/html/charset"

	"twigwind/utility"
)

// Page is parsed HTML document. Content is always kept in UTF-8 regardless of
// the source encoding.
type Page struct {
	doc     *goquery.Document
	styleID string
	log     *zap.Logger
}

// Option configures Page on Load.
type Option func(*Page)

// WithStyleID sets id attribute of style elements added by AppendStyle.
func WithStyleID(id string) Option {
	return func(p *Page) {
		p.styleID = id
	}
}

// WithLogger sets logger, by default nothing is logged.
func WithLogger(log *zap.Logger) Option {
	return func(p *Page) {
		if log != nil {
			p.log = log
		}
	}
}

// Load reads HTML document from r. Encoding is detected from contentType
// (may be empty), BOM and <meta> elements, the way browsers do it.
func Load(r io.Reader, contentType string, opts ...Option) (*Page, error) {
	p := &Page{log: zap.NewNop()}
	for _, opt := range opts {
		opt(p)
	}
	p.log = p.log.Named("document")

	ur, err := charset.NewReader(r, contentType)
	if err != nil {
		return nil, fmt.Errorf("unable to detect document encoding: %w", err)
	}
	doc, err := goquery.NewDocumentFromReader(ur)
	if err != nil {
		return nil, fmt.Errorf("unable to parse document: %w", err)
	}
	p.doc = doc
	p.declareUTF8()
	return p, nil
}

// declareUTF8 makes encoding declarations agree with what Render produces.
func (p *Page) declareUTF8() {
	p.doc.Find("meta[charset]").Each(func(_ int, s *goquery.Selection) {
		if v, _ := s.Attr("charset"); !strings.EqualFold(v, "utf-8") {
			p.log.Debug("Replacing charset declaration", zap.String("charset", v))
			s.SetAttr("charset", "utf-8")
		}
	})
	p.doc.Find("meta[http-equiv]").Each(func(_ int, s *goquery.Selection) {
		if v, _ := s.Attr("http-equiv"); strings.EqualFold(v, "content-type") {
			s.SetAttr("content", "text/html; charset=utf-8")
		}
	})
}

// Title returns text of document <title>.
func (p *Page) Title() string {
	return strings.TrimSpace(p.doc.Find("title").First().Text())
}

type element struct {
	sel *goquery.Selection
}

// ClassNames implements utility.Element.
func (e element) ClassNames() []string {
	v, _ := e.sel.Attr("class")
	return strings.Fields(v)
}

// Elements returns all elements with class attribute in document order.
func (p *Page) Elements() []utility.Element {
	var res []utility.Element
	p.doc.Find("[class]").Each(func(_ int, s *goquery.Selection) {
		res = append(res, element{sel: s})
	})
	return res
}

// Classes returns class tokens of all elements in document order, repeats
// included.
func (p *Page) Classes() []string {
	var res []string
	for _, el := range p.Elements() {
		res = append(res, el.ClassNames()...)
	}
	return res
}

// AppendStyle implements utility.StyleTarget. Every call adds new <style>
// element at the end of <head>, creating <head> when document does not have
// one. Style content is rendered raw, so any "</" in text is written as
// "<\/" which CSS reads the same but HTML parser never takes for an end tag.
func (p *Page) AppendStyle(text string) error {
	text = strings.ReplaceAll(text, "</", `<\/`)

	style := &html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.Style,
		Data:     atom.Style.String(),
	}
	if p.styleID != "" {
		style.Attr = append(style.Attr, html.Attribute{Key: "id", Val: p.styleID})
	}
	style.AppendChild(&html.Node{Type: html.TextNode, Data: text})

	head, err := p.head()
	if err != nil {
		return err
	}
	head.AppendNodes(style)
	p.log.Debug("Style appended", zap.String("id", p.styleID), zap.Int("bytes", len(text)))
	return nil
}

func (p *Page) head() (*goquery.Selection, error) {
	if head := p.doc.Find("head").First(); head.Length() > 0 {
		return head, nil
	}
	root := p.doc.Find("html").First()
	if root.Length() == 0 {
		return nil, fmt.Errorf("document has no root element")
	}
	node := &html.Node{Type: html.ElementNode, DataAtom: atom.Head, Data: atom.Head.String()}
	root.PrependNodes(node)
	return root.ChildrenFiltered("head").First(), nil
}

// Styles returns content of all <style> elements with given id.
func (p *Page) Styles(id string) []string {
	var res []string
	p.doc.Find("style").Each(func(_ int, s *goquery.Selection) {
		if v, _ := s.Attr("id"); v == id {
			res = append(res, s.Text())
		}
	})
	return res
}

// Render writes document as UTF-8 HTML.
func (p *Page) Render(w io.Writer) error {
	if err := html.Render(w, p.doc.Get(0)); err != nil {
		return fmt.Errorf("unable to render document: %w", err)
	}
	return nil
}

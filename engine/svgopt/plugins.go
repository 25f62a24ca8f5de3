package svgopt

import (
	"fmt"

	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"
)

// Plugin is a single document transformation.
type Plugin interface {
	Name() string
	Apply(doc *xmlquery.Node) error
}

// Attr is an unqualified attribute.
type Attr struct {
	Name  string
	Value string
}

// --- removeAttrs -----------------------------------------------------------

type removeAttrs struct {
	names []string
	exprs []*xpath.Expr
	err   error
}

// RemoveAttrs removes the named attributes from every element of a
// document. Names are matched exactly: removing "fill" leaves "fill-rule"
// alone.
func RemoveAttrs(names ...string) Plugin {
	p := &removeAttrs{names: names}
	for _, name := range names {
		expr, err := xpath.Compile(fmt.Sprintf("//*[@%s]", name))
		if err != nil {
			p.err = fmt.Errorf("removeAttrs: invalid attribute name %q: %w", name, err)
			break
		}
		p.exprs = append(p.exprs, expr)
	}
	return p
}

func (p *removeAttrs) Name() string { return "removeAttrs" }

func (p *removeAttrs) Apply(doc *xmlquery.Node) error {
	if p.err != nil {
		return p.err
	}
	for i, expr := range p.exprs {
		for _, n := range xmlquery.QuerySelectorAll(doc, expr) {
			removeAttr(n, p.names[i])
		}
	}
	return nil
}

func removeAttr(n *xmlquery.Node, name string) {
	attrs := n.Attr[:0]
	for _, a := range n.Attr {
		if a.Name.Space == "" && a.Name.Local == name {
			continue
		}
		attrs = append(attrs, a)
	}
	n.Attr = attrs
}

// --- addAttributesToSVGElement ---------------------------------------------

type addRootAttrs struct {
	attrs []Attr
}

// AddRootAttributes sets attributes on the outermost <svg> element.
// Attributes already present keep their value.
func AddRootAttributes(attrs ...Attr) Plugin {
	return &addRootAttrs{attrs: attrs}
}

func (p *addRootAttrs) Name() string { return "addAttributesToSVGElement" }

func (p *addRootAttrs) Apply(doc *xmlquery.Node) error {
	root := rootElement(doc)
	if root == nil {
		return errNoRoot
	}
	for _, a := range p.attrs {
		if hasAttr(root, a.Name) {
			continue
		}
		xmlquery.AddAttr(root, a.Name, a.Value)
	}
	return nil
}

func hasAttr(n *xmlquery.Node, name string) bool {
	for _, a := range n.Attr {
		if a.Name.Space == "" && a.Name.Local == name {
			return true
		}
	}
	return false
}

// --- cleanup ---------------------------------------------------------------

type cleanup struct{}

// CleanupDocument drops comments, processing instructions and the XML
// declaration.
func CleanupDocument() Plugin {
	return cleanup{}
}

func (cleanup) Name() string { return "cleanupDocument" }

func (cleanup) Apply(doc *xmlquery.Node) error {
	var drop []*xmlquery.Node
	var walk func(*xmlquery.Node)
	walk = func(n *xmlquery.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			switch c.Type {
			case xmlquery.CommentNode, xmlquery.DeclarationNode:
				drop = append(drop, c)
			case xmlquery.ElementNode:
				walk(c)
			}
		}
	}
	walk(doc)
	for _, n := range drop {
		xmlquery.RemoveFromTree(n)
	}
	return nil
}

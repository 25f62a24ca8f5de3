package sprite

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/MfgOpen/industricons/core"
	"github.com/MfgOpen/industricons/core/dirlist"
	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"
)

// DefaultFileName is the file name of the sprite within the destination
// directory.
const DefaultFileName = "industricon.svg"

const svgNamespace = "http://www.w3.org/2000/svg"

// Sprite is a compiled sprite document, ready to be written.
type Sprite struct {
	Path     string
	Contents string
	Symbols  []string // symbol ids in document order
}

// Compiler collects icons and compiles them into a sprite.
// A Compiler is not safe for concurrent use.
type Compiler struct {
	dest       string
	symbols    []*xmlquery.Node
	ids        map[string]string // id -> source path
	namespaces map[string]string // prefix -> URI, from icon roots
	errs       []error
}

// New creates a compiler for a sprite to be written to directory dest.
func New(dest string) *Compiler {
	return &Compiler{
		dest:       dest,
		ids:        make(map[string]string),
		namespaces: make(map[string]string),
	}
}

var rootExpr = xpath.MustCompile("/svg")

// Attributes of an icon root which make no sense on a symbol.
var droppedRootAttrs = map[string]bool{
	"width": true, "height": true, "x": true, "y": true, "id": true,
	"version": true, "baseProfile": true, "viewBox": true,
	"enable-background": true,
}

// Add parses an icon and turns it into a symbol. Errors are returned and
// remembered for Compile as well; a failing icon is left out of the sprite.
func (c *Compiler) Add(path string, svg []byte) error {
	err := c.add(path, svg)
	if err != nil {
		tracer().Errorf("sprite: %v", err)
		c.errs = append(c.errs, err)
	}
	return err
}

// AddFile reads an icon from the file system and adds it.
func (c *Compiler) AddFile(path string) error {
	svg, err := os.ReadFile(path)
	if err != nil {
		err = core.IOError(err, "cannot read icon %s", path)
		c.errs = append(c.errs, err)
		return err
	}
	return c.Add(path, svg)
}

func (c *Compiler) add(path string, svg []byte) error {
	id := symbolID(path)
	if other, dup := c.ids[id]; dup {
		return core.Error(core.EINVALID, "icon %s: id %q already used by %s", path, id, other)
	}
	doc, err := xmlquery.Parse(bytes.NewReader(svg))
	if err != nil {
		return core.WrapError(err, core.EINVALID, "icon %s: cannot parse SVG", path)
	}
	root := xmlquery.QuerySelector(doc, rootExpr)
	if root == nil {
		return core.Error(core.EINVALID, "icon %s: not an SVG document", path)
	}
	viewBox := root.SelectAttr("viewBox")
	if viewBox == "" {
		w, h := root.SelectAttr("width"), root.SelectAttr("height")
		if w == "" || h == "" {
			return core.Error(core.EINVALID, "icon %s: neither view box nor size given", path)
		}
		viewBox = fmt.Sprintf("0 0 %s %s", strings.TrimSuffix(w, "px"), strings.TrimSuffix(h, "px"))
	}
	symbol := &xmlquery.Node{Type: xmlquery.ElementNode, Data: "symbol"}
	xmlquery.AddAttr(symbol, "id", id)
	xmlquery.AddAttr(symbol, "viewBox", viewBox)
	for _, attr := range root.Attr {
		switch {
		case attr.Name.Space == "" && attr.Name.Local == "xmlns":
			// the sprite declares the SVG namespace
		case attr.Name.Space == "xmlns":
			c.namespaces[attr.Name.Local] = attr.Value
		case attr.Name.Space == "" && droppedRootAttrs[attr.Name.Local]:
		default:
			symbol.Attr = append(symbol.Attr, attr)
		}
	}
	for child := root.FirstChild; child != nil; {
		next := child.NextSibling
		switch child.Type {
		case xmlquery.ElementNode, xmlquery.TextNode, xmlquery.CharDataNode:
			xmlquery.RemoveFromTree(child)
			xmlquery.AddChild(symbol, child)
		}
		child = next
	}
	c.ids[id] = path
	c.symbols = append(c.symbols, symbol)
	tracer().Debugf("sprite: added symbol %s", id)
	return nil
}

// symbolID derives a symbol id from an icon's file name. Whitespace is not
// allowed in XML ids and is replaced by '_'.
func symbolID(path string) string {
	id := dirlist.BaseName(filepath.Base(path))
	return strings.Join(strings.Fields(id), "_")
}

// Len returns the number of symbols collected so far.
func (c *Compiler) Len() int {
	return len(c.symbols)
}

// Compile creates the sprite document from all icons successfully added.
// If any icon failed, the sprite is returned together with an error
// listing all failures.
func (c *Compiler) Compile() (*Sprite, error) {
	root := &xmlquery.Node{Type: xmlquery.ElementNode, Data: "svg"}
	xmlquery.AddAttr(root, "xmlns", svgNamespace)
	prefixes := make([]string, 0, len(c.namespaces))
	for prefix := range c.namespaces {
		prefixes = append(prefixes, prefix)
	}
	sort.Strings(prefixes)
	for _, prefix := range prefixes {
		xmlquery.AddAttr(root, "xmlns:"+prefix, c.namespaces[prefix])
	}
	s := &Sprite{Path: filepath.Join(c.dest, DefaultFileName)}
	for _, sym := range c.symbols {
		xmlquery.AddChild(root, sym)
		s.Symbols = append(s.Symbols, sym.SelectAttr("id"))
	}
	s.Contents = root.OutputXML(true)
	// detach the symbols again, so Compile may be called repeatedly
	for _, sym := range c.symbols {
		xmlquery.RemoveFromTree(sym)
	}
	if len(c.errs) > 0 {
		err := core.WrapError(errors.Join(c.errs...), core.EINVALID,
			"%d icon(s) could not be added to the sprite", len(c.errs))
		return s, err
	}
	return s, nil
}

// WriteFile writes a sprite to its path.
func WriteFile(s *Sprite) error {
	if s == nil {
		return core.Error(core.EINTERNAL, "no sprite to write")
	}
	if err := os.WriteFile(s.Path, []byte(s.Contents), 0644); err != nil {
		return core.IOError(err, "cannot write sprite %s", s.Path)
	}
	tracer().Infof("wrote sprite %s with %d symbols", s.Path, len(s.Symbols))
	return nil
}

// Package document loads an HTML page into the editor. Every element under
// <body> becomes a component bound to a node of the frame, laid out in
// terminal cells from its style.
package document

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/antchfx/htmlquery"
	"go.uber.org/zap"
	"golang.org/x/net/html"

	"framegrip/internal/domain"
	"framegrip/internal/editor"
	"framegrip/internal/eventbus"
	"framegrip/internal/frame"
	"framegrip/internal/geom"
)

// ErrNoBody is returned for documents without a body element
var ErrNoBody = errors.New("document has no body")

// Element is a rendered element of the document
type Element struct {
	node *html.Node
}

// NodeName implements frame.Node
func (e *Element) NodeName() string { return strings.ToUpper(e.node.Data) }

// HTML returns the underlying parse tree node
func (e *Element) HTML() *html.Node { return e.node }

// Attr returns an attribute value
func (e *Element) Attr(name string) string {
	return htmlquery.SelectAttr(e.node, name)
}

// Editable reports whether the element takes text focus
func (e *Element) Editable() bool {
	for _, a := range e.node.Attr {
		if a.Key == "contenteditable" {
			return a.Val != "false"
		}
	}
	return false
}

// Text returns the element's own text, without its children's
func (e *Element) Text() string {
	var parts []string
	for c := e.node.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			if t := strings.Join(strings.Fields(c.Data), " "); t != "" {
				parts = append(parts, t)
			}
		}
	}
	return strings.Join(parts, " ")
}

// Document is the embedded document of the terminal canvas
type Document struct {
	root     *html.Node
	body     *Element
	ed       *editor.Editor
	reg      *frame.Registry
	elements map[*html.Node]*Element
	focused  *Element

	layout map[*domain.Component]geom.Box // absolute boxes, nil when stale
	passes int                            // layout passes run so far

	bodyTarget *frame.Target
	winTarget  *frame.Target

	unsubscribe []func()
	logger      *zap.Logger
}

// Load parses r and mounts its body into the editor's wrapper component
func Load(r io.Reader, ed *editor.Editor, reg *frame.Registry, bus eventbus.EventBus, logger *zap.Logger) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse document: %w", err)
	}
	bodyNode := htmlquery.FindOne(root, "//body")
	if bodyNode == nil {
		return nil, ErrNoBody
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	d := &Document{
		root:       root,
		ed:         ed,
		reg:        reg,
		elements:   make(map[*html.Node]*Element),
		bodyTarget: frame.NewTarget(),
		winTarget:  frame.NewTarget(),
		logger:     logger.Named("document"),
	}
	d.body = d.element(bodyNode)
	reg.Bind(d.body, ed.Wrapper())
	d.mount(bodyNode, ed.Wrapper())

	d.unsubscribe = append(d.unsubscribe,
		bus.Subscribe(eventbus.EventComponentAdded, func(e eventbus.DomainEvent) {
			if ev, ok := e.(eventbus.ComponentAddedEvent); ok {
				d.attach(ev.Component, ev.Index)
			}
		}),
		bus.Subscribe(eventbus.EventComponentRemoved, func(e eventbus.DomainEvent) {
			if ev, ok := e.(eventbus.ComponentRemovedEvent); ok {
				d.detach(ev.Component)
			}
		}),
	)
	for _, typ := range layoutEvents {
		d.unsubscribe = append(d.unsubscribe, bus.Subscribe(typ, func(eventbus.DomainEvent) {
			d.Invalidate()
		}))
	}
	d.logger.Debug("document loaded", zap.Int("elements", reg.Len()))
	return d, nil
}

// Close stops following the component tree
func (d *Document) Close() {
	for _, unsubscribe := range d.unsubscribe {
		unsubscribe()
	}
	d.unsubscribe = nil
}

func (d *Document) element(n *html.Node) *Element {
	if el, ok := d.elements[n]; ok {
		return el
	}
	el := &Element{node: n}
	d.elements[n] = el
	return el
}

// mount creates components for the element children of n
func (d *Document) mount(n *html.Node, parent *domain.Component) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode || c.Data == "script" || c.Data == "style" {
			continue
		}
		el := d.element(c)
		comp := componentFor(el)
		parent.Components.Add(comp, -1)
		d.reg.Bind(el, comp)
		d.mount(c, comp)
	}
}

// attach materializes a component added to the tree after load
func (d *Document) attach(c *domain.Component, index int) {
	if d.reg.NodeOf(c) != nil {
		return
	}
	parent, ok := d.reg.NodeOf(c.Parent()).(*Element)
	if !ok {
		return
	}
	var before *html.Node
	if next, ok := d.reg.NodeOf(c.Collection().At(index + 1)).(*Element); ok {
		before = next.node
	}
	parent.node.InsertBefore(d.build(c), before)
}

// build creates the parse tree for c and binds every new node
func (d *Document) build(c *domain.Component) *html.Node {
	n := &html.Node{Type: html.ElementNode, Data: c.Attributes[tagAttr]}
	if n.Data == "" {
		n.Data = "div"
	}
	keys := make([]string, 0, len(c.Attributes))
	for k := range c.Attributes {
		if k != tagAttr && k != textAttr && k != "id" && k != "style" {
			keys = append(keys, k)
		}
	}
	slices.Sort(keys)
	for _, k := range keys {
		n.Attr = append(n.Attr, html.Attribute{Key: k, Val: c.Attributes[k]})
	}
	if text := c.Attributes[textAttr]; text != "" {
		n.AppendChild(&html.Node{Type: html.TextNode, Data: text})
	}
	d.reg.Bind(d.element(n), c)
	for _, child := range c.Components.All() {
		n.AppendChild(d.build(child))
	}
	return n
}

// detach drops the nodes of a removed component
func (d *Document) detach(c *domain.Component) {
	el, ok := d.reg.NodeOf(c).(*Element)
	if !ok {
		return
	}
	if el.node.Parent != nil {
		el.node.Parent.RemoveChild(el.node)
	}
	c.Walk(func(x *domain.Component) {
		if n, ok := d.reg.NodeOf(x).(*Element); ok {
			delete(d.elements, n.node)
			if d.focused == n {
				d.focused = nil
			}
		}
		d.reg.Unbind(x)
	})
}

// Body implements frame.Document
func (d *Document) Body() *frame.Target { return d.bodyTarget }

// Window implements frame.Document
func (d *Document) Window() *frame.Target { return d.winTarget }

// BodyElement returns the element bound to the wrapper component
func (d *Document) BodyElement() *Element { return d.body }

// Focus moves text focus to el if it is editable and reports whether it did
func (d *Document) Focus(el *Element) bool {
	if el == nil || !el.Editable() {
		return false
	}
	d.focused = el
	return true
}

// Blur returns focus to the body
func (d *Document) Blur() { d.focused = nil }

// Focused returns the element holding focus, nil for the body
func (d *Document) Focused() *Element { return d.focused }

// ActiveElementEditable implements frame.Document
func (d *Document) ActiveElementEditable() bool { return d.focused != nil }

// ToggleBodyClass implements frame.Document
func (d *Document) ToggleBodyClass(class string, on bool) {
	classes := strings.Fields(d.body.Attr("class"))
	i := slices.Index(classes, class)
	switch {
	case on && i < 0:
		classes = append(classes, class)
	case !on && i >= 0:
		classes = slices.Delete(classes, i, i+1)
	default:
		return
	}
	setAttr(d.body.node, "class", strings.Join(classes, " "))
}

// BodyClasses returns the classes currently set on the body
func (d *Document) BodyClasses() []string {
	return strings.Fields(d.body.Attr("class"))
}

// Query finds an element by "#id" or by XPath expression
func (d *Document) Query(sel string) (*Element, error) {
	expr := sel
	if id, ok := strings.CutPrefix(sel, "#"); ok {
		if strings.Contains(id, "'") {
			return nil, fmt.Errorf("invalid id selector: %s", sel)
		}
		expr = fmt.Sprintf("//*[@id='%s']", id)
	}
	n, err := htmlquery.Query(d.root, expr)
	if err != nil {
		return nil, fmt.Errorf("invalid selector %q: %w", sel, err)
	}
	if n == nil {
		return nil, nil
	}
	el, ok := d.elements[n]
	if !ok {
		return nil, nil
	}
	return el, nil
}

// Elements returns the bound elements in document order, body excluded
func (d *Document) Elements() []*Element {
	var out []*Element
	d.ed.Wrapper().Walk(func(c *domain.Component) {
		if el, ok := d.reg.NodeOf(c).(*Element); ok && el != d.body {
			out = append(out, el)
		}
	})
	return out
}

// Model returns the component of el
func (d *Document) Model(el *Element) *domain.Component {
	return d.reg.ResolveModel(el)
}

// Render writes the document with every element's style attribute synced
// from its component
func (d *Document) Render(w io.Writer) error {
	for _, el := range d.Elements() {
		c := d.reg.ResolveModel(el)
		if c == nil {
			continue
		}
		if len(c.Style) == 0 {
			removeAttr(el.node, "style")
			continue
		}
		setAttr(el.node, "style", c.Style.String())
	}
	if err := html.Render(w, d.root); err != nil {
		return fmt.Errorf("failed to render document: %w", err)
	}
	return nil
}

func setAttr(n *html.Node, key, val string) {
	for i, a := range n.Attr {
		if a.Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

func removeAttr(n *html.Node, key string) {
	n.Attr = slices.DeleteFunc(n.Attr, func(a html.Attribute) bool { return a.Key == key })
}

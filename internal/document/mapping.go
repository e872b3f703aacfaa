package document

import (
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"framegrip/internal/domain"
)

// Attribute keys of component attributes that are not HTML attributes
const (
	tagAttr  = "tagName"
	textAttr = "textContent"
)

// defaultToolbar is used when an element has no data-toolbar attribute
var defaultToolbar = []string{"select-parent", "tlb-clone", "tlb-delete"}

var actionLabels = map[string]string{
	"select-parent": "up",
	"tlb-clone":     "clone",
	"tlb-delete":    "del",
}

var textTags = map[string]bool{
	"p": true, "span": true, "a": true, "label": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
}

func componentFor(el *Element) *domain.Component {
	n := el.node
	typ := el.Attr("data-type")
	if typ == "" {
		switch {
		case textTags[n.Data]:
			typ = "text"
		case n.Data == "img":
			typ = "image"
		default:
			typ = "default"
		}
	}

	c := domain.NewComponent(typ)
	c.Name = el.Attr("data-name")
	c.Icon = el.Attr("data-icon")
	c.Copyable = parseBool(el.Attr("data-copyable"), true)
	c.Removable = parseBool(el.Attr("data-removable"), true)
	c.Badgable = parseBool(el.Attr("data-badgable"), true)
	c.Resizable = parseResizable(el.Attr("data-resizable"))
	c.Toolbar = parseToolbar(n.Attr)
	c.Style = domain.ParseStyle(el.Attr("style"))

	for _, a := range n.Attr {
		c.Attributes[a.Key] = a.Val
	}
	c.Attributes[tagAttr] = n.Data
	if text := el.Text(); text != "" {
		c.Attributes[textAttr] = text
	}
	return c
}

func parseBool(v string, def bool) bool {
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

// parseResizable reads "true", "false" or an option list such as
// "handles:tc,bc;min:2;step:1;unit:px;key-width:w;key-height:h"
func parseResizable(v string) domain.Resizable {
	v = strings.TrimSpace(v)
	switch v {
	case "", "false":
		return domain.Resizable{}
	case "true":
		return domain.Resizable{Enabled: true}
	}

	opts := &domain.ResizeOptions{}
	for _, part := range strings.Split(v, ";") {
		key, val, ok := strings.Cut(part, ":")
		if !ok {
			continue
		}
		val = strings.TrimSpace(val)
		switch strings.TrimSpace(key) {
		case "handles":
			for _, h := range strings.Split(val, ",") {
				if h = strings.TrimSpace(h); h != "" {
					opts.Handles = append(opts.Handles, h)
				}
			}
		case "min":
			opts.MinDim, _ = strconv.ParseFloat(val, 64)
		case "step":
			opts.Step, _ = strconv.ParseFloat(val, 64)
		case "unit":
			opts.Unit = val
		case "key-width":
			opts.KeyWidth = val
		case "key-height":
			opts.KeyHeight = val
		}
	}
	return domain.Resizable{Enabled: true, Options: opts}
}

func parseToolbar(attrs []html.Attribute) []domain.ActionSpec {
	names := defaultToolbar
	for _, a := range attrs {
		if a.Key == "data-toolbar" {
			names = nil
			for _, name := range strings.Split(a.Val, ",") {
				if name = strings.TrimSpace(name); name != "" {
					names = append(names, name)
				}
			}
		}
	}
	var actions []domain.ActionSpec
	for _, name := range names {
		label := actionLabels[name]
		if label == "" {
			label = strings.TrimPrefix(name, "tlb-")
		}
		actions = append(actions, domain.ActionSpec{Command: name, Label: label})
	}
	return actions
}

package domain

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Style is a set of CSS-like declarations keyed by property name
type Style map[string]string

// Clone returns an independent copy
func (s Style) Clone() Style {
	out := make(Style, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// Px reads a numeric property, ignoring a trailing unit
func (s Style) Px(prop string) (float64, bool) {
	return ParsePx(s[prop])
}

// String renders the declarations in a stable order
func (s Style) String() string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s:%s", k, s[k]))
	}
	return strings.Join(parts, ";")
}

// ParseStyle parses an inline declaration list such as "width:10px;top:2"
func ParseStyle(decl string) Style {
	style := Style{}
	for _, part := range strings.Split(decl, ";") {
		name, value, ok := strings.Cut(part, ":")
		if !ok {
			continue
		}
		name = strings.TrimSpace(strings.ToLower(name))
		value = strings.TrimSpace(value)
		if name == "" || value == "" {
			continue
		}
		style[name] = value
	}
	return style
}

// ParsePx parses a length such as "12px" or "12"
func ParsePx(v string) (float64, bool) {
	v = strings.TrimSpace(v)
	v = strings.TrimSuffix(v, "px")
	if v == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// FormatPx formats a length with the given unit, dropping a zero fraction
func FormatPx(v float64, unit string) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + unit
}

// SetStyleOptions tunes a style write
type SetStyleOptions struct {
	AvoidStore bool // skip history and persistence for intermediate writes
}

// StyleWriter reads and writes the style rule targeting one component
type StyleWriter interface {
	GetStyle() Style
	SetStyle(style Style, opts SetStyleOptions)
	OnStyleChanged(style Style)
}

// StyleSource hands out style writers bound to a component
type StyleSource interface {
	StyleWriter(c *Component) StyleWriter
}

package frame

// Node is a rendered element inside the embedded document
type Node interface {
	NodeName() string
}

// Document is the embedded document hosting selectable nodes
type Document interface {
	// Body receives pointerover, pointerout and click events
	Body() *Target
	// Window receives scroll and keydown events
	Window() *Target
	// ActiveElementEditable reports whether focus is inside an editable
	// surface of the document (anything but the body)
	ActiveElementEditable() bool
	// ToggleBodyClass adds or removes a class on the document body
	ToggleBodyClass(class string, on bool)
}

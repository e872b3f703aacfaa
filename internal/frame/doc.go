// Package frame describes the embedded document the editor decorates.
//
// The selection subsystem never touches a concrete DOM. It sees rendered
// nodes through the Node interface, receives pointer, scroll and key events
// through Targets, maps nodes to their models with a Registry and asks a
// Coordinates provider where nodes are on the host page.
package frame

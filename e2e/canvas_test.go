//go:build e2e && unix

package main

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHoverAndSelect(t *testing.T) {
	t.Parallel()
	s := NewSession(t)
	s.Play(samplePage)
	require.True(t, s.See("Welcome"), "Should paint the document")

	s.MoveTo(5, 7)
	require.True(t, s.See("hover #card"), "Should report the hovered element")
	require.True(t, s.See("30×4"), "Should show the hover offset readout")

	s.Click(5, 2)
	require.True(t, s.See("selected #hero"), "Should select on click")
	require.True(t, s.See(" up  clone  del "), "Should show the toolbar")
	s.Quit()
}

func TestResizeWithGrip(t *testing.T) {
	t.Parallel()
	s := NewSession(t)
	s.Play(samplePage)

	s.Click(5, 2)
	require.True(t, s.See("selected #hero"))

	// bottom-right grip of the hero box
	s.Press(29, 4)
	require.True(t, s.See("resizing"))
	s.DragTo(33, 5)
	s.Release(33, 5)
	require.True(t, s.See("width:34px"), "Should commit the new width")
	require.True(t, s.See("height:5px"), "Should commit the new height")

	s.Send(KeyUndo)
	require.True(t, s.See("width:30"), "Undo should restore the width")
	s.Send(KeyRedo)
	require.True(t, s.See("height:5px;left:0;top:0;width:34px"), "Redo should reapply the drag")
	s.Quit()
}

func TestDeleteSelection(t *testing.T) {
	t.Parallel()
	s := NewSession(t)
	s.Play(samplePage)

	s.Click(5, 7)
	require.True(t, s.See("selected #card"))

	s.Send(KeyDelete)
	require.True(t, s.See("click an element to select it"), "Selection should be cleared")
	s.Quit()
}

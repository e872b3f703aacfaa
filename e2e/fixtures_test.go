//go:build e2e && unix

package main

// samplePage is laid out so #hero spans rows 0-3 and #card rows 5-8 of the
// frame, which starts on the second terminal row
const samplePage = `<html><body>
<div id="hero" data-name="Hero" style="left:0;top:0;width:30;height:4" data-resizable="true">Welcome</div>
<div id="card" data-name="Card" style="left:0;top:5;width:30;height:4" contenteditable>Edit me</div>
</body></html>`

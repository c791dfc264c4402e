// Package ui provides semantic text formatting for rdc output.
//
// Formatters render with color when the terminal supports it. When NO_COLOR
// is set, or the terminal cannot show colors, they fall back to plain text
// decorations:
//
//	ui.Code.Sprint("rdc store pull prod cluster")  // `backticks`
//	ui.Highlight.Sprint("cluster")                 // 'single quotes'
//	ui.Muted.Sprint("v3")                          // (parentheses)
//	ui.Success.Sprint("✓")                         // unchanged
//
// Status colors queue task states and Check renders a boolean as ✓ or ✗.
package ui

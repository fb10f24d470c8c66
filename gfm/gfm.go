// Package gfm implements the two-way text↔AST codec for GitHub-Flavored
// Markdown. Parsing delegates block-and-inline tokenization to
// github.com/gomarkdown/markdown and converts its tree into the common
// AST, recognizing `slack://` deep links along the way. Rendering is a
// hand-written visitor walk, since no available library renders GFM
// text from an arbitrary tree the way this module's AST needs.
package gfm

import "fmt"

// ParseError reports GFM input gomarkdown could tokenize but this
// package could not map onto the common AST (only ever a root-node
// mismatch in practice; malformed block/inline syntax degrades to
// literal text rather than erroring).
type ParseError struct {
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("gfm parse error: %s", e.Message)
}

// RenderError reports an AST that violates a structural invariant the
// GFM encoder relies on, such as a Link with an empty URL.
type RenderError struct {
	Message string
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("gfm render error: %s", e.Message)
}

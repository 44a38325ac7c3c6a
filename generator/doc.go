// Package generator is wren's file generation toolkit: template rendering
// with naming helpers, atomic and transactional file writes, a validated
// operation pipeline, and conflict handling for wren update (unified diffs
// plus interactive resolution).
//
// The packages under internal/generators decide what to generate; this
// package only knows how to render text and land files safely.
package generator

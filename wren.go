// Package wren is the root of the wren code generator.
package wren

// Version is the generator version recorded into every manifest entry.
// Bump on every release that changes generated output.
const Version = "0.3.0"

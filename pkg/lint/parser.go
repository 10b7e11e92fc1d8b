package lint

import (
	"context"

	"github.com/yaklabco/adoclint/pkg/adast"
)

// Parser parses AsciiDoc content into a Document.
//
// The lint package defines this interface in the consumer package.
// Implementations (e.g., parser/asciidoc) provide the concrete parsing logic.
//
// Implementations must be:
//   - deterministic for a given (path, content) pair,
//   - total: malformed markup is represented in the tree, never an error,
//   - side-effect free (no I/O, no global state mutation).
type Parser interface {
	// Parse converts raw AsciiDoc bytes into a fully-populated Document.
	//
	// Parameters:
	//   - ctx: context for cancellation.
	//   - path: logical file path (for findings; must not be used for I/O).
	//   - content: raw bytes (must not be mutated by the implementation).
	//
	// The only expected error is a done context.
	Parse(ctx context.Context, path string, content []byte) (*adast.Document, error)
}

package port

import "context"

// TextExtractor derives plain text from an uploaded file.
type TextExtractor interface {
	Extract(ctx context.Context, data []byte, format string) (string, error)

	// Supports reports whether format (lowercase extension without the dot)
	// is accepted.
	Supports(format string) bool
}

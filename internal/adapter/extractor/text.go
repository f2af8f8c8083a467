package extractor

import (
	"context"
	"strings"
)

// ExtractText decodes UTF-8, dropping invalid byte sequences.
func ExtractText(_ context.Context, data []byte) (string, error) {
	return strings.TrimSpace(strings.ToValidUTF8(string(data), "")), nil
}

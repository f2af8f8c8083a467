package extractor

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"docqa/internal/domain"
	"docqa/internal/port"
)

// ExtractFunc turns raw file bytes into plain text.
type ExtractFunc func(ctx context.Context, data []byte) (string, error)

// Registry dispatches extraction by file format.
type Registry struct {
	extractors map[string]ExtractFunc
}

var _ port.TextExtractor = (*Registry)(nil)

// NewRegistry returns a registry with the txt, pdf and docx extractors.
func NewRegistry() *Registry {
	r := &Registry{extractors: make(map[string]ExtractFunc)}
	r.Register("txt", ExtractText)
	r.Register("pdf", ExtractPDF)
	r.Register("docx", ExtractDOCX)
	return r
}

func (r *Registry) Register(format string, fn ExtractFunc) {
	r.extractors[strings.ToLower(format)] = fn
}

func (r *Registry) Supports(format string) bool {
	_, ok := r.extractors[strings.ToLower(format)]
	return ok
}

func (r *Registry) Extract(ctx context.Context, data []byte, format string) (string, error) {
	fn, ok := r.extractors[strings.ToLower(format)]
	if !ok {
		return "", domain.ErrUnsupportedFormat
	}
	text, err := fn(ctx, data)
	if err != nil {
		return "", fmt.Errorf("failed to extract %s text: %w", format, err)
	}
	return text, nil
}

// FormatOf returns the lowercase extension of filename without the dot.
func FormatOf(filename string) string {
	return strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")
}

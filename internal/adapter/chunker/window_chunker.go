package chunker

import "strings"

const (
	DefaultChunkSize = 900
	DefaultOverlap   = 150
)

// WindowChunker splits text into overlapping fixed-size character windows.
type WindowChunker struct {
	size    int
	overlap int
}

func NewWindowChunker(size, overlap int) *WindowChunker {
	if size <= 0 {
		size = DefaultChunkSize
	}
	if overlap < 0 {
		overlap = 0
	}
	return &WindowChunker{
		size:    size,
		overlap: overlap,
	}
}

// Chunk returns the trimmed, non-empty windows of text in order. Windows
// are measured in characters, and each window after the first starts
// overlap characters before the previous one ended.
func (c *WindowChunker) Chunk(text string) []string {
	runes := []rune(strings.ReplaceAll(text, "\r", "\n"))

	var chunks []string
	for _, sp := range c.Spans(len(runes)) {
		if chunk := strings.TrimSpace(string(runes[sp.Start:sp.End])); chunk != "" {
			chunks = append(chunks, chunk)
		}
	}
	return chunks
}

// Span is the [Start, End) character range of one window before trimming.
type Span struct {
	Start int
	End   int
}

// Spans returns the untrimmed window boundaries over a text of the given
// length. The last span always ends at length.
func (c *WindowChunker) Spans(length int) []Span {
	var spans []Span
	start := 0
	for start < length {
		end := min(start+c.size, length)
		spans = append(spans, Span{Start: start, End: end})
		if end == length {
			break
		}
		next := max(0, end-c.overlap)
		if next <= start {
			next = end
		}
		start = next
	}
	return spans
}

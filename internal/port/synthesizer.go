package port

// Synthesizer builds an extractive answer from context passages.
type Synthesizer interface {
	Answer(question string, contexts []string) string
}

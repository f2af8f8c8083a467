package usecase

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"docqa/internal/adapter/cache"
	"docqa/internal/adapter/retriever"
	"docqa/internal/domain"
	"docqa/internal/port"
)

const (
	DefaultTopK = 6
	MaxTopK     = 10
)

// AskUseCase answers questions about one indexed document.
type AskUseCase struct {
	retriever   *retriever.Retriever
	synthesizer port.Synthesizer
	cache       *cache.AnswerCache
	maxTopK     int
	logger      *zap.Logger
}

// NewAskUseCase creates an ask use case. cache may be nil.
func NewAskUseCase(
	retriever *retriever.Retriever,
	synthesizer port.Synthesizer,
	cache *cache.AnswerCache,
	maxTopK int,
	logger *zap.Logger,
) *AskUseCase {
	if maxTopK <= 0 {
		maxTopK = MaxTopK
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AskUseCase{
		retriever:   retriever,
		synthesizer: synthesizer,
		cache:       cache,
		maxTopK:     maxTopK,
		logger:      logger,
	}
}

// ClampTopK limits topK to [1, maxTopK].
func (u *AskUseCase) ClampTopK(topK int) int {
	return max(1, min(topK, u.maxTopK))
}

// Ask retrieves the passages nearest to the question and builds an
// extractive answer from them. A document without an index yields
// domain.ErrIndexNotFound.
func (u *AskUseCase) Ask(ctx context.Context, docID, question string, topK int) (*domain.Answer, error) {
	docID = strings.TrimSpace(docID)
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, domain.ErrEmptyQuestion
	}
	topK = u.ClampTopK(topK)

	var gen uint64
	if u.cache != nil {
		if cached, ok := u.cache.Get(docID, question, topK); ok {
			u.logger.Debug("answer cache hit", zap.String("doc_id", docID))
			return &cached, nil
		}
		gen = u.cache.Generation(docID)
	}

	result, err := u.retriever.Retrieve(ctx, docID, question, topK)
	if err != nil {
		return nil, err
	}

	answer := domain.Answer{
		DocID:    docID,
		Question: question,
		Answer:   u.synthesizer.Answer(question, result.Contexts),
		Sources:  result.Sources,
	}

	u.logger.Debug("question answered",
		zap.String("doc_id", docID),
		zap.Int("top_k", topK),
		zap.Int("sources", len(answer.Sources)),
		zap.Int("contexts", len(result.Contexts)),
	)

	if u.cache != nil {
		u.cache.Put(docID, question, topK, gen, answer)
	}
	return &answer, nil
}

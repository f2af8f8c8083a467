package server

import (
	"errors"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"docqa/internal/domain"
	"docqa/internal/usecase"
)

type askRequest struct {
	DocID    string `json:"doc_id" binding:"required"`
	Question string `json:"question"`
	TopK     int    `json:"top_k"`
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) upload(c *gin.Context) {
	header, err := c.FormFile("file")
	if err != nil {
		s.fail(c, err)
		return
	}

	f, err := header.Open()
	if err != nil {
		s.fail(c, err)
		return
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		s.fail(c, err)
		return
	}

	result, err := s.docs.Ingest(c.Request.Context(), filepath.Base(header.Filename), data)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (s *Server) reindex(c *gin.Context) {
	docID := strings.TrimSpace(c.Param("doc_id"))

	result, err := s.docs.Reindex(c.Request.Context(), docID)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (s *Server) ask(c *gin.Context) {
	req := askRequest{TopK: s.defaultTopK}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: doc_id is required"})
		return
	}

	answer, err := s.answers.Ask(c.Request.Context(), req.DocID, req.Question, req.TopK)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, answer)
}

func (s *Server) listDocuments(c *gin.Context) {
	docs, err := s.docs.List()
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"documents": docs})
}

func (s *Server) getDocument(c *gin.Context) {
	doc, err := s.docs.Get(strings.TrimSpace(c.Param("doc_id")))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, doc)
}

func (s *Server) deleteDocument(c *gin.Context) {
	docID := strings.TrimSpace(c.Param("doc_id"))
	if err := s.docs.Delete(docID); err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "deleted", "doc_id": docID})
}

// fail writes {"error": msg} with the status matching err.
func (s *Server) fail(c *gin.Context, err error) {
	status, msg := statusOf(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
	}
	_ = c.Error(err)
	c.JSON(status, gin.H{"error": msg})
}

func statusOf(err error) (int, string) {
	var maxBytes *http.MaxBytesError
	var indexErr *usecase.IndexError

	switch {
	case errors.As(err, &maxBytes):
		return http.StatusRequestEntityTooLarge, "file too large"
	case errors.Is(err, http.ErrMissingFile),
		errors.Is(err, http.ErrNotMultipart):
		return http.StatusBadRequest, "file is required"
	case errors.Is(err, domain.ErrUnsupportedFormat),
		errors.Is(err, domain.ErrEmptyQuestion):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, domain.ErrUnreadableFile):
		return http.StatusBadRequest, domain.ErrUnreadableFile.Error()
	case errors.As(err, &indexErr):
		return http.StatusBadRequest, indexErr.Reason
	case errors.Is(err, domain.ErrTextNotFound),
		errors.Is(err, domain.ErrIndexNotFound):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, domain.ErrDocumentNotFound):
		return http.StatusNotFound, domain.ErrDocumentNotFound.Error()
	case errors.Is(err, domain.ErrCapacityReached):
		return http.StatusConflict, err.Error()
	case errors.Is(err, domain.ErrIndexStale):
		return http.StatusConflict, domain.ErrIndexStale.Error()
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}

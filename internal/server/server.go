package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"docqa/config"
	"docqa/internal/usecase"
)

const shutdownTimeout = 10 * time.Second

// Server exposes the document Q&A use cases over HTTP.
type Server struct {
	cfg         config.ServerConfig
	docs        *usecase.DocumentService
	answers     *usecase.AskUseCase
	defaultTopK int
	logger      *zap.Logger
	engine      *gin.Engine
}

func New(
	cfg config.ServerConfig,
	docs *usecase.DocumentService,
	answers *usecase.AskUseCase,
	defaultTopK int,
	logger *zap.Logger,
) *Server {
	if defaultTopK <= 0 {
		defaultTopK = usecase.DefaultTopK
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Server{
		cfg:         cfg,
		docs:        docs,
		answers:     answers,
		defaultTopK: defaultTopK,
		logger:      logger,
	}
	s.engine = s.routes()
	return s
}

func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestID(), accessLog(s.logger), cors(s.cfg.AllowedOrigins))

	r.GET("/health", s.health)
	r.POST("/upload", limitBody(s.cfg.MaxUploadBytes), s.upload)
	r.POST("/index/:doc_id", s.reindex)
	r.POST("/ask", s.ask)

	r.GET("/documents", s.listDocuments)
	r.GET("/documents/:doc_id", s.getDocument)
	r.DELETE("/documents/:doc_id", s.deleteDocument)

	return r
}

func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", zap.String("addr", s.cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down http server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

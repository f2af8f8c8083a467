package domain

import "errors"

var (
	ErrUnsupportedFormat = errors.New("Only .pdf, .docx, .txt files are allowed")
	ErrTextNotFound      = errors.New("Text file not found for this doc_id. Upload first.")
	ErrIndexNotFound     = errors.New("Index not found. Please upload again or call /index/{doc_id} first.")
	ErrDocumentNotFound  = errors.New("document not found")
	ErrCapacityReached   = errors.New("Document capacity reached. Delete a document before uploading another.")
	ErrEmptyQuestion     = errors.New("question is required")
	ErrUnreadableFile    = errors.New("Could not extract text from the uploaded file")
	ErrIndexStale        = errors.New("Index was built with different settings. Call /index/{doc_id} to rebuild it.")
)

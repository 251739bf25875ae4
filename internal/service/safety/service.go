// Package safety is the service layer: account lifecycle, chat history
// persistence, and content reports.
package safety

import "safetybot/internal/storage"

// Service handles user lifecycle, chat persistence, and reports.
type Service struct {
	db *storage.DB
}

// NewService builds a new safety service.
func NewService(db *storage.DB) *Service {
	return &Service{db: db}
}

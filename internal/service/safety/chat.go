package safety

import (
	"context"
	"errors"
	"fmt"
	"time"

	"safetybot/internal/models"
)

// historyLimit caps how many exchanges the history endpoint returns.
const historyLimit = 50

// RecordExchange persists one chat exchange for the user. riskLevel must be
// nil for every mode except misinformation.
func (s *Service) RecordExchange(ctx context.Context, userID int64, mode, userMessage, botResponse string, riskLevel *string) (*models.ChatExchange, error) {
	if userID <= 0 {
		return nil, errors.New("user_id is required")
	}
	if userMessage == "" {
		return nil, errors.New("user message cannot be empty")
	}
	now := time.Now().UTC()
	id, err := s.db.InsertID(ctx,
		`INSERT INTO chat_history (user_id, mode, user_message, bot_response, risk_level, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		userID, mode, userMessage, botResponse, riskLevel, now,
	)
	if err != nil {
		return nil, fmt.Errorf("insert exchange: %w", err)
	}
	return &models.ChatExchange{
		ID:          id,
		UserID:      userID,
		Mode:        mode,
		UserMessage: userMessage,
		BotResponse: botResponse,
		RiskLevel:   riskLevel,
		CreatedAt:   now,
	}, nil
}

// History returns the caller's most recent exchanges, newest first.
func (s *Service) History(ctx context.Context, userID int64) ([]models.ChatExchange, error) {
	if userID <= 0 {
		return nil, errors.New("user_id is required")
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, user_id, mode, user_message, bot_response, risk_level, created_at
		 FROM chat_history WHERE user_id = ? ORDER BY created_at DESC, id DESC LIMIT ?`,
		userID, historyLimit,
	)
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	defer rows.Close()

	var exchanges []models.ChatExchange
	for rows.Next() {
		var e models.ChatExchange
		if err := rows.Scan(&e.ID, &e.UserID, &e.Mode, &e.UserMessage, &e.BotResponse, &e.RiskLevel, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan exchange: %w", err)
		}
		exchanges = append(exchanges, e)
	}
	return exchanges, rows.Err()
}

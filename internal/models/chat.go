package models

import "time"

// ChatExchange is one request/response pair. Rows are immutable after
// creation. RiskLevel is set only for misinformation-mode exchanges.
type ChatExchange struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	Mode        string    `json:"mode"`
	UserMessage string    `json:"user_message"`
	BotResponse string    `json:"bot_response"`
	RiskLevel   *string   `json:"risk_level"`
	CreatedAt   time.Time `json:"created_at"`
}

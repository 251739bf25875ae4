package safety

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"safetybot/internal/models"
	"safetybot/internal/storage"
)

// CreateReport files a new pending report owned by the user.
func (s *Service) CreateReport(ctx context.Context, userID int64, contentType, description string) (*models.Report, error) {
	if userID <= 0 {
		return nil, errors.New("user_id is required")
	}
	contentType = strings.TrimSpace(contentType)
	description = strings.TrimSpace(description)
	if contentType == "" || description == "" {
		return nil, errors.New("content type and description are required")
	}

	reference := storage.NextReference()
	now := time.Now().UTC()
	id, err := s.db.InsertID(ctx,
		`INSERT INTO reports (reference, user_id, content_type, description, status, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		reference, userID, contentType, description, models.ReportPending, now,
	)
	if err != nil {
		return nil, fmt.Errorf("insert report: %w", err)
	}
	return &models.Report{
		ID:          id,
		Reference:   reference,
		UserID:      userID,
		ContentType: contentType,
		Description: description,
		Status:      models.ReportPending,
		CreatedAt:   now,
	}, nil
}

// ListReports returns every report, newest first. Admin surface only.
func (s *Service) ListReports(ctx context.Context) ([]models.Report, error) {
	return s.queryReports(ctx,
		`SELECT id, reference, user_id, content_type, description, status, created_at
		 FROM reports ORDER BY created_at DESC, id DESC`)
}

// ListUserReports returns the caller's reports, newest first.
func (s *Service) ListUserReports(ctx context.Context, userID int64) ([]models.Report, error) {
	if userID <= 0 {
		return nil, errors.New("user_id is required")
	}
	return s.queryReports(ctx,
		`SELECT id, reference, user_id, content_type, description, status, created_at
		 FROM reports WHERE user_id = ? ORDER BY created_at DESC, id DESC`, userID)
}

func (s *Service) queryReports(ctx context.Context, query string, args ...any) ([]models.Report, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}
	defer rows.Close()

	var reports []models.Report
	for rows.Next() {
		var r models.Report
		if err := rows.Scan(&r.ID, &r.Reference, &r.UserID, &r.ContentType, &r.Description, &r.Status, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan report: %w", err)
		}
		reports = append(reports, r)
	}
	return reports, rows.Err()
}

// UpdateReportStatus moves a report to another status within the known set.
func (s *Service) UpdateReportStatus(ctx context.Context, reportID int64, status string) error {
	if reportID <= 0 {
		return errors.New("invalid report id")
	}
	if !models.ValidReportStatus(status) {
		return fmt.Errorf("unknown report status: %s", status)
	}
	res, err := s.db.ExecContext(ctx, `UPDATE reports SET status = ? WHERE id = ?`, status, reportID)
	if err != nil {
		return fmt.Errorf("update report status: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

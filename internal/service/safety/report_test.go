package safety

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"safetybot/internal/models"
)

func TestCreateReportDefaultsToPending(t *testing.T) {
	db := openTestDB(t)
	defer db.Close()
	svc := NewService(db)
	ctx := context.Background()

	userID := registerTestUser(t, svc, "alice")
	report, err := svc.CreateReport(ctx, userID, "phishing", "fake bank SMS with a link")
	if err != nil {
		t.Fatalf("create report: %v", err)
	}
	if report.Status != models.ReportPending {
		t.Fatalf("expected pending status, got %q", report.Status)
	}
	if report.Reference == "" {
		t.Fatalf("expected a public reference")
	}

	mine, err := svc.ListUserReports(ctx, userID)
	if err != nil {
		t.Fatalf("list user reports: %v", err)
	}
	if len(mine) != 1 || mine[0].ID != report.ID {
		t.Fatalf("expected the created report in the user listing")
	}
}

func TestCreateReportValidation(t *testing.T) {
	db := openTestDB(t)
	defer db.Close()
	svc := NewService(db)
	ctx := context.Background()

	userID := registerTestUser(t, svc, "bob")
	if _, err := svc.CreateReport(ctx, userID, "", "desc"); err == nil {
		t.Fatalf("expected error for empty content type")
	}
	if _, err := svc.CreateReport(ctx, userID, "spam", "   "); err == nil {
		t.Fatalf("expected error for blank description")
	}
}

func TestUpdateReportStatus(t *testing.T) {
	db := openTestDB(t)
	defer db.Close()
	svc := NewService(db)
	ctx := context.Background()

	userID := registerTestUser(t, svc, "carol")
	report, err := svc.CreateReport(ctx, userID, "abuse", "harassing account")
	if err != nil {
		t.Fatalf("create report: %v", err)
	}

	if err := svc.UpdateReportStatus(ctx, report.ID, models.ReportReviewed); err != nil {
		t.Fatalf("update status: %v", err)
	}
	all, err := svc.ListReports(ctx)
	if err != nil {
		t.Fatalf("list reports: %v", err)
	}
	if len(all) != 1 || all[0].Status != models.ReportReviewed {
		t.Fatalf("expected reviewed status, got %+v", all)
	}

	if err := svc.UpdateReportStatus(ctx, report.ID, "escalated"); err == nil {
		t.Fatalf("expected error for unknown status")
	}
	if err := svc.UpdateReportStatus(ctx, 9999, models.ReportDismissed); !errors.Is(err, sql.ErrNoRows) {
		t.Fatalf("expected sql.ErrNoRows for missing report, got %v", err)
	}
}

package safety

import (
	"context"
	"fmt"
	"testing"
)

func registerTestUser(t *testing.T, svc *Service, name string) int64 {
	t.Helper()
	user, err := svc.RegisterUser(context.Background(), name, name+"@example.com", "pw")
	if err != nil {
		t.Fatalf("register %s: %v", name, err)
	}
	return user.ID
}

func TestRecordExchangeAndHistory(t *testing.T) {
	db := openTestDB(t)
	defer db.Close()
	svc := NewService(db)
	ctx := context.Background()

	userID := registerTestUser(t, svc, "alice")

	high := "high"
	first, err := svc.RecordExchange(ctx, userID, "misinformation", "forward this urgent otp", "analysis", &high)
	if err != nil {
		t.Fatalf("record first: %v", err)
	}
	if first.RiskLevel == nil || *first.RiskLevel != "high" {
		t.Fatalf("expected high risk level on stored exchange")
	}
	second, err := svc.RecordExchange(ctx, userID, "fraud", "help", "fraud advice", nil)
	if err != nil {
		t.Fatalf("record second: %v", err)
	}
	if second.RiskLevel != nil {
		t.Fatalf("risk level must be nil outside misinformation mode")
	}

	history, err := svc.History(ctx, userID)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("expected 2 exchanges, got %d", len(history))
	}
	// Newest first.
	if history[0].ID != second.ID || history[1].ID != first.ID {
		t.Fatalf("history not ordered newest-first: %v", []int64{history[0].ID, history[1].ID})
	}
}

func TestHistoryIsCappedAtFifty(t *testing.T) {
	db := openTestDB(t)
	defer db.Close()
	svc := NewService(db)
	ctx := context.Background()

	userID := registerTestUser(t, svc, "bob")
	for i := 0; i < historyLimit+5; i++ {
		if _, err := svc.RecordExchange(ctx, userID, "general", fmt.Sprintf("msg %d", i), "resp", nil); err != nil {
			t.Fatalf("record %d: %v", i, err)
		}
	}

	history, err := svc.History(ctx, userID)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(history) != historyLimit {
		t.Fatalf("expected %d exchanges, got %d", historyLimit, len(history))
	}
	if history[0].UserMessage != fmt.Sprintf("msg %d", historyLimit+4) {
		t.Fatalf("expected newest message first, got %q", history[0].UserMessage)
	}
}

func TestHistoryIsScopedToOwner(t *testing.T) {
	db := openTestDB(t)
	defer db.Close()
	svc := NewService(db)
	ctx := context.Background()

	alice := registerTestUser(t, svc, "alice")
	bob := registerTestUser(t, svc, "bob")
	if _, err := svc.RecordExchange(ctx, alice, "abuse", "question", "advice", nil); err != nil {
		t.Fatalf("record: %v", err)
	}

	history, err := svc.History(ctx, bob)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(history) != 0 {
		t.Fatalf("bob must not see alice's exchanges, got %d", len(history))
	}
}

func TestRecordExchangeValidation(t *testing.T) {
	db := openTestDB(t)
	defer db.Close()
	svc := NewService(db)
	ctx := context.Background()

	if _, err := svc.RecordExchange(ctx, 0, "general", "msg", "resp", nil); err == nil {
		t.Fatalf("expected error for missing user id")
	}
	userID := registerTestUser(t, svc, "carol")
	if _, err := svc.RecordExchange(ctx, userID, "general", "", "resp", nil); err == nil {
		t.Fatalf("expected error for empty message")
	}
}

package safety

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"safetybot/internal/storage"
)

func openTestDB(t *testing.T) *storage.DB {
	t.Helper()
	db, err := storage.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := storage.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func countUsers(t *testing.T, db *storage.DB) int {
	t.Helper()
	var count int
	if err := db.DB.QueryRow(`SELECT COUNT(*) FROM users`).Scan(&count); err != nil {
		t.Fatalf("count users: %v", err)
	}
	return count
}

func TestRegisterUserHashesPassword(t *testing.T) {
	db := openTestDB(t)
	defer db.Close()
	svc := NewService(db)
	ctx := context.Background()

	user, err := svc.RegisterUser(ctx, "alice", "Alice@Example.COM", "s3cret")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.ID <= 0 {
		t.Fatalf("expected positive user id")
	}
	if user.Email != "alice@example.com" {
		t.Fatalf("expected normalized email, got %q", user.Email)
	}
	if user.PasswordHash == "s3cret" {
		t.Fatalf("password stored in plaintext")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("s3cret")); err != nil {
		t.Fatalf("stored hash does not verify: %v", err)
	}
}

func TestRegisterUserRejectsDuplicates(t *testing.T) {
	db := openTestDB(t)
	defer db.Close()
	svc := NewService(db)
	ctx := context.Background()

	if _, err := svc.RegisterUser(ctx, "alice", "alice@example.com", "pw"); err != nil {
		t.Fatalf("first register: %v", err)
	}
	before := countUsers(t, db)

	_, err := svc.RegisterUser(ctx, "alice", "other@example.com", "pw")
	if !errors.Is(err, ErrUsernameTaken) {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}
	_, err = svc.RegisterUser(ctx, "bob", "alice@example.com", "pw")
	if !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
	if got := countUsers(t, db); got != before {
		t.Fatalf("users table changed on duplicate registration: %d -> %d", before, got)
	}
}

func TestLogin(t *testing.T) {
	db := openTestDB(t)
	defer db.Close()
	svc := NewService(db)
	ctx := context.Background()

	if _, err := svc.RegisterUser(ctx, "carol", "carol@example.com", "hunter2"); err != nil {
		t.Fatalf("register: %v", err)
	}

	user, err := svc.Login(ctx, "carol", "hunter2")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if user.Username != "carol" {
		t.Fatalf("unexpected user %q", user.Username)
	}

	if _, err := svc.Login(ctx, "carol", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for bad password, got %v", err)
	}
	if _, err := svc.Login(ctx, "nobody", "hunter2"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown user, got %v", err)
	}
}

func TestEnsureAdminUserIsIdempotent(t *testing.T) {
	db := openTestDB(t)
	defer db.Close()
	svc := NewService(db)
	ctx := context.Background()

	if err := svc.EnsureAdminUser(ctx, "admin123"); err != nil {
		t.Fatalf("seed admin: %v", err)
	}
	if err := svc.EnsureAdminUser(ctx, "different"); err != nil {
		t.Fatalf("second seed: %v", err)
	}
	if got := countUsers(t, db); got != 1 {
		t.Fatalf("expected a single admin user, got %d", got)
	}

	admin, err := svc.Login(ctx, "admin", "admin123")
	if err != nil {
		t.Fatalf("admin login: %v", err)
	}
	if !admin.IsAdmin {
		t.Fatalf("seeded admin must have the admin flag")
	}
}

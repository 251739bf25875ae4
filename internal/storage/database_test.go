package storage

import (
	"context"
	"testing"
	"time"
)

func TestOpenAndMigrateSQLite(t *testing.T) {
	db, err := Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer db.Close()

	if err := Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	// Idempotent.
	if err := Migrate(db); err != nil {
		t.Fatalf("second migrate: %v", err)
	}

	for _, table := range []string{"users", "chat_history", "reports", "user_tokens"} {
		var count int
		if err := db.DB.QueryRow(`SELECT COUNT(*) FROM ` + table).Scan(&count); err != nil {
			t.Fatalf("query %s: %v", table, err)
		}
		if count != 0 {
			t.Fatalf("expected empty %s, got %d rows", table, count)
		}
	}
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	if _, err := Open("oracle", "dsn"); err == nil {
		t.Fatalf("expected error for unknown driver")
	}
	if _, err := Open("sqlite3", ""); err == nil {
		t.Fatalf("expected error for empty dsn")
	}
}

func TestRebindForPostgres(t *testing.T) {
	pg := &DB{driver: "postgres"}
	got := pg.Rebind(`INSERT INTO reports (reference, user_id) VALUES (?, ?)`)
	want := `INSERT INTO reports (reference, user_id) VALUES ($1, $2)`
	if got != want {
		t.Fatalf("rebind mismatch:\n got %s\nwant %s", got, want)
	}

	lite := &DB{driver: "sqlite3"}
	q := `SELECT id FROM users WHERE username = ?`
	if lite.Rebind(q) != q {
		t.Fatalf("sqlite queries must pass through unchanged")
	}
}

func TestInsertIDReturnsGeneratedIDs(t *testing.T) {
	db, err := Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer db.Close()
	if err := Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	ctx := context.Background()
	first, err := db.InsertID(ctx,
		`INSERT INTO users (username, email, password_hash, is_admin, created_at) VALUES (?, ?, ?, 0, ?)`,
		"alice", "alice@example.com", "x", time.Now().UTC(),
	)
	if err != nil {
		t.Fatalf("first insert: %v", err)
	}
	if first <= 0 {
		t.Fatalf("expected positive id, got %d", first)
	}
	second, err := db.InsertID(ctx,
		`INSERT INTO users (username, email, password_hash, is_admin, created_at) VALUES (?, ?, ?, 0, ?)`,
		"bob", "bob@example.com", "x", time.Now().UTC(),
	)
	if err != nil {
		t.Fatalf("second insert: %v", err)
	}
	if second <= first {
		t.Fatalf("expected increasing ids, got %d then %d", first, second)
	}
}

func TestMysqlDSNEnsuresParseTime(t *testing.T) {
	cases := map[string]string{
		"user:pass@tcp(localhost:3306)/safety":                 "user:pass@tcp(localhost:3306)/safety?parseTime=true",
		"user:pass@tcp(localhost:3306)/safety?charset=utf8mb4": "user:pass@tcp(localhost:3306)/safety?charset=utf8mb4&parseTime=true",
		"user:pass@/safety?parseTime=false":                    "user:pass@/safety?parseTime=false",
	}
	for in, want := range cases {
		if got := mysqlDSN(in); got != want {
			t.Fatalf("mysqlDSN(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestNextReferenceIsUnique(t *testing.T) {
	a, b := NextReference(), NextReference()
	if a == "" || a == b {
		t.Fatalf("expected distinct non-empty references, got %q and %q", a, b)
	}
}

package store

import (
	"context"
	"testing"

	"github.com/erazemk/shramba/internal/db"
)

func TestGetJWTSecretGeneratesOnce(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	first, err := GetJWTSecret(ctx, database)
	if err != nil {
		t.Fatalf("GetJWTSecret: %v", err)
	}
	if first == "" {
		t.Fatal("expected non-empty secret")
	}

	second, err := GetJWTSecret(ctx, database)
	if err != nil {
		t.Fatalf("GetJWTSecret: %v", err)
	}
	if first != second {
		t.Error("expected secret to be stable across calls")
	}
}

func TestPairingCodeHash(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	hash, err := GetPairingCodeHash(ctx, database)
	if err != nil {
		t.Fatalf("GetPairingCodeHash: %v", err)
	}
	if hash != "" {
		t.Errorf("expected empty hash before setup, got %q", hash)
	}

	if err := SetPairingCodeHash(ctx, database, "bcrypt-hash"); err != nil {
		t.Fatalf("SetPairingCodeHash: %v", err)
	}

	hash, _ = GetPairingCodeHash(ctx, database)
	if hash != "bcrypt-hash" {
		t.Errorf("expected stored hash, got %q", hash)
	}
}

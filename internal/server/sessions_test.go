package server

import (
	"testing"
	"time"

	"brawlhalla-tracker/internal/domain"
)

func TestSessionStoreRedeem(t *testing.T) {
	store := newSessionStore(time.Minute)
	candidates := []domain.PlayerSearchResult{{Name: "gabe", BrawlhallaID: 900}}

	token, err := store.create(42, candidates)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if token == "" {
		t.Fatal("create returned empty token")
	}

	// Only the user the session was created for may redeem it.
	if _, ok := store.redeem(token, 99); ok {
		t.Error("redeem by a different user succeeded")
	}

	sess, ok := store.redeem(token, 42)
	if !ok {
		t.Fatal("redeem of fresh token failed")
	}
	if sess.userID != 42 || len(sess.candidates) != 1 {
		t.Errorf("session = %+v, want user 42 with one candidate", sess)
	}

	// Tokens are single-use.
	if _, ok := store.redeem(token, 42); ok {
		t.Error("second redeem of the same token succeeded")
	}
}

func TestSessionStoreExpiry(t *testing.T) {
	store := newSessionStore(-time.Second)

	token, err := store.create(42, nil)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, ok := store.redeem(token, 42); ok {
		t.Error("redeem of expired token succeeded")
	}
}

func TestSessionStoreUnknownToken(t *testing.T) {
	store := newSessionStore(time.Minute)
	if _, ok := store.redeem("nope", 42); ok {
		t.Error("redeem of unknown token succeeded")
	}
}

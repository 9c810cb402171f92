package sealer

import (
	"strings"
	"testing"
)

func TestRoundTrip(t *testing.T) {
	s, err := NewSealer("")
	if err != nil {
		t.Fatalf("NewSealer: %v", err)
	}

	token, err := s.CreateManageToken("booking-123", "guest@example.com")
	if err != nil {
		t.Fatalf("CreateManageToken: %v", err)
	}

	id, email, err := s.ParseManageToken(token)
	if err != nil {
		t.Fatalf("ParseManageToken: %v", err)
	}
	if id != "booking-123" || email != "guest@example.com" {
		t.Errorf("got %q/%q", id, email)
	}
}

func TestTokensAreUnique(t *testing.T) {
	s, _ := NewSealer("")

	a, _ := s.CreateManageToken("id", "e@example.com")
	b, _ := s.CreateManageToken("id", "e@example.com")

	if a == b {
		t.Error("tokens for the same payload must differ by nonce")
	}
}

func TestEmailWithColonsSurvives(t *testing.T) {
	s, _ := NewSealer("")

	token, _ := s.CreateManageToken("id-1", "weird:email@example.com")
	id, email, err := s.ParseManageToken(token)
	if err != nil {
		t.Fatalf("ParseManageToken: %v", err)
	}
	if id != "id-1" || email != "weird:email@example.com" {
		t.Errorf("got %q/%q", id, email)
	}
}

func TestTamperedTokenRejected(t *testing.T) {
	s, _ := NewSealer("")

	token, _ := s.CreateManageToken("id", "e@example.com")
	tampered := strings.Map(func(r rune) rune {
		if r == 'A' {
			return 'B'
		}
		return 'A'
	}, token)

	if _, _, err := s.ParseManageToken(tampered); err == nil {
		t.Error("expected tampered token to fail")
	}
}

func TestInvalidKey(t *testing.T) {
	if _, err := NewSealer("not-base64!!"); err == nil {
		t.Error("expected error for invalid base64 key")
	}
	if _, err := NewSealer("c2hvcnQ="); err == nil {
		t.Error("expected error for short key")
	}
}

package store

import (
	"context"
	"testing"
)

func TestFCMTokensWithEmulator(t *testing.T) {
	client := newEmulatorClient(t)
	ctx := context.Background()
	s := NewUserStore(client)

	tokens := s.Users.Doc("fcm-user").Collection("fcm_tokens")
	for id, tok := range map[string]string{"phone": "tok-1", "tablet": "tok-2", "old-phone": "tok-1", "blank": ""} {
		if _, err := tokens.Doc(id).Set(ctx, map[string]any{"fcm_token": tok}); err != nil {
			t.Fatalf("seed token: %v", err)
		}
	}

	got, err := s.FCMTokens(ctx, "fcm-user")
	if err != nil {
		t.Fatalf("FCMTokens error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 distinct tokens, got %v", got)
	}

	none, err := s.FCMTokens(ctx, "nobody")
	if err != nil || none == nil || len(none) != 0 {
		t.Fatalf("expected empty non-nil slice, got %v (%v)", none, err)
	}
}

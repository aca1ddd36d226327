package store

import (
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
)

func TestRedisSessionStoreLifecycle(t *testing.T) {
	redis := miniredis.RunT(t)
	s := NewRedisSessionStore(redis.Addr(), "", time.Minute)

	token, err := s.NewSession("profile-1")
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	id, ok, err := s.GetProfileIDByToken(token)
	if err != nil || !ok {
		t.Fatalf("resolve token: ok=%v err=%v", ok, err)
	}
	if id != "profile-1" {
		t.Fatalf("unexpected profile id %q", id)
	}

	if err := s.DeleteSession(token); err != nil {
		t.Fatalf("delete session: %v", err)
	}
	if _, ok, _ := s.GetProfileIDByToken(token); ok {
		t.Fatal("expected miss after delete")
	}
}

func TestRedisSessionStoreExpiry(t *testing.T) {
	redis := miniredis.RunT(t)
	s := NewRedisSessionStore(redis.Addr(), "", time.Second)

	token, err := s.NewSession("profile-2")
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	redis.FastForward(2 * time.Second)
	if _, ok, _ := s.GetProfileIDByToken(token); ok {
		t.Fatal("expected expired session")
	}
}

func TestJWTSessionStoreIssueAndVerify(t *testing.T) {
	s, err := NewJWTSessionStore("0123456789abcdef0123456789abcdef", time.Minute)
	if err != nil {
		t.Fatalf("new jwt store: %v", err)
	}
	token, err := s.NewSession("profile-3")
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	id, ok, err := s.GetProfileIDByToken(token)
	if err != nil || !ok {
		t.Fatalf("verify: ok=%v err=%v", ok, err)
	}
	if id != "profile-3" {
		t.Fatalf("unexpected subject %q", id)
	}

	if _, ok, _ := s.GetProfileIDByToken(token + "tampered"); ok {
		t.Fatal("tampered token must not verify")
	}
}

func TestJWTSessionStoreRejectsShortSecret(t *testing.T) {
	if _, err := NewJWTSessionStore("short", time.Minute); err == nil {
		t.Fatal("expected error for short secret")
	}
}

func TestJWTSessionStoreRejectsForeignSecret(t *testing.T) {
	a, _ := NewJWTSessionStore("0123456789abcdef0123456789abcdef", time.Minute)
	b, _ := NewJWTSessionStore("fedcba9876543210fedcba9876543210", time.Minute)
	token, err := a.NewSession("profile-4")
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	if _, ok, _ := b.GetProfileIDByToken(token); ok {
		t.Fatal("token signed with a different secret must not verify")
	}
}

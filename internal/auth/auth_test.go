package auth

import (
	"testing"
	"time"
)

func TestSignAndParseJWT(t *testing.T) {
	token, err := SignJWT(42, "test-secret", time.Hour)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	uid, err := ParseJWT(token, "test-secret")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if uid != 42 {
		t.Fatalf("expected user 42, got %d", uid)
	}
}

func TestParseJWT_WrongSecret(t *testing.T) {
	token, err := SignJWT(42, "test-secret", time.Hour)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := ParseJWT(token, "other-secret"); err == nil {
		t.Fatal("expected error for wrong secret")
	}
}

func TestResolve_AnonymousOnBadInput(t *testing.T) {
	if uid, ok := Resolve("", "test-secret"); ok || uid != 0 {
		t.Fatalf("empty token should be anonymous, got uid=%d ok=%v", uid, ok)
	}
	if uid, ok := Resolve("not-a-jwt", "test-secret"); ok || uid != 0 {
		t.Fatalf("garbage token should be anonymous, got uid=%d ok=%v", uid, ok)
	}

	expired, err := SignJWT(42, "test-secret", -time.Minute)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if uid, ok := Resolve(expired, "test-secret"); ok || uid != 0 {
		t.Fatalf("expired token should be anonymous, got uid=%d ok=%v", uid, ok)
	}
}

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("hunter2")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if !CheckPassword(hash, "hunter2") {
		t.Fatal("expected password to match")
	}
	if CheckPassword(hash, "wrong") {
		t.Fatal("expected mismatch for wrong password")
	}
}

package utils

import (
	"strings"
	"testing"
)

func TestGetHostname(t *testing.T) {
	hostname, err := GetHostname()
	if err != nil {
		t.Fatalf("GetHostname failed: %v", err)
	}
	if hostname == "" {
		t.Fatal("Expected non-empty hostname")
	}
}

func TestGetUsernameFallsBackToEnv(t *testing.T) {
	t.Setenv("USER", "ci-runner")

	username, err := GetUsername()
	if err != nil {
		t.Fatalf("GetUsername failed: %v", err)
	}
	if username == "" {
		t.Fatal("Expected non-empty username")
	}
}

func TestActor(t *testing.T) {
	t.Setenv(ActorEnv, "")

	actor := Actor()
	user, host, ok := strings.Cut(actor, "@")
	if !ok || user == "" || host == "" {
		t.Errorf("Actor() = %q, want user@host", actor)
	}
}

func TestActorOverride(t *testing.T) {
	t.Setenv(ActorEnv, "deploy-bot")

	if got := Actor(); got != "deploy-bot" {
		t.Errorf("Actor() = %q, want deploy-bot", got)
	}
}

package storage

import (
	"context"
	"io/ioutil"
	"path/filepath"
	"testing"

	"gitlab.com/BIC_Dev/reaction-role-manager/models"
)

func TestLoadMissingFileFailsOpen(t *testing.T) {
	ctx := context.Background()
	s := Load(ctx, filepath.Join(t.TempDir(), "store.json"))

	if _, ok := s.EmojiForRole(ctx, "role-1"); ok {
		t.Error("expected empty role emoji table")
	}

	if bindings := s.Bindings(ctx); len(bindings) != 0 {
		t.Errorf("expected empty binding table, got %d entries", len(bindings))
	}
}

func TestLoadCorruptFileFailsOpen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "store.json")

	if err := ioutil.WriteFile(path, []byte("not a json document"), 0644); err != nil {
		t.Fatalf("failed to write corrupt file: %v", err)
	}

	s := Load(ctx, path)

	if _, ok := s.EmojiForRole(ctx, "role-1"); ok {
		t.Error("expected empty role emoji table")
	}

	if bindings := s.Bindings(ctx); len(bindings) != 0 {
		t.Errorf("expected empty binding table, got %d entries", len(bindings))
	}
}

func TestRoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "store.json")

	s := Load(ctx, path)

	if err := s.SetRoleEmoji(ctx, "role-1", "🎉"); err != nil {
		t.Fatalf("SetRoleEmoji() error = %v", err)
	}
	if err := s.AppendBinding(ctx, "message-1", "channel-1", models.RoleBinding{Emoji: "🎉", RoleID: "role-1"}); err != nil {
		t.Fatalf("AppendBinding() error = %v", err)
	}
	if err := s.AppendBinding(ctx, "message-1", "channel-1", models.RoleBinding{Emoji: "⭐", RoleID: "role-2"}); err != nil {
		t.Fatalf("AppendBinding() error = %v", err)
	}

	reloaded := Load(ctx, path)

	emoji, ok := reloaded.EmojiForRole(ctx, "role-1")
	if !ok || emoji != "🎉" {
		t.Errorf("EmojiForRole() = %q, %v, want 🎉, true", emoji, ok)
	}

	bindings := reloaded.Bindings(ctx)["message-1"]
	if len(bindings) != 2 {
		t.Fatalf("expected 2 bindings after reload, got %d", len(bindings))
	}
	if bindings[0].RoleID != "role-1" || bindings[1].RoleID != "role-2" {
		t.Errorf("bindings out of insertion order: %+v", bindings)
	}

	channelID, ok := reloaded.ChannelForMessage(ctx, "message-1")
	if !ok || channelID != "channel-1" {
		t.Errorf("ChannelForMessage() = %q, %v, want channel-1, true", channelID, ok)
	}
}

func TestFindBindingFirstMatchWins(t *testing.T) {
	ctx := context.Background()
	s := Load(ctx, filepath.Join(t.TempDir(), "store.json"))

	s.AppendBinding(ctx, "message-1", "channel-1", models.RoleBinding{Emoji: "🎉", RoleID: "role-1"})
	s.AppendBinding(ctx, "message-1", "channel-1", models.RoleBinding{Emoji: "🎉", RoleID: "role-2"})

	binding, found := s.FindBinding(ctx, "message-1", "🎉")
	if !found {
		t.Fatal("expected a binding match")
	}
	if binding.RoleID != "role-1" {
		t.Errorf("FindBinding() role = %s, want earliest-inserted role-1", binding.RoleID)
	}

	if _, found := s.FindBinding(ctx, "message-1", "⭐"); found {
		t.Error("expected no match for unbound emoji")
	}

	if _, found := s.FindBinding(ctx, "message-2", "🎉"); found {
		t.Error("expected no match for unconfigured message")
	}
}

func TestWriteFailureKeepsMemoryAuthoritative(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "missing-dir", "store.json")

	s := Load(ctx, path)

	if err := s.SetRoleEmoji(ctx, "role-1", "🎉"); err == nil {
		t.Fatal("expected a write error for unwritable path")
	}

	emoji, ok := s.EmojiForRole(ctx, "role-1")
	if !ok || emoji != "🎉" {
		t.Errorf("in-memory state lost after failed flush: %q, %v", emoji, ok)
	}
}

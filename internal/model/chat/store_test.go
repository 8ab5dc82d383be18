package chat

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/ouwenyi03/Jay-Agent/internal/storage"
)

func TestNewTurnTimestampLayout(t *testing.T) {
	at := time.Date(2024, 3, 9, 7, 5, 1, 0, time.Local)
	turn := NewTurn("hi", "哎哟", at)

	if turn.Timestamp != "2024-03-09 07:05:01" {
		t.Fatalf("unexpected timestamp: %s", turn.Timestamp)
	}
}

func TestFileStoreSaveAndLoad(t *testing.T) {
	layout := storage.Layout{Root: t.TempDir()}
	if err := storage.Bootstrap(layout); err != nil {
		t.Fatalf("Bootstrap err: %v", err)
	}
	store := NewFileStore(layout)
	ctx := context.Background()

	turns := []Turn{{User: "你好", AI: "哎哟不错哦", Timestamp: "2024-01-01 10:00:00"}}
	if err := store.Save(ctx, DefaultConversationID, turns); err != nil {
		t.Fatalf("Save err: %v", err)
	}

	data, err := os.ReadFile(layout.ConversationFile(DefaultConversationID))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !strings.Contains(string(data), "哎哟不错哦") {
		t.Fatalf("expected non-ASCII text verbatim, got %s", data)
	}

	got, err := store.Load(ctx, DefaultConversationID)
	if err != nil {
		t.Fatalf("Load err: %v", err)
	}
	if len(got) != 1 || got[0] != turns[0] {
		t.Fatalf("unexpected turns: %+v", got)
	}
}

func TestFileStoreLoadCorruptFile(t *testing.T) {
	layout := storage.Layout{Root: t.TempDir()}
	if err := storage.Bootstrap(layout); err != nil {
		t.Fatalf("Bootstrap err: %v", err)
	}
	if err := os.WriteFile(layout.ConversationFile(DefaultConversationID), []byte("[{"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	if _, err := NewFileStore(layout).Load(context.Background(), DefaultConversationID); err == nil {
		t.Fatal("expected decode error for corrupt history")
	}
}

func TestFileStoreMissingConversationIsEmpty(t *testing.T) {
	layout := storage.Layout{Root: t.TempDir()}
	if err := storage.Bootstrap(layout); err != nil {
		t.Fatalf("Bootstrap err: %v", err)
	}

	turns, err := NewFileStore(layout).Load(context.Background(), "other")
	if err != nil {
		t.Fatalf("Load err: %v", err)
	}
	if len(turns) != 0 {
		t.Fatalf("expected empty history, got %d turns", len(turns))
	}
}

func TestFileStoreRejectsInvalidID(t *testing.T) {
	store := NewFileStore(storage.Layout{Root: t.TempDir()})

	for _, id := range []string{"", "../escape", "a/b", "x.json"} {
		if _, err := store.Load(context.Background(), id); !errors.Is(err, ErrInvalidConversationID) {
			t.Fatalf("Load(%q): expected ErrInvalidConversationID, got %v", id, err)
		}
		if err := store.Save(context.Background(), id, nil); !errors.Is(err, ErrInvalidConversationID) {
			t.Fatalf("Save(%q): expected ErrInvalidConversationID, got %v", id, err)
		}
	}
}

func TestMemoryStoreCopiesTurns(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	turns := []Turn{{User: "a", AI: "b"}}
	if err := store.Save(ctx, "c1", turns); err != nil {
		t.Fatalf("Save err: %v", err)
	}
	turns[0].User = "mutated"

	got, _ := store.Load(ctx, "c1")
	if got[0].User != "a" {
		t.Fatalf("store should not alias caller slice, got %s", got[0].User)
	}
}

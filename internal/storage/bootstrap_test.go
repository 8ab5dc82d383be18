package storage

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestBootstrapCreatesLayout(t *testing.T) {
	layout := Layout{Root: t.TempDir()}

	if err := Bootstrap(layout); err != nil {
		t.Fatalf("Bootstrap err: %v", err)
	}

	for _, dir := range []string{layout.PostsDir(), layout.ConversationsDir()} {
		info, err := os.Stat(dir)
		if err != nil {
			t.Fatalf("stat %s: %v", dir, err)
		}
		if !info.IsDir() {
			t.Fatalf("expected %s to be a directory", dir)
		}
	}

	for _, file := range []string{layout.PostsFile(), layout.ConversationFile(DefaultConversation)} {
		data, err := os.ReadFile(file)
		if err != nil {
			t.Fatalf("read %s: %v", file, err)
		}
		var items []any
		if err := json.Unmarshal(data, &items); err != nil {
			t.Fatalf("expected JSON array in %s: %v", file, err)
		}
		if len(items) != 0 {
			t.Fatalf("expected empty array in %s, got %d items", file, len(items))
		}
	}
}

func TestBootstrapIsIdempotent(t *testing.T) {
	layout := Layout{Root: t.TempDir()}
	if err := Bootstrap(layout); err != nil {
		t.Fatalf("first Bootstrap err: %v", err)
	}
	first := readFiles(t, layout)

	if err := Bootstrap(layout); err != nil {
		t.Fatalf("second Bootstrap err: %v", err)
	}
	second := readFiles(t, layout)

	for path, want := range first {
		if !bytes.Equal(second[path], want) {
			t.Fatalf("%s changed between runs: %q -> %q", path, want, second[path])
		}
	}
}

func TestBootstrapKeepsExistingContent(t *testing.T) {
	layout := Layout{Root: t.TempDir()}
	if err := os.MkdirAll(layout.ConversationsDir(), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	content := []byte(`[{"user":"hi","ai":"哎哟","timestamp":"2024-01-01 00:00:00"}]`)
	if err := os.WriteFile(layout.ConversationFile(DefaultConversation), content, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	if err := Bootstrap(layout); err != nil {
		t.Fatalf("Bootstrap err: %v", err)
	}

	got, err := os.ReadFile(layout.ConversationFile(DefaultConversation))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !bytes.Equal(got, content) {
		t.Fatalf("existing history was rewritten: %s", got)
	}
}

func TestBootstrapReplacesFileAtDirectoryPath(t *testing.T) {
	layout := Layout{Root: t.TempDir()}
	if err := os.WriteFile(layout.PostsDir(), []byte("not a dir"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	if err := Bootstrap(layout); err != nil {
		t.Fatalf("Bootstrap err: %v", err)
	}

	info, err := os.Stat(layout.PostsDir())
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if !info.IsDir() {
		t.Fatal("expected regular file to be replaced by a directory")
	}
	if _, err := os.Stat(layout.PostsFile()); err != nil {
		t.Fatalf("expected posts file after replacement: %v", err)
	}
}

func TestBootstrapRewritesZeroLengthFile(t *testing.T) {
	layout := Layout{Root: t.TempDir()}
	if err := os.MkdirAll(layout.PostsDir(), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(layout.PostsFile(), nil, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	if err := Bootstrap(layout); err != nil {
		t.Fatalf("Bootstrap err: %v", err)
	}

	got, err := os.ReadFile(layout.PostsFile())
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(got) != "[]" {
		t.Fatalf("expected empty array, got %q", got)
	}
}

func TestBootstrapFailsWhenStoreFileIsDirectory(t *testing.T) {
	layout := Layout{Root: t.TempDir()}
	if err := os.MkdirAll(layout.PostsFile(), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	if err := Bootstrap(layout); err == nil {
		t.Fatal("expected error when posts file path is a directory")
	}
}

func readFiles(t *testing.T, layout Layout) map[string][]byte {
	t.Helper()
	out := make(map[string][]byte)
	for _, file := range []string{layout.PostsFile(), layout.ConversationFile(DefaultConversation)} {
		data, err := os.ReadFile(file)
		if err != nil {
			t.Fatalf("read %s: %v", file, err)
		}
		out[filepath.Base(file)] = data
	}
	return out
}

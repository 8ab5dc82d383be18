package storage

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
)

// emptyArray is written to every store file that does not exist yet.
var emptyArray = []byte("[]")

// Bootstrap makes sure both store directories and both default store files
// exist. An entry occupying a directory path that is not a directory is
// removed and replaced. Any failure is returned so the caller can abort
// startup.
func Bootstrap(layout Layout) error {
	for _, dir := range []string{layout.PostsDir(), layout.ConversationsDir()} {
		if err := ensureDir(dir); err != nil {
			return err
		}
	}

	for _, file := range []string{layout.PostsFile(), layout.ConversationFile(DefaultConversation)} {
		if err := ensureArrayFile(file); err != nil {
			return err
		}
	}
	return nil
}

func ensureDir(path string) error {
	info, err := os.Stat(path)
	switch {
	case err == nil && info.IsDir():
		return nil
	case err == nil:
		log.Printf("[bootstrap] %s exists but is not a directory, replacing it", path)
		if err := os.Remove(path); err != nil {
			return fmt.Errorf("remove %s: %w", path, err)
		}
	case !errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("stat %s: %w", path, err)
	}

	if err := os.MkdirAll(path, 0o755); err != nil {
		return fmt.Errorf("create dir %s: %w", path, err)
	}
	return nil
}

// ensureArrayFile creates path containing an empty JSON array when it is
// missing or zero-length. Existing content is never touched.
func ensureArrayFile(path string) error {
	info, err := os.Stat(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("stat %s: %w", path, err)
	}
	if err == nil {
		if info.IsDir() {
			return fmt.Errorf("%s is a directory, expected a JSON file", path)
		}
		if info.Size() > 0 {
			return nil
		}
	}

	if err := os.WriteFile(path, emptyArray, 0o644); err != nil {
		return fmt.Errorf("init %s: %w", path, err)
	}
	log.Printf("[bootstrap] initialized %s", path)
	return nil
}

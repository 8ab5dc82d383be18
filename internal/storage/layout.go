package storage

import "path/filepath"

// DefaultConversation is the key of the single shared conversation.
const DefaultConversation = "default"

// Layout describes where the JSON stores live on disk.
type Layout struct {
	Root string
}

// PostsDir holds the persona post store.
func (l Layout) PostsDir() string {
	return filepath.Join(l.Root, "jay_data")
}

// ConversationsDir holds one JSON file per conversation.
func (l Layout) ConversationsDir() string {
	return filepath.Join(l.Root, "conversations")
}

// PostsFile returns the path of the persona post store.
func (l Layout) PostsFile() string {
	return filepath.Join(l.PostsDir(), "posts.json")
}

// ConversationFile returns the path of the transcript for the given conversation.
func (l Layout) ConversationFile(id string) string {
	return filepath.Join(l.ConversationsDir(), id+".json")
}

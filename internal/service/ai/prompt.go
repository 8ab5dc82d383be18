package ai

import (
	"fmt"
	"strings"

	"github.com/ouwenyi03/Jay-Agent/internal/model/chat"
	"github.com/ouwenyi03/Jay-Agent/internal/model/persona"
)

const (
	recentPostLimit  = 3
	historyTurnLimit = 5
)

// BuildPrompt composes the text sent as the user message to the model.
// Sections, in order: style guidance, the first three posts in store order,
// the last five turns (only when there is history), the new message, and the
// closing instruction. Nothing is truncated.
func BuildPrompt(profile persona.Profile, userMessage string, posts []persona.Post, history []chat.Turn) string {
	var builder strings.Builder

	builder.WriteString(profile.StyleGuide)
	builder.WriteString("\n\n")

	builder.WriteString(profile.ActivityHeader)
	builder.WriteString("\n")
	for _, post := range posts[:min(len(posts), recentPostLimit)] {
		builder.WriteString("- ")
		builder.WriteString(post.Content)
		builder.WriteString("\n")
	}

	if len(history) > 0 {
		builder.WriteString("\n")
		builder.WriteString(profile.HistoryHeader)
		builder.WriteString("\n")
		for _, turn := range history[max(0, len(history)-historyTurnLimit):] {
			builder.WriteString(fmt.Sprintf("%s：%s\n", profile.UserLabel, turn.User))
			builder.WriteString(fmt.Sprintf("%s：%s\n", profile.Name, turn.AI))
		}
	}

	builder.WriteString("\n")
	builder.WriteString(profile.MessageLead)
	builder.WriteString(userMessage)
	builder.WriteString("\n\n")
	builder.WriteString(profile.Trailer)

	return builder.String()
}

package application

import (
	"fmt"
	"strings"

	"github.com/oksasatya/moodwatch/internal/domain/entity"
)

// DefaultChatWindow is the number of prior messages included in a chat turn.
const DefaultChatWindow = 5

const chatPreamble = "You are a supportive, empathetic workplace wellbeing assistant. " +
	"Reply to the user's latest message in a warm, concise way. " +
	"If the user mentions self-harm or crisis, encourage them to contact local emergency services or a crisis line.\n\n"

// BuildChatContext renders the last window messages of history as role-tagged
// lines, followed by the new message. history must be chronological.
func BuildChatContext(history []entity.Message, newText string, window int) string {
	if window < 1 {
		window = DefaultChatWindow
	}
	if len(history) > window {
		history = history[len(history)-window:]
	}

	var b strings.Builder
	for _, m := range history {
		b.WriteString(roleOf(m))
		b.WriteString(": ")
		b.WriteString(m.Content)
		b.WriteByte('\n')
	}
	b.WriteString("User: ")
	b.WriteString(newText)
	return b.String()
}

func roleOf(m entity.Message) string {
	if m.IsBot {
		return "Assistant"
	}
	return "User"
}

// BuildAnalysisDirective embeds every mood, in the given order, into the
// analysis instruction. It never truncates.
func BuildAnalysisDirective(moods []entity.Mood) string {
	var b strings.Builder
	b.WriteString("You are an experienced mental health professional. ")
	b.WriteString("Please analyze the following mood tracking data and provide professional insights and recommendations:\n\n")
	b.WriteString("Mood History:\n")
	for _, m := range moods {
		b.WriteString(formatMood(m))
		b.WriteByte('\n')
	}
	b.WriteString(`
Please provide:
1. Pattern Analysis: Identify any patterns or trends in the mood data
2. Professional Insights: What might these patterns indicate about the person's mental well-being?
3. Recommendations: Suggest 2-3 specific, actionable steps they could take to maintain or improve their mental health
4. Areas of Concern: Note any concerning patterns that might need attention (if any)

Format your response in clear sections using markdown headings.`)
	return b.String()
}

func formatMood(m entity.Mood) string {
	line := fmt.Sprintf("Date: %s, Score: %d/10", m.Timestamp.UTC().Format("2006-01-02"), m.Score)
	if m.Note != nil && strings.TrimSpace(*m.Note) != "" {
		line += ", Note: " + *m.Note
	}
	return line
}

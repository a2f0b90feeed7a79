package dispatch

import (
	"fmt"
	"strings"

	"github.com/PancyStudios/PancyModGo/pkg/discord"
	"github.com/PancyStudios/PancyModGo/pkg/logger"
)

// ModerationFilter deletes messages containing a denylisted word
type ModerationFilter struct {
	platform discord.Platform
	words    []string
}

// NewModerationFilter creates a filter over words. Words are lowercased; empty entries are dropped.
func NewModerationFilter(platform discord.Platform, words []string) *ModerationFilter {
	clean := make([]string, 0, len(words))
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if w != "" {
			clean = append(clean, w)
		}
	}
	return &ModerationFilter{platform: platform, words: clean}
}

// Match returns the first denylisted word found in content
func (f *ModerationFilter) Match(content string) (string, bool) {
	lower := strings.ToLower(content)
	for _, w := range f.words {
		if strings.Contains(lower, w) {
			return w, true
		}
	}
	return "", false
}

// Check reports whether msg was blocked. A blocked message is deleted and its
// author gets a notice, even when the deletion fails.
func (f *ModerationFilter) Check(msg *discord.Message) bool {
	if msg.AuthorIsBot {
		return false
	}
	word, ok := f.Match(msg.Content)
	if !ok {
		return false
	}

	logger.Info(fmt.Sprintf("Mensaje %s de %s bloqueado por '%s'", msg.ID, msg.AuthorID, word), "AutoMod")

	if err := f.platform.DeleteMessage(msg.ChannelID, msg.ID); err != nil {
		logger.Error(fmt.Sprintf("No se pudo borrar el mensaje %s: %v", msg.ID, err), "AutoMod")
	}
	if _, err := f.platform.SendMessage(msg.ChannelID, msg.AuthorMention()+", please watch your language!"); err != nil {
		logger.Error(fmt.Sprintf("No se pudo enviar el aviso en %s: %v", msg.ChannelID, err), "AutoMod")
	}
	return true
}

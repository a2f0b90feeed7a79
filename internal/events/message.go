package events

import (
	"github.com/PancyStudios/PancyModGo/pkg/discord"
	"github.com/bwmarrin/discordgo"
)

// onMessageCreate is called when a new message is created
func (h *Handlers) onMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Message == nil || m.Author == nil {
		return
	}
	// DMs carry no guild; every feature is guild scoped
	if m.GuildID == "" {
		return
	}
	h.sink.SubmitMessage(discord.MessageFromEvent(m))
}

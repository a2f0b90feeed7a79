package events

import (
	"github.com/PancyStudios/PancyModGo/pkg/discord"
	"github.com/bwmarrin/discordgo"
)

// onReactionAdd is called when a reaction is added to a message
func (h *Handlers) onReactionAdd(s *discordgo.Session, r *discordgo.MessageReactionAdd) {
	if r.MessageReaction == nil || r.GuildID == "" {
		return
	}
	h.sink.SubmitReaction(discord.ReactionFromEvent(r.MessageReaction), true)
}

// onReactionRemove is called when a reaction is removed from a message
func (h *Handlers) onReactionRemove(s *discordgo.Session, r *discordgo.MessageReactionRemove) {
	if r.MessageReaction == nil || r.GuildID == "" {
		return
	}
	h.sink.SubmitReaction(discord.ReactionFromEvent(r.MessageReaction), false)
}

package events

import (
	"fmt"

	"github.com/PancyStudios/PancyModGo/pkg/logger"
	"github.com/bwmarrin/discordgo"
)

// onGuildCreate is called when a guild becomes available or the bot joins one
func (h *Handlers) onGuildCreate(s *discordgo.Session, g *discordgo.GuildCreate) {
	logger.Info(fmt.Sprintf("➕ Servidor disponible: %s (ID: %s)", g.Name, g.ID), "Guild")
	logger.Debug(fmt.Sprintf("   Miembros: %d | Canales: %d", g.MemberCount, len(g.Channels)), "Guild")
}

// onGuildDelete is called when the bot is removed from a server
func (h *Handlers) onGuildDelete(s *discordgo.Session, g *discordgo.GuildDelete) {
	logger.Info(fmt.Sprintf("➖ Bot removido del servidor ID: %s", g.ID), "Guild")
}

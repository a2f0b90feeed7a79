package utils

import (
	"fmt"

	"github.com/PancyStudios/PancyModGo/pkg/discord"
)

func (m *module) createStatusCommand() *discord.Command {
	return discord.NewCommand(
		"status",
		"Show the bot status and table sizes",
		category,
		m.statusHandler,
	)
}

func (m *module) statusHandler(ctx *discord.CommandContext) error {
	stats := m.deps.Store.Stats()
	games := 0
	if m.deps.Sessions != nil {
		games = len(m.deps.Sessions.Active())
	}

	return ctx.Reply(fmt.Sprintf(
		"📊 **Bot Status**\n"+
			"• Bot: 🟢 Online\n"+
			"• Servers: %d\n"+
			"• Warnings: %d (%d users)\n"+
			"• Custom commands: %d\n"+
			"• Reaction roles: %d\n"+
			"• Active games: %d",
		m.deps.Runtime.GuildCount(),
		stats.Warnings, stats.WarnedUsers,
		stats.CustomCommands,
		stats.Bindings,
		games,
	))
}

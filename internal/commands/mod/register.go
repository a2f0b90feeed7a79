// Package mod provides the moderation commands.
// Each command is in its own file.
package mod

import (
	"github.com/PancyStudios/PancyModGo/internal/dispatch"
	"github.com/PancyStudios/PancyModGo/pkg/discord"
	"github.com/PancyStudios/PancyModGo/pkg/state"
)

const footerText = "💫 - Developed by PancyStudios"

type module struct {
	store  *state.Store
	events dispatch.EventPublisher
}

// RegisterModCommands registers kick, ban, mute, unmute, warn, warnings and clearwarnings
func RegisterModCommands(handler *discord.CommandHandler, store *state.Store, events dispatch.EventPublisher) {
	m := &module{store: store, events: events}

	handler.RegisterCommand(m.createKickCommand())
	handler.RegisterCommand(m.createBanCommand())
	handler.RegisterCommand(m.createMuteCommand())
	handler.RegisterCommand(m.createUnmuteCommand())
	handler.RegisterCommand(m.createWarnCommand())
	handler.RegisterCommand(m.createWarningsCommand())
	handler.RegisterCommand(m.createClearWarningsCommand())
}

// publish reports a moderation action taken against target
func (m *module) publish(ctx *discord.CommandContext, action, targetID string, extra map[string]interface{}) {
	if m.events == nil {
		return
	}
	data := map[string]interface{}{
		"action":      action,
		"guildId":     ctx.Message.GuildID,
		"channelId":   ctx.Message.ChannelID,
		"moderatorId": ctx.Message.AuthorID,
		"targetId":    targetID,
	}
	for k, v := range extra {
		data[k] = v
	}
	m.events.PublishEvent("moderation", data)
}

func reasonArg(ctx *discord.CommandContext) string {
	return ctx.ArgOr("reason", "No reason provided")
}

var (
	userArg   = discord.Arg{Name: "user", Required: true}
	reasonOpt = discord.Arg{Name: "reason", Rest: true}
)

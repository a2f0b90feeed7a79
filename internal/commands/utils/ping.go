package utils

import (
	"fmt"

	"github.com/PancyStudios/PancyModGo/pkg/discord"
)

func (m *module) createPingCommand() *discord.Command {
	return discord.NewCommand(
		"ping",
		"Check the gateway latency",
		category,
		m.pingHandler,
	)
}

func (m *module) pingHandler(ctx *discord.CommandContext) error {
	return ctx.Reply(fmt.Sprintf("🏓 Pong! Latency: %dms", m.deps.Runtime.Latency().Milliseconds()))
}

package fun

import "github.com/PancyStudios/PancyModGo/pkg/discord"

func (m *module) createCoinflipCommand() *discord.Command {
	return discord.NewCommand(
		"coinflip",
		"Flip a coin",
		category,
		m.coinflipHandler,
	)
}

func (m *module) coinflipHandler(ctx *discord.CommandContext) error {
	return ctx.Reply("🪙 The coin landed on: **" + m.pick([]string{"Heads", "Tails"}) + "**!")
}

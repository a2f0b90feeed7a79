package fun

import (
	"fmt"

	"github.com/PancyStudios/PancyModGo/pkg/discord"
	"github.com/PancyStudios/PancyModGo/pkg/errors"
)

const defaultSides = 6

func (m *module) createDiceCommand() *discord.Command {
	return discord.NewCommand(
		"dice",
		"Roll a die (6 sides unless told otherwise)",
		category,
		m.diceHandler,
	).WithArgs(discord.Arg{Name: "sides"})
}

func (m *module) diceHandler(ctx *discord.CommandContext) error {
	sides, err := ctx.IntArg("sides", defaultSides)
	if err != nil {
		return err
	}
	if sides < 2 {
		return errors.Parse("❌ Dice must have at least 2 sides!")
	}
	return ctx.Reply(fmt.Sprintf("🎲 You rolled a **%d** (1-%d)", 1+m.intn(sides), sides))
}

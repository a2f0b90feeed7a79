// Package fun provides the meme, joke, 8ball, coinflip, dice and choose commands.
// Each command is in its own file.
package fun

import (
	"math/rand"

	"github.com/PancyStudios/PancyModGo/pkg/discord"
)

const category = "Fun"

type module struct {
	intn func(n int) int
}

// RegisterFunCommands registers the fun commands. intn picks every random value
// and must return a number in [0, n); nil uses math/rand.
func RegisterFunCommands(handler *discord.CommandHandler, intn func(n int) int) {
	if intn == nil {
		intn = rand.Intn
	}
	m := &module{intn: intn}

	handler.RegisterCommand(m.createMemeCommand())
	handler.RegisterCommand(m.createJokeCommand())
	handler.RegisterCommand(m.createEightBallCommand())
	handler.RegisterCommand(m.createCoinflipCommand())
	handler.RegisterCommand(m.createDiceCommand())
	handler.RegisterCommand(m.createChooseCommand())
}

func (m *module) pick(list []string) string {
	return list[m.intn(len(list))]
}

// Package games provides the trivia, guess-the-number and rock-paper-scissors commands.
package games

import (
	"math/rand"

	"github.com/PancyStudios/PancyModGo/internal/session"
	"github.com/PancyStudios/PancyModGo/pkg/discord"
)

const category = "Games"

type module struct {
	sessions *session.Manager
	intn     func(n int) int
}

// RegisterGameCommands registers trivia, gtn and rps. The interactive games run
// through sessions; intn picks the bot's rps move (nil uses math/rand).
func RegisterGameCommands(handler *discord.CommandHandler, sessions *session.Manager, intn func(n int) int) {
	if intn == nil {
		intn = rand.Intn
	}
	m := &module{sessions: sessions, intn: intn}

	handler.RegisterCommand(discord.NewCommand("trivia", "Answer a trivia question in 15 seconds", category, m.triviaHandler))
	handler.RegisterCommand(discord.NewCommand("gtn", "Guess the number between 1 and 100", category, m.guessHandler))
	handler.RegisterCommand(
		discord.NewCommand("rps", "Play rock, paper, scissors against the bot", category, m.rpsHandler).
			WithArgs(discord.Arg{Name: "rock/paper/scissors", Required: true}),
	)
}

// triviaHandler blocks until the game is over; the dispatcher runs each message on its own goroutine
func (m *module) triviaHandler(ctx *discord.CommandContext) error {
	m.sessions.Trivia(ctx.Message)
	return nil
}

func (m *module) guessHandler(ctx *discord.CommandContext) error {
	m.sessions.GuessNumber(ctx.Message)
	return nil
}

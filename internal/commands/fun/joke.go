package fun

import "github.com/PancyStudios/PancyModGo/pkg/discord"

var jokes = []string{
	"Why don't scientists trust atoms? Because they make up everything!",
	"What do you call a fake noodle? An impasta!",
	"Why did the scarecrow win an award? He was outstanding in his field!",
	"What do you call a bear with no teeth? A gummy bear!",
	"Why don't eggs tell jokes? They'd crack each other up!",
	"What did the ocean say to the beach? Nothing, it just waved!",
	"Why do programmers prefer dark mode? Because light attracts bugs!",
	"What's a computer's favorite snack? Microchips!",
	"Why was the math book sad? It had too many problems!",
	"What do you call a dinosaur that crashes his car? Tyrannosaurus Wrecks!",
}

func (m *module) createJokeCommand() *discord.Command {
	return discord.NewCommand(
		"joke",
		"Tell a random joke",
		category,
		m.jokeHandler,
	)
}

func (m *module) jokeHandler(ctx *discord.CommandContext) error {
	return ctx.Reply("😄 " + m.pick(jokes))
}

package fun

import (
	"fmt"

	"github.com/PancyStudios/PancyModGo/pkg/discord"
	"github.com/bwmarrin/discordgo"
)

var eightBallResponses = []string{
	"Yes, definitely!",
	"It is certain.",
	"Without a doubt.",
	"You may rely on it.",
	"As I see it, yes.",
	"Most likely.",
	"Outlook good.",
	"Signs point to yes.",
	"Reply hazy, try again.",
	"Ask again later.",
	"Better not tell you now.",
	"Cannot predict now.",
	"Concentrate and ask again.",
	"Don't count on it.",
	"My reply is no.",
	"My sources say no.",
	"Outlook not so good.",
	"Very doubtful.",
}

func (m *module) createEightBallCommand() *discord.Command {
	return discord.NewCommand(
		"8ball",
		"Ask the magic 8-ball a question",
		category,
		m.eightBallHandler,
	).WithArgs(discord.Arg{Name: "question", Required: true, Rest: true})
}

func (m *module) eightBallHandler(ctx *discord.CommandContext) error {
	_, err := ctx.ReplyEmbed(&discordgo.MessageEmbed{
		Title:       "🎱 Magic 8-Ball",
		Description: fmt.Sprintf("**Question:** %s\n**Answer:** %s", ctx.Arg("question"), m.pick(eightBallResponses)),
		Color:       0x9B59B6,
	})
	return err
}

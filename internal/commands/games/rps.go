package games

import (
	"fmt"
	"strings"

	"github.com/PancyStudios/PancyModGo/pkg/discord"
	"github.com/PancyStudios/PancyModGo/pkg/errors"
	"github.com/bwmarrin/discordgo"
)

var (
	moves     = []string{"rock", "paper", "scissors"}
	moveEmoji = map[string]string{"rock": "🪨", "paper": "📄", "scissors": "✂️"}
	beats     = map[string]string{"rock": "scissors", "paper": "rock", "scissors": "paper"}
)

func (m *module) rpsHandler(ctx *discord.CommandContext) error {
	choice := strings.ToLower(ctx.Arg("rock/paper/scissors"))
	if _, ok := beats[choice]; !ok {
		return errors.Parse("❌ Please choose rock, paper, or scissors!")
	}
	botChoice := moves[m.intn(len(moves))]

	_, err := ctx.ReplyEmbed(&discordgo.MessageEmbed{
		Title: "Rock, Paper, Scissors!",
		Description: fmt.Sprintf("You chose: %s **%s**\nI chose: %s **%s**\n\n%s",
			moveEmoji[choice], capitalize(choice), moveEmoji[botChoice], capitalize(botChoice), RPSResult(choice, botChoice)),
		Color: 0x2ECC71,
	})
	return err
}

// RPSResult returns the outcome line for the player's move against the bot's
func RPSResult(player, bot string) string {
	switch {
	case player == bot:
		return "It's a tie! 🤝"
	case beats[player] == bot:
		return "You win! 🎉"
	default:
		return "I win! 😎"
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

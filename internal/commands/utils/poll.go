package utils

import (
	"github.com/PancyStudios/PancyModGo/pkg/discord"
	"github.com/PancyStudios/PancyModGo/pkg/errors"
	"github.com/bwmarrin/discordgo"
)

var pollReactions = []string{"👍", "👎"}

func (m *module) createPollCommand() *discord.Command {
	return discord.NewCommand(
		"poll",
		"Start a yes/no poll",
		category,
		m.pollHandler,
	).WithArgs(discord.Arg{Name: "question", Required: true, Rest: true})
}

func (m *module) pollHandler(ctx *discord.CommandContext) error {
	author := ctx.Message.AuthorName
	if author == "" {
		author = ctx.Message.AuthorMention()
	}

	pollID, err := ctx.ReplyEmbed(&discordgo.MessageEmbed{
		Title:       "📊 Poll",
		Description: ctx.Arg("question"),
		Color:       0xF1C40F,
		Footer:      &discordgo.MessageEmbedFooter{Text: "Poll by " + author},
	})
	if err != nil {
		return errors.Platform("post the poll", err)
	}

	for _, emoji := range pollReactions {
		if err := ctx.Platform.AddReaction(ctx.Message.ChannelID, pollID, emoji); err != nil {
			return errors.Platform("add the poll reactions", err)
		}
	}
	return nil
}

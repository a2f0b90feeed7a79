package mod

import (
	"fmt"
	"strings"

	"github.com/PancyStudios/PancyModGo/pkg/discord"
	"github.com/bwmarrin/discordgo"
)

// Embed descriptions are capped at 4096 characters; long ledgers show the most recent entries.
const maxListedWarnings = 15

// createWarningsCommand creates the warnings command
func (m *module) createWarningsCommand() *discord.Command {
	return discord.NewCommand(
		"warnings",
		"List a member's warnings (defaults to you)",
		"Moderation",
		m.warningsHandler,
	).WithArgs(discord.Arg{Name: "user"})
}

func (m *module) warningsHandler(ctx *discord.CommandContext) error {
	member, err := ctx.MemberArgOrAuthor("user")
	if err != nil {
		return err
	}

	list := m.store.Warnings(member.User.ID)
	if len(list) == 0 {
		return ctx.Reply(fmt.Sprintf("%s has no warnings.", member.User.Mention()))
	}

	start := 0
	if len(list) > maxListedWarnings {
		start = len(list) - maxListedWarnings
	}

	var b strings.Builder
	for i := start; i < len(list); i++ {
		w := list[i]
		fmt.Fprintf(&b, "**Warning %d**\n> **Reason:** %s\n> **Date:** %s\n> **By:** %s\n> **ID:** %s\n\n",
			i+1, w.Reason, w.Timestamp.Format("2006-01-02"), w.ModeratorName, shortID(w.ID))
	}
	fmt.Fprintf(&b, "> 💫 - **Total warnings:** %d", len(list))

	embed := &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("⚠️ Warnings for %s", member.User.Username),
		Description: b.String(),
		Color:       0xFFA500, // Orange
		Footer: &discordgo.MessageEmbedFooter{
			Text: footerText,
		},
	}
	_, err = ctx.ReplyEmbed(embed)
	return err
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

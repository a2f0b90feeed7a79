package utils

import (
	"fmt"

	"github.com/PancyStudios/PancyModGo/pkg/discord"
	"github.com/PancyStudios/PancyModGo/pkg/errors"
	"github.com/bwmarrin/discordgo"
)

func (m *module) createServerInfoCommand() *discord.Command {
	return discord.NewCommand(
		"serverinfo",
		"Show information about this server",
		category,
		m.serverInfoHandler,
	)
}

func (m *module) serverInfoHandler(ctx *discord.CommandContext) error {
	guild, err := ctx.Platform.Guild(ctx.Message.GuildID)
	if err != nil {
		return errors.Resolution("❌ This command can only be used in a server.")
	}

	created := "Unknown"
	if t, err := discordgo.SnowflakeTimestamp(guild.ID); err == nil {
		created = t.Format("2006-01-02")
	}

	embed := &discordgo.MessageEmbed{
		Title: "📊 " + guild.Name,
		Color: 0x5865F2,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Owner", Value: "<@" + guild.OwnerID + ">", Inline: true},
			{Name: "Members", Value: fmt.Sprintf("%d", guild.MemberCount), Inline: true},
			{Name: "Created", Value: created, Inline: true},
			{Name: "Roles", Value: fmt.Sprintf("%d", len(guild.Roles)), Inline: true},
			{Name: "Channels", Value: fmt.Sprintf("%d", len(guild.Channels)), Inline: true},
		},
	}
	if guild.Icon != "" {
		embed.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: guild.IconURL("256")}
	}

	_, err = ctx.ReplyEmbed(embed)
	return err
}

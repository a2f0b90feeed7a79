// Package welcome provides the welcome channel commands.
package welcome

import (
	"github.com/PancyStudios/PancyModGo/internal/dispatch"
	"github.com/PancyStudios/PancyModGo/pkg/discord"
	"github.com/PancyStudios/PancyModGo/pkg/errors"
	"github.com/PancyStudios/PancyModGo/pkg/logger"
	"github.com/PancyStudios/PancyModGo/pkg/state"
	"github.com/bwmarrin/discordgo"
)

type module struct {
	store *state.Store
}

// RegisterWelcomeCommands registers setwelcome and testwelcome
func RegisterWelcomeCommands(handler *discord.CommandHandler, store *state.Store) {
	m := &module{store: store}

	handler.RegisterCommand(
		discord.NewCommand("setwelcome", "Set the channel new members are greeted in", "Welcome", m.setWelcomeHandler).
			WithArgs(discord.Arg{Name: "channel", Required: true}).
			WithUserPermissions(discordgo.PermissionManageGuild),
	)
	handler.RegisterCommand(
		discord.NewCommand("testwelcome", "Preview the welcome message with yourself", "Welcome", m.testWelcomeHandler),
	)
}

func (m *module) setWelcomeHandler(ctx *discord.CommandContext) error {
	channel, err := ctx.ChannelArg("channel")
	if err != nil {
		return err
	}
	m.store.SetWelcomeChannel(channel.ID)
	logger.Info("Canal de bienvenida configurado: "+channel.ID, "Welcome")
	return ctx.Reply("✅ Welcome channel set to <#" + channel.ID + ">")
}

func (m *module) testWelcomeHandler(ctx *discord.CommandContext) error {
	channelID, ok := m.store.WelcomeChannel()
	if !ok {
		return errors.Resolution("❌ Welcome channel not set! Use `" + ctx.Prefix() + "setwelcome #channel` first.")
	}
	if _, err := ctx.Platform.Channel(channelID); err != nil {
		return errors.Resolution("❌ Welcome channel not found!")
	}

	join := &discord.MemberJoin{
		GuildID:  ctx.Message.GuildID,
		UserID:   ctx.Message.AuthorID,
		Username: ctx.Message.AuthorName,
	}
	if member, err := ctx.Platform.Member(ctx.Message.GuildID, ctx.Message.AuthorID); err == nil && member.User != nil {
		join.AvatarURL = member.User.AvatarURL("256")
	}
	if created, err := discordgo.SnowflakeTimestamp(ctx.Message.AuthorID); err == nil {
		join.AccountCreatedAt = created
	}

	guildName, memberCount := "the server", 0
	if guild, err := ctx.Platform.Guild(ctx.Message.GuildID); err == nil {
		guildName, memberCount = guild.Name, guild.MemberCount
	}

	if _, err := ctx.Platform.SendEmbed(channelID, dispatch.WelcomeEmbed(guildName, memberCount, join)); err != nil {
		return errors.Platform("send the welcome message", err)
	}
	return ctx.Reply("✅ Test welcome message sent!")
}

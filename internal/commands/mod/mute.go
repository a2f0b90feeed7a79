// Package mod - mute and unmute commands
package mod

import (
	"fmt"
	"time"

	"github.com/PancyStudios/PancyModGo/pkg/discord"
	"github.com/PancyStudios/PancyModGo/pkg/errors"
	"github.com/bwmarrin/discordgo"
)

// createMuteCommand creates the mute command
func (m *module) createMuteCommand() *discord.Command {
	return discord.NewCommand(
		"mute",
		"Time out a member (default 10m, max 28d)",
		"Moderation",
		m.muteHandler,
	).WithArgs(userArg, discord.Arg{Name: "duration"}).
		WithUserPermissions(discordgo.PermissionModerateMembers)
}

// muteHandler handles the mute command
func (m *module) muteHandler(ctx *discord.CommandContext) error {
	member, err := ctx.MemberArg("user")
	if err != nil {
		return err
	}

	raw := ctx.ArgOr("duration", DefaultMuteDuration)
	duration, err := ParseDuration(raw)
	if err != nil {
		return err
	}

	until := time.Now().Add(duration)
	if err := ctx.Platform.SetMemberTimeout(ctx.Message.GuildID, member.User.ID, &until); err != nil {
		return errors.Platform("mute this user", err)
	}

	m.publish(ctx, "mute", member.User.ID, map[string]interface{}{
		"duration": duration.String(),
		"until":    until.UTC().Format(time.RFC3339),
	})
	return ctx.Reply(fmt.Sprintf("✅ %s has been muted for %s.", member.User.Mention(), raw))
}

// createUnmuteCommand creates the unmute command
func (m *module) createUnmuteCommand() *discord.Command {
	return discord.NewCommand(
		"unmute",
		"Lift a member's timeout",
		"Moderation",
		m.unmuteHandler,
	).WithArgs(userArg).
		WithUserPermissions(discordgo.PermissionModerateMembers)
}

// unmuteHandler handles the unmute command
func (m *module) unmuteHandler(ctx *discord.CommandContext) error {
	member, err := ctx.MemberArg("user")
	if err != nil {
		return err
	}

	if err := ctx.Platform.SetMemberTimeout(ctx.Message.GuildID, member.User.ID, nil); err != nil {
		return errors.Platform("unmute this user", err)
	}

	m.publish(ctx, "unmute", member.User.ID, nil)
	return ctx.Reply(fmt.Sprintf("✅ %s has been unmuted.", member.User.Mention()))
}

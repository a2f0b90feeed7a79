// Package mod - kick command
package mod

import (
	"fmt"

	"github.com/PancyStudios/PancyModGo/pkg/discord"
	"github.com/PancyStudios/PancyModGo/pkg/errors"
	"github.com/bwmarrin/discordgo"
)

// createKickCommand creates the kick command
func (m *module) createKickCommand() *discord.Command {
	return discord.NewCommand(
		"kick",
		"Kick a member from the server",
		"Moderation",
		m.kickHandler,
	).WithArgs(userArg, reasonOpt).
		WithUserPermissions(discordgo.PermissionKickMembers)
}

// kickHandler handles the kick command
func (m *module) kickHandler(ctx *discord.CommandContext) error {
	member, err := ctx.MemberArg("user")
	if err != nil {
		return err
	}
	reason := reasonArg(ctx)

	if err := ctx.Platform.KickMember(ctx.Message.GuildID, member.User.ID, reason); err != nil {
		return errors.Platform("kick this user", err)
	}

	m.publish(ctx, "kick", member.User.ID, map[string]interface{}{"reason": reason})
	return ctx.Reply(fmt.Sprintf("✅ %s has been kicked. Reason: %s", member.User.Mention(), reason))
}

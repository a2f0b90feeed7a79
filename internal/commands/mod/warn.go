// Package mod - warn command
package mod

import (
	"fmt"
	"time"

	"github.com/PancyStudios/PancyModGo/pkg/discord"
	"github.com/PancyStudios/PancyModGo/pkg/models"
	"github.com/bwmarrin/discordgo"
	"github.com/google/uuid"
)

// createWarnCommand creates the warn command
func (m *module) createWarnCommand() *discord.Command {
	return discord.NewCommand(
		"warn",
		"Warn a member",
		"Moderation",
		m.warnHandler,
	).WithArgs(userArg, reasonOpt).
		WithUserPermissions(discordgo.PermissionModerateMembers)
}

// warnHandler handles the warn command
func (m *module) warnHandler(ctx *discord.CommandContext) error {
	member, err := ctx.MemberArg("user")
	if err != nil {
		return err
	}
	reason := reasonArg(ctx)

	warning := models.Warning{
		ID:            uuid.NewString(),
		Reason:        reason,
		ModeratorID:   ctx.Message.AuthorID,
		ModeratorName: ctx.Message.AuthorName,
		Timestamp:     time.Now(),
	}
	total := m.store.AppendWarning(member.User.ID, warning)

	m.publish(ctx, "warn", member.User.ID, map[string]interface{}{
		"reason":    reason,
		"warningId": warning.ID,
		"total":     total,
	})
	return ctx.Reply(fmt.Sprintf("⚠️ %s has been warned. Reason: %s\nTotal warnings: %d", member.User.Mention(), reason, total))
}

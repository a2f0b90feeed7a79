package dispatch

import (
	"fmt"

	"github.com/PancyStudios/PancyModGo/pkg/discord"
	"github.com/PancyStudios/PancyModGo/pkg/logger"
	"github.com/PancyStudios/PancyModGo/pkg/state"
)

// ReactionRoles grants and revokes roles bound to (message, emoji) pairs
type ReactionRoles struct {
	platform discord.Platform
	store    *state.Store
	events   EventPublisher
}

// NewReactionRoles creates the reaction-role synchronizer
func NewReactionRoles(platform discord.Platform, store *state.Store, events EventPublisher) *ReactionRoles {
	return &ReactionRoles{platform: platform, store: store, events: events}
}

// Handle applies a reaction event: added grants the bound role, removed revokes it.
// Unbound reactions and unresolvable members or roles are ignored.
func (r *ReactionRoles) Handle(reaction *discord.Reaction, added bool) {
	if reaction.UserID == r.platform.SelfID() {
		return
	}

	roleID, ok := r.store.Binding(reaction.MessageID, reaction.Emoji)
	if !ok {
		return
	}

	if _, err := r.platform.Role(reaction.GuildID, roleID); err != nil {
		logger.Debug(fmt.Sprintf("Rol %s no encontrado para %s/%s", roleID, reaction.MessageID, reaction.Emoji), "ReactionRoles")
		return
	}
	if _, err := r.platform.Member(reaction.GuildID, reaction.UserID); err != nil {
		logger.Debug(fmt.Sprintf("Miembro %s no encontrado en %s", reaction.UserID, reaction.GuildID), "ReactionRoles")
		return
	}

	action := "grant"
	var err error
	if added {
		err = r.platform.GrantRole(reaction.GuildID, reaction.UserID, roleID)
	} else {
		action = "revoke"
		err = r.platform.RevokeRole(reaction.GuildID, reaction.UserID, roleID)
	}
	if err != nil {
		logger.Error(fmt.Sprintf("Error en %s del rol %s para %s: %v", action, roleID, reaction.UserID, err), "ReactionRoles")
		return
	}

	logger.Debug(fmt.Sprintf("Rol %s (%s) para %s", roleID, action, reaction.UserID), "ReactionRoles")
	publish(r.events, "reaction_role", map[string]interface{}{
		"action":    action,
		"guildId":   reaction.GuildID,
		"userId":    reaction.UserID,
		"roleId":    roleID,
		"messageId": reaction.MessageID,
		"emoji":     reaction.Emoji,
	})
}

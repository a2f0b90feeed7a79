package discord

import "github.com/bwmarrin/discordgo"

// permissionNames holds the display names of the permissions commands may require
var permissionNames = map[int64]string{
	discordgo.PermissionKickMembers:     "Kick Members",
	discordgo.PermissionBanMembers:      "Ban Members",
	discordgo.PermissionModerateMembers: "Moderate Members",
	discordgo.PermissionManageGuild:     "Manage Server",
	discordgo.PermissionManageRoles:     "Manage Roles",
	discordgo.PermissionManageMessages:  "Manage Messages",
	discordgo.PermissionAdministrator:   "Administrator",
}

// PermissionName returns the display name of a permission bit
func PermissionName(permission int64) string {
	if name, ok := permissionNames[permission]; ok {
		return name
	}
	return "required"
}

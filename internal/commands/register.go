// Package commands provides a registry for organizing bot commands.
// Commands are organized in subdirectories by category (mod, custom, roles, utils...).
package commands

import (
	"fmt"

	"github.com/PancyStudios/PancyModGo/internal/commands/custom"
	"github.com/PancyStudios/PancyModGo/internal/commands/fun"
	"github.com/PancyStudios/PancyModGo/internal/commands/games"
	"github.com/PancyStudios/PancyModGo/internal/commands/mod"
	"github.com/PancyStudios/PancyModGo/internal/commands/roles"
	"github.com/PancyStudios/PancyModGo/internal/commands/utils"
	"github.com/PancyStudios/PancyModGo/internal/commands/welcome"
	"github.com/PancyStudios/PancyModGo/internal/dispatch"
	"github.com/PancyStudios/PancyModGo/internal/session"
	"github.com/PancyStudios/PancyModGo/pkg/discord"
	"github.com/PancyStudios/PancyModGo/pkg/logger"
	"github.com/PancyStudios/PancyModGo/pkg/state"
)

// Dependencies holds everything the command modules act on
type Dependencies struct {
	Store    *state.Store
	Sessions *session.Manager
	Events   dispatch.EventPublisher
	Runtime  utils.Runtime
	Counter  utils.EventCounter
}

// RegisterAll registers all commands with the command handler
func RegisterAll(handler *discord.CommandHandler, deps Dependencies) {
	// Moderation (kick, ban, mute, unmute, warn, warnings, clearwarnings)
	mod.RegisterModCommands(handler, deps.Store, deps.Events)

	// Groups: !cc add/remove/list, !rr setup/add/remove
	custom.RegisterCustomCommands(handler, deps.Store)
	roles.RegisterRoleCommands(handler, deps.Store)

	welcome.RegisterWelcomeCommands(handler, deps.Store)
	fun.RegisterFunCommands(handler, nil)
	games.RegisterGameCommands(handler, deps.Sessions, nil)

	utils.RegisterUtilsCommands(handler, utils.Deps{
		Runtime:  deps.Runtime,
		Store:    deps.Store,
		Sessions: deps.Sessions,
		Events:   deps.Counter,
	})

	logger.System(fmt.Sprintf("%d comandos registrados", handler.Commands().Size()), "Commands")
}

// Package utils provides the help, information and runtime status commands.
package utils

import (
	"time"

	"github.com/PancyStudios/PancyModGo/pkg/discord"
	"github.com/PancyStudios/PancyModGo/pkg/models"
	"github.com/PancyStudios/PancyModGo/pkg/state"
)

const (
	category   = "Utility"
	footerText = "💫 - Developed by PancyStudios"
)

// Runtime exposes the gateway connection figures shown by ping and stats
type Runtime interface {
	Latency() time.Duration
	GuildCount() int
	Uptime() time.Duration
}

// SessionLister lists the games in progress
type SessionLister interface {
	Active() []models.GameSession
}

// EventCounter reports how many gateway events were dispatched
type EventCounter interface {
	Processed() int64
}

// Deps holds what the utility commands report on
type Deps struct {
	Runtime  Runtime
	Store    *state.Store
	Sessions SessionLister
	Events   EventCounter
}

type module struct {
	handler *discord.CommandHandler
	deps    Deps
}

// RegisterUtilsCommands registers help, ping, stats, status, serverinfo, userinfo and poll
func RegisterUtilsCommands(handler *discord.CommandHandler, deps Deps) {
	m := &module{handler: handler, deps: deps}

	handler.RegisterCommand(m.createHelpCommand())
	handler.RegisterCommand(m.createPingCommand())
	handler.RegisterCommand(m.createStatsCommand())
	handler.RegisterCommand(m.createStatusCommand())
	handler.RegisterCommand(m.createServerInfoCommand())
	handler.RegisterCommand(m.createUserInfoCommand())
	handler.RegisterCommand(m.createPollCommand())
}

package dispatch

import (
	"fmt"

	"github.com/PancyStudios/PancyModGo/pkg/discord"
	"github.com/PancyStudios/PancyModGo/pkg/logger"
	"github.com/PancyStudios/PancyModGo/pkg/state"
)

// CustomCommands answers prefix invocations of stored custom commands
type CustomCommands struct {
	platform discord.Platform
	store    *state.Store
	router   *discord.CommandHandler
}

// NewCustomCommands creates the custom command stage
func NewCustomCommands(platform discord.Platform, store *state.Store, router *discord.CommandHandler) *CustomCommands {
	return &CustomCommands{platform: platform, store: store, router: router}
}

// Handle sends the stored response and reports whether msg invoked a custom command
func (c *CustomCommands) Handle(msg *discord.Message) bool {
	name, ok := c.router.InvokedName(msg.Content)
	if !ok {
		return false
	}
	response, ok := c.store.CustomCommand(name)
	if !ok {
		return false
	}

	if _, err := c.platform.SendMessage(msg.ChannelID, response); err != nil {
		logger.Error(fmt.Sprintf("Error enviando comando personalizado %s: %v", name, err), "CustomCommands")
	}
	return true
}

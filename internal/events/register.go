// Package events provides a registry for organizing bot events.
// Events are organized by category (guild, member, message, reaction...)
// and every inbound event is converted and handed to the dispatcher.
package events

import (
	"github.com/PancyStudios/PancyModGo/pkg/discord"
	"github.com/PancyStudios/PancyModGo/pkg/logger"
)

// Sink receives the converted gateway events. *dispatch.Dispatcher implements it.
type Sink interface {
	SubmitMessage(msg *discord.Message)
	SubmitReaction(reaction *discord.Reaction, added bool)
	SubmitMemberJoin(join *discord.MemberJoin)
}

// Handlers holds the gateway event handlers
type Handlers struct {
	sink   Sink
	status string
}

// NewHandlers creates the gateway handlers; status is the presence shown once ready
func NewHandlers(sink Sink, status string) *Handlers {
	return &Handlers{sink: sink, status: status}
}

// RegisterAll registers all events with the Discord client
func RegisterAll(client *discord.ExtendedClient, sink Sink, prefix string) {
	logger.System("📋 Registrando eventos del bot...", "Events")

	h := NewHandlers(sink, prefix+"help for commands")

	// Ready event (bot startup)
	client.EventHandler.OnReady(h.onReady)

	// Guild events (server join/leave)
	client.EventHandler.OnGuildCreate(h.onGuildCreate)
	client.EventHandler.OnGuildDelete(h.onGuildDelete)

	// Member events (join)
	client.EventHandler.OnGuildMemberAdd(h.onGuildMemberAdd)

	// Message events (create)
	client.EventHandler.OnMessageCreate(h.onMessageCreate)

	// Shard events (gateway disconnect/resume)
	client.EventHandler.RegisterEvent(h.onShardDisconnect)
	client.EventHandler.RegisterEvent(h.onShardResumed)

	// Reaction events (reaction roles)
	client.EventHandler.OnMessageReactionAdd(h.onReactionAdd)
	client.EventHandler.OnMessageReactionRemove(h.onReactionRemove)

	logger.Success("✅ Todos los eventos registrados correctamente", "Events")
}

// Package dispatch routes gateway events through the moderation and command pipeline.
//
// Every message passes, in order: the bot-author guard, the moderation filter,
// pending session waiters, custom commands and finally the command router. The
// first stage that consumes a message stops the pipeline.
package dispatch

import (
	"sync"
	"sync/atomic"

	"github.com/PancyStudios/PancyModGo/pkg/discord"
	"github.com/PancyStudios/PancyModGo/pkg/errors"
	"github.com/PancyStudios/PancyModGo/pkg/state"
)

// EventPublisher receives runtime events for external observers
type EventPublisher interface {
	PublishEvent(kind string, data map[string]interface{})
}

func publish(events EventPublisher, kind string, data map[string]interface{}) {
	if events != nil {
		events.PublishEvent(kind, data)
	}
}

// Dispatcher is the entry point for inbound events
type Dispatcher struct {
	Filter    *ModerationFilter
	Waiters   *Waiters
	Custom    *CustomCommands
	Router    *discord.CommandHandler
	Reactions *ReactionRoles
	Welcome   *Welcomer

	events    EventPublisher
	wg        sync.WaitGroup
	processed atomic.Int64
}

// Options configures a Dispatcher
type Options struct {
	Platform discord.Platform
	Store    *state.Store
	Router   *discord.CommandHandler
	Waiters  *Waiters
	BadWords []string
	Events   EventPublisher
}

// New wires the pipeline stages
func New(opts Options) *Dispatcher {
	waiters := opts.Waiters
	if waiters == nil {
		waiters = NewWaiters()
	}
	return &Dispatcher{
		Filter:    NewModerationFilter(opts.Platform, opts.BadWords),
		Waiters:   waiters,
		Custom:    NewCustomCommands(opts.Platform, opts.Store, opts.Router),
		Router:    opts.Router,
		Reactions: NewReactionRoles(opts.Platform, opts.Store, opts.Events),
		Welcome:   NewWelcomer(opts.Platform, opts.Store),
		events:    opts.Events,
	}
}

// SubmitMessage handles msg on its own goroutine
func (d *Dispatcher) SubmitMessage(msg *discord.Message) {
	d.submit(func() { d.HandleMessage(msg) })
}

// SubmitReaction handles a reaction event on its own goroutine
func (d *Dispatcher) SubmitReaction(reaction *discord.Reaction, added bool) {
	d.submit(func() { d.Reactions.Handle(reaction, added) })
}

// SubmitMemberJoin handles a member join on its own goroutine
func (d *Dispatcher) SubmitMemberJoin(join *discord.MemberJoin) {
	d.submit(func() { d.Welcome.Handle(join) })
}

func (d *Dispatcher) submit(fn func()) {
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		defer errors.RecoverMiddleware()()
		fn()
		d.processed.Add(1)
	}()
}

// HandleMessage runs the message pipeline synchronously
func (d *Dispatcher) HandleMessage(msg *discord.Message) {
	if msg.AuthorIsBot {
		return
	}
	if d.Filter.Check(msg) {
		publish(d.events, "automod", map[string]interface{}{
			"guildId":   msg.GuildID,
			"channelId": msg.ChannelID,
			"userId":    msg.AuthorID,
		})
		return
	}
	if d.Waiters.Offer(msg) {
		return
	}
	if d.Custom.Handle(msg) {
		return
	}
	d.Router.Handle(msg)
}

// Wait blocks until every submitted event has been handled
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

// Processed returns the number of events handled to completion
func (d *Dispatcher) Processed() int64 {
	return d.processed.Load()
}

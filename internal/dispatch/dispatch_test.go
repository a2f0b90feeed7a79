package dispatch

import (
	"context"
	stderrors "errors"
	"sync"
	"testing"
	"time"

	"github.com/PancyStudios/PancyModGo/pkg/discord"
	"github.com/PancyStudios/PancyModGo/pkg/discord/discordtest"
	"github.com/PancyStudios/PancyModGo/pkg/state"
	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

type recordedEvent struct {
	kind string
	data map[string]interface{}
}

type eventRecorder struct {
	mu     sync.Mutex
	events []recordedEvent
}

func (r *eventRecorder) PublishEvent(kind string, data map[string]interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, recordedEvent{kind: kind, data: data})
}

func (r *eventRecorder) kinds() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.kind)
	}
	return out
}

type fixture struct {
	platform *discordtest.Platform
	store    *state.Store
	router   *discord.CommandHandler
	events   *eventRecorder
	d        *Dispatcher
}

func newFixture() *fixture {
	p := discordtest.New()
	store := state.New()
	router := discord.NewCommandHandler(p, "!")
	events := &eventRecorder{}
	d := New(Options{
		Platform: p,
		Store:    store,
		Router:   router,
		BadWords: []string{"badword1", "  ", "BadWord2"},
		Events:   events,
	})
	return &fixture{platform: p, store: store, router: router, events: events, d: d}
}

func msg(content string) *discord.Message {
	return &discord.Message{ID: "m1", ChannelID: "c1", GuildID: "g1", AuthorID: "u1", AuthorName: "alice", Content: content}
}

func TestFilterDeletesAndWarns(t *testing.T) {
	f := newFixture()

	f.d.HandleMessage(msg("this has BADWORD2 inside"))

	assert.Equal(t, []string{"m1"}, f.platform.Deleted())
	assert.Equal(t, []string{"<@u1>, please watch your language!"}, f.platform.Contents())
	assert.Equal(t, []string{"automod"}, f.events.kinds())
}

func TestFilterNoticeSentWhenDeleteFails(t *testing.T) {
	f := newFixture()
	f.platform.Fail["delete"] = stderrors.New("Missing Permissions")

	f.d.HandleMessage(msg("badword1"))

	assert.Empty(t, f.platform.Deleted())
	assert.Equal(t, []string{"<@u1>, please watch your language!"}, f.platform.Contents())
}

func TestBotAuthorsPassThrough(t *testing.T) {
	f := newFixture()
	f.store.SetCustomCommand("rules", "be nice")

	m := msg("!rules badword1")
	m.AuthorIsBot = true
	f.d.HandleMessage(m)

	assert.Empty(t, f.platform.Sent())
	assert.Empty(t, f.platform.Deleted())
}

func TestFilterPrecedesCustomCommands(t *testing.T) {
	f := newFixture()
	f.store.SetCustomCommand("badword1", "should never be sent")

	f.d.HandleMessage(msg("!badword1"))

	assert.Equal(t, []string{"m1"}, f.platform.Deleted())
	assert.Equal(t, []string{"<@u1>, please watch your language!"}, f.platform.Contents())
}

func TestCustomCommandsAreCaseInsensitiveAndTakePrecedence(t *testing.T) {
	f := newFixture()
	builtin := 0
	f.router.RegisterCommand(discord.NewCommand("rules", "", "test", func(ctx *discord.CommandContext) error {
		builtin++
		return nil
	}))
	f.store.SetCustomCommand("Rules", "Be nice.")

	f.d.HandleMessage(msg("!rules"))
	f.d.HandleMessage(msg("!RULES please"))
	f.d.HandleMessage(msg("rules"))

	assert.Equal(t, []string{"Be nice.", "Be nice."}, f.platform.Contents())
	assert.Equal(t, 0, builtin)
}

func TestUnknownCommandIsSilent(t *testing.T) {
	f := newFixture()

	f.d.HandleMessage(msg("!doesnotexist"))

	assert.Empty(t, f.platform.Sent())
}

func TestWaiterConsumesMessageBeforeCommands(t *testing.T) {
	defer goleak.VerifyNone(t)
	f := newFixture()
	f.store.SetCustomCommand("paris", "custom")

	done := make(chan WaitResult, 1)
	go func() {
		done <- f.d.Waiters.Wait(context.Background(), func(m *discord.Message) bool {
			return m.AuthorID == "u1" && m.ChannelID == "c1"
		}, time.Second)
	}()
	require.Eventually(t, func() bool { return f.d.Waiters.Len() == 1 }, time.Second, time.Millisecond)

	f.d.HandleMessage(msg("!paris"))

	res := <-done
	assert.Equal(t, Answered, res.Status)
	assert.Equal(t, "!paris", res.Message.Content)
	assert.Empty(t, f.platform.Sent(), "a consumed answer reaches no later stage")
}

func TestSubmitRunsEventsConcurrently(t *testing.T) {
	defer goleak.VerifyNone(t)
	f := newFixture()
	f.store.SetCustomCommand("ping", "pong")

	go f.d.Waiters.Wait(context.Background(), func(m *discord.Message) bool { return m.ChannelID == "game" }, 200*time.Millisecond)
	require.Eventually(t, func() bool { return f.d.Waiters.Len() == 1 }, time.Second, time.Millisecond)

	for i := 0; i < 10; i++ {
		f.d.SubmitMessage(msg("!ping"))
	}
	f.d.Wait()

	assert.Len(t, f.platform.Contents(), 10)
	assert.Equal(t, int64(10), f.d.Processed())
	require.Eventually(t, func() bool { return f.d.Waiters.Len() == 0 }, time.Second, time.Millisecond)
}

func TestSubmitRecoversPanics(t *testing.T) {
	defer goleak.VerifyNone(t)
	f := newFixture()
	f.router.RegisterCommand(discord.NewCommand("x", "", "test", func(ctx *discord.CommandContext) error {
		return nil
	}))
	f.d.Custom = nil // nil stage panics inside the goroutine

	f.d.SubmitMessage(msg("!x"))
	f.d.Wait()

	assert.Equal(t, int64(0), f.d.Processed())
}

func bindFixture(t *testing.T) *fixture {
	t.Helper()
	f := newFixture()
	f.platform.AddMember("g1", "u2", "bob")
	f.platform.AddRole("g1", "r1", "Gamer")
	f.store.SetBinding("msg", "👍", "r1")
	return f
}

func reaction(user, emoji string) *discord.Reaction {
	return &discord.Reaction{MessageID: "msg", ChannelID: "c1", GuildID: "g1", UserID: user, Emoji: emoji}
}

func TestReactionRoleRoundTrip(t *testing.T) {
	f := bindFixture(t)

	f.d.Reactions.Handle(reaction("u2", "👍"), true)
	f.d.Reactions.Handle(reaction("u2", "👍"), false)
	f.store.DeleteBinding("msg", "👍")
	f.d.Reactions.Handle(reaction("u2", "👍"), true)

	assert.Equal(t, []discordtest.RoleChange{
		{GuildID: "g1", UserID: "u2", RoleID: "r1", Granted: true},
		{GuildID: "g1", UserID: "u2", RoleID: "r1", Granted: false},
	}, f.platform.RoleChanges())
	assert.Equal(t, []string{"reaction_role", "reaction_role"}, f.events.kinds())
}

func TestReactionRoleIgnores(t *testing.T) {
	f := bindFixture(t)

	f.d.Reactions.Handle(reaction("bot", "👍"), true)   // self
	f.d.Reactions.Handle(reaction("u2", "👎"), true)    // unbound emoji
	f.d.Reactions.Handle(reaction("ghost", "👍"), true) // member left

	f.store.SetBinding("msg", "🎉", "deleted-role")
	f.d.Reactions.Handle(reaction("u2", "🎉"), true) // role deleted

	assert.Empty(t, f.platform.RoleChanges())
	assert.Empty(t, f.platform.Sent())
}

func TestReactionRoleFailureIsNotSurfaced(t *testing.T) {
	f := bindFixture(t)
	f.platform.Fail["grant"] = stderrors.New("Missing Access")

	f.d.Reactions.Handle(reaction("u2", "👍"), true)

	assert.Empty(t, f.platform.RoleChanges())
	assert.Empty(t, f.platform.Sent())
	assert.Empty(t, f.events.kinds())
}

func TestWelcome(t *testing.T) {
	f := newFixture()
	join := &discord.MemberJoin{GuildID: "g1", UserID: "u9", Username: "newbie", AccountCreatedAt: time.Date(2020, 5, 17, 0, 0, 0, 0, time.UTC)}

	f.d.Welcome.Handle(join)
	assert.Empty(t, f.platform.Sent(), "no channel configured")

	f.store.SetWelcomeChannel("welcome")
	f.d.Welcome.Handle(join)
	assert.Empty(t, f.platform.Sent(), "channel not resolvable")

	f.platform.Channels["welcome"] = &discordgo.Channel{ID: "welcome"}
	f.platform.Guilds["g1"] = &discordgo.Guild{ID: "g1", Name: "Pancy", MemberCount: 42}
	f.d.Welcome.Handle(join)

	embeds := f.platform.Embeds()
	require.Len(t, embeds, 1)
	assert.Equal(t, "Welcome to Pancy! 👋", embeds[0].Title)
	assert.Equal(t, "<@u9> just joined the server!", embeds[0].Description)
	assert.Equal(t, "We now have 42 members!", embeds[0].Fields[0].Value)
	assert.Equal(t, "Account created: 2020-05-17", embeds[0].Footer.Text)
	assert.Equal(t, "welcome", f.platform.Sent()[0].ChannelID)
}

package mod

import (
	stderrors "errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/PancyStudios/PancyModGo/pkg/discord"
	"github.com/PancyStudios/PancyModGo/pkg/discord/discordtest"
	"github.com/PancyStudios/PancyModGo/pkg/errors"
	"github.com/PancyStudios/PancyModGo/pkg/state"
	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type eventLog struct {
	mu      sync.Mutex
	actions []string
}

func (e *eventLog) PublishEvent(kind string, data map[string]interface{}) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.actions = append(e.actions, fmt.Sprintf("%s:%v", kind, data["action"]))
}

type harness struct {
	platform *discordtest.Platform
	store    *state.Store
	handler  *discord.CommandHandler
	events   *eventLog
}

const target = "222222222"

func newHarness() *harness {
	p := discordtest.New()
	p.AddMember("g1", "111111111", "mod")
	p.AddMember("g1", target, "target")
	p.Grant("111111111", discordgo.PermissionKickMembers|discordgo.PermissionBanMembers|discordgo.PermissionModerateMembers)

	store := state.New()
	handler := discord.NewCommandHandler(p, "!")
	events := &eventLog{}
	RegisterModCommands(handler, store, events)
	return &harness{platform: p, store: store, handler: handler, events: events}
}

func (h *harness) run(author, content string) {
	h.handler.Handle(&discord.Message{ID: "m", ChannelID: "c1", GuildID: "g1", AuthorID: author, AuthorName: "mod", Content: content})
}

func TestParseDuration(t *testing.T) {
	valid := map[string]time.Duration{
		"10s": 10 * time.Second,
		"5m":  300 * time.Second,
		"2h":  7200 * time.Second,
		"1d":  86400 * time.Second,
		"28d": MaxMuteDuration,
	}
	for in, want := range valid {
		got, err := ParseDuration(in)
		if err != nil {
			t.Errorf("ParseDuration(%q) error = %v", in, err)
			continue
		}
		if got != want {
			t.Errorf("ParseDuration(%q) = %v, want %v", in, got, want)
		}
	}

	for _, in := range []string{"10x", "abc", "m", "-5m", "", "0m", "1.5h", "10 m", "29d", "99999999999999999999d"} {
		_, err := ParseDuration(in)
		if err == nil {
			t.Errorf("ParseDuration(%q) accepted, want error", in)
			continue
		}
		if errors.Code(err) != errors.CodeParse {
			t.Errorf("ParseDuration(%q) code = %v, want %v", in, errors.Code(err), errors.CodeParse)
		}
	}
}

func TestKick(t *testing.T) {
	h := newHarness()

	h.run("111111111", "!kick <@222222222> spamming links")

	assert.Equal(t, []string{target}, h.platform.Kicked())
	assert.Equal(t, []string{"✅ <@222222222> has been kicked. Reason: spamming links"}, h.platform.Contents())
	assert.Equal(t, []string{"moderation:kick"}, h.events.actions)
}

func TestKickRequiresCapability(t *testing.T) {
	h := newHarness()

	h.run(target, "!kick <@111111111>")

	assert.Empty(t, h.platform.Kicked())
	assert.Equal(t, []string{"❌ You need the **Kick Members** permission to use this command."}, h.platform.Contents())
}

func TestBanPlatformFailure(t *testing.T) {
	h := newHarness()
	h.platform.Fail["ban"] = stderrors.New("Missing Permissions")

	h.run("111111111", "!ban <@222222222>")

	assert.Equal(t, []string{"❌ I was unable to ban this user. Error: Missing Permissions"}, h.platform.Contents())
	assert.Empty(t, h.events.actions)
}

func TestMute(t *testing.T) {
	h := newHarness()

	before := time.Now()
	h.run("111111111", "!mute <@222222222>")

	until, ok := h.platform.Timeout(target)
	require.True(t, ok)
	require.NotNil(t, until)
	assert.WithinDuration(t, before.Add(10*time.Minute), *until, 5*time.Second)
	assert.Equal(t, []string{"✅ <@222222222> has been muted for 10m."}, h.platform.Contents())
}

func TestMuteInvalidDurationHasNoEffect(t *testing.T) {
	h := newHarness()

	h.run("111111111", "!mute <@222222222> 10x")

	_, ok := h.platform.Timeout(target)
	assert.False(t, ok)
	assert.Equal(t, []string{invalidDuration}, h.platform.Contents())
}

func TestUnmute(t *testing.T) {
	h := newHarness()

	h.run("111111111", "!unmute <@222222222>")

	until, ok := h.platform.Timeout(target)
	require.True(t, ok)
	assert.Nil(t, until)
	assert.Equal(t, []string{"✅ <@222222222> has been unmuted."}, h.platform.Contents())
}

func TestWarnLedger(t *testing.T) {
	h := newHarness()

	h.run("111111111", "!warn <@222222222> first")
	h.run("111111111", "!warn <@222222222>")
	h.run("111111111", "!warn <@222222222> third")

	list := h.store.Warnings(target)
	require.Len(t, list, 3)
	assert.Equal(t, "first", list[0].Reason)
	assert.Equal(t, "No reason provided", list[1].Reason)
	assert.Equal(t, "third", list[2].Reason)
	assert.Equal(t, "111111111", list[0].ModeratorID)
	assert.NotEqual(t, list[0].ID, list[1].ID)

	contents := h.platform.Contents()
	assert.Equal(t, "⚠️ <@222222222> has been warned. Reason: third\nTotal warnings: 3", contents[2])

	h.run("111111111", "!warnings")
	h.run("111111111", "!warnings <@222222222>")
	embeds := h.platform.Embeds()
	require.Len(t, embeds, 1)
	assert.Equal(t, "⚠️ Warnings for target", embeds[0].Title)
	assert.True(t, strings.Index(embeds[0].Description, "first") < strings.Index(embeds[0].Description, "third"))
	assert.Contains(t, h.platform.Contents(), "<@111111111> has no warnings.")
}

func TestClearWarnings(t *testing.T) {
	h := newHarness()
	h.run("111111111", "!warn <@222222222> spam")

	h.run("111111111", "!clearwarnings <@222222222>")
	h.run("111111111", "!clearwarnings <@222222222>")

	assert.False(t, h.store.HasWarnings(target))
	contents := h.platform.Contents()
	assert.Equal(t, "✅ Cleared all warnings for <@222222222>.", contents[1])
	assert.Equal(t, "<@222222222> has no warnings to clear.", contents[2])
}

func TestUnknownMember(t *testing.T) {
	h := newHarness()

	h.run("111111111", "!kick <@999999999>")

	assert.Empty(t, h.platform.Kicked())
	assert.Equal(t, []string{"❌ Please mention a valid user."}, h.platform.Contents())
}

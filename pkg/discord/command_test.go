package discord_test

import (
	stderrors "errors"
	"testing"

	"github.com/PancyStudios/PancyModGo/pkg/discord"
	"github.com/PancyStudios/PancyModGo/pkg/discord/discordtest"
	"github.com/PancyStudios/PancyModGo/pkg/errors"
	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func message(content string) *discord.Message {
	return &discord.Message{
		ID:         "m1",
		ChannelID:  "c1",
		GuildID:    "g1",
		AuthorID:   "u1",
		AuthorName: "alice",
		Content:    content,
	}
}

// TestCommandCreation verifies that commands can be created with the builder pattern
func TestCommandCreation(t *testing.T) {
	handler := func(ctx *discord.CommandContext) error {
		return nil
	}

	cmd := discord.NewCommand("test", "Test command", "test", handler).
		WithArgs(discord.Arg{Name: "user", Required: true}, discord.Arg{Name: "reason", Rest: true}).
		WithUserPermissions(discordgo.PermissionKickMembers)

	if cmd.Name != "test" {
		t.Errorf("Name = %v, want %v", cmd.Name, "test")
	}
	if cmd.Category != "test" {
		t.Errorf("Category = %v, want %v", cmd.Category, "test")
	}
	if cmd.UserPermissions != discordgo.PermissionKickMembers {
		t.Errorf("UserPermissions = %v, want %v", cmd.UserPermissions, discordgo.PermissionKickMembers)
	}
	if got := cmd.Usage("!"); got != "!test <user> [reason]" {
		t.Errorf("Usage = %v, want %v", got, "!test <user> [reason]")
	}
}

func TestHandleParsesArguments(t *testing.T) {
	p := discordtest.New()
	h := discord.NewCommandHandler(p, "!")

	var user, reason string
	h.RegisterCommand(discord.NewCommand("kick", "Kick", "mod", func(ctx *discord.CommandContext) error {
		user = ctx.Arg("user")
		reason = ctx.ArgOr("reason", "No reason provided")
		return nil
	}).WithArgs(discord.Arg{Name: "user", Required: true}, discord.Arg{Name: "reason", Rest: true}))

	require.True(t, h.Handle(message("!KICK <@42>   being   rude ")))
	assert.Equal(t, "<@42>", user)
	assert.Equal(t, "being   rude", reason)

	require.True(t, h.Handle(message("!kick <@42>")))
	assert.Equal(t, "No reason provided", reason)
	assert.Empty(t, p.Contents())
}

func TestHandleIgnoresUnknownAndUnprefixed(t *testing.T) {
	p := discordtest.New()
	h := discord.NewCommandHandler(p, "!")

	assert.False(t, h.Handle(message("!nope")))
	assert.False(t, h.Handle(message("hello")))
	assert.False(t, h.Handle(message("!")))
	assert.Empty(t, p.Sent())
}

func TestHandleMissingArgumentRepliesUsage(t *testing.T) {
	p := discordtest.New()
	h := discord.NewCommandHandler(p, "!")

	called := false
	h.RegisterCommand(discord.NewCommand("poll", "Poll", "utils", func(ctx *discord.CommandContext) error {
		called = true
		return nil
	}).WithArgs(discord.Arg{Name: "question", Required: true, Rest: true}))

	require.True(t, h.Handle(message("!poll")))
	assert.False(t, called)
	assert.Equal(t, []string{"❌ Usage: `!poll <question>`"}, p.Contents())
}

func TestHandleCapabilityGate(t *testing.T) {
	p := discordtest.New()
	h := discord.NewCommandHandler(p, "!")

	called := 0
	h.RegisterCommand(discord.NewCommand("ban", "Ban", "mod", func(ctx *discord.CommandContext) error {
		called++
		return nil
	}).WithUserPermissions(discordgo.PermissionBanMembers))

	require.True(t, h.Handle(message("!ban <@2>")))
	assert.Equal(t, 0, called)
	assert.Equal(t, []string{"❌ You need the **Ban Members** permission to use this command."}, p.Contents())

	p.Grant("u1", discordgo.PermissionBanMembers)
	require.True(t, h.Handle(message("!ban <@2>")))
	assert.Equal(t, 1, called)
}

func TestHandleConvertsErrors(t *testing.T) {
	p := discordtest.New()
	h := discord.NewCommandHandler(p, "!")

	h.RegisterCommand(discord.NewCommand("resolve", "", "test", func(ctx *discord.CommandContext) error {
		return errors.Resolution("❌ Could not find that message.")
	}))
	h.RegisterCommand(discord.NewCommand("platform", "", "test", func(ctx *discord.CommandContext) error {
		return errors.Platform("kick this user", stderrors.New("Missing Permissions"))
	}))
	h.RegisterCommand(discord.NewCommand("explode", "", "test", func(ctx *discord.CommandContext) error {
		panic("boom")
	}))

	h.Handle(message("!resolve"))
	h.Handle(message("!platform"))
	h.Handle(message("!explode"))

	assert.Equal(t, []string{
		"❌ Could not find that message.",
		"❌ I was unable to kick this user. Error: Missing Permissions",
		"❌ Something went wrong while running that command.",
	}, p.Contents())
}

func TestHandleGroups(t *testing.T) {
	p := discordtest.New()
	h := discord.NewCommandHandler(p, "!")

	var added string
	h.RegisterGroup("cc",
		discord.NewCommand("add", "", "custom", func(ctx *discord.CommandContext) error {
			added = ctx.Arg("name") + "=" + ctx.Arg("response")
			return nil
		}).WithArgs(discord.Arg{Name: "name", Required: true}, discord.Arg{Name: "response", Required: true, Rest: true}),
		discord.NewCommand("remove", "", "custom", func(ctx *discord.CommandContext) error { return nil }),
		discord.NewCommand("list", "", "custom", func(ctx *discord.CommandContext) error { return nil }),
	)

	require.True(t, h.Handle(message("!cc add rules Be nice")))
	assert.Equal(t, "rules=Be nice", added)

	require.True(t, h.Handle(message("!cc")))
	require.True(t, h.Handle(message("!cc frobnicate")))
	assert.Equal(t, []string{"❌ Use: `!cc add/remove/list`", "❌ Use: `!cc add/remove/list`"}, p.Contents())

	cmd, ok := h.Commands().Get("cc.add")
	require.True(t, ok)
	assert.Equal(t, "!cc add <name> <response>", cmd.Usage("!"))
}

func TestArgumentResolution(t *testing.T) {
	p := discordtest.New()
	p.AddMember("g1", "42424", "bob")
	p.AddRole("g1", "7", "Gamer")
	h := discord.NewCommandHandler(p, "!")

	var member *discordgo.Member
	var role *discordgo.Role
	h.RegisterCommand(discord.NewCommand("give", "", "test", func(ctx *discord.CommandContext) error {
		var err error
		if member, err = ctx.MemberArg("user"); err != nil {
			return err
		}
		role, err = ctx.RoleArg("role")
		return err
	}).WithArgs(discord.Arg{Name: "user", Required: true}, discord.Arg{Name: "role", Required: true}))

	require.True(t, h.Handle(message("!give <@!42424> <@&7>")))
	require.NotNil(t, member)
	assert.Equal(t, "bob", member.User.Username)
	require.NotNil(t, role)
	assert.Equal(t, "Gamer", role.Name)

	h.Handle(message("!give <@99> <@&7>"))
	h.Handle(message("!give 42424 nope"))
	assert.Equal(t, []string{"❌ Please mention a valid user.", "❌ Please mention a valid role."}, p.Contents())
}

func TestIntArg(t *testing.T) {
	p := discordtest.New()
	h := discord.NewCommandHandler(p, "!")

	var sides int
	h.RegisterCommand(discord.NewCommand("dice", "", "fun", func(ctx *discord.CommandContext) error {
		var err error
		sides, err = ctx.IntArg("sides", 6)
		return err
	}).WithArgs(discord.Arg{Name: "sides"}))

	h.Handle(message("!dice"))
	assert.Equal(t, 6, sides)
	h.Handle(message("!dice 20"))
	assert.Equal(t, 20, sides)
	h.Handle(message("!dice many"))
	assert.Equal(t, []string{"❌ `sides` must be a whole number. Usage: `!dice [sides]`"}, p.Contents())
}

func TestInvokedName(t *testing.T) {
	h := discord.NewCommandHandler(discordtest.New(), "?")

	name, ok := h.InvokedName("?Rules please")
	assert.True(t, ok)
	assert.Equal(t, "rules", name)

	_, ok = h.InvokedName("!rules")
	assert.False(t, ok)
	_, ok = h.InvokedName("?")
	assert.False(t, ok)
}

func TestNormalizeEmoji(t *testing.T) {
	tests := map[string]string{
		"👍":                "👍",
		"<:party:123456>":  "party:123456",
		"<a:dance:987654>": "dance:987654",
		" ✅ ":              "✅",
	}
	for in, want := range tests {
		if got := discord.NormalizeEmoji(in); got != want {
			t.Errorf("NormalizeEmoji(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestParseIDs(t *testing.T) {
	id, ok := discord.ParseUserID("<@!123456789>")
	assert.True(t, ok)
	assert.Equal(t, "123456789", id)

	id, ok = discord.ParseRoleID("<@&555555>")
	assert.True(t, ok)
	assert.Equal(t, "555555", id)

	id, ok = discord.ParseChannelID("123456789012345678")
	assert.True(t, ok)
	assert.Equal(t, "123456789012345678", id)

	_, ok = discord.ParseUserID("<@&555555>")
	assert.False(t, ok)
	_, ok = discord.ParseChannelID("general")
	assert.False(t, ok)
}

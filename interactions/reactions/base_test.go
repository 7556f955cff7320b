package reactions

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"sync"
	"testing"

	"github.com/bwmarrin/discordgo"
	"gitlab.com/BIC_Dev/reaction-role-manager/configs"
	"gitlab.com/BIC_Dev/reaction-role-manager/models"
	"gitlab.com/BIC_Dev/reaction-role-manager/services/discordapi"
	"gitlab.com/BIC_Dev/reaction-role-manager/utils/cache"
	"gitlab.com/BIC_Dev/reaction-role-manager/utils/storage"
)

type roleCall struct {
	guildID string
	userID  string
	roleID  string
}

// mockDiscordAPI records role and message calls
type mockDiscordAPI struct {
	mu      sync.Mutex
	grants  []roleCall
	revokes []roleCall
	sent    []*discordgo.MessageEmbed
}

func (m *mockDiscordAPI) SendMessage(channelID string, content *string, embed *discordgo.MessageEmbed) (*discordgo.Message, *discordapi.Error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.sent = append(m.sent, embed)
	return &discordgo.Message{ID: fmt.Sprintf("message-%d", len(m.sent)), ChannelID: channelID}, nil
}

func (m *mockDiscordAPI) GrantRole(guildID string, userID string, roleID string) *discordapi.Error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.grants = append(m.grants, roleCall{guildID: guildID, userID: userID, roleID: roleID})
	return nil
}

func (m *mockDiscordAPI) RevokeRole(guildID string, userID string, roleID string) *discordapi.Error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.revokes = append(m.revokes, roleCall{guildID: guildID, userID: userID, roleID: roleID})
	return nil
}

// fakeCache is an in-memory stand-in for the Redis pending cache
type fakeCache struct {
	entries map[string]string
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[string]string)}
}

func (f *fakeCache) GetStruct(ctx context.Context, key string, output interface{}) *cache.CacheError {
	val, ok := f.entries[key]
	if !ok {
		return nil
	}

	if err := json.Unmarshal([]byte(val), output); err != nil {
		return &cache.CacheError{Message: "unmarshal failed", Err: err}
	}

	return nil
}

func (f *fakeCache) Expire(ctx context.Context, key string) *cache.CacheError {
	delete(f.entries, key)
	return nil
}

func (f *fakeCache) put(key string, val interface{}) {
	data, _ := json.Marshal(val)
	f.entries[key] = string(data)
}

func testConfig() *configs.Config {
	config := &configs.Config{}
	config.Bot.OkColor = 1752220
	config.Bot.WarnColor = 15105570
	config.Bot.ErrorColor = 15158332
	config.CacheSettings.PendingSetup.Base = "pending_setup"
	config.CacheSettings.PendingSetup.TTL = "300"
	return config
}

func testReactions(t *testing.T) (*Reactions, *mockDiscordAPI, *fakeCache) {
	t.Helper()

	discord := &mockDiscordAPI{}
	pendingCache := newFakeCache()

	r := &Reactions{
		Discord:       discord,
		Config:        testConfig(),
		Cache:         pendingCache,
		Storage:       storage.Load(context.Background(), filepath.Join(t.TempDir(), "store.json")),
		PendingSetups: NewPendingSetups(),
	}

	return r, discord, pendingCache
}

func TestDispatchRoleActions(t *testing.T) {
	tests := []struct {
		name        string
		event       models.ReactionEvent
		wantGrants  []roleCall
		wantRevokes []roleCall
	}{
		{
			name: "add matching emoji grants once",
			event: models.ReactionEvent{
				GuildID:   "guild-1",
				MessageID: "message-1",
				Emoji:     "🎉",
				UserID:    "user-x",
				Direction: models.ReactionAdd,
			},
			wantGrants: []roleCall{{guildID: "guild-1", userID: "user-x", roleID: "role-1"}},
		},
		{
			name: "add non-matching emoji is a no-op",
			event: models.ReactionEvent{
				GuildID:   "guild-1",
				MessageID: "message-1",
				Emoji:     "⭐",
				UserID:    "user-x",
				Direction: models.ReactionAdd,
			},
		},
		{
			name: "remove matching emoji revokes, never grants",
			event: models.ReactionEvent{
				GuildID:   "guild-1",
				MessageID: "message-1",
				Emoji:     "🎉",
				UserID:    "user-x",
				Direction: models.ReactionRemove,
			},
			wantRevokes: []roleCall{{guildID: "guild-1", userID: "user-x", roleID: "role-1"}},
		},
		{
			name: "remove on unconfigured message is a no-op",
			event: models.ReactionEvent{
				GuildID:   "guild-1",
				MessageID: "message-9",
				Emoji:     "🎉",
				UserID:    "user-x",
				Direction: models.ReactionRemove,
			},
		},
		{
			name: "bot actor never triggers anything",
			event: models.ReactionEvent{
				GuildID:    "guild-1",
				MessageID:  "message-1",
				Emoji:      "🎉",
				UserID:     "bot-user",
				ActorIsBot: true,
				Direction:  models.ReactionAdd,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			r, discord, _ := testReactions(t)
			r.Storage.AppendBinding(ctx, "message-1", "channel-1", models.RoleBinding{Emoji: "🎉", RoleID: "role-1"})

			r.Dispatch(ctx, tt.event)

			if len(discord.grants) != len(tt.wantGrants) {
				t.Fatalf("grants = %d, want %d", len(discord.grants), len(tt.wantGrants))
			}
			for i, want := range tt.wantGrants {
				if discord.grants[i] != want {
					t.Errorf("grant[%d] = %+v, want %+v", i, discord.grants[i], want)
				}
			}

			if len(discord.revokes) != len(tt.wantRevokes) {
				t.Fatalf("revokes = %d, want %d", len(discord.revokes), len(tt.wantRevokes))
			}
			for i, want := range tt.wantRevokes {
				if discord.revokes[i] != want {
					t.Errorf("revoke[%d] = %+v, want %+v", i, discord.revokes[i], want)
				}
			}
		})
	}
}

func TestDispatchFirstMatchWinsOnDuplicateEmoji(t *testing.T) {
	ctx := context.Background()
	r, discord, _ := testReactions(t)
	r.Storage.AppendBinding(ctx, "message-1", "channel-1", models.RoleBinding{Emoji: "🎉", RoleID: "role-1"})
	r.Storage.AppendBinding(ctx, "message-1", "channel-1", models.RoleBinding{Emoji: "🎉", RoleID: "role-2"})

	r.Dispatch(ctx, models.ReactionEvent{
		GuildID:   "guild-1",
		MessageID: "message-1",
		Emoji:     "🎉",
		UserID:    "user-x",
		Direction: models.ReactionAdd,
	})

	if len(discord.grants) != 1 {
		t.Fatalf("grants = %d, want 1", len(discord.grants))
	}
	if discord.grants[0].roleID != "role-1" {
		t.Errorf("granted role = %s, want earliest-inserted role-1", discord.grants[0].roleID)
	}
}

func TestDispatchPendingSetupTakesPriority(t *testing.T) {
	ctx := context.Background()
	r, discord, pendingCache := testReactions(t)

	// The prompt message also carries a binding; the pending setup must win.
	r.Storage.AppendBinding(ctx, "prompt-1", "channel-1", models.RoleBinding{Emoji: "🎉", RoleID: "role-9"})

	setup := models.SetupReaction{RoleID: "role-1", User: &models.User{ID: "user-1", Name: "operator"}}
	pendingCache.put(setup.CacheKey("pending_setup", "prompt-1"), &setup)
	r.PendingSetups.Add("prompt-1", PendingSetup{Expires: 1<<62 - 1, UserID: "user-1"})

	r.Dispatch(ctx, models.ReactionEvent{
		GuildID:   "guild-1",
		ChannelID: "channel-1",
		MessageID: "prompt-1",
		Emoji:     "🎉",
		UserID:    "user-2",
		Direction: models.ReactionAdd,
	})

	if len(discord.grants) != 0 {
		t.Errorf("grants = %d, want 0 while completing setup", len(discord.grants))
	}

	emoji, ok := r.Storage.EmojiForRole(ctx, "role-1")
	if !ok || emoji != "🎉" {
		t.Errorf("EmojiForRole() = %q, %v, want 🎉, true", emoji, ok)
	}

	if len(discord.sent) != 1 {
		t.Errorf("confirmation messages = %d, want 1", len(discord.sent))
	}

	if _, ok := pendingCache.entries[setup.CacheKey("pending_setup", "prompt-1")]; ok {
		t.Error("expected cached setup payload to be expired")
	}
}

func TestDispatchFirstReactionWins(t *testing.T) {
	ctx := context.Background()
	r, discord, pendingCache := testReactions(t)

	setup := models.SetupReaction{RoleID: "role-1", User: &models.User{ID: "user-1", Name: "operator"}}
	pendingCache.put(setup.CacheKey("pending_setup", "prompt-1"), &setup)
	r.PendingSetups.Add("prompt-1", PendingSetup{Expires: 1<<62 - 1, UserID: "user-1"})

	first := models.ReactionEvent{
		GuildID:   "guild-1",
		ChannelID: "channel-1",
		MessageID: "prompt-1",
		Emoji:     "🎉",
		UserID:    "user-2",
		Direction: models.ReactionAdd,
	}
	second := first
	second.Emoji = "⭐"
	second.UserID = "user-3"

	r.Dispatch(ctx, first)
	r.Dispatch(ctx, second)

	emoji, ok := r.Storage.EmojiForRole(ctx, "role-1")
	if !ok || emoji != "🎉" {
		t.Errorf("EmojiForRole() = %q, %v, want first reaction 🎉 to be final", emoji, ok)
	}

	if len(discord.sent) != 1 {
		t.Errorf("messages sent = %d, want 1 confirmation only", len(discord.sent))
	}
	if len(discord.grants) != 0 {
		t.Errorf("grants = %d, want 0", len(discord.grants))
	}
}

func TestDispatchExpiredSetupPayload(t *testing.T) {
	ctx := context.Background()
	r, discord, _ := testReactions(t)

	// Gate exists but the cached payload already expired
	r.PendingSetups.Add("prompt-1", PendingSetup{Expires: 1<<62 - 1, UserID: "user-1"})

	r.Dispatch(ctx, models.ReactionEvent{
		GuildID:   "guild-1",
		ChannelID: "channel-1",
		MessageID: "prompt-1",
		Emoji:     "🎉",
		UserID:    "user-2",
		Direction: models.ReactionAdd,
	})

	if roleEmoji := r.Storage.RoleEmoji(ctx); len(roleEmoji) != 0 {
		t.Errorf("role emoji table = %v, want empty", roleEmoji)
	}

	if len(discord.sent) != 1 {
		t.Fatalf("messages sent = %d, want 1 error reply", len(discord.sent))
	}
	if discord.sent[0].Title != "Error" {
		t.Errorf("reply title = %q, want Error", discord.sent[0].Title)
	}
}

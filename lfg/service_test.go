package lfg

import (
	"context"
	"slices"
	"time"

	"lfg-bot/models"

	"github.com/bwmarrin/discordgo"
)

// fakePostStore is an in-memory PostStore and Sweeper for testing.
type fakePostStore struct {
	posts  map[string]*models.Post
	rowErr error
}

func newFakePostStore(posts ...*models.Post) *fakePostStore {
	store := &fakePostStore{posts: make(map[string]*models.Post)}
	for _, post := range posts {
		store.posts[post.ID] = post
	}
	return store
}

func clonePost(post *models.Post) *models.Post {
	clone := *post
	clone.Fireteam = slices.Clone(post.Fireteam)
	clone.Alternates = slices.Clone(post.Alternates)
	return &clone
}

func (f *fakePostStore) Row(ctx context.Context, id string) (*models.Post, error) {
	if f.rowErr != nil {
		return nil, f.rowErr
	}
	post, ok := f.posts[id]
	if !ok {
		return nil, ErrPostNotFound
	}
	return clonePost(post), nil
}

func (f *fakePostStore) Save(ctx context.Context, post *models.Post) error {
	f.posts[post.ID] = clonePost(post)
	return nil
}

func (f *fakePostStore) Delete(ctx context.Context, id string) error {
	delete(f.posts, id)
	return nil
}

func (f *fakePostStore) Owner(ctx context.Context, id string) (string, error) {
	post, ok := f.posts[id]
	if !ok {
		return "", ErrPostNotFound
	}
	return post.OwnerID, nil
}

func (f *fakePostStore) Update(ctx context.Context, id string, fn func(*models.Post) error) (*models.Post, error) {
	post, ok := f.posts[id]
	if !ok {
		return nil, ErrPostNotFound
	}
	clone := clonePost(post)
	if err := fn(clone); err != nil {
		return nil, err
	}
	f.posts[id] = clone
	return clonePost(clone), nil
}

func (f *fakePostStore) DueReminders(ctx context.Context, now time.Time, lead time.Duration) ([]*models.Post, error) {
	var due []*models.Post
	for _, post := range f.posts {
		if !post.ReminderSent && post.StartTime.After(now) && !post.StartTime.After(now.Add(lead)) {
			due = append(due, clonePost(post))
		}
	}
	return due, nil
}

func (f *fakePostStore) MarkReminderSent(ctx context.Context, id string) error {
	if post, ok := f.posts[id]; ok {
		post.ReminderSent = true
	}
	return nil
}

func (f *fakePostStore) StartedBefore(ctx context.Context, cutoff time.Time) ([]*models.Post, error) {
	var started []*models.Post
	for _, post := range f.posts {
		if post.StartTime.Before(cutoff) {
			started = append(started, clonePost(post))
		}
	}
	return started, nil
}

type fakeTimezoneStore struct {
	regions map[string]string
}

func newFakeTimezoneStore() *fakeTimezoneStore {
	return &fakeTimezoneStore{regions: make(map[string]string)}
}

func (f *fakeTimezoneStore) Region(ctx context.Context, userID string) (string, error) {
	return f.regions[userID], nil
}

func (f *fakeTimezoneStore) SaveRegion(ctx context.Context, userID, region string) error {
	f.regions[userID] = region
	return nil
}

type fakeGuildStore struct {
	guilds map[string]*models.Guild
}

func newFakeGuildStore(guilds ...*models.Guild) *fakeGuildStore {
	store := &fakeGuildStore{guilds: make(map[string]*models.Guild)}
	for _, guild := range guilds {
		store.guilds[guild.GuildID] = guild
	}
	return store
}

func (f *fakeGuildStore) Guild(ctx context.Context, guildID string) (*models.Guild, error) {
	guild, ok := f.guilds[guildID]
	if !ok {
		return nil, ErrGuildNotSetup
	}
	return guild, nil
}

func (f *fakeGuildStore) SaveGuild(ctx context.Context, guild *models.Guild) error {
	f.guilds[guild.GuildID] = guild
	return nil
}

// fakeMessenger records external calls and can be primed with errors.
type fakeMessenger struct {
	deletedThreads  []string
	deletedMessages []string
	sent            []string
	dms             []string
	edits           []string
	archived        []string
	renamed         []string

	nextThreadID     string
	deleteThreadErr  error
	deleteMessageErr error
	editErr          error
	archiveErr       error
}

func newFakeMessenger() *fakeMessenger {
	return &fakeMessenger{nextThreadID: "thread-1"}
}

func (f *fakeMessenger) CreateThread(channelID, name string, msg *discordgo.MessageSend) (string, error) {
	return f.nextThreadID, nil
}

func (f *fakeMessenger) SendMessage(channelID, content string) (string, error) {
	f.sent = append(f.sent, content)
	return "message-1", nil
}

func (f *fakeMessenger) SendEmbed(channelID string, embed *discordgo.MessageEmbed) (string, error) {
	f.sent = append(f.sent, "embed:"+channelID)
	return "mirror-1", nil
}

func (f *fakeMessenger) EditEmbed(channelID, messageID string, embed *discordgo.MessageEmbed) error {
	if f.editErr != nil {
		return f.editErr
	}
	f.edits = append(f.edits, channelID+"/"+messageID)
	return nil
}

func (f *fakeMessenger) RenameThread(threadID, name string) error {
	f.renamed = append(f.renamed, threadID+":"+name)
	return nil
}

func (f *fakeMessenger) ArchiveThread(threadID string) error {
	if f.archiveErr != nil {
		return f.archiveErr
	}
	f.archived = append(f.archived, threadID)
	return nil
}

func (f *fakeMessenger) DeleteThread(threadID, reason string) error {
	if f.deleteThreadErr != nil {
		return f.deleteThreadErr
	}
	f.deletedThreads = append(f.deletedThreads, threadID)
	return nil
}

func (f *fakeMessenger) DeleteMessage(channelID, messageID, reason string) error {
	if f.deleteMessageErr != nil {
		return f.deleteMessageErr
	}
	f.deletedMessages = append(f.deletedMessages, channelID+"/"+messageID)
	return nil
}

func (f *fakeMessenger) DirectMessage(userID string, embed *discordgo.MessageEmbed) error {
	f.dms = append(f.dms, userID)
	return nil
}

func (f *fakeMessenger) DisplayName(guildID, userID string) string {
	return "user-" + userID
}

func testPost(id string) *models.Post {
	return &models.Post{
		ID:           id,
		GuildID:      "guild-1",
		OwnerID:      "owner",
		Activity:     "Vault of Glass",
		Description:  "Fresh run",
		StartTime:    time.Date(2026, 9, 4, 19, 0, 0, 0, time.UTC),
		FireteamSize: 4,
		Fireteam:     []string{"owner"},
	}
}

func newTestService(posts *fakePostStore, messenger *fakeMessenger) *Service {
	return NewService(posts, newFakeTimezoneStore(), newFakeGuildStore(), posts, messenger)
}

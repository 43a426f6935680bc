package store_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/erhancapar/kuzgun-backend/internal/database"
	"github.com/erhancapar/kuzgun-backend/internal/models"
	"github.com/erhancapar/kuzgun-backend/internal/store"
)

var nextID int64 = 1000

func newID() int64 {
	nextID++
	return nextID
}

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	db.SetMaxOpenConns(1)

	_, err = db.Exec("PRAGMA foreign_keys = ON")
	require.NoError(t, err)

	require.NoError(t, database.SetupTables(db))
	return db
}

func createUser(t *testing.T, users *store.Users, email, username string) models.User {
	t.Helper()

	user := models.User{
		ID:       newID(),
		Email:    email,
		Username: username,
		Password: []byte("not-a-real-hash"),
	}
	require.NoError(t, users.Create(context.Background(), &user))
	return user
}

func TestUsersCreateAndFind(t *testing.T) {
	db := newTestDB(t)
	users := store.NewUsers(db)
	ctx := context.Background()

	created := createUser(t, users, "erhan@example.com", "erhan")
	assert.False(t, created.CreatedAt.IsZero())

	byID, err := users.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "erhan@example.com", byID.Email)
	assert.Equal(t, "erhan", byID.Username)
	assert.Equal(t, created.CreatedAt, byID.CreatedAt)

	byEmail, err := users.FindByEmail(ctx, "erhan@example.com")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byEmail.ID)

	byUsername, err := users.FindByUsername(ctx, "erhan")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byUsername.ID)

	_, err = users.FindByID(ctx, newID())
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestUsersCreateDuplicate(t *testing.T) {
	db := newTestDB(t)
	users := store.NewUsers(db)
	ctx := context.Background()

	createUser(t, users, "erhan@example.com", "erhan")

	sameEmail := models.User{
		ID:       newID(),
		Email:    "erhan@example.com",
		Username: "someoneelse",
		Password: []byte("not-a-real-hash"),
	}
	assert.ErrorIs(t, users.Create(ctx, &sameEmail), store.ErrDuplicateEmail)

	sameUsername := models.User{
		ID:       newID(),
		Email:    "other@example.com",
		Username: "erhan",
		Password: []byte("not-a-real-hash"),
	}
	assert.ErrorIs(t, users.Create(ctx, &sameUsername), store.ErrDuplicateUsername)
}

func TestUsersExists(t *testing.T) {
	db := newTestDB(t)
	users := store.NewUsers(db)
	ctx := context.Background()

	user := createUser(t, users, "erhan@example.com", "erhan")

	found, err := users.Exists(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, found)

	found, err = users.Exists(ctx, newID())
	require.NoError(t, err)
	assert.False(t, found)
}

func TestUsersPartialUpdate(t *testing.T) {
	db := newTestDB(t)
	users := store.NewUsers(db)
	ctx := context.Background()

	user := createUser(t, users, "erhan@example.com", "erhan")

	displayName := "Erhan"
	aboutMe := "hello"
	updated, err := users.UpdateByID(ctx, user.ID, store.UserPatch{
		DisplayName: &displayName,
		AboutMe:     &aboutMe,
	})
	require.NoError(t, err)
	assert.Equal(t, "Erhan", updated.DisplayName)
	assert.Equal(t, "hello", updated.AboutMe)
	// untouched columns keep their values
	assert.Equal(t, "erhan@example.com", updated.Email)
	assert.Equal(t, "erhan", updated.Username)

	status := 2
	updated, err = users.UpdateByID(ctx, user.ID, store.UserPatch{OnlineStatus: &status})
	require.NoError(t, err)
	assert.Equal(t, 2, updated.OnlineStatus)
	assert.Equal(t, "Erhan", updated.DisplayName)
}

func TestUsersEmptyPatch(t *testing.T) {
	db := newTestDB(t)
	users := store.NewUsers(db)

	user := createUser(t, users, "erhan@example.com", "erhan")

	assert.True(t, store.UserPatch{}.IsEmpty())

	_, err := users.UpdateByID(context.Background(), user.ID, store.UserPatch{})
	assert.ErrorIs(t, err, store.ErrNoFields)
}

func TestUsersDelete(t *testing.T) {
	db := newTestDB(t)
	users := store.NewUsers(db)
	ctx := context.Background()

	user := createUser(t, users, "erhan@example.com", "erhan")

	require.NoError(t, users.DeleteByID(ctx, user.ID))

	_, err := users.FindByID(ctx, user.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)

	// repeating the delete reports the missing row
	assert.ErrorIs(t, users.DeleteByID(ctx, user.ID), store.ErrNotFound)
}

func TestGuildsLifecycle(t *testing.T) {
	db := newTestDB(t)
	users := store.NewUsers(db)
	guilds := store.NewGuilds(db)
	ctx := context.Background()

	owner := createUser(t, users, "owner@example.com", "owner")

	guild := models.Guild{ID: newID(), OwnerID: owner.ID, Name: "kuzgun"}
	require.NoError(t, guilds.Create(ctx, &guild))
	assert.Equal(t, 300, guild.AfkTimeout)

	fetched, err := guilds.FindByID(ctx, guild.ID)
	require.NoError(t, err)
	assert.Equal(t, "kuzgun", fetched.Name)
	assert.Equal(t, owner.ID, fetched.OwnerID)

	owned, err := guilds.FindByOwner(ctx, owner.ID)
	require.NoError(t, err)
	require.Len(t, owned, 1)
	assert.Equal(t, guild.ID, owned[0].ID)

	other, err := guilds.FindByOwner(ctx, newID())
	require.NoError(t, err)
	assert.Empty(t, other)

	require.NoError(t, guilds.DeleteByID(ctx, guild.ID))
	_, err = guilds.FindByID(ctx, guild.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestGuildsPartialUpdate(t *testing.T) {
	db := newTestDB(t)
	users := store.NewUsers(db)
	guilds := store.NewGuilds(db)
	ctx := context.Background()

	owner := createUser(t, users, "owner@example.com", "owner")
	guild := models.Guild{ID: newID(), OwnerID: owner.ID, Name: "kuzgun"}
	require.NoError(t, guilds.Create(ctx, &guild))

	time.Sleep(10 * time.Millisecond)

	description := "a place to talk"
	boostLevel := 2
	updated, err := guilds.UpdateByID(ctx, guild.ID, store.GuildPatch{
		Description: &description,
		BoostLevel:  &boostLevel,
	})
	require.NoError(t, err)
	assert.Equal(t, "a place to talk", updated.Description)
	assert.Equal(t, 2, updated.BoostLevel)
	assert.Equal(t, "kuzgun", updated.Name)
	assert.Equal(t, owner.ID, updated.OwnerID)
	assert.True(t, updated.UpdatedAt.After(updated.CreatedAt))

	_, err = guilds.UpdateByID(ctx, guild.ID, store.GuildPatch{})
	assert.ErrorIs(t, err, store.ErrNoFields)
}

func TestChannelsRoundTrip(t *testing.T) {
	db := newTestDB(t)
	users := store.NewUsers(db)
	guilds := store.NewGuilds(db)
	channels := store.NewChannels(db)
	ctx := context.Background()

	owner := createUser(t, users, "owner@example.com", "owner")
	guild := models.Guild{ID: newID(), OwnerID: owner.ID, Name: "kuzgun"}
	require.NoError(t, guilds.Create(ctx, &guild))

	channel := models.Channel{ID: newID(), GuildID: guild.ID, Name: "general"}
	require.NoError(t, channels.Create(ctx, &channel))

	fetched, err := channels.FindByID(ctx, channel.ID)
	require.NoError(t, err)
	assert.Equal(t, "general", fetched.Name)
	assert.Equal(t, guild.ID, fetched.GuildID)

	list, err := channels.FindByGuild(ctx, guild.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, channel.ID, list[0].ID)
}

func TestMessagesOrderingAndEdit(t *testing.T) {
	db := newTestDB(t)
	users := store.NewUsers(db)
	guilds := store.NewGuilds(db)
	channels := store.NewChannels(db)
	messages := store.NewMessages(db)
	ctx := context.Background()

	author := createUser(t, users, "author@example.com", "author")
	guild := models.Guild{ID: newID(), OwnerID: author.ID, Name: "kuzgun"}
	require.NoError(t, guilds.Create(ctx, &guild))
	channel := models.Channel{ID: newID(), GuildID: guild.ID, Name: "general"}
	require.NoError(t, channels.Create(ctx, &channel))

	for _, content := range []string{"first", "second", "third"} {
		msg := models.Message{ID: newID(), ChannelID: channel.ID, AuthorID: author.ID, Content: content}
		require.NoError(t, messages.Create(ctx, &msg))
		time.Sleep(2 * time.Millisecond)
	}

	list, err := messages.FindByChannel(ctx, channel.ID)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "first", list[0].Content)
	assert.Equal(t, "second", list[1].Content)
	assert.Equal(t, "third", list[2].Content)
	for i := 1; i < len(list); i++ {
		assert.False(t, list[i].CreatedAt.Before(list[i-1].CreatedAt))
	}

	time.Sleep(10 * time.Millisecond)

	edited, err := messages.UpdateContent(ctx, list[0].ID, "first, edited")
	require.NoError(t, err)
	assert.Equal(t, "first, edited", edited.Content)
	assert.True(t, edited.UpdatedAt.After(edited.CreatedAt))

	require.NoError(t, messages.DeleteByID(ctx, list[0].ID))
	assert.ErrorIs(t, messages.DeleteByID(ctx, list[0].ID), store.ErrNotFound)
}

func TestGuildDeleteCascades(t *testing.T) {
	db := newTestDB(t)
	users := store.NewUsers(db)
	guilds := store.NewGuilds(db)
	channels := store.NewChannels(db)
	messages := store.NewMessages(db)
	ctx := context.Background()

	owner := createUser(t, users, "owner@example.com", "owner")
	guild := models.Guild{ID: newID(), OwnerID: owner.ID, Name: "kuzgun"}
	require.NoError(t, guilds.Create(ctx, &guild))
	channel := models.Channel{ID: newID(), GuildID: guild.ID, Name: "general"}
	require.NoError(t, channels.Create(ctx, &channel))
	msg := models.Message{ID: newID(), ChannelID: channel.ID, AuthorID: owner.ID, Content: "hello"}
	require.NoError(t, messages.Create(ctx, &msg))

	require.NoError(t, guilds.DeleteByID(ctx, guild.ID))

	_, err := channels.FindByID(ctx, channel.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
	_, err = messages.FindByID(ctx, msg.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

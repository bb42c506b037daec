// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/lessnote/pkg/types"
)

// --- test helpers ---

// firstRand always selects index 0: first token, high priority.
type firstRand struct{}

func (firstRand) Intn(n int) int { return 0 }

func testConfig(t *testing.T) types.StoreConfig {
	t.Helper()
	tmp := t.TempDir()
	return types.StoreConfig{
		LibraryDir: filepath.Join(tmp, "library"),
		ExportDir:  filepath.Join(tmp, "exports"),
	}
}

func testStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(testConfig(t), firstRand{})
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func nextEvent(t *testing.T, msgs <-chan *message.Message) StoreEvent {
	t.Helper()
	select {
	case msg := <-msgs:
		var ev StoreEvent
		require.NoError(t, json.Unmarshal(msg.Payload, &ev))
		msg.Ack()
		return ev
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for store event")
		return StoreEvent{}
	}
}

// --- construction ---

func TestNewStoreSeedsSampleGroup(t *testing.T) {
	cfg := testConfig(t)
	cfg.SeedSample = true

	s, err := NewStore(cfg, firstRand{})
	require.NoError(t, err)
	defer s.Close()

	groups := s.Groups()
	require.Len(t, groups, 1)

	biology := groups[0]
	assert.Equal(t, "Biology", biology.Name)
	require.Len(t, biology.Files, 2)
	assert.Equal(t, types.CategoryLearningResources, biology.Files[0].Category)
	assert.Equal(t, types.CategoryTests, biology.Files[1].Category)
	require.Len(t, biology.Sets, 1)
	assert.Equal(t, 2, biology.ItemCount())
}

func TestNewStoreWithoutSeedStartsEmpty(t *testing.T) {
	s := testStore(t)
	assert.Empty(t, s.Groups())
}

// --- group creation ---

func TestCreateGroup(t *testing.T) {
	s := testStore(t)

	group, err := s.CreateGroup("  Organic Chemistry  ")
	require.NoError(t, err)
	assert.NotEmpty(t, group.ID)
	assert.Equal(t, "Organic Chemistry", group.Name)
	assert.Empty(t, group.Files)
	assert.Empty(t, group.Sets)

	groups := s.Groups()
	require.Len(t, groups, 1)
	assert.Equal(t, group.ID, groups[0].ID)
}

func TestCreateGroupEmptyName(t *testing.T) {
	s := testStore(t)

	for _, name := range []string{"", "   ", "\t\n"} {
		_, err := s.CreateGroup(name)
		assert.ErrorIs(t, err, ErrInvalidArgument)
	}
	assert.Empty(t, s.Groups(), "rejected names must not mutate the store")
}

func TestCreateGroupPublishesEvent(t *testing.T) {
	s := testStore(t)

	msgs, err := s.Subscribe(context.Background())
	require.NoError(t, err)

	group, err := s.CreateGroup("Physics")
	require.NoError(t, err)

	ev := nextEvent(t, msgs)
	assert.Equal(t, "create_group", ev.Op)
	assert.Equal(t, group.ID, ev.GroupID)
	assert.Equal(t, "Physics", ev.GroupName)
}

// --- lookup ---

func TestGroupNotFound(t *testing.T) {
	s := testStore(t)

	_, err := s.Group("no-such-id")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestResolveByIDAndName(t *testing.T) {
	s := testStore(t)

	created, err := s.CreateGroup("History")
	require.NoError(t, err)

	byID, err := s.Resolve(created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, byID.ID)

	byName, err := s.Resolve("History")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byName.ID)

	_, err = s.Resolve("Geography")
	assert.ErrorIs(t, err, ErrNotFound)
}

// --- isolation ---

func TestGroupsReturnsIndependentCopies(t *testing.T) {
	s := testStore(t)

	created, err := s.CreateGroup("Latin")
	require.NoError(t, err)

	snapshot := s.Groups()
	require.Len(t, snapshot, 1)
	snapshot[0].Name = "mutated"
	snapshot[0].Files = append(snapshot[0].Files,
		types.NewImportedFile("rogue.txt", types.CategoryTests))

	fresh, err := s.Group(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Latin", fresh.Name)
	assert.Empty(t, fresh.Files)
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store owns the in-memory knowledge groups and the operations
// that mutate them: group creation, file ingestion, and export. All
// state is process-lifetime only; every mutation is announced on an
// in-process event bus so anything rendering the store can re-read it.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"

	"github.com/pdiddy/lessnote/internal/cloze"
	"github.com/pdiddy/lessnote/pkg/types"
)

// Failure taxonomy. Operations wrap these sentinels so callers can
// classify errors with errors.Is.
var (
	// ErrInvalidArgument marks input rejected before any mutation.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrFileAccess marks a source file that could not be read or copied.
	// Affects only that file; sibling files in the batch continue.
	ErrFileAccess = errors.New("file access denied")

	// ErrNotFound marks an operation referencing an unknown group.
	ErrNotFound = errors.New("group not found")

	// ErrWrite marks an export that failed to write its output file.
	ErrWrite = errors.New("write failed")
)

// TopicStoreUpdated is the event bus topic carrying store change
// notifications.
const TopicStoreUpdated = "lessnote.store.updated"

// importsDir is the subdirectory under the library base for durable
// copies of imported files.
const importsDir = "imports"

// StoreEvent describes one applied mutation. Files and Items count what
// the mutation added, not group totals.
type StoreEvent struct {
	Op        string `json:"op"`
	GroupID   string `json:"group_id"`
	GroupName string `json:"group_name"`
	Files     int    `json:"files"`
	Items     int    `json:"items"`
}

// Store is the aggregate root for all knowledge groups. Mutations apply
// as a single visible update under the store lock; file I/O happens
// outside it. Ingest calls targeting the same group serialize on a
// per-group lock while different groups proceed independently.
type Store struct {
	mu     sync.Mutex
	groups []*types.KnowledgeGroup

	ingestMu    sync.Mutex
	ingestLocks map[string]*sync.Mutex

	cfg    types.StoreConfig
	gen    *cloze.Generator
	pubSub *gochannel.GoChannel
	now    func() time.Time
}

// NewStore constructs a Store, creating the library imports directory.
// A nil rng selects a time-seeded source for generation. When
// cfg.SeedSample is set the store starts with the sample Biology group.
func NewStore(cfg types.StoreConfig, rng cloze.Rand) (*Store, error) {
	if cfg.LibraryDir == "" {
		cfg.LibraryDir = "library"
	}
	if cfg.ExportDir == "" {
		cfg.ExportDir = os.TempDir()
	}

	if err := os.MkdirAll(filepath.Join(cfg.LibraryDir, importsDir), 0o755); err != nil {
		return nil, fmt.Errorf("creating imports directory: %w", err)
	}
	if err := os.MkdirAll(cfg.ExportDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating export directory: %w", err)
	}

	s := &Store{
		ingestLocks: make(map[string]*sync.Mutex),
		cfg:         cfg,
		gen:         cloze.NewGenerator(rng),
		// Buffered so mutations never block on a slow observer.
		pubSub: gochannel.NewGoChannel(
			gochannel.Config{OutputChannelBuffer: 64},
			watermill.NopLogger{},
		),
		now:         time.Now,
	}

	if cfg.SeedSample {
		s.seedSample()
	}

	return s, nil
}

// Close shuts down the event bus. Subscribers' channels are closed.
func (s *Store) Close() error {
	return s.pubSub.Close()
}

// Subscribe returns the stream of store change notifications. Message
// payloads are JSON-encoded StoreEvents.
func (s *Store) Subscribe(ctx context.Context) (<-chan *message.Message, error) {
	return s.pubSub.Subscribe(ctx, TopicStoreUpdated)
}

// CreateGroup appends an empty group with the given name and announces
// the change. The trimmed name must be non-empty.
func (s *Store) CreateGroup(name string) (*types.KnowledgeGroup, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("group name is empty: %w", ErrInvalidArgument)
	}

	group := types.NewKnowledgeGroup(name)

	s.mu.Lock()
	s.groups = append(s.groups, group)
	s.mu.Unlock()

	s.notify(StoreEvent{Op: "create_group", GroupID: group.ID, GroupName: group.Name})
	return group.Clone(), nil
}

// Groups returns a snapshot of all groups in creation order.
func (s *Store) Groups() []*types.KnowledgeGroup {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*types.KnowledgeGroup, len(s.groups))
	for i, g := range s.groups {
		out[i] = g.Clone()
	}
	return out
}

// Group returns the group with the given id.
func (s *Store) Group(id string) (*types.KnowledgeGroup, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	g := s.findLocked(id)
	if g == nil {
		return nil, fmt.Errorf("group %q: %w", id, ErrNotFound)
	}
	return g.Clone(), nil
}

// Resolve returns the group matching ref by id first, then by exact
// name. The CLI accepts either form.
func (s *Store) Resolve(ref string) (*types.KnowledgeGroup, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if g := s.findLocked(ref); g != nil {
		return g.Clone(), nil
	}
	for _, g := range s.groups {
		if g.Name == ref {
			return g.Clone(), nil
		}
	}
	return nil, fmt.Errorf("group %q: %w", ref, ErrNotFound)
}

// findLocked returns the live group with the given id. Caller holds mu.
func (s *Store) findLocked(id string) *types.KnowledgeGroup {
	for _, g := range s.groups {
		if g.ID == id {
			return g
		}
	}
	return nil
}

// groupLock returns the per-group ingest mutex, creating it on first use.
func (s *Store) groupLock(id string) *sync.Mutex {
	s.ingestMu.Lock()
	defer s.ingestMu.Unlock()

	lock, ok := s.ingestLocks[id]
	if !ok {
		lock = &sync.Mutex{}
		s.ingestLocks[id] = lock
	}
	return lock
}

// notify publishes a change event. Publish failures are swallowed: the
// mutation has already been applied and the bus only fails once closed.
func (s *Store) notify(event StoreEvent) {
	payload, err := json.Marshal(event)
	if err != nil {
		return
	}
	_ = s.pubSub.Publish(TopicStoreUpdated, message.NewMessage(watermill.NewUUID(), payload))
}

// seedSample populates an empty store with the sample Biology group.
func (s *Store) seedSample() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.groups) > 0 {
		return
	}

	group := types.NewKnowledgeGroup("Biology")
	group.Files = []types.ImportedFile{
		types.NewImportedFile("CellStructure.txt", types.CategoryLearningResources),
		types.NewImportedFile("Exam-Prep.txt", types.CategoryTests),
	}
	group.Sets = []types.ClozeSet{
		types.NewClozeSet(s.now(), []types.ClozeItem{
			types.NewClozeItem(
				"The cell membrane controls the movement of substances in and out of _____.",
				"The cell membrane controls the movement of substances in and out of cells.",
				types.PriorityHigh,
			),
			types.NewClozeItem(
				"Mitochondria are often called the powerhouses of the _____.",
				"Mitochondria are often called the powerhouses of the cell.",
				types.PriorityMedium,
			),
		}),
	}

	s.groups = append(s.groups, group)
}

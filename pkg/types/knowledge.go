// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types holds the shared value types for lessnote: imported
// files, cloze items and sets, and knowledge groups.
package types

import (
	"time"

	"github.com/google/uuid"
)

// BlankMarker is the placeholder substituted for the deleted word in a
// cloze item's text.
const BlankMarker = "_____"

// Category classifies an imported file by its inferred purpose.
type Category string

const (
	CategorySyllabi           Category = "syllabi"
	CategoryLearningResources Category = "learning_resources"
	CategoryTests             Category = "tests"
)

// Priority is the review priority assigned to a cloze item.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Priorities returns the priority levels in sampling order. The
// generator draws uniformly from this slice.
func Priorities() []Priority {
	return []Priority{PriorityHigh, PriorityMedium, PriorityLow}
}

// ClozeItem is a single fill-in-the-blank study prompt. Text equals
// Original with exactly one whitespace-delimited token replaced by
// BlankMarker. Items are immutable after creation.
type ClozeItem struct {
	// ID uniquely identifies the item.
	ID string `json:"id" yaml:"id"`

	// Text is the sentence with the cloze deletion applied.
	Text string `json:"text" yaml:"text"`

	// Original is the unmodified sentence.
	Original string `json:"original" yaml:"original"`

	// Priority is the review priority: high, medium, or low.
	Priority Priority `json:"priority" yaml:"priority"`
}

// NewClozeItem constructs a ClozeItem with a fresh id.
func NewClozeItem(text, original string, priority Priority) ClozeItem {
	return ClozeItem{
		ID:       uuid.NewString(),
		Text:     text,
		Original: original,
		Priority: priority,
	}
}

// ClozeSet is a timestamped batch of cloze items produced by one
// generation run. Item order is generation order and is significant for
// preview display. Groups append whole sets, never individual items.
type ClozeSet struct {
	// ID uniquely identifies the set.
	ID string `json:"id" yaml:"id"`

	// CreatedAt records when the batch was generated.
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`

	// Items holds the generated items in generation order.
	Items []ClozeItem `json:"items" yaml:"items"`
}

// NewClozeSet constructs a ClozeSet with a fresh id, stamped with the
// given creation time.
func NewClozeSet(createdAt time.Time, items []ClozeItem) ClozeSet {
	return ClozeSet{
		ID:        uuid.NewString(),
		CreatedAt: createdAt,
		Items:     items,
	}
}

// ImportedFile references the application-owned copy of a source
// document. The path never changes after creation; the category may be
// corrected later.
type ImportedFile struct {
	// ID uniquely identifies the file.
	ID string `json:"id" yaml:"id"`

	// Path locates the durable copy under the library directory.
	Path string `json:"path" yaml:"path"`

	// Category is the inferred purpose of the document.
	Category Category `json:"category" yaml:"category"`
}

// NewImportedFile constructs an ImportedFile with a fresh id.
func NewImportedFile(path string, category Category) ImportedFile {
	return ImportedFile{
		ID:       uuid.NewString(),
		Path:     path,
		Category: category,
	}
}

// KnowledgeGroup is a user-named topic bucket holding imported files and
// the cloze sets derived from them. Files and sets are append-only; the
// name is set at creation. Groups are never deleted.
type KnowledgeGroup struct {
	// ID uniquely identifies the group.
	ID string `json:"id" yaml:"id"`

	// Name is the user-supplied group name, non-empty.
	Name string `json:"name" yaml:"name"`

	// Files holds the imported files in import order.
	Files []ImportedFile `json:"files" yaml:"files"`

	// Sets holds the cloze sets in ingestion order.
	Sets []ClozeSet `json:"sets" yaml:"sets"`
}

// NewKnowledgeGroup constructs an empty group with a fresh id.
func NewKnowledgeGroup(name string) *KnowledgeGroup {
	return &KnowledgeGroup{ID: uuid.NewString(), Name: name}
}

// Items flattens the group's sets into a single slice, preserving set
// order and item order within each set.
func (g *KnowledgeGroup) Items() []ClozeItem {
	var items []ClozeItem
	for _, set := range g.Sets {
		items = append(items, set.Items...)
	}
	return items
}

// ItemCount returns the total number of cloze items across all sets.
func (g *KnowledgeGroup) ItemCount() int {
	n := 0
	for _, set := range g.Sets {
		n += len(set.Items)
	}
	return n
}

// Clone returns a deep copy of the group. The store hands out clones so
// callers never alias its internal state.
func (g *KnowledgeGroup) Clone() *KnowledgeGroup {
	c := &KnowledgeGroup{ID: g.ID, Name: g.Name}
	c.Files = append([]ImportedFile(nil), g.Files...)
	c.Sets = make([]ClozeSet, len(g.Sets))
	for i, set := range g.Sets {
		c.Sets[i] = ClozeSet{
			ID:        set.ID,
			CreatedAt: set.CreatedAt,
			Items:     append([]ClozeItem(nil), set.Items...),
		}
	}
	return c
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package cloze generates fill-in-the-blank study items from raw text.
package cloze

import (
	"math/rand"
	"strings"
	"time"

	"github.com/pdiddy/lessnote/pkg/types"
)

// Rand is the source of randomness for word and priority selection.
// *math/rand.Rand satisfies it; tests inject a fixed-sequence stub.
type Rand interface {
	// Intn returns a non-negative pseudo-random number in [0, n).
	Intn(n int) int
}

// Generator produces cloze items from text. For each emitted sentence it
// draws exactly twice from its Rand: first the deletion target index in
// [0, tokens), then the priority index in [0, 3).
type Generator struct {
	rng Rand
}

// NewGenerator constructs a Generator. A nil rng selects a time-seeded
// source.
func NewGenerator(rng Rand) *Generator {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Generator{rng: rng}
}

// Generate splits text into candidate sentences on the literal '.'
// character and emits one cloze item per sentence that contains at least
// one token. Sentences are trimmed of surrounding whitespace, tokenized
// on single spaces, and one token chosen uniformly at random is replaced
// by the blank marker. Output order follows input order; tokenless
// sentences are silently omitted.
func (g *Generator) Generate(text string) []types.ClozeItem {
	var items []types.ClozeItem

	for _, segment := range strings.Split(text, ".") {
		if segment == "" {
			continue
		}

		clean := strings.TrimSpace(segment)
		parts := strings.Split(clean, " ")

		var tokens []string
		for _, p := range parts {
			if p != "" {
				tokens = append(tokens, p)
			}
		}
		if len(tokens) == 0 {
			continue
		}

		target := tokens[g.rng.Intn(len(tokens))]
		priorities := types.Priorities()
		priority := priorities[g.rng.Intn(len(priorities))]

		items = append(items, types.NewClozeItem(
			blankToken(parts, target),
			clean,
			priority,
		))
	}

	return items
}

// blankToken replaces the first whole-token occurrence of target with
// the blank marker and rejoins on single spaces, preserving the
// sentence's original spacing. Matching whole tokens, not substrings,
// keeps a repeated word from corrupting an earlier longer word.
func blankToken(parts []string, target string) string {
	out := make([]string, len(parts))
	copy(out, parts)
	for i, p := range out {
		if p == target {
			out[i] = types.BlankMarker
			break
		}
	}
	return strings.Join(out, " ")
}

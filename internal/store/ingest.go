// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/pdiddy/lessnote/internal/classify"
	"github.com/pdiddy/lessnote/pkg/types"
)

// IngestRequest names the source files and the target group for one
// ingestion run. Exactly one of GroupID and NewGroupName must be set:
// GroupID ingests into an existing group, NewGroupName creates the
// group first.
type IngestRequest struct {
	Sources      []string
	GroupID      string
	NewGroupName string
}

// FileFailure records one source file that could not be ingested.
type FileFailure struct {
	Source string
	Reason string
}

// IngestSummary holds counts from an ingestion run.
type IngestSummary struct {
	// GroupID identifies the group the run targeted (or created).
	GroupID string

	// Imported counts files copied into the library.
	Imported int

	// Items counts cloze items generated across all imported files.
	Items int

	// Failures lists the files that could not be ingested.
	Failures []FileFailure
}

// Total returns the number of source files processed.
func (s IngestSummary) Total() int {
	return s.Imported + len(s.Failures)
}

// HasFailures reports whether any file failed.
func (s IngestSummary) HasFailures() bool {
	return len(s.Failures) > 0
}

// Ingest copies each source file into the library, classifies it,
// generates cloze items from its text, and appends the results to the
// target group as one timestamped set. Per-file failures are collected
// and reported alongside successes; they never abort sibling files.
// Files and items from one call become visible to observers as a single
// update. Per-file progress is written to w.
//
// In new-group mode the group is created before any file is processed,
// so it exists (empty) even when every file fails.
func (s *Store) Ingest(ctx context.Context, req IngestRequest, w io.Writer) (IngestSummary, error) {
	if len(req.Sources) == 0 {
		return IngestSummary{}, fmt.Errorf("no source files given: %w", ErrInvalidArgument)
	}
	if (req.GroupID == "") == (req.NewGroupName == "") {
		return IngestSummary{}, fmt.Errorf("exactly one of group id and new group name required: %w", ErrInvalidArgument)
	}

	groupID := req.GroupID
	if req.NewGroupName != "" {
		group, err := s.CreateGroup(req.NewGroupName)
		if err != nil {
			return IngestSummary{}, err
		}
		groupID = group.ID
	} else if _, err := s.Group(groupID); err != nil {
		return IngestSummary{}, err
	}

	// Same-group ingests serialize; other groups are unaffected.
	lock := s.groupLock(groupID)
	lock.Lock()
	defer lock.Unlock()

	summary := IngestSummary{GroupID: groupID}
	var files []types.ImportedFile
	var items []types.ClozeItem

	for _, src := range req.Sources {
		select {
		case <-ctx.Done():
			return summary, ctx.Err()
		default:
		}

		base := filepath.Base(src)

		dest, err := s.copyIntoLibrary(src)
		if err != nil {
			fmt.Fprintf(w, "failed:   %s (%v)\n", base, err)
			summary.Failures = append(summary.Failures, FileFailure{Source: src, Reason: err.Error()})
			continue
		}

		file := types.NewImportedFile(dest, classify.Classify(src))
		files = append(files, file)
		summary.Imported++

		text, ok := readText(dest)
		if !ok {
			// Not an error: binary content just contributes no items.
			fmt.Fprintf(w, "imported: %s (no text extracted)\n", base)
			continue
		}

		generated := s.gen.Generate(text)
		items = append(items, generated...)
		fmt.Fprintf(w, "imported: %s (%s, %d items)\n", base, file.Category, len(generated))
	}

	if len(files) > 0 {
		s.appendBatch(groupID, files, types.NewClozeSet(s.now(), items))
	}
	summary.Items = len(items)

	fmt.Fprintf(w, "\nimported: %d, items: %d, failed: %d\n",
		summary.Imported, summary.Items, len(summary.Failures))

	return summary, nil
}

// appendBatch applies one ingestion's files and set to the group as a
// single update and announces it.
func (s *Store) appendBatch(groupID string, files []types.ImportedFile, set types.ClozeSet) {
	s.mu.Lock()
	group := s.findLocked(groupID)
	if group == nil {
		// Groups are never deleted, so the id resolved earlier in this
		// call still resolves here.
		s.mu.Unlock()
		return
	}
	group.Files = append(group.Files, files...)
	group.Sets = append(group.Sets, set)
	name := group.Name
	s.mu.Unlock()

	s.notify(StoreEvent{
		Op:        "ingest",
		GroupID:   groupID,
		GroupName: name,
		Files:     len(files),
		Items:     len(set.Items),
	})
}

// copyIntoLibrary copies src into the imports directory under a unique
// name combining a fresh id with the original base name. The copy is a
// design requirement: the source location may be transient or revoked
// after the picker session ends, so the store references its own
// durable copy.
func (s *Store) copyIntoLibrary(src string) (string, error) {
	in, err := os.Open(src)
	if err != nil {
		return "", fmt.Errorf("opening source: %v: %w", err, ErrFileAccess)
	}
	defer in.Close()

	dest := filepath.Join(s.cfg.LibraryDir, importsDir,
		uuid.NewString()+"_"+filepath.Base(src))

	out, err := os.Create(dest)
	if err != nil {
		return "", fmt.Errorf("creating copy: %v: %w", err, ErrFileAccess)
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dest)
		return "", fmt.Errorf("copying: %v: %w", err, ErrFileAccess)
	}
	if err := out.Close(); err != nil {
		os.Remove(dest)
		return "", fmt.Errorf("closing copy: %v: %w", err, ErrFileAccess)
	}

	return dest, nil
}

// readText reads the copied file and reports whether its content is
// usable as text. Undecodable bytes or NUL bytes mark it binary.
func readText(path string) (string, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", false
	}
	if !utf8.Valid(data) || bytes.ContainsRune(data, 0) {
		return "", false
	}
	return string(data), true
}

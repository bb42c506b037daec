// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/lessnote/pkg/types"
)

// scriptRand plays a fixed sequence of Intn results.
type scriptRand struct {
	seq []int
	pos int
}

func (r *scriptRand) Intn(n int) int {
	v := r.seq[r.pos%len(r.seq)] % n
	r.pos++
	return v
}

// exportFixture builds a store holding one group with exactly one item:
// {text: "a _____ b", original: "a c b", priority: high}.
func exportFixture(t *testing.T) (*Store, string) {
	t.Helper()

	s, err := NewStore(testConfig(t), &scriptRand{seq: []int{1, 0}})
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	summary, _ := ingest(t, s, IngestRequest{
		Sources:      []string{writeSource(t, "tiny.txt", "a c b")},
		NewGroupName: "Sample",
	})
	require.Equal(t, 1, summary.Items)
	return s, summary.GroupID
}

func TestExportCSVExactContract(t *testing.T) {
	s, groupID := exportFixture(t)

	path, err := s.ExportCSV(groupID)
	require.NoError(t, err)
	assert.Equal(t, "Sample.csv", filepath.Base(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Text,Original,Priority\n\"a _____ b\",\"a c b\",high\n", string(data))
}

func TestExportCSVIdempotent(t *testing.T) {
	s, groupID := exportFixture(t)

	path1, err := s.ExportCSV(groupID)
	require.NoError(t, err)
	first, err := os.ReadFile(path1)
	require.NoError(t, err)

	path2, err := s.ExportCSV(groupID)
	require.NoError(t, err)
	second, err := os.ReadFile(path2)
	require.NoError(t, err)

	assert.Equal(t, path1, path2)
	assert.Equal(t, first, second, "unchanged group exports byte-identical output")
}

func TestExportCSVDoesNotEscapeEmbeddedQuotes(t *testing.T) {
	// The CSV contract is literal: text and original are wrapped in
	// double quotes with no escaping of embedded quotes or commas.
	s := testStore(t)

	summary, _ := ingest(t, s, IngestRequest{
		Sources:      []string{writeSource(t, "quotes.txt", `He said "hi", twice`)},
		NewGroupName: "Quotes",
	})
	require.Equal(t, 1, summary.Items)

	path, err := s.ExportCSV(summary.GroupID)
	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)

	assert.Equal(t,
		"Text,Original,Priority\n\"_____ said \"hi\", twice\",\"He said \"hi\", twice\",high\n",
		string(data))
}

func TestExportCSVUnknownGroup(t *testing.T) {
	s := testStore(t)

	_, err := s.ExportCSV("missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestExportCSVSpansAllSets(t *testing.T) {
	s := testStore(t)

	created, err := s.CreateGroup("Merged")
	require.NoError(t, err)
	ingest(t, s, IngestRequest{
		Sources: []string{writeSource(t, "a.txt", "first sentence")},
		GroupID: created.ID,
	})
	ingest(t, s, IngestRequest{
		Sources: []string{writeSource(t, "b.txt", "second sentence")},
		GroupID: created.ID,
	})

	path, err := s.ExportCSV(created.ID)
	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)

	assert.Equal(t,
		"Text,Original,Priority\n\"_____ sentence\",\"first sentence\",high\n\"_____ sentence\",\"second sentence\",high\n",
		string(data))
}

func TestExportXLSX(t *testing.T) {
	s, groupID := exportFixture(t)

	path, err := s.ExportXLSX(groupID)
	require.NoError(t, err)
	assert.Equal(t, "Sample.xlsx", filepath.Base(path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	const sheet = "Cloze Items"
	cell := func(ref string) string {
		v, err := f.GetCellValue(sheet, ref)
		require.NoError(t, err)
		return v
	}
	assert.Equal(t, "Text", cell("A1"))
	assert.Equal(t, "Original", cell("B1"))
	assert.Equal(t, "Priority", cell("C1"))
	assert.Equal(t, "a _____ b", cell("A2"))
	assert.Equal(t, "a c b", cell("B2"))
	assert.Equal(t, "high", cell("C2"))
}

func TestExportYAML(t *testing.T) {
	s, groupID := exportFixture(t)

	path, err := s.ExportYAML(groupID)
	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var entries []ExportEntry
	require.NoError(t, yaml.Unmarshal(data, &entries))
	require.Len(t, entries, 1)
	assert.Equal(t, "a _____ b", entries[0].Text)
	assert.Equal(t, "a c b", entries[0].Original)
	assert.Equal(t, types.PriorityHigh, entries[0].Priority)
	assert.NotEmpty(t, entries[0].SetID)
	assert.False(t, entries[0].CreatedAt.IsZero())
}

func TestExportJSON(t *testing.T) {
	s, groupID := exportFixture(t)

	path, err := s.ExportJSON(groupID)
	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var entries []ExportEntry
	require.NoError(t, json.Unmarshal(data, &entries))
	require.Len(t, entries, 1)
	assert.Equal(t, "a _____ b", entries[0].Text)
	assert.NotEmpty(t, entries[0].ID)
}

func TestExportEmptyGroupWritesHeaderOnly(t *testing.T) {
	s := testStore(t)

	created, err := s.CreateGroup("Bare")
	require.NoError(t, err)

	path, err := s.ExportCSV(created.ID)
	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Text,Original,Priority\n", string(data))
}

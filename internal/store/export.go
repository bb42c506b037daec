// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/lessnote/pkg/types"
)

// ExportEntry is one cloze item flattened for YAML and JSON export,
// carrying its set provenance.
type ExportEntry struct {
	ID        string         `json:"id" yaml:"id"`
	Text      string         `json:"text" yaml:"text"`
	Original  string         `json:"original" yaml:"original"`
	Priority  types.Priority `json:"priority" yaml:"priority"`
	SetID     string         `json:"set_id" yaml:"set_id"`
	CreatedAt time.Time      `json:"created_at" yaml:"created_at"`
}

// ExportCSV writes the group's cloze items to <group name>.csv in the
// export directory and returns the path. The format is the fixed
// contract consumed by review tools: header Text,Original,Priority, one
// row per item across all sets, text and original wrapped in double
// quotes. Embedded quotes and commas are not escaped; callers feeding
// untrusted text into spreadsheet software should be aware.
func (s *Store) ExportCSV(groupID string) (string, error) {
	group, err := s.Group(groupID)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("Text,Original,Priority\n")
	for _, item := range group.Items() {
		b.WriteString(`"` + item.Text + `","` + item.Original + `",` + string(item.Priority) + "\n")
	}

	path := s.exportPath(group.Name, "csv")
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %v: %w", path, err, ErrWrite)
	}
	return path, nil
}

// ExportXLSX writes the group's cloze items to <group name>.xlsx with
// the same columns as the CSV export, on a sheet named "Cloze Items".
func (s *Store) ExportXLSX(groupID string) (string, error) {
	group, err := s.Group(groupID)
	if err != nil {
		return "", err
	}

	const sheet = "Cloze Items"
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return "", fmt.Errorf("naming sheet: %w", err)
	}
	f.SetCellValue(sheet, "A1", "Text")
	f.SetCellValue(sheet, "B1", "Original")
	f.SetCellValue(sheet, "C1", "Priority")

	for i, item := range group.Items() {
		row := i + 2
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), item.Text)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), item.Original)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), string(item.Priority))
	}

	path := s.exportPath(group.Name, "xlsx")
	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("writing %s: %v: %w", path, err, ErrWrite)
	}
	return path, nil
}

// ExportYAML writes the group's cloze items to <group name>.yaml.
func (s *Store) ExportYAML(groupID string) (string, error) {
	group, err := s.Group(groupID)
	if err != nil {
		return "", err
	}

	data, err := yaml.Marshal(exportEntries(group))
	if err != nil {
		return "", fmt.Errorf("marshaling YAML: %w", err)
	}

	path := s.exportPath(group.Name, "yaml")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %v: %w", path, err, ErrWrite)
	}
	return path, nil
}

// ExportJSON writes the group's cloze items to <group name>.json.
func (s *Store) ExportJSON(groupID string) (string, error) {
	group, err := s.Group(groupID)
	if err != nil {
		return "", err
	}

	data, err := json.MarshalIndent(exportEntries(group), "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshaling JSON: %w", err)
	}

	path := s.exportPath(group.Name, "json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %v: %w", path, err, ErrWrite)
	}
	return path, nil
}

func (s *Store) exportPath(groupName, ext string) string {
	return filepath.Join(s.cfg.ExportDir, groupName+"."+ext)
}

func exportEntries(group *types.KnowledgeGroup) []ExportEntry {
	entries := make([]ExportEntry, 0, group.ItemCount())
	for _, set := range group.Sets {
		for _, item := range set.Items {
			entries = append(entries, ExportEntry{
				ID:        item.ID,
				Text:      item.Text,
				Original:  item.Original,
				Priority:  item.Priority,
				SetID:     set.ID,
				CreatedAt: set.CreatedAt,
			})
		}
	}
	return entries
}

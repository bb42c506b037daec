// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// StoreConfig holds settings for the knowledge store.
type StoreConfig struct {
	// LibraryDir is the base directory for application-owned file copies
	// (contains imports/).
	LibraryDir string `json:"library_dir" yaml:"library_dir"`

	// ExportDir is the directory export files are written to. Empty
	// selects the OS temporary directory.
	ExportDir string `json:"export_dir" yaml:"export_dir"`

	// SeedSample controls whether an empty store is seeded with the
	// sample Biology group at startup.
	SeedSample bool `json:"seed_sample" yaml:"seed_sample"`

	// MaxPreview is the number of items shown per set in group previews
	// (default 3).
	MaxPreview int `json:"max_preview" yaml:"max_preview"`
}

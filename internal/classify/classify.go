// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package classify infers the category of an imported file from its name.
package classify

import (
	"path/filepath"
	"strings"

	"github.com/pdiddy/lessnote/pkg/types"
)

// Classify maps a file name to a category using case-insensitive
// substring checks in fixed priority order: "syllabus" wins over
// "test"/"exam", anything else is a learning resource. The order
// matters because a name can satisfy more than one pattern. Total
// function; never fails.
func Classify(fileName string) types.Category {
	name := strings.ToLower(filepath.Base(fileName))

	switch {
	case strings.Contains(name, "syllabus"):
		return types.CategorySyllabi
	case strings.Contains(name, "test"), strings.Contains(name, "exam"):
		return types.CategoryTests
	default:
		return types.CategoryLearningResources
	}
}

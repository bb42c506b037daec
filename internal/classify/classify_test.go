// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pdiddy/lessnote/pkg/types"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		fileName string
		want     types.Category
	}{
		{
			name:     "syllabus file",
			fileName: "Syllabus.pdf",
			want:     types.CategorySyllabi,
		},
		{
			name:     "exam file",
			fileName: "final-exam.txt",
			want:     types.CategoryTests,
		},
		{
			name:     "test file",
			fileName: "chapter1-test.txt",
			want:     types.CategoryTests,
		},
		{
			name:     "plain resource",
			fileName: "CellStructure.txt",
			want:     types.CategoryLearningResources,
		},
		{
			name:     "syllabus dominates test when both present",
			fileName: "syllabus-test.txt",
			want:     types.CategorySyllabi,
		},
		{
			name:     "syllabus dominates exam when both present",
			fileName: "Exam-Syllabus.pdf",
			want:     types.CategorySyllabi,
		},
		{
			name:     "case insensitive",
			fileName: "MIDTERM-EXAM-NOTES.md",
			want:     types.CategoryTests,
		},
		{
			name:     "matches base name of a path",
			fileName: "/home/user/courses/biology/syllabus_v2.txt",
			want:     types.CategorySyllabi,
		},
		{
			name:     "directory names do not leak into the match",
			fileName: "/tmp/test-fixtures/chapter1.txt",
			want:     types.CategoryLearningResources,
		},
		{
			name:     "empty name",
			fileName: "",
			want:     types.CategoryLearningResources,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.fileName))
		})
	}
}

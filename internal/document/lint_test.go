package document_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/build-api/internal/document"
	"github.com/KirkDiggler/build-api/internal/entities/build"
	"github.com/KirkDiggler/build-api/internal/errors"
	"github.com/KirkDiggler/build-api/internal/testutils"
)

func TestLint_CleanDocument(t *testing.T) {
	assert.NoError(t, document.Lint(testutils.LoadSampleDocument(t)))
}

func TestLint_ReportsProblems(t *testing.T) {
	zero := 0
	doc := &build.Document{Categories: []*build.Category{
		{
			Name:           "",
			RequiresOption: build.StringList{"ghost"},
			Options: []*build.Option{
				{ID: "a", Prerequisites: []string{"b && phantom", "a; drop"}},
				{ID: "b", MaxSelections: &zero, ConflictsWith: []string{"b", "nobody"}},
				{ID: "a"},
				nil,
			},
		},
	}}

	err := document.Lint(doc)
	require.Error(t, err)
	assert.True(t, errors.IsInvalidArgument(err))

	fields := errors.GetMeta(err)["validation_errors"].(map[string][]string)
	assert.Contains(t, fields, "categories[0].name")
	assert.Equal(t, []string{`references unknown option "ghost"`}, fields["categories[0].requiresOption[0]"])
	assert.Equal(t, []string{`references unknown option "phantom"`}, fields["categories[0].options[0].prerequisites[0]"])
	assert.Contains(t, fields["categories[0].options[0].prerequisites[1]"][0], "is not an option id or valid expression")
	assert.Contains(t, fields, "categories[0].options[1].maxSelections")
	assert.Equal(t, []string{"conflicts with itself"}, fields["categories[0].options[1].conflictsWith[0]"])
	assert.Equal(t, []string{`references unknown option "nobody"`}, fields["categories[0].options[1].conflictsWith[1]"])
	assert.Equal(t, []string{`duplicates option id "a"`}, fields["categories[0].options[2].id"])
	assert.Equal(t, []string{"is null"}, fields["categories[0].options[3]"])
}

func TestLint_PrerequisiteMatchingIDIsNotParsed(t *testing.T) {
	doc := &build.Document{Categories: []*build.Category{
		{Name: "C", Options: []*build.Option{
			{ID: "opt-1"},
			{ID: "opt-2", Prerequisites: []string{"opt-1"}},
		}},
	}}

	assert.NoError(t, document.Lint(doc))
}

package build_test

import (
	"encoding/json"
	"testing"

	"github.com/KirkDiggler/rpg-toolkit/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/build-api/internal/entities/build"
)

func TestOption_Cap(t *testing.T) {
	three := 3

	assert.Equal(t, 1, (&build.Option{ID: "a"}).Cap())
	assert.False(t, (&build.Option{ID: "a"}).IsRepeatable())
	assert.Equal(t, 3, (&build.Option{ID: "a", MaxSelections: &three}).Cap())
	assert.True(t, (&build.Option{ID: "a", MaxSelections: &three}).IsRepeatable())
}

func TestOption_ImplementsEntity(t *testing.T) {
	var entity core.Entity = &build.Option{ID: "sword"}
	assert.Equal(t, "sword", entity.GetID())
	assert.Equal(t, build.EntityTypeOption, entity.GetType())

	entity = &build.Build{ID: "b1"}
	assert.Equal(t, build.EntityTypeBuild, entity.GetType())
}

func TestStringList_UnmarshalJSON(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected build.StringList
		wantErr  bool
	}{
		{name: "single string", input: `"magic"`, expected: build.StringList{"magic"}},
		{name: "list", input: `["a","b"]`, expected: build.StringList{"a", "b"}},
		{name: "empty string", input: `""`, expected: nil},
		{name: "null", input: `null`, expected: nil},
		{name: "number", input: `4`, wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var list build.StringList
			err := json.Unmarshal([]byte(tc.input), &list)
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, list)
		})
	}
}

func TestIsMetadataType(t *testing.T) {
	assert.True(t, build.IsMetadataType("points"))
	assert.True(t, build.IsMetadataType("headerImage"))
	assert.False(t, build.IsMetadataType(""))
	assert.False(t, build.IsMetadataType("perks"))
}

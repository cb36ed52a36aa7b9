package ignore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmptyOverrideIncludesEverything(t *testing.T) {
	o, err := NewBuilder("/repo").Build()
	require.NoError(t, err)

	assert.True(t, o.Empty())
	assert.True(t, o.IsIncluded("/repo/main.go", false))
	assert.True(t, o.IsIncluded("/repo/.git", true))
}

func TestExclusionRule(t *testing.T) {
	b := NewBuilder("/repo")
	require.NoError(t, b.Add("!.git"))

	o, err := b.Build()
	require.NoError(t, err)

	assert.False(t, o.Empty())
	assert.False(t, o.IsIncluded("/repo/.git", true))
	assert.True(t, o.IsIncluded("/repo/src", true))
	assert.True(t, o.IsIncluded("/repo/main.go", false))
}

func TestWhitelistRule(t *testing.T) {
	b := NewBuilder("/repo")
	require.NoError(t, b.Add("*.rs"))

	o, err := b.Build()
	require.NoError(t, err)

	assert.True(t, o.IsIncluded("/repo/main.rs", false))
	assert.False(t, o.IsIncluded("/repo/main.py", false))

	// Directories always pass so traversal can descend.
	assert.True(t, o.IsIncluded("/repo/src", true))
}

func TestCaseInsensitiveWhitelist(t *testing.T) {
	b := NewBuilder("/repo").CaseInsensitive(true)
	require.NoError(t, b.Add("*.RS"))

	o, err := b.Build()
	require.NoError(t, err)

	assert.True(t, o.IsIncluded("/repo/MAIN.rs", false))
	assert.True(t, o.IsIncluded("/repo/main.Rs", false))
	assert.False(t, o.IsIncluded("/repo/main.py", false))
}

func TestCaseSensitiveWhitelistRejectsOtherCase(t *testing.T) {
	b := NewBuilder("/repo")
	require.NoError(t, b.Add("*.rs"))

	o, err := b.Build()
	require.NoError(t, err)

	assert.False(t, o.IsIncluded("/repo/MAIN.RS", false))
}

func TestRelativePathsResolveAgainstBase(t *testing.T) {
	b := NewBuilder("/repo")
	require.NoError(t, b.Add("!.git"))

	o, err := b.Build()
	require.NoError(t, err)

	assert.False(t, o.IsIncluded(".git", true))
	assert.True(t, o.IsIncluded("src", true))
}

func TestMalformedRules(t *testing.T) {
	tests := []struct {
		name string
		rule string
	}{
		{"empty rule", ""},
		{"whitespace rule", "   "},
		{"bare exclamation", "!"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewBuilder("/repo").Add(tt.rule)
			require.Error(t, err)

			var ruleErr *RuleError
			assert.ErrorAs(t, err, &ruleErr)
		})
	}
}

package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecord_ID(t *testing.T) {
	assert.Equal(t, "abc", Record{"_id": "abc"}.ID())
	assert.Equal(t, "", Record{"name": "hero"}.ID())
	assert.Equal(t, "", Record{"_id": 42}.ID())
}

func TestRecord_SetAndLookupNested(t *testing.T) {
	r := Record{}
	r.Set("name", "Ada")
	r.Set("socials.github", "https://github.com/ada")
	r.Set("socials.email", "ada@example.com")

	v, ok := r.Lookup("socials.github")
	require.True(t, ok)
	assert.Equal(t, "https://github.com/ada", v)

	_, ok = r.Lookup("socials.twitter")
	assert.False(t, ok)

	_, ok = r.Lookup("name.first")
	assert.False(t, ok, "cannot descend into a scalar")
}

func TestRecord_DecodeIntoModel(t *testing.T) {
	r := Record{
		"_id":          "e1",
		"company":      "Acme",
		"position":     "Engineer",
		"current":      true,
		"technologies": []string{"Go", "Redis"},
	}

	var exp Experience
	require.NoError(t, r.Decode(&exp))

	assert.Equal(t, "e1", exp.ID)
	assert.Equal(t, "Acme", exp.Company)
	assert.True(t, exp.Current)
	assert.Equal(t, []string{"Go", "Redis"}, exp.Technologies)
}

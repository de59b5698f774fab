package catalog

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFlattenKeepsOrder(t *testing.T) {
	m := NewMapping([]Category{
		{Name: "b", Items: []string{"b1", "b2"}},
		{Name: "a", Items: []string{"a1"}},
	})
	entries := m.Flatten()
	require.Equal(t, []Entry{
		{Category: "b", Description: "b1"},
		{Category: "b", Description: "b2"},
		{Category: "a", Description: "a1"},
	}, entries)
	require.Equal(t, 3, m.Len())
	require.Equal(t, []string{"b1", "b2", "a1"}, Descriptions(entries))
}

func TestLookupReturnsCopy(t *testing.T) {
	m := Interests()
	items, ok := m.Lookup("technical")
	require.True(t, ok)
	require.Equal(t, []string{"Coding", "Data analysis"}, items)

	items[0] = "changed"
	again, _ := m.Lookup("technical")
	require.Equal(t, "Coding", again[0])

	_, ok = m.Lookup("Technical")
	require.False(t, ok)
	_, ok = m.LookupFold(" Technical ")
	require.True(t, ok)
}

func TestDuplicateCategoryIgnored(t *testing.T) {
	m := NewMapping([]Category{
		{Name: "x", Items: []string{"first"}},
		{Name: "x", Items: []string{"second"}},
	})
	items, ok := m.Lookup("x")
	require.True(t, ok)
	require.Equal(t, []string{"first"}, items)
	require.Equal(t, []string{"x"}, m.Names())
}

func TestSideHustlesCatalog(t *testing.T) {
	m := SideHustles()
	require.Len(t, m.Names(), 10)
	items, ok := m.Lookup("coding")
	require.True(t, ok)
	require.Equal(t, []string{"Freelance developer", "Tech consultant", "Web developer"}, items)
	require.Len(t, DefaultSuggestions(), 2)
}

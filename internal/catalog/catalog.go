package catalog

import "strings"

type Category struct {
	Name  string
	Items []string
}

type Entry struct {
	Category    string `json:"category"`
	Description string `json:"description"`
}

// Mapping is an ordered, read-only category -> recommendations table.
type Mapping struct {
	categories []Category
	index      map[string]int
}

func NewMapping(categories []Category) *Mapping {
	m := &Mapping{
		categories: make([]Category, 0, len(categories)),
		index:      make(map[string]int, len(categories)),
	}
	for _, c := range categories {
		if _, ok := m.index[c.Name]; ok {
			continue
		}
		items := make([]string, len(c.Items))
		copy(items, c.Items)
		m.index[c.Name] = len(m.categories)
		m.categories = append(m.categories, Category{Name: c.Name, Items: items})
	}
	return m
}

// Lookup returns a copy of the items for an exact category name.
func (m *Mapping) Lookup(name string) ([]string, bool) {
	idx, ok := m.index[name]
	if !ok {
		return nil, false
	}
	items := m.categories[idx].Items
	out := make([]string, len(items))
	copy(out, items)
	return out, true
}

func (m *Mapping) LookupFold(name string) ([]string, bool) {
	return m.Lookup(strings.ToLower(strings.TrimSpace(name)))
}

func (m *Mapping) Names() []string {
	names := make([]string, 0, len(m.categories))
	for _, c := range m.categories {
		names = append(names, c.Name)
	}
	return names
}

// Flatten returns every item in category order, then item order.
func (m *Mapping) Flatten() []Entry {
	var out []Entry
	for _, c := range m.categories {
		for _, item := range c.Items {
			out = append(out, Entry{Category: c.Name, Description: item})
		}
	}
	return out
}

func (m *Mapping) Len() int {
	n := 0
	for _, c := range m.categories {
		n += len(c.Items)
	}
	return n
}

func Descriptions(entries []Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Description
	}
	return out
}

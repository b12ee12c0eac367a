package cmd

import (
	"testing"

	"github.com/mynades/mynades/internal/store"
	"github.com/stretchr/testify/assert"
)

func TestFilterMaps(t *testing.T) {
	maps := []store.Map{
		{ID: 1, Name: "Mirage"},
		{ID: 2, Name: "Dust2"},
		{ID: 3, Name: "Dust"},
	}

	tests := []struct {
		name    string
		pattern string
		want    []int
	}{
		{name: "no pattern", pattern: "", want: []int{1, 2, 3}},
		{name: "prefix", pattern: "Dust*", want: []int{2, 3}},
		{name: "single char", pattern: "Dust?", want: []int{2}},
		{name: "no match", pattern: "Nuke", want: []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := []int{}
			for _, m := range filterMaps(maps, tt.pattern) {
				got = append(got, m.ID)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCheatSheet(t *testing.T) {
	m := store.Map{ID: 1, Name: "Mirage"}

	assert.Equal(t, "# Mirage\n\n_No shortcuts yet._\n", cheatSheet(m, nil))

	got := cheatSheet(m, []store.Shortcut{
		{ID: 1, Shortcut: "Ctrl + K", Description: "smoke | window"},
		{ID: 2, Shortcut: "Alt + F4", Description: "two\nlines"},
	})
	assert.Equal(t, "# Mirage\n\n"+
		"| Shortcut | Description |\n|---|---|\n"+
		"| `Ctrl + K` | smoke \\| window |\n"+
		"| `Alt + F4` | two lines |\n", got)
}

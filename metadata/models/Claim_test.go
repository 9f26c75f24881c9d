package models_test

import (
	"reflect"
	"testing"

	"github.com/NiubilityNetCore/claim-share-server/metadata/models"
)

func TestParseAccessLevel(t *testing.T) {
	cases := []struct {
		in       string
		expected models.AccessLevel
		ok       bool
	}{
		{"View", models.LevelView, true},
		{"view", models.LevelView, true},
		{"EDIT", models.LevelEdit, true},
		{"Add", models.LevelAdd, true},
		{"All", models.LevelAll, true},
		{"", models.LevelAll, true},
		{"Owner", 0, false},
		{"delete", 0, false},
	}
	for _, c := range cases {
		level, ok := models.ParseAccessLevel(c.in)
		if ok != c.ok || level != c.expected {
			t.Errorf("ParseAccessLevel(%q): expected (%v, %v) got (%v, %v)", c.in, c.expected, c.ok, level, ok)
		}
	}
}

func TestImpliedUpward(t *testing.T) {
	cases := []struct {
		level    models.AccessLevel
		expected []string
	}{
		{models.LevelView, []string{"View", "Edit", "Add", "All"}},
		{models.LevelEdit, []string{"Edit", "Add", "All"}},
		{models.LevelAdd, []string{"Add", "All"}},
		{models.LevelAll, []string{"All"}},
	}
	for _, c := range cases {
		got := c.level.ImpliedUpward()
		if !reflect.DeepEqual(got, c.expected) {
			t.Errorf("ImpliedUpward(%v): expected %v got %v", c.level, c.expected, got)
		}
	}
}

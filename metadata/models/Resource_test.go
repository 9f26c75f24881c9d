package models_test

import (
	"testing"

	"github.com/NiubilityNetCore/claim-share-server/metadata/models"
)

func TestNewResource(t *testing.T) {
	cases := []struct {
		dataType string
		itemID   string
		expected string
		wantErr  bool
	}{
		{"Country", "", "Country", false},
		{"Country", "0123456789abcdef0123456789abcdef", "Country{0123456789abcdef0123456789abcdef}", false},
		{"Leader2", "", "Leader2", false},
		{"", "", "", true},
		{"2Country", "", "", true},
		{"Coun-try", "", "", true},
		{"Country", "notahexid", "", true},
		{"Country", "0123456789abcdef0123456789abcde", "", true},
	}

	for _, c := range cases {
		r, err := models.NewResource(c.dataType, c.itemID)
		if c.wantErr {
			if err == nil {
				t.Errorf("NewResource(%q, %q): expected error", c.dataType, c.itemID)
			}
			continue
		}
		if err != nil {
			t.Errorf("NewResource(%q, %q): unexpected error %v", c.dataType, c.itemID, err)
			continue
		}
		if r.String() != c.expected {
			t.Errorf("NewResource(%q, %q): expected %q got %q", c.dataType, c.itemID, c.expected, r.String())
		}
	}
}

func TestParseResourceRoundTrip(t *testing.T) {
	for _, s := range []string{"Country", "Country{0123456789abcdef0123456789abcdef}"} {
		r, err := models.ParseResource(s)
		if err != nil {
			t.Fatalf("ParseResource(%q): %v", s, err)
		}
		if r.String() != s {
			t.Errorf("round trip of %q yielded %q", s, r.String())
		}
	}
	if _, err := models.ParseResource("Country{short}"); err == nil {
		t.Error("expected error for malformed item id")
	}
}

func TestResourceIsItem(t *testing.T) {
	item, _ := models.NewResource("Country", "0123456789abcdef0123456789abcdef")
	if !item.IsItem() {
		t.Error("expected item descriptor")
	}
	if item.TypeResource().IsItem() {
		t.Error("TypeResource must drop the item scope")
	}
	if item.TypeResource().String() != "Country" {
		t.Errorf("expected Country got %s", item.TypeResource().String())
	}
}

package models

import (
	"errors"
	"regexp"
)

// ErrMalformedResource is returned when a resource descriptor or its parts do
// not parse.
var ErrMalformedResource = errors.New("models: malformed resource descriptor")

var (
	typeNamePattern = regexp.MustCompile(`^[A-Za-z][0-9A-Za-z]*$`)
	itemIDPattern   = regexp.MustCompile(`^[0-9a-fA-F]{32}$`)
	resourcePattern = regexp.MustCompile(`^([A-Za-z][0-9A-Za-z]*)(?:\{([0-9a-fA-F]{32})\})?$`)
)

// Resource describes what a claim applies to, a data type name optionally
// scoped to one item instance, rendered as Country or Country{id}.
type Resource struct {
	Type   string
	ItemID string
}

// NewResource validates the parts and assembles a Resource. The item id may be
// empty for a descriptor covering the whole type.
func NewResource(dataType string, itemID string) (Resource, error) {
	if !typeNamePattern.MatchString(dataType) {
		return Resource{}, ErrMalformedResource
	}
	if itemID != "" && !itemIDPattern.MatchString(itemID) {
		return Resource{}, ErrMalformedResource
	}
	return Resource{Type: dataType, ItemID: itemID}, nil
}

// ParseResource parses a stored claim value back into a Resource.
func ParseResource(s string) (Resource, error) {
	m := resourcePattern.FindStringSubmatch(s)
	if m == nil {
		return Resource{}, ErrMalformedResource
	}
	return Resource{Type: m[1], ItemID: m[2]}, nil
}

// String renders the descriptor in claim value form.
func (r Resource) String() string {
	if r.ItemID == "" {
		return r.Type
	}
	return r.Type + "{" + r.ItemID + "}"
}

// IsItem reports whether the descriptor is scoped to a single item.
func (r Resource) IsItem() bool {
	return r.ItemID != ""
}

// TypeResource returns the descriptor for the whole type, dropping any item scope.
func (r Resource) TypeResource() Resource {
	return Resource{Type: r.Type}
}

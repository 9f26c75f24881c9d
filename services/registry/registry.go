// Package registry answers whether a candidate data type name is a registered
// resource type. The share surface treats this as an opaque boolean oracle.
package registry

// TypeValidator confirms a candidate type name is registered.
type TypeValidator interface {
	IsRegisteredType(name string) bool
}

// StaticValidator validates against a fixed set of names supplied by
// configuration.
type StaticValidator struct {
	names map[string]struct{}
}

// NewStaticValidator constructs a StaticValidator over names.
func NewStaticValidator(names []string) *StaticValidator {
	v := StaticValidator{names: make(map[string]struct{}, len(names))}
	for _, n := range names {
		v.names[n] = struct{}{}
	}
	return &v
}

// IsRegisteredType implements TypeValidator.
func (v *StaticValidator) IsRegisteredType(name string) bool {
	_, ok := v.names[name]
	return ok
}

// FakeValidator is suitable for tests.
type FakeValidator struct {
	// Valid is returned for every name unless the name appears in Rejected.
	Valid    bool
	Rejected []string
}

// IsRegisteredType for FakeValidator.
func (fake *FakeValidator) IsRegisteredType(name string) bool {
	for _, r := range fake.Rejected {
		if r == name {
			return false
		}
	}
	return fake.Valid
}

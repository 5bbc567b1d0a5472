package config

import (
	"fmt"
	"strings"
)

// NullableStrategy controls whether generated build methods carry nil-safety suppressions.
type NullableStrategy uint8

const (
	NullableDefault NullableStrategy = iota
	NullableDisabled
	NullableEnabled
)

func (s NullableStrategy) String() string {
	switch s {
	case NullableDisabled:
		return "disabled"
	case NullableEnabled:
		return "enabled"
	default:
		return "default"
	}
}

func ParseNullableStrategy(s string) (NullableStrategy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "default":
		return NullableDefault, nil
	case "disabled":
		return NullableDisabled, nil
	case "enabled":
		return NullableEnabled, nil
	}
	return NullableDefault, fmt.Errorf("unknown nullable strategy %q", s)
}

// MockingStrategy selects which interface-typed members are supplied through mocks.
type MockingStrategy uint8

const (
	MockingNone MockingStrategy = iota
	MockingAll
	MockingWithoutGenericCollection
)

func (s MockingStrategy) String() string {
	switch s {
	case MockingAll:
		return "all"
	case MockingWithoutGenericCollection:
		return "without-generic-collection"
	default:
		return "none"
	}
}

func ParseMockingStrategy(s string) (MockingStrategy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return MockingNone, nil
	case "all":
		return MockingAll, nil
	case "without-generic-collection":
		return MockingWithoutGenericCollection, nil
	}
	return MockingNone, fmt.Errorf("unknown mocking strategy %q", s)
}

// FixtureStrategy selects which non-mocked members receive fixture-generated values.
type FixtureStrategy uint8

const (
	FixtureNone FixtureStrategy = iota
	FixtureOnlyGenericCollections
	FixtureAll
)

func (s FixtureStrategy) String() string {
	switch s {
	case FixtureOnlyGenericCollections:
		return "only-generic-collections"
	case FixtureAll:
		return "all"
	default:
		return "none"
	}
}

func ParseFixtureStrategy(s string) (FixtureStrategy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "none":
		return FixtureNone, nil
	case "only-generic-collections":
		return FixtureOnlyGenericCollections, nil
	case "", "all":
		return FixtureAll, nil
	}
	return FixtureNone, fmt.Errorf("unknown fixture strategy %q", s)
}

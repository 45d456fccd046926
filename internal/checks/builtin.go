package checks

import (
	"lintel/internal/fix"
	"lintel/internal/rule"
)

// Builtin returns the shipped rules in registration order.
func Builtin() []*rule.Descriptor {
	return []*rule.Descriptor{
		IndexOfPositive(),
		AbstractClassShape(),
		RedundantCtorDtor(),
		ConstantCondition(),
	}
}

// Registry builds a registry over Builtin.
func Registry() (*rule.Registry, error) {
	return rule.NewRegistry(Builtin()...)
}

// Providers returns the fix providers of the shipped rules.
func Providers() []*fix.Provider {
	return []*fix.Provider{RedundantCtorDtorFix()}
}

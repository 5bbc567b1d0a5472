// Package extract turns a type, seen through a Provider, into a model.TypeDescriptor.
package extract

import (
	"errors"
	"fmt"
	"slices"

	"github.com/cmmoran/buildgen/internal/model"
)

// maxDepth bounds the embedding walk. Value embedding cannot form cycles, so
// only a faulty Provider reaches it.
const maxDepth = 64

var ErrTooDeep = errors.New("embedding chain too deep")

// Handle identifies a type inside a Provider.
type Handle interface {
	Key() string
}

// Identity is what a Provider knows about a type besides its members.
type Identity struct {
	PkgPath    string
	PkgName    string
	Name       string
	IsAbstract bool
	// IsStruct allows the implicit composite literal constructor.
	IsStruct   bool
	TypeParams []model.TypeParam
}

type MemberKind uint8

const (
	// MemberField is a struct field.
	MemberField MemberKind = iota
	// MemberConstructor is a New<Type> function.
	MemberConstructor
	// MemberFactory is any other function returning the type.
	MemberFactory
)

// Member is a field or a function returning the type.
type Member struct {
	Kind MemberKind
	// Symbol is set for fields.
	Symbol model.SymbolData
	// Settable fields can be assigned from the builder's package.
	Settable bool
	// Base marks an embedded struct the Provider also reports from Bases.
	// It occupies its name but is not itself a property.
	Base bool
	// Func is set for constructors and factories.
	Func model.ConstructorData
}

// Provider is the capability Extract needs from a type system.
type Provider interface {
	Describe(h Handle) (Identity, error)
	// Members lists direct fields in declaration order followed by functions
	// returning the type in source order.
	Members(h Handle) ([]Member, error)
	// Bases lists embedded struct types in declaration order.
	Bases(h Handle) ([]Handle, error)
}

// Extract describes root. Fields of embedded structs are merged level by level:
// a shallower field shadows deeper ones of the same name, and a name declared
// twice at one level is ambiguous, so neither it nor anything deeper is kept.
func Extract(p Provider, root Handle) (model.TypeDescriptor, error) {
	id, err := p.Describe(root)
	if err != nil {
		return model.TypeDescriptor{}, fmt.Errorf("extract %s: %w", root.Key(), err)
	}
	d := model.TypeDescriptor{
		PkgPath:              id.PkgPath,
		PkgName:              id.PkgName,
		Name:                 id.Name,
		IsAbstract:           id.IsAbstract,
		TypeParams:           id.TypeParams,
		AdditionalNamespaces: constraintNamespaces(id.TypeParams),
	}
	if id.IsAbstract {
		return d, nil
	}

	taken := make(map[string]bool)
	level := []Handle{root}
	for depth := 0; len(level) > 0; depth++ {
		if depth > maxDepth {
			return model.TypeDescriptor{}, fmt.Errorf("extract %s: %w", root.Key(), ErrTooDeep)
		}
		counts := make(map[string]int)
		var fields []Member
		var next []Handle
		for _, h := range level {
			members, err := p.Members(h)
			if err != nil {
				return model.TypeDescriptor{}, fmt.Errorf("extract %s: members of %s: %w", root.Key(), h.Key(), err)
			}
			for _, m := range members {
				switch {
				case m.Kind == MemberField:
					if m.Symbol.Name == "_" {
						continue
					}
					counts[m.Symbol.Name]++
					fields = append(fields, m)
				case depth == 0 && m.Kind == MemberConstructor:
					d.Constructors = append(d.Constructors, m.Func)
					d.StaticMethods = append(d.StaticMethods, m.Func)
				case depth == 0 && m.Kind == MemberFactory:
					d.StaticMethods = append(d.StaticMethods, m.Func)
				}
			}
			bases, err := p.Bases(h)
			if err != nil {
				return model.TypeDescriptor{}, fmt.Errorf("extract %s: bases of %s: %w", root.Key(), h.Key(), err)
			}
			next = append(next, bases...)
		}

		for _, m := range fields {
			name := m.Symbol.Name
			if taken[name] || counts[name] > 1 || m.Base {
				continue
			}
			if m.Settable {
				d.SettableProperties = append(d.SettableProperties, m.Symbol)
			} else {
				d.UnsettableProperties = append(d.UnsettableProperties, m.Symbol)
			}
		}
		for name := range counts {
			taken[name] = true
		}
		level = next
	}

	if len(d.Constructors) == 0 && id.IsStruct {
		d.Constructors = []model.ConstructorData{{Kind: model.ConstructorObject, Pointer: true}}
	}
	return d, nil
}

func constraintNamespaces(params []model.TypeParam) []string {
	var out []string
	for _, p := range params {
		out = append(out, p.Constraint.Packages()...)
	}
	slices.Sort(out)
	return slices.Compact(out)
}

package extract

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmmoran/buildgen/internal/model"
)

type key string

func (k key) Key() string { return string(k) }

type fakeType struct {
	id      Identity
	members []Member
	bases   []Handle
}

type fakeProvider map[key]fakeType

func (p fakeProvider) lookup(h Handle) (fakeType, error) {
	t, ok := p[h.(key)]
	if !ok {
		return fakeType{}, errors.New("unknown type " + h.Key())
	}
	return t, nil
}

func (p fakeProvider) Describe(h Handle) (Identity, error) {
	t, err := p.lookup(h)
	return t.id, err
}

func (p fakeProvider) Members(h Handle) ([]Member, error) {
	t, err := p.lookup(h)
	return t.members, err
}

func (p fakeProvider) Bases(h Handle) ([]Handle, error) {
	t, err := p.lookup(h)
	return t.bases, err
}

var (
	str = model.Basic("string")
	num = model.Basic("int")
)

func field(name string, typ *model.TypeRef, settable bool) Member {
	return Member{Kind: MemberField, Symbol: model.SymbolData{Name: name, Type: typ}, Settable: settable}
}

func base(name string) Member {
	m := field(name, model.Named("example.com/app/models", "models", name), true)
	m.Base = true
	return m
}

func structID(name string) Identity {
	return Identity{PkgPath: "example.com/app/models", PkgName: "models", Name: name, IsStruct: true}
}

func names(in []model.SymbolData) []string {
	var out []string
	for _, s := range in {
		out = append(out, s.Name)
	}
	return out
}

func TestExtractInheritanceChain(t *testing.T) {
	p := fakeProvider{
		"Grandchild": {
			id:      structID("Grandchild"),
			members: []Member{base("Child"), field("Name", str, true), field("secret", str, false)},
			bases:   []Handle{key("Child")},
		},
		"Child": {
			id:      structID("Child"),
			members: []Member{base("Entity"), field("Name", num, true), field("Level", num, true)},
			bases:   []Handle{key("Entity")},
		},
		"Entity": {
			id:      structID("Entity"),
			members: []Member{field("ID", num, true), field("Level", str, true), field("audit", str, false)},
		},
	}
	d, err := Extract(p, key("Grandchild"))
	require.NoError(t, err)

	if diff := cmp.Diff([]string{"Name", "Level", "ID"}, names(d.SettableProperties)); diff != "" {
		t.Errorf("settable mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, []string{"secret", "audit"}, names(d.UnsettableProperties))
	// the shallowest declaration wins
	assert.Equal(t, str, d.SettableProperties[0].Type)
	assert.Equal(t, num, d.SettableProperties[1].Type)

	require.Len(t, d.Constructors, 1)
	assert.True(t, d.Constructors[0].IsLiteral())
	assert.Empty(t, d.StaticMethods)
}

func TestExtractAmbiguousNamesAreHidden(t *testing.T) {
	p := fakeProvider{
		"Root": {
			id:      structID("Root"),
			members: []Member{base("Left"), base("Right")},
			bases:   []Handle{key("Left"), key("Right")},
		},
		"Left": {
			id:      structID("Left"),
			members: []Member{field("Shared", str, true), field("OnlyLeft", str, true), base("Deep")},
			bases:   []Handle{key("Deep")},
		},
		"Right": {
			id:      structID("Right"),
			members: []Member{field("Shared", num, true)},
		},
		"Deep": {
			id:      structID("Deep"),
			members: []Member{field("Shared", str, true), field("_", str, true), field("DeepOnly", str, true)},
		},
	}
	d, err := Extract(p, key("Root"))
	require.NoError(t, err)
	assert.Equal(t, []string{"OnlyLeft", "DeepOnly"}, names(d.SettableProperties))
	assert.Empty(t, d.UnsettableProperties)
}

func TestExtractConstructorsAndFactories(t *testing.T) {
	newEntity := model.ConstructorData{Kind: model.ConstructorObject, Name: "NewEntity", Pointer: true,
		Params: []model.SymbolData{{Name: "id", Type: num}}}
	parse := model.ConstructorData{Kind: model.ConstructorObject, Name: "ParseEntity", ReturnsError: true}
	p := fakeProvider{
		"Entity": {
			id: structID("Entity"),
			members: []Member{
				base("Base"),
				field("ID", num, true),
				{Kind: MemberConstructor, Func: newEntity},
				{Kind: MemberFactory, Func: parse},
			},
			bases: []Handle{key("Base")},
		},
		"Base": {
			id: structID("Base"),
			members: []Member{
				{Kind: MemberConstructor, Func: model.ConstructorData{Name: "NewBase"}},
			},
		},
	}
	d, err := Extract(p, key("Entity"))
	require.NoError(t, err)
	assert.Equal(t, []model.ConstructorData{newEntity}, d.Constructors)
	assert.Equal(t, []model.ConstructorData{newEntity, parse}, d.StaticMethods)
}

func TestExtractAbstractAndNonStruct(t *testing.T) {
	p := fakeProvider{
		"Repo": {
			id:      Identity{PkgPath: "example.com/app/models", PkgName: "models", Name: "Repo", IsAbstract: true},
			members: []Member{field("ignored", str, true)},
		},
		"ID": {
			id: Identity{PkgPath: "example.com/app/models", PkgName: "models", Name: "ID"},
		},
	}
	d, err := Extract(p, key("Repo"))
	require.NoError(t, err)
	assert.True(t, d.IsAbstract)
	assert.Empty(t, d.Members())
	assert.Empty(t, d.Constructors)

	d, err = Extract(p, key("ID"))
	require.NoError(t, err)
	assert.Empty(t, d.Constructors)
}

func TestExtractGenericConstraints(t *testing.T) {
	p := fakeProvider{
		"Box": {
			id: Identity{
				PkgPath: "example.com/app/models", PkgName: "models", Name: "Box", IsStruct: true,
				TypeParams: []model.TypeParam{
					{Name: "K", Constraint: model.Named("cmp", "cmp", "Ordered")},
					{Name: "V", Constraint: model.Named("example.com/app/constraints", "constraints", "Value")},
					{Name: "W", Constraint: model.Named("cmp", "cmp", "Ordered")},
				},
			},
			members: []Member{field("Value", model.TypeParamRef("V"), true)},
		},
	}
	d, err := Extract(p, key("Box"))
	require.NoError(t, err)
	assert.Equal(t, []string{"cmp", "example.com/app/constraints"}, d.AdditionalNamespaces)
	assert.Equal(t, "models.Box[K, V, W]", d.FullName())
}

func TestExtractProviderErrors(t *testing.T) {
	_, err := Extract(fakeProvider{}, key("Missing"))
	require.Error(t, err)

	p := fakeProvider{
		"Root": {id: structID("Root"), bases: []Handle{key("Gone")}},
	}
	_, err = Extract(p, key("Root"))
	require.ErrorContains(t, err, "members of Gone")

	loop := fakeProvider{"Self": {id: structID("Self"), bases: []Handle{key("Self")}}}
	_, err = Extract(loop, key("Self"))
	require.ErrorIs(t, err, ErrTooDeep)
}

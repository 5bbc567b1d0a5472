package model

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestTypeRefQualified(t *testing.T) {
	entity := Named("example.com/app/models", "models", "Entity")
	tests := []struct {
		name  string
		ref   *TypeRef
		local string
		want  string
	}{
		{"basic", Basic("string"), "", "string"},
		{"pointer", PointerTo(entity), "", "*models.Entity"},
		{"local pointer", PointerTo(entity), "example.com/app/models", "*Entity"},
		{"slice of map", SliceOf(MapOf(Basic("string"), Basic("int"))), "", "[]map[string]int"},
		{"array", ArrayOf(4, Basic("byte")), "", "[4]byte"},
		{"generic", Named("example.com/app/box", "box", "Box", TypeParamRef("T"), entity), "", "box.Box[T, models.Entity]"},
		{"raw", RawType("func(context.Context) error", "context"), "", "func(context.Context) error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, tt.ref.Qualified(tt.local))
		})
	}
}

func TestTypeRefPackages(t *testing.T) {
	ref := MapOf(
		Named("time", "time", "Duration"),
		SliceOf(Named("example.com/app/models", "models", "Entity", RawType("chan int", "sync"))),
	)
	require.Equal(t, []string{"example.com/app/models", "sync", "time"}, ref.Packages())
	require.Equal(t, "Entity", ref.Short())

	names := map[string]string{}
	ref.PackageNames(names)
	if diff := cmp.Diff(map[string]string{"time": "time", "example.com/app/models": "models"}, names); diff != "" {
		t.Fatalf("PackageNames() mismatch (-want +got):\n%s", diff)
	}
}

func TestTypeDescriptorEqualAndFingerprint(t *testing.T) {
	build := func() TypeDescriptor {
		return TypeDescriptor{
			PkgPath: "example.com/app/models",
			PkgName: "models",
			Name:    "Box",
			TypeParams: []TypeParam{
				{Name: "T", Constraint: Named("cmp", "cmp", "Ordered")},
			},
			Constructors: []ConstructorData{
				{Kind: ConstructorObject, Name: "NewBox", Pointer: true, Generic: true, Params: []SymbolData{{Name: "value", Type: TypeParamRef("T")}}},
			},
			SettableProperties:   []SymbolData{{Name: "Label", Type: Basic("string")}},
			UnsettableProperties: []SymbolData{{Name: "value", Type: TypeParamRef("T")}},
			AdditionalNamespaces: []string{"cmp"},
		}
	}
	fingerprint := func(d TypeDescriptor, extra ...any) string {
		t.Helper()
		fp, err := d.Fingerprint(extra...)
		require.NoError(t, err)
		return fp
	}
	a, b := build(), build()
	require.True(t, a.Equal(b))
	require.Equal(t, fingerprint(a), fingerprint(b))
	require.Equal(t, "models.Box[T]", a.FullName())
	require.Equal(t, "models.Box[T cmp.Ordered]", a.FullNameWithConstraints())

	b.SettableProperties[0].Type = Basic("int")
	require.False(t, a.Equal(b))
	require.NotEqual(t, fingerprint(a), fingerprint(b))
	require.NotEqual(t, fingerprint(a), fingerprint(a, "with-config"))

	_, err := a.Fingerprint("ok", make(chan int))
	require.Error(t, err)
}

func TestConstructorDataIsLiteral(t *testing.T) {
	require.True(t, ConstructorData{Kind: ConstructorObject, Pointer: true}.IsLiteral())
	require.False(t, ConstructorData{Kind: ConstructorStatic}.IsLiteral())
	require.False(t, ConstructorData{Kind: ConstructorObject, Name: "NewEntity"}.IsLiteral())
}

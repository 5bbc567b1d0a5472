// Package buildkit holds the runtime helpers generated builders call.
package buildkit

import (
	"fmt"
	"reflect"
	"unsafe"
)

// NullBox records that a builder member was set explicitly, even to its zero value.
type NullBox[T any] struct {
	Object T
}

func NewNullBox[T any](v T) *NullBox[T] {
	return &NullBox[T]{Object: v}
}

// ValueOr returns the boxed value, or fallback() when nothing was set.
func ValueOr[T any](b *NullBox[T], fallback func() T) T {
	if b != nil {
		return b.Object
	}
	return fallback()
}

// ValueOrZero returns the boxed value, or the zero value when nothing was set.
func ValueOrZero[T any](b *NullBox[T]) T {
	if b != nil {
		return b.Object
	}
	var zero T
	return zero
}

// Must returns v, panicking when err is not nil.
func Must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

// IsZero reports whether v is its type's zero value. Nil interfaces are zero.
func IsZero[T any](v T) bool {
	rv := reflect.ValueOf(any(v))
	return !rv.IsValid() || rv.IsZero()
}

// SetField writes value into the named field of the struct target points to,
// whether or not the field is exported. Promoted fields are found through
// embedded structs. A nil value stores the field's zero value.
//
// SetField panics when target is not a non-nil struct pointer, the field does
// not exist, or value is not assignable to it.
func SetField(target any, name string, value any) {
	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		panic(fmt.Sprintf("buildkit: SetField target must be a non-nil struct pointer, got %T", target))
	}
	field := rv.Elem().FieldByName(name)
	if !field.IsValid() {
		panic(fmt.Sprintf("buildkit: %s has no field %q", rv.Elem().Type(), name))
	}

	v := reflect.Zero(field.Type())
	if value != nil {
		v = reflect.ValueOf(value)
		if !v.Type().AssignableTo(field.Type()) {
			panic(fmt.Sprintf("buildkit: cannot assign %s to %s.%s of type %s", v.Type(), rv.Elem().Type(), name, field.Type()))
		}
	}
	if !field.CanSet() {
		field = reflect.NewAt(field.Type(), unsafe.Pointer(field.UnsafeAddr())).Elem()
	}
	field.Set(v)
}

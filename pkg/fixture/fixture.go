// Package fixture produces randomized values for builder members nobody set.
package fixture

import (
	"reflect"
	"sync"

	"github.com/brianvoe/gofakeit/v7"
)

// Fixture generates values of arbitrary types. It is safe for concurrent use.
type Fixture struct {
	mu         sync.Mutex
	faker      *gofakeit.Faker
	generators map[reflect.Type]func(*gofakeit.Faker) any
}

type Option func(*Fixture)

// WithSeed makes generation reproducible. Zero picks a random seed.
func WithSeed(seed uint64) Option {
	return func(f *Fixture) {
		f.faker = gofakeit.New(seed)
	}
}

func NewFixture(opts ...Option) *Fixture {
	f := &Fixture{
		faker:      gofakeit.New(0),
		generators: make(map[reflect.Type]func(*gofakeit.Faker) any),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Register replaces generation of T with gen.
func Register[T any](f *Fixture, gen func(*gofakeit.Faker) T) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.generators[reflect.TypeFor[T]()] = func(fk *gofakeit.Faker) any { return gen(fk) }
}

// Create returns a fresh value of T. Types the faker cannot fill, such as
// interfaces and funcs, come back as their zero value.
func Create[T any](f *Fixture) T {
	f.mu.Lock()
	defer f.mu.Unlock()

	var v T
	if gen, ok := f.generators[reflect.TypeFor[T]()]; ok {
		v, _ = gen(f.faker).(T)
		return v
	}
	if err := f.faker.Struct(&v); err != nil {
		var zero T
		return zero
	}
	return v
}

// CreateMany returns n fresh values of T.
func CreateMany[T any](f *Fixture, n int) []T {
	out := make([]T, 0, n)
	for range n {
		out = append(out, Create[T](f))
	}
	return out
}

// Package builders holds test-data builders for the example models.
package builders

import (
	"github.com/cmmoran/buildgen/example/models"
	"github.com/cmmoran/buildgen/pkg/buildkit"
)

//go:generate go run github.com/cmmoran/buildgen generate ./...

//buildgen:builder target=models.Order unreachable=true implicit-cast=true static-property=true
//buildgen:mocking strategy=all type="*mocks.Mock%[2]s" init="mocks.NewMock%[2]s()" object="%[1]s" imports="github.com/cmmoran/buildgen/example/mocks"
//buildgen:fixture name=fixture.Fixture create="fixture.Create[%[1]s](%[3]s)" imports="github.com/cmmoran/buildgen/pkg/fixture"
type OrderBuilder struct {
	orderBuilderFields
	built int
}

// WithLine appends one line to whatever lines were set so far.
func (b *OrderBuilder) WithLine(sku string, qty int) *OrderBuilder {
	lines := buildkit.ValueOrZero(b.lines)
	return b.WithLines(append(lines, models.Line{SKU: sku, Qty: qty}))
}

func (b *OrderBuilder) PostBuild(o *models.Order) {
	b.built++
}

// Built is how many orders this builder produced.
func (b *OrderBuilder) Built() int { return b.built }

package builders

import "example.com/app/models"

//buildgen:defaults prefix=With unreachable=true

//buildgen:builder target=models.Entity implicit-cast=true
//buildgen:mocking strategy=all type="*fakes.Fake%[2]s" init="fakes.NewFake%[2]s()" object="%[1]s"
type EntityBuilder struct {
	entityBuilderFields
	label string
}

func (b *EntityBuilder) WithLabel(label string) *EntityBuilder {
	b.label = label
	return b
}

func (b *EntityBuilder) PostBuild(e *models.Entity) {}

//buildgen:builder prefix=Set
type Orphan struct{}

package builders

//buildgen:builder name=BoxBuilder target=example.com/app/models.Box

//buildgen:builder name=ThingBuilder target=example.com/app/extra.Thing prefix=Having

//buildgen:builder name=BadBuilder target=example.com/app/models.Entity nullable=sometimes

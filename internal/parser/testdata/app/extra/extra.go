package extra

type Thing struct {
	Label string
	Cache map[string]int `buildgen:"-"`
	Row   int64          `db:"rowid,readonly"`
}

// New is the package's only constructor.
func New(label string) *Thing {
	return &Thing{Label: label}
}

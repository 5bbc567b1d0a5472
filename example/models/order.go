// Package models is a small domain used to demonstrate generated builders.
package models

import "time"

// Stamp records where a value came from.
type Stamp struct {
	Source  string
	Version int
}

// Audit shadows Stamp.Version with its own.
type Audit struct {
	Stamp
	CreatedBy string
	Version   int
	revision  int
}

func (a Audit) Revision() int { return a.revision }

type Customer struct {
	ID    int64
	Name  string
	Email string
}

type Line struct {
	SKU string
	Qty int
}

// Clock supplies the time an order is placed.
type Clock interface {
	Now() time.Time
}

type Order struct {
	Audit
	Number   string
	Customer Customer
	Lines    []Line
	Clock    Clock
	PlacedAt time.Time
	note     string
}

func NewOrder(number string, clock Clock) *Order {
	return &Order{Number: number, Clock: clock}
}

// Place stamps the order with the clock's current time.
func (o *Order) Place() {
	o.PlacedAt = o.Clock.Now()
}

func (o *Order) Note() string { return o.note }

// Quantity sums the quantity of every line.
func (o *Order) Quantity() int {
	n := 0
	for _, l := range o.Lines {
		n += l.Qty
	}
	return n
}

package models

import "time"

type Base struct {
	ID      int64
	Created time.Time
	audit   string
}

type Repo interface {
	Find(id int64) (*Entity, error)
}

type Entity struct {
	Base
	Name   string
	Tags   []string
	Repo   Repo
	secret string
}

func NewEntity(name string, repo Repo) *Entity {
	return &Entity{Name: name, Repo: repo}
}

func ParseEntity(raw string) (Entity, error) {
	return Entity{Name: raw}, nil
}

type Box[T any] struct {
	Value T
}

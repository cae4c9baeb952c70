// Package roster answers who is a registered student, which group they are
// in, and who may serve the help queue.
package roster

import (
	"context"
	"errors"
	"strings"
	"time"

	"helpqueue/pkg/entities"
	"helpqueue/pkg/flight"
)

var ErrNotRegistered = errors.New("not a registered student")

// Directory is consumed by the HTTP layer before touching the queue.
type Directory interface {
	Student(ctx context.Context, id string) (entities.Student, error)
	IsHelper(ctx context.Context, id string) (bool, error)
}

// Source loads the full roster from wherever it lives.
type Source interface {
	Load(ctx context.Context) (entities.Roster, error)
}

type SourceFunc func(ctx context.Context) (entities.Roster, error)

func (f SourceFunc) Load(ctx context.Context) (entities.Roster, error) { return f(ctx) }

var _ Directory = (*Roster)(nil)

// Roster is a Directory backed by a Source, reloaded at most once per TTL.
type Roster struct {
	cache flight.Cache[struct{}, *index]
}

type index struct {
	students map[string]entities.Student
	helpers  map[string]entities.Helper
}

func New(src Source, ttl time.Duration) *Roster {
	cache := flight.NewCache(func(ctx context.Context, _ struct{}) (*index, error) {
		r, err := src.Load(ctx)
		if err != nil {
			return nil, err
		}
		return buildIndex(r), nil
	})
	cache.Expiry(ttl)
	return &Roster{cache: cache}
}

func (r *Roster) Student(ctx context.Context, id string) (entities.Student, error) {
	idx, err := r.cache.Get(ctx, struct{}{})
	if err != nil {
		return entities.Student{}, err
	}
	s, ok := idx.students[normalize(id)]
	if !ok {
		return entities.Student{}, ErrNotRegistered
	}
	return s, nil
}

func (r *Roster) IsHelper(ctx context.Context, id string) (bool, error) {
	idx, err := r.cache.Get(ctx, struct{}{})
	if err != nil {
		return false, err
	}
	_, ok := idx.helpers[normalize(id)]
	return ok, nil
}

// Reload discards the cached roster.
func (r *Roster) Reload() {
	r.cache.Forget(struct{}{})
}

func buildIndex(r entities.Roster) *index {
	idx := &index{
		students: make(map[string]entities.Student, len(r.Students)),
		helpers:  make(map[string]entities.Helper, len(r.Helpers)),
	}
	for _, s := range r.Students {
		if k := normalize(s.ID); k != "" {
			idx.students[k] = s
		}
	}
	for _, h := range r.Helpers {
		if k := normalize(h.ID); k != "" {
			idx.helpers[k] = h
		}
	}
	return idx
}

func normalize(id string) string {
	return strings.ToLower(strings.TrimSpace(id))
}

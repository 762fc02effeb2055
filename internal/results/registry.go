package results

import (
	"fmt"
	"sort"

	"github.com/google/uuid"
)

// Record is either a FileResult or an EntityResult.
type Record interface {
	UniqueName() string
}

// Registry maps unique names to records for one analysis run. Each run owns
// its registry value outright, so no cross-run filtering is needed and
// concurrent runs never share state.
//
// By default a duplicate unique name silently overwrites the earlier record,
// matching the historical behavior of non-disambiguating name schemes.
// Strict mode turns the collision into an error instead.
type Registry struct {
	AnalysisID uuid.UUID
	strict     bool
	records    map[string]Record
	order      []string
}

func NewRegistry(strict bool) *Registry {
	return &Registry{
		AnalysisID: uuid.New(),
		strict:     strict,
		records:    make(map[string]Record),
	}
}

func (r *Registry) Register(rec Record) error {
	key := rec.UniqueName()
	if _, exists := r.records[key]; exists {
		if r.strict {
			return fmt.Errorf("duplicate unique name %q", key)
		}
	} else {
		r.order = append(r.order, key)
	}
	r.records[key] = rec
	return nil
}

func (r *Registry) Get(key string) (Record, bool) {
	rec, ok := r.records[key]
	return rec, ok
}

func (r *Registry) Len() int {
	return len(r.records)
}

// Files returns the file records in registration order.
func (r *Registry) Files() []*FileResult {
	out := make([]*FileResult, 0, len(r.order))
	for _, key := range r.order {
		if f, ok := r.records[key].(*FileResult); ok {
			out = append(out, f)
		}
	}
	return out
}

// Entities returns the entity records in registration order.
func (r *Registry) Entities() []*EntityResult {
	out := make([]*EntityResult, 0, len(r.order))
	for _, key := range r.order {
		if e, ok := r.records[key].(*EntityResult); ok {
			out = append(out, e)
		}
	}
	return out
}

// Keys returns all unique names, sorted.
func (r *Registry) Keys() []string {
	keys := make([]string, 0, len(r.records))
	for k := range r.records {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

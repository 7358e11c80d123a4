package resolver

import (
	"errors"
	"fmt"

	"github.com/tsawler/bionic/core"
)

// DefaultMaxDepth bounds the nesting followed by Deep
const DefaultMaxDepth = 100

// ErrTooDeep is returned when expansion nests past the maximum depth
var ErrTooDeep = errors.New("maximum resolution depth exceeded")

// ObjectReader loads the target of an indirect reference
type ObjectReader interface {
	ResolveReference(ref core.IndirectRef) (core.Object, error)
}

// Option configures a Resolver
type Option func(*Resolver)

// WithMaxDepth sets the maximum nesting depth
func WithMaxDepth(depth int) Option {
	return func(r *Resolver) {
		r.maxDepth = depth
	}
}

// Resolver expands references against an ObjectReader. A Resolver keeps no
// state between calls and may be reused.
type Resolver struct {
	reader   ObjectReader
	maxDepth int
}

// New creates a Resolver reading from reader
func New(reader ObjectReader, opts ...Option) *Resolver {
	r := &Resolver{reader: reader, maxDepth: DefaultMaxDepth}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Shallow follows obj if it is a reference, chains included, and returns
// the first object that is not one.
func (r *Resolver) Shallow(obj core.Object) (core.Object, error) {
	for depth := 0; ; depth++ {
		ref, ok := obj.(core.IndirectRef)
		if !ok {
			return obj, nil
		}
		if depth >= r.maxDepth {
			return nil, ErrTooDeep
		}
		next, err := r.reader.ResolveReference(ref)
		if err != nil {
			return nil, fmt.Errorf("resolve %d %d R: %w", ref.Number, ref.Generation, err)
		}
		obj = next
	}
}

// Deep returns a copy of obj with every reference below it replaced by its
// target. A reference back to an object on the current path is kept as is.
func (r *Resolver) Deep(obj core.Object) (core.Object, error) {
	return r.deep(obj, make(map[int]bool), 0)
}

func (r *Resolver) deep(obj core.Object, active map[int]bool, depth int) (core.Object, error) {
	if depth > r.maxDepth {
		return nil, ErrTooDeep
	}

	switch v := obj.(type) {
	case core.IndirectRef:
		if active[v.Number] {
			return v, nil
		}
		target, err := r.reader.ResolveReference(v)
		if err != nil {
			return nil, fmt.Errorf("resolve %d %d R: %w", v.Number, v.Generation, err)
		}
		active[v.Number] = true
		defer delete(active, v.Number)
		return r.deep(target, active, depth+1)

	case core.Dict:
		out := make(core.Dict, len(v))
		for key, val := range v {
			resolved, err := r.deep(val, active, depth+1)
			if err != nil {
				return nil, fmt.Errorf("/%s: %w", key, err)
			}
			out[key] = resolved
		}
		return out, nil

	case core.Array:
		out := make(core.Array, len(v))
		for i, elem := range v {
			resolved, err := r.deep(elem, active, depth+1)
			if err != nil {
				return nil, fmt.Errorf("[%d]: %w", i, err)
			}
			out[i] = resolved
		}
		return out, nil

	case *core.Stream:
		dict, err := r.deep(v.Dict, active, depth+1)
		if err != nil {
			return nil, fmt.Errorf("stream dict: %w", err)
		}
		return &core.Stream{Dict: dict.(core.Dict), Data: v.Data}, nil

	default:
		return obj, nil
	}
}

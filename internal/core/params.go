package core

import (
	"context"
	"maps"
	"slices"
)

// Params is a single parameter object substituted into a route pattern.
type Params map[string]string

type ParamSourceKind int

const (
	SourceLiteral ParamSourceKind = iota + 1
	SourceFunc
	SourceProducer
	SourceSkip
)

func (k ParamSourceKind) String() string {
	switch k {
	case SourceLiteral:
		return "literal"
	case SourceFunc:
		return "func"
	case SourceProducer:
		return "producer"
	case SourceSkip:
		return "skip"
	default:
		return "unknown"
	}
}

// ParamSource supplies the parameter objects for one dynamic route. The zero
// value is not valid; build one with Literal, Func, Producer or Skip.
type ParamSource struct {
	kind     ParamSourceKind
	literal  []Params
	fn       func() ([]Params, error)
	producer func(context.Context) ([]Params, error)
}

func Literal(params ...Params) ParamSource {
	return ParamSource{kind: SourceLiteral, literal: params}
}

func Func(fn func() ([]Params, error)) ParamSource {
	return ParamSource{kind: SourceFunc, fn: fn}
}

func Producer(fn func(ctx context.Context) ([]Params, error)) ParamSource {
	return ParamSource{kind: SourceProducer, producer: fn}
}

// Skip marks a dynamic route as intentionally not generated.
func Skip() ParamSource {
	return ParamSource{kind: SourceSkip}
}

func (s ParamSource) Kind() ParamSourceKind {
	return s.kind
}

// Resolve materialises the source. skip reports an explicit Skip.
func (s ParamSource) Resolve(ctx context.Context) (params []Params, skip bool, err error) {
	switch s.kind {
	case SourceLiteral:
		return cloneParams(s.literal), false, nil
	case SourceFunc:
		if s.fn == nil {
			return nil, true, nil
		}
		params, err = s.fn()
		return cloneParams(params), false, err
	case SourceProducer:
		if s.producer == nil {
			return nil, true, nil
		}
		params, err = s.producer(ctx)
		return cloneParams(params), false, err
	default:
		return nil, true, nil
	}
}

func cloneParams(in []Params) []Params {
	if in == nil {
		return nil
	}
	out := make([]Params, len(in))
	for i, p := range in {
		out[i] = maps.Clone(p)
	}
	return out
}

type ResolvedEntry struct {
	Params []Params
	Skip   bool
}

// ResolvedParams is the read-only result of resolving every ParamSource of a
// run. It is built once and never mutated.
type ResolvedParams struct {
	entries map[string]ResolvedEntry
}

func NewResolvedParams(entries map[string]ResolvedEntry) ResolvedParams {
	return ResolvedParams{entries: maps.Clone(entries)}
}

func (r ResolvedParams) Lookup(route string) (ResolvedEntry, bool) {
	entry, ok := r.entries[route]
	return entry, ok
}

func (r ResolvedParams) Len() int {
	return len(r.entries)
}

func (r ResolvedParams) Routes() []string {
	return slices.Sorted(maps.Keys(r.entries))
}

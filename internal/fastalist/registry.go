// Package fastalist implements the fast-alist registry: a handle is an
// ordinary list of (key . value) entries, and the registry maintains a
// shadow hash table per handle so get/acons run in O(1) instead of a
// linear scan, under a strict linear-handle-use discipline.
//
// The shadow-map side table is keyed by weak pointers to the handle's head
// pair, with a Go 1.24 cleanup hook deregistering a handle the moment the
// host GC reclaims it, so a forgotten handle is never kept alive just
// because the registry still references it (internal/addressed's pool
// uses the same weak.Pointer primitive for an analogous reason).
//
// © 2025 honspace authors. MIT License.
package fastalist

import (
	"runtime"
	"sync"
	"weak"

	"github.com/hashcons/honspace/internal/critsec"
	"github.com/hashcons/honspace/internal/value"
)

// minShadowCapacity is the minimum slot count for a freshly allocated
// shadow map.
const minShadowCapacity = 60

// DiagSink receives slow-alist discipline violations. Callers (pkg/hons)
// supply the process-wide policy implementation; fastalist itself has no
// opinion on Off/Warn/Break.
type DiagSink interface {
	SlowAlist(op string)
}

// NopDiagSink discards every report; used by tests and by callers that
// have not configured a policy yet.
type NopDiagSink struct{}

// SlowAlist implements DiagSink.
func (NopDiagSink) SlowAlist(string) {}

type shadowMap struct {
	mu sync.Mutex
	m  map[any]*value.Pair
}

func newShadowMap(capacity int) *shadowMap {
	if capacity < minShadowCapacity {
		capacity = minShadowCapacity
	}
	return &shadowMap{m: make(map[any]*value.Pair, capacity)}
}

func (s *shadowMap) put(key value.Value, entry *value.Pair) {
	s.mu.Lock()
	s.m[value.AtomKey(key)] = entry
	s.mu.Unlock()
}

func (s *shadowMap) get(key value.Value) (*value.Pair, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.m[value.AtomKey(key)]
	return e, ok
}

func (s *shadowMap) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.m)
}

// Registry is the process of one HS's fast-alist shadow-map side table.
type Registry struct {
	mu      sync.Mutex
	entries map[weak.Pointer[value.Pair]]*shadowMap
}

// New constructs an empty registry.
func New() *Registry {
	return &Registry{entries: make(map[weak.Pointer[value.Pair]]*shadowMap, 64)}
}

func (r *Registry) register(handle *value.Pair, sm *shadowMap) {
	wp := weak.Make(handle)
	r.mu.Lock()
	r.entries[wp] = sm
	r.mu.Unlock()
	runtime.AddCleanup(handle, func(wp weak.Pointer[value.Pair]) {
		r.mu.Lock()
		delete(r.entries, wp)
		r.mu.Unlock()
	}, wp)
}

func (r *Registry) deregister(handle *value.Pair) {
	wp := weak.Make(handle)
	r.mu.Lock()
	delete(r.entries, wp)
	r.mu.Unlock()
}

func (r *Registry) lookup(handle value.Value) (*shadowMap, bool) {
	p, ok := handle.(*value.Pair)
	if !ok {
		return nil, false
	}
	wp := weak.Make(p)
	r.mu.Lock()
	defer r.mu.Unlock()
	sm, ok := r.entries[wp]
	return sm, ok
}

// ConsFunc builds a new (head . tail) cell; wantHons callers pass a cons
// function that runs the pair through the back end's canonical
// constructor, plain callers pass one that just allocates.
type ConsFunc func(head, tail value.Value) value.Value

// Acons implements acons. normKey norms key; cons builds (key.val) and
// (entry.handle) per the caller's want-hons choice; hint sizes a freshly
// allocated shadow map (0 uses the default).
func (r *Registry) Acons(key, val, handle value.Value, hint int, normKey func(value.Value) value.Value, cons ConsFunc, diag DiagSink) value.Value {
	key = normKey(key)
	entry := cons(key, val)
	newHandle := cons(entry, handle)
	newPair := newHandle.(*value.Pair)
	entryPair := entry.(*value.Pair)

	oldPair, oldIsPair := handle.(*value.Pair)
	if !oldIsPair {
		sm := newShadowMap(hint)
		sm.put(key, entryPair)
		r.register(newPair, sm)
		return newHandle
	}

	sm, ok := r.lookup(oldPair)
	if !ok {
		if diag != nil {
			diag.SlowAlist("acons")
		}
		return newHandle
	}
	critsec.Do("fastalist.acons", func() {
		r.deregister(oldPair)
		sm.put(key, entryPair)
		r.register(newPair, sm)
	})
	return newHandle
}

// Get implements get.
func (r *Registry) Get(key, handle value.Value, normKey func(value.Value) value.Value, diag DiagSink) (*value.Pair, bool) {
	key = normKey(key)
	p, isPair := handle.(*value.Pair)
	if !isPair {
		return nil, false
	}
	if sm, ok := r.lookup(p); ok {
		return sm.get(key)
	}
	if diag != nil {
		diag.SlowAlist("get")
	}
	return linearGet(key, handle)
}

func linearGet(key, handle value.Value) (*value.Pair, bool) {
	cur := handle
	for {
		p, ok := cur.(*value.Pair)
		if !ok {
			return nil, false
		}
		entry, ok := p.Head.(*value.Pair)
		if ok && value.Equal(entry.Head, key) {
			return entry, true
		}
		cur = p.Tail
	}
}

// Handles returns every currently registered handle pair, for callers
// (pkg/hons's Clear) that need to walk every live fast alist's key set.
func (r *Registry) Handles() []*value.Pair {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*value.Pair, 0, len(r.entries))
	for wp := range r.entries {
		if p := wp.Value(); p != nil {
			out = append(out, p)
		}
	}
	return out
}

// Free implements free: deregister only, handle is returned unchanged so
// the caller can keep reading it as an ordinary list.
func (r *Registry) Free(handle value.Value) value.Value {
	if p, ok := handle.(*value.Pair); ok {
		r.deregister(p)
	}
	return handle
}

// Len implements len: if handle has a shadow map, return its size
// directly; otherwise shrink, count, then free the scratch alist.
func (r *Registry) Len(handle value.Value, normKey func(value.Value) value.Value, cons ConsFunc, diag DiagSink) int {
	p, isPair := handle.(*value.Pair)
	if !isPair {
		return 0
	}
	if sm, ok := r.lookup(p); ok {
		return sm.len()
	}
	shrunk := r.Shrink(handle, nil, normKey, cons, diag)
	n := r.Len(shrunk, normKey, cons, diag)
	r.Free(shrunk)
	return n
}

// Shrink implements shrink: for each key in source, in order, keep only
// the first (key, value) pair, appended onto accumulator.
//
// If source already has a registered shadow map its keys are trusted
// already-normed (fast walk, no re-norming); otherwise each key is normed
// as it is walked (slow walk). Either way a fresh shadow map is created for
// the result, sized from source's map when source was fast, else
// max(60, n/8) for the n distinct keys kept.
func (r *Registry) Shrink(source, accumulator value.Value, normKey func(value.Value) value.Value, cons ConsFunc, diag DiagSink) value.Value {
	srcPair, srcIsPair := source.(*value.Pair)
	if !srcIsPair {
		return accumulator
	}
	srcShadow, fast := r.lookup(srcPair)

	type kv struct {
		key, val value.Value
	}
	var ordered []kv
	seen := make(map[any]struct{})

	cur := value.Value(srcPair)
	for {
		p, ok := cur.(*value.Pair)
		if !ok {
			break
		}
		entry, ok := p.Head.(*value.Pair)
		if !ok {
			cur = p.Tail
			continue
		}
		key := entry.Head
		if !fast {
			key = normKey(key)
		}
		k := value.AtomKey(key)
		if _, dup := seen[k]; !dup {
			seen[k] = struct{}{}
			ordered = append(ordered, kv{key: key, val: entry.Tail})
		}
		cur = p.Tail
	}

	hint := minShadowCapacity
	if fast {
		hint = srcShadow.len()
	} else if n := len(ordered); n/8 > hint {
		hint = n / 8
	}

	sm := newShadowMap(hint)
	handle := accumulator
	for i := len(ordered) - 1; i >= 0; i-- {
		entryPair := cons(ordered[i].key, ordered[i].val).(*value.Pair)
		sm.put(ordered[i].key, entryPair)
		handle = cons(entryPair, handle)
	}
	newPair, ok := handle.(*value.Pair)
	if !ok {
		return handle
	}

	r.register(newPair, sm)
	return handle
}

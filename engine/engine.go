// Package engine implements the risk decision core: risk scoring,
// priority classification, compliance mapping and cross-host correlation.
// Every operation is a pure function of its inputs plus the injected
// reference data store; nothing here touches the network or the database.
package engine

import "sync/atomic"

// Engine evaluates findings against the injected reference data store.
// It is safe for concurrent use: the store is swapped atomically on
// reload, so readers always see a complete table.
type Engine struct {
	ref atomic.Pointer[RefData]
}

// New creates an engine backed by the given reference data store.
// A nil store is tolerated; every evaluation then produces its
// documented degraded/neutral result instead of failing.
func New(rd *RefData) *Engine {
	e := &Engine{}
	if rd != nil {
		e.ref.Store(rd)
	}
	return e
}

// Reload atomically replaces the reference data store
func (e *Engine) Reload(rd *RefData) {
	e.ref.Store(rd)
}

func (e *Engine) refData() *RefData {
	return e.ref.Load()
}

package match

import "github.com/lathercraft/brushmatch/internal/catalog"

// composeFromEntry builds a Matched from a catalog entry, copying every
// declared field through and resolving the fiber against userText. An empty
// userText (curated overrides) always takes the catalog default.
func composeFromEntry(e *catalog.Entry, userText string) *Matched {
	m := &Matched{
		Brand:      e.Brand,
		Model:      e.Model,
		KnotSizeMM: e.KnotSizeMM,
	}
	if len(e.Extra) > 0 {
		m.Extra = make(map[string]any, len(e.Extra))
		for k, v := range e.Extra {
			m.Extra[k] = v
		}
	}
	resolveFiber(m, e, userText)
	return m
}

// resolveFiber applies the fiber precedence rules: the catalog default is
// authoritative on conflict, the user's word fills a missing default, and
// the provenance tag records which source won.
func resolveFiber(m *Matched, e *catalog.Entry, userText string) {
	userFiber, userWord := detectFiber(userText)

	switch {
	case userFiber == "":
		m.Fiber = e.Fiber
		m.FiberStrategy = FiberFromDefault
	case e.Fiber == "":
		m.Fiber = userFiber
		m.FiberStrategy = FiberFromUser
	case userFiber == e.Fiber:
		m.Fiber = e.Fiber
		m.FiberStrategy = FiberFromUser
	default:
		m.Fiber = e.Fiber
		m.FiberStrategy = FiberFromCatalog
		m.FiberConflict = userWord
	}
}

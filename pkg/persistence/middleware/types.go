package middleware

import "github.com/aretw0/pushdown/pkg/ports"

// Middleware allows wrapping a RunStore to add behavior.
type Middleware func(ports.RunStore) ports.RunStore

// Chain wraps store with every middleware. The first middleware is the outermost,
// so it sees results before the others on Save and after them on Load.
func Chain(store ports.RunStore, mws ...Middleware) ports.RunStore {
	for i := len(mws) - 1; i >= 0; i-- {
		store = mws[i](store)
	}
	return store
}

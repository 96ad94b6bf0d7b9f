// Package middleware decorates a ports.ClientStore with extra behavior.
package middleware

import "github.com/aretw0/webterm/pkg/ports"

// Middleware allows wrapping a ClientStore to add behavior.
type Middleware func(ports.ClientStore) ports.ClientStore

// Chain applies mws so that the first one is outermost.
func Chain(store ports.ClientStore, mws ...Middleware) ports.ClientStore {
	for i := len(mws) - 1; i >= 0; i-- {
		store = mws[i](store)
	}
	return store
}

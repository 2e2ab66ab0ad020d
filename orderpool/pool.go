// Package orderpool provides pooled allocation of orderbook.Order
// records. The engine is single-threaded and never retains a pointer
// to a retired order past the call that retired it, so reclamation is
// immediate: there is no epoch or RCU machinery here, unlike the
// concurrent-reader case that machinery exists for elsewhere in the
// wider ecosystem this module draws on.
package orderpool

import (
	"sync"

	"matchcore/domain/orderbook"
)

// Pool is a typed object pool over orderbook.Order backed by
// sync.Pool.
type Pool struct {
	p *sync.Pool
}

func New() *Pool {
	return &Pool{
		p: &sync.Pool{
			New: func() any { return &orderbook.Order{} },
		},
	}
}

// Get returns a zeroed Order ready for the caller to populate.
func (p *Pool) Get() *orderbook.Order {
	return p.p.Get().(*orderbook.Order)
}

// Put returns o to the pool. Callers must not retain o afterward.
func (p *Pool) Put(o *orderbook.Order) {
	o.Reset()
	p.p.Put(o)
}

// Package result provides shared helpers for detection results.
package result

import "sync"

// IDGenerator holds a counter for assigning incremental ID numbers to
// detection results
type IDGenerator struct {
	id int64
	sync.Mutex
}

func NewIDGenerator() *IDGenerator {
	return &IDGenerator{}
}

// GetNext returns the next incremental ID number
func (g *IDGenerator) GetNext() int64 {
	g.Lock()
	defer g.Unlock()
	g.id++
	return g.id
}

package tree

import (
	"sync"
	"time"
)

// IDGenerator выдаёт строго возрастающие идентификаторы на основе
// текущего времени в миллисекундах
type IDGenerator struct {
	mu   sync.Mutex
	last int64
	now  func() time.Time
}

// NewIDGenerator создает генератор; now == nil означает time.Now
func NewIDGenerator(now func() time.Time) *IDGenerator {
	if now == nil {
		now = time.Now
	}
	return &IDGenerator{now: now}
}

// Next возвращает max(текущее время в мс, предыдущий идентификатор + 1)
func (g *IDGenerator) Next() int64 {
	g.mu.Lock()
	defer g.mu.Unlock()

	id := g.now().UnixMilli()
	if id <= g.last {
		id = g.last + 1
	}
	g.last = id
	return id
}

// Observe гарантирует, что id и меньшие значения больше не будут выданы
func (g *IDGenerator) Observe(id int64) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if id > g.last {
		g.last = id
	}
}

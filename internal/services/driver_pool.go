package services

import "transport-planner-service/internal/domain"

// DriverPool rotates drivers per station.
//
// Each station keeps its own cursor, and so does the ANY pool used when a
// station has no drivers. The Nth call for a station gets pool[N mod len].
// A pool belongs to one planning run; it is not safe for concurrent use.
type DriverPool struct {
	pools   map[string][]domain.Driver
	cursors map[string]int
}

// NewDriverPool partitions a roster by normalized station, keeping roster order.
func NewDriverPool(drivers []domain.Driver) *DriverPool {
	p := &DriverPool{
		pools:   make(map[string][]domain.Driver),
		cursors: make(map[string]int),
	}
	for _, d := range drivers {
		st := domain.NormalizeStation(d.Station)
		d.Station = st
		p.pools[st] = append(p.pools[st], d)
	}
	return p
}

// HasStation reports whether a non-empty pool exists for the station key.
func (p *DriverPool) HasStation(station string) bool {
	return len(p.pools[domain.NormalizeStation(station)]) > 0
}

// Assign hands out the next driver for a station.
func (p *DriverPool) Assign(station string) domain.DriverAssignment {
	key := domain.NormalizeStation(station)
	if len(p.pools[key]) == 0 {
		key = domain.AnyStation
	}

	pool := p.pools[key]
	if len(pool) == 0 {
		return domain.NoDriver
	}

	i := p.cursors[key]
	p.cursors[key] = i + 1
	return pool[i%len(pool)].Assignment()
}

// Reset rewinds every cursor to the start of its pool.
func (p *DriverPool) Reset() {
	clear(p.cursors)
}

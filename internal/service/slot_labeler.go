package service

import (
	"fmt"
	"math/rand/v2"
	"sync"

	"valet_parking/internal/domain"
)

// SlotLabeler picks the display position a car is parked at.
type SlotLabeler interface {
	Label(spot *domain.ParkingSpot) string
}

const (
	slotLevels   = 2
	slotSections = "ABCDEF"
	slotNumbers  = 10
)

// RandomSlotLabeler produces "Level N - X0M" labels. Labels are not unique.
type RandomSlotLabeler struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

func NewRandomSlotLabeler(src rand.Source) *RandomSlotLabeler {
	if src == nil {
		src = rand.NewPCG(rand.Uint64(), rand.Uint64())
	}
	return &RandomSlotLabeler{rnd: rand.New(src)}
}

func (l *RandomSlotLabeler) Label(_ *domain.ParkingSpot) string {
	l.mu.Lock()
	level := l.rnd.IntN(slotLevels) + 1
	section := slotSections[l.rnd.IntN(len(slotSections))]
	number := l.rnd.IntN(slotNumbers) + 1
	l.mu.Unlock()
	return fmt.Sprintf("Level %d - %c%02d", level, section, number)
}

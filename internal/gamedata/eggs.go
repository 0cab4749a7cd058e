package gamedata

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

var (
	ErrEggCapacityFull = errors.New("egg capacity full")
	// ErrNotFinite rejects NaN and infinite values, which cannot be saved.
	ErrNotFinite = errors.New("value is not finite")
)

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// StartIncubation appends a new egg. It refuses once CurrentEgg reaches
// MaxEggCapacity; this is where the egg capacity ceiling is enforced for
// gameplay code.
func (d *GameData) StartIncubation(entityType string, hatchTime float64, pos Vec3) error {
	entityType = strings.TrimSpace(entityType)
	if entityType == "" {
		return errors.New("entity type is required")
	}
	if !finite(hatchTime, pos.X, pos.Y, pos.Z) {
		return fmt.Errorf("%w: hatch time %v at %v", ErrNotFinite, hatchTime, pos)
	}
	if d.CurrentEgg() >= d.MaxEggCapacity {
		return fmt.Errorf("%w: %d/%d", ErrEggCapacityFull, d.CurrentEgg(), d.MaxEggCapacity)
	}
	if hatchTime < 0 {
		hatchTime = 0
	}
	d.ActiveEggs = append(d.ActiveEggs, EggData{
		EntityType:    entityType,
		RemainingTime: hatchTime,
		Position:      pos,
	})
	return nil
}

// TickEggs advances every egg by dt seconds and removes the ones that
// reached zero. Hatched eggs are returned in their original order. A
// non-positive or non-finite dt is ignored.
func (d *GameData) TickEggs(dt float64) []EggData {
	if dt <= 0 || !finite(dt) || len(d.ActiveEggs) == 0 {
		return nil
	}
	var hatched []EggData
	keep := d.ActiveEggs[:0]
	for _, egg := range d.ActiveEggs {
		egg.RemainingTime -= dt
		if egg.RemainingTime <= 0 {
			egg.RemainingTime = 0
			hatched = append(hatched, egg)
			continue
		}
		keep = append(keep, egg)
	}
	d.ActiveEggs = keep
	return hatched
}

func (d *GameData) CancelEgg(index int) (EggData, bool) {
	if index < 0 || index >= len(d.ActiveEggs) {
		return EggData{}, false
	}
	egg := d.ActiveEggs[index]
	d.ActiveEggs = append(d.ActiveEggs[:index], d.ActiveEggs[index+1:]...)
	return egg, true
}

package gamedata

import (
	"errors"
	"fmt"
	"strings"
)

type Species string

const (
	SpeciesAnt      Species = "ant"
	SpeciesBeetle   Species = "beetle"
	SpeciesSpider   Species = "spider"
	SpeciesMantis   Species = "mantis"
	SpeciesScorpion Species = "scorpion"
)

var ErrUnknownSpecies = errors.New("unknown species")

// AllSpecies lists every discoverable creature in encounter order.
func AllSpecies() []Species {
	return []Species{SpeciesAnt, SpeciesBeetle, SpeciesSpider, SpeciesMantis, SpeciesScorpion}
}

func ParseSpecies(s string) (Species, error) {
	sp := Species(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range AllSpecies() {
		if sp == known {
			return sp, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownSpecies, s)
}

func (d *GameData) flag(sp Species) (*bool, error) {
	switch sp {
	case SpeciesAnt:
		return &d.HasDiscoveredAnt, nil
	case SpeciesBeetle:
		return &d.HasDiscoveredBeetle, nil
	case SpeciesSpider:
		return &d.HasDiscoveredSpider, nil
	case SpeciesMantis:
		return &d.HasDiscoveredMantis, nil
	case SpeciesScorpion:
		return &d.HasDiscoveredScorpion, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownSpecies, sp)
	}
}

// Discover marks a species as encountered and reports whether this was the
// first encounter. Flags are one-way.
func (d *GameData) Discover(sp Species) (bool, error) {
	f, err := d.flag(sp)
	if err != nil {
		return false, err
	}
	if *f {
		return false, nil
	}
	*f = true
	return true, nil
}

func (d *GameData) HasDiscovered(sp Species) bool {
	f, err := d.flag(sp)
	if err != nil {
		return false
	}
	return *f
}

func (d *GameData) Discovered() []Species {
	var out []Species
	for _, sp := range AllSpecies() {
		if d.HasDiscovered(sp) {
			out = append(out, sp)
		}
	}
	return out
}

// KeepFlags copies every true discovery and collection flag from prev into d.
// Gameplay code calls it before saving a snapshot that may have been built
// from stale state.
func (d *GameData) KeepFlags(prev *GameData) {
	if prev == nil {
		return
	}
	d.HasDiscoveredAnt = d.HasDiscoveredAnt || prev.HasDiscoveredAnt
	d.HasDiscoveredBeetle = d.HasDiscoveredBeetle || prev.HasDiscoveredBeetle
	d.HasDiscoveredSpider = d.HasDiscoveredSpider || prev.HasDiscoveredSpider
	d.HasDiscoveredMantis = d.HasDiscoveredMantis || prev.HasDiscoveredMantis
	d.HasDiscoveredScorpion = d.HasDiscoveredScorpion || prev.HasDiscoveredScorpion
	d.CollectedFirstChitin = d.CollectedFirstChitin || prev.CollectedFirstChitin
	d.CollectedFirstCrumb = d.CollectedFirstCrumb || prev.CollectedFirstCrumb
}

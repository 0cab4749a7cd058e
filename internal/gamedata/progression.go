package gamedata

import (
	"errors"
	"fmt"
	"strings"
)

type Attribute string

const (
	AttrStrength   Attribute = "strength"
	AttrVitality   Attribute = "vitality"
	AttrAgility    Attribute = "agility"
	AttrIncubation Attribute = "incubation"
)

const PointsPerLevel = 3

var (
	ErrNoPoints         = errors.New("no attribute points available")
	ErrUnknownAttribute = errors.New("unknown attribute")
	ErrNotOwned         = errors.New("entity not owned")
)

// ExperienceForLevel is the experience needed to go from level to level+1.
func ExperienceForLevel(level int) int {
	if level < StartLevel {
		level = StartLevel
	}
	return 100 * level
}

// AddExperience grants xp and levels up as many times as it covers. Each
// level grants PointsPerLevel attribute points. Returns levels gained.
func (d *GameData) AddExperience(xp int) int {
	if xp <= 0 {
		return 0
	}
	d.Experience += xp
	gained := 0
	for d.Experience >= ExperienceForLevel(d.Level) {
		d.Experience -= ExperienceForLevel(d.Level)
		d.Level++
		d.AvailablePoints += PointsPerLevel
		gained++
	}
	return gained
}

// SpendAttributePoint moves one available point into attr. Vitality also
// raises MaxHP by 10 and incubation adds an egg slot every 5 points.
func (d *GameData) SpendAttributePoint(attr Attribute) error {
	if d.AvailablePoints <= 0 {
		return ErrNoPoints
	}
	switch attr {
	case AttrStrength:
		d.Strength++
	case AttrVitality:
		d.Vitality++
		d.MaxHP += 10
		d.HP += 10
	case AttrAgility:
		d.Agility++
	case AttrIncubation:
		d.Incubation++
		if d.Incubation%5 == 0 {
			d.MaxEggCapacity++
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownAttribute, attr)
	}
	d.AvailablePoints--
	return nil
}

// Purchase adds id to the owned set. Returns false when already owned.
func (d *GameData) Purchase(id string) bool {
	id = strings.TrimSpace(id)
	if id == "" || d.Owns(id) {
		return false
	}
	d.PurchasedEntities = append(d.PurchasedEntities, id)
	return true
}

func (d *GameData) Owns(id string) bool {
	for _, owned := range d.PurchasedEntities {
		if owned == id {
			return true
		}
	}
	return false
}

func (d *GameData) Equip(id string) error {
	id = strings.TrimSpace(id)
	if !d.Owns(id) {
		return fmt.Errorf("%w: %q", ErrNotOwned, id)
	}
	d.EquippedEntity = id
	return nil
}

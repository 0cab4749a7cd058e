package gamedata

import (
	"errors"
	"fmt"
)

type Resource string

const (
	ResourceChitin Resource = "chitin"
	ResourceCrumb  Resource = "crumb"
	ResourceCoin   Resource = "coin"
)

var (
	ErrUnknownResource = errors.New("unknown resource")
	ErrInsufficient    = errors.New("insufficient resource")
)

func (d *GameData) counter(r Resource) (cur *int, limit int, err error) {
	switch r {
	case ResourceChitin:
		return &d.Chitin, d.MaxChitin, nil
	case ResourceCrumb:
		return &d.Crumb, d.MaxCrumb, nil
	case ResourceCoin:
		return &d.Coin, d.MaxCoin, nil
	default:
		return nil, 0, fmt.Errorf("%w: %q", ErrUnknownResource, r)
	}
}

// AddResource adds up to amount and returns how much actually fit under the
// capacity. Collecting chitin or crumb for the first time sets the matching
// collection flag.
func (d *GameData) AddResource(r Resource, amount int) (int, error) {
	cur, limit, err := d.counter(r)
	if err != nil {
		return 0, err
	}
	if amount <= 0 {
		return 0, nil
	}
	before := *cur
	*cur = clampInt(before+amount, 0, limit)
	added := *cur - before
	if added > 0 {
		d.MarkCollected(r)
	}
	return added, nil
}

func (d *GameData) SpendResource(r Resource, amount int) error {
	cur, _, err := d.counter(r)
	if err != nil {
		return err
	}
	if amount <= 0 {
		return nil
	}
	if *cur < amount {
		return fmt.Errorf("%w: have %d %s, need %d", ErrInsufficient, *cur, r, amount)
	}
	*cur -= amount
	return nil
}

// MarkCollected records the first pickup of a resource. Coin has no
// tutorial flag.
func (d *GameData) MarkCollected(r Resource) {
	switch r {
	case ResourceChitin:
		d.CollectedFirstChitin = true
	case ResourceCrumb:
		d.CollectedFirstCrumb = true
	}
}

func (d *GameData) Damage(amount int) {
	if amount <= 0 {
		return
	}
	d.HP = clampInt(d.HP-amount, 0, d.MaxHP)
}

func (d *GameData) Heal(amount int) {
	if amount <= 0 {
		return
	}
	d.HP = clampInt(d.HP+amount, 0, d.MaxHP)
}

func (d *GameData) IsDead() bool {
	return d.HP <= 0
}

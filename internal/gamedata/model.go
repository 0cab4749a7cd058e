package gamedata

const (
	StartLevel          = 1
	StartHP             = 100
	StartMaxChitin      = 100
	StartMaxCrumb       = 100
	StartMaxCoin        = 9999
	StartMaxEggCapacity = 1
)

// Vec3 is a world position.
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// EggData is an incubation in progress.
type EggData struct {
	EntityType    string  `json:"entityType"`
	RemainingTime float64 `json:"remainingTime"` // seconds
	Position      Vec3    `json:"position"`
}

// GameData is the full snapshot of player progress. It holds no reference to
// any store; whoever loaded it owns it.
type GameData struct {
	Level           int `json:"level"`
	Experience      int `json:"experience"`
	Strength        int `json:"strength"`
	Vitality        int `json:"vitality"`
	Agility         int `json:"agility"`
	Incubation      int `json:"incubation"`
	AvailablePoints int `json:"availablePoints"`

	Chitin    int `json:"chitin"`
	MaxChitin int `json:"maxChitin"`
	Crumb     int `json:"crumb"`
	MaxCrumb  int `json:"maxCrumb"`
	Coin      int `json:"coin"`
	MaxCoin   int `json:"maxCoin"`
	HP        int `json:"hp"`
	MaxHP     int `json:"maxHp"`

	MaxEggCapacity int       `json:"maxEggCapacity"`
	ActiveEggs     []EggData `json:"activeEggs"`

	HasDiscoveredAnt      bool `json:"hasDiscoveredAnt"`
	HasDiscoveredBeetle   bool `json:"hasDiscoveredBeetle"`
	HasDiscoveredSpider   bool `json:"hasDiscoveredSpider"`
	HasDiscoveredMantis   bool `json:"hasDiscoveredMantis"`
	HasDiscoveredScorpion bool `json:"hasDiscoveredScorpion"`

	CollectedFirstChitin bool `json:"collectedFirstChitin"`
	CollectedFirstCrumb  bool `json:"collectedFirstCrumb"`

	PurchasedEntities []string `json:"purchasedEntities"`
	EquippedEntity    string   `json:"equippedEntity"`
}

// New returns a new-game snapshot.
func New() *GameData {
	return &GameData{
		Level:             StartLevel,
		MaxChitin:         StartMaxChitin,
		MaxCrumb:          StartMaxCrumb,
		MaxCoin:           StartMaxCoin,
		HP:                StartHP,
		MaxHP:             StartHP,
		MaxEggCapacity:    StartMaxEggCapacity,
		ActiveEggs:        []EggData{},
		PurchasedEntities: []string{},
	}
}

// CurrentEgg is the number of eggs incubating. It is always derived from
// ActiveEggs; there is no separately stored counter.
func (d *GameData) CurrentEgg() int {
	return len(d.ActiveEggs)
}

// Clone returns a deep copy.
func (d *GameData) Clone() *GameData {
	out := *d
	out.ActiveEggs = append([]EggData{}, d.ActiveEggs...)
	out.PurchasedEntities = append([]string{}, d.PurchasedEntities...)
	return &out
}

// Normalize repairs a decoded snapshot in place so that every counter sits
// within its bounds. A valid snapshot has at least one egg slot and a
// positive MaxHP; lower values are raised to the new-game defaults.
// Discovery and collection flags are left alone.
func Normalize(d *GameData) {
	if d.ActiveEggs == nil {
		d.ActiveEggs = []EggData{}
	}
	if d.PurchasedEntities == nil {
		d.PurchasedEntities = []string{}
	}

	if d.Level < StartLevel {
		d.Level = StartLevel
	}
	d.Experience = atLeastZero(d.Experience)
	d.Strength = atLeastZero(d.Strength)
	d.Vitality = atLeastZero(d.Vitality)
	d.Agility = atLeastZero(d.Agility)
	d.Incubation = atLeastZero(d.Incubation)
	d.AvailablePoints = atLeastZero(d.AvailablePoints)

	d.MaxChitin = atLeastZero(d.MaxChitin)
	d.MaxCrumb = atLeastZero(d.MaxCrumb)
	d.MaxCoin = atLeastZero(d.MaxCoin)
	if d.MaxHP <= 0 {
		d.MaxHP = StartHP
	}
	d.Chitin = clampInt(d.Chitin, 0, d.MaxChitin)
	d.Crumb = clampInt(d.Crumb, 0, d.MaxCrumb)
	d.Coin = clampInt(d.Coin, 0, d.MaxCoin)
	d.HP = clampInt(d.HP, 0, d.MaxHP)

	if d.MaxEggCapacity < StartMaxEggCapacity {
		d.MaxEggCapacity = StartMaxEggCapacity
	}
	if len(d.ActiveEggs) > d.MaxEggCapacity {
		d.ActiveEggs = append([]EggData{}, d.ActiveEggs[:d.MaxEggCapacity]...)
	}
	for i := range d.ActiveEggs {
		if d.ActiveEggs[i].RemainingTime < 0 {
			d.ActiveEggs[i].RemainingTime = 0
		}
	}

	seen := make(map[string]bool, len(d.PurchasedEntities))
	owned := d.PurchasedEntities[:0]
	for _, id := range d.PurchasedEntities {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		owned = append(owned, id)
	}
	d.PurchasedEntities = owned
}

func atLeastZero(v int) int {
	if v < 0 {
		return 0
	}
	return v
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

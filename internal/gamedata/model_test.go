package gamedata

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_IsNewGameState(t *testing.T) {
	d := New()

	assert.Equal(t, 1, d.Level)
	assert.Equal(t, 100, d.HP)
	assert.Equal(t, 100, d.MaxHP)
	assert.Equal(t, 0, d.Chitin)
	assert.Equal(t, 0, d.Crumb)
	assert.Equal(t, 0, d.Coin)
	assert.Equal(t, 1, d.MaxEggCapacity)
	assert.Equal(t, 0, d.CurrentEgg())
	assert.NotNil(t, d.ActiveEggs)
	assert.NotNil(t, d.PurchasedEntities)
	assert.Empty(t, d.Discovered())
	assert.False(t, d.CollectedFirstChitin)
	assert.False(t, d.CollectedFirstCrumb)
	assert.Equal(t, "", d.EquippedEntity)
}

func TestNormalize_LeavesValidSnapshotAlone(t *testing.T) {
	d := New()
	d.Level = 4
	d.Chitin = 40
	d.Purchase("ant")
	_, err := d.Discover(SpeciesBeetle)
	require.NoError(t, err)
	require.NoError(t, d.StartIncubation("ant", 30, Vec3{X: 1}))

	want := d.Clone()
	Normalize(d)
	assert.Equal(t, want, d)
}

func TestNormalize_ClampsCounters(t *testing.T) {
	d := &GameData{
		Level:             0,
		Experience:        -5,
		Chitin:            500,
		MaxChitin:         100,
		Crumb:             -3,
		MaxCrumb:          10,
		Coin:              7,
		MaxCoin:           5,
		HP:                250,
		MaxHP:             0,
		MaxEggCapacity:    0,
		ActiveEggs:        []EggData{{EntityType: "ant", RemainingTime: -1}, {EntityType: "beetle"}},
		PurchasedEntities: []string{"ant", "", "ant", "spider"},
		HasDiscoveredAnt:  true,
	}

	Normalize(d)

	assert.Equal(t, 1, d.Level)
	assert.Equal(t, 0, d.Experience)
	assert.Equal(t, 100, d.Chitin)
	assert.Equal(t, 0, d.Crumb)
	assert.Equal(t, 5, d.Coin)
	assert.Equal(t, 100, d.MaxHP)
	assert.Equal(t, 100, d.HP)
	assert.Equal(t, 1, d.MaxEggCapacity)
	require.Len(t, d.ActiveEggs, 1)
	assert.Equal(t, "ant", d.ActiveEggs[0].EntityType)
	assert.Equal(t, 0.0, d.ActiveEggs[0].RemainingTime)
	assert.Equal(t, []string{"ant", "spider"}, d.PurchasedEntities)
	assert.True(t, d.HasDiscoveredAnt)
}

func TestNormalize_NilCollections(t *testing.T) {
	d := New()
	d.ActiveEggs = nil
	d.PurchasedEntities = nil

	Normalize(d)
	assert.Equal(t, New(), d)
}

func TestClone_IsDeep(t *testing.T) {
	d := New()
	d.Purchase("ant")
	c := d.Clone()
	c.PurchasedEntities[0] = "beetle"
	assert.Equal(t, "ant", d.PurchasedEntities[0])
}

package savesys

import (
	"encoding/json"
	"testing"
	"time"

	"anthill/internal/gamedata"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncode_WritesEnvelope(t *testing.T) {
	now := time.Date(2026, 5, 4, 3, 2, 1, 0, time.FixedZone("x", 3600))
	b, h, err := encode(gamedata.New(), now)
	require.NoError(t, err)

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(b, &raw))
	assert.Contains(t, raw, "schemaVersion")
	assert.Contains(t, raw, "saveId")
	assert.Contains(t, raw, "savedAt")
	assert.Contains(t, raw, "data")

	assert.Equal(t, SchemaVersion, h.SchemaVersion)
	assert.Equal(t, now.UTC(), h.SavedAt)
	_, err = uuid.Parse(h.SaveID)
	assert.NoError(t, err)
}

func TestEncode_FreshSaveIDPerWrite(t *testing.T) {
	_, h1, err := encode(gamedata.New(), time.Now())
	require.NoError(t, err)
	_, h2, err := encode(gamedata.New(), time.Now())
	require.NoError(t, err)
	assert.NotEqual(t, h1.SaveID, h2.SaveID)
}

func TestDecode_RoundTripHeader(t *testing.T) {
	d := gamedata.New()
	d.Coin = 77
	b, h, err := encode(d, time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC))
	require.NoError(t, err)

	got, gotH, err := decode(b)
	require.NoError(t, err)
	assert.Equal(t, d, got)
	assert.Equal(t, h, gotH)
}

func TestDecode_LegacyDropsStoredEggCount(t *testing.T) {
	got, h, err := decode([]byte(`{"level":2,"currentEgg":4}`))
	require.NoError(t, err)
	assert.Equal(t, 1, h.SchemaVersion)
	assert.Equal(t, 2, got.Level)
	assert.Equal(t, 0, got.CurrentEgg())
}

func TestDecode_RejectsForeignObject(t *testing.T) {
	for _, raw := range []string{
		`{"foo":"bar","unrelated":[1,2]}`,
		`{"currentEgg":3}`,
		`{"schemaVersion":2,"data":{"foo":"bar"}}`,
	} {
		_, _, err := decode([]byte(raw))
		assert.ErrorIs(t, err, errForeignSave, raw)
	}
}

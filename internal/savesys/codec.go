package savesys

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
	"time"

	"anthill/internal/gamedata"

	"github.com/google/uuid"
)

// SchemaVersion is written into every save. Version 1 is the bare record
// written before the envelope existed.
const SchemaVersion = 2

type envelope struct {
	SchemaVersion int             `json:"schemaVersion"`
	SaveID        string          `json:"saveId,omitempty"`
	SavedAt       time.Time       `json:"savedAt"`
	Data          json.RawMessage `json:"data"`
}

// Header describes a decoded save file.
type Header struct {
	SchemaVersion int
	SaveID        string
	SavedAt       time.Time
}

type migration func(fields map[string]json.RawMessage)

// migrations[v] upgrades a record from version v to v+1.
var migrations = map[int]migration{
	// v1 stored currentEgg next to activeEggs; the count is now derived.
	1: func(fields map[string]json.RawMessage) {
		delete(fields, "currentEgg")
	},
}

// knownFields is the set of JSON keys GameData reads. A record that shares
// none of them is some other file, not a save.
var knownFields = func() map[string]bool {
	t := reflect.TypeOf(gamedata.GameData{})
	keys := make(map[string]bool, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		name, _, _ := strings.Cut(t.Field(i).Tag.Get("json"), ",")
		if name != "" && name != "-" {
			keys[name] = true
		}
	}
	return keys
}()

func hasKnownField(fields map[string]json.RawMessage) bool {
	for k := range fields {
		if knownFields[k] {
			return true
		}
	}
	return false
}

func encode(d *gamedata.GameData, now time.Time) ([]byte, Header, error) {
	data, err := json.Marshal(d)
	if err != nil {
		return nil, Header{}, err
	}
	h := Header{
		SchemaVersion: SchemaVersion,
		SaveID:        uuid.NewString(),
		SavedAt:       now.UTC(),
	}
	b, err := json.MarshalIndent(envelope{
		SchemaVersion: h.SchemaVersion,
		SaveID:        h.SaveID,
		SavedAt:       h.SavedAt,
		Data:          data,
	}, "", "  ")
	if err != nil {
		return nil, Header{}, err
	}
	return b, h, nil
}

func decode(b []byte) (*gamedata.GameData, Header, error) {
	var h Header
	b = bytes.TrimSpace(b)
	if len(b) == 0 {
		return nil, h, errEmptySave
	}

	var top map[string]json.RawMessage
	if err := json.Unmarshal(b, &top); err != nil {
		return nil, h, fmt.Errorf("parse save: %w", err)
	}
	if len(top) == 0 {
		return nil, h, errEmptySave
	}

	payload := b
	h.SchemaVersion = 1
	if _, ok := top["schemaVersion"]; ok {
		var env envelope
		if err := json.Unmarshal(b, &env); err != nil {
			return nil, h, fmt.Errorf("parse envelope: %w", err)
		}
		if env.SchemaVersion < 1 {
			return nil, h, fmt.Errorf("invalid schema version %d", env.SchemaVersion)
		}
		if len(env.Data) == 0 || bytes.Equal(bytes.TrimSpace(env.Data), []byte("null")) {
			return nil, h, errMissingData
		}
		h = Header{SchemaVersion: env.SchemaVersion, SaveID: env.SaveID, SavedAt: env.SavedAt}
		payload = env.Data
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(payload, &fields); err != nil {
		return nil, h, fmt.Errorf("parse record: %w", err)
	}
	if len(fields) == 0 {
		return nil, h, errEmptySave
	}
	for v := h.SchemaVersion; v < SchemaVersion; v++ {
		if m, ok := migrations[v]; ok {
			m(fields)
		}
	}
	if !hasKnownField(fields) {
		return nil, h, errForeignSave
	}
	upgraded, err := json.Marshal(fields)
	if err != nil {
		return nil, h, err
	}

	// Start from a new game so keys absent from older saves keep their
	// defaults.
	d := gamedata.New()
	if err := json.Unmarshal(upgraded, d); err != nil {
		return nil, h, fmt.Errorf("decode record: %w", err)
	}
	return d, h, nil
}

package savesys

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"anthill/internal/gamedata"
)

type LoadOutcome int

const (
	// OutcomeLoaded means an existing save was decoded.
	OutcomeLoaded LoadOutcome = iota
	// OutcomeCreated means no save existed and a new game was written.
	OutcomeCreated
	// OutcomeRecovered means the save was unreadable and a new game was
	// returned in its place.
	OutcomeRecovered
)

func (o LoadOutcome) String() string {
	switch o {
	case OutcomeLoaded:
		return "loaded"
	case OutcomeCreated:
		return "created"
	case OutcomeRecovered:
		return "recovered"
	default:
		return fmt.Sprintf("LoadOutcome(%d)", int(o))
	}
}

type Options struct {
	// Dir holds the save file. Empty means the platform data dir.
	Dir string
	// FileName is a bare file name. Empty means DefaultFileName.
	FileName string
	// QuarantineCorrupt renames an undecodable save aside instead of
	// leaving it to be overwritten by the next Save.
	QuarantineCorrupt bool
	Logger            *log.Logger
}

// Store reads and writes a single GameData file. It keeps no copy of the
// snapshot between calls. All methods are safe for concurrent use.
type Store struct {
	mu         sync.Mutex
	dir        string
	path       string
	quarantine bool
	logger     *log.Logger

	now    func() time.Time
	rename func(oldpath, newpath string) error
}

func NewStore(opts Options) (*Store, error) {
	dir := strings.TrimSpace(opts.Dir)
	if dir == "" {
		d, err := DataDir(DefaultAppName)
		if err != nil {
			return nil, err
		}
		dir = d
	}
	name := strings.TrimSpace(opts.FileName)
	if name == "" {
		name = DefaultFileName
	}
	if filepath.Base(name) != name || name == "." || name == ".." {
		return nil, fmt.Errorf("save file name must be a bare name: %q", name)
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	return &Store{
		dir:        filepath.Clean(dir),
		path:       filepath.Join(filepath.Clean(dir), name),
		quarantine: opts.QuarantineCorrupt,
		logger:     opts.Logger,
		now:        time.Now,
		rename:     os.Rename,
	}, nil
}

func (s *Store) Path() string { return s.path }

// Save writes d to a temp file beside the save and renames it into place.
// On failure the returned error is a *SaveError and the previous save is
// left as it was.
func (s *Store) Save(d *gamedata.GameData) error {
	if d == nil {
		return &SaveError{Reason: ReasonNilSnapshot, Path: s.path}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveLocked(d)
}

func (s *Store) saveLocked(d *gamedata.GameData) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return &SaveError{Reason: ReasonCreateDir, Path: s.path, Err: err}
	}
	b, _, err := encode(d, s.now())
	if err != nil {
		return &SaveError{Reason: ReasonEncode, Path: s.path, Err: err}
	}

	tmp, err := os.CreateTemp(s.dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return &SaveError{Reason: ReasonWrite, Path: s.path, Err: err}
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(b); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return &SaveError{Reason: ReasonWrite, Path: s.path, Err: err}
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return &SaveError{Reason: ReasonWrite, Path: s.path, Err: err}
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return &SaveError{Reason: ReasonWrite, Path: s.path, Err: err}
	}
	if err := s.rename(tmpPath, s.path); err != nil {
		_ = os.Remove(tmpPath)
		return &SaveError{Reason: ReasonReplace, Path: s.path, Err: err}
	}
	return nil
}

// Load never fails: it returns the saved snapshot, or a new game when there
// is nothing usable on disk.
func (s *Store) Load() *gamedata.GameData {
	d, _ := s.LoadWithOutcome()
	return d
}

func (s *Store) LoadWithOutcome() (*gamedata.GameData, LoadOutcome) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		d := gamedata.New()
		if err := s.saveLocked(d); err != nil {
			s.logger.Printf("savesys: could not write new save: %v", err)
		}
		return d, OutcomeCreated
	}
	if err != nil {
		s.logger.Printf("savesys: read %s failed, starting a new game: %v", s.path, err)
		return gamedata.New(), OutcomeRecovered
	}

	d, h, err := decode(b)
	if err != nil {
		s.logger.Printf("savesys: %s is corrupt, starting a new game: %v", s.path, err)
		if s.quarantine {
			s.quarantineLocked()
		}
		return gamedata.New(), OutcomeRecovered
	}
	if h.SchemaVersion > SchemaVersion {
		s.logger.Printf("savesys: %s (save %s) has schema version %d, newer than %d; unknown fields dropped", s.path, h.SaveID, h.SchemaVersion, SchemaVersion)
	}
	gamedata.Normalize(d)
	return d, OutcomeLoaded
}

func (s *Store) quarantineLocked() {
	aside := s.path + ".corrupt-" + s.now().UTC().Format("20060102T150405Z")
	if err := s.rename(s.path, aside); err != nil {
		s.logger.Printf("savesys: could not move corrupt save aside: %v", err)
		return
	}
	s.logger.Printf("savesys: corrupt save moved to %s", aside)
}

// Inspect decodes the save without any recovery side effects.
func (s *Store) Inspect() (*gamedata.GameData, Header, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := os.ReadFile(s.path)
	if err != nil {
		return nil, Header{}, err
	}
	d, h, err := decode(b)
	if err != nil {
		return nil, h, err
	}
	gamedata.Normalize(d)
	return d, h, nil
}

// Delete removes the save. A missing save is not an error.
func (s *Store) Delete() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

package storage

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/loganmatson/playbook/internal/constants"
	"github.com/loganmatson/playbook/internal/logger"
	"github.com/loganmatson/playbook/internal/models"
)

// Patch carries partial updates for a playbook record. A nil map leaves
// the corresponding field alone; entries in a non-nil map are merged into
// the stored field by practice id, so a completion patch and a reflection
// patch submitted back to back both survive.
type Patch struct {
	Completed   map[int]bool
	Reflections map[int]models.Reflection
}

// PlaybookStore provides playbook CRUD over a Gateway.
//
// The gateway offers no transactions or compare-and-swap, so every
// mutation is a read-merge-write against the latest stored value, and all
// mutations are funneled through a single writer goroutine. Two patches
// submitted in quick succession therefore apply in submission order
// instead of racing (the lost-update hazard of the underlying engine).
type PlaybookStore struct {
	gw Gateway

	ops    chan func()
	closed chan struct{}

	// now and lastID support monotonic time-derived ids; both are only
	// touched from the writer goroutine or before it starts.
	now    func() int64
	lastID int64
}

func NewPlaybookStore(gw Gateway) *PlaybookStore {
	s := &PlaybookStore{
		gw:     gw,
		ops:    make(chan func()),
		closed: make(chan struct{}),
		now:    func() int64 { return time.Now().UnixMilli() },
	}
	go s.run()
	return s
}

func (s *PlaybookStore) run() {
	for fn := range s.ops {
		fn()
	}
	close(s.closed)
}

// Close stops the writer goroutine. Pending submissions complete first.
func (s *PlaybookStore) Close() {
	close(s.ops)
	<-s.closed
}

// exec runs fn on the writer goroutine and waits for its result.
func (s *PlaybookStore) exec(fn func() error) error {
	resp := make(chan error, 1)
	s.ops <- func() { resp <- fn() }
	return <-resp
}

func playbookKey(id string) string {
	return constants.PlaybookKeyPrefix + id
}

// newID derives a fresh playbook id from the current time in milliseconds,
// bumped past the previously issued id so two rapid creations never
// collide.
func (s *PlaybookStore) newID() (string, int64) {
	ts := s.now()
	if ts <= s.lastID {
		ts = s.lastID + 1
	}
	s.lastID = ts
	return fmt.Sprintf("%d", ts), ts
}

// fetch reads and decodes the stored record for id. Gateway ErrNotFound
// passes through so callers can translate it.
func (s *PlaybookStore) fetch(id string) (*models.Playbook, error) {
	raw, err := s.gw.Get(playbookKey(id))
	if err != nil {
		return nil, err
	}
	var pb models.Playbook
	if err := json.Unmarshal([]byte(raw), &pb); err != nil {
		return nil, fmt.Errorf("failed to parse playbook %s: %w", id, err)
	}
	pb.Normalize()
	return &pb, nil
}

func (s *PlaybookStore) persist(pb *models.Playbook) error {
	data, err := json.Marshal(pb)
	if err != nil {
		return fmt.Errorf("failed to serialize playbook %s: %w", pb.ID, err)
	}
	if err := s.gw.Set(playbookKey(pb.ID), string(data)); err != nil {
		return fmt.Errorf("failed to write playbook %s: %w", pb.ID, err)
	}
	return nil
}

// ListAll returns every stored playbook, newest first. Records that fail
// to decode are skipped and logged rather than failing the whole listing.
func (s *PlaybookStore) ListAll() ([]models.Playbook, error) {
	var out []models.Playbook
	err := s.exec(func() error {
		keys, err := s.gw.List(constants.PlaybookKeyPrefix)
		if err != nil {
			return fmt.Errorf("failed to list playbooks: %w", err)
		}
		for _, key := range keys {
			raw, err := s.gw.Get(key)
			if err != nil {
				logger.Warn("playbook disappeared during listing", "key", key, "error", err)
				continue
			}
			var pb models.Playbook
			if err := json.Unmarshal([]byte(raw), &pb); err != nil {
				logger.Warn("skipping undecodable playbook record", "key", key, "error", err)
				continue
			}
			pb.Normalize()
			out = append(out, pb)
		}
		sort.Slice(out, func(i, j int) bool {
			return out[i].CreatedAt > out[j].CreatedAt
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Create assigns a fresh id, stamps both timestamps, persists and returns
// the record. A storage failure here is surfaced: losing a freshly
// generated playbook is unacceptable.
func (s *PlaybookStore) Create(config models.Config, practices []models.Practice) (*models.Playbook, error) {
	var created *models.Playbook
	err := s.exec(func() error {
		id, now := s.newID()
		pb := &models.Playbook{
			ID:           id,
			Config:       config,
			Practices:    practices,
			Completed:    make(map[int]bool),
			Reflections:  make(map[int]models.Reflection),
			CreatedAt:    now,
			LastAccessed: now,
		}
		if err := s.persist(pb); err != nil {
			return err
		}
		created = pb
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// Load fetches a playbook and refreshes its lastAccessed stamp. The
// refresh write is best-effort: a storage error there is logged and
// swallowed so it never blocks the user from opening their playbook.
func (s *PlaybookStore) Load(id string) (*models.Playbook, error) {
	var loaded *models.Playbook
	err := s.exec(func() error {
		pb, err := s.fetch(id)
		if err != nil {
			return err
		}
		pb.LastAccessed = s.now()
		if err := s.persist(pb); err != nil {
			logger.Warn("failed to refresh lastAccessed", "playbook", id, "error", err)
		}
		loaded = pb
		return nil
	})
	if err != nil {
		return nil, err
	}
	return loaded, nil
}

// Delete removes the playbook. Deleting an absent id returns ErrNotFound,
// which callers treat as a successful no-op, making delete idempotent.
func (s *PlaybookStore) Delete(id string) error {
	return s.exec(func() error {
		if _, err := s.gw.Get(playbookKey(id)); err != nil {
			return err
		}
		if err := s.gw.Delete(playbookKey(id)); err != nil {
			return fmt.Errorf("failed to delete playbook %s: %w", id, err)
		}
		return nil
	})
}

// ApplyPatch merges partial completion/reflection updates into the
// playbook. The stored record is re-read immediately before merging, on
// the writer goroutine, so a sibling field updated by a concurrent patch
// is never clobbered. Entries for unknown practice ids are dropped.
func (s *PlaybookStore) ApplyPatch(id string, patch Patch) error {
	return s.exec(func() error {
		pb, err := s.fetch(id)
		if err != nil {
			return err
		}
		for pid, done := range patch.Completed {
			if !pb.HasPractice(pid) {
				continue
			}
			pb.Completed[pid] = done
		}
		for pid, refl := range patch.Reflections {
			if !pb.HasPractice(pid) {
				continue
			}
			pb.Reflections[pid] = refl
		}
		pb.LastAccessed = s.now()
		return s.persist(pb)
	})
}

// ReplacePractice swaps in a regenerated practice. Order, length and every
// other entry of the stored sequence are preserved.
func (s *PlaybookStore) ReplacePractice(id string, practice models.Practice) error {
	return s.exec(func() error {
		pb, err := s.fetch(id)
		if err != nil {
			return err
		}
		replaced := false
		for i := range pb.Practices {
			if pb.Practices[i].ID == practice.ID {
				pb.Practices[i] = practice
				replaced = true
				break
			}
		}
		if !replaced {
			return fmt.Errorf("playbook %s has no practice %d: %w", id, practice.ID, ErrNotFound)
		}
		pb.LastAccessed = s.now()
		return s.persist(pb)
	})
}

// SeenFlag reports whether a one-time flag key (onboarding, tour) has been
// recorded. Absence is "not yet seen", not an error.
func (s *PlaybookStore) SeenFlag(key string) (bool, error) {
	var seen bool
	err := s.exec(func() error {
		v, err := s.gw.Get(key)
		if err == ErrNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		seen = v == "true"
		return nil
	})
	return seen, err
}

// MarkSeen records a one-time flag key.
func (s *PlaybookStore) MarkSeen(key string) error {
	return s.exec(func() error {
		return s.gw.Set(key, "true")
	})
}

package main

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"go.etcd.io/bbolt"
)

const profileBucket = "profiles"

// Store owns the durable user-id → profile mapping. WithProfile is the only
// mutation path: it serializes every load-compute-persist cycle behind one
// lock, so no caller ever observes a half-applied action.
//
// If the database file cannot be opened the store degrades to an in-memory
// map: the game keeps running, state just does not survive a restart. Game
// state here is best effort, not a ledger.
type Store struct {
	mu            sync.Mutex
	db            *bbolt.DB
	mem           map[string][]byte
	startingCoins int64
}

func OpenStore(path string, startingCoins int64) *Store {
	store := &Store{startingCoins: startingCoins}

	db, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: time.Second})
	if err == nil {
		err = db.Update(func(tx *bbolt.Tx) error {
			_, err := tx.CreateBucketIfNotExists([]byte(profileBucket))
			return err
		})
		if err != nil {
			_ = db.Close()
			db = nil
		}
	}
	if err != nil {
		log.Printf("store: cannot open %s (%v); falling back to in-memory state", path, err)
		store.mem = make(map[string][]byte)
		return store
	}

	store.db = db
	return store
}

func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// InMemory reports whether the store lost its backing file and is running on
// the volatile fallback.
func (s *Store) InMemory() bool {
	return s.db == nil
}

// WithProfile loads the profile for userID (synthesizing a default for first
// contact), applies fn, and persists the result only when the outcome is
// Applied. Rejected outcomes leave the stored record untouched.
func (s *Store) WithProfile(userID string, fn func(*PlayerProfile) Outcome) Outcome {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		profile := s.decodeProfile(userID, s.mem[userID])
		outcome := fn(profile)
		if outcome.Applied {
			s.mem[userID] = mustEncodeProfile(profile)
		}
		return outcome
	}

	var outcome Outcome
	err := s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(profileBucket))
		if bucket == nil {
			return fmt.Errorf("profile bucket is missing")
		}
		profile := s.decodeProfile(userID, bucket.Get([]byte(userID)))
		outcome = fn(profile)
		if !outcome.Applied {
			return nil
		}
		return bucket.Put([]byte(userID), mustEncodeProfile(profile))
	})
	if err != nil {
		// The transaction failed after fn ran; nothing was persisted, so
		// report the action as not applied rather than surfacing the fault.
		log.Printf("store: update for user %s failed: %v", userID, err)
		return Rejected(ReasonNone, "Something went wrong, please try again.")
	}
	return outcome
}

// ReadProfile returns a snapshot of the stored profile. The second result is
// false when the user has never been seen; callers that want first-contact
// defaults get them without creating a record.
func (s *Store) ReadProfile(userID string) (PlayerProfile, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		raw, ok := s.mem[userID]
		if !ok {
			return *NewPlayerProfile(s.startingCoins), false
		}
		return *s.decodeProfile(userID, raw), true
	}

	var profile PlayerProfile
	found := false
	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(profileBucket))
		if bucket == nil {
			return nil
		}
		raw := bucket.Get([]byte(userID))
		if raw == nil {
			return nil
		}
		found = true
		profile = *s.decodeProfile(userID, raw)
		return nil
	})
	if err != nil {
		log.Printf("store: read for user %s failed: %v", userID, err)
	}
	if !found {
		return *NewPlayerProfile(s.startingCoins), false
	}
	return profile, true
}

// ForEachProfile visits every stored profile until fn returns false. Used by
// the leaderboard and stats endpoints; read-only.
func (s *Store) ForEachProfile(fn func(userID string, profile PlayerProfile) bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		for userID, raw := range s.mem {
			if !fn(userID, *s.decodeProfile(userID, raw)) {
				return
			}
		}
		return
	}

	_ = s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(profileBucket))
		if bucket == nil {
			return nil
		}
		return bucket.ForEach(func(k, v []byte) error {
			if !fn(string(k), *s.decodeProfile(string(k), v)) {
				return errStopIteration
			}
			return nil
		})
	})
}

// ProfileCount returns the number of stored profiles.
func (s *Store) ProfileCount() int {
	count := 0
	s.ForEachProfile(func(string, PlayerProfile) bool {
		count++
		return true
	})
	return count
}

// ResetProfile deletes the stored record; the next action re-creates the
// default profile. Admin surface only.
func (s *Store) ResetProfile(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		delete(s.mem, userID)
		return
	}
	err := s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(profileBucket))
		if bucket == nil {
			return nil
		}
		return bucket.Delete([]byte(userID))
	})
	if err != nil {
		log.Printf("store: reset for user %s failed: %v", userID, err)
	}
}

var errStopIteration = fmt.Errorf("stop iteration")

// decodeProfile turns a stored record into a usable profile. A missing record
// means first contact; a corrupt one is logged and replaced with defaults
// rather than failing the action.
func (s *Store) decodeProfile(userID string, raw []byte) *PlayerProfile {
	if raw == nil {
		return NewPlayerProfile(s.startingCoins)
	}
	var profile PlayerProfile
	if err := json.Unmarshal(raw, &profile); err != nil {
		log.Printf("store: corrupt record for user %s (%v); using defaults", userID, err)
		return NewPlayerProfile(s.startingCoins)
	}
	profile.normalize()
	return &profile
}

func mustEncodeProfile(profile *PlayerProfile) []byte {
	raw, err := json.Marshal(profile)
	if err != nil {
		// A PlayerProfile is plain data; marshal cannot fail for any
		// reachable value.
		panic(fmt.Sprintf("encode profile: %v", err))
	}
	return raw
}

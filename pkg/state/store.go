package state

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Item is a single feed entry, immutable once created
type Item struct {
	GUID      string    `json:"guid"`
	Title     string    `json:"title"`
	Link      string    `json:"link"`
	Summary   string    `json:"summary"`
	Published time.Time `json:"published"`
	From      string    `json:"from"`
}

// State is the persisted poll state document: the dedup watermark plus a
// bounded list of feed items, newest first
type State struct {
	LastUID string `json:"last_uid,omitempty"`
	Items   []Item `json:"items"`
}

// Store persists the poll state as a single JSON document on disk.
// Accept is the only mutation entry point and is serialized by a mutex, so
// the background loop and a manual trigger can't lose each other's updates.
type Store struct {
	path     string
	link     string // feed-wide link stamped on every item
	maxItems int
	mu       sync.Mutex
}

// NewStore creates a store backed by the document at path
func NewStore(path, link string, maxItems int) *Store {
	return &Store{path: path, link: link, maxItems: maxItems}
}

// Load returns the persisted state, or the empty default when no document
// exists yet
func (s *Store) Load() (State, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return State{Items: []Item{}}, nil
		}
		return State{}, fmt.Errorf("read state file: %w", err)
	}

	var st State
	if err := json.Unmarshal(data, &st); err != nil {
		return State{}, fmt.Errorf("parse state file: %w", err)
	}
	if st.Items == nil {
		st.Items = []Item{}
	}
	return st, nil
}

// Save writes the complete document, replacing the prior one. The write goes
// to a temp file first and is renamed into place, a hard kill mid-write can't
// leave a truncated document behind.
func (s *Store) Save(st State) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}

	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".state-*.json")
	if err != nil {
		return fmt.Errorf("create temp state file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("write state file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("close state file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("replace state file: %w", err)
	}
	return nil
}

// Accept adds a new feed item unless its uid was already processed. It
// returns true when the item was added and persisted, false on a dedup
// rejection (no write happens in that case).
//
// A uid is considered processed when it matches the watermark or any guid
// still retained in the items list, so an old id can't be re-accepted until
// it has aged out of the feed entirely.
func (s *Store) Accept(uid, from, subject, summary string, published time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, err := s.Load()
	if err != nil {
		return false, err
	}

	if st.LastUID == uid {
		return false, nil
	}
	for _, it := range st.Items {
		if it.GUID == uid {
			return false, nil
		}
	}

	title := subject
	if title == "" {
		title = fmt.Sprintf("Email from %s", from)
	}

	item := Item{
		GUID:      uid,
		Title:     title,
		Link:      s.link,
		Summary:   summary,
		Published: published.UTC(),
		From:      from,
	}

	items := append([]Item{item}, st.Items...)
	if len(items) > s.maxItems {
		items = items[:s.maxItems]
	}
	st.Items = items
	st.LastUID = uid

	if err := s.Save(st); err != nil {
		return false, err
	}
	return true, nil
}

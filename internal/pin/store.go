// Package pin keeps captured regions in memory so they can be shown in
// always-on-top pin windows.
package pin

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// ErrNotFound is returned for ids that were never created or were deleted.
var ErrNotFound = errors.New("pin not found")

// Pin is a stored capture.
type Pin struct {
	ID      int
	Token   ulid.ULID
	PNG     []byte
	Bounds  image.Rectangle
	Created time.Time
}

// Store is safe for concurrent use. Ids start at 1 and are never reused.
type Store struct {
	mu     sync.RWMutex
	pins   map[int]Pin
	nextID int
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{pins: make(map[int]Pin)}
}

// Create encodes img as PNG and stores it under a new id.
func (s *Store) Create(img image.Image) (int, error) {
	if img == nil || img.Bounds().Empty() {
		return 0, fmt.Errorf("pin create: empty image")
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return 0, fmt.Errorf("pin create: encode: %w", err)
	}

	s.mu.Lock()
	s.nextID++
	p := Pin{
		ID:      s.nextID,
		Token:   ulid.Make(),
		PNG:     buf.Bytes(),
		Bounds:  img.Bounds(),
		Created: time.Now(),
	}
	s.pins[p.ID] = p
	s.mu.Unlock()

	log.Printf("pin: created %d (%s), %d bytes", p.ID, p.Token, len(p.PNG))
	return p.ID, nil
}

// Get returns the PNG bytes stored under id.
func (s *Store) Get(id int) ([]byte, error) {
	p, err := s.Pin(id)
	if err != nil {
		return nil, err
	}
	return p.PNG, nil
}

// Pin returns the full record stored under id.
func (s *Store) Pin(id int) (Pin, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.pins[id]
	if !ok {
		return Pin{}, fmt.Errorf("pin %d: %w", id, ErrNotFound)
	}
	return p, nil
}

// Image decodes the pin stored under id.
func (s *Store) Image(id int) (image.Image, error) {
	data, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("pin %d: decode: %w", id, err)
	}
	return img, nil
}

// Delete removes id and reports whether it existed.
func (s *Store) Delete(id int) bool {
	s.mu.Lock()
	_, ok := s.pins[id]
	delete(s.pins, id)
	s.mu.Unlock()
	log.Printf("pin: delete %d, removed: %v", id, ok)
	return ok
}

// IDs returns the live ids in ascending order.
func (s *Store) IDs() []int {
	s.mu.RLock()
	ids := make([]int, 0, len(s.pins))
	for id := range s.pins {
		ids = append(ids, id)
	}
	s.mu.RUnlock()
	sort.Ints(ids)
	return ids
}

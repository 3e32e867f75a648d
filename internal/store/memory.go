package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/aaronzipp/banker-and-robber/internal/game"
)

// maxCodeAttempts bounds room code regeneration on collision
const maxCodeAttempts = 10

// ErrNoRoomCode is returned when no free room code could be generated
var ErrNoRoomCode = errors.New("failed to generate room code")

// RoomRegistry maps room codes to live rooms
type RoomRegistry struct {
	rooms    map[string]*game.Room
	mu       sync.RWMutex
	ttl      time.Duration
	now      func() time.Time
	codeGen  func() string
	roomOpts []game.Option
}

// Option configures a RoomRegistry
type Option func(*RoomRegistry)

// WithTTL sets the age after which rooms are swept
func WithTTL(ttl time.Duration) Option {
	return func(s *RoomRegistry) { s.ttl = ttl }
}

// WithClock sets the time source used for sweeping
func WithClock(now func() time.Time) Option {
	return func(s *RoomRegistry) { s.now = now }
}

// WithCodeGenerator replaces the room code generator
func WithCodeGenerator(gen func() string) Option {
	return func(s *RoomRegistry) { s.codeGen = gen }
}

// WithRoomOptions are applied to every room the registry creates
func WithRoomOptions(opts ...game.Option) Option {
	return func(s *RoomRegistry) { s.roomOpts = append(s.roomOpts, opts...) }
}

// NewRoomRegistry creates a new room registry
func NewRoomRegistry(opts ...Option) *RoomRegistry {
	s := &RoomRegistry{
		rooms:   make(map[string]*game.Room),
		ttl:     time.Hour,
		now:     time.Now,
		codeGen: game.GenerateRoomCode,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create opens a room under a fresh code with the host seated
func (s *RoomRegistry) Create(hostID, hostName string) (*game.Room, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for range maxCodeAttempts {
		code := s.codeGen()
		if _, exists := s.rooms[code]; exists {
			continue
		}
		room, err := game.NewRoom(code, hostID, hostName, s.roomOpts...)
		if err != nil {
			return nil, err
		}
		s.rooms[code] = room
		return room, nil
	}
	return nil, ErrNoRoomCode
}

// Get retrieves a room by code
func (s *RoomRegistry) Get(code string) (*game.Room, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	room, exists := s.rooms[code]
	return room, exists
}

// Delete removes a room
func (s *RoomRegistry) Delete(code string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.rooms, code)
}

// Exists checks if a room code is in use
func (s *RoomRegistry) Exists(code string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, exists := s.rooms[code]
	return exists
}

// Len returns the number of live rooms
func (s *RoomRegistry) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.rooms)
}

// Sweep removes rooms older than the TTL and returns their codes
func (s *RoomRegistry) Sweep() []string {
	cutoff := s.now().Add(-s.ttl)

	s.mu.Lock()
	defer s.mu.Unlock()
	var removed []string
	for code, room := range s.rooms {
		if room.CreatedAt.Before(cutoff) {
			delete(s.rooms, code)
			removed = append(removed, code)
		}
	}
	return removed
}

// RunSweeper sweeps every interval until ctx is done. onSweep, if set, is
// called with the codes removed by each sweep that removed anything
func (s *RoomRegistry) RunSweeper(ctx context.Context, interval time.Duration, onSweep func([]string)) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			removed := s.Sweep()
			if len(removed) > 0 && onSweep != nil {
				onSweep(removed)
			}
		}
	}
}

package render

import "sync"

// Kind tells the client which sprite sheet to draw a node with.
type Kind string

const (
	KindChef Kind = "chef"
	KindHen  Kind = "hen"
	KindEgg  Kind = "egg"
)

// Lease grants the right to mutate a node until another lease is acquired.
type Lease uint64

// Node is an opaque drawable handle that animations mutate.
type Node interface {
	ID() string
	Transform() Transform
	// Acquire revokes every earlier lease and returns a new one.
	Acquire() Lease
	// Apply sets the transform if lease is still current and reports whether it did.
	Apply(lease Lease, t Transform) bool
}

// Sprite is the Node used by the game scene.
type Sprite struct {
	id   string
	kind Kind

	mu        sync.RWMutex
	transform Transform
	lease     Lease
}

// NewSprite creates a sprite at the given transform.
func NewSprite(id string, kind Kind, at Transform) *Sprite {
	return &Sprite{id: id, kind: kind, transform: at}
}

func (s *Sprite) ID() string { return s.id }

func (s *Sprite) Kind() Kind { return s.kind }

func (s *Sprite) Transform() Transform {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.transform
}

func (s *Sprite) Acquire() Lease {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lease++
	return s.lease
}

func (s *Sprite) Apply(lease Lease, t Transform) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if lease != s.lease {
		return false
	}
	s.transform = t
	return true
}

// State returns a copy suitable for snapshots.
func (s *Sprite) State() SpriteState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return SpriteState{ID: s.id, Kind: s.kind, Transform: s.transform}
}

// SpriteState is the serialized form of a sprite.
type SpriteState struct {
	ID   string `json:"id"`
	Kind Kind   `json:"kind"`
	Transform
}

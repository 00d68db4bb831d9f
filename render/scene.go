package render

import (
	"sort"
	"sync"
)

// Scene holds the sprites of one game.
type Scene struct {
	Width  float64
	Height float64

	mu      sync.RWMutex
	sprites map[string]*Sprite
}

// NewScene creates an empty scene with the given canvas size.
func NewScene(width, height float64) *Scene {
	return &Scene{
		Width:   width,
		Height:  height,
		sprites: make(map[string]*Sprite),
	}
}

// Add inserts or replaces a sprite.
func (s *Scene) Add(sprite *Sprite) {
	s.mu.Lock()
	s.sprites[sprite.ID()] = sprite
	s.mu.Unlock()
}

// Remove deletes a sprite. It returns false if the sprite was not there.
func (s *Scene) Remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sprites[id]; !ok {
		return false
	}
	delete(s.sprites, id)
	return true
}

// Get returns a sprite by id. A missing sprite is returned as a nil Node,
// not a typed nil, so callers can pass it straight to an animation.
func (s *Scene) Get(id string) Node {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sprite, ok := s.sprites[id]
	if !ok {
		return nil
	}
	return sprite
}

// Len returns the number of sprites.
func (s *Scene) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sprites)
}

// Snapshot returns all sprites of the given kinds (all kinds if none given), sorted by id.
func (s *Scene) Snapshot(kinds ...Kind) []SpriteState {
	s.mu.RLock()
	out := make([]SpriteState, 0, len(s.sprites))
	for _, sprite := range s.sprites {
		if len(kinds) > 0 && !hasKind(kinds, sprite.Kind()) {
			continue
		}
		out = append(out, sprite.State())
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func hasKind(kinds []Kind, k Kind) bool {
	for _, want := range kinds {
		if want == k {
			return true
		}
	}
	return false
}

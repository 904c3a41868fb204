package engine

import (
	"fmt"
	"math/rand"

	"github.com/google/uuid"

	"github.com/ghostrider-app/ghostrider/internal/domain"
)

// ─── Rider Profile ──────────────────────────────────────────────────────────
// An anonymous identity generated on first run and persisted. The nickname
// is cosmetic; the id is stable so a future shared layer can tell riders
// apart without accounts.

var (
	nicknameAdjectives = []string{
		"swift", "nimble", "brave", "kind", "blazing", "slick", "cool", "fiery",
	}
	nicknameNouns = []string{
		"rider", "courier", "knight", "sprinter", "lightning", "rocket", "dash",
	}
)

// NewProfile generates a fresh rider profile.
func NewProfile() domain.Profile {
	adj := nicknameAdjectives[rand.Intn(len(nicknameAdjectives))]
	noun := nicknameNouns[rand.Intn(len(nicknameNouns))]
	return domain.Profile{
		ID:       uuid.NewString(),
		Nickname: fmt.Sprintf("%s-%s-%d", adj, noun, rand.Intn(100)),
	}
}

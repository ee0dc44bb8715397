package atom

import (
	"errors"

	"github.com/lixenwraith/atom-builder/particle"
	"github.com/lixenwraith/atom-builder/shell"
)

var (
	// ErrInvalidParticleType rejects a particle that is not a proton, neutron or electron
	ErrInvalidParticleType = particle.ErrInvalidType

	// ErrParticleNotFound rejects removal of a non-member
	ErrParticleNotFound = errors.New("particle not found in atom")

	// ErrMissingRemovalListener means a member has no registered pick-up listener (internal bug)
	ErrMissingRemovalListener = errors.New("missing removal listener")

	// ErrAlreadyMember rejects adding a particle twice
	ErrAlreadyMember = errors.New("particle already a member of atom")

	// ErrUserControlled rejects a particle that is still being dragged
	ErrUserControlled = errors.New("particle is user controlled")

	// ErrNoOpenSlot rejects an electron beyond shell capacity
	ErrNoOpenSlot = shell.ErrNoOpenSlot
)

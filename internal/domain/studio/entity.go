package studio

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptyStudioName     = errors.New("studio name cannot be empty")
	ErrStudioNameTooLong   = errors.New("studio name is too long (max 255 characters)")
	ErrInvalidCapacityTier = errors.New("invalid capacity tier")
	ErrInvalidHoursRange   = errors.New("open time must be before close time")
)

const MaxStudioNameLength = 255

type CapacityTier string

const (
	TierSolo     CapacityTier = "solo"
	TierBand     CapacityTier = "band"
	TierEnsemble CapacityTier = "ensemble"
)

func (t CapacityTier) IsValid() bool {
	switch t {
	case TierSolo, TierBand, TierEnsemble:
		return true
	default:
		return false
	}
}

// Studio is immutable reference data. Open/close overrides are minutes since
// midnight; nil means the studio follows the settings defaults.
type Studio struct {
	id           uuid.UUID
	name         string
	capacityTier CapacityTier
	openMinutes  *int
	closeMinutes *int
	createdAt    time.Time
	updatedAt    time.Time
}

func NewStudio(id uuid.UUID, name string, tier CapacityTier, openMinutes, closeMinutes *int) (*Studio, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyStudioName
	}
	if len(name) > MaxStudioNameLength {
		return nil, ErrStudioNameTooLong
	}
	if !tier.IsValid() {
		return nil, ErrInvalidCapacityTier
	}
	if openMinutes != nil && closeMinutes != nil && *openMinutes >= *closeMinutes {
		return nil, ErrInvalidHoursRange
	}

	return &Studio{
		id:           id,
		name:         name,
		capacityTier: tier,
		openMinutes:  openMinutes,
		closeMinutes: closeMinutes,
	}, nil
}

// OperatingHours resolves the studio's hours against the settings defaults.
func (s *Studio) OperatingHours(defaultOpen, defaultClose int) (open, closeM int) {
	open, closeM = defaultOpen, defaultClose
	if s.openMinutes != nil {
		open = *s.openMinutes
	}
	if s.closeMinutes != nil {
		closeM = *s.closeMinutes
	}
	return open, closeM
}

func (s *Studio) ID() uuid.UUID              { return s.id }
func (s *Studio) Name() string               { return s.name }
func (s *Studio) CapacityTier() CapacityTier { return s.capacityTier }
func (s *Studio) OpenMinutes() *int          { return s.openMinutes }
func (s *Studio) CloseMinutes() *int         { return s.closeMinutes }
func (s *Studio) CreatedAt() time.Time       { return s.createdAt }
func (s *Studio) UpdatedAt() time.Time       { return s.updatedAt }

package entity

import (
	"pkg.world.dev/world-engine/sprite/codec"
	"pkg.world.dev/world-engine/sprite/types"
)

// Header holds the fields every entity has regardless of kind.
type Header struct {
	ID   types.Handle `json:"id"`
	Kind types.Kind   `json:"kind"`

	// Pos is the authoritative simulation position. It must only be changed through the arena so the spatial
	// index stays consistent.
	Pos types.Position `json:"pos"`
	// RenderPos is written by the tweener and read by renderers. The simulation never reads it.
	RenderPos types.Position `json:"renderPos"`

	Direction            uint8 `json:"direction"`
	SpriteWidth          uint8 `json:"spriteWidth"`
	SpriteHeightNegative uint8 `json:"spriteHeightNegative"`
	SpriteHeightPositive uint8 `json:"spriteHeightPositive"`
}

// Serialise appends the checksum-relevant header fields. RenderPos is renderer-local and excluded.
func (h *Header) Serialise(s *codec.Stream) {
	s.Uint16(uint16(h.ID)).Uint8(uint8(h.Kind))
	s.Int32(h.Pos.X).Int32(h.Pos.Y).Int32(h.Pos.Z)
	s.Uint8(h.Direction).Uint8(h.SpriteWidth).Uint8(h.SpriteHeightNegative).Uint8(h.SpriteHeightPositive)
}

// Body is implemented by every concrete entity payload.
type Body interface {
	Kind() types.Kind
	Serialise(s *codec.Stream)
}

// Slot is one cell of arena storage.
type Slot struct {
	Header

	guest    Guest
	staff    Staff
	vehicle  Vehicle
	litter   Litter
	balloon  Balloon
	duck     Duck
	steam    SteamParticle
	money    MoneyEffect
	crashed  CrashedVehicleParticle
	cloud    ExplosionCloud
	splash   CrashSplash
	flare    ExplosionFlare
	fountain JumpingFountain
}

// Body returns a pointer to the payload matching the slot's kind, or nil for a free slot.
func (s *Slot) Body() Body {
	return s.bodyFor(s.Kind)
}

func (s *Slot) bodyFor(k types.Kind) Body {
	switch k {
	case types.KindGuest:
		return &s.guest
	case types.KindStaff:
		return &s.staff
	case types.KindVehicle:
		return &s.vehicle
	case types.KindLitter:
		return &s.litter
	case types.KindBalloon:
		return &s.balloon
	case types.KindDuck:
		return &s.duck
	case types.KindSteamParticle:
		return &s.steam
	case types.KindMoneyEffect:
		return &s.money
	case types.KindCrashedVehicleParticle:
		return &s.crashed
	case types.KindExplosionCloud:
		return &s.cloud
	case types.KindCrashSplash:
		return &s.splash
	case types.KindExplosionFlare:
		return &s.flare
	case types.KindJumpingFountain:
		return &s.fountain
	default:
		return nil
	}
}

// IsFree reports whether the slot holds no entity.
func (s *Slot) IsFree() bool {
	return s.Kind == types.KindNull
}

// Init zeroes the slot and tags it with id and kind at the null position.
func (s *Slot) Init(id types.Handle, kind types.Kind) {
	*s = Slot{}
	s.ID = id
	s.Kind = kind
	s.Pos = types.NullPosition
	s.RenderPos = types.NullPosition
}

// Clear zeroes the slot and tags it free.
func (s *Slot) Clear() {
	*s = Slot{}
	s.Kind = types.KindNull
}

// Serialise appends the header followed by the payload. Free slots append nothing.
func (s *Slot) Serialise(stream *codec.Stream) {
	body := s.Body()
	if body == nil {
		return
	}
	s.Header.Serialise(stream)
	body.Serialise(stream)
}

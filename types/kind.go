package types

import (
	"strconv"

	"github.com/rotisserie/eris"
)

// Kind tags which concrete entity a slot currently holds. The numeric values are part of the network checksum
// stream and the snapshot format; append new kinds before KindCount, never reorder.
type Kind uint8

const (
	KindNull Kind = iota
	KindGuest
	KindStaff
	KindVehicle
	KindLitter
	KindBalloon
	KindDuck
	KindSteamParticle
	KindMoneyEffect
	KindCrashedVehicleParticle
	KindExplosionCloud
	KindCrashSplash
	KindExplosionFlare
	KindJumpingFountain

	KindCount
)

var ErrUnknownKind = eris.New("unknown entity kind")

var kindNames = [KindCount]string{
	KindNull:                   "null",
	KindGuest:                  "guest",
	KindStaff:                  "staff",
	KindVehicle:                "vehicle",
	KindLitter:                 "litter",
	KindBalloon:                "balloon",
	KindDuck:                   "duck",
	KindSteamParticle:          "steam_particle",
	KindMoneyEffect:            "money_effect",
	KindCrashedVehicleParticle: "crashed_vehicle_particle",
	KindExplosionCloud:         "explosion_cloud",
	KindCrashSplash:            "crash_splash",
	KindExplosionFlare:         "explosion_flare",
	KindJumpingFountain:        "jumping_fountain",
}

func (k Kind) String() string {
	if !k.Valid() {
		return "kind(" + strconv.Itoa(int(k)) + ")"
	}
	return kindNames[k]
}

// Valid reports whether k is one of the declared kinds, including KindNull.
func (k Kind) Valid() bool {
	return k < KindCount
}

// Live reports whether k can be held by an allocated slot.
func (k Kind) Live() bool {
	return k != KindNull && k.Valid()
}

// IsMisc reports whether k belongs to the bounded misc/effect category whose live population is capped to keep
// capacity in reserve for guests, staff, vehicles and litter.
func (k Kind) IsMisc() bool {
	switch k {
	case KindBalloon, KindDuck, KindSteamParticle, KindMoneyEffect, KindCrashedVehicleParticle,
		KindExplosionCloud, KindCrashSplash, KindExplosionFlare, KindJumpingFountain:
		return true
	default:
		return false
	}
}

func (k Kind) IsPeep() bool {
	return k == KindGuest || k == KindStaff
}

// Tweened reports whether entities of kind k have their rendered position interpolated between ticks.
func (k Kind) Tweened() bool {
	return k.IsPeep() || k == KindVehicle
}

// LiveKinds returns every allocatable kind in tag order. This is the order all cross-kind enumerations use.
func LiveKinds() []Kind {
	kinds := make([]Kind, 0, KindCount-1)
	for k := KindNull + 1; k < KindCount; k++ {
		kinds = append(kinds, k)
	}
	return kinds
}

// ParseKind maps a kind name back to its tag.
func ParseKind(name string) (Kind, error) {
	for k, n := range kindNames {
		if n == name {
			return Kind(k), nil
		}
	}
	return KindNull, eris.Wrapf(ErrUnknownKind, "%q", name)
}

package entity

import (
	"pkg.world.dev/world-engine/sprite/codec"
	"pkg.world.dev/world-engine/sprite/types"
)

var (
	_ Body = Guest{}
	_ Body = Staff{}
	_ Body = Vehicle{}
	_ Body = Litter{}
	_ Body = Balloon{}
	_ Body = Duck{}
	_ Body = SteamParticle{}
	_ Body = MoneyEffect{}
	_ Body = CrashedVehicleParticle{}
	_ Body = ExplosionCloud{}
	_ Body = CrashSplash{}
	_ Body = ExplosionFlare{}
	_ Body = JumpingFountain{}
)

// Peep holds the fields guests and staff share.
type Peep struct {
	// Name is owned outside the arena's fixed storage; detach hooks release anything keyed by it.
	Name         string         `json:"name"`
	State        uint8          `json:"state"`
	Energy       uint8          `json:"energy"`
	Destination  types.Position `json:"destination"`
	WalkingFrame uint8          `json:"walkingFrame"`
}

func (p Peep) serialise(s *codec.Stream) {
	s.String(p.Name).Uint8(p.State).Uint8(p.Energy)
	s.Int32(p.Destination.X).Int32(p.Destination.Y).Int32(p.Destination.Z)
	s.Uint8(p.WalkingFrame)
}

type Guest struct {
	Peep
	Happiness    uint8 `json:"happiness"`
	Nausea       uint8 `json:"nausea"`
	Hunger       uint8 `json:"hunger"`
	Thirst       uint8 `json:"thirst"`
	CashInPocket int32 `json:"cashInPocket"`
	CashSpent    int32 `json:"cashSpent"`
	ParkEntry    int32 `json:"parkEntryTick"`
}

func (Guest) Kind() types.Kind { return types.KindGuest }

func (g Guest) Serialise(s *codec.Stream) {
	g.Peep.serialise(s)
	s.Uint8(g.Happiness).Uint8(g.Nausea).Uint8(g.Hunger).Uint8(g.Thirst)
	s.Int32(g.CashInPocket).Int32(g.CashSpent).Int32(g.ParkEntry)
}

type StaffType uint8

const (
	StaffHandyman StaffType = iota
	StaffMechanic
	StaffSecurity
	StaffEntertainer
)

type Staff struct {
	Peep
	Type        StaffType `json:"type"`
	Orders      uint8     `json:"orders"`
	LitterSwept uint16    `json:"litterSwept"`
	RidesFixed  uint16    `json:"ridesFixed"`
}

func (Staff) Kind() types.Kind { return types.KindStaff }

func (st Staff) Serialise(s *codec.Stream) {
	st.Peep.serialise(s)
	s.Uint8(uint8(st.Type)).Uint8(st.Orders).Uint16(st.LitterSwept).Uint16(st.RidesFixed)
}

type Vehicle struct {
	RideIndex     uint16       `json:"rideIndex"`
	TrainHead     types.Handle `json:"trainHead"`
	NextInTrain   types.Handle `json:"nextInTrain"`
	TrackProgress uint16       `json:"trackProgress"`
	Velocity      int32        `json:"velocity"`
	Acceleration  int32        `json:"acceleration"`
	Mass          uint16       `json:"mass"`
	NumPeeps      uint8        `json:"numPeeps"`
	Status        uint8        `json:"status"`
}

func (Vehicle) Kind() types.Kind { return types.KindVehicle }

func (v Vehicle) Serialise(s *codec.Stream) {
	s.Uint16(v.RideIndex).Uint16(uint16(v.TrainHead)).Uint16(uint16(v.NextInTrain)).Uint16(v.TrackProgress)
	s.Int32(v.Velocity).Int32(v.Acceleration).Uint16(v.Mass).Uint8(v.NumPeeps).Uint8(v.Status)
}

type LitterType uint8

const (
	LitterVomit LitterType = iota
	LitterVomitAlt
	LitterEmptyCan
	LitterRubbish
	LitterBurgerBox
	LitterEmptyCup
)

type Litter struct {
	Type         LitterType `json:"type"`
	CreationTick uint32     `json:"creationTick"`
}

func (Litter) Kind() types.Kind { return types.KindLitter }

func (l Litter) Serialise(s *codec.Stream) {
	s.Uint8(uint8(l.Type)).Uint32(l.CreationTick)
}

type Balloon struct {
	Colour     uint8  `json:"colour"`
	Popped     bool   `json:"popped"`
	Frame      uint16 `json:"frame"`
	TimeToMove uint16 `json:"timeToMove"`
}

func (Balloon) Kind() types.Kind { return types.KindBalloon }

func (b Balloon) Serialise(s *codec.Stream) {
	s.Uint8(b.Colour).Bool(b.Popped).Uint16(b.Frame).Uint16(b.TimeToMove)
}

type DuckState uint8

const (
	DuckFlyToWater DuckState = iota
	DuckSwim
	DuckDrink
	DuckDoubleDrink
	DuckFlyAway
)

type Duck struct {
	State   DuckState `json:"state"`
	Frame   uint16    `json:"frame"`
	TargetX int32     `json:"targetX"`
	TargetY int32     `json:"targetY"`
}

func (Duck) Kind() types.Kind { return types.KindDuck }

func (d Duck) Serialise(s *codec.Stream) {
	s.Uint8(uint8(d.State)).Uint16(d.Frame).Int32(d.TargetX).Int32(d.TargetY)
}

type SteamParticle struct {
	Time  uint16 `json:"time"`
	Frame uint16 `json:"frame"`
}

func (SteamParticle) Kind() types.Kind { return types.KindSteamParticle }

func (p SteamParticle) Serialise(s *codec.Stream) {
	s.Uint16(p.Time).Uint16(p.Frame)
}

type MoneyEffect struct {
	Value        int32  `json:"value"`
	Vertical     bool   `json:"vertical"`
	MoveDelay    uint16 `json:"moveDelay"`
	NumMovements uint8  `json:"numMovements"`
	OffsetX      int16  `json:"offsetX"`
	Wiggle       uint16 `json:"wiggle"`
}

func (MoneyEffect) Kind() types.Kind { return types.KindMoneyEffect }

func (m MoneyEffect) Serialise(s *codec.Stream) {
	s.Int32(m.Value).Bool(m.Vertical).Uint16(m.MoveDelay).Uint8(m.NumMovements).Int16(m.OffsetX).Uint16(m.Wiggle)
}

type CrashedVehicleParticle struct {
	Colour        [2]uint8 `json:"colour"`
	Frame         uint16   `json:"frame"`
	TimeToLive    uint16   `json:"timeToLive"`
	VelocityX     int32    `json:"velocityX"`
	VelocityY     int32    `json:"velocityY"`
	VelocityZ     int32    `json:"velocityZ"`
	AccelerationX int32    `json:"accelerationX"`
	AccelerationY int32    `json:"accelerationY"`
	AccelerationZ int32    `json:"accelerationZ"`
}

func (CrashedVehicleParticle) Kind() types.Kind { return types.KindCrashedVehicleParticle }

func (p CrashedVehicleParticle) Serialise(s *codec.Stream) {
	s.Uint8(p.Colour[0]).Uint8(p.Colour[1]).Uint16(p.Frame).Uint16(p.TimeToLive)
	s.Int32(p.VelocityX).Int32(p.VelocityY).Int32(p.VelocityZ)
	s.Int32(p.AccelerationX).Int32(p.AccelerationY).Int32(p.AccelerationZ)
}

type ExplosionCloud struct {
	Frame uint16 `json:"frame"`
}

func (ExplosionCloud) Kind() types.Kind { return types.KindExplosionCloud }

func (e ExplosionCloud) Serialise(s *codec.Stream) { s.Uint16(e.Frame) }

type CrashSplash struct {
	Frame uint16 `json:"frame"`
}

func (CrashSplash) Kind() types.Kind { return types.KindCrashSplash }

func (e CrashSplash) Serialise(s *codec.Stream) { s.Uint16(e.Frame) }

type ExplosionFlare struct {
	Frame uint16 `json:"frame"`
}

func (ExplosionFlare) Kind() types.Kind { return types.KindExplosionFlare }

func (e ExplosionFlare) Serialise(s *codec.Stream) { s.Uint16(e.Frame) }

type FountainType uint8

const (
	FountainWater FountainType = iota
	FountainSnowball
)

type JumpingFountain struct {
	Type          FountainType `json:"type"`
	NumTicksAlive uint16       `json:"numTicksAlive"`
	Frame         uint16       `json:"frame"`
	Flags         uint8        `json:"flags"`
	TargetX       int32        `json:"targetX"`
	TargetY       int32        `json:"targetY"`
	Iteration     uint16       `json:"iteration"`
}

func (JumpingFountain) Kind() types.Kind { return types.KindJumpingFountain }

func (f JumpingFountain) Serialise(s *codec.Stream) {
	s.Uint8(uint8(f.Type)).Uint16(f.NumTicksAlive).Uint16(f.Frame).Uint8(f.Flags)
	s.Int32(f.TargetX).Int32(f.TargetY).Uint16(f.Iteration)
}

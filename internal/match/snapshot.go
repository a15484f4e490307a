package match

// PlayerSnapshot is the per-player slice of a patch, per spec §4.9.
type PlayerSnapshot struct {
	SessionID string      `json:"sessionId"`
	X         float32     `json:"x"`
	Y         float32     `json:"y"`
	Z         float32     `json:"z"`
	RotY      float32     `json:"rotY"`
	Team      string      `json:"team"`
	Character string      `json:"character"`
	Invisible bool        `json:"invisible"`
	Giant     bool        `json:"giant"`
	SpeedMult float32     `json:"speedMult"`
	JumpMult  float32     `json:"jumpMult"`
	KickMult  float32     `json:"kickMult"`
	Goals     int         `json:"goals"`
	Assists   int         `json:"assists"`
	Shots     int         `json:"shots"`
	Tick      uint64      `json:"tick"`
}

// PowerUpSnapshot is the per-power-up slice of a patch.
type PowerUpSnapshot struct {
	ID   string  `json:"id"`
	Type string  `json:"type"`
	X    float32 `json:"x"`
	Y    float32 `json:"y"`
	Z    float32 `json:"z"`
}

// BallSnapshot is the ball slice of a patch.
type BallSnapshot struct {
	X       float32 `json:"x"`
	Y       float32 `json:"y"`
	Z       float32 `json:"z"`
	VX      float32 `json:"vx"`
	VY      float32 `json:"vy"`
	VZ      float32 `json:"vz"`
	QX      float32 `json:"qx"`
	QY      float32 `json:"qy"`
	QZ      float32 `json:"qz"`
	QW      float32 `json:"qw"`
	Tick    uint64  `json:"tick"`
	OwnerID string  `json:"ownerSessionId"`
}

// Snapshot is a full state patch broadcast at PATCH_RATE.
type Snapshot struct {
	CurrentTick uint64              `json:"currentTick"`
	GamePhase   string              `json:"gamePhase"`
	Timer       float64             `json:"timer"`
	RedScore    int                 `json:"redScore"`
	BlueScore   int                 `json:"blueScore"`
	SelectedMap string              `json:"selectedMap"`
	Players     []PlayerSnapshot    `json:"players"`
	PowerUps    []PowerUpSnapshot   `json:"powerUps"`
	Ball        BallSnapshot        `json:"ball"`
}

// BuildSnapshot assembles a Snapshot from the match's current authoritative
// state. Called from the SnapshotPublisher at PATCH_RATE (every other sim
// tick at 60Hz/30Hz).
func BuildSnapshot(m *Match) Snapshot {
	players := make([]PlayerSnapshot, 0, len(m.Players))
	for _, p := range m.Players {
		players = append(players, PlayerSnapshot{
			SessionID: p.SessionID,
			X:         p.X, Y: p.Y, Z: p.Z, RotY: p.RotY,
			Team:      p.Team.String(),
			Character: p.Character,
			Invisible: p.Invisible,
			Giant:     p.Giant,
			SpeedMult: p.SpeedMult,
			JumpMult:  p.JumpMult,
			KickMult:  p.KickMult,
			Goals:     p.Stats.Goals,
			Assists:   p.Stats.Assists,
			Shots:     p.Stats.Shots,
			Tick:      p.LastReceivedTick,
		})
	}

	powerUps := make([]PowerUpSnapshot, 0, len(m.PowerUps))
	for _, pu := range m.PowerUps {
		powerUps = append(powerUps, PowerUpSnapshot{
			ID: pu.ID, Type: pu.Type.String(), X: pu.X, Y: pu.Y, Z: pu.Z,
		})
	}

	return Snapshot{
		CurrentTick: m.CurrentTick,
		GamePhase:   m.Phase.String(),
		Timer:       m.TimerRemaining.Seconds(),
		RedScore:    m.Goals.RedScore,
		BlueScore:   m.Goals.BlueScore,
		SelectedMap: m.SelectedMap,
		Players:     players,
		PowerUps:    powerUps,
		Ball: BallSnapshot{
			X: m.Ball.X, Y: m.Ball.Y, Z: m.Ball.Z,
			VX: m.Ball.VX, VY: m.Ball.VY, VZ: m.Ball.VZ,
			QX: m.Ball.Quat.V.X(), QY: m.Ball.Quat.V.Y(), QZ: m.Ball.Quat.V.Z(), QW: m.Ball.Quat.W,
			Tick:    m.Ball.Tick,
			OwnerID: m.Ball.OwnerSessionID,
		},
	}
}

package match

import (
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/fenixsports/soccer-server/internal/config"
)

func TestMatch_JoinAutoBalancesTeams(t *testing.T) {
	m := NewMatch("m1", "", "arena-1", nil, zerolog.Nop())

	p1, _ := m.Join("s1", "", "default")
	p2, _ := m.Join("s2", "", "default")

	if p1.Team == p2.Team {
		t.Fatalf("expected auto-balance to place the second joiner on the opposite team, got both %v", p1.Team)
	}
}

func TestMatch_JoinRejectsBeyondMaxClients(t *testing.T) {
	m := NewMatch("m1", "", "arena-1", nil, zerolog.Nop())
	for i := 0; i < config.MaxClients; i++ {
		if _, err := m.Join(string(rune('a'+i)), "", "default"); err != nil {
			t.Fatalf("unexpected error joining player %d: %v", i, err)
		}
	}
	if _, err := m.Join("overflow", "", "default"); err != ErrMatchFull {
		t.Fatalf("expected ErrMatchFull once MaxClients is reached, got %v", err)
	}
}

func TestMatch_FirstJoinerIsHost(t *testing.T) {
	m := NewMatch("m1", "", "arena-1", nil, zerolog.Nop())
	m.Join("first", "", "default")
	m.Join("second", "", "default")

	if !m.IsHost("first") {
		t.Fatalf("expected first joiner to be host")
	}
	if m.IsHost("second") {
		t.Fatalf("expected second joiner not to be host")
	}
}

func TestMatch_StartGameRejectsNonHost(t *testing.T) {
	m := NewMatch("m1", "", "arena-1", nil, zerolog.Nop())
	m.Join("first", "", "default")
	m.Join("second", "", "default")

	if err := m.StartGame("second"); err != ErrNotHost {
		t.Fatalf("expected ErrNotHost for a non-host start, got %v", err)
	}
	if err := m.StartGame("first"); err != nil {
		t.Fatalf("expected host start to succeed, got %v", err)
	}
	if m.Phase != PhasePlaying {
		t.Fatalf("expected Phase = PhasePlaying after host start")
	}
}

func TestMatch_LeaveMarksEmptyAndClearsOnRejoin(t *testing.T) {
	m := NewMatch("m1", "", "arena-1", nil, zerolog.Nop())
	m.Join("s1", "", "default")
	m.Leave("s1")

	if !m.IsEmpty() {
		t.Fatalf("expected match empty after last player leaves")
	}
	if m.EmptySince().IsZero() {
		t.Fatalf("expected EmptySince to be set")
	}

	m.Join("s2", "", "default")
	if m.IsEmpty() {
		t.Fatalf("expected match to no longer be empty after a rejoin")
	}
}

func TestMatch_PlayerCountAndPhaseSnapshotTrackMutations(t *testing.T) {
	m := NewMatch("m1", "", "arena-1", nil, zerolog.Nop())
	if m.PlayerCount() != 0 {
		t.Fatalf("expected PlayerCount 0 on a fresh match, got %d", m.PlayerCount())
	}
	if m.PhaseSnapshot() != PhaseWaiting {
		t.Fatalf("expected PhaseSnapshot PhaseWaiting on a fresh match")
	}

	m.Join("s1", "", "default")
	m.Join("s2", "", "default")
	if m.PlayerCount() != 2 {
		t.Fatalf("expected PlayerCount 2 after two joins, got %d", m.PlayerCount())
	}

	if err := m.StartGame("s1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.PhaseSnapshot() != PhasePlaying {
		t.Fatalf("expected PhaseSnapshot PhasePlaying after StartGame")
	}

	m.Leave("s1")
	m.Leave("s2")
	if m.PlayerCount() != 0 {
		t.Fatalf("expected PlayerCount 0 after both leave, got %d", m.PlayerCount())
	}
}

func TestMatch_StepRunsPlayingPhaseWithoutPanicking(t *testing.T) {
	m := NewMatch("m1", "", "arena-1", nil, zerolog.Nop())
	m.Join("s1", "red", "default")
	m.Join("s2", "blue", "default")
	m.StartGame("s1")

	now := time.Now()
	for i := 0; i < config.TickRate; i++ {
		m.Step(now.Add(time.Duration(i) * config.TickInterval))
	}

	if m.Corrupt() {
		t.Fatalf("expected match to survive a second of simulated ticks")
	}
	if m.CurrentTick != config.TickRate {
		t.Fatalf("expected CurrentTick = %d after %d steps, got %d", config.TickRate, config.TickRate, m.CurrentTick)
	}
}

func TestMatch_GoalResetsAfterGraceWindow(t *testing.T) {
	m := NewMatch("m1", "", "arena-1", nil, zerolog.Nop())
	m.Join("scorer", "red", "default")
	m.StartGame("scorer")

	// Force the ball into the blue goal mouth, as if it had just been kicked in.
	m.Ball.X = config.GoalLineX + config.BallRadius + 1
	m.Ball.Y = 1
	m.Ball.Z = 0
	m.Ball.syncToWorld(m.World)
	m.Contact.TouchHistory = [2]string{"scorer", ""}

	now := time.Now()
	m.Step(now)
	if m.Goals.RedScore != 1 {
		t.Fatalf("expected a goal awarded on the tick the ball enters the goal, RedScore=%d", m.Goals.RedScore)
	}
	if !m.resetPending {
		t.Fatalf("expected reset-pending to be set after a goal")
	}

	m.Step(now.Add(config.GoalResetGrace + config.TickInterval))
	if m.resetPending {
		t.Fatalf("expected reset-pending cleared once the grace window elapses")
	}
	if m.Ball.X != 0 {
		t.Fatalf("expected ball reset to center X=0, got %v", m.Ball.X)
	}
}

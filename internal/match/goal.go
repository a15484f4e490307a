package match

import (
	"time"

	"github.com/fenixsports/soccer-server/internal/config"
)

// GoalResult describes an awarded goal for broadcast and reset scheduling.
type GoalResult struct {
	ScoringTeam   Team
	ScorerID      string
	AssistID      string
	RedScore      int
	BlueScore     int
}

// GoalAdjudicator enforces the cooldown and awards goals, attributing
// scorer/assist from the touch history. Cooldown is timestamp-based so it
// survives scheduler hiccups or late ticks (§5 cancellation rules).
type GoalAdjudicator struct {
	lastGoalTime time.Time
	RedScore     int
	BlueScore    int
}

// NewGoalAdjudicator constructs an adjudicator with no prior goal.
func NewGoalAdjudicator() *GoalAdjudicator { return &GoalAdjudicator{} }

// Check evaluates the goal condition against the current ball pose and
// awards a goal if the cooldown has elapsed. Returns (result, true) on a
// score.
func (ga *GoalAdjudicator) Check(ball *Ball, players map[string]*Player, touchHistory [2]string, now time.Time) (GoalResult, bool) {
	if !ga.lastGoalTime.IsZero() && now.Sub(ga.lastGoalTime) < config.GoalCooldown {
		return GoalResult{}, false
	}

	scoredPositive := ball.X > config.GoalLineX+config.BallRadius
	scoredNegative := ball.X < -(config.GoalLineX + config.BallRadius)
	if !scoredPositive && !scoredNegative {
		return GoalResult{}, false
	}
	if ball.Z >= config.GoalHalfWidth || ball.Z <= -config.GoalHalfWidth {
		return GoalResult{}, false
	}
	if ball.Y >= config.GoalHeight {
		return GoalResult{}, false
	}

	ga.lastGoalTime = now

	scoringTeam := TeamBlue
	if scoredPositive {
		scoringTeam = TeamRed
	}

	if scoringTeam == TeamRed {
		ga.RedScore++
	} else {
		ga.BlueScore++
	}

	scorerID := touchHistory[0]
	assistID := ""
	if scorer, ok := players[scorerID]; ok {
		scorer.Stats.Goals++
		if assist, ok := players[touchHistory[1]]; ok && assist.SessionID != scorerID && assist.Team == scorer.Team {
			assist.Stats.Assists++
			assistID = assist.SessionID
		}
	}

	return GoalResult{
		ScoringTeam: scoringTeam,
		ScorerID:    scorerID,
		AssistID:    assistID,
		RedScore:    ga.RedScore,
		BlueScore:   ga.BlueScore,
	}, true
}

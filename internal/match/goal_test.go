package match

import (
	"testing"
	"time"

	"github.com/fenixsports/soccer-server/internal/config"
)

func TestGoalAdjudicator_AwardsGoalAndAttributesScorerAndAssist(t *testing.T) {
	ga := NewGoalAdjudicator()
	ball := NewBall()
	ball.X = config.GoalLineX + config.BallRadius + 1
	ball.Y = 1
	ball.Z = 0

	scorer := NewPlayer("scorer", TeamRed, "default")
	assist := NewPlayer("assist", TeamRed, "default")
	players := map[string]*Player{"scorer": scorer, "assist": assist}
	touchHistory := [2]string{"scorer", "assist"}

	result, scored := ga.Check(ball, players, touchHistory, time.Now())
	if !scored {
		t.Fatalf("expected a goal to be awarded")
	}
	if result.ScoringTeam != TeamRed {
		t.Fatalf("expected TeamRed to score when ball crosses the positive goal line, got %v", result.ScoringTeam)
	}
	if result.ScorerID != "scorer" || result.AssistID != "assist" {
		t.Fatalf("expected scorer/assist attribution from touch history, got scorer=%s assist=%s", result.ScorerID, result.AssistID)
	}
	if scorer.Stats.Goals != 1 {
		t.Fatalf("expected scorer goal counter incremented")
	}
	if assist.Stats.Assists != 1 {
		t.Fatalf("expected assist counter incremented")
	}
	if ga.RedScore != 1 {
		t.Fatalf("expected RedScore = 1, got %d", ga.RedScore)
	}
}

func TestGoalAdjudicator_NoAssistWhenSoleToucher(t *testing.T) {
	ga := NewGoalAdjudicator()
	ball := NewBall()
	ball.X = config.GoalLineX + config.BallRadius + 1
	ball.Y = 1

	scorer := NewPlayer("scorer", TeamRed, "default")
	players := map[string]*Player{"scorer": scorer}
	touchHistory := [2]string{"scorer", ""}

	result, scored := ga.Check(ball, players, touchHistory, time.Now())
	if !scored {
		t.Fatalf("expected goal")
	}
	if result.AssistID != "" {
		t.Fatalf("expected no assist when there's no second toucher, got %q", result.AssistID)
	}
}

func TestGoalAdjudicator_CooldownBlocksRepeatGoals(t *testing.T) {
	ga := NewGoalAdjudicator()
	ball := NewBall()
	ball.X = config.GoalLineX + config.BallRadius + 1
	ball.Y = 1

	now := time.Now()
	players := map[string]*Player{}
	_, scored := ga.Check(ball, players, [2]string{}, now)
	if !scored {
		t.Fatalf("expected first goal to score")
	}

	_, scored = ga.Check(ball, players, [2]string{}, now.Add(time.Second))
	if scored {
		t.Fatalf("expected cooldown to block a second goal within GoalCooldown")
	}

	_, scored = ga.Check(ball, players, [2]string{}, now.Add(config.GoalCooldown+time.Millisecond))
	if !scored {
		t.Fatalf("expected a goal to be awardable again once the cooldown elapses")
	}
}

func TestGoalAdjudicator_NoGoalOutsideGoalMouth(t *testing.T) {
	ga := NewGoalAdjudicator()
	ball := NewBall()
	ball.X = config.GoalLineX + config.BallRadius + 1
	ball.Y = 1
	ball.Z = config.GoalHalfWidth + 1 // past the posts, not a valid goal

	_, scored := ga.Check(ball, map[string]*Player{}, [2]string{}, time.Now())
	if scored {
		t.Fatalf("expected no goal when the ball crosses the line outside goal width")
	}
}

package progress

const (
	XPPerCorrectAnswer = 20
	XPPerComboStep     = 5
)

// Result is the reward summary of a finished quiz.
type Result struct {
	Correct    int
	Answered   int
	MaxCombo   int
	BaseXP     int
	ComboBonus int
	XPAwarded  int
}

// Scorer tracks a quiz while it is played. The zero value is ready to use.
type Scorer struct {
	correct  int
	answered int
	combo    int
	maxCombo int
}

// Record registers one answer and returns the running combo after it.
func (s *Scorer) Record(correct bool) int {
	s.answered++
	if !correct {
		s.combo = 0
		return 0
	}
	s.correct++
	s.combo++
	if s.combo > s.maxCombo {
		s.maxCombo = s.combo
	}
	return s.combo
}

func (s *Scorer) Combo() int    { return s.combo }
func (s *Scorer) MaxCombo() int { return s.maxCombo }
func (s *Scorer) Correct() int  { return s.correct }
func (s *Scorer) Answered() int { return s.answered }

// Result computes the reward for the answers recorded so far.
func (s *Scorer) Result() Result {
	base := XPPerCorrectAnswer * s.correct
	bonus := XPPerComboStep * s.maxCombo
	return Result{
		Correct:    s.correct,
		Answered:   s.answered,
		MaxCombo:   s.maxCombo,
		BaseXP:     base,
		ComboBonus: bonus,
		XPAwarded:  base + bonus,
	}
}

// Score evaluates a complete sequence of outcomes.
func Score(outcomes []bool) Result {
	var s Scorer
	for _, o := range outcomes {
		s.Record(o)
	}
	return s.Result()
}

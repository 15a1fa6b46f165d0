package navigation

import (
	"testing"

	"github.com/dmitrijs2005/lexiconquest/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(t *testing.T, v models.View) *Navigator {
	t.Helper()
	n := New()
	require.NoError(t, n.Reset(v))
	return n
}

func TestNavigator_ValidTransitions(t *testing.T) {
	tests := []struct {
		from models.View
		ev   Event
		want models.View
	}{
		{models.ViewLogin, Event{Kind: LoginSucceeded, Target: models.ViewOnboarding}, models.ViewOnboarding},
		{models.ViewLogin, Event{Kind: LoginSucceeded, Target: models.ViewDashboard}, models.ViewDashboard},
		{models.ViewOnboarding, Event{Kind: GradeSelected}, models.ViewDashboard},
		{models.ViewDashboard, Event{Kind: Open, Target: models.ViewLearn}, models.ViewLearn},
		{models.ViewDashboard, Event{Kind: Open, Target: models.ViewQuiz}, models.ViewQuiz},
		{models.ViewDashboard, Event{Kind: Open, Target: models.ViewHistory}, models.ViewHistory},
		{models.ViewDashboard, Event{Kind: Open, Target: models.ViewSettings}, models.ViewSettings},
		{models.ViewLearn, Event{Kind: LearningCompleted}, models.ViewDashboard},
		{models.ViewLearn, Event{Kind: Exit}, models.ViewDashboard},
		{models.ViewQuiz, Event{Kind: QuizCompleted}, models.ViewDashboard},
		{models.ViewQuiz, Event{Kind: Exit}, models.ViewDashboard},
		{models.ViewHistory, Event{Kind: Back}, models.ViewDashboard},
		{models.ViewSettings, Event{Kind: Back}, models.ViewDashboard},
		{models.ViewSettings, Event{Kind: Exit}, models.ViewDashboard},
	}
	for _, tt := range tests {
		t.Run(string(tt.from)+"/"+tt.ev.String(), func(t *testing.T) {
			n := at(t, tt.from)
			got, err := n.Fire(tt.ev)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.want, n.View())
		})
	}
}

func TestNavigator_LogoutFromEveryAuthenticatedView(t *testing.T) {
	for _, v := range []models.View{
		models.ViewOnboarding, models.ViewDashboard, models.ViewLearn,
		models.ViewQuiz, models.ViewHistory, models.ViewSettings,
	} {
		n := at(t, v)
		got, err := n.Fire(Event{Kind: Logout})
		require.NoError(t, err, v)
		assert.Equal(t, models.ViewLogin, got)
	}
}

func TestNavigator_InvalidTransitionsLeaveState(t *testing.T) {
	tests := []struct {
		from models.View
		ev   Event
	}{
		{models.ViewLogin, Event{Kind: Logout}},
		{models.ViewLogin, Event{Kind: LoginSucceeded, Target: models.ViewLearn}},
		{models.ViewLogin, Event{Kind: Open, Target: models.ViewDashboard}},
		{models.ViewOnboarding, Event{Kind: Open, Target: models.ViewLearn}},
		{models.ViewOnboarding, Event{Kind: Exit}},
		{models.ViewDashboard, Event{Kind: GradeSelected}},
		{models.ViewDashboard, Event{Kind: Open, Target: models.ViewLogin}},
		{models.ViewDashboard, Event{Kind: Open, Target: models.ViewOnboarding}},
		{models.ViewLearn, Event{Kind: QuizCompleted}},
		{models.ViewLearn, Event{Kind: Open, Target: models.ViewQuiz}},
		{models.ViewQuiz, Event{Kind: LearningCompleted}},
		{models.ViewHistory, Event{Kind: Open, Target: models.ViewQuiz}},
		{models.ViewSettings, Event{Kind: GradeSelected}},
	}
	for _, tt := range tests {
		t.Run(string(tt.from)+"/"+tt.ev.String(), func(t *testing.T) {
			n := at(t, tt.from)
			epoch := n.Epoch()

			got, err := n.Fire(tt.ev)
			require.ErrorIs(t, err, ErrInvalidTransition)
			assert.Equal(t, tt.from, got)
			assert.Equal(t, tt.from, n.View())
			assert.Equal(t, epoch, n.Epoch())
		})
	}
}

func TestNavigator_NextDoesNotMove(t *testing.T) {
	n := at(t, models.ViewDashboard)
	epoch := n.Epoch()

	next, err := n.Next(Event{Kind: Open, Target: models.ViewQuiz})
	require.NoError(t, err)
	assert.Equal(t, models.ViewQuiz, next)
	assert.Equal(t, models.ViewDashboard, n.View())
	assert.Equal(t, epoch, n.Epoch())
}

func TestNavigator_EpochAdvancesOnEveryTransition(t *testing.T) {
	n := New()
	assert.Equal(t, models.ViewLogin, n.View())
	assert.Zero(t, n.Epoch())

	require.NoError(t, n.Reset(models.ViewDashboard))
	e1 := n.Epoch()
	_, err := n.Fire(Event{Kind: Open, Target: models.ViewLearn})
	require.NoError(t, err)
	_, err = n.Fire(Event{Kind: Exit})
	require.NoError(t, err)

	assert.Equal(t, models.ViewDashboard, n.View())
	assert.Equal(t, e1+2, n.Epoch())
}

func TestNavigator_ResetRejectsUnknownView(t *testing.T) {
	n := New()
	require.ErrorIs(t, n.Reset(models.View("NOWHERE")), ErrInvalidTransition)
	assert.Equal(t, models.ViewLogin, n.View())
}

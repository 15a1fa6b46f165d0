package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupForGrade(t *testing.T) {
	tests := []struct {
		grade int
		want  GradeGroup
	}{
		{1, GradePrimary}, {5, GradePrimary},
		{6, GradeMiddle}, {9, GradeMiddle},
		{10, GradeSenior}, {12, GradeSenior},
	}
	for _, tt := range tests {
		got, err := GroupForGrade(tt.grade)
		require.NoError(t, err, "grade %d", tt.grade)
		assert.Equal(t, tt.want, got, "grade %d", tt.grade)
	}
}

func TestGroupForGrade_UndefinedOutsideRange(t *testing.T) {
	for _, g := range []int{0, -1, 13} {
		_, err := GroupForGrade(g)
		require.ErrorIs(t, err, ErrGradeUnset, "grade %d", g)
	}
}

func TestNewProfile_Defaults(t *testing.T) {
	p := NewProfile("Ada")
	assert.Equal(t, "Ada", p.Name)
	assert.Equal(t, 0, p.Grade)
	assert.Equal(t, 1, p.Streak)
	assert.Equal(t, CurrentSchemaVersion, p.SchemaVersion)
	assert.NotNil(t, p.MasteredWordsList)
	assert.NotNil(t, p.Badges)
	assert.True(t, p.NeedsOnboarding())

	assert.Equal(t, DefaultName, DefaultProfile().Name)
	assert.Equal(t, DefaultName, NewProfile("").Name)
}

func TestProfile_CloneDoesNotAlias(t *testing.T) {
	p := NewProfile("Ada")
	p.MasteredWordsList = append(p.MasteredWordsList, Word{Word: "brisk", Synonyms: []string{"quick"}})
	p.Badges = append(p.Badges, "first")

	c := p.Clone()
	c.MasteredWordsList[0].Synonyms[0] = "slow"
	c.MasteredWordsList[0].Word = "calm"
	c.Badges[0] = "changed"

	assert.Equal(t, "brisk", p.MasteredWordsList[0].Word)
	assert.Equal(t, "quick", p.MasteredWordsList[0].Synonyms[0])
	assert.Equal(t, "first", p.Badges[0])
}

func TestProfile_HistoryNewestFirstWithFilter(t *testing.T) {
	p := NewProfile("Ada")
	p.MasteredWordsList = []Word{
		{Word: "Arid", Meaning: "very dry"},
		{Word: "brisk", Meaning: "quick and energetic"},
		{Word: "candid", Meaning: "truthful"},
	}

	all := p.History("")
	require.Len(t, all, 3)
	assert.Equal(t, "candid", all[0].Word)
	assert.Equal(t, "Arid", all[2].Word)

	got := p.History("ARI")
	require.Len(t, got, 1)
	assert.Equal(t, "Arid", got[0].Word)

	got = p.History("quick")
	require.Len(t, got, 1)
	assert.Equal(t, "brisk", got[0].Word)

	assert.True(t, p.HasMastered("brisk"))
	assert.False(t, p.HasMastered("Brisk"))
}

func TestQuizQuestion_Answers(t *testing.T) {
	q := QuizQuestion{Options: []string{"a", "b"}, CorrectAnswer: "b"}
	assert.True(t, q.IsCorrect("b"))
	assert.False(t, q.IsCorrect("a"))
	assert.True(t, q.HasAnswerOption())

	q.CorrectAnswer = "c"
	assert.False(t, q.HasAnswerOption())
}

func TestParseView(t *testing.T) {
	v, err := ParseView(" dashboard ")
	require.NoError(t, err)
	assert.Equal(t, ViewDashboard, v)
	assert.True(t, v.Authenticated())
	assert.False(t, ViewLogin.Authenticated())

	_, err = ParseView("lobby")
	require.Error(t, err)
}

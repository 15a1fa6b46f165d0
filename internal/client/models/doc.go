// Package models defines the value types shared by the LexiconQuest client:
// the logged-in Identity, the persisted Profile, generated Word and
// QuizQuestion records, the navigation View and the derived GradeGroup.
package models

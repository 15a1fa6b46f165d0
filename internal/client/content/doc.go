// Package content provides generated learning material: word sets, quizzes
// and the word of the day.
//
// Generators never return errors. A failed or rejected request yields an
// empty result; the failure is logged by the generator itself.
package content

package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/lexiconquest/internal/client/models"
)

// renderFront prints the word side of a flashcard.
func renderFront(w io.Writer, word models.Word, pos, total, width int) {
	fmt.Fprintln(w, rule(width))
	fmt.Fprintf(w, " Word %d of %d\n\n", pos, total)
	fmt.Fprintf(w, "   %s\n", strings.ToUpper(word.Word))
	if word.Pronunciation != "" {
		fmt.Fprintf(w, "   %s\n", word.Pronunciation)
	}
	fmt.Fprintln(w, rule(width))
}

// renderCard prints the full card: meaning, usage and related words.
func renderCard(w io.Writer, word models.Word, width int) {
	fmt.Fprintln(w, rule(width))
	head := word.Word
	if word.PartOfSpeech != "" {
		head += " (" + word.PartOfSpeech + ")"
	}
	if word.Pronunciation != "" {
		head += "  " + word.Pronunciation
	}
	fmt.Fprintln(w, " "+head)
	fmt.Fprintln(w)
	for _, l := range wrap(word.Meaning, width-2) {
		fmt.Fprintln(w, " "+l)
	}
	if word.ExampleSentence != "" {
		fmt.Fprintln(w)
		for _, l := range wrap(`"`+word.ExampleSentence+`"`, width-2) {
			fmt.Fprintln(w, " "+l)
		}
	}
	if len(word.Synonyms) > 0 {
		fmt.Fprintln(w, "\n Synonyms: "+strings.Join(word.Synonyms, ", "))
	}
	if len(word.Antonyms) > 0 {
		fmt.Fprintln(w, " Antonyms: "+strings.Join(word.Antonyms, ", "))
	}
	fmt.Fprintln(w, rule(width))
}

func rule(width int) string {
	return strings.Repeat("-", width)
}

// wrap breaks text into lines no longer than width. Words longer than width
// get a line of their own.
func wrap(text string, width int) []string {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return nil
	}
	var lines []string
	line := fields[0]
	for _, f := range fields[1:] {
		if len(line)+1+len(f) > width {
			lines = append(lines, line)
			line = f
			continue
		}
		line += " " + f
	}
	return append(lines, line)
}

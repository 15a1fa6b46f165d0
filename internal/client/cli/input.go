package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"
)

// Test seams for terminal detection.
var (
	isTerminal  = term.IsTerminal
	getTermSize = term.GetSize
)

const (
	defaultWidth = 64
	maxWidth     = 88
)

// GetSimpleText prints a prompt to w and reads a single line of input from reader.
// The trailing newline is trimmed. If EOF occurs after some input was read,
// the partial line is returned.
//
// Example prompt format:
//
//	Prompt text
//	> _
func GetSimpleText(reader *bufio.Reader, prompt string, w io.Writer) (string, error) {
	if _, err := fmt.Fprint(w, prompt+"\n> "); err != nil {
		return "", err
	}
	return readLine(reader)
}

func readLine(reader *bufio.Reader) (string, error) {
	line, err := reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && len(line) > 0 {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// NoDefault makes GetNumber insist on an explicit answer.
const NoDefault = math.MinInt

// GetNumber asks for an integer in [min, max]. An empty answer selects def
// when def lies in that range and is asked again otherwise. Invalid answers
// are reported and asked again.
func GetNumber(reader *bufio.Reader, prompt string, w io.Writer, min, max, def int) (int, error) {
	hasDef := def >= min && def <= max
	label := fmt.Sprintf("%s [%d-%d]", prompt, min, max)
	if hasDef {
		label = fmt.Sprintf("%s [%d-%d, default %d]", prompt, min, max, def)
	}
	for {
		text, err := GetSimpleText(reader, label, w)
		if err != nil {
			return 0, err
		}
		if text == "" && hasDef {
			return def, nil
		}
		n, err := strconv.Atoi(text)
		if err == nil && n >= min && n <= max {
			return n, nil
		}
		fmt.Fprintf(w, "Please enter a number from %d to %d.\n", min, max)
	}
}

// termWidth returns the width used for word cards.
func termWidth() int {
	fd := int(os.Stdout.Fd())
	if !isTerminal(fd) {
		return defaultWidth
	}
	w, _, err := getTermSize(fd)
	if err != nil || w < 20 {
		return defaultWidth
	}
	if w > maxWidth {
		return maxWidth
	}
	return w
}

package cli

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rdr(s string) *bufio.Reader {
	return bufio.NewReader(strings.NewReader(s))
}

func TestGetSimpleText(t *testing.T) {
	var out bytes.Buffer
	got, err := GetSimpleText(rdr("  hello world \n"), "Name?", &out)
	require.NoError(t, err)
	assert.Equal(t, "hello world", got)
	assert.Equal(t, "Name?\n> ", out.String())
}

func TestGetSimpleTextEOF(t *testing.T) {
	var out bytes.Buffer
	got, err := GetSimpleText(rdr("lastline"), "Name?", &out)
	require.NoError(t, err)
	assert.Equal(t, "lastline", got)

	_, err = GetSimpleText(rdr(""), "Name?", &out)
	require.ErrorIs(t, err, io.EOF)
}

func TestGetNumber(t *testing.T) {
	var out bytes.Buffer

	n, err := GetNumber(rdr("\n"), "How many?", &out, 3, 15, 5)
	require.NoError(t, err)
	assert.Equal(t, 5, n)

	out.Reset()
	n, err = GetNumber(rdr("abc\n20\n12\n"), "How many?", &out, 3, 15, 5)
	require.NoError(t, err)
	assert.Equal(t, 12, n)
	assert.Equal(t, 2, strings.Count(out.String(), "Please enter a number from 3 to 15."))
	assert.Contains(t, out.String(), "How many? [3-15, default 5]")

	_, err = GetNumber(rdr("99\n"), "How many?", &out, 3, 15, 5)
	require.ErrorIs(t, err, io.EOF)
}

func TestGetNumber_NoDefaultNeedsAnswer(t *testing.T) {
	var out bytes.Buffer

	n, err := GetNumber(rdr("\n\n7\n"), "Which grade?", &out, 1, 12, NoDefault)
	require.NoError(t, err)
	assert.Equal(t, 7, n)
	assert.Equal(t, 2, strings.Count(out.String(), "Please enter a number from 1 to 12."))
	assert.Contains(t, out.String(), "Which grade? [1-12]\n")
	assert.NotContains(t, out.String(), "default")

	_, err = GetNumber(rdr("\n"), "Which grade?", &out, 1, 12, NoDefault)
	require.ErrorIs(t, err, io.EOF)
}

func TestTermWidth(t *testing.T) {
	oldIs, oldSize := isTerminal, getTermSize
	t.Cleanup(func() { isTerminal, getTermSize = oldIs, oldSize })

	isTerminal = func(int) bool { return false }
	assert.Equal(t, defaultWidth, termWidth())

	isTerminal = func(int) bool { return true }
	getTermSize = func(int) (int, int, error) { return 40, 20, nil }
	assert.Equal(t, 40, termWidth())

	getTermSize = func(int) (int, int, error) { return 300, 20, nil }
	assert.Equal(t, maxWidth, termWidth())

	getTermSize = func(int) (int, int, error) { return 0, 0, errors.New("boom") }
	assert.Equal(t, defaultWidth, termWidth())
}

func TestWrap(t *testing.T) {
	assert.Nil(t, wrap("   ", 10))
	assert.Equal(t, []string{"a quick", "brown fox"}, wrap("a quick brown fox", 9))
	assert.Equal(t, []string{"extraordinarily", "long"}, wrap("extraordinarily long", 5))
}

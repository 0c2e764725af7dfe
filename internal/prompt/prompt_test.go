package prompt

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntRepromptsUntilValid(t *testing.T) {
	var out bytes.Buffer
	p := New(strings.NewReader("abc\n0\n7 extra words\n"), &out)

	n, err := p.Int("Bet?", func(n int) error {
		if n < 1 {
			return errors.New("your bet is less than the minimum")
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 7, n)

	assert.Equal(t, 3, strings.Count(out.String(), "Bet? "))
	assert.Contains(t, out.String(), "Invalid input.\n")
	assert.Contains(t, out.String(), "Your bet is less than the minimum.\n")
}

func TestEndOfInput(t *testing.T) {
	p := New(strings.NewReader("nope\n"), &bytes.Buffer{})

	_, err := p.Int("How many?", nil)
	assert.ErrorIs(t, err, ErrEndOfInput)
}

func TestFinalLineWithoutNewline(t *testing.T) {
	p := New(strings.NewReader("12"), &bytes.Buffer{})

	n, err := p.Int("How many?", nil)
	require.NoError(t, err)
	assert.Equal(t, 12, n)
}

func TestChoiceIsCaseInsensitive(t *testing.T) {
	var out bytes.Buffer
	p := New(strings.NewReader("fold\nTWIST\n"), &out)

	choice, err := p.Choice("Action?", []string{"split", "stick", "twist"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "twist", choice)
	assert.Contains(t, out.String(), "Invalid input.")
}

func TestChoiceVerifyFailureReprompts(t *testing.T) {
	var out bytes.Buffer
	p := New(strings.NewReader("split\nstick\n"), &out)

	choice, err := p.Choice("Action?", []string{"split", "stick", "twist"}, func(s string) error {
		if s == "split" {
			return errors.New("your cards must match for you to split")
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, "stick", choice)
	assert.Contains(t, out.String(), "Your cards must match for you to split.")
}

func TestLine(t *testing.T) {
	var out bytes.Buffer
	p := New(strings.NewReader("  Ann Smith \n"), &out)

	name, err := p.Line("Name: ")
	require.NoError(t, err)
	assert.Equal(t, "Ann Smith", name)
	assert.Equal(t, "Name: ", out.String())

	_, err = p.Line("Name: ")
	assert.ErrorIs(t, err, ErrEndOfInput)
}

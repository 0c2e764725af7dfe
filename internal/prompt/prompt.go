// Package prompt asks a person for a value on a line-based terminal and keeps
// asking until the answer parses and passes the caller's check.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// ErrEndOfInput is returned once the input stream is closed. Callers treat
// it as the person walking away from the table.
var ErrEndOfInput = errors.New("prompt: end of input")

// ErrInvalidInput is what a parse function returns for an unparseable answer.
var ErrInvalidInput = errors.New("invalid input")

// Prompter reads answers from in and writes questions and complaints to out.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

// New creates a new prompter
func New(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out}
}

// Ask shows message, reads one line and parses it. Parse failures print
// "Invalid input." and verify failures print the verify error; either way
// the question is asked again.
func Ask[T any](p *Prompter, message string, parse func(string) (T, error), verify func(T) error) (T, error) {
	var zero T
	for {
		fmt.Fprintf(p.out, "%s ", message)

		line, err := p.readLine()
		if err != nil {
			return zero, err
		}

		value, err := parse(line)
		if err != nil {
			fmt.Fprintln(p.out, "Invalid input.")
			continue
		}
		if verify != nil {
			if err := verify(value); err != nil {
				fmt.Fprintln(p.out, sentence(err))
				continue
			}
		}
		return value, nil
	}
}

// Int asks for an integer.
func (p *Prompter) Int(message string, verify func(int) error) (int, error) {
	return Ask(p, message, parseInt, verify)
}

// Choice asks for one of choices, matched case-insensitively, and returns
// the choice as spelled in choices.
func (p *Prompter) Choice(message string, choices []string, verify func(string) error) (string, error) {
	parse := func(s string) (string, error) {
		word := firstWord(s)
		for _, c := range choices {
			if strings.EqualFold(c, word) {
				return c, nil
			}
		}
		return "", ErrInvalidInput
	}
	return Ask(p, message, parse, verify)
}

// Line asks for a whole line of free text, e.g. a player name.
func (p *Prompter) Line(message string) (string, error) {
	fmt.Fprint(p.out, message)
	return p.readLine()
}

func (p *Prompter) readLine() (string, error) {
	line, err := p.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimSpace(line), nil
		}
		if errors.Is(err, io.EOF) {
			return "", ErrEndOfInput
		}
		return "", fmt.Errorf("reading input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

func parseInt(s string) (int, error) {
	n, err := strconv.Atoi(firstWord(s))
	if err != nil {
		return 0, ErrInvalidInput
	}
	return n, nil
}

// firstWord mimics reading a single token: anything after the first
// whitespace on the line is ignored.
func firstWord(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

func sentence(err error) string {
	msg := err.Error()
	r, size := utf8.DecodeRuneInString(msg)
	msg = string(unicode.ToUpper(r)) + msg[size:]
	if !strings.HasSuffix(msg, ".") {
		msg += "."
	}
	return msg
}

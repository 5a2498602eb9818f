package console

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/iho/onlinebank/internal/domain"
)

const (
	msgNoBlank        = "Please supply the requested value."
	msgNoInt          = "Please supply a whole number."
	msgIntOutOfBounds = "Please supply a whole number between %d and %d"
	msgEOF            = "Attempt to read past end of input."
)

// UI reads validated values from an input stream and writes prompts and
// messages to an output stream. Every Read method re-prompts until it gets
// an acceptable value and reports false only when input is exhausted.
type UI struct {
	in     *bufio.Scanner
	out    io.Writer
	errOut io.Writer
}

// NewUI creates a UI over the given streams.
func NewUI(in io.Reader, out, errOut io.Writer) *UI {
	return &UI{
		in:     bufio.NewScanner(in),
		out:    out,
		errOut: errOut,
	}
}

// ReadLine prompts for a line. Blank lines are rejected with errMsg unless
// allowBlank is set.
func (u *UI) ReadLine(prompt, errMsg string, allowBlank bool) (string, bool) {
	for {
		u.Printf("%s", prompt)
		if !u.in.Scan() {
			return "", false
		}
		line := strings.TrimSuffix(u.in.Text(), "\r")

		if allowBlank || strings.TrimSpace(line) != "" {
			return line, true
		}
		u.Println(errMsg)
	}
}

// ReadInt prompts until the user enters a whole number.
func (u *UI) ReadInt(prompt, errMsg string) (int64, bool) {
	for {
		line, ok := u.ReadLine(prompt, errMsg, false)
		if !ok {
			return 0, false
		}

		if v, err := strconv.ParseInt(strings.TrimSpace(line), 10, 64); err == nil {
			return v, true
		}
		u.Println(errMsg)
	}
}

// ReadIntInRange prompts until the user enters a whole number in [lo, hi].
func (u *UI) ReadIntInRange(prompt string, lo, hi int64) (int64, bool) {
	errMsg := fmt.Sprintf(msgIntOutOfBounds, lo, hi)
	for {
		v, ok := u.ReadInt(prompt, errMsg)
		if !ok {
			return 0, false
		}
		if v >= lo && v <= hi {
			return v, true
		}
		u.Println(errMsg)
	}
}

// ReadAccountNumber prompts until the user enters a well-formed card number.
func (u *UI) ReadAccountNumber(prompt string) (domain.AccountNumber, bool) {
	for {
		line, ok := u.ReadLine(prompt, msgNoBlank, false)
		if !ok {
			return domain.AccountNumber{}, false
		}

		if n, ok := domain.ParseAccountNumber(line); ok {
			return n, true
		}
		u.Println(fmt.Sprintf("%s is not a valid card number.", line))
	}
}

// Println writes a line of text. With no arguments it writes a blank line.
func (u *UI) Println(a ...any) {
	fmt.Fprintln(u.out, a...)
}

// Printf writes formatted text without a trailing newline.
func (u *UI) Printf(format string, a ...any) {
	fmt.Fprintf(u.out, format, a...)
}

// Errorln writes a line to the error stream.
func (u *UI) Errorln(a ...any) {
	fmt.Fprintln(u.errOut, a...)
}

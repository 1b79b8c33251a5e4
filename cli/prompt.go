package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ErrInputClosed is returned when the input ends before a question is answered.
var ErrInputClosed = errors.New("input closed")

// Prompter asks questions on out and reads one line answers from in.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out}
}

func (p *Prompter) Text(question string) (string, error) {
	fmt.Fprintf(p.out, "? %s ", question)
	line, err := p.in.ReadString('\n')
	if err != nil && (!errors.Is(err, io.EOF) || line == "") {
		if errors.Is(err, io.EOF) {
			return "", ErrInputClosed
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// Int asks until the answer parses as an integer.
func (p *Prompter) Int(question string) (int, error) {
	for {
		answer, err := p.Text(question)
		if err != nil {
			return 0, err
		}
		v, err := strconv.Atoi(answer)
		if err == nil {
			return v, nil
		}
		fmt.Fprintf(p.out, "%q is not a whole number, try again.\n", answer)
	}
}

// Float asks until the answer parses as a number. A leading $ and
// thousands separators are accepted.
func (p *Prompter) Float(question string) (float64, error) {
	for {
		answer, err := p.Text(question)
		if err != nil {
			return 0, err
		}
		cleaned := strings.ReplaceAll(strings.TrimPrefix(answer, "$"), ",", "")
		v, err := strconv.ParseFloat(cleaned, 64)
		if err == nil {
			return v, nil
		}
		fmt.Fprintf(p.out, "%q is not a number, try again.\n", answer)
	}
}

// Confirm asks a yes/no question; an empty answer counts as yes.
func (p *Prompter) Confirm(question string) (bool, error) {
	for {
		answer, err := p.Text(question + " (Y/n)")
		if err != nil {
			return false, err
		}
		switch strings.ToLower(answer) {
		case "", "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
		fmt.Fprintln(p.out, "Please answer y or n.")
	}
}

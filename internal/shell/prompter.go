package shell

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"bookadmin/internal/store"
)

// Prompter collects validated typed input from the operator. Every Ask
// method loops until the input is valid; optional variants accept empty
// input as "no value". Validation never touches the store.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out}
}

// line reads one trimmed line. ok is false once input is exhausted, which
// callers treat as a cancel.
func (p *Prompter) line(prompt string) (string, bool) {
	fmt.Fprint(p.out, prompt)
	s, err := p.in.ReadString('\n')
	if err != nil && s == "" {
		return "", false
	}
	return strings.TrimSpace(s), true
}

func (p *Prompter) AskString(prompt string, allowEmpty bool) string {
	for {
		s, ok := p.line(prompt)
		if !ok {
			return ""
		}
		if s != "" || allowEmpty {
			return s
		}
		fmt.Fprintln(p.out, "value cannot be empty")
	}
}

// AskPattern reads a case-insensitive match pattern. Empty input means "no
// filter". Input without explicit wildcards is wrapped as a substring match.
func (p *Prompter) AskPattern(prompt string) *string {
	s, _ := p.line(prompt)
	if s == "" {
		return nil
	}
	if !strings.ContainsAny(s, "%_") {
		s = "%" + s + "%"
	}
	return &s
}

func (p *Prompter) AskInt(prompt string, min int) int {
	for {
		s, ok := p.line(prompt)
		if !ok {
			return min
		}
		v, err := strconv.Atoi(s)
		if err == nil && v >= min {
			return v
		}
		fmt.Fprintf(p.out, "enter an integer >= %d\n", min)
	}
}

// AskIntRange reads an integer in [min, max]. Out-of-range values are
// re-prompted. Exhausted input yields min.
func (p *Prompter) AskIntRange(prompt string, min, max int) int {
	for {
		s, ok := p.line(prompt)
		if !ok {
			return min
		}
		v, err := strconv.Atoi(s)
		if err == nil && v >= min && v <= max {
			return v
		}
		fmt.Fprintf(p.out, "enter an integer between %d and %d\n", min, max)
	}
}

// AskDecimal reads a fixed-point decimal in [min, max], quantized to one
// fractional digit before the bounds check, so 4.36 becomes 4.4 and 5.04
// becomes 5.0 while 5.1 is rejected outright.
func (p *Prompter) AskDecimal(prompt string, min, max float64) float64 {
	for {
		s, ok := p.line(prompt)
		if !ok {
			return min
		}
		s = strings.ReplaceAll(s, ",", ".")
		v, err := strconv.ParseFloat(s, 64)
		if err == nil {
			v = store.Round1(v)
			if v >= min && v <= max {
				return v
			}
		}
		fmt.Fprintf(p.out, "enter a decimal in [%.1f; %.1f] with one fractional digit\n", min, max)
	}
}

// AskDecimalOptional reads a quantized decimal or nil. Invalid input skips
// the filter rather than re-prompting, matching the search workflows where
// every filter is optional.
func (p *Prompter) AskDecimalOptional(prompt string) *float64 {
	s, _ := p.line(prompt + " (Enter to skip): ")
	if s == "" {
		return nil
	}
	s = strings.ReplaceAll(s, ",", ".")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		fmt.Fprintln(p.out, "invalid decimal, filter skipped")
		return nil
	}
	v = store.Round1(v)
	return &v
}

// AskDateOptional reads an ISO calendar date or nil.
func (p *Prompter) AskDateOptional(prompt string) *time.Time {
	s, _ := p.line(prompt + " (Enter to skip): ")
	if s == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		fmt.Fprintln(p.out, "invalid date, filter skipped (want YYYY-MM-DD)")
		return nil
	}
	return &t
}

// AskHandleFilter reads the tri-state messaging-handle presence choice.
func (p *Prompter) AskHandleFilter() store.HandleFilter {
	s, _ := p.line("filter by tg handle? [y=with handle / n=without / Enter=any]: ")
	switch strings.ToLower(s) {
	case "y":
		return store.HandleRequired
	case "n":
		return store.HandleMissing
	default:
		return store.HandleAny
	}
}

func (p *Prompter) Confirm(prompt string) bool {
	s, _ := p.line(prompt + " [y/N]: ")
	switch strings.ToLower(s) {
	case "y", "yes":
		return true
	default:
		return false
	}
}

package shell

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"
)

// Printer renders everything the operator sees: prefixed status lines,
// menus and tabular results. Timestamps are converted to the display time
// zone here and only here; stored values stay canonical.
type Printer struct {
	out   io.Writer
	loc   *time.Location
	infoC *color.Color
	warnC *color.Color
	errC  *color.Color
	headC *color.Color
}

func NewPrinter(out io.Writer, loc *time.Location) *Printer {
	return &Printer{
		out:   out,
		loc:   loc,
		infoC: color.New(color.FgCyan),
		warnC: color.New(color.FgYellow),
		errC:  color.New(color.FgRed),
		headC: color.New(color.FgGreen, color.Bold),
	}
}

func (p *Printer) Info(format string, args ...interface{}) {
	p.infoC.Fprintf(p.out, "[INFO] "+format+"\n", args...)
}

func (p *Printer) Warn(format string, args ...interface{}) {
	p.warnC.Fprintf(p.out, "[WARN] "+format+"\n", args...)
}

func (p *Printer) Error(format string, args ...interface{}) {
	p.errC.Fprintf(p.out, "[ERROR] "+format+"\n", args...)
}

func (p *Printer) Menu(title string, items ...string) {
	fmt.Fprintln(p.out)
	p.headC.Fprintln(p.out, title)
	for _, item := range items {
		fmt.Fprintln(p.out, item)
	}
}

// Table renders rows as aligned columns, or "(empty)" when there are none.
func (p *Printer) Table(headers []string, rows [][]string) {
	if len(rows) == 0 {
		fmt.Fprintln(p.out, "(empty)")
		return
	}

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	var b strings.Builder
	for i, h := range headers {
		fmt.Fprintf(&b, "%-*s  ", widths[i], h)
	}
	p.headC.Fprintln(p.out, strings.TrimRight(b.String(), " "))

	for _, row := range rows {
		b.Reset()
		for i, cell := range row {
			fmt.Fprintf(&b, "%-*s  ", widths[i], cell)
		}
		fmt.Fprintln(p.out, strings.TrimRight(b.String(), " "))
	}
	fmt.Fprintf(p.out, "(%d rows)\n", len(rows))
}

// Timestamp formats a stored instant in the configured display zone.
func (p *Printer) Timestamp(t time.Time) string {
	return t.In(p.loc).Format("2006-01-02 15:04:05")
}

// Elapsed reports a query's wall-clock duration in milliseconds.
func (p *Printer) Elapsed(d time.Duration) {
	p.Info("time: %.1f ms", float64(d.Microseconds())/1000.0)
}

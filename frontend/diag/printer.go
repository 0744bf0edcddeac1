package diag

import (
	"fmt"
	"go/token"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/mattn/go-isatty"
)

// extraLines is how many lines around a span are printed for context
const extraLines = 1

const (
	ansiReset    = "\x1b[0m"
	ansiBold     = "\x1b[1m"
	ansiRed      = "\x1b[31m"
	ansiYellow   = "\x1b[33m"
	ansiBlackOnW = "\x1b[30;47m"
)

// Printer is a Sink which writes diagnostics as they arrive, with an
// excerpt of the source underlining the node they are about
type Printer struct {
	out       io.Writer
	files     *token.FileSet
	sources   map[string]string
	color     bool
	hasErrors bool
}

// NewPrinter writes to out. files resolves node positions, and may be nil
// if diagnostics should be printed without locations.
// Colors are enabled when out is a terminal and NO_COLOR is not set.
func NewPrinter(out io.Writer, files *token.FileSet) *Printer {
	return &Printer{
		out:     out,
		files:   files,
		sources: make(map[string]string),
		color:   isTerminal(out),
	}
}

func isTerminal(w io.Writer) bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// AddSource registers the content of filename so that excerpts of it can be shown
func (p *Printer) AddSource(filename string, content []byte) {
	p.sources[filename] = string(content)
}

func (p *Printer) SetColor(enabled bool) {
	p.color = enabled
}

func (p *Printer) HasErrors() bool {
	return p.hasErrors
}

func (p *Printer) paint(style, s string) string {
	if !p.color {
		return s
	}
	return style + s + ansiReset
}

func (p *Printer) Add(d Diagnostic) {
	sb := &strings.Builder{}
	if d.Node != nil && d.Node.Pos().IsValid() && p.files != nil {
		start := p.files.Position(d.Node.Pos())
		end := start
		if d.Node.End().IsValid() {
			end = p.files.Position(d.Node.End())
		}
		if content, ok := p.sources[start.Filename]; ok {
			p.excerpt(sb, content, start, end)
			sb.WriteString("\n")
		}
		sb.WriteString(p.paint(ansiBold+ansiYellow, fmt.Sprintf("%s:%d:%d: ", start.Filename, start.Line, start.Column)))
	}
	if d.Severity == SeverityError {
		p.hasErrors = true
	}
	sb.WriteString(p.paint(ansiBold+severityColor(d.Severity), d.Severity.String()+": "))
	sb.WriteString(d.Text())
	sb.WriteString("\n\n")
	_, _ = io.WriteString(p.out, sb.String())
}

func severityColor(s Severity) string {
	if s == SeverityError {
		return ansiRed
	}
	return ansiYellow
}

func countDigits(n int) int {
	return len(strconv.Itoa(n))
}

func firstNonBlank(line string) int {
	return len(line) - len(strings.TrimLeft(line, " \t"))
}

// excerpt writes the lines spanned by start and end, with the span underlined
func (p *Printer) excerpt(sb *strings.Builder, content string, start, end token.Position) {
	lines := strings.Split(content, "\n")
	startLine := max(0, start.Line-1-extraLines)
	endLine := min(len(lines), end.Line+extraLines)
	gutterWidth := max(2, countDigits(endLine))
	emptyGutter := "  " + p.paint(ansiBlackOnW, strings.Repeat(" ", gutterWidth)) + " "

	for i := startLine; i < endLine; i++ {
		line := lines[i]
		number := strconv.Itoa(i + 1)
		sb.WriteString("  " + p.paint(ansiBlackOnW, strings.Repeat(" ", gutterWidth-len(number))+number) + " " + line + "\n")

		var skip, mark int
		switch {
		case i == start.Line-1 && i == end.Line-1:
			skip, mark = start.Column-1, end.Column-start.Column
		case i == start.Line-1:
			skip, mark = start.Column-1, len(line)-start.Column+1
		case i == end.Line-1:
			skip, mark = 0, end.Column-1
		case i > start.Line-1 && i < end.Line-1:
			skip, mark = 0, len(line)
		default:
			continue
		}
		if skip == 0 {
			// do not underline indentation
			indent := firstNonBlank(line)
			skip, mark = indent, mark-indent
		}
		if mark <= 0 {
			mark = 1
		}
		sb.WriteString(emptyGutter + strings.Repeat(" ", skip) + p.paint(ansiRed, strings.Repeat("~", mark)) + "\n")
	}
}

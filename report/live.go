package report

import (
	"bytes"
	"fmt"
	"io"
	"time"

	"github.com/antoonpurnal/clangover/attack"
	"github.com/antoonpurnal/clangover/ring"
)

// Live is an attack.Observer that redraws the guess vector against the ground
// truth on the epochs flagged by the print mask.
type Live struct {
	w       io.Writer
	params  attack.Parameters
	decoder *attack.Decoder
	truth   []int16
	guesses []attack.Guess
	current int
	start   time.Time

	// Color enables ANSI colors.
	Color bool
	// Clear clears the screen before each frame.
	Clear bool
	// Verbose adds the per-class panel of the coefficient under attack.
	Verbose bool

	buf bytes.Buffer
}

// NewLive creates a Live renderer writing on w. truth may be nil, in which case
// every guess is shown uncolored.
func NewLive(w io.Writer, params attack.Parameters, truth []int16) *Live {
	return &Live{
		w:       w,
		params:  params,
		decoder: attack.DefaultDecoder,
		truth:   truth,
		guesses: make([]attack.Guess, params.Total()),
		current: params.Start(),
		start:   time.Now(),
	}
}

// Epoch implements attack.Observer.
func (l *Live) Epoch(s attack.Snapshot) {
	l.current = s.Index
	if s.Print {
		l.render(&s)
	}
}

// Finalized implements attack.Observer.
func (l *Live) Finalized(r attack.Result) {
	l.guesses[r.Index] = r.Guess
	l.current = r.Index + 1
}

// Final draws the last frame, with every finalized guess.
func (l *Live) Final() {
	l.render(nil)
}

func (l *Live) render(s *attack.Snapshot) {

	b := &l.buf
	b.Reset()

	if l.Clear {
		b.WriteString(clearScreen)
	}

	if l.Verbose && s != nil {
		l.panel(b, s)
	}

	fmt.Fprintf(b, "\n\nML-KEM %d secret key [%d coefficients] - %.0f sec\n", l.params.Total(), l.params.Total(), time.Since(l.start).Seconds())
	b.WriteString("\n" + separator)

	if l.truth != nil {
		b.WriteString("Truth: \n")
		for i, t := range l.truth {
			fmt.Fprintf(b, "% 3d ", t)
			if i%NewlineEvery == NewlineEvery-1 {
				b.WriteByte('\n')
			}
			if i%ring.N == ring.N-1 {
				b.WriteByte('\n')
			}
		}
		b.WriteByte('\n')
	}

	b.WriteString("Attack: ")
	end := l.current + 1
	if s == nil {
		end = l.current
	}
	if end > l.params.Total() {
		end = l.params.Total()
	}
	for i := 0; i < end; i++ {
		if i%NewlineEvery == 0 {
			b.WriteByte('\n')
		}
		g := l.guesses[i]
		switch {
		case !g.Known || (s != nil && i == l.current):
			l.cell(b, colorGrey, " ?? ")
		case l.truth == nil:
			fmt.Fprintf(b, "% 3d ", g.Value)
		case g.Value == l.truth[i]:
			l.cell(b, colorGreen, fmt.Sprintf("% 3d ", g.Value))
		default:
			l.cell(b, colorRed, fmt.Sprintf("% 3d ", g.Value))
		}
		if i%ring.N == ring.N-1 {
			b.WriteByte('\n')
		}
	}
	b.WriteString("\n" + separator)

	// the frame is observational, write errors are ignored
	_, _ = l.w.Write(b.Bytes())
}

func (l *Live) cell(b *bytes.Buffer, color, text string) {
	if l.Color {
		b.WriteString(color)
		b.WriteString(text)
		b.WriteString(colorReset)
		return
	}
	b.WriteString(text)
}

func (l *Live) panel(b *bytes.Buffer, s *attack.Snapshot) {

	fmt.Fprintf(b, "Result after %d measurements [%d discarded / conf. %d]\n\n", s.Iteration, s.Discarded, s.Confidence)
	fmt.Fprintf(b, "  %s: %5.0f\n", attack.ClassName(attack.KnownZero), s.Means[attack.KnownZero])
	fmt.Fprintf(b, "  %s: %5.0f\n\n", attack.ClassName(attack.KnownOne), s.Means[attack.KnownOne])

	for class := 0; class < attack.NbAttackClasses; class++ {
		bit := 0
		if s.Pattern[class] {
			bit = 1
		}
		fmt.Fprintf(b, "  means[%d]: % 5.0f -> %d\n", class, s.Means[class], bit)
	}

	block, pos := attack.Block(s.Index), s.Index%ring.N

	if l.truth != nil {
		t := l.truth[s.Index]
		fmt.Fprintf(b, "\nTruth for s[%d][%03d]: %2d / ", block, pos, t)
		if p, ok := l.decoder.Pattern(t, s.Index); ok {
			fmt.Fprintf(b, "%s\n", p)
		} else {
			b.WriteString("ERROR\n")
		}
	}

	fmt.Fprintf(b, "Guess for s[%d][%03d]: %2s\n", block, pos, s.Guess)
}

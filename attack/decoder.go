package attack

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/antoonpurnal/clangover/utils"
)

// Pattern is the decision bit of each attack class: true if the class times like
// the known-one reference.
type Pattern [NbAttackClasses]bool

// String returns the pattern as "[b0 b1 ... b6]".
func (p Pattern) String() string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, b := range p {
		if i > 0 {
			sb.WriteByte(' ')
		}
		if b {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	sb.WriteByte(']')
	return sb.String()
}

// ParsePattern parses a pattern of NbAttackClasses '0'/'1' characters, spaces
// and brackets ignored.
func ParsePattern(s string) (p Pattern, err error) {
	s = strings.NewReplacer("[", "", "]", "", " ", "").Replace(s)
	if len(s) != NbAttackClasses {
		return p, fmt.Errorf("cannot ParsePattern: %q has %d bits but must have %d", s, len(s), NbAttackClasses)
	}
	for i, c := range s {
		switch c {
		case '0':
		case '1':
			p[i] = true
		default:
			return p, fmt.Errorf("cannot ParsePattern: invalid character %q", c)
		}
	}
	return p, nil
}

// Guess is a decoded coefficient. The zero value is [Unknown].
type Guess struct {
	Value int16
	Known bool
}

// Unknown is the guess of a pattern that matches no row of the decoder.
var Unknown = Guess{}

// Known returns the known guess of value v.
func Known(v int16) Guess {
	return Guess{Value: v, Known: true}
}

func (g Guess) String() string {
	if !g.Known {
		return "??"
	}
	return strconv.Itoa(int(g.Value))
}

// Matches returns true if g is known and equal to truth.
func (g Guess) Matches(truth int16) bool {
	return g.Known && g.Value == truth
}

// MarshalYAML encodes an unknown guess as null and a known guess as its value.
func (g Guess) MarshalYAML() (interface{}, error) {
	if !g.Known {
		return nil, nil
	}
	return int(g.Value), nil
}

// CanonicalPatterns are the decision patterns of the attack classes for the
// coefficient values -3 to 3 at block position 0, in that order. At other
// positions the same rows decode to 3 down to -3.
var CanonicalPatterns = []Pattern{
	{false, false, true, false, true, false, true},
	{true, false, true, false, true, false, true},
	{true, false, false, false, true, false, true},
	{true, false, false, false, false, false, true},
	{true, false, false, false, false, true, false},
	{true, false, false, true, false, true, false},
	{true, true, false, true, false, true, false},
}

// DefaultDecoder decodes the [CanonicalPatterns].
var DefaultDecoder = MustNewDecoder(CanonicalPatterns)

// Decoder maps a pattern to a coefficient by exact match against a table of
// NbAttackClasses distinct rows. Row r decodes to r - center at block position 0
// and to center - r elsewhere, with center = (NbAttackClasses-1)/2.
type Decoder struct {
	rows  []Pattern
	index map[Pattern]int
}

// NewDecoder creates a Decoder from its table. It returns an error if the table
// does not have exactly NbAttackClasses rows or if two rows are equal.
func NewDecoder(rows []Pattern) (*Decoder, error) {
	if len(rows) != NbAttackClasses {
		return nil, fmt.Errorf("cannot NewDecoder: table has %d rows but must have %d", len(rows), NbAttackClasses)
	}
	if !utils.AllDistinct(rows) {
		return nil, fmt.Errorf("cannot NewDecoder: table rows are not distinct")
	}
	d := &Decoder{
		rows:  append([]Pattern{}, rows...),
		index: make(map[Pattern]int, len(rows)),
	}
	for r, p := range rows {
		d.index[p] = r
	}
	return d, nil
}

// MustNewDecoder is like NewDecoder but panics on error.
func MustNewDecoder(rows []Pattern) *Decoder {
	d, err := NewDecoder(rows)
	if err != nil {
		panic(err)
	}
	return d
}

const center = (NbAttackClasses - 1) / 2

// Decode returns the coefficient encoded by p for coefficient index, or [Unknown]
// if p matches no row.
func (d *Decoder) Decode(p Pattern, index int) Guess {
	r, ok := d.index[p]
	if !ok {
		return Unknown
	}
	if Negated(index) {
		return Known(int16(center - r))
	}
	return Known(int16(r - center))
}

// Pattern returns the row that decodes to value for coefficient index, and false if
// value is out of the decodable range.
func (d *Decoder) Pattern(value int16, index int) (Pattern, bool) {
	r := int(value) + center
	if Negated(index) {
		r = center - int(value)
	}
	if r < 0 || r >= len(d.rows) {
		return Pattern{}, false
	}
	return d.rows[r], true
}

// Rows returns a copy of the decoder table.
func (d *Decoder) Rows() []Pattern {
	return append([]Pattern{}, d.rows...)
}

// Range returns the smallest and largest decodable values.
func (d *Decoder) Range() (lo, hi int16) {
	return -center, center
}

package pattern

import (
	"errors"
	"fmt"
	"strings"
)

//ErrRule is returned when a birth/survival notation can't be parsed
var ErrRule = errors.New("pattern: malformed rule")

//MaxCount is the biggest neighbour count in the Moore neighbourhood
const MaxCount = 8

//Counts is the set of neighbour counts, bit n is set when count n is a member
type Counts uint16

//RuleSet holds the neighbour counts which give birth to a cell and keep it alive
type RuleSet struct {
	Birth    Counts
	Survival Counts
}

//StandardRule is the Conway's rule, survival 2,3 / birth 3
var StandardRule = RuleSet{
	Birth:    NewCounts(3),
	Survival: NewCounts(2, 3),
}

//NewCounts builds the set, counts outside [0, 8] are dropped
func NewCounts(n ...int) Counts {
	var c Counts
	for _, v := range n {
		if v >= 0 && v <= MaxCount {
			c |= 1 << uint(v)
		}
	}
	return c
}

func (c Counts) Has(n int) bool {
	if n < 0 || n > MaxCount {
		return false
	}
	return c&(1<<uint(n)) != 0
}

//Slice returns the members in ascending order
func (c Counts) Slice() []int {
	var r []int
	for n := 0; n <= MaxCount; n++ {
		if c.Has(n) {
			r = append(r, n)
		}
	}
	return r
}

//String returns the members sorted ascending and concatenated, e.g. "23"
func (c Counts) String() string {
	var b strings.Builder
	for _, n := range c.Slice() {
		b.WriteByte(byte('0' + n))
	}
	return b.String()
}

//IsStandard reports whether r is the Conway's rule
func (r RuleSet) IsStandard() bool {
	return r == StandardRule
}

//String returns the rule in the survival/birth notation, e.g. "23/3"
func (r RuleSet) String() string {
	return r.Survival.String() + "/" + r.Birth.String()
}

//ParseCounts parses one group of digits, each digit is a separate count
func ParseCounts(s string) (Counts, error) {
	var c Counts
	for _, ch := range strings.TrimSpace(s) {
		if ch < '0' || ch > '0'+MaxCount {
			return 0, fmt.Errorf("%w: bad neighbour count %q in %q", ErrRule, ch, s)
		}
		c |= 1 << uint(ch-'0')
	}
	return c, nil
}

//ParseRule parses the rule in one of the notations:
//  B3/S23 - birth first, tagged
//  S23/B3 - survival first, tagged
//  23/3   - survival/birth, untagged
func ParseRule(s string) (RuleSet, error) {
	parts := strings.Split(strings.TrimSpace(s), "/")
	if len(parts) != 2 {
		return RuleSet{}, fmt.Errorf("%w: %q", ErrRule, s)
	}
	first := strings.TrimSpace(parts[0])
	second := strings.TrimSpace(parts[1])

	var birth, survival string
	switch {
	case hasTag(first, 'B'):
		birth, survival = first[1:], trimTag(second, 'S')
	case hasTag(first, 'S'):
		survival, birth = first[1:], trimTag(second, 'B')
	default:
		survival, birth = first, second
	}

	var (
		r   RuleSet
		err error
	)
	if r.Birth, err = ParseCounts(birth); err != nil {
		return RuleSet{}, err
	}
	if r.Survival, err = ParseCounts(survival); err != nil {
		return RuleSet{}, err
	}
	return r, nil
}

func hasTag(s string, tag byte) bool {
	return len(s) > 0 && (s[0] == tag || s[0] == tag+'a'-'A')
}

func trimTag(s string, tag byte) string {
	if hasTag(s, tag) {
		return s[1:]
	}
	return s
}

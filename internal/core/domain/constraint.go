package domain

import (
	"bytes"
	"encoding/gob"
	"strings"

	"go.trai.ch/zerr"
)

// Comparator is one of the relational operators a Constraint clause uses.
type Comparator string

// Recognized comparators, ordered by symbol length so parsing can try the
// two-character forms first.
const (
	ComparatorGE Comparator = ">="
	ComparatorLE Comparator = "<="
	ComparatorEQ Comparator = "=="
	ComparatorGT Comparator = ">"
	ComparatorLT Comparator = "<"
)

// Clause is a single (comparator, version) pair.
type Clause struct {
	Comparator Comparator
	Version    Version
}

// Satisfies reports whether v satisfies this clause.
func (c Clause) Satisfies(v Version) bool {
	cmp := v.Compare(c.Version)
	switch c.Comparator {
	case ComparatorGE:
		return cmp >= 0
	case ComparatorLE:
		return cmp <= 0
	case ComparatorEQ:
		return cmp == 0
	case ComparatorGT:
		return cmp > 0
	case ComparatorLT:
		return cmp < 0
	default:
		return false
	}
}

// String renders the clause in "comparator version" form.
func (c Clause) String() string {
	return string(c.Comparator) + " " + c.Version.String()
}

// Constraint is a conjunction of clauses. A zero-value Constraint (no
// clauses) is the universal set: every version satisfies it.
type Constraint struct {
	clauses []Clause
}

// ParseConstraint parses a single "comparator version" expression, e.g.
// ">= 1.2.0". An empty string yields the universal constraint.
func ParseConstraint(s string) (Constraint, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Constraint{}, nil
	}

	for _, cmp := range []Comparator{ComparatorGE, ComparatorLE, ComparatorEQ, ComparatorGT, ComparatorLT} {
		if strings.HasPrefix(s, string(cmp)) {
			rest := strings.TrimSpace(strings.TrimPrefix(s, string(cmp)))
			v, err := ParseVersion(rest)
			if err != nil {
				return Constraint{}, zerr.With(ErrInvalidConstraint, "input", s)
			}
			return Constraint{clauses: []Clause{{Comparator: cmp, Version: v}}}, nil
		}
	}

	return Constraint{}, zerr.With(ErrInvalidConstraint, "input", s)
}

// And returns a new Constraint whose clauses are the conjunction of c and
// other's clauses.
func (c Constraint) And(other Constraint) Constraint {
	merged := make([]Clause, 0, len(c.clauses)+len(other.clauses))
	merged = append(merged, c.clauses...)
	merged = append(merged, other.clauses...)
	return Constraint{clauses: merged}
}

// IsUniversal reports whether the constraint has no clauses.
func (c Constraint) IsUniversal() bool {
	return len(c.clauses) == 0
}

// Satisfies reports whether v satisfies every clause of c.
func (c Constraint) Satisfies(v Version) bool {
	for _, cl := range c.clauses {
		if !cl.Satisfies(v) {
			return false
		}
	}
	return true
}

// GobEncode implements gob.GobEncoder so the repository index disk cache
// can round-trip a constraint despite its unexported clause list.
func (c Constraint) GobEncode() ([]byte, error) {
	var buf bytes.Buffer
	err := gob.NewEncoder(&buf).Encode(c.clauses)
	return buf.Bytes(), err
}

// GobDecode implements gob.GobDecoder.
func (c *Constraint) GobDecode(data []byte) error {
	return gob.NewDecoder(bytes.NewReader(data)).Decode(&c.clauses)
}

// Clauses returns the constraint's clauses.
func (c Constraint) Clauses() []Clause {
	return c.clauses
}

// String renders the constraint as a comma-joined list of clauses, or
// "*" for the universal constraint.
func (c Constraint) String() string {
	if c.IsUniversal() {
		return "*"
	}
	parts := make([]string, len(c.clauses))
	for i, cl := range c.clauses {
		parts[i] = cl.String()
	}
	return strings.Join(parts, ", ")
}

// HighestSatisfying returns the newest version in candidates (assumed
// sorted descending) that satisfies c, and true if one was found.
func (c Constraint) HighestSatisfying(candidates []Version) (Version, bool) {
	for _, v := range candidates {
		if c.Satisfies(v) {
			return v, true
		}
	}
	return Version{}, false
}

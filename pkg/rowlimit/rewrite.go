package rowlimit

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/leapstack-labs/rowcap/pkg/parser"
)

// DefaultMaxRows is the row cap applied when the caller does not configure one.
const DefaultMaxRows = 100

// Policy configures limit enforcement. MaxRows must be positive; callers are
// expected to validate configuration before it reaches this package. When
// Disabled is true the rewrite is a no-op beyond terminator trimming and
// syntax checking.
type Policy struct {
	MaxRows  int
	Disabled bool
}

// DefaultPolicy returns a policy with the default row cap.
func DefaultPolicy() Policy {
	return Policy{MaxRows: DefaultMaxRows}
}

var (
	// terminatorRe matches one trailing statement terminator with
	// surrounding whitespace, anchored at end of input.
	terminatorRe = regexp.MustCompile(`\s*;\s*$`)

	// limitRe matches a trailing LIMIT clause. The value may be numeric or
	// the keyword ALL.
	limitRe = regexp.MustCompile(`(?i)\s+limit\s+(\d+|all)\s*$`)

	// fetchRe matches a trailing FETCH FIRST n ROWS ONLY clause.
	fetchRe = regexp.MustCompile(`(?i)\s+fetch\s+(?:first|next)\s+\d+\s+rows?\s+only\s*$`)
)

// Trim strips at most one trailing statement terminator and surrounding
// whitespace. The result is the working text every other step operates on.
func Trim(sql string) string {
	return strings.TrimSpace(terminatorRe.ReplaceAllString(sql, ""))
}

// Classify parses sql and reports the shape of its top-level statement.
// The input is terminator-trimmed first; a syntax error aborts with that
// error and an empty shape.
func Classify(sql string) (Shape, error) {
	stmt, serr := parser.Parse(Trim(sql))
	if serr != nil {
		return Shape{}, serr
	}
	return CollectShape(stmt), nil
}

// Apply rewrites sql so that the effective row limit never exceeds
// p.MaxRows, returning the cleaned SQL or the first syntax error.
//
// Exactly one of the following happens, in order:
//   - the statement fails to parse: the syntax error is returned,
//   - the statement is not a top-level query, or enforcement is disabled:
//     the terminator-trimmed text is returned unchanged,
//   - a LIMIT clause exists and is ALL or above the cap: it is tightened
//     in place,
//   - a FETCH FIRST clause exists and is above the cap: it is tightened
//     in place,
//   - no limiting clause exists: " LIMIT <max>" is appended,
//   - otherwise the existing clause is within bounds and the text is
//     returned unchanged.
//
// Tightening preserves the clause style the caller used; injection happens
// only when no clause exists, so a statement never ends up with two.
//
// If the parser captured a clause but the anchored pattern cannot locate it
// in the raw text (trailing comments the grammar tolerates, for example),
// the rewrite degrades to returning the text unmodified rather than
// guessing. Callers must not assume the returned limit is always tightened.
func Apply(sql string, p Policy) (string, error) {
	working := Trim(sql)

	stmt, serr := parser.Parse(working)
	if serr != nil {
		return "", serr
	}

	shape := CollectShape(stmt)
	if !shape.IsQuery || p.Disabled {
		return working, nil
	}

	capText := strconv.Itoa(p.MaxRows)
	switch {
	case shape.HasLimit() && exceeds(shape.LimitText, p.MaxRows):
		return limitRe.ReplaceAllString(working, " LIMIT "+capText), nil

	case shape.HasFetchFirst() && exceeds(shape.FetchFirstText, p.MaxRows):
		return fetchRe.ReplaceAllString(working, " FETCH FIRST "+capText+" ROWS ONLY"), nil

	case !shape.HasLimit() && !shape.HasFetchFirst():
		return working + " LIMIT " + capText, nil

	default:
		return working, nil
	}
}

// exceeds reports whether the literal clause value is over the cap.
// Non-numeric values (the keyword ALL) always exceed it.
func exceeds(literal string, maxRows int) bool {
	n, err := strconv.Atoi(literal)
	if err != nil {
		return true
	}
	return n > maxRows
}

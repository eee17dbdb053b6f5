package analysis

import (
	"regexp"
	"strings"
)

// Role names a logical column the pipeline knows how to read.
type Role int

const (
	RoleSubject Role = iota
	RoleYear
	RoleGender
	RoleName
	RoleResult
	RoleScore
	RoleMax
	numRoles
)

var roleNames = [numRoles]string{"subject", "year", "gender", "name", "result", "score", "max"}

func (r Role) String() string {
	if r < 0 || r >= numRoles {
		return "unknown"
	}
	return roleNames[r]
}

// Roles lists every role in detection order.
func Roles() []Role {
	out := make([]Role, 0, numRoles)
	for r := Role(0); r < numRoles; r++ {
		out = append(out, r)
	}
	return out
}

func mustPatterns(exprs ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(exprs))
	for i, e := range exprs {
		out[i] = regexp.MustCompile(`(?i)` + e)
	}
	return out
}

// RolePatterns maps each role to the header patterns that identify it.
// A header cell belongs to a role if it matches any of the role's patterns.
var RolePatterns = map[Role][]*regexp.Regexp{
	RoleSubject: mustPatterns(`subject`),
	RoleYear:    mustPatterns(`year`, `session`),
	RoleGender:  mustPatterns(`gender`, `sex`),
	RoleName:    mustPatterns(`\bname\b`, `student`, `candidate`),
	RoleResult:  mustPatterns(`pass`, `status`, `result`),
	RoleScore:   mustPatterns(`score`, `marks`, `obtained`, `percentage`, `percent`),
	RoleMax:     mustPatterns(`out\s*of`, `max(?:imum)?`, `full\s*marks`, `total\s*marks`, `\btotal\b`),
}

// ColumnMap holds the zero-based column index per role; -1 means absent.
type ColumnMap [numRoles]int

// InferColumns scans the header row once per role and records the first
// matching cell. Roles are resolved independently, so one cell may serve several.
func InferColumns(header []string) ColumnMap {
	var cm ColumnMap
	for r := Role(0); r < numRoles; r++ {
		cm[r] = findColumn(header, RolePatterns[r])
	}
	return cm
}

func findColumn(header []string, patterns []*regexp.Regexp) int {
	for i, h := range header {
		h = strings.TrimSpace(h)
		for _, p := range patterns {
			if p.MatchString(h) {
				return i
			}
		}
	}
	return -1
}

// Index returns the column index for role r, or -1.
func (cm ColumnMap) Index(r Role) int { return cm[r] }

// Has reports whether role r was detected.
func (cm ColumnMap) Has(r Role) bool { return cm[r] >= 0 }

// cell returns the cell for role r in row, or "" when the role is absent or the row is short.
func (cm ColumnMap) cell(row []string, r Role) string {
	i := cm[r]
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}

// Detected returns role name → header text for every detected role.
func (cm ColumnMap) Detected(header []string) map[string]string {
	out := map[string]string{}
	for r := Role(0); r < numRoles; r++ {
		if i := cm[r]; i >= 0 && i < len(header) {
			out[r.String()] = header[i]
		}
	}
	return out
}

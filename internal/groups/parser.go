package groups

import (
	"strconv"
	"strings"
	"unicode"
)

// groupFields is the field count of a group(5) line: name:secret:gid:members.
const groupFields = 4

// Entry is one line of the group database.
type Entry struct {
	Name    string
	Secret  string
	GID     int
	Members []string
}

// Table is the parsed group database in file order.
type Table []Entry

// Index maps a username to the names of the groups listing it, in file order.
// Users that are not a member of any group are absent.
type Index map[string][]string

// ParseTable parses group database text.
//
// Blank lines and lines starting with '#' are skipped. Any other line must
// have exactly four fields and a numeric gid, otherwise a *ParseError is
// returned for the first offending line.
func ParseTable(raw string) (Table, error) {
	raw = strings.TrimRightFunc(raw, unicode.IsSpace)
	if raw == "" {
		return Table{}, nil
	}

	lines := strings.Split(raw, "\n")
	table := make(Table, 0, len(lines))

	for i, line := range lines {
		line = strings.TrimSuffix(line, "\r")

		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.Split(line, ":")
		if len(parts) != groupFields {
			return nil, &ParseError{Line: i + 1, Fields: len(parts)}
		}

		gid, err := strconv.Atoi(parts[2])
		if err != nil {
			return nil, &ParseError{Line: i + 1, Fields: len(parts), Err: err}
		}

		table = append(table, Entry{
			Name:    parts[0],
			Secret:  parts[1],
			GID:     gid,
			Members: splitMembers(parts[3]),
		})
	}

	return table, nil
}

// splitMembers splits a comma separated member field, dropping empty names
// and repeated names.
func splitMembers(field string) []string {
	if field == "" {
		return nil
	}

	members := make([]string, 0, strings.Count(field, ",")+1)
	seen := make(map[string]struct{}, cap(members))

	for _, m := range strings.Split(field, ",") {
		if m == "" {
			continue
		}

		if _, ok := seen[m]; ok {
			continue
		}

		seen[m] = struct{}{}
		members = append(members, m)
	}

	return members
}

// Index inverts the table into a username -> group names lookup.
func (t Table) Index() Index {
	idx := make(Index)

	for _, e := range t {
		for _, m := range e.Members {
			idx[m] = append(idx[m], e.Name)
		}
	}

	return idx
}

// ParseGroupTable parses group database text straight into an Index.
func ParseGroupTable(raw string) (Index, error) {
	table, err := ParseTable(raw)
	if err != nil {
		return nil, err
	}

	return table.Index(), nil
}

// Lookup returns the groups of username, or an empty non-nil slice.
func (idx Index) Lookup(username string) []string {
	names, ok := idx[username]
	if !ok {
		return []string{}
	}

	out := make([]string, len(names))
	copy(out, names)

	return out
}

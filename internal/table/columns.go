package table

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Addressing selects how a source's column bindings are interpreted.
type Addressing string

const (
	// ByPosition binds logical roles to zero-based column indices.
	ByPosition Addressing = "position"
	// ByHeader binds logical roles to header names and fails fast when
	// a bound header is absent from the file.
	ByHeader Addressing = "header"
)

// Roles declares which logical roles a source must bind and which it may.
type Roles struct {
	Required []string
	Optional []string
}

// ColumnIndex maps a logical role to its column index in the source
// table. Optional roles without a binding map to -1.
type ColumnIndex map[string]int

// Resolve validates a source's column bindings against the table and
// returns the index for each role. All missing required columns are
// reported in one error so a misconfigured run fails before any
// aggregation, naming everything that needs fixing.
func Resolve(t Table, source string, mode Addressing, bindings map[string]string, roles Roles) (ColumnIndex, error) {
	switch mode {
	case ByPosition, ByHeader:
	case "":
		mode = ByPosition
	default:
		return nil, fmt.Errorf("source %s: unknown addressing mode %q", source, mode)
	}

	index := make(ColumnIndex, len(roles.Required)+len(roles.Optional))
	var missing []string

	resolveOne := func(role string, required bool) {
		binding, bound := bindings[role]
		binding = strings.TrimSpace(binding)
		if !bound || binding == "" {
			index[role] = -1
			if required {
				missing = append(missing, role)
			}
			return
		}

		switch mode {
		case ByPosition:
			idx, err := strconv.Atoi(binding)
			if err != nil || idx < 0 || idx >= len(t.Headers) {
				index[role] = -1
				missing = append(missing, fmt.Sprintf("%s (position %s)", role, binding))
				return
			}
			index[role] = idx
		case ByHeader:
			idx := findHeader(t.Headers, binding)
			if idx < 0 {
				index[role] = -1
				missing = append(missing, fmt.Sprintf("%s (header %q)", role, binding))
				return
			}
			index[role] = idx
		}
	}

	for _, role := range roles.Required {
		resolveOne(role, true)
	}
	for _, role := range roles.Optional {
		resolveOne(role, false)
	}

	if len(missing) > 0 {
		sort.Strings(missing)
		return nil, fmt.Errorf("source %s: unresolved columns: %s", source, strings.Join(missing, ", "))
	}
	return index, nil
}

func findHeader(headers []string, name string) int {
	name = strings.TrimSpace(name)
	for i, header := range headers {
		if header == name {
			return i
		}
	}
	for i, header := range headers {
		if strings.EqualFold(header, name) {
			return i
		}
	}
	return -1
}

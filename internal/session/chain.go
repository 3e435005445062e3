package session

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Step is one filter invocation in a chain.
type Step struct {
	ID     string
	Params Params
}

func (s Step) String() string {
	if s.Params.HasValue {
		return fmt.Sprintf("%s=%d", s.ID, s.Params.Value)
	}
	return s.ID
}

// ParseChain parses a comma-separated chain such as
// "grayscale,brightness=-20,sharpen".
func ParseChain(chain string) ([]Step, error) {
	var steps []Step
	for _, part := range strings.Split(chain, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, val, hasVal := strings.Cut(part, "=")
		st := Step{ID: strings.ToLower(strings.TrimSpace(id))}
		if hasVal {
			v, err := strconv.Atoi(strings.TrimSpace(val))
			if err != nil {
				return nil, fmt.Errorf("step %q: bad value: %w", part, err)
			}
			st.Params = WithValue(v)
		}
		steps = append(steps, st)
	}
	if len(steps) == 0 {
		return nil, errors.New("empty filter chain")
	}
	return steps, nil
}

// FormatChain is the inverse of ParseChain.
func FormatChain(steps []Step) string {
	parts := make([]string, len(steps))
	for i, s := range steps {
		parts[i] = s.String()
	}
	return strings.Join(parts, ",")
}

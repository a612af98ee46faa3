package model

import "strings"

// Priority represents task priority. The zero value is PriorityLow.
type Priority uint8

const (
	PriorityLow Priority = iota
	PriorityMedium
	PriorityHigh
)

var priorityNames = [...]string{
	PriorityLow:    "low",
	PriorityMedium: "medium",
	PriorityHigh:   "high",
}

// Priorities returns all supported priorities, lowest first.
func Priorities() []Priority {
	return []Priority{PriorityLow, PriorityMedium, PriorityHigh}
}

// ParsePriority converts external input into a Priority. An empty value
// defaults to PriorityLow; matching is case-insensitive.
func ParsePriority(value string) (Priority, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	if normalized == "" {
		return PriorityLow, nil
	}
	for i, name := range priorityNames {
		if name == normalized {
			return Priority(i), nil
		}
	}
	return PriorityLow, &InvalidPriorityError{Value: value}
}

// IsValid reports whether p is one of the declared priorities.
func (p Priority) IsValid() bool {
	return int(p) < len(priorityNames)
}

func (p Priority) String() string {
	if !p.IsValid() {
		return "unknown"
	}
	return priorityNames[p]
}

// MarshalText implements encoding.TextMarshaler.
func (p Priority) MarshalText() ([]byte, error) {
	if !p.IsValid() {
		return nil, &InvalidPriorityError{Value: uint8(p)}
	}
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Priority) UnmarshalText(data []byte) error {
	parsed, err := ParsePriority(string(data))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

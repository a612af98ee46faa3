package model

import "strings"

// Mode selects the admission/eviction policy of a registry. The zero value is
// ModeDefault.
type Mode uint8

const (
	// ModeDefault rejects admission once the registry is full.
	ModeDefault Mode = iota
	// ModeFIFO evicts the oldest tasks to make room.
	ModeFIFO
	// ModePriority evicts lower priority tasks to make room, or skips admission.
	ModePriority
)

var modeNames = [...]string{
	ModeDefault:  "default",
	ModeFIFO:     "fifo",
	ModePriority: "priority",
}

// Modes returns all supported modes.
func Modes() []Mode {
	return []Mode{ModeDefault, ModeFIFO, ModePriority}
}

// ParseMode converts external input into a Mode. An empty value defaults to
// ModeDefault; matching is case-insensitive.
func ParseMode(value string) (Mode, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	if normalized == "" {
		return ModeDefault, nil
	}
	for i, name := range modeNames {
		if name == normalized {
			return Mode(i), nil
		}
	}
	return ModeDefault, &InvalidModeError{Value: value}
}

// IsValid reports whether m is one of the declared modes.
func (m Mode) IsValid() bool {
	return int(m) < len(modeNames)
}

func (m Mode) String() string {
	if !m.IsValid() {
		return "unknown"
	}
	return modeNames[m]
}

// MarshalText implements encoding.TextMarshaler.
func (m Mode) MarshalText() ([]byte, error) {
	if !m.IsValid() {
		return nil, &InvalidModeError{Value: uint8(m)}
	}
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Mode) UnmarshalText(data []byte) error {
	parsed, err := ParseMode(string(data))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

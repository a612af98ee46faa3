package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Sentinels matched by the concrete error types below; use errors.Is to
// detect an error kind and errors.As to access the offending value.
var (
	ErrAlreadyInitialized = errors.New("task manager: already initialized")
	ErrInvalidCapacity    = errors.New("task manager: invalid capacity")
	ErrInvalidMode        = errors.New("task manager: invalid mode")
	ErrInvalidPriority    = errors.New("task manager: invalid priority")
	ErrMaximumCapacity    = errors.New("task manager: maximum capacity")
	// ErrDuplicateID is returned when the id provider yields an id the
	// registry already holds.
	ErrDuplicateID = errors.New("task manager: duplicate task id")
)

// AlreadyInitializedError is returned when Initialize is called more than once.
type AlreadyInitializedError struct{}

func (e *AlreadyInitializedError) Error() string {
	return "task manager is already initialized, please use reset methods"
}

func (e *AlreadyInitializedError) Is(target error) bool { return target == ErrAlreadyInitialized }

// InvalidCapacityError is returned when a capacity is not a positive integer.
type InvalidCapacityError struct {
	Value interface{}
}

func (e *InvalidCapacityError) Error() string {
	return fmt.Sprintf("task capacity must be positive integer, but value is %s", visibleValue(e.Value))
}

func (e *InvalidCapacityError) Is(target error) bool { return target == ErrInvalidCapacity }

// InvalidModeError is returned for a mode outside the Mode enumeration.
type InvalidModeError struct {
	Value interface{}
}

func (e *InvalidModeError) Error() string {
	return fmt.Sprintf("task mode must be in [%s], but value is %s", strings.Join(modeNames[:], ", "), visibleValue(e.Value))
}

func (e *InvalidModeError) Is(target error) bool { return target == ErrInvalidMode }

// InvalidPriorityError is returned for a priority outside the Priority enumeration.
type InvalidPriorityError struct {
	Value interface{}
}

func (e *InvalidPriorityError) Error() string {
	return fmt.Sprintf("task priority must be in [%s], but value is %s", strings.Join(priorityNames[:], ", "), visibleValue(e.Value))
}

func (e *InvalidPriorityError) Is(target error) bool { return target == ErrInvalidPriority }

// MaximumCapacityError is returned when a registry in ModeDefault is full.
type MaximumCapacityError struct {
	Capacity int
}

func (e *MaximumCapacityError) Error() string {
	return fmt.Sprintf("task manager reached maximum capacity: %d", e.Capacity)
}

func (e *MaximumCapacityError) Is(target error) bool { return target == ErrMaximumCapacity }

// ValidateCapacity returns InvalidCapacityError unless capacity is positive.
func ValidateCapacity(capacity int) error {
	if capacity <= 0 {
		return &InvalidCapacityError{Value: capacity}
	}
	return nil
}

func visibleValue(value interface{}) string {
	switch actual := value.(type) {
	case nil:
		return "null"
	case string:
		return actual
	case fmt.Stringer:
		return actual.String()
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64, bool:
		return fmt.Sprintf("%v", actual)
	}
	data, err := json.Marshal(value)
	if err != nil {
		return err.Error()
	}
	return string(data)
}

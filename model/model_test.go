package model

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePriority(t *testing.T) {
	testCases := []struct {
		description string
		input       string
		expect      Priority
		expectErr   bool
	}{
		{description: "empty defaults to low", input: "", expect: PriorityLow},
		{description: "low", input: "low", expect: PriorityLow},
		{description: "medium", input: "medium", expect: PriorityMedium},
		{description: "high mixed case", input: " HiGh ", expect: PriorityHigh},
		{description: "unknown", input: "foo-bar", expectErr: true},
	}
	for _, testCase := range testCases {
		actual, err := ParsePriority(testCase.input)
		if testCase.expectErr {
			assert.True(t, errors.Is(err, ErrInvalidPriority), testCase.description)
			var priorityErr *InvalidPriorityError
			if assert.True(t, errors.As(err, &priorityErr), testCase.description) {
				assert.Equal(t, testCase.input, priorityErr.Value, testCase.description)
			}
			continue
		}
		assert.NoError(t, err, testCase.description)
		assert.Equal(t, testCase.expect, actual, testCase.description)
	}
}

func TestParseMode(t *testing.T) {
	testCases := []struct {
		description string
		input       string
		expect      Mode
		expectErr   bool
	}{
		{description: "empty defaults to default", input: "", expect: ModeDefault},
		{description: "fifo", input: "fifo", expect: ModeFIFO},
		{description: "priority upper case", input: "PRIORITY", expect: ModePriority},
		{description: "unknown", input: "lifo", expectErr: true},
	}
	for _, testCase := range testCases {
		actual, err := ParseMode(testCase.input)
		if testCase.expectErr {
			assert.True(t, errors.Is(err, ErrInvalidMode), testCase.description)
			assert.False(t, errors.Is(err, ErrInvalidPriority), testCase.description)
			continue
		}
		assert.NoError(t, err, testCase.description)
		assert.Equal(t, testCase.expect, actual, testCase.description)
	}
}

func TestErrorMessages(t *testing.T) {
	assert.EqualValues(t, "task mode must be in [default, fifo, priority], but value is lifo", (&InvalidModeError{Value: "lifo"}).Error())
	assert.EqualValues(t, "task priority must be in [low, medium, high], but value is 7", (&InvalidPriorityError{Value: uint8(7)}).Error())
	assert.EqualValues(t, "task capacity must be positive integer, but value is -1", (&InvalidCapacityError{Value: -1}).Error())
	assert.EqualValues(t, "task manager reached maximum capacity: 5", (&MaximumCapacityError{Capacity: 5}).Error())
	assert.True(t, errors.Is(&AlreadyInitializedError{}, ErrAlreadyInitialized))
	assert.True(t, errors.Is(ValidateCapacity(0), ErrInvalidCapacity))
	assert.NoError(t, ValidateCapacity(1))
}

func TestEnumText(t *testing.T) {
	data, err := json.Marshal(struct {
		Mode     Mode     `json:"mode"`
		Priority Priority `json:"priority"`
	}{Mode: ModeFIFO, Priority: PriorityMedium})
	assert.NoError(t, err)
	assert.EqualValues(t, `{"mode":"fifo","priority":"medium"}`, string(data))

	var decoded struct {
		Mode     Mode     `json:"mode"`
		Priority Priority `json:"priority"`
	}
	assert.NoError(t, json.Unmarshal([]byte(`{"mode":"priority","priority":"high"}`), &decoded))
	assert.Equal(t, ModePriority, decoded.Mode)
	assert.Equal(t, PriorityHigh, decoded.Priority)

	err = json.Unmarshal([]byte(`{"mode":"bogus"}`), &decoded)
	assert.True(t, errors.Is(err, ErrInvalidMode))

	_, err = Priority(9).MarshalText()
	assert.True(t, errors.Is(err, ErrInvalidPriority))
}

type ownerStub struct {
	killed []string
}

func (o *ownerStub) Kill(id string) bool {
	o.killed = append(o.killed, id)
	return true
}

func TestTask(t *testing.T) {
	owner := &ownerStub{}
	task, err := NewTask(owner, "t-1", 42, PriorityHigh)
	assert.NoError(t, err)
	assert.Equal(t, "t-1", task.ID())
	assert.EqualValues(t, 42, task.CreatedAt())
	assert.Equal(t, PriorityHigh, task.Priority())

	data, err := json.Marshal(task)
	assert.NoError(t, err)
	assert.EqualValues(t, `{"createdAt":42,"id":"t-1","priority":"high"}`, string(data))

	assert.True(t, task.Kill())
	assert.Equal(t, []string{"t-1"}, owner.killed)

	_, err = NewTask(owner, "t-2", 43, Priority(3))
	assert.True(t, errors.Is(err, ErrInvalidPriority))

	var orphan *Task
	assert.False(t, orphan.Kill())
}

package policy

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/viant/taskmgr/model"
)

type sliceStore struct {
	capacity int
	items    []*model.Task
	evicted  []*model.Task
	seq      int
}

func newSliceStore(capacity int, priorities ...model.Priority) *sliceStore {
	ret := &sliceStore{capacity: capacity}
	for _, priority := range priorities {
		_, _ = ret.Create(priority)
	}
	return ret
}

func (s *sliceStore) Size() int                { return len(s.items) }
func (s *sliceStore) Capacity() int            { return s.capacity }
func (s *sliceStore) At(index int) *model.Task { return s.items[index] }

func (s *sliceStore) Evict(index int) *model.Task {
	task := s.items[index]
	s.items = append(s.items[:index], s.items[index+1:]...)
	s.evicted = append(s.evicted, task)
	return task
}

func (s *sliceStore) Create(priority model.Priority) (*model.Task, error) {
	s.seq++
	task, err := model.NewTask(nil, fmt.Sprintf("t%d", s.seq), int64(s.seq), priority)
	if err != nil {
		return nil, err
	}
	s.items = append(s.items, task)
	return task, nil
}

func (s *sliceStore) ids() []string {
	var ret []string
	for _, item := range s.items {
		ret = append(ret, item.ID())
	}
	return ret
}

func (s *sliceStore) count(priority model.Priority) int {
	count := 0
	for _, item := range s.items {
		if item.Priority() == priority {
			count++
		}
	}
	return count
}

func TestFor(t *testing.T) {
	for _, mode := range model.Modes() {
		adapter, err := For(mode)
		assert.NoError(t, err)
		assert.Equal(t, mode, adapter.Mode())
	}
	_, err := For(model.Mode(42))
	assert.True(t, errors.Is(err, model.ErrInvalidMode))
}

func TestDefault_Add(t *testing.T) {
	store := newSliceStore(2, model.PriorityLow)
	task, err := Default{}.Add(store, model.PriorityHigh)
	assert.NoError(t, err)
	assert.Equal(t, model.PriorityHigh, task.Priority())
	assert.Equal(t, 2, store.Size())

	task, err = Default{}.Add(store, model.PriorityHigh)
	assert.Nil(t, task)
	var capacityErr *model.MaximumCapacityError
	if assert.True(t, errors.As(err, &capacityErr)) {
		assert.Equal(t, 2, capacityErr.Capacity)
	}
	assert.Equal(t, 2, store.Size())
	assert.Empty(t, store.evicted)
}

func TestFIFO_Add(t *testing.T) {
	store := newSliceStore(3, model.PriorityHigh, model.PriorityLow, model.PriorityMedium)
	task, err := FIFO{}.Add(store, model.PriorityLow)
	assert.NoError(t, err)
	assert.Equal(t, "t4", task.ID())
	assert.Equal(t, []string{"t2", "t3", "t4"}, store.ids())

	store.capacity = 1
	_, err = FIFO{}.Add(store, model.PriorityMedium)
	assert.NoError(t, err)
	assert.Equal(t, []string{"t5"}, store.ids())

	_, err = FIFO{}.Add(store, model.Priority(7))
	assert.True(t, errors.Is(err, model.ErrInvalidPriority))
	assert.Equal(t, []string{"t5"}, store.ids())
}

func TestPriority_Add(t *testing.T) {
	low, medium, high := model.PriorityLow, model.PriorityMedium, model.PriorityHigh
	testCases := []struct {
		description string
		existing    []model.Priority
		priority    model.Priority
		expectAdded bool
		expectIDs   []string
		expectErr   error
	}{
		{
			description: "below capacity admits",
			existing:    []model.Priority{low},
			priority:    low,
			expectAdded: true,
			expectIDs:   []string{"t1", "t2"},
		},
		{
			description: "low skipped when full",
			existing:    []model.Priority{high, high, high},
			priority:    low,
			expectIDs:   []string{"t1", "t2", "t3"},
		},
		{
			description: "medium evicts oldest low",
			existing:    []model.Priority{high, low, low},
			priority:    medium,
			expectAdded: true,
			expectIDs:   []string{"t1", "t3", "t4"},
		},
		{
			description: "medium skipped without low",
			existing:    []model.Priority{medium, high, medium},
			priority:    medium,
			expectIDs:   []string{"t1", "t2", "t3"},
		},
		{
			description: "high prefers low over older medium",
			existing:    []model.Priority{medium, high, low},
			priority:    high,
			expectAdded: true,
			expectIDs:   []string{"t1", "t2", "t4"},
		},
		{
			description: "high evicts medium without low",
			existing:    []model.Priority{high, medium, medium},
			priority:    high,
			expectAdded: true,
			expectIDs:   []string{"t1", "t3", "t4"},
		},
		{
			description: "high skipped when all high",
			existing:    []model.Priority{high, high, high},
			priority:    high,
			expectIDs:   []string{"t1", "t2", "t3"},
		},
		{
			description: "invalid priority when full",
			existing:    []model.Priority{low, low, low},
			priority:    model.Priority(9),
			expectIDs:   []string{"t1", "t2", "t3"},
			expectErr:   model.ErrInvalidPriority,
		},
		{
			description: "invalid priority below capacity",
			existing:    []model.Priority{low},
			priority:    model.Priority(9),
			expectIDs:   []string{"t1"},
			expectErr:   model.ErrInvalidPriority,
		},
	}

	for _, testCase := range testCases {
		store := newSliceStore(3, testCase.existing...)
		task, err := Priority{}.Add(store, testCase.priority)
		if testCase.expectErr != nil {
			assert.True(t, errors.Is(err, testCase.expectErr), testCase.description)
		} else {
			assert.NoError(t, err, testCase.description)
		}
		assert.Equal(t, testCase.expectAdded, task != nil, testCase.description)
		assert.Equal(t, testCase.expectIDs, store.ids(), testCase.description)
	}
}

func TestPriority_FullOfLow(t *testing.T) {
	store := newSliceStore(5, model.PriorityLow, model.PriorityLow, model.PriorityLow, model.PriorityLow, model.PriorityLow)
	task, err := Priority{}.Add(store, model.PriorityLow)
	assert.NoError(t, err)
	assert.Nil(t, task)
	assert.Equal(t, 5, store.Size())

	task, err = Priority{}.Add(store, model.PriorityHigh)
	assert.NoError(t, err)
	assert.NotNil(t, task)
	assert.Equal(t, 5, store.Size())
	assert.Equal(t, 4, store.count(model.PriorityLow))
	assert.Equal(t, 1, store.count(model.PriorityHigh))
}

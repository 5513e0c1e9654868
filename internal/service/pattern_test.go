package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/three-level-auth/internal/model"
)

func TestPattern_EnrollAndValidate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := f.signup(t, "a@x.com", "a", "p1")

	rec, err := f.patterns.Enroll(ctx, id, []int{1, 2, 3, 4})
	require.NoError(t, err)
	assert.NotEqual(t, model.RecordID{}, rec)

	assert.NoError(t, f.patterns.Validate(ctx, id, []int{1, 2, 3, 4}))
	assert.ErrorIs(t, f.patterns.Validate(ctx, id, []int{1, 2, 3, 5}), ErrPatternMismatch)
}

func TestPattern_OrderAndLengthSensitive(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := f.signup(t, "a@x.com", "a", "p1")
	_, err := f.patterns.Enroll(ctx, id, []int{1, 2, 3})
	require.NoError(t, err)

	for _, seq := range [][]int{{3, 2, 1}, {1, 2}, {1, 2, 3, 4}, {}, nil} {
		err := f.patterns.Validate(ctx, id, seq)
		assert.ErrorIs(t, err, ErrPatternMismatch, "%v", seq)
		assert.Equal(t, KindMismatch, KindOf(err))
	}
}

func TestPattern_EnrollUnknownAccount(t *testing.T) {
	f := newFixture(t)
	_, err := f.patterns.Enroll(context.Background(), model.NewAccountID(), []int{1})
	assert.ErrorIs(t, err, ErrAccountNotFound)
	assert.Equal(t, KindNotFound, KindOf(err))
}

func TestPattern_ValidateWithoutRecord(t *testing.T) {
	f := newFixture(t)
	id := f.signup(t, "a@x.com", "a", "p1")
	assert.ErrorIs(t, f.patterns.Validate(context.Background(), id, []int{1}), ErrRecordNotFound)
}

func TestPattern_EmptyStoredPattern(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := f.signup(t, "a@x.com", "a", "p1")
	_, err := f.patterns.Enroll(ctx, id, nil)
	require.NoError(t, err)

	assert.ErrorIs(t, f.patterns.Validate(ctx, id, nil), ErrNoStoredPattern)
}

func TestPattern_RepeatedEnrollAppends(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := f.signup(t, "a@x.com", "a", "p1")

	first, err := f.patterns.Enroll(ctx, id, []int{1, 2, 3})
	require.NoError(t, err)
	second, err := f.patterns.Enroll(ctx, id, []int{4, 5, 6})
	require.NoError(t, err)
	assert.NotEqual(t, first, second)

	// the earliest record keeps answering validation
	assert.NoError(t, f.patterns.Validate(ctx, id, []int{1, 2, 3}))
	assert.ErrorIs(t, f.patterns.Validate(ctx, id, []int{4, 5, 6}), ErrPatternMismatch)
}

type alwaysMatch struct{}

func (alwaysMatch) Match(stored, submitted []int) bool { return true }

func TestPattern_CustomComparator(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	svc := NewPatternService(f.store.Accounts(), f.store.Patterns(), alwaysMatch{}, nil, nil)
	id := f.signup(t, "a@x.com", "a", "p1")
	_, err := svc.Enroll(ctx, id, []int{1})
	require.NoError(t, err)

	assert.NoError(t, svc.Validate(ctx, id, []int{9, 9}))
}

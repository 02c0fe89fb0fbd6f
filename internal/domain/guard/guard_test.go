package guard

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var epoch = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		raw     string
		min     int
		max     int
		want    int
		wantErr error
	}{
		{name: "digit", raw: "7", min: 0, max: 9, want: 7},
		{name: "surrounding space", raw: " 4\n", min: 0, max: 9, want: 4},
		{name: "lower bound", raw: "0", min: 0, max: 9, want: 0},
		{name: "empty", raw: "", min: 0, max: 9, wantErr: ErrEmpty},
		{name: "whitespace only", raw: "   ", min: 0, max: 9, wantErr: ErrEmpty},
		{name: "letters", raw: "x", min: 0, max: 9, wantErr: ErrNonNumeric},
		{name: "decimal", raw: "1.5", min: 0, max: 9, wantErr: ErrNonNumeric},
		{name: "too large", raw: "12", min: 0, max: 9, wantErr: ErrOutOfRange},
		{name: "negative", raw: "-1", min: 0, max: 9, wantErr: ErrOutOfRange},
		{name: "empty range", raw: "3", min: 5, max: 1, wantErr: ErrInvalidArgument},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Parse(tc.raw, tc.min, tc.max)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestGuard_Defaults(t *testing.T) {
	t.Parallel()

	g := New(Config{})
	assert.Equal(t, DefaultMinInterval, g.minInterval)
	assert.Equal(t, DefaultMaxAttempts, g.maxAttempts)
}

func TestGuard_TooFast(t *testing.T) {
	t.Parallel()

	g := New(Config{MinInterval: 400 * time.Millisecond})

	require.NoError(t, g.Check(0, epoch))

	err := g.Check(0, epoch.Add(100*time.Millisecond))
	assert.ErrorIs(t, err, ErrTooFast)
	assert.Equal(t, KindTooFast, KindOf(err))

	// The rejected input did not move the window.
	assert.NoError(t, g.Check(0, epoch.Add(400*time.Millisecond)))

	// Other steps have their own window.
	assert.NoError(t, g.Check(1, epoch.Add(410*time.Millisecond)))
}

func TestGuard_Lockout(t *testing.T) {
	t.Parallel()

	g := New(Config{MaxAttempts: 3})

	assert.False(t, g.RecordFailure(2))
	assert.False(t, g.RecordFailure(2))
	assert.Equal(t, 2, g.Attempts(2))
	assert.True(t, g.RecordFailure(2))
	assert.True(t, g.IsLocked(2))

	err := g.Check(2, epoch)
	assert.ErrorIs(t, err, ErrTooManyAttempts)
	assert.Equal(t, KindTooManyAttempts, KindOf(err))

	// A locked step does not affect its neighbours.
	assert.False(t, g.IsLocked(3))
	assert.NoError(t, g.Check(3, epoch))
}

func TestGuard_SuccessClearsAttempts(t *testing.T) {
	t.Parallel()

	g := New(Config{MaxAttempts: 3})
	g.RecordFailure(0)
	g.RecordFailure(0)
	g.RecordSuccess(0)

	assert.Zero(t, g.Attempts(0))
	assert.False(t, g.RecordFailure(0))
}

func TestGuard_Reset(t *testing.T) {
	t.Parallel()

	g := New(Config{MaxAttempts: 1})
	require.NoError(t, g.Check(0, epoch))
	require.True(t, g.RecordFailure(0))

	g.Reset()

	assert.False(t, g.IsLocked(0))
	assert.Zero(t, g.Attempts(0))
	assert.NoError(t, g.Check(0, epoch.Add(time.Millisecond)))
}

func TestGuard_ValidateUserInput(t *testing.T) {
	t.Parallel()

	g := New(Config{})

	v, err := g.ValidateUserInput(0, "5", 0, 9, epoch)
	require.NoError(t, err)
	assert.Equal(t, 5, v)

	// Format errors are reported before the rate limit is consulted.
	_, err = g.ValidateUserInput(0, "a", 0, 9, epoch.Add(time.Millisecond))
	assert.ErrorIs(t, err, ErrNonNumeric)

	_, err = g.ValidateUserInput(0, "6", 0, 9, epoch.Add(time.Millisecond))
	assert.ErrorIs(t, err, ErrTooFast)
}

func TestKindOf(t *testing.T) {
	t.Parallel()

	assert.Equal(t, KindNone, KindOf(nil))
	assert.Equal(t, KindNone, KindOf(fmt.Errorf("unrelated")))
	assert.Equal(t, KindEmpty, KindOf(ErrEmpty))
	assert.Equal(t, KindOutOfRange, KindOf(fmt.Errorf("step 3: %w", ErrOutOfRange)))
	assert.Equal(t, KindNotAwaitingInput, KindOf(ErrNotAwaitingInput))
}

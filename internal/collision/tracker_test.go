package collision

import (
	"testing"

	"github.com/arloliu/zqx/errs"
	"github.com/stretchr/testify/require"
)

func TestNewTracker(t *testing.T) {
	tracker := NewTracker()

	require.NotNil(t, tracker)
	require.Equal(t, 0, tracker.Count())
	require.False(t, tracker.HasCollision())
	require.Empty(t, tracker.Collisions())
}

func TestTracker_Track_Success(t *testing.T) {
	tracker := NewTracker()

	require.NoError(t, tracker.Track("aa", "zebra"))
	require.NoError(t, tracker.Track("ab", "yak"))

	require.Equal(t, 2, tracker.Count())
	require.False(t, tracker.HasCollision())

	owner, ok := tracker.Owner("ab")
	require.True(t, ok)
	require.Equal(t, "yak", owner)

	_, ok = tracker.Owner("zz")
	require.False(t, ok)
}

func TestTracker_Track_Invalid(t *testing.T) {
	tracker := NewTracker()

	require.ErrorIs(t, tracker.Track("", "zebra"), errs.ErrInvalidRecord)
	require.ErrorIs(t, tracker.Track("aa", ""), errs.ErrInvalidRecord)
	require.Equal(t, 0, tracker.Count())
}

func TestTracker_Track_Collision(t *testing.T) {
	tracker := NewTracker()

	require.NoError(t, tracker.Track("aa", "zebra"))
	require.NoError(t, tracker.Track("ab", "yak"))
	require.NoError(t, tracker.Track("aa", "xerus"))
	require.NoError(t, tracker.Track("aa", "wolf"))

	require.True(t, tracker.HasCollision())
	require.Equal(t, 2, tracker.Count())
	require.Equal(t, []Collision{{Code: "aa", Words: []string{"zebra", "xerus", "wolf"}}}, tracker.Collisions())

	owner, _ := tracker.Owner("aa")
	require.Equal(t, "zebra", owner, "first owner is kept")
}

func TestTracker_Track_Duplicate(t *testing.T) {
	tracker := NewTracker()

	require.NoError(t, tracker.Track("aa", "zebra"))
	require.ErrorIs(t, tracker.Track("aa", "zebra"), errs.ErrDuplicateWord)
	require.False(t, tracker.HasCollision())
	require.Equal(t, 1, tracker.Count())
}

func TestTracker_Collisions_Order(t *testing.T) {
	tracker := NewTracker()

	for _, p := range [][2]string{{"bb", "one"}, {"aa", "two"}, {"aa", "three"}, {"bb", "four"}} {
		require.NoError(t, tracker.Track(p[0], p[1]))
	}

	got := tracker.Collisions()
	require.Len(t, got, 2)
	require.Equal(t, "bb", got[0].Code)
	require.Equal(t, "aa", got[1].Code)
}

func TestTracker_Reset(t *testing.T) {
	tracker := NewTracker()

	require.NoError(t, tracker.Track("aa", "zebra"))
	require.NoError(t, tracker.Track("aa", "yak"))
	require.True(t, tracker.HasCollision())

	tracker.Reset()

	require.Equal(t, 0, tracker.Count())
	require.False(t, tracker.HasCollision())
	require.NoError(t, tracker.Track("aa", "yak"))
	require.False(t, tracker.HasCollision())
}

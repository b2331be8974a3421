package curriculum

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func catalogUnderTest() Catalog {
	return NewCatalog("ruby",
		Track{
			ID:         "ruby",
			Name:       "Ruby",
			Extensions: []string{"rb"},
			Exercises: []Exercise{
				{Slug: "one", Readme: "Do one.", TestFile: "one_test.rb", Tests: "assert one"},
				{Slug: "two", Readme: "Do two.", TestFile: "two_test.rb", Tests: "assert two"},
			},
		},
		Track{
			ID:         "go",
			Name:       "Go",
			Extensions: []string{"go"},
			Exercises: []Exercise{
				{Slug: "one"},
			},
		},
	)
}

func TestTracksPreserveDefinitionOrder(t *testing.T) {
	c := catalogUnderTest()
	assert.Equal(t, []string{"ruby", "go"}, c.Tracks())
}

func TestTrackAndExerciseLookups(t *testing.T) {
	c := catalogUnderTest()

	assert.True(t, c.TrackExists("ruby"))
	assert.False(t, c.TrackExists("haskell"))

	assert.True(t, c.ExerciseExists("ruby", "two"))
	assert.False(t, c.ExerciseExists("ruby", "three"))
	assert.False(t, c.ExerciseExists("haskell", "one"))
}

func TestNextAfterWalksTheTrail(t *testing.T) {
	c := catalogUnderTest()

	first, ok := c.FirstSlug("ruby")
	require.True(t, ok)
	assert.Equal(t, "one", first)

	next, ok := c.NextAfter("ruby", "one")
	require.True(t, ok)
	assert.Equal(t, "two", next)

	_, ok = c.NextAfter("ruby", "two")
	assert.False(t, ok)

	_, ok = c.NextAfter("ruby", "unknown")
	assert.False(t, ok)
}

func TestTrackForExtension(t *testing.T) {
	c := catalogUnderTest()

	track, ok := c.TrackForExtension("rb")
	require.True(t, ok)
	assert.Equal(t, "ruby", track)

	_, ok = c.TrackForExtension("exs")
	assert.False(t, ok)
}

func TestAssignmentCarriesExerciseContent(t *testing.T) {
	c := catalogUnderTest()

	a, ok := c.Assignment("ruby", "two")
	require.True(t, ok)
	assert.Equal(t, "ruby", a.Track)
	assert.Equal(t, "two", a.Slug)
	assert.Equal(t, "Do two.", a.Readme)
	assert.Equal(t, "two_test.rb", a.TestFile)

	_, ok = c.Assignment("ruby", "three")
	assert.False(t, ok)
}

func TestDemoFallsBackToFirstTrack(t *testing.T) {
	c := catalogUnderTest()
	require.NotNil(t, c.Demo())
	assert.Equal(t, "ruby", c.Demo().Track)
	assert.Equal(t, "one", c.Demo().Slug)

	fallback := NewCatalog("haskell",
		Track{ID: "go", Exercises: []Exercise{{Slug: "one"}}},
	)
	require.NotNil(t, fallback.Demo())
	assert.Equal(t, "go", fallback.Demo().Track)
}

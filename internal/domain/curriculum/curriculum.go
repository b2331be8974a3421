package curriculum

// Catalog is the curriculum lookup contract. It is an external collaborator
// from the submission core's point of view and is injected into services at
// construction, never reached through a global.
type Catalog interface {
	// Tracks returns the known track ids in catalog order.
	Tracks() []string
	TrackExists(track string) bool
	ExerciseExists(track, slug string) bool

	// FirstSlug returns the first exercise of a track; ok is false for an
	// unknown or empty track.
	FirstSlug(track string) (slug string, ok bool)
	// NextAfter returns the exercise following slug in track order; ok is
	// false at the end of the trail.
	NextAfter(track, slug string) (next string, ok bool)

	// TrackForExtension maps a submitted file extension ("rb", "go") to its
	// track id.
	TrackForExtension(ext string) (track string, ok bool)

	// Assignment returns the deliverable content for one exercise.
	Assignment(track, slug string) (*Assignment, bool)
	// Demo returns the fixed, always-available sample assignment.
	Demo() *Assignment
}

// Assignment is the exercise content handed to clients.
type Assignment struct {
	Track    string `json:"track"`
	Slug     string `json:"slug"`
	Readme   string `json:"readme"`
	TestFile string `json:"test_file"`
	Tests    string `json:"tests"`
}

// Track is one language-specific ordered trail of exercises.
type Track struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Extensions []string   `json:"extensions"`
	Exercises  []Exercise `json:"exercises"`
}

// Exercise is the authored content of one catalog entry.
type Exercise struct {
	Slug     string `json:"slug"`
	Readme   string `json:"readme"`
	TestFile string `json:"test_file"`
	Tests    string `json:"tests"`
}

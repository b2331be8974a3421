package curriculum

// staticCatalog is an in-memory Catalog over a fixed set of tracks.
type staticCatalog struct {
	order     []string
	tracks    map[string]Track
	byExt     map[string]string
	demoTrack string
}

// NewCatalog builds a Catalog from track definitions, preserving their order.
// demoTrack selects which track's first exercise serves as the demo; it falls
// back to the first track.
func NewCatalog(demoTrack string, tracks ...Track) Catalog {
	c := &staticCatalog{
		tracks:    make(map[string]Track, len(tracks)),
		byExt:     make(map[string]string),
		demoTrack: demoTrack,
	}
	for _, t := range tracks {
		c.order = append(c.order, t.ID)
		c.tracks[t.ID] = t
		for _, ext := range t.Extensions {
			c.byExt[ext] = t.ID
		}
	}
	if _, ok := c.tracks[c.demoTrack]; !ok && len(c.order) > 0 {
		c.demoTrack = c.order[0]
	}
	return c
}

func (c *staticCatalog) Tracks() []string {
	return append([]string(nil), c.order...)
}

func (c *staticCatalog) TrackExists(track string) bool {
	_, ok := c.tracks[track]
	return ok
}

func (c *staticCatalog) ExerciseExists(track, slug string) bool {
	t, ok := c.tracks[track]
	if !ok {
		return false
	}
	for _, ex := range t.Exercises {
		if ex.Slug == slug {
			return true
		}
	}
	return false
}

func (c *staticCatalog) FirstSlug(track string) (string, bool) {
	t, ok := c.tracks[track]
	if !ok || len(t.Exercises) == 0 {
		return "", false
	}
	return t.Exercises[0].Slug, true
}

func (c *staticCatalog) NextAfter(track, slug string) (string, bool) {
	t, ok := c.tracks[track]
	if !ok {
		return "", false
	}
	for i, ex := range t.Exercises {
		if ex.Slug == slug {
			if i+1 < len(t.Exercises) {
				return t.Exercises[i+1].Slug, true
			}
			return "", false // end of the trail
		}
	}
	return "", false
}

func (c *staticCatalog) TrackForExtension(ext string) (string, bool) {
	track, ok := c.byExt[ext]
	return track, ok
}

func (c *staticCatalog) Assignment(track, slug string) (*Assignment, bool) {
	t, ok := c.tracks[track]
	if !ok {
		return nil, false
	}
	for _, ex := range t.Exercises {
		if ex.Slug == slug {
			return &Assignment{
				Track:    t.ID,
				Slug:     ex.Slug,
				Readme:   ex.Readme,
				TestFile: ex.TestFile,
				Tests:    ex.Tests,
			}, true
		}
	}
	return nil, false
}

func (c *staticCatalog) Demo() *Assignment {
	slug, ok := c.FirstSlug(c.demoTrack)
	if !ok {
		return nil
	}
	a, _ := c.Assignment(c.demoTrack, slug)
	return a
}

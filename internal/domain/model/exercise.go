package model

// Exercise identifies one coding problem by (track, slug). It is a value,
// not an owned entity; equality is structural.
type Exercise struct {
	Track string `json:"track"`
	Slug  string `json:"slug"`
}

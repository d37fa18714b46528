package model

// Metadata is the snapshot returned by the extraction engine for a single
// media URL. It is validated once at the extraction boundary and treated as
// immutable after being captured into a Session.
type Metadata struct {
	Title     string             `json:"title"`
	Uploader  string             `json:"uploader"`
	Thumbnail string             `json:"thumbnail,omitempty"`
	Duration  int                `json:"duration,omitempty"` // seconds
	Width     int                `json:"width,omitempty"`
	Height    int                `json:"height,omitempty"`
	Formats   []FormatDescriptor `json:"formats,omitempty"`
}

// FormatDescriptor describes one downloadable variant reported by the engine.
// Height is zero for audio-only variants.
type FormatDescriptor struct {
	ID     string `json:"id,omitempty"`
	Height int    `json:"height,omitempty"`
	Width  int    `json:"width,omitempty"`
}

// Heights returns the distinct non-zero resolution heights present in the
// format descriptors, in first-seen order.
func (m *Metadata) Heights() []int {
	seen := make(map[int]bool)
	var heights []int
	for _, f := range m.Formats {
		if f.Height == 0 || seen[f.Height] {
			continue
		}
		seen[f.Height] = true
		heights = append(heights, f.Height)
	}
	return heights
}

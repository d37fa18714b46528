package model

// FormatOption is one selectable output variant shown on the prompt keyboard.
type FormatOption struct {
	Label   string // human label, e.g. "1080p 🖥"
	Quality string // raw quality identifier: height in pixels or audio codec
	Data    string // selector token embedded in the callback payload
}

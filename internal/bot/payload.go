package bot

import (
	"strconv"
	"strings"

	"github.com/tubefetch/tubefetch/internal/format"
)

// ActionKind is the closed set of actions a callback payload can encode.
type ActionKind string

const (
	// ActionVideo requests a video transfer at a specific height.
	ActionVideo ActionKind = "video"

	// ActionAudio requests an audio transfer with the default codec.
	ActionAudio ActionKind = "audio"

	// ActionAudioFormat requests an audio transfer with an explicit codec.
	ActionAudioFormat ActionKind = "audioformat"

	// ActionAgain requests rebuilding the format prompt.
	ActionAgain ActionKind = "again"

	// ActionUnknown is any payload that matched no literal form.
	ActionUnknown ActionKind = "unknown"
)

// Action is a parsed callback payload.
type Action struct {
	Kind   ActionKind
	Height int    // set for ActionVideo
	Codec  string // set for ActionAudioFormat
}

// ParsePayload decodes the opaque callback payload into a typed action.
// Malformed payloads come back as ActionUnknown rather than an error so the
// router can acknowledge them uniformly.
func ParsePayload(data string) Action {
	// telebot prefixes unique-button payloads with \f.
	data = strings.TrimPrefix(data, "\f")

	switch {
	case data == format.DataAudioOnly:
		return Action{Kind: ActionAudio}
	case data == format.DataAgain:
		return Action{Kind: ActionAgain}
	case strings.HasPrefix(data, format.DataVideoPrefix):
		height, err := strconv.Atoi(strings.TrimPrefix(data, format.DataVideoPrefix))
		if err != nil || height <= 0 {
			return Action{Kind: ActionUnknown}
		}
		return Action{Kind: ActionVideo, Height: height}
	case strings.HasPrefix(data, format.DataAudioFormatPrefix):
		codec := strings.TrimPrefix(data, format.DataAudioFormatPrefix)
		if codec == "" {
			return Action{Kind: ActionUnknown}
		}
		return Action{Kind: ActionAudioFormat, Codec: codec}
	}
	return Action{Kind: ActionUnknown}
}

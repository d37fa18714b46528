package format

// Package format derives the selectable output variants offered on a prompt
// keyboard from extracted media metadata. It performs no network or blocking
// calls.

import (
	"fmt"
	"sort"
	"strings"

	"github.com/tubefetch/tubefetch/internal/model"
)

// Callback payload tokens shared between keyboard construction and routing.
const (
	DataVideoPrefix       = "video:"       // video:<height>
	DataAudioOnly         = "audio"        // audio-only fallback on video prompts
	DataAudioFormatPrefix = "audioformat:" // audioformat:<codec>
	DataAgain             = "again"        // rebuild the prompt
)

// Icons and the threshold separating them.
const (
	SmallScreenIcon      = "📺"
	LargeScreenIcon      = "🖥"
	LargeScreenMinHeight = 720
)

// AudioOnlyLabel is the trailing audio-only entry on video prompts.
const AudioOnlyLabel = "🎧 Только звук"

// qualityLabels maps common resolution heights to their display labels.
// Heights outside this table get a synthesized "<height>p <icon>" label.
var qualityLabels = map[int]string{
	144:  "144p 📺",
	240:  "240p 📺",
	360:  "360p 📺",
	480:  "480p 📺",
	720:  "720p 🖥",
	1080: "1080p 🖥",
	1440: "QHD 🖥",
	2160: "4K 🖥",
}

// Catalog builds ordered format option lists. The audio codec list comes
// from configuration.
type Catalog struct {
	audioCodecs []string
}

// NewCatalog creates a catalog offering the given audio output codecs.
func NewCatalog(audioCodecs []string) *Catalog {
	return &Catalog{audioCodecs: audioCodecs}
}

// VideoOptions returns the selectable variants for a video prompt: distinct
// resolution heights sorted descending, followed by the audio-only option.
func (c *Catalog) VideoOptions(md *model.Metadata) []model.FormatOption {
	heights := md.Heights()
	sort.Sort(sort.Reverse(sort.IntSlice(heights)))

	options := make([]model.FormatOption, 0, len(heights)+1)
	for _, h := range heights {
		options = append(options, model.FormatOption{
			Label:   labelForHeight(h),
			Quality: fmt.Sprintf("%d", h),
			Data:    fmt.Sprintf("%s%d", DataVideoPrefix, h),
		})
	}
	options = append(options, model.FormatOption{
		Label:   AudioOnlyLabel,
		Quality: c.DefaultAudioCodec(),
		Data:    DataAudioOnly,
	})
	return options
}

// AudioOptions returns the fixed, configuration-defined list of audio output
// codecs for a music prompt.
func (c *Catalog) AudioOptions() []model.FormatOption {
	options := make([]model.FormatOption, 0, len(c.audioCodecs))
	for _, codec := range c.audioCodecs {
		options = append(options, model.FormatOption{
			Label:   "🎧 " + strings.ToUpper(codec),
			Quality: codec,
			Data:    DataAudioFormatPrefix + codec,
		})
	}
	return options
}

// DefaultAudioCodec returns the codec used by the plain audio-only button.
func (c *Catalog) DefaultAudioCodec() string {
	if len(c.audioCodecs) == 0 {
		return "opus"
	}
	return c.audioCodecs[0]
}

// KnownAudioCodec reports whether the codec is one the catalog offers.
func (c *Catalog) KnownAudioCodec(codec string) bool {
	for _, known := range c.audioCodecs {
		if known == codec {
			return true
		}
	}
	return false
}

// labelForHeight maps a resolution height to its display label.
func labelForHeight(height int) string {
	if label, ok := qualityLabels[height]; ok {
		return label
	}
	icon := SmallScreenIcon
	if height >= LargeScreenMinHeight {
		icon = LargeScreenIcon
	}
	return fmt.Sprintf("%dp %s", height, icon)
}

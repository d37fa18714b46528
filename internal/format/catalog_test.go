package format

import (
	"testing"

	"github.com/tubefetch/tubefetch/internal/model"
)

func metadataWithHeights(heights ...int) *model.Metadata {
	md := &model.Metadata{}
	for _, h := range heights {
		md.Formats = append(md.Formats, model.FormatDescriptor{Height: h})
	}
	return md
}

func TestCatalog_VideoOptionsOrderAndLabels(t *testing.T) {
	c := NewCatalog([]string{"opus", "mp3"})
	// Duplicates and audio-only descriptors (height 0) must be dropped.
	md := metadataWithHeights(480, 1080, 0, 720, 480)

	options := c.VideoOptions(md)
	expected := []model.FormatOption{
		{Label: "1080p 🖥", Quality: "1080", Data: "video:1080"},
		{Label: "720p 🖥", Quality: "720", Data: "video:720"},
		{Label: "480p 📺", Quality: "480", Data: "video:480"},
		{Label: AudioOnlyLabel, Quality: "opus", Data: "audio"},
	}

	if len(options) != len(expected) {
		t.Fatalf("VideoOptions() returned %d options, expected %d", len(options), len(expected))
	}
	for i, want := range expected {
		if options[i] != want {
			t.Errorf("VideoOptions()[%d] = %+v, expected %+v", i, options[i], want)
		}
	}
}

func TestCatalog_VideoOptionsSynthesizedLabel(t *testing.T) {
	c := NewCatalog([]string{"opus"})

	tests := []struct {
		height   int
		expected string
	}{
		{900, "900p 🖥"}, // not in the fixed table, above the icon threshold
		{600, "600p 📺"},
		{2160, "4K 🖥"},
		{1440, "QHD 🖥"},
	}

	for _, test := range tests {
		options := c.VideoOptions(metadataWithHeights(test.height))
		if options[0].Label != test.expected {
			t.Errorf("label for %d = %q, expected %q", test.height, options[0].Label, test.expected)
		}
	}
}

func TestCatalog_VideoOptionsTrailingAudioEntry(t *testing.T) {
	c := NewCatalog([]string{"opus"})

	for _, heights := range [][]int{{}, {1080}, {144, 2160, 720}} {
		options := c.VideoOptions(metadataWithHeights(heights...))
		last := options[len(options)-1]
		if last.Data != DataAudioOnly || last.Label != AudioOnlyLabel {
			t.Errorf("heights %v: trailing option = %+v, expected audio-only entry", heights, last)
		}
	}
}

func TestCatalog_AudioOptions(t *testing.T) {
	c := NewCatalog([]string{"opus", "mp3", "m4a"})

	options := c.AudioOptions()
	expected := []model.FormatOption{
		{Label: "🎧 OPUS", Quality: "opus", Data: "audioformat:opus"},
		{Label: "🎧 MP3", Quality: "mp3", Data: "audioformat:mp3"},
		{Label: "🎧 M4A", Quality: "m4a", Data: "audioformat:m4a"},
	}

	if len(options) != len(expected) {
		t.Fatalf("AudioOptions() returned %d options, expected %d", len(options), len(expected))
	}
	for i, want := range expected {
		if options[i] != want {
			t.Errorf("AudioOptions()[%d] = %+v, expected %+v", i, options[i], want)
		}
	}
}

func TestCatalog_KnownAudioCodec(t *testing.T) {
	c := NewCatalog([]string{"opus", "mp3"})

	if !c.KnownAudioCodec("mp3") {
		t.Error("KnownAudioCodec(mp3) = false, expected true")
	}
	if c.KnownAudioCodec("flac") {
		t.Error("KnownAudioCodec(flac) = true, expected false")
	}
	if c.DefaultAudioCodec() != "opus" {
		t.Errorf("DefaultAudioCodec() = %q, expected opus", c.DefaultAudioCodec())
	}
}

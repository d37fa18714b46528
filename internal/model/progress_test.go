package model

import "testing"

func TestProgressSample_Percent(t *testing.T) {
	tests := []struct {
		downloaded int64
		total      int64
		expected   int
	}{
		{0, 100, 0},
		{50, 100, 50},
		{100, 100, 100},
		{1, 3, 33},
		{512, 0, 0},  // unknown total
		{512, -1, 0}, // negative total treated as unknown
	}

	for _, test := range tests {
		s := ProgressSample{Phase: PhaseDownloading, DownloadedBytes: test.downloaded, TotalBytes: test.total}
		result := s.Percent()
		if result != test.expected {
			t.Errorf("Percent(%d/%d) = %d, expected %d", test.downloaded, test.total, result, test.expected)
		}
	}
}

func TestMetadata_Heights(t *testing.T) {
	md := &Metadata{
		Formats: []FormatDescriptor{
			{ID: "f1", Height: 480},
			{ID: "f2", Height: 1080},
			{ID: "f3"}, // audio-only descriptor has no height
			{ID: "f4", Height: 480},
			{ID: "f5", Height: 720},
		},
	}

	heights := md.Heights()
	expected := []int{480, 1080, 720}
	if len(heights) != len(expected) {
		t.Fatalf("Heights() returned %d entries, expected %d", len(heights), len(expected))
	}
	for i, h := range expected {
		if heights[i] != h {
			t.Errorf("Heights()[%d] = %d, expected %d", i, heights[i], h)
		}
	}
}

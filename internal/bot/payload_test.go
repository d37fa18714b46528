package bot

import "testing"

func TestParsePayload(t *testing.T) {
	tests := []struct {
		name string
		data string
		want Action
	}{
		{"video with height", "video:1080", Action{Kind: ActionVideo, Height: 1080}},
		{"video low height", "video:144", Action{Kind: ActionVideo, Height: 144}},
		{"video with client prefix", "\fvideo:720", Action{Kind: ActionVideo, Height: 720}},
		{"audio only", "audio", Action{Kind: ActionAudio}},
		{"audio format", "audioformat:opus", Action{Kind: ActionAudioFormat, Codec: "opus"}},
		{"again", "again", Action{Kind: ActionAgain}},
		{"video non-numeric height", "video:best", Action{Kind: ActionUnknown}},
		{"video zero height", "video:0", Action{Kind: ActionUnknown}},
		{"video negative height", "video:-1", Action{Kind: ActionUnknown}},
		{"audio format empty codec", "audioformat:", Action{Kind: ActionUnknown}},
		{"empty payload", "", Action{Kind: ActionUnknown}},
		{"garbage", "definitely-not-a-thing", Action{Kind: ActionUnknown}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParsePayload(tt.data); got != tt.want {
				t.Errorf("ParsePayload(%q) = %+v, want %+v", tt.data, got, tt.want)
			}
		})
	}
}

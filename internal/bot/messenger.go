package bot

// Button is one inline control on an outbound message.
type Button struct {
	Label string
	Data  string
}

// Keyboard is a grid of inline controls.
type Keyboard [][]Button

// MsgRef identifies an already-sent chat message for later edits or
// deletion.
type MsgRef struct {
	ChatID    int64
	MessageID int
}

// VideoReply is an outbound video attachment.
type VideoReply struct {
	Path     string
	Caption  string
	Width    int
	Height   int
	Duration int // seconds
	Keyboard Keyboard
}

// AudioReply is an outbound audio attachment.
type AudioReply struct {
	Path          string
	Caption       string
	Title         string
	Performer     string
	ThumbnailPath string // optional
	Keyboard      Keyboard
}

// Messenger is the outbound boundary toward the chat protocol client. The
// router only ever talks to the chat platform through this interface.
type Messenger interface {
	SendText(chatID int64, text string, kb Keyboard) (MsgRef, error)
	SendPhoto(chatID int64, photoURL, caption string, kb Keyboard) (MsgRef, error)
	SendVideo(chatID int64, reply VideoReply) (MsgRef, error)
	SendAudio(chatID int64, reply AudioReply) (MsgRef, error)
	EditText(ref MsgRef, text string) error
	ClearKeyboard(ref MsgRef) error
	Delete(ref MsgRef) error
	AnswerCallback(callbackID, text string, alert bool) error
}

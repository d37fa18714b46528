package bot

// Package bot contains the chat-facing side of the application: the request
// router driving the conversation state machine, the Messenger boundary over
// the chat protocol client, the telebot adapter implementing it, and the
// localized user-facing texts.

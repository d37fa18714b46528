package model

// Package model defines domain data structures used across the bot: sessions,
// extracted media metadata, format options, transfer states, progress events,
// and the error taxonomy. Structures are designed for durable JSON encoding
// and explicit state transitions.

package store

// Package store persists bot state in SQLite: the session table binding
// conversation prompts to pending choices, and the append-only registry of
// known user ids. All updates are single-row statements, so concurrent
// writers on different keys cannot lose each other's changes.

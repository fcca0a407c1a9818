// Package player defines the boundary to the external music player.
//
// maestro never speaks a player wire protocol itself; the hosting
// application supplies implementations of Controller and Library (for MPD,
// Mopidy, or anything else) and the dispatcher drives them. Implementations
// must tolerate repeated calls: re-playing, re-pausing, and re-setting the
// same volume are all safe, and toggling a mode twice restores its original
// state.
package player

import "time"

// Track is the minimal record the pipeline needs about a piece of music.
// ID must be stable across searches so results can be de-duplicated and
// queued reliably.
type Track struct {
	ID       string
	Title    string
	Artist   string
	Album    string
	Genre    string
	Duration time.Duration
}

// Controller mutates and inspects the external player's state.
//
// Every mutating call may fail if the player is disconnected; callers are
// expected to surface that per call rather than abort a batch. SetVolume
// implementations clamp out-of-range values into [0,100] rather than error,
// though validated tool calls never carry them.
type Controller interface {
	// Play starts playback, at the given zero-based queue position when
	// position >= 0, or wherever playback left off when position < 0.
	Play(position int) error
	Pause() error
	Stop() error
	Next() error
	Previous() error
	SetVolume(level int) error

	// Toggle flips one of the player modes: "repeat", "random", "single"
	// or "consume". Returns the new state of the mode.
	Toggle(mode string) (bool, error)

	Queue() ([]Track, error)
	AddToQueue(trackID string) error
	ClearQueue() error
}

// Library searches the music collection.
//
// field is one of "artist", "album", "title", "genre" or "any". An empty
// result is returned as an empty slice, never as an error; callers must
// treat "nothing found" as a normal outcome.
type Library interface {
	Search(field, query string) ([]Track, error)
}

// Package playertest provides in-memory Controller and Library
// implementations for tests and embedding demos.
package playertest

import (
	"fmt"
	"strings"
	"sync"

	"maestro/player"
)

// FakePlayer implements player.Controller entirely in memory.
//
// Every method can be made to fail by setting FailWith, which makes
// disconnected-player scenarios easy to simulate. Calls are recorded in
// Calls for assertion.
type FakePlayer struct {
	mu sync.Mutex

	FailWith error // when non-nil, every call returns this error

	Playing  bool
	Position int
	Volume   int
	Modes    map[string]bool
	Items    []player.Track
	Calls    []string
}

// NewFakePlayer returns a stopped player with an empty queue and volume 50.
func NewFakePlayer() *FakePlayer {
	return &FakePlayer{
		Volume: 50,
		Modes:  map[string]bool{},
	}
}

func (f *FakePlayer) record(call string) error {
	f.Calls = append(f.Calls, call)
	return f.FailWith
}

func (f *FakePlayer) Play(position int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record(fmt.Sprintf("play(%d)", position)); err != nil {
		return err
	}
	f.Playing = true
	if position >= 0 {
		f.Position = position
	}
	return nil
}

func (f *FakePlayer) Pause() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("pause"); err != nil {
		return err
	}
	f.Playing = false
	return nil
}

func (f *FakePlayer) Stop() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("stop"); err != nil {
		return err
	}
	f.Playing = false
	f.Position = 0
	return nil
}

func (f *FakePlayer) Next() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("next"); err != nil {
		return err
	}
	f.Position++
	return nil
}

func (f *FakePlayer) Previous() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("previous"); err != nil {
		return err
	}
	if f.Position > 0 {
		f.Position--
	}
	return nil
}

func (f *FakePlayer) SetVolume(level int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record(fmt.Sprintf("setvolume(%d)", level)); err != nil {
		return err
	}
	// Clamp like a real player would.
	if level < 0 {
		level = 0
	}
	if level > 100 {
		level = 100
	}
	f.Volume = level
	return nil
}

func (f *FakePlayer) Toggle(mode string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("toggle(" + mode + ")"); err != nil {
		return false, err
	}
	f.Modes[mode] = !f.Modes[mode]
	return f.Modes[mode], nil
}

func (f *FakePlayer) Queue() ([]player.Track, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("queue"); err != nil {
		return nil, err
	}
	out := make([]player.Track, len(f.Items))
	copy(out, f.Items)
	return out, nil
}

func (f *FakePlayer) AddToQueue(trackID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("add(" + trackID + ")"); err != nil {
		return err
	}
	f.Items = append(f.Items, player.Track{ID: trackID})
	return nil
}

func (f *FakePlayer) ClearQueue() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("clear"); err != nil {
		return err
	}
	f.Items = nil
	return nil
}

// FakeLibrary implements player.Library over a fixed track list with
// case-insensitive substring matching, which is close enough to how MPD
// tag searches behave for pipeline tests.
type FakeLibrary struct {
	Tracks   []player.Track
	FailWith error
}

func (l *FakeLibrary) Search(field, query string) ([]player.Track, error) {
	if l.FailWith != nil {
		return nil, l.FailWith
	}

	q := strings.ToLower(query)
	var out []player.Track
	for _, t := range l.Tracks {
		if matches(t, field, q) {
			out = append(out, t)
		}
	}
	if out == nil {
		out = []player.Track{}
	}
	return out, nil
}

func matches(t player.Track, field, q string) bool {
	contains := func(s string) bool {
		return strings.Contains(strings.ToLower(s), q)
	}
	switch field {
	case "artist":
		return contains(t.Artist)
	case "album":
		return contains(t.Album)
	case "title":
		return contains(t.Title)
	case "genre":
		return contains(t.Genre)
	default: // "any"
		return contains(t.Artist) || contains(t.Album) || contains(t.Title) || contains(t.Genre)
	}
}

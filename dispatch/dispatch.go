// Package dispatch executes validated tool calls against the external
// player and turns their outcomes into human-readable summaries.
package dispatch

import (
	"context"
	"fmt"
	"strings"

	"maestro/config"
	"maestro/model"
	"maestro/player"
	"maestro/tools"
)

// CallError records the failure of a single tool call. It is data, not a
// thrown error: one bad call never aborts the rest of its batch.
type CallError struct {
	Tool string
	Err  error
}

func (e CallError) Error() string {
	return fmt.Sprintf("%s: %v", e.Tool, e.Err)
}

// Result aggregates one batch. Summaries and Errors together cover every
// call, in the order the calls arrived.
type Result struct {
	Summaries []string
	Errors    []CallError
}

// Recorder observes executed tool calls, e.g. for the command journal.
// A nil recorder is valid and means no journaling.
type Recorder interface {
	Record(tool string, args map[string]any, summary string, callErr error)
}

// Dispatcher maps tool names onto player operations.
//
// It owns no state beyond its collaborators; handlers are idempotent or at
// least safe to repeat (re-pausing a paused player is a no-op, re-toggling
// a mode twice restores it).
type Dispatcher struct {
	ctrl     player.Controller
	library  player.Library
	gen      *PlaylistGenerator
	recorder Recorder
}

// NewDispatcher wires a dispatcher to a player and its library.
func NewDispatcher(ctrl player.Controller, library player.Library) *Dispatcher {
	return &Dispatcher{
		ctrl:    ctrl,
		library: library,
		gen:     NewPlaylistGenerator(library),
	}
}

// WithRecorder attaches a command journal. Returns the dispatcher for
// chaining.
func (d *Dispatcher) WithRecorder(r Recorder) *Dispatcher {
	d.recorder = r
	return d
}

// Generator exposes the playlist generator, mainly for tests that want a
// deterministic shuffle source.
func (d *Dispatcher) Generator() *PlaylistGenerator {
	return d.gen
}

// Execute runs tool calls strictly in the order received, since order
// matters ("clear the queue, then play X"), with each call isolated: a
// failure or panic in one handler is captured as a CallError and iteration
// continues with the next call.
func (d *Dispatcher) Execute(ctx context.Context, calls []model.ToolCall) Result {
	var result Result

	for _, call := range calls {
		summary, err := d.dispatchSafe(ctx, call)

		if d.recorder != nil {
			d.recorder.Record(call.Name, call.Arguments, summary, err)
		}

		if err != nil {
			result.Errors = append(result.Errors, CallError{Tool: call.Name, Err: err})
			if config.Debug && config.DebugLog != nil {
				config.DebugLog.Printf("[dispatch] %s failed: %v", call.Name, err)
			}
			continue
		}
		result.Summaries = append(result.Summaries, summary)
	}

	return result
}

// dispatchSafe shields the batch from handler panics.
func (d *Dispatcher) dispatchSafe(ctx context.Context, call model.ToolCall) (summary string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("handler panicked: %v", r)
		}
	}()
	return d.dispatch(ctx, call)
}

func (d *Dispatcher) dispatch(ctx context.Context, call model.ToolCall) (string, error) {
	switch call.Name {
	case tools.ToolSearchLibrary:
		return d.handleSearch(call.Arguments)
	case tools.ToolPlay:
		return d.handlePlay(call.Arguments)
	case tools.ToolPlaybackControl:
		return d.handleControl(call.Arguments)
	case tools.ToolSetVolume:
		return d.handleSetVolume(call.Arguments)
	case tools.ToolToggleMode:
		return d.handleToggleMode(call.Arguments)
	case tools.ToolAddToQueue:
		return d.handleAddToQueue(call.Arguments)
	case tools.ToolGetQueue:
		return d.handleGetQueue()
	case tools.ToolClearQueue:
		return d.handleClearQueue(call.Arguments)
	case tools.ToolCreatePlaylist:
		return d.handleCreatePlaylist(call.Arguments)
	default:
		// Unreachable for calls produced by the normalizer; kept as a
		// guard for direct callers.
		return "", fmt.Errorf("no handler for tool %q", call.Name)
	}
}

func (d *Dispatcher) handleSearch(args map[string]any) (string, error) {
	req := searchArgs{Field: "any"}
	if err := decodeArgs(args, &req); err != nil {
		return "", err
	}

	found, err := d.library.Search(req.Field, req.Query)
	if err != nil {
		return "", fmt.Errorf("library search failed: %w", err)
	}
	if len(found) == 0 {
		return fmt.Sprintf("No tracks found matching %q.", req.Query), nil
	}

	return fmt.Sprintf("Found %d track(s) matching %q:\n%s",
		len(found), req.Query, formatTracks(found, 5)), nil
}

func (d *Dispatcher) handlePlay(args map[string]any) (string, error) {
	req := playArgs{Position: -1}
	if err := decodeArgs(args, &req); err != nil {
		return "", err
	}

	if err := d.ctrl.Play(req.Position); err != nil {
		return "", fmt.Errorf("failed to start playback: %w", err)
	}
	if req.Position >= 0 {
		return fmt.Sprintf("Playing from queue position %d.", req.Position), nil
	}
	return "Playback started.", nil
}

func (d *Dispatcher) handleControl(args map[string]any) (string, error) {
	var req controlArgs
	if err := decodeArgs(args, &req); err != nil {
		return "", err
	}

	var err error
	switch req.Action {
	case "pause":
		err = d.ctrl.Pause()
	case "stop":
		err = d.ctrl.Stop()
	case "next":
		err = d.ctrl.Next()
	case "previous":
		err = d.ctrl.Previous()
	default:
		return "", fmt.Errorf("unknown playback action %q", req.Action)
	}
	if err != nil {
		return "", fmt.Errorf("%s failed: %w", req.Action, err)
	}

	return fmt.Sprintf("Playback: %s.", req.Action), nil
}

func (d *Dispatcher) handleSetVolume(args map[string]any) (string, error) {
	var req volumeArgs
	if err := decodeArgs(args, &req); err != nil {
		return "", err
	}

	if err := d.ctrl.SetVolume(req.Volume); err != nil {
		return "", fmt.Errorf("failed to set volume: %w", err)
	}
	return fmt.Sprintf("Volume set to %d%%.", req.Volume), nil
}

func (d *Dispatcher) handleToggleMode(args map[string]any) (string, error) {
	var req toggleArgs
	if err := decodeArgs(args, &req); err != nil {
		return "", err
	}

	on, err := d.ctrl.Toggle(req.Mode)
	if err != nil {
		return "", fmt.Errorf("failed to toggle %s: %w", req.Mode, err)
	}

	state := "off"
	if on {
		state = "on"
	}
	return fmt.Sprintf("%s is now %s.", req.Mode, state), nil
}

// maxQueueAdd caps how many search matches one add_to_queue call may
// queue, so a broad query cannot flood the queue.
const maxQueueAdd = 25

func (d *Dispatcher) handleAddToQueue(args map[string]any) (string, error) {
	req := queueAddArgs{Field: "any"}
	if err := decodeArgs(args, &req); err != nil {
		return "", err
	}

	found, err := d.library.Search(req.Field, req.Query)
	if err != nil {
		return "", fmt.Errorf("library search failed: %w", err)
	}
	if len(found) == 0 {
		return fmt.Sprintf("No tracks found matching %q; queue unchanged.", req.Query), nil
	}

	if len(found) > maxQueueAdd {
		found = found[:maxQueueAdd]
	}

	added := 0
	for _, t := range found {
		if err := d.ctrl.AddToQueue(t.ID); err != nil {
			return "", fmt.Errorf("queued %d of %d track(s), then failed: %w", added, len(found), err)
		}
		added++
	}

	if added == 1 {
		return fmt.Sprintf("Queued %s — %s.", found[0].Artist, found[0].Title), nil
	}
	return fmt.Sprintf("Queued %d track(s) matching %q.", added, req.Query), nil
}

func (d *Dispatcher) handleGetQueue() (string, error) {
	queue, err := d.ctrl.Queue()
	if err != nil {
		return "", fmt.Errorf("failed to read queue: %w", err)
	}
	if len(queue) == 0 {
		return "The queue is empty.", nil
	}

	return fmt.Sprintf("Queue has %d track(s):\n%s", len(queue), formatTracks(queue, 10)), nil
}

func (d *Dispatcher) handleClearQueue(args map[string]any) (string, error) {
	var req clearArgs
	if err := decodeArgs(args, &req); err != nil {
		return "", err
	}

	// Affirmative gate: clearing is destructive, so anything short of an
	// explicit confirm=true is a no-op that says why.
	if !req.Confirm {
		return "Queue left untouched: clearing it requires confirmation.", nil
	}

	if err := d.ctrl.ClearQueue(); err != nil {
		return "", fmt.Errorf("failed to clear queue: %w", err)
	}
	return "Queue cleared.", nil
}

func (d *Dispatcher) handleCreatePlaylist(args map[string]any) (string, error) {
	req := playlistArgs{Length: DefaultPlaylistLength}
	if err := decodeArgs(args, &req); err != nil {
		return "", err
	}

	generated, err := d.gen.Generate(Criteria{
		Description: req.Description,
		Length:      req.Length,
		Shuffle:     req.Shuffle,
	})
	if err != nil {
		return "", fmt.Errorf("playlist generation failed: %w", err)
	}
	if len(generated) == 0 {
		return fmt.Sprintf("Could not find any tracks matching %q; queue unchanged.", req.Description), nil
	}

	queued := 0
	for _, t := range generated {
		if err := d.ctrl.AddToQueue(t.ID); err != nil {
			return "", fmt.Errorf("queued %d of %d playlist track(s), then failed: %w", queued, len(generated), err)
		}
		queued++
	}

	summary := fmt.Sprintf("Queued a %d-track playlist for %q.", queued, req.Description)
	if queued < req.Length {
		summary += fmt.Sprintf(" (Only %d matching track(s) in the library.)", queued)
	}
	return summary, nil
}

// formatTracks renders up to limit tracks as "Artist — Title" lines.
func formatTracks(tracks []player.Track, limit int) string {
	var b strings.Builder
	for i, t := range tracks {
		if i == limit {
			fmt.Fprintf(&b, "\n  … and %d more", len(tracks)-limit)
			break
		}
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "  %s — %s", t.Artist, t.Title)
	}
	return b.String()
}

package dispatch_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"maestro/dispatch"
	"maestro/model"
	"maestro/player"
	"maestro/player/playertest"
	"maestro/tools"
)

func testLibrary() *playertest.FakeLibrary {
	return &playertest.FakeLibrary{Tracks: []player.Track{
		{ID: "1", Title: "So What", Artist: "Miles Davis", Album: "Kind of Blue", Genre: "Jazz"},
		{ID: "2", Title: "Blue in Green", Artist: "Miles Davis", Album: "Kind of Blue", Genre: "Jazz"},
		{ID: "3", Title: "Take Five", Artist: "Dave Brubeck", Album: "Time Out", Genre: "Jazz"},
		{ID: "4", Title: "Paranoid Android", Artist: "Radiohead", Album: "OK Computer", Genre: "Rock"},
	}}
}

func call(name string, args map[string]any) model.ToolCall {
	if args == nil {
		args = map[string]any{}
	}
	return model.ToolCall{Name: name, Arguments: args}
}

func TestExecuteRunsCallsInOrder(t *testing.T) {
	fake := playertest.NewFakePlayer()
	d := dispatch.NewDispatcher(fake, testLibrary())

	result := d.Execute(context.Background(), []model.ToolCall{
		call(tools.ToolClearQueue, map[string]any{"confirm": true}),
		call(tools.ToolAddToQueue, map[string]any{"field": "artist", "query": "miles"}),
		call(tools.ToolPlay, nil),
	})

	if len(result.Errors) != 0 {
		t.Fatalf("Errors = %v, want none", result.Errors)
	}
	if len(result.Summaries) != 3 {
		t.Fatalf("len(Summaries) = %d, want 3", len(result.Summaries))
	}

	// Player saw clear before the adds, and play last.
	if fake.Calls[0] != "clear" {
		t.Errorf("first player call = %q, want clear", fake.Calls[0])
	}
	if last := fake.Calls[len(fake.Calls)-1]; last != "play(-1)" {
		t.Errorf("last player call = %q, want play(-1)", last)
	}
	if len(fake.Items) != 2 {
		t.Errorf("queue has %d track(s), want 2", len(fake.Items))
	}
}

func TestExecuteIsolatesFailures(t *testing.T) {
	fake := playertest.NewFakePlayer()
	lib := testLibrary()
	lib.FailWith = errors.New("mpd connection lost")
	d := dispatch.NewDispatcher(fake, lib)

	result := d.Execute(context.Background(), []model.ToolCall{
		call(tools.ToolSetVolume, map[string]any{"volume": 40}),
		call(tools.ToolSearchLibrary, map[string]any{"field": "any", "query": "jazz"}), // fails
		call(tools.ToolPlaybackControl, map[string]any{"action": "pause"}),
	})

	if len(result.Summaries) != 2 {
		t.Fatalf("len(Summaries) = %d, want 2 (calls around the failure still ran)", len(result.Summaries))
	}
	if len(result.Errors) != 1 {
		t.Fatalf("len(Errors) = %d, want 1", len(result.Errors))
	}
	if result.Errors[0].Tool != tools.ToolSearchLibrary {
		t.Errorf("failed tool = %s, want %s", result.Errors[0].Tool, tools.ToolSearchLibrary)
	}
	if fake.Volume != 40 {
		t.Errorf("Volume = %d, want 40", fake.Volume)
	}
	if fake.Playing {
		t.Error("player still playing, pause after the failure did not run")
	}
}

func TestExecuteUnknownToolIsCollected(t *testing.T) {
	d := dispatch.NewDispatcher(playertest.NewFakePlayer(), testLibrary())

	result := d.Execute(context.Background(), []model.ToolCall{
		call("fetch_weather", nil),
	})

	if len(result.Errors) != 1 {
		t.Fatalf("len(Errors) = %d, want 1", len(result.Errors))
	}
}

func TestClearQueueRequiresConfirmation(t *testing.T) {
	fake := playertest.NewFakePlayer()
	fake.Items = []player.Track{{ID: "1"}, {ID: "2"}}
	d := dispatch.NewDispatcher(fake, testLibrary())

	result := d.Execute(context.Background(), []model.ToolCall{
		call(tools.ToolClearQueue, map[string]any{"confirm": false}),
	})

	if len(result.Errors) != 0 {
		t.Fatalf("unconfirmed clear reported an error: %v", result.Errors)
	}
	if len(fake.Items) != 2 {
		t.Errorf("queue has %d track(s), want 2 (unconfirmed clear must be a no-op)", len(fake.Items))
	}
	if !strings.Contains(result.Summaries[0], "confirmation") {
		t.Errorf("summary = %q, should say confirmation is required", result.Summaries[0])
	}
}

func TestToggleModeReportsNewState(t *testing.T) {
	fake := playertest.NewFakePlayer()
	d := dispatch.NewDispatcher(fake, testLibrary())

	result := d.Execute(context.Background(), []model.ToolCall{
		call(tools.ToolToggleMode, map[string]any{"mode": "random"}),
	})

	if len(result.Summaries) != 1 {
		t.Fatalf("Summaries = %v", result.Summaries)
	}
	if !strings.Contains(result.Summaries[0], "random is now on") {
		t.Errorf("summary = %q, want random reported on", result.Summaries[0])
	}
	if !fake.Modes["random"] {
		t.Error("random mode not toggled on")
	}
}

func TestSearchReportsMatches(t *testing.T) {
	d := dispatch.NewDispatcher(playertest.NewFakePlayer(), testLibrary())

	result := d.Execute(context.Background(), []model.ToolCall{
		call(tools.ToolSearchLibrary, map[string]any{"field": "genre", "query": "jazz"}),
		call(tools.ToolSearchLibrary, map[string]any{"field": "artist", "query": "coltrane"}),
	})

	if len(result.Summaries) != 2 {
		t.Fatalf("Summaries = %v", result.Summaries)
	}
	if !strings.Contains(result.Summaries[0], "Found 3 track(s)") {
		t.Errorf("summary = %q, want 3 jazz matches", result.Summaries[0])
	}
	// No matches is a valid answer, not an error.
	if !strings.Contains(result.Summaries[1], "No tracks found") {
		t.Errorf("summary = %q, want a no-matches notice", result.Summaries[1])
	}
}

func TestAddToQueueEmptyResultLeavesQueueUnchanged(t *testing.T) {
	fake := playertest.NewFakePlayer()
	d := dispatch.NewDispatcher(fake, testLibrary())

	result := d.Execute(context.Background(), []model.ToolCall{
		call(tools.ToolAddToQueue, map[string]any{"query": "polka"}),
	})

	if len(result.Errors) != 0 {
		t.Fatalf("empty search reported an error: %v", result.Errors)
	}
	if len(fake.Items) != 0 {
		t.Errorf("queue has %d track(s), want 0", len(fake.Items))
	}
}

func TestGetQueue(t *testing.T) {
	fake := playertest.NewFakePlayer()
	d := dispatch.NewDispatcher(fake, testLibrary())

	empty := d.Execute(context.Background(), []model.ToolCall{call(tools.ToolGetQueue, nil)})
	if !strings.Contains(empty.Summaries[0], "empty") {
		t.Errorf("summary = %q, want empty-queue notice", empty.Summaries[0])
	}

	fake.Items = []player.Track{
		{ID: "1", Title: "So What", Artist: "Miles Davis"},
	}
	full := d.Execute(context.Background(), []model.ToolCall{call(tools.ToolGetQueue, nil)})
	if !strings.Contains(full.Summaries[0], "1 track(s)") || !strings.Contains(full.Summaries[0], "Miles Davis") {
		t.Errorf("summary = %q", full.Summaries[0])
	}
}

type recordingJournal struct {
	tools     []string
	summaries []string
	errs      []error
}

func (r *recordingJournal) Record(tool string, args map[string]any, summary string, callErr error) {
	r.tools = append(r.tools, tool)
	r.summaries = append(r.summaries, summary)
	r.errs = append(r.errs, callErr)
}

func TestRecorderSeesEveryCall(t *testing.T) {
	fake := playertest.NewFakePlayer()
	fake.FailWith = errors.New("player gone")
	journal := &recordingJournal{}
	d := dispatch.NewDispatcher(fake, testLibrary()).WithRecorder(journal)

	d.Execute(context.Background(), []model.ToolCall{
		call(tools.ToolSearchLibrary, map[string]any{"field": "genre", "query": "jazz"}), // succeeds
		call(tools.ToolPlay, nil), // fails
	})

	if len(journal.tools) != 2 {
		t.Fatalf("recorder saw %d call(s), want 2", len(journal.tools))
	}
	if journal.errs[0] != nil {
		t.Errorf("first call recorded error %v, want nil", journal.errs[0])
	}
	if journal.errs[1] == nil {
		t.Error("second call recorded no error, want one")
	}
}

func TestCreatePlaylistQueuesGeneratedTracks(t *testing.T) {
	fake := playertest.NewFakePlayer()
	d := dispatch.NewDispatcher(fake, testLibrary())
	d.Generator().SeedShuffle(1)

	result := d.Execute(context.Background(), []model.ToolCall{
		call(tools.ToolCreatePlaylist, map[string]any{"description": "relaxing jazz", "length": 2}),
	})

	if len(result.Errors) != 0 {
		t.Fatalf("Errors = %v", result.Errors)
	}
	if len(fake.Items) != 2 {
		t.Errorf("queue has %d track(s), want 2", len(fake.Items))
	}
	if !strings.Contains(result.Summaries[0], "2-track playlist") {
		t.Errorf("summary = %q", result.Summaries[0])
	}
}

// Package tools declares maestro's fixed tool vocabulary and validates
// arguments against it.
//
// Every operation the AI may request against the player is declared here
// once, as an MCP tool definition with an explicit JSON Schema for its
// parameters. The registry is immutable after construction and safe for
// unsynchronized concurrent reads; validation is a pure function over the
// compiled schemas.
package tools

import (
	mcptypes "github.com/mark3labs/mcp-go/mcp"
)

// Tool names understood by the dispatcher. Anything outside this set is
// rejected by Validate and never reaches a handler.
const (
	ToolSearchLibrary   = "search_library"
	ToolPlay            = "play"
	ToolPlaybackControl = "playback_control"
	ToolSetVolume       = "set_volume"
	ToolToggleMode      = "toggle_mode"
	ToolAddToQueue      = "add_to_queue"
	ToolGetQueue        = "get_queue"
	ToolClearQueue      = "clear_queue"
	ToolCreatePlaylist  = "create_playlist"
)

// SearchFields are the legal values for a library search "field" argument.
var SearchFields = []string{"artist", "album", "title", "genre", "any"}

// PlayerModes are the toggleable player settings.
var PlayerModes = []string{"repeat", "random", "single", "consume"}

// playbackActions are the transport actions besides play (which takes an
// optional queue position and is its own tool).
var playbackActions = []string{"pause", "stop", "next", "previous"}

// definitions builds the full tool vocabulary. Called once per Registry.
func definitions() []mcptypes.Tool {
	return []mcptypes.Tool{
		mcptypes.NewTool(ToolSearchLibrary,
			mcptypes.WithDescription("Search the music library for tracks. Use this before playing or queueing specific music."),
			mcptypes.WithString("field",
				mcptypes.Required(),
				mcptypes.Enum(SearchFields...),
				mcptypes.Description("Which track attribute to match the query against. Use 'any' when unsure."),
			),
			mcptypes.WithString("query",
				mcptypes.Required(),
				mcptypes.Description("The text to search for, e.g. an artist name or song title."),
			),
		),
		mcptypes.NewTool(ToolPlay,
			mcptypes.WithDescription("Start or resume playback. Optionally jump to a specific position in the queue."),
			mcptypes.WithNumber("position",
				mcptypes.Min(0),
				mcptypes.Description("Zero-based queue position to start from. Omit to resume where playback left off."),
			),
		),
		mcptypes.NewTool(ToolPlaybackControl,
			mcptypes.WithDescription("Control playback transport: pause, stop, or skip between tracks."),
			mcptypes.WithString("action",
				mcptypes.Required(),
				mcptypes.Enum(playbackActions...),
				mcptypes.Description("The transport action to perform."),
			),
		),
		mcptypes.NewTool(ToolSetVolume,
			mcptypes.WithDescription("Set the player volume to an absolute level."),
			mcptypes.WithNumber("volume",
				mcptypes.Required(),
				mcptypes.Min(0),
				mcptypes.Max(100),
				mcptypes.Description("Volume level from 0 (mute) to 100 (maximum)."),
			),
		),
		mcptypes.NewTool(ToolToggleMode,
			mcptypes.WithDescription("Toggle a player mode on or off. Toggling twice restores the original state."),
			mcptypes.WithString("mode",
				mcptypes.Required(),
				mcptypes.Enum(PlayerModes...),
				mcptypes.Description("The player mode to toggle."),
			),
		),
		mcptypes.NewTool(ToolAddToQueue,
			mcptypes.WithDescription("Search the library and add the best matching tracks to the play queue."),
			mcptypes.WithString("field",
				mcptypes.Enum(SearchFields...),
				mcptypes.Description("Which track attribute to match. Defaults to 'any'."),
			),
			mcptypes.WithString("query",
				mcptypes.Required(),
				mcptypes.Description("The music to look for, e.g. 'Kind of Blue' or 'Miles Davis'."),
			),
		),
		mcptypes.NewTool(ToolGetQueue,
			mcptypes.WithDescription("List the tracks currently in the play queue."),
		),
		mcptypes.NewTool(ToolClearQueue,
			mcptypes.WithDescription("Remove every track from the play queue. Destructive; requires confirmation."),
			mcptypes.WithBoolean("confirm",
				mcptypes.Required(),
				mcptypes.Description("Must be true to actually clear the queue. False leaves the queue untouched."),
			),
		),
		mcptypes.NewTool(ToolCreatePlaylist,
			mcptypes.WithDescription("Generate a playlist from a free-form description of mood, genre, activity or theme, and queue it."),
			mcptypes.WithString("description",
				mcptypes.Required(),
				mcptypes.Description("What the playlist should feel like, e.g. 'relaxing jazz for a rainy evening'."),
			),
			mcptypes.WithNumber("length",
				mcptypes.Min(1),
				mcptypes.Description("Desired number of tracks. Defaults to 20."),
			),
			mcptypes.WithBoolean("shuffle",
				mcptypes.Description("Shuffle the generated playlist before queueing. Defaults to false."),
			),
		),
	}
}

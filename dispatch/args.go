package dispatch

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// Typed argument structs for each handler. Arguments arriving here have
// already passed registry validation; decoding them into structs keeps the
// handlers free of map plumbing. Defaults are preset on the struct before
// decoding, so absent optional fields keep them.

type searchArgs struct {
	Field string `mapstructure:"field"`
	Query string `mapstructure:"query"`
}

type playArgs struct {
	Position int `mapstructure:"position"`
}

type controlArgs struct {
	Action string `mapstructure:"action"`
}

type volumeArgs struct {
	Volume int `mapstructure:"volume"`
}

type toggleArgs struct {
	Mode string `mapstructure:"mode"`
}

type queueAddArgs struct {
	Field string `mapstructure:"field"`
	Query string `mapstructure:"query"`
}

type clearArgs struct {
	Confirm bool `mapstructure:"confirm"`
}

type playlistArgs struct {
	Description string `mapstructure:"description"`
	Length      int    `mapstructure:"length"`
	Shuffle     bool   `mapstructure:"shuffle"`
}

// decodeArgs decodes a validated argument map into a typed struct.
// WeaklyTypedInput handles JSON's habit of delivering every number as a
// float64 even when the schema says integer.
func decodeArgs(args map[string]any, out any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return fmt.Errorf("failed to build argument decoder: %w", err)
	}
	if err := decoder.Decode(args); err != nil {
		return fmt.Errorf("invalid arguments: %w", err)
	}
	return nil
}

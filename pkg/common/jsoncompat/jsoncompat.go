// Package jsoncompat hides the JSON implementation behind a build tag.
// sonic is used by default, build with -tags stdjson for encoding/json.
package jsoncompat

import "encoding/json"

// RawMessage is understood by both implementations.
type RawMessage = json.RawMessage

type Encoder interface {
	Encode(v any) error
}

type Decoder interface {
	Decode(v any) error
}

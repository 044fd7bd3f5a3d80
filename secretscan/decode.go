// Copyright 2025 The Witness Contributors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package secretscan

import (
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

// DecodeResult is the outcome of decoding a byte segment. A degraded result
// carries no text; callers render it with String, which yields
// DecodeErrorSentinel.
type DecodeResult struct {
	Text     string
	Degraded bool
}

// String returns the decoded text, or DecodeErrorSentinel if decoding degraded.
func (r DecodeResult) String() string {
	if r.Degraded {
		return DecodeErrorSentinel
	}

	return r.Text
}

// Decoder turns raw bytes into text. Implementations must never panic or fail;
// anything they cannot handle is reported as a degraded result.
type Decoder interface {
	Decode(b []byte) DecodeResult
}

// DecoderFunc adapts a function to the Decoder interface.
type DecoderFunc func(b []byte) DecodeResult

func (f DecoderFunc) Decode(b []byte) DecodeResult {
	return f(b)
}

var nonASCII = runes.Predicate(func(r rune) bool {
	return r > unicode.MaxASCII
})

type asciiDecoder struct {
	strict bool
}

// ASCII returns the default decoder: single byte ASCII where every byte that
// is not a valid ASCII character is dropped.
func ASCII() Decoder {
	return asciiDecoder{}
}

// StrictASCII returns an ASCII decoder that degrades the whole segment as soon
// as it sees a byte outside the ASCII range.
func StrictASCII() Decoder {
	return asciiDecoder{strict: true}
}

func (d asciiDecoder) Decode(b []byte) DecodeResult {
	if d.strict {
		for _, c := range b {
			if c > unicode.MaxASCII {
				return DecodeResult{Degraded: true}
			}
		}

		return DecodeResult{Text: string(b)}
	}

	// invalid UTF-8 reaches the predicate as utf8.RuneError and is removed with the rest
	out, _, err := transform.Bytes(runes.Remove(nonASCII), b)
	if err != nil {
		return DecodeResult{Degraded: true}
	}

	return DecodeResult{Text: string(out)}
}

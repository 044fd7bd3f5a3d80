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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestASCIIDecoder(t *testing.T) {
	testCases := []struct {
		name     string
		input    []byte
		expected string
	}{
		{"plain ascii", []byte("key=value"), "key=value"},
		{"empty", []byte{}, ""},
		{"nil", nil, ""},
		{"invalid bytes dropped", []byte("ab\xffcd\xfe"), "abcd"},
		{"multibyte utf8 dropped", []byte("caf\xc3\xa9!"), "caf!"},
		{"truncated utf8 at end", []byte("abc\xe2\x82"), "abc"},
		{"only invalid", []byte{0x80, 0x81, 0xff}, ""},
	}

	decoder := ASCII()
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			result := decoder.Decode(tc.input)
			assert.False(t, result.Degraded)
			assert.Equal(t, tc.expected, result.String())
		})
	}
}

func TestStrictASCIIDecoder(t *testing.T) {
	decoder := StrictASCII()

	ok := decoder.Decode([]byte("password=hunter2"))
	assert.False(t, ok.Degraded)
	assert.Equal(t, "password=hunter2", ok.String())

	bad := decoder.Decode([]byte("password=\xffhunter2"))
	assert.True(t, bad.Degraded)
	assert.Empty(t, bad.Text)
	assert.Equal(t, DecodeErrorSentinel, bad.String())
}

func TestDecodeNeverPanics(t *testing.T) {
	all := make([]byte, 256)
	for i := range all {
		all[i] = byte(i)
	}

	for _, decoder := range []Decoder{ASCII(), StrictASCII()} {
		assert.NotPanics(t, func() {
			for i := 0; i < len(all); i++ {
				s := decoder.Decode(all[i:]).String()
				if s != DecodeErrorSentinel {
					for _, r := range s {
						assert.LessOrEqual(t, r, rune(0x7f))
					}
				}
			}
		})
	}
}

func TestDecoderFunc(t *testing.T) {
	d := DecoderFunc(func(b []byte) DecodeResult {
		return DecodeResult{Degraded: true}
	})
	assert.Equal(t, DecodeErrorSentinel, d.Decode([]byte("x")).String())
}

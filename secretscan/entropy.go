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
	"bytes"
	"math"
)

var _ EntropyScorer = &ShannonScorer{}

type charset struct {
	members [256]bool
	symbols []byte
}

func newCharset(chars string) *charset {
	cs := &charset{symbols: []byte(chars)}
	for i := 0; i < len(chars); i++ {
		cs.members[chars[i]] = true
	}

	return cs
}

var (
	base64Set = newCharset(base64Charset)
	hexSet    = newCharset(hexCharset)
)

// ShannonScorer flags base64 and hex looking runs whose Shannon entropy is
// above a cutoff. A line is split on whitespace first, then every run of at
// least minLength characters from either alphabet is scored against it.
type ShannonScorer struct {
	minLength    int
	base64Cutoff float64
	hexCutoff    float64
}

// ScorerOption configures a ShannonScorer.
type ScorerOption func(*ShannonScorer)

// WithMinLength sets the shortest run that is scored.
func WithMinLength(n int) ScorerOption {
	return func(s *ShannonScorer) {
		if n > 0 {
			s.minLength = n
		}
	}
}

// WithBase64Cutoff sets the entropy a base64 run must exceed to be flagged.
func WithBase64Cutoff(cutoff float64) ScorerOption {
	return func(s *ShannonScorer) {
		s.base64Cutoff = cutoff
	}
}

// WithHexCutoff sets the entropy a hex run must exceed to be flagged.
func WithHexCutoff(cutoff float64) ScorerOption {
	return func(s *ShannonScorer) {
		s.hexCutoff = cutoff
	}
}

func NewShannonScorer(opts ...ScorerOption) *ShannonScorer {
	s := &ShannonScorer{
		minLength:    defaultEntropyMinLength,
		base64Cutoff: defaultBase64EntropyCutoff,
		hexCutoff:    defaultHexEntropyCutoff,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

func (s *ShannonScorer) EntropyFindings(line []byte) []string {
	var flagged []string
	seen := map[string]struct{}{}
	add := func(run []byte) {
		if _, ok := seen[string(run)]; ok {
			return
		}

		seen[string(run)] = struct{}{}
		flagged = append(flagged, string(run))
	}

	for _, word := range bytes.Fields(line) {
		for _, run := range runsOf(word, base64Set, s.minLength) {
			if shannonEntropy(run, base64Set) > s.base64Cutoff {
				add(run)
			}
		}

		for _, run := range runsOf(word, hexSet, s.minLength) {
			if shannonEntropy(run, hexSet) > s.hexCutoff {
				add(run)
			}
		}
	}

	return flagged
}

// runsOf returns the maximal runs of cs members in word that are at least minLength long.
func runsOf(word []byte, cs *charset, minLength int) [][]byte {
	var runs [][]byte
	start := -1
	for i, c := range word {
		if cs.members[c] {
			if start < 0 {
				start = i
			}
			continue
		}

		if start >= 0 && i-start >= minLength {
			runs = append(runs, word[start:i])
		}
		start = -1
	}

	if start >= 0 && len(word)-start >= minLength {
		runs = append(runs, word[start:])
	}

	return runs
}

func shannonEntropy(data []byte, cs *charset) float64 {
	if len(data) == 0 {
		return 0
	}

	var counts [256]int
	for _, c := range data {
		counts[c]++
	}

	entropy := 0.0
	n := float64(len(data))
	for _, sym := range cs.symbols {
		if counts[sym] == 0 {
			continue
		}

		p := float64(counts[sym]) / n
		entropy -= p * math.Log2(p)
	}

	return entropy
}

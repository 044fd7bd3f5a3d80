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
	"maps"
	"slices"

	"github.com/in-toto/go-gdrivescan/log"
)

// Span is a half open byte range [Start, End) within a line.
type Span struct {
	Start int
	End   int
}

// PatternMatcher reports, for a single line, the byte spans matched by each
// named rule.
type PatternMatcher interface {
	Matches(line []byte) map[string][]Span
}

// EntropyScorer returns the substrings of a line that look like high entropy
// secrets.
type EntropyScorer interface {
	EntropyFindings(line []byte) []string
}

// Detection is what a LineDetector reports for one line: the reason (a rule
// name or a fixed category) and the strings that triggered it.
type Detection struct {
	Reason  string
	Strings []string
}

// LineDetector inspects a single line and returns zero or more detections.
// Implementations must be safe for concurrent use.
type LineDetector interface {
	Name() string
	Detect(line []byte) []Detection
}

type patternDetector struct {
	matcher PatternMatcher
	decoder Decoder
}

// NewPatternDetector turns a PatternMatcher into a LineDetector. Every matched
// span is decoded with decoder; a rule is reported once per line, and only if
// at least one of its matches decoded to something non-empty.
func NewPatternDetector(matcher PatternMatcher, decoder Decoder) LineDetector {
	if decoder == nil {
		decoder = ASCII()
	}

	return &patternDetector{matcher: matcher, decoder: decoder}
}

func (d *patternDetector) Name() string {
	return patternDetectorName
}

func (d *patternDetector) Detect(line []byte) []Detection {
	matches := d.matcher.Matches(line)
	if len(matches) == 0 {
		return nil
	}

	var detections []Detection
	for _, rule := range slices.Sorted(maps.Keys(matches)) {
		var secrets []string
		for _, span := range matches[rule] {
			if span.Start < 0 || span.End > len(line) || span.Start > span.End {
				log.Debugf("(secretscan) ignoring out of range span [%d,%d) for rule %s", span.Start, span.End, rule)
				continue
			}

			if s := d.decoder.Decode(line[span.Start:span.End]).String(); s != "" {
				secrets = append(secrets, s)
			}
		}

		if len(secrets) > 0 {
			detections = append(detections, Detection{Reason: rule, Strings: secrets})
		}
	}

	return detections
}

type entropyDetector struct {
	scorer EntropyScorer
}

// NewEntropyDetector turns an EntropyScorer into a LineDetector reporting
// EntropyReason.
func NewEntropyDetector(scorer EntropyScorer) LineDetector {
	return &entropyDetector{scorer: scorer}
}

func (d *entropyDetector) Name() string {
	return entropyDetectorName
}

func (d *entropyDetector) Detect(line []byte) []Detection {
	var flagged []string
	for _, s := range d.scorer.EntropyFindings(line) {
		if s != "" {
			flagged = append(flagged, s)
		}
	}

	if len(flagged) == 0 {
		return nil
	}

	return []Detection{{Reason: EntropyReason, Strings: flagged}}
}

// allowlistDetector drops allowlisted strings from another detector's output.
type allowlistDetector struct {
	LineDetector
	allowList *compiledAllowList
}

func (d *allowlistDetector) Detect(line []byte) []Detection {
	var kept []Detection
	for _, detection := range d.LineDetector.Detect(line) {
		var strs []string
		for _, s := range detection.Strings {
			if d.allowList.matchAllowlisted(s) {
				log.Debugf("(secretscan) allowlisted %s match dropped", detection.Reason)
				continue
			}

			strs = append(strs, s)
		}

		if len(strs) > 0 {
			kept = append(kept, Detection{Reason: detection.Reason, Strings: strs})
		}
	}

	return kept
}

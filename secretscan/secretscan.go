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

// Package secretscan finds secrets in text one line at a time. A
// SecretScanner is configured once, holds only read-only state after New
// returns, and can be shared by any number of concurrent scans.
package secretscan

import (
	"fmt"
)

// SecretScanner holds the detector configuration used to scan documents.
type SecretScanner struct {
	matcher    PatternMatcher
	scorer     EntropyScorer
	decoder    Decoder
	allowList  *AllowList
	configPath string
	extra      []LineDetector

	pattern   LineDetector
	entropy   LineDetector
	allowlist *compiledAllowList
}

// Option is a function type for configuring a SecretScanner
type Option func(*SecretScanner)

// WithPatternMatcher replaces the gitleaks rule set with matcher.
func WithPatternMatcher(matcher PatternMatcher) Option {
	return func(s *SecretScanner) {
		s.matcher = matcher
	}
}

// WithEntropyScorer replaces the default Shannon entropy scorer.
func WithEntropyScorer(scorer EntropyScorer) Option {
	return func(s *SecretScanner) {
		s.scorer = scorer
	}
}

// WithDecoder sets the decoder used for matched strings and line context.
func WithDecoder(decoder Decoder) Option {
	return func(s *SecretScanner) {
		if decoder != nil {
			s.decoder = decoder
		}
	}
}

// WithAllowList configures patterns that should be allowed and not reported as secrets
func WithAllowList(allowList *AllowList) Option {
	return func(s *SecretScanner) {
		s.allowList = allowList
	}
}

// WithConfigPath sets a custom gitleaks configuration file. It is ignored
// when WithPatternMatcher is also given.
func WithConfigPath(configPath string) Option {
	return func(s *SecretScanner) {
		s.configPath = configPath
	}
}

// WithDetectors appends detectors that run after the built in ones.
func WithDetectors(detectors ...LineDetector) Option {
	return func(s *SecretScanner) {
		s.extra = append(s.extra, detectors...)
	}
}

// New builds a SecretScanner. Without options it uses the default gitleaks
// rules, the Shannon entropy scorer and the ASCII decoder.
func New(opts ...Option) (*SecretScanner, error) {
	s := &SecretScanner{
		decoder:    ASCII(),
		configPath: defaultConfigPath,
	}

	for _, opt := range opts {
		opt(s)
	}

	var err error
	if s.matcher == nil {
		if s.configPath != "" {
			s.matcher, err = LoadGitleaksMatcher(s.configPath)
		} else {
			s.matcher, err = DefaultGitleaksMatcher()
		}

		if err != nil {
			return nil, fmt.Errorf("error initializing gitleaks rules: %w", err)
		}
	}

	if s.scorer == nil {
		s.scorer = NewShannonScorer()
	}

	if s.allowlist, err = compileAllowList(s.allowList); err != nil {
		return nil, err
	}

	s.pattern = s.withAllowList(NewPatternDetector(s.matcher, s.decoder))
	s.entropy = s.withAllowList(NewEntropyDetector(s.scorer))
	for i, d := range s.extra {
		s.extra[i] = s.withAllowList(d)
	}

	return s, nil
}

func (s *SecretScanner) withAllowList(d LineDetector) LineDetector {
	if s.allowlist == nil {
		return d
	}

	return &allowlistDetector{LineDetector: d, allowList: s.allowlist}
}

// Detectors returns the active detectors in the order they must run: the
// pattern detector, then the entropy detector if scanEntropy is set, then any
// extra detectors.
func (s *SecretScanner) Detectors(scanEntropy bool) []LineDetector {
	detectors := make([]LineDetector, 0, 2+len(s.extra))
	detectors = append(detectors, s.pattern)
	if scanEntropy {
		detectors = append(detectors, s.entropy)
	}

	return append(detectors, s.extra...)
}

// DetectLine runs the active detectors over a single line.
func (s *SecretScanner) DetectLine(line []byte, scanEntropy bool) []Detection {
	var detections []Detection
	for _, d := range s.Detectors(scanEntropy) {
		detections = append(detections, d.Detect(line)...)
	}

	return detections
}

// Decoder returns the decoder used to render matched text.
func (s *SecretScanner) Decoder() Decoder {
	return s.decoder
}

// PathAllowlisted reports whether documents at path are excluded from scanning.
func (s *SecretScanner) PathAllowlisted(path string) bool {
	return s.allowlist.pathAllowlisted(path)
}

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
	"fmt"
	"maps"
	"os"
	"regexp"
	"slices"
	"strings"

	"github.com/in-toto/go-gdrivescan/log"
	"github.com/spf13/viper"
	"github.com/zricethezav/gitleaks/v8/config"
	"github.com/zricethezav/gitleaks/v8/detect"
	"github.com/zricethezav/gitleaks/v8/report"
)

var (
	_ PatternMatcher = &GitleaksMatcher{}
	_ PatternMatcher = &RegexMatcher{}
)

// GitleaksMatcher runs a gitleaks detector over each line. Keywords, rule
// entropy, secret groups and both rule and global allowlists apply exactly as
// they do in gitleaks. Rules that only match on file paths are ignored. Spans
// cover the captured secret rather than the whole match.
type GitleaksMatcher struct {
	detector *detect.Detector
}

// NewGitleaksMatcher builds a matcher from an already translated gitleaks config.
func NewGitleaksMatcher(cfg config.Config) *GitleaksMatcher {
	rules := make(map[string]config.Rule, len(cfg.Rules))
	keywords := maps.Clone(cfg.Keywords)
	if keywords == nil {
		keywords = map[string]struct{}{}
	}

	for _, id := range slices.Sorted(maps.Keys(cfg.Rules)) {
		rule := cfg.Rules[id]
		if rule.Regex == nil {
			log.Debugf("(secretscan) skipping gitleaks rule without content regex: %s", id)
			continue
		}

		if rule.RuleID == "" {
			rule.RuleID = id
		}

		// the detector prefilters on the config's keyword set
		for _, k := range rule.Keywords {
			keywords[strings.ToLower(k)] = struct{}{}
		}

		rules[id] = rule
	}

	cfg.Rules = rules
	cfg.Keywords = keywords
	return &GitleaksMatcher{detector: detect.NewDetector(cfg)}
}

// DefaultGitleaksMatcher uses the rule set embedded in gitleaks.
func DefaultGitleaksMatcher() (*GitleaksMatcher, error) {
	log.Debugf("(secretscan) using default gitleaks configuration")

	detector, err := detect.NewDetectorDefaultConfig()
	if err != nil {
		return nil, fmt.Errorf("error creating default gitleaks detector: %w", err)
	}

	return NewGitleaksMatcher(detector.Config), nil
}

// LoadGitleaksMatcher reads a gitleaks TOML configuration file.
func LoadGitleaksMatcher(configPath string) (*GitleaksMatcher, error) {
	log.Debugf("(secretscan) loading gitleaks configuration from: %s", configPath)

	// Create a new Viper instance to avoid interfering with global state
	v := viper.New()
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("gitleaks config file not found at %s: %w", configPath, err)
		}
		return nil, fmt.Errorf("error reading gitleaks config file %s: %w", configPath, err)
	}

	var viperConfig config.ViperConfig
	if err := v.Unmarshal(&viperConfig); err != nil {
		return nil, fmt.Errorf("error unmarshaling gitleaks config from %s: %w", configPath, err)
	}

	cfg, err := viperConfig.Translate()
	if err != nil {
		return nil, fmt.Errorf("error translating gitleaks config from %s: %w", configPath, err)
	}

	if len(cfg.Rules) == 0 {
		log.Warnf("(secretscan) gitleaks config from %s contains no rules", configPath)
	}

	return NewGitleaksMatcher(cfg), nil
}

// Len returns the number of content rules in use.
func (m *GitleaksMatcher) Len() int {
	return len(m.detector.Config.Rules)
}

func (m *GitleaksMatcher) Matches(line []byte) map[string][]Span {
	text := string(line)
	matches := map[string][]Span{}
	for _, f := range m.detector.DetectString(text) {
		span, ok := secretSpan(text, f)
		if !ok {
			log.Debugf("(secretscan) could not locate %s finding in line", f.RuleID)
			continue
		}

		matches[f.RuleID] = append(matches[f.RuleID], span)
	}

	for _, spans := range matches {
		slices.SortFunc(spans, func(a, b Span) int {
			if a.Start != b.Start {
				return a.Start - b.Start
			}
			return a.End - b.End
		})
	}

	return matches
}

// secretSpan locates a gitleaks finding's secret within a single line. The
// finding's columns are 1 based and inclusive and cover the whole match.
func secretSpan(line string, f report.Finding) (Span, bool) {
	if f.Match == "" || f.Secret == "" {
		return Span{}, false
	}

	start, end := f.StartColumn-1, f.EndColumn
	if start < 0 || end > len(line) || start > end || line[start:end] != f.Match {
		if start = strings.Index(line, f.Match); start < 0 {
			return Span{}, false
		}
		end = start + len(f.Match)
	}

	if i := strings.Index(f.Match, f.Secret); i >= 0 {
		return Span{Start: start + i, End: start + i + len(f.Secret)}, true
	}

	return Span{Start: start, End: end}, true
}

// RegexMatcher is a small rule table of named regular expressions.
type RegexMatcher struct {
	names []string
	rules map[string]*regexp.Regexp
}

// NewRegexMatcher compiles rules, a map of rule name to regular expression.
func NewRegexMatcher(rules map[string]string) (*RegexMatcher, error) {
	m := &RegexMatcher{rules: make(map[string]*regexp.Regexp, len(rules))}
	for _, name := range slices.Sorted(maps.Keys(rules)) {
		re, err := regexp.Compile(rules[name])
		if err != nil {
			return nil, fmt.Errorf("invalid regex pattern for rule %q: %w", name, err)
		}

		m.names = append(m.names, name)
		m.rules[name] = re
	}

	return m, nil
}

func (m *RegexMatcher) Matches(line []byte) map[string][]Span {
	matches := map[string][]Span{}
	for _, name := range m.names {
		for _, loc := range m.rules[name].FindAllIndex(line, -1) {
			matches[name] = append(matches[name], Span{Start: loc[0], End: loc[1]})
		}
	}

	return matches
}

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
	"regexp"
	"strings"

	"github.com/gobwas/glob"
	"github.com/in-toto/go-gdrivescan/log"
)

// AllowList defines patterns that should be ignored during secret scanning.
// It helps reduce false positives by excluding known safe patterns.
type AllowList struct {
	// Description explains the purpose of this allowlist
	Description string `json:"description,omitempty"`

	// Paths are document path globs ("/" separated) whose documents are not scanned
	Paths []string `json:"paths,omitempty"`

	// Regexes are content patterns to ignore (regex format)
	Regexes []string `json:"regexes,omitempty"`

	// StopWords are specific strings to ignore (substring match)
	StopWords []string `json:"stopWords,omitempty"`
}

type compiledAllowList struct {
	stopWords []string
	regexes   []*regexp.Regexp
	paths     []glob.Glob
	patterns  []string
}

func compileAllowList(a *AllowList) (*compiledAllowList, error) {
	if a == nil {
		return nil, nil
	}

	c := &compiledAllowList{stopWords: a.StopWords}
	for _, pattern := range a.Regexes {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid allowlist regex %q: %w", pattern, err)
		}
		c.regexes = append(c.regexes, re)
	}

	for _, pattern := range a.Paths {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, fmt.Errorf("invalid allowlist path glob %q: %w", pattern, err)
		}
		c.paths = append(c.paths, g)
		c.patterns = append(c.patterns, pattern)
	}

	return c, nil
}

// matchAllowlisted reports whether a detected string should be ignored.
func (c *compiledAllowList) matchAllowlisted(s string) bool {
	if c == nil {
		return false
	}

	// Check stop words first (fastest check - simple string containment)
	for _, stopWord := range c.stopWords {
		if stopWord != "" && strings.Contains(s, stopWord) {
			log.Debugf("(secretscan) match matched stop word: %s", stopWord)
			return true
		}
	}

	for _, re := range c.regexes {
		if re.MatchString(s) {
			log.Debugf("(secretscan) match matched regex pattern: %s", re)
			return true
		}
	}

	return false
}

// pathAllowlisted reports whether a whole document should be skipped.
func (c *compiledAllowList) pathAllowlisted(path string) bool {
	if c == nil {
		return false
	}

	for i, g := range c.paths {
		if g.Match(path) {
			log.Debugf("(secretscan) path %s matched allowlist glob: %s", path, c.patterns[i])
			return true
		}
	}

	return false
}

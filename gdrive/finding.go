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

package gdrive

import (
	"encoding/json"
	"maps"
	"slices"
	"strconv"
	"strings"
)

// Finding is a single secret found in a Drive document. Field names in the
// JSON form are fixed for compatibility with other hog tools.
type Finding struct {
	// Date is the document's last modified time
	Date string `json:"date" jsonschema:"title=Date,description=Last modified time of the scanned document"`

	// Diff is the decoded line the secret was found on
	Diff string `json:"diff" jsonschema:"title=Diff,description=Decoded line containing the secret"`

	// Path is the document's parent folder IDs and name joined with /
	Path string `json:"path" jsonschema:"title=Path,description=Parent folder IDs and document name"`

	// StringsFound lists the flagged substrings in the order they appear
	StringsFound []string `json:"stringsFound" jsonschema:"title=Strings Found,description=Substrings that triggered the finding"`

	GDriveID string `json:"g_drive_id" jsonschema:"title=Google Drive ID,description=ID of the scanned document"`

	// Reason is the rule name, or Entropy for high entropy strings
	Reason string `json:"reason" jsonschema:"title=Reason,description=Rule name or Entropy"`

	WebLink string `json:"web_link" jsonschema:"title=Web Link,description=Link to the document"`
}

// key encodes every field, length prefixed, so two findings share a key
// exactly when all of their fields are equal.
func (f Finding) key() string {
	var b strings.Builder
	write := func(s string) {
		b.WriteString(strconv.Itoa(len(s)))
		b.WriteByte(':')
		b.WriteString(s)
	}

	write(f.Date)
	write(f.Diff)
	write(f.Path)
	write(f.GDriveID)
	write(f.Reason)
	write(f.WebLink)
	b.WriteString(strconv.Itoa(len(f.StringsFound)))
	b.WriteByte('#')
	for _, s := range f.StringsFound {
		write(s)
	}

	return b.String()
}

// FindingSet is a set of findings keyed by the value of all their fields.
// The zero value is an empty set ready to use. A FindingSet is not safe for
// concurrent writes.
type FindingSet struct {
	findings map[string]Finding
}

func NewFindingSet() *FindingSet {
	return &FindingSet{findings: map[string]Finding{}}
}

// Add inserts f and reports whether it was not already present.
func (s *FindingSet) Add(f Finding) bool {
	if s.findings == nil {
		s.findings = map[string]Finding{}
	}

	k := f.key()
	if _, exists := s.findings[k]; exists {
		return false
	}

	f.StringsFound = slices.Clone(f.StringsFound)
	s.findings[k] = f
	return true
}

func (s *FindingSet) Contains(f Finding) bool {
	if s == nil {
		return false
	}

	_, ok := s.findings[f.key()]
	return ok
}

func (s *FindingSet) Len() int {
	if s == nil {
		return 0
	}

	return len(s.findings)
}

// Findings returns a copy of the set in a stable order.
func (s *FindingSet) Findings() []Finding {
	if s == nil {
		return []Finding{}
	}

	out := make([]Finding, 0, len(s.findings))
	for _, k := range slices.Sorted(maps.Keys(s.findings)) {
		f := s.findings[k]
		f.StringsFound = slices.Clone(f.StringsFound)
		out = append(out, f)
	}

	slices.SortStableFunc(out, func(a, b Finding) int {
		if c := strings.Compare(a.Path, b.Path); c != 0 {
			return c
		}
		if c := strings.Compare(a.Reason, b.Reason); c != 0 {
			return c
		}
		return strings.Compare(a.Diff, b.Diff)
	})

	return out
}

// Equal reports whether both sets hold the same findings.
func (s *FindingSet) Equal(other *FindingSet) bool {
	if s.Len() != other.Len() {
		return false
	}

	for k := range s.findingsMap() {
		if _, ok := other.findingsMap()[k]; !ok {
			return false
		}
	}

	return true
}

func (s *FindingSet) findingsMap() map[string]Finding {
	if s == nil {
		return nil
	}

	return s.findings
}

// MarshalJSON encodes the set as an array in the order of Findings.
func (s *FindingSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Findings())
}

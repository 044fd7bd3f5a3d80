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

// Package gdrive scans Google Drive documents for secrets. FileInfo
// describes the document, a DocumentClient fetches it, and Scanner runs a
// secretscan.SecretScanner over its export line by line, collecting
// deduplicated findings.
package gdrive

import (
	"context"
	"errors"
	"fmt"

	"github.com/in-toto/go-gdrivescan/log"
	"github.com/in-toto/go-gdrivescan/secretscan"
)

// Scanner scans Drive documents with a shared, read only SecretScanner. It
// holds no other state and is safe for concurrent use.
type Scanner struct {
	secretScanner *secretscan.SecretScanner
}

// NewScanner wraps an already configured SecretScanner. A nil secretScanner
// is replaced by one with the default configuration.
func NewScanner(secretScanner *secretscan.SecretScanner) (*Scanner, error) {
	if secretScanner == nil {
		ss, err := secretscan.New()
		if err != nil {
			return nil, err
		}
		secretScanner = ss
	}

	return &Scanner{secretScanner: secretScanner}, nil
}

// NewDefaultScanner uses the default gitleaks rules and entropy scorer.
func NewDefaultScanner() (*Scanner, error) {
	return NewScanner(nil)
}

// SecretScanner returns the detector configuration in use.
func (s *Scanner) SecretScanner() *secretscan.SecretScanner {
	return s.secretScanner
}

// PerformScan exports the document described by info and scans every line of
// it. Entropy findings are only produced when scanEntropy is set. The only
// error is a retrieval failure, in which case no findings are returned.
func (s *Scanner) PerformScan(ctx context.Context, info FileInfo, client ContentExporter, scanEntropy bool) (*FindingSet, error) {
	if s == nil || s.secretScanner == nil {
		return nil, ErrNoSecretScanner
	}

	path := info.Path()
	if s.secretScanner.PathAllowlisted(path) {
		log.Debugf("(gdrive) skipping allowlisted document: %s", path)
		return NewFindingSet(), nil
	}

	if client == nil {
		return nil, &RetrievalError{FileID: info.FileID, Err: errors.New("nil document client")}
	}

	content, err := client.Export(ctx, info.FileID, info.MimeType)
	if err != nil {
		var rerr *RetrievalError
		if !errors.As(err, &rerr) {
			err = &RetrievalError{FileID: info.FileID, Err: err}
		}
		return nil, fmt.Errorf("error scanning %s: %w", info.FileID, err)
	}

	detectors := s.secretScanner.Detectors(scanEntropy)
	decoder := s.secretScanner.Decoder()
	findings := NewFindingSet()
	for _, line := range secretscan.SplitLines(content) {
		var diff string
		decoded := false
		for _, detector := range detectors {
			for _, detection := range detector.Detect(line) {
				if !decoded {
					diff = decoder.Decode(line).String()
					decoded = true
				}

				findings.Add(newFinding(info, path, diff, detection))
			}
		}
	}

	log.Debugf("(gdrive) found %d findings in %s", findings.Len(), info.FileID)
	return findings, nil
}

func newFinding(info FileInfo, path, diff string, detection secretscan.Detection) Finding {
	return Finding{
		Date:         info.ModifiedTime,
		Diff:         diff,
		Path:         path,
		StringsFound: detection.Strings,
		GDriveID:     info.FileID,
		Reason:       detection.Reason,
		WebLink:      info.WebLink,
	}
}

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
	"context"

	"github.com/in-toto/go-gdrivescan/log"
	"golang.org/x/sync/errgroup"
)

// ScanResult is the outcome of scanning one document. Err is set when either
// metadata resolution or retrieval failed, and Findings is nil in that case.
type ScanResult struct {
	FileID   string
	FileInfo FileInfo
	Findings *FindingSet
	Err      error
}

// ScanFile resolves fileID's metadata and scans it.
func (s *Scanner) ScanFile(ctx context.Context, client DocumentClient, fileID string, scanEntropy bool) (FileInfo, *FindingSet, error) {
	info, err := NewFileInfo(ctx, client, fileID)
	if err != nil {
		return FileInfo{}, nil, err
	}

	findings, err := s.PerformScan(ctx, info, client, scanEntropy)
	if err != nil {
		return info, nil, err
	}

	return info, findings, nil
}

// ScanFiles scans several documents, at most concurrency at a time. A failed
// document only fails its own result. Results are in the order of fileIDs.
func (s *Scanner) ScanFiles(ctx context.Context, client DocumentClient, fileIDs []string, scanEntropy bool, concurrency int) []ScanResult {
	if concurrency <= 0 {
		concurrency = 1
	}

	results := make([]ScanResult, len(fileIDs))
	var g errgroup.Group
	g.SetLimit(concurrency)
	for i, fileID := range fileIDs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				results[i] = ScanResult{FileID: fileID, Err: err}
				return nil
			}

			info, findings, err := s.ScanFile(ctx, client, fileID, scanEntropy)
			if err != nil {
				log.Debugf("(gdrive) error scanning %s: %s", fileID, err)
			}

			results[i] = ScanResult{FileID: fileID, FileInfo: info, Findings: findings, Err: err}
			return nil
		})
	}

	// workers never return errors, each result carries its own
	_ = g.Wait()
	return results
}

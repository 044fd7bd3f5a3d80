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
	"fmt"
	"sync/atomic"
)

// fakeDrive is an in memory DocumentClient.
type fakeDrive struct {
	files       map[string]*RemoteFile
	content     map[string][]byte
	metadataErr error
	exportErr   error

	metadataCalls atomic.Int32
	exportCalls   atomic.Int32
}

func newFakeDrive() *fakeDrive {
	return &fakeDrive{
		files:   map[string]*RemoteFile{},
		content: map[string][]byte{},
	}
}

func (f *fakeDrive) addDocument(id, nativeType string, content []byte) {
	f.files[id] = &RemoteFile{
		ID:           id,
		Name:         "doc-" + id,
		MimeType:     nativeType,
		ModifiedTime: "2019-12-21T16:32:31+00:00",
		WebViewLink:  "https://docs.google.com/document/d/" + id,
		Parents:      []string{"root-folder", "team-folder"},
	}
	f.content[id] = content
}

func (f *fakeDrive) FileMetadata(ctx context.Context, fileID string) (*RemoteFile, error) {
	f.metadataCalls.Add(1)
	if f.metadataErr != nil {
		return nil, f.metadataErr
	}

	rf, ok := f.files[fileID]
	if !ok {
		return nil, fmt.Errorf("file %s not found", fileID)
	}

	cp := *rf
	return &cp, nil
}

func (f *fakeDrive) Export(ctx context.Context, fileID, mimeType string) ([]byte, error) {
	f.exportCalls.Add(1)
	if f.exportErr != nil {
		return nil, f.exportErr
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	content, ok := f.content[fileID]
	if !ok {
		return nil, fmt.Errorf("no export for %s", fileID)
	}

	return content, nil
}

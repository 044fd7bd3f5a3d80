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
	"slices"
	"strings"

	"github.com/in-toto/go-gdrivescan/log"
)

const (
	SpreadsheetMimeType = "application/vnd.google-apps.spreadsheet"
	DocumentMimeType    = "application/vnd.google-apps.document"
)

// exportMimeTypes maps native Google types to the format they are exported as.
var exportMimeTypes = map[string]string{
	SpreadsheetMimeType: "text/csv",
	DocumentMimeType:    "text/plain",
}

// ExportMimeType returns the export format for a native document type.
func ExportMimeType(nativeType string) (string, error) {
	exportType, ok := exportMimeTypes[nativeType]
	if !ok {
		return "", &UnsupportedTypeError{MimeType: nativeType}
	}

	return exportType, nil
}

// FileInfo identifies the document being scanned. MimeType is the export
// format, not the document's native type.
type FileInfo struct {
	FileID       string   `json:"fileId"`
	MimeType     string   `json:"mimeType"`
	ModifiedTime string   `json:"modifiedTime"`
	WebLink      string   `json:"webLink"`
	Parents      []string `json:"parents"`
	Name         string   `json:"name"`
}

// Path joins the parent folder IDs and the document name with "/". Parents
// are IDs, not folder names.
func (f FileInfo) Path() string {
	return strings.Join(f.Parents, "/") + "/" + f.Name
}

// NewFileInfo looks up fileID with a single metadata request. Documents whose
// native type cannot be exported fail with an UnsupportedTypeError.
func NewFileInfo(ctx context.Context, lookup MetadataLookup, fileID string) (FileInfo, error) {
	remote, err := lookup.FileMetadata(ctx, fileID)
	if err != nil {
		return FileInfo{}, fmt.Errorf("failed accessing drive metadata for %s: %w", fileID, err)
	}

	if remote == nil {
		return FileInfo{}, fmt.Errorf("%w: no metadata returned for %s", ErrIncompleteMetadata, fileID)
	}

	exportType, err := ExportMimeType(remote.MimeType)
	if err != nil {
		return FileInfo{}, err
	}

	required := []struct{ field, value string }{
		{"name", remote.Name},
		{"modifiedTime", remote.ModifiedTime},
		{"webViewLink", remote.WebViewLink},
	}
	for _, r := range required {
		if r.value == "" {
			return FileInfo{}, fmt.Errorf("%w: %s missing for %s", ErrIncompleteMetadata, r.field, fileID)
		}
	}

	parents := slices.Clone(remote.Parents)
	if parents == nil {
		parents = []string{}
	}

	info := FileInfo{
		FileID:       fileID,
		MimeType:     exportType,
		ModifiedTime: remote.ModifiedTime,
		WebLink:      remote.WebViewLink,
		Parents:      parents,
		Name:         remote.Name,
	}

	log.Debugf("(gdrive) resolved %s as %s (%s)", fileID, info.Path(), exportType)
	return info, nil
}

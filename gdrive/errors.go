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
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedType is matched by errors for documents whose native type has no export format.
	ErrUnsupportedType = errors.New("unsupported document type")

	// ErrIncompleteMetadata means the metadata lookup did not return a required field.
	ErrIncompleteMetadata = errors.New("incomplete document metadata")

	// ErrRetrieval is matched by every content retrieval failure.
	ErrRetrieval = errors.New("content retrieval failed")

	// ErrContentTooLarge means the export is bigger than the configured limit.
	ErrContentTooLarge = errors.New("exported content exceeds size limit")

	// ErrNoSecretScanner is returned when scanning with a Scanner that was not built by NewScanner.
	ErrNoSecretScanner = errors.New("scanner has no secret scanner configured")
)

// UnsupportedTypeError names the native MIME type that could not be exported.
type UnsupportedTypeError struct {
	MimeType string
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("unsupported document type %q", e.MimeType)
}

func (e *UnsupportedTypeError) Is(target error) bool {
	return target == ErrUnsupportedType
}

// RetrievalError wraps a failure to fetch a document's exported content.
type RetrievalError struct {
	FileID string
	Err    error
}

func (e *RetrievalError) Error() string {
	return fmt.Sprintf("content retrieval failed for %s: %v", e.FileID, e.Err)
}

func (e *RetrievalError) Is(target error) bool {
	return target == ErrRetrieval
}

func (e *RetrievalError) Unwrap() error {
	return e.Err
}

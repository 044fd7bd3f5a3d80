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

import "bytes"

// SplitLines partitions content on the line feed byte. The delimiter is not
// part of any segment, empty lines are kept, and joining the segments with a
// line feed gives back content exactly. Segments share memory with content.
func SplitLines(content []byte) [][]byte {
	return bytes.Split(content, []byte{lineDelimiter})
}

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

const (
	// EntropyReason is the reason reported for findings raised by the entropy detector.
	EntropyReason = "Entropy"

	// DecodeErrorSentinel replaces text that could not be decoded.
	DecodeErrorSentinel = "<STRING DECODE ERROR>"

	lineDelimiter = '\n'

	// Default configuration values
	defaultConfigPath = "" // No custom gitleaks config, use the embedded default rules

	// Entropy scoring defaults, the same thresholds truffleHog popularised
	defaultEntropyMinLength    = 20
	defaultBase64EntropyCutoff = 4.5
	defaultHexEntropyCutoff    = 3.0
	base64Charset              = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789+/="
	hexCharset                 = "1234567890abcdefABCDEF"

	patternDetectorName = "pattern"
	entropyDetectorName = "entropy"
)

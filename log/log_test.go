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

package log

import (
	"bytes"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestSilentByDefault(t *testing.T) {
	assert.IsType(t, SilentLogger{}, GetLogger())
}

func TestLogrusLogger(t *testing.T) {
	buf := &bytes.Buffer{}
	l := logrus.New()
	l.SetOutput(buf)
	l.SetLevel(logrus.DebugLevel)
	l.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true, DisableColors: true})

	SetLogger(NewLogrusLogger(l))
	t.Cleanup(func() { SetLogger(nil) })

	Debugf("(gdrive) scanning %s", "file-1")
	Infof("found %d findings", 3)
	Warnf("export failed: %v", errors.New("boom"))
	Error("fatal-ish")

	out := buf.String()
	assert.Contains(t, out, "(gdrive) scanning file-1")
	assert.Contains(t, out, "found 3 findings")
	assert.Contains(t, out, "export failed: boom")
	assert.Contains(t, out, "level=error")
}

func TestSetLoggerNilRestoresSilent(t *testing.T) {
	SetLogger(NewLogrusLogger(nil))
	SetLogger(nil)
	assert.IsType(t, SilentLogger{}, GetLogger())
}

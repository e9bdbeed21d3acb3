package log

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"
)

var (
	sampleInt      = 3
	sampleBytes    = []byte("123")
	sampleList     = []int64{10, 0, -10}
	sampleDuration = time.Second

	errSample = errors.New("some error")
)

func doLogs() {
	Infof("added %d keys to ledger %x", sampleInt, sampleBytes)
	Debugw("loading proposal", "id", "abc123", "model", "single_choice")
	Errorf("cannot commit transaction: %v", errSample)
	Warnw("various types",
		"list", sampleList,
		"duration", sampleDuration,
	)
	Error(errSample)
}

func TestErrorOutput(t *testing.T) {
	var buf bytes.Buffer
	Init(LogLevelDebug, "stderr", &buf)
	doLogs()
	out := buf.String()
	if !strings.Contains(out, "cannot commit transaction") {
		t.Errorf("error output missing error entries: %q", out)
	}
	if strings.Contains(out, "loading proposal") {
		t.Errorf("error output should not contain debug entries: %q", out)
	}
}

func TestLevel(t *testing.T) {
	Init(LogLevelWarn, "stderr", nil)
	if Level() != LogLevelWarn {
		t.Errorf("Level() = %q, want %q", Level(), LogLevelWarn)
	}
}

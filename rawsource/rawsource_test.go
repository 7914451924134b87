package rawsource

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ausocean/utils/logging"
)

type testLogger struct{ t *testing.T }

func (l *testLogger) SetLevel(int8) {}
func (l *testLogger) Log(lvl int8, msg string, args ...interface{}) {
	if l.t != nil {
		l.t.Logf("%d: %s %v", lvl, msg, args)
	}
}
func (l *testLogger) Debug(msg string, args ...interface{})   { l.Log(logging.Debug, msg, args...) }
func (l *testLogger) Info(msg string, args ...interface{})    { l.Log(logging.Info, msg, args...) }
func (l *testLogger) Warning(msg string, args ...interface{}) { l.Log(logging.Warning, msg, args...) }
func (l *testLogger) Error(msg string, args ...interface{})   { l.Log(logging.Error, msg, args...) }
func (l *testLogger) Fatal(msg string, args ...interface{})   { l.Log(logging.Fatal, msg, args...) }

func writeRawFile(t *testing.T, frameSize, n int) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "frames.raw")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	defer f.Close()

	for i := 0; i < n; i++ {
		buf := make([]byte, frameSize)
		for j := range buf {
			buf[j] = byte(i)
		}
		if _, err := f.Write(buf); err != nil {
			t.Fatalf("Write: %v", err)
		}
	}
	return path
}

func TestReadFrameReturnsEachFrameThenEOF(t *testing.T) {
	const w, h, align = 4, 2, 0
	frameSize := w * h * 4
	path := writeRawFile(t, frameSize, 3)

	s := New(&testLogger{t}, path, w, h, align, 12)
	for i := 0; i < 3; i++ {
		buf, ok, err := s.ReadFrame()
		if err != nil {
			t.Fatalf("ReadFrame %d: %v", i, err)
		}
		if !ok {
			t.Fatalf("ReadFrame %d: want ok=true", i)
		}
		if len(buf) != frameSize {
			t.Fatalf("ReadFrame %d: len = %d, want %d", i, len(buf), frameSize)
		}
		if buf[0] != byte(i) {
			t.Errorf("ReadFrame %d: buf[0] = %d, want %d", i, buf[0], i)
		}
	}

	_, ok, err := s.ReadFrame()
	if err != nil {
		t.Fatalf("ReadFrame at EOF: %v", err)
	}
	if ok {
		t.Fatal("ReadFrame at EOF: want ok=false")
	}
}

func TestSeekFrameZeroRewinds(t *testing.T) {
	const w, h, align = 4, 2, 0
	frameSize := w * h * 4
	path := writeRawFile(t, frameSize, 2)

	s := New(&testLogger{t}, path, w, h, align, 12)
	if _, _, err := s.ReadFrame(); err != nil {
		t.Fatalf("ReadFrame: %v", err)
	}
	if err := s.SeekFrame(0); err != nil {
		t.Fatalf("SeekFrame(0): %v", err)
	}
	buf, ok, err := s.ReadFrame()
	if err != nil || !ok {
		t.Fatalf("ReadFrame after seek: ok=%v err=%v", ok, err)
	}
	if buf[0] != 0 {
		t.Errorf("ReadFrame after seek: buf[0] = %d, want 0", buf[0])
	}
}

func TestSeekFrameRejectsNonZero(t *testing.T) {
	s := New(&testLogger{t}, "unused", 4, 2, 0, 12)
	if err := s.SeekFrame(3); err == nil {
		t.Fatal("SeekFrame(3): want error, got nil")
	}
}

func TestReadFrameTruncatedFinalFrameIsEndOfStream(t *testing.T) {
	const w, h, align = 4, 2, 0
	frameSize := w * h * 4
	dir := t.TempDir()
	path := filepath.Join(dir, "short.raw")
	if err := os.WriteFile(path, make([]byte, frameSize/2), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	s := New(&testLogger{t}, path, w, h, align, 12)
	_, ok, err := s.ReadFrame()
	if err != nil {
		t.Fatalf("ReadFrame: %v", err)
	}
	if ok {
		t.Fatal("ReadFrame on truncated file: want ok=false, got true")
	}
}

func TestOpenFailureIsReportedAsError(t *testing.T) {
	s := New(&testLogger{t}, "/nonexistent/path/frames.raw", 4, 2, 0, 12)
	_, _, err := s.ReadFrame()
	if err == nil {
		t.Fatal("ReadFrame with missing file: want error, got nil")
	}
}

func TestFrameSizeInBytesAccountsForAlignment(t *testing.T) {
	s := New(&testLogger{t}, "unused", 65, 2, 64, 12)
	// width 65 padded to 128 pixels at align 64, * 4 bytes/pixel * 2 rows.
	want := 128 * 4 * 2
	if got := s.FrameSizeInBytes(); got != want {
		t.Errorf("FrameSizeInBytes = %d, want %d", got, want)
	}
}

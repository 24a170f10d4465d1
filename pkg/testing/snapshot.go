package testing

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-drift/carousel/pkg/carousel"
)

// UpdateSnapshotsEnv, when set to "1", makes MatchesFile rewrite golden
// files instead of comparing against them.
const UpdateSnapshotsEnv = "CAROUSEL_UPDATE_SNAPSHOTS"

// TestingT is the subset of *testing.T used by MatchesFile, allowing
// test doubles to intercept failures.
type TestingT interface {
	Helper()
	Fatalf(format string, args ...any)
	Errorf(format string, args ...any)
	Name() string
}

// Snapshot is a serializable record of everything a carousel rendered and
// committed during a test.
type Snapshot struct {
	Mode    string        `json:"mode"`
	Slides  int           `json:"slides"`
	Frames  []FrameRecord `json:"frames"`
	Commits []CommitEntry `json:"commits,omitempty"`
}

// FrameRecord is the time-stable part of one rendered frame.
type FrameRecord struct {
	At            string            `json:"at"`
	Current       int               `json:"current"`
	Next          int               `json:"next"`
	Transitioning bool              `json:"transitioning,omitempty"`
	Empty         bool              `json:"empty,omitempty"`
	Autoplay      string            `json:"autoplay"`
	Held          bool              `json:"held,omitempty"`
	Transition    *TransitionRecord `json:"transition,omitempty"`
}

// TransitionRecord describes the transition attached to a frame.
type TransitionRecord struct {
	From     int    `json:"from"`
	To       int    `json:"to"`
	Duration string `json:"duration"`
	Started  string `json:"started"`
}

// CommitEntry is a Commit with its time rendered as a duration string.
type CommitEntry struct {
	Previous int    `json:"previous"`
	Current  int    `json:"current"`
	At       string `json:"at"`
}

// CaptureSnapshot records the frames and commits seen so far. Times are
// offsets from the tester's creation so snapshots are stable across runs.
func (ct *CarouselTester) CaptureSnapshot() *Snapshot {
	st := ct.Carousel.State()
	snap := &Snapshot{
		Mode:   st.Mode.String(),
		Slides: len(ct.Carousel.Config().Images),
		Frames: make([]FrameRecord, 0, len(ct.frames)),
	}
	for _, f := range ct.frames {
		snap.Frames = append(snap.Frames, ct.frameRecord(f))
	}
	for _, c := range ct.commits {
		snap.Commits = append(snap.Commits, CommitEntry{Previous: c.Previous, Current: c.Current, At: c.At.String()})
	}
	return snap
}

func (ct *CarouselTester) frameRecord(f carousel.Frame) FrameRecord {
	rec := FrameRecord{
		At:            ct.offset(f.Now),
		Current:       f.State.CurrentIndex,
		Next:          f.State.NextIndex,
		Transitioning: f.State.Transitioning,
		Empty:         f.State.Empty,
		Autoplay:      f.Autoplay.Phase.String(),
		Held:          f.Autoplay.Held,
	}
	if tr := f.Transition; tr != nil {
		rec.Transition = &TransitionRecord{
			From:     tr.From,
			To:       tr.To,
			Duration: tr.Duration.String(),
			Started:  ct.offset(tr.StartedAt),
		}
	}
	return rec
}

func (ct *CarouselTester) offset(t time.Time) string {
	return t.Sub(ct.start).String()
}

// MatchesFile compares this snapshot against a golden file. On mismatch it
// reports a diff and instructions for updating. When
// CAROUSEL_UPDATE_SNAPSHOTS=1 is set, the file is silently updated instead.
func (s *Snapshot) MatchesFile(t TestingT, path string) {
	t.Helper()

	if os.Getenv(UpdateSnapshotsEnv) == "1" {
		if err := s.UpdateFile(path); err != nil {
			t.Fatalf("failed to update snapshot: %v", err)
		}
		return
	}

	expected, err := loadSnapshot(path)
	if err != nil {
		if os.IsNotExist(err) {
			t.Fatalf("snapshot file missing: %s\n\nTo create: %s=1 go test -run %s", path, UpdateSnapshotsEnv, t.Name())
			return
		}
		t.Fatalf("failed to load snapshot: %v", err)
		return
	}

	if diff := s.Diff(expected); diff != "" {
		t.Errorf("snapshot mismatch: %s\n%s\n\nTo update: %s=1 go test -run %s", path, diff, UpdateSnapshotsEnv, t.Name())
	}
}

// UpdateFile writes this snapshot to the given path, creating directories
// as needed.
func (s *Snapshot) UpdateFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := marshalSnapshot(s)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Diff returns a line diff between this snapshot and other. Returns
// empty string if equal.
func (s *Snapshot) Diff(other *Snapshot) string {
	a, _ := marshalSnapshot(s)
	b, _ := marshalSnapshot(other)
	if bytes.Equal(a, b) {
		return ""
	}
	return lineDiff(string(b), string(a))
}

func loadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("invalid snapshot JSON: %w", err)
	}
	return &snap, nil
}

func marshalSnapshot(s *Snapshot) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// lineDiff lists differing lines position by position.
func lineDiff(expected, actual string) string {
	expectedLines := strings.Split(expected, "\n")
	actualLines := strings.Split(actual, "\n")

	var buf strings.Builder
	buf.WriteString("--- expected\n+++ actual\n")

	n := max(len(expectedLines), len(actualLines))
	for i := 0; i < n; i++ {
		var e, a string
		if i < len(expectedLines) {
			e = expectedLines[i]
		}
		if i < len(actualLines) {
			a = actualLines[i]
		}
		if e == a {
			continue
		}
		if i < len(expectedLines) {
			fmt.Fprintf(&buf, "-%s\n", e)
		}
		if i < len(actualLines) {
			fmt.Fprintf(&buf, "+%s\n", a)
		}
	}
	return buf.String()
}

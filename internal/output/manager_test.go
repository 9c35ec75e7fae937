package output

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"auh/internal/build"
)

type recordingSink struct {
	writes []any
	werr   error
	cerr   error
	closed bool
}

func (s *recordingSink) Write(v any) error {
	s.writes = append(s.writes, v)
	return s.werr
}

func (s *recordingSink) Close() error {
	s.closed = true
	return s.cerr
}

func TestManagerFansOut(t *testing.T) {
	m := NewManager()
	a := &recordingSink{}
	b := &recordingSink{}
	if err := m.AddSink(a); err != nil {
		t.Fatalf("AddSink: %v", err)
	}
	if err := m.AddSink(b); err != nil {
		t.Fatalf("AddSink: %v", err)
	}

	r := build.Result{Package: "yay", Kind: build.KindSuccess}
	if err := m.Write(r); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if len(a.writes) != 1 || len(b.writes) != 1 {
		t.Fatalf("writes = %d/%d, want 1/1", len(a.writes), len(b.writes))
	}

	if err := m.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if !a.closed || !b.closed {
		t.Error("Close must reach every sink")
	}
}

func TestManagerWriteKeepsGoingPastFailingSink(t *testing.T) {
	m := NewManager()
	bad := &recordingSink{werr: errors.New("disk full")}
	good := &recordingSink{}
	m.AddSink(bad)
	m.AddSink(good)

	err := m.Write(build.Result{Package: "yay", Kind: build.KindSuccess})
	if err == nil {
		t.Fatal("expected aggregated write error")
	}
	if len(good.writes) != 1 {
		t.Error("a failing sink must not starve the others")
	}
}

func TestManagerRejectsNilSink(t *testing.T) {
	m := NewManager()
	if err := m.AddSink(nil); err == nil {
		t.Error("nil sink must be rejected")
	}
}

func TestFileSinkNDJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.ndjson")
	sink, err := NewFileSink(path, "")
	if err != nil {
		t.Fatalf("NewFileSink: %v", err)
	}

	if err := sink.Write(build.Result{Package: "yay", Kind: build.KindSuccess}); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := sink.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !strings.Contains(string(data), `"type":"pkg.result"`) {
		t.Errorf("unexpected file content: %q", data)
	}
}

func TestFileSinkJSONInferredFromExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.json")
	sink, err := NewFileSink(path, "")
	if err != nil {
		t.Fatalf("NewFileSink: %v", err)
	}

	sink.Write(build.Result{Package: "yay", Kind: build.KindSuccess})
	sink.Write(build.Result{Package: "paru", Kind: build.KindNotFoundUpstream, Message: "no such package"})
	if err := sink.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	var results []build.Result
	if err := json.Unmarshal(data, &results); err != nil {
		t.Fatalf("file is not a JSON array: %v", err)
	}
	if len(results) != 2 {
		t.Errorf("got %d results, want 2", len(results))
	}
}

func TestFileSinkRejectsUnknownExtension(t *testing.T) {
	if _, err := NewFileSink(filepath.Join(t.TempDir(), "results.txt"), ""); err == nil {
		t.Error("unknown extension with no explicit format must be rejected")
	}
}

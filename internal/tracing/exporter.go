package tracing

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// FileExporter appends finished spans to a JSONL file, one object per
// line. Lines carry trace and span ids, timing, status, and attributes,
// and parse cleanly with jq.
type FileExporter struct {
	mu sync.Mutex
	f  *os.File
	w  *bufio.Writer
}

var _ sdktrace.SpanExporter = (*FileExporter)(nil)

// NewFileExporter opens path for appending, creating parent directories
// as needed.
func NewFileExporter(path string) (*FileExporter, error) {
	path = filepath.Clean(path)
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, fmt.Errorf("creating traces directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600) // #nosec G304 -- cleaned above
	if err != nil {
		return nil, fmt.Errorf("opening traces file: %w", err)
	}
	return &FileExporter{f: f, w: bufio.NewWriter(f)}, nil
}

// ExportSpans writes one line per span and flushes the batch. Exports
// after Shutdown are dropped.
func (e *FileExporter) ExportSpans(_ context.Context, spans []sdktrace.ReadOnlySpan) error {
	if len(spans) == 0 {
		return nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.w == nil {
		return nil
	}

	for _, span := range spans {
		line, err := json.Marshal(record(span))
		if err != nil {
			return fmt.Errorf("marshaling span: %w", err)
		}
		line = append(line, '\n')
		if _, err := e.w.Write(line); err != nil {
			return fmt.Errorf("writing span: %w", err)
		}
	}
	return e.w.Flush()
}

// Shutdown flushes buffered lines and closes the file.
func (e *FileExporter) Shutdown(context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.f == nil {
		return nil
	}

	err := e.w.Flush()
	if cerr := e.f.Close(); err == nil {
		err = cerr
	}
	e.f, e.w = nil, nil
	return err
}

type spanRecord struct {
	Trace  string         `json:"trace"`
	Span   string         `json:"span"`
	Parent string         `json:"parent,omitempty"`
	Name   string         `json:"name"`
	Start  time.Time      `json:"start"`
	End    time.Time      `json:"end"`
	Ms     float64        `json:"ms"`
	Status string         `json:"status"`
	Detail string         `json:"detail,omitempty"`
	Attrs  map[string]any `json:"attrs,omitempty"`
}

func record(span sdktrace.ReadOnlySpan) spanRecord {
	rec := spanRecord{
		Trace:  span.SpanContext().TraceID().String(),
		Span:   span.SpanContext().SpanID().String(),
		Name:   span.Name(),
		Start:  span.StartTime(),
		End:    span.EndTime(),
		Ms:     float64(span.EndTime().Sub(span.StartTime())) / float64(time.Millisecond),
		Status: statusLabel(span.Status().Code),
		Detail: span.Status().Description,
	}
	if p := span.Parent(); p.IsValid() {
		rec.Parent = p.SpanID().String()
	}
	if attrs := span.Attributes(); len(attrs) > 0 {
		rec.Attrs = make(map[string]any, len(attrs))
		for _, kv := range attrs {
			rec.Attrs[string(kv.Key)] = kv.Value.AsInterface()
		}
	}
	return rec
}

func statusLabel(code codes.Code) string {
	switch code {
	case codes.Ok:
		return "ok"
	case codes.Error:
		return "error"
	default:
		return "unset"
	}
}

package pipeline

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ccollicutt/productetl/internal/ctxlog"
	"github.com/ccollicutt/productetl/pkg/lineio"
	"github.com/ccollicutt/productetl/pkg/record"
)

// mockSource is a test Source that returns predefined lines, then an
// optional error instead of io.EOF.
type mockSource struct {
	lines   []string
	index   int
	missing bool
	failErr error
	nexts   int
	closed  bool
}

func (m *mockSource) Name() string { return "mock.csv" }

func (m *mockSource) Exists() bool { return !m.missing }

func (m *mockSource) Next(ctx context.Context) (*lineio.Line, error) {
	m.nexts++
	if m.index >= len(m.lines) {
		if m.failErr != nil {
			return nil, m.failErr
		}
		return nil, io.EOF
	}
	m.index++
	return &lineio.Line{Content: m.lines[m.index-1], Source: "mock.csv", LineNum: m.index}, nil
}

func (m *mockSource) Close() error {
	m.closed = true
	return nil
}

// failingSink rejects every write.
type failingSink struct {
	calls int
}

func (f *failingSink) Name() string { return "readonly.csv" }

func (f *failingSink) WriteLines(ctx context.Context, lines []string) error {
	f.calls++
	return errors.New("permission denied")
}

func TestDriver_Run(t *testing.T) {
	source := &mockSource{lines: []string{
		"ProductID,Name,Price,Category",
		"1,tv,600,Electronics",
		"2,cable,50,Electronics",
		"3,desk,600,Furniture",
		"4,Widget,notanumber,Tools",
	}}
	sink := lineio.NewMemorySink("out.csv")

	result, err := NewDriver().Run(context.Background(), source, sink)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	want := []string{
		"ProductID,Name,Price,Category,PriceRange",
		"1,TV,540.00,Premium Electronics,Premium",
		"2,CABLE,45.00,Electronics,Medium",
		"3,DESK,600.00,Furniture,Premium",
	}
	if diff := cmp.Diff(want, sink.Lines()); diff != "" {
		t.Errorf("output mismatch (-want +got):\n%s", diff)
	}

	wantSummary := Summary{RowsRead: 4, RowsTransformed: 3, RowsSkipped: 1}
	if result.Summary != wantSummary {
		t.Errorf("Summary = %+v, want %+v", result.Summary, wantSummary)
	}
	if result.Skips[record.ReasonInvalidPrice] != 1 {
		t.Errorf("Skips[invalid_price] = %d, want 1", result.Skips[record.ReasonInvalidPrice])
	}
	if !result.Metadata.Written {
		t.Error("Metadata.Written = false, want true")
	}
	if !source.closed {
		t.Error("source was not closed")
	}
	if result.Metadata.EndTime.Before(result.Metadata.StartTime) {
		t.Error("EndTime before StartTime")
	}
}

func TestDriver_Run_HeaderNotValidated(t *testing.T) {
	// The first line is dropped even if it looks like data
	source := &mockSource{lines: []string{
		"1,tv,600,Electronics",
		"2,cable,50,Electronics",
	}}
	sink := lineio.NewMemorySink("out.csv")

	result, err := NewDriver().Run(context.Background(), source, sink)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if result.Summary.RowsRead != 1 {
		t.Errorf("RowsRead = %d, want 1", result.Summary.RowsRead)
	}
	if len(sink.Lines()) != 2 || sink.Lines()[1] != "2,CABLE,45.00,Electronics,Medium" {
		t.Errorf("unexpected output: %v", sink.Lines())
	}
}

func TestDriver_Run_HeaderOnly(t *testing.T) {
	source := &mockSource{lines: []string{"ProductID,Name,Price,Category"}}
	sink := lineio.NewMemorySink("out.csv")

	result, err := NewDriver().Run(context.Background(), source, sink)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if result.Summary != (Summary{}) {
		t.Errorf("Summary = %+v, want zero", result.Summary)
	}
	if diff := cmp.Diff([]string{Header}, sink.Lines()); diff != "" {
		t.Errorf("output mismatch (-want +got):\n%s", diff)
	}
	if sink.Writes() != 1 {
		t.Errorf("Writes() = %d, want 1", sink.Writes())
	}
}

func TestDriver_Run_EmptySource(t *testing.T) {
	source := &mockSource{}
	sink := lineio.NewMemorySink("out.csv")

	result, err := NewDriver().Run(context.Background(), source, sink)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if result.Summary != (Summary{}) {
		t.Errorf("Summary = %+v, want zero", result.Summary)
	}
	if diff := cmp.Diff([]string{Header}, sink.Lines()); diff != "" {
		t.Errorf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestDriver_Run_AllRowsSkipped(t *testing.T) {
	source := &mockSource{lines: []string{
		"header",
		"",
		"1,a,b",
		"x,a,1,b",
		"1,a,y,b",
	}}
	sink := lineio.NewMemorySink("out.csv")

	result, err := NewDriver().Run(context.Background(), source, sink)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	wantSummary := Summary{RowsRead: 4, RowsTransformed: 0, RowsSkipped: 4}
	if result.Summary != wantSummary {
		t.Errorf("Summary = %+v, want %+v", result.Summary, wantSummary)
	}
	for _, reason := range record.Reasons {
		if result.Skips[reason] != 1 {
			t.Errorf("Skips[%s] = %d, want 1", reason, result.Skips[reason])
		}
	}
	if diff := cmp.Diff([]string{Header}, sink.Lines()); diff != "" {
		t.Errorf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestDriver_Run_InputMissing(t *testing.T) {
	source := &mockSource{missing: true, lines: []string{"header", "1,a,1,b"}}
	sink := lineio.NewMemorySink("out.csv")

	result, err := NewDriver().Run(context.Background(), source, sink)
	if !errors.Is(err, ErrInputMissing) {
		t.Fatalf("Run() error = %v, want ErrInputMissing", err)
	}

	if result == nil {
		t.Fatal("Run() returned nil result")
	}
	if result.Summary != (Summary{}) {
		t.Errorf("Summary = %+v, want zero", result.Summary)
	}
	if !result.Metadata.InputMissing {
		t.Error("Metadata.InputMissing = false, want true")
	}
	if source.nexts != 0 {
		t.Errorf("source read %d times, want 0", source.nexts)
	}
	if sink.Writes() != 0 {
		t.Errorf("sink written %d times, want 0", sink.Writes())
	}
	if result.Metadata.Written {
		t.Error("Metadata.Written = true, want false")
	}
}

func TestDriver_Run_ReadErrorKeepsPartialResults(t *testing.T) {
	source := &mockSource{
		lines:   []string{"header", "1,tv,600,Electronics", "bad"},
		failErr: errors.New("disk gone"),
	}
	sink := lineio.NewMemorySink("out.csv")

	result, err := NewDriver().Run(context.Background(), source, sink)
	if !errors.Is(err, ErrRead) {
		t.Fatalf("Run() error = %v, want ErrRead", err)
	}
	if errors.Is(err, ErrWrite) {
		t.Error("Run() error should not wrap ErrWrite")
	}

	wantSummary := Summary{RowsRead: 2, RowsTransformed: 1, RowsSkipped: 1}
	if result.Summary != wantSummary {
		t.Errorf("Summary = %+v, want %+v", result.Summary, wantSummary)
	}
	want := []string{Header, "1,TV,540.00,Premium Electronics,Premium"}
	if diff := cmp.Diff(want, sink.Lines()); diff != "" {
		t.Errorf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestDriver_Run_HeaderReadError(t *testing.T) {
	source := &mockSource{failErr: errors.New("permission denied")}
	sink := lineio.NewMemorySink("out.csv")

	result, err := NewDriver().Run(context.Background(), source, sink)
	if !errors.Is(err, ErrRead) {
		t.Fatalf("Run() error = %v, want ErrRead", err)
	}
	if diff := cmp.Diff([]string{Header}, sink.Lines()); diff != "" {
		t.Errorf("output mismatch (-want +got):\n%s", diff)
	}
	if result.Summary != (Summary{}) {
		t.Errorf("Summary = %+v, want zero", result.Summary)
	}
}

func TestDriver_Run_WriteFailure(t *testing.T) {
	source := &mockSource{lines: []string{"header", "1,tv,600,Electronics", "junk"}}
	sink := &failingSink{}

	result, err := NewDriver().Run(context.Background(), source, sink)
	if !errors.Is(err, ErrWrite) {
		t.Fatalf("Run() error = %v, want ErrWrite", err)
	}
	if sink.calls != 1 {
		t.Errorf("sink calls = %d, want 1", sink.calls)
	}

	wantSummary := Summary{RowsRead: 2, RowsTransformed: 1, RowsSkipped: 1}
	if result.Summary != wantSummary {
		t.Errorf("Summary = %+v, want %+v", result.Summary, wantSummary)
	}
	if result.Metadata.Written {
		t.Error("Metadata.Written = true, want false")
	}
}

func TestDriver_Run_ReadAndWriteFailure(t *testing.T) {
	source := &mockSource{lines: []string{"header"}, failErr: errors.New("io")}

	_, err := NewDriver().Run(context.Background(), source, &failingSink{})
	if !errors.Is(err, ErrRead) || !errors.Is(err, ErrWrite) {
		t.Errorf("Run() error = %v, want both ErrRead and ErrWrite", err)
	}
}

func TestDriver_Run_Balanced(t *testing.T) {
	lines := []string{"header"}
	for _, l := range []string{
		"1,a,1,b", "", "2,b,2.5,Electronics", "x", "3,c,notaprice,d",
		"4,d,1000,Electronics", " 5 , e , 5 , f ", "6,f,6,g,h",
	} {
		lines = append(lines, l)
	}

	result, err := NewDriver().Run(context.Background(), &mockSource{lines: lines}, lineio.NewMemorySink("out"))
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !result.Summary.Balanced() {
		t.Errorf("Summary not balanced: %+v", result.Summary)
	}
	if result.Summary.RowsRead != len(lines)-1 {
		t.Errorf("RowsRead = %d, want %d", result.Summary.RowsRead, len(lines)-1)
	}
	if len(result.Lines) != result.Summary.RowsTransformed+1 {
		t.Errorf("len(Lines) = %d, want %d", len(result.Lines), result.Summary.RowsTransformed+1)
	}
}

func TestDriver_Run_LogsSkippedRows(t *testing.T) {
	var buf bytes.Buffer
	logger := ctxlog.New(&buf, "debug", "text")

	source := &mockSource{lines: []string{"header", "4,Widget,notanumber,Tools"}}
	_, err := NewDriver(WithLogger(logger)).Run(context.Background(), source, lineio.NewMemorySink("out"))
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "row skipped") || !strings.Contains(out, "reason=invalid_price") {
		t.Errorf("skip not logged: %q", out)
	}
	if !strings.Contains(out, "line=2") {
		t.Errorf("line number not logged: %q", out)
	}
}

func TestDriver_Run_LoggerFromContext(t *testing.T) {
	var buf bytes.Buffer
	ctx := ctxlog.WithLogger(context.Background(), ctxlog.New(&buf, "debug", "text"))

	source := &mockSource{lines: []string{"header", "bad"}}
	if _, err := NewDriver().Run(ctx, source, lineio.NewMemorySink("out")); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !strings.Contains(buf.String(), "row skipped") {
		t.Errorf("context logger not used: %q", buf.String())
	}
}

func TestDriver_Run_Files(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "products.csv")
	out := filepath.Join(dir, "transformed_products.csv")

	content := "ProductID,Name,Price,Category\n" +
		"1,tv,600,Electronics\n" +
		"2,cable,50,Electronics\n" +
		"3,desk,600,Furniture\n" +
		"4,Widget,notanumber,Tools\n" +
		"5,pen,12.345,Office\n"
	if err := os.WriteFile(in, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	result, err := NewDriver().Run(context.Background(), lineio.NewFileSource(in), lineio.NewFileSink(out))
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	want := "ProductID,Name,Price,Category,PriceRange\n" +
		"1,TV,540.00,Premium Electronics,Premium\n" +
		"2,CABLE,45.00,Electronics,Medium\n" +
		"3,DESK,600.00,Furniture,Premium\n" +
		"5,PEN,12.35,Office,Medium\n"
	if diff := cmp.Diff(want, string(data)); diff != "" {
		t.Errorf("file mismatch (-want +got):\n%s", diff)
	}

	wantSummary := Summary{RowsRead: 5, RowsTransformed: 4, RowsSkipped: 1}
	if result.Summary != wantSummary {
		t.Errorf("Summary = %+v, want %+v", result.Summary, wantSummary)
	}
}

func TestDriver_Run_MissingFileWritesNothing(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "transformed_products.csv")

	_, err := NewDriver().Run(context.Background(),
		lineio.NewFileSource(filepath.Join(dir, "nope.csv")),
		lineio.NewFileSink(out))
	if !errors.Is(err, ErrInputMissing) {
		t.Fatalf("Run() error = %v, want ErrInputMissing", err)
	}
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Errorf("output file exists after missing input (stat err = %v)", err)
	}
}

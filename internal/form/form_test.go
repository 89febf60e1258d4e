package form

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/BerylCAtieno/file-query-client/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type call struct {
	fileType models.FileType
	file     models.File
	query    string
}

type fakePredictor struct {
	mu     sync.Mutex
	calls  []call
	result string
	err    error
	gate   chan struct{}
}

func (p *fakePredictor) Predict(ctx context.Context, fileType models.FileType, file models.File, query string) (string, error) {
	p.mu.Lock()
	p.calls = append(p.calls, call{fileType, file, query})
	gate := p.gate
	p.mu.Unlock()

	if gate != nil {
		<-gate
	}
	return p.result, p.err
}

func (p *fakePredictor) callCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.calls)
}

func readyForm(p Predictor) *Form {
	f := New(p, nil)
	f.SetFileType(models.FileTypeTXT)
	f.SelectFile(&models.File{Name: "notes.txt", Content: []byte("some notes")})
	f.SetQuery("summarize")
	return f
}

func TestCanSubmit(t *testing.T) {
	file := &models.File{Name: "a.pdf", Content: []byte("x")}

	tests := []struct {
		name     string
		fileType models.FileType
		file     *models.File
		query    string
		want     bool
	}{
		{"all set", models.FileTypePDF, file, "q", true},
		{"no file type", "", file, "q", false},
		{"no file", models.FileTypePDF, nil, "q", false},
		{"empty query", models.FileTypePDF, file, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := New(&fakePredictor{}, nil)
			f.SetFileType(tt.fileType)
			f.SelectFile(tt.file)
			f.SetQuery(tt.query)

			assert.Equal(t, tt.want, f.CanSubmit())
			assert.Equal(t, tt.want, f.View().CanSubmit)
		})
	}
}

func TestSubmitIncompleteSendsNothing(t *testing.T) {
	p := &fakePredictor{result: "ANSWER"}
	f := New(p, nil)
	f.SetQuery("q")

	err := f.Submit(context.Background())
	assert.ErrorIs(t, err, ErrIncomplete)
	assert.Equal(t, 0, p.callCount())
	assert.False(t, f.Loading())
}

func TestSubmitSuccess(t *testing.T) {
	p := &fakePredictor{result: "ANSWER"}
	f := readyForm(p)

	require.NoError(t, f.Submit(context.Background()))

	assert.Equal(t, "ANSWER", f.Result())
	assert.False(t, f.Loading())

	require.Len(t, p.calls, 1)
	assert.Equal(t, models.FileTypeTXT, p.calls[0].fileType)
	assert.Equal(t, "notes.txt", p.calls[0].file.Name)
	assert.Equal(t, "summarize", p.calls[0].query)

	v := f.View()
	assert.Equal(t, "ANSWER", v.ResultOrHint)
	assert.Equal(t, SubmitLabel, v.SubmitLabel)
}

func TestSubmitFailureKeepsResult(t *testing.T) {
	p := &fakePredictor{result: "FIRST"}
	f := readyForm(p)
	require.NoError(t, f.Submit(context.Background()))

	p.err = errors.New("connection refused")
	p.result = ""

	err := f.Submit(context.Background())
	assert.Error(t, err)
	assert.Equal(t, "FIRST", f.Result())
	assert.False(t, f.Loading())
}

func TestLoadingWhileInFlight(t *testing.T) {
	p := &fakePredictor{result: "ANSWER", gate: make(chan struct{})}
	f := readyForm(p)

	done := make(chan error)
	go func() { done <- f.Submit(context.Background()) }()

	require.Eventually(t, func() bool { return f.Loading() }, time.Second, 5*time.Millisecond)
	assert.Equal(t, LoadingLabel, f.View().SubmitLabel)

	close(p.gate)
	require.NoError(t, <-done)
	assert.False(t, f.Loading())
	assert.Equal(t, "ANSWER", f.Result())
}

// sequencedPredictor releases each call on its own channel.
type sequencedPredictor struct {
	mu      sync.Mutex
	started chan int
	release []chan string
}

func (p *sequencedPredictor) Predict(ctx context.Context, fileType models.FileType, file models.File, query string) (string, error) {
	p.mu.Lock()
	idx := len(p.release)
	ch := make(chan string)
	p.release = append(p.release, ch)
	p.mu.Unlock()

	p.started <- idx
	return <-ch, nil
}

func (p *sequencedPredictor) answer(idx int, result string) {
	p.mu.Lock()
	ch := p.release[idx]
	p.mu.Unlock()
	ch <- result
}

func TestOverlappingSubmissionsLastWins(t *testing.T) {
	p := &sequencedPredictor{started: make(chan int)}
	f := readyForm(p)

	first := make(chan error)
	go func() { first <- f.Submit(context.Background()) }()
	<-p.started

	second := make(chan error)
	go func() { second <- f.Submit(context.Background()) }()
	<-p.started

	p.answer(1, "NEW")
	require.NoError(t, <-second)
	assert.True(t, f.Loading())

	p.answer(0, "STALE")
	require.NoError(t, <-first)

	assert.Equal(t, "NEW", f.Result())
	assert.False(t, f.Loading())
}

func TestSelectFileReplacesPrevious(t *testing.T) {
	f := New(&fakePredictor{}, nil)

	f.SelectFile(&models.File{Name: "first.pdf"})
	assert.Equal(t, SelectedFileText+"first.pdf", f.View().FileLabel)

	f.SelectFile(&models.File{Name: "second.pdf"})
	v := f.View()
	assert.Equal(t, "second.pdf", v.FileName)
	assert.Equal(t, SelectedFileText+"second.pdf", v.FileLabel)

	f.SelectFile(nil)
	assert.Equal(t, "second.pdf", f.View().FileName)
}

func TestInitialView(t *testing.T) {
	v := New(&fakePredictor{}, nil).View()

	assert.Equal(t, models.FileTypePDF, v.FileType)
	assert.Equal(t, ".pdf", v.Accept)
	assert.Equal(t, NoFileLabel, v.FileLabel)
	assert.Equal(t, NoResult, v.ResultOrHint)
	assert.False(t, v.HasResult)
	assert.True(t, v.InputLocked)
	assert.False(t, v.CanSubmit)
}

func TestPreviewFollowsSelection(t *testing.T) {
	f := New(&fakePredictor{}, nil)
	f.SetFileType(models.FileTypeCSV)
	f.SelectFile(&models.File{Name: "t.csv", Content: []byte("a,b\n1,2\n")})

	assert.Contains(t, f.View().Preview, "Columns: a, b")
}

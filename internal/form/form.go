// Package form holds the state of one upload form: the selected file, its
// type, the query, the last result and whether a submission is in flight.
package form

import (
	"context"
	"errors"
	"sync"

	"github.com/BerylCAtieno/file-query-client/internal/models"
	"github.com/BerylCAtieno/file-query-client/internal/preview"
	"github.com/BerylCAtieno/file-query-client/internal/utils"
)

const (
	NoResult         = "NO Result"
	NoFileLabel      = "Select or Drop a File"
	SelectedFileText = "Selected File: "
	SubmitLabel      = "Submit"
	LoadingLabel     = "Loading..."
)

var ErrIncomplete = errors.New("file type, file and query are required")

type Predictor interface {
	Predict(ctx context.Context, fileType models.FileType, file models.File, query string) (string, error)
}

type Form struct {
	predictor Predictor
	logger    *utils.Logger

	mu       sync.Mutex
	file     *models.File
	preview  string
	fileType models.FileType
	query    string
	result   string

	// inflight counts running submissions; seq numbers them so that only the
	// most recent one may write the result.
	inflight int
	seq      uint64
}

// New returns a form with the pdf type preselected.
func New(predictor Predictor, logger *utils.Logger) *Form {
	if logger == nil {
		logger = utils.NopLogger()
	}

	return &Form{
		predictor: predictor,
		logger:    logger,
		fileType:  models.FileTypePDF,
	}
}

// SelectFile replaces the selected file. A nil file leaves the selection as is.
func (f *Form) SelectFile(file *models.File) {
	if file == nil {
		return
	}

	text, err := preview.Generate(f.FileType(), file)
	if err != nil {
		f.logger.Debug("No preview for selected file", "filename", file.Name, "error", err)
		text = ""
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	f.file = file
	f.preview = text
}

func (f *Form) SetFileType(fileType models.FileType) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.fileType = fileType
}

func (f *Form) SetQuery(query string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.query = query
}

func (f *Form) FileType() models.FileType {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.fileType
}

func (f *Form) Result() string {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.result
}

func (f *Form) Loading() bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.inflight > 0
}

func (f *Form) CanSubmit() bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.canSubmit()
}

func (f *Form) canSubmit() bool {
	return f.fileType != "" && f.file != nil && f.query != ""
}

// Submit sends the selected file and query to the predictor and stores the
// answer as the form's result. Failures are logged and returned; the previous
// result is kept.
func (f *Form) Submit(ctx context.Context) error {
	f.mu.Lock()
	if !f.canSubmit() {
		f.mu.Unlock()
		return ErrIncomplete
	}

	f.inflight++
	f.seq++

	seq := f.seq
	file := *f.file
	fileType := f.fileType
	query := f.query
	f.mu.Unlock()

	result, err := f.predictor.Predict(ctx, fileType, file, query)

	f.mu.Lock()
	defer f.mu.Unlock()

	f.inflight--

	if err != nil {
		f.logger.Error("Submission failed", "error", err, "file_type", fileType, "filename", file.Name)
		return err
	}

	if seq != f.seq {
		f.logger.Info("Discarding stale result", "seq", seq, "latest", f.seq)
		return nil
	}

	f.result = result
	return nil
}

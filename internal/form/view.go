package form

import (
	"github.com/BerylCAtieno/file-query-client/internal/models"
)

// View is a render-ready snapshot of a form.
type View struct {
	FileType     models.FileType `json:"file_type"`
	Accept       string          `json:"accept"`
	FileName     string          `json:"file_name,omitempty"`
	FileLabel    string          `json:"file_label"`
	Preview      string          `json:"preview,omitempty"`
	Query        string          `json:"query"`
	Result       string          `json:"result"`
	HasResult    bool            `json:"has_result"`
	Loading      bool            `json:"loading"`
	InputLocked  bool            `json:"input_locked"`
	CanSubmit    bool            `json:"can_submit"`
	SubmitLabel  string          `json:"submit_label"`
	ResultOrHint string          `json:"result_or_hint"`
}

func (f *Form) View() View {
	f.mu.Lock()
	defer f.mu.Unlock()

	v := View{
		FileType:     f.fileType,
		Accept:       f.fileType.Accept(),
		FileLabel:    NoFileLabel,
		Preview:      f.preview,
		Query:        f.query,
		Result:       f.result,
		HasResult:    f.result != "",
		Loading:      f.inflight > 0,
		InputLocked:  f.fileType == "" || f.file == nil,
		CanSubmit:    f.canSubmit(),
		SubmitLabel:  SubmitLabel,
		ResultOrHint: NoResult,
	}

	if f.file != nil {
		v.FileName = f.file.Name
		v.FileLabel = SelectedFileText + f.file.Name
	}

	if v.Loading {
		v.SubmitLabel = LoadingLabel
	}

	if v.HasResult {
		v.ResultOrHint = f.result
	}

	return v
}

// Package preview produces a short text excerpt of a selected file.
package preview

import (
	"fmt"
	"strings"

	"github.com/BerylCAtieno/file-query-client/internal/models"
)

// MaxRunes caps the length of a preview.
const MaxRunes = 500

// Generate dispatches on the selected file type, falling back to the file's
// extension when no type is selected.
func Generate(fileType models.FileType, file *models.File) (string, error) {
	if file == nil || len(file.Content) == 0 {
		return "", fmt.Errorf("no file content")
	}

	if !fileType.Known() {
		fileType = models.FileTypeFromName(file.Name)
	}

	var (
		text string
		err  error
	)

	switch fileType {
	case models.FileTypePDF:
		text, err = PDF(file.Content)
	case models.FileTypeTXT:
		text, err = TXT(file.Content)
	case models.FileTypeCSV:
		text, err = CSV(file.Content)
	default:
		return "", fmt.Errorf("no preview for %q", file.Name)
	}

	if err != nil {
		return "", err
	}

	return truncate(text, MaxRunes), nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return strings.TrimSpace(string(r[:n])) + "..."
}

package preview

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// CSV summarizes a table as its header line and the number of data rows.
func CSV(data []byte) (string, error) {
	text, err := decodeText(data)
	if err != nil {
		return "", fmt.Errorf("failed to decode csv file: %w", err)
	}

	r := csv.NewReader(bytes.NewReader([]byte(text)))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return "", fmt.Errorf("empty csv file")
	}
	if err != nil {
		return "", fmt.Errorf("failed to read csv header: %w", err)
	}

	rows := 0
	for {
		_, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", fmt.Errorf("failed to read csv row %d: %w", rows+1, err)
		}
		rows++
	}

	return fmt.Sprintf("Columns: %s\nRows: %d", strings.Join(header, ", "), rows), nil
}

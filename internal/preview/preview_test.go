package preview

import (
	"strings"
	"testing"

	"github.com/BerylCAtieno/file-query-client/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTXT(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want string
	}{
		{"utf8", []byte("hello\r\n\r\n  world  \n"), "hello\nworld"},
		{"utf8 bom", []byte("\xEF\xBB\xBFhello"), "hello"},
		{"utf16 le", []byte{0xFF, 0xFE, 'h', 0, 'i', 0}, "hi"},
		{"utf16 be", []byte{0xFE, 0xFF, 0, 'h', 0, 'i'}, "hi"},
		{"windows 1252", []byte("caf\xe9"), "café"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := TXT(tt.data)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTXTEmpty(t *testing.T) {
	_, err := TXT(nil)
	assert.Error(t, err)

	_, err = TXT([]byte(" \n\r\n "))
	assert.Error(t, err)
}

func TestCSV(t *testing.T) {
	got, err := CSV([]byte("name,age\nalice,30\nbob,41\n"))
	require.NoError(t, err)
	assert.Equal(t, "Columns: name, age\nRows: 2", got)

	_, err = CSV([]byte(""))
	assert.Error(t, err)
}

func TestPDFRejectsGarbage(t *testing.T) {
	_, err := PDF([]byte("definitely not a pdf"))
	assert.Error(t, err)
}

func TestGenerate(t *testing.T) {
	long := strings.Repeat("a", MaxRunes+20)

	got, err := Generate(models.FileTypeTXT, &models.File{Name: "a.txt", Content: []byte(long)})
	require.NoError(t, err)
	assert.Equal(t, MaxRunes+3, len([]rune(got)))
	assert.True(t, strings.HasSuffix(got, "..."))

	got, err = Generate("", &models.File{Name: "table.CSV", Content: []byte("a,b\n1,2\n")})
	require.NoError(t, err)
	assert.Contains(t, got, "Rows: 1")

	_, err = Generate(models.FileTypeTXT, nil)
	assert.Error(t, err)

	_, err = Generate("", &models.File{Name: "image.png", Content: []byte{1}})
	assert.Error(t, err)
}

package upload

import (
	"mime/multipart"
	"net/textproto"
	"strings"
	"testing"

	"github.com/hirwaf/task-management-be/internal/entity"
)

func header(name, contentType string, size int64) *multipart.FileHeader {
	h := textproto.MIMEHeader{}
	h.Set("Content-Type", contentType)
	return &multipart.FileHeader{
		Filename: name,
		Header:   h,
		Size:     size,
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		header  *multipart.FileHeader
		wantErr error
	}{
		{"png проходит", header("a.png", "image/png", 100), nil},
		{"pdf проходит", header("doc.pdf", "application/pdf", 100), nil},
		{"jpeg проходит", header("b.jpeg", "image/jpeg", MaxFileSize), nil},
		{"слишком большой", header("big.png", "image/png", MaxFileSize+1), entity.ErrFileTooLarge},
		{"запрещенный тип", header("x.gif", "image/gif", 100), entity.ErrFileType},
		{"без типа", header("x.png", "", 100), entity.ErrFileType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := Validate(tt.header); err != tt.wantErr {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestSaveAllTooManyFiles(t *testing.T) {
	storage, err := NewStorage(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	files := []*multipart.FileHeader{
		header("a.png", "image/png", 1),
		header("b.png", "image/png", 1),
		header("c.png", "image/png", 1),
		header("d.png", "image/png", 1),
	}

	if _, err := storage.SaveAll(files); err != entity.ErrTooManyFiles {
		t.Errorf("Expected ErrTooManyFiles, got %v", err)
	}
}

func TestStoredName(t *testing.T) {
	name := StoredName("My Report.Final.PDF")

	if !strings.HasSuffix(name, ".PDF") {
		t.Errorf("расширение должно сохраниться: %q", name)
	}
	if !strings.HasPrefix(name, "myreport-") {
		t.Errorf("база - до первой точки, без пробелов, в нижнем регистре: %q", name)
	}
	if strings.Contains(name, " ") {
		t.Errorf("в имени не должно быть пробелов: %q", name)
	}

	// случайный суффикс делает имена уникальными
	if StoredName("a.png") == StoredName("a.png") {
		t.Error("два вызова не должны давать одинаковые имена")
	}
}

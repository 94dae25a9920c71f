package upload

import (
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/hirwaf/task-management-be/internal/entity"
)

// Лимиты приема файлов
const (
	MaxFileSize = 5 << 20
	MaxFiles    = 3
)

var allowedTypes = map[string]bool{
	"image/png":       true,
	"image/jpg":       true,
	"image/jpeg":      true,
	"application/pdf": true,
}

// Storage принимает multipart-файлы и кладет их на диск под
// рандомизированными именами. Привязкой к задачам не занимается.
type Storage struct {
	dir string
}

func NewStorage(dir string) (*Storage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Storage{dir: dir}, nil
}

// SaveAll сохраняет батч целиком или не сохраняет ничего:
// первый отклоненный файл останавливает прием.
func (s *Storage) SaveAll(files []*multipart.FileHeader) ([]entity.UploadedFile, error) {
	if len(files) > MaxFiles {
		return nil, entity.ErrTooManyFiles
	}

	var saved []entity.UploadedFile
	for _, header := range files {
		file, err := s.save(header)
		if err != nil {
			return nil, err
		}
		saved = append(saved, *file)
	}
	return saved, nil
}

func (s *Storage) save(header *multipart.FileHeader) (*entity.UploadedFile, error) {
	if err := Validate(header); err != nil {
		return nil, err
	}

	src, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	path := filepath.Join(s.dir, StoredName(header.Filename))
	dst, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(path)
		return nil, err
	}

	return &entity.UploadedFile{
		Name:     header.Filename,
		FilePath: path,
		Size:     header.Size,
	}, nil
}

// Validate - проверка размера и типа до чтения содержимого
func Validate(header *multipart.FileHeader) error {
	if header.Size > MaxFileSize {
		return entity.ErrFileTooLarge
	}
	if !allowedTypes[header.Header.Get("Content-Type")] {
		return entity.ErrFileType
	}
	return nil
}

// StoredName - <имя-без-пробелов>-<случайный суффикс><расширение>.
// Оригинальное имя остается только в строке вложения.
func StoredName(original string) string {
	ext := filepath.Ext(original)
	base := strings.TrimSuffix(original, ext)
	if dot := strings.Index(base, "."); dot >= 0 {
		base = base[:dot]
	}
	base = strings.ToLower(strings.ReplaceAll(base, " ", ""))
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return base + "-" + suffix + ext
}

package entity

import "time"

// Attachment всегда привязан ровно к одной задаче.
type Attachment struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	FilePath  string    `json:"file_path"`
	TaskID    int       `json:"task_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UploadedFile - уже принятый и сохранённый на диск файл,
// готовый к привязке к задаче.
type UploadedFile struct {
	Name     string
	FilePath string
	Size     int64
}

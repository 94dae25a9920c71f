package usecase

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/hirwaf/task-management-be/internal/entity"
	"github.com/hirwaf/task-management-be/internal/repository"
	"github.com/xuri/excelize/v2"
)

const exportSheet = "Tasks"

var exportHeader = []interface{}{
	"id", "title", "description", "priority", "start", "end",
	"is_draft", "is_done", "total_attachments", "created_at", "updated_at",
}

type ExportService struct {
	taskRepo repository.ITaskRepository
}

func NewExportService(taskRepo repository.ITaskRepository) *ExportService {
	return &ExportService{
		taskRepo: taskRepo,
	}
}

// ExportExcel выгружает отфильтрованную страницу задач владельца в xlsx.
// Фильтры, сортировка и пагинация те же, что у списка. Пустая выборка -
// это not found, выгружать нечего.
func (s *ExportService) ExportExcel(ctx context.Context, userID int, params *entity.TaskSearchParams) (string, error) {
	tasks, itemCount, err := s.taskRepo.List(ctx, userID, params)
	if err != nil {
		return "", err
	}
	if itemCount <= 0 {
		return "", entity.ErrNothingToExport
	}

	excel := excelize.NewFile()
	defer excel.Close()

	if err := excel.SetSheetName("Sheet1", exportSheet); err != nil {
		return "", err
	}
	if err := excel.SetSheetRow(exportSheet, "A1", &exportHeader); err != nil {
		return "", err
	}

	for i, task := range tasks {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return "", err
		}
		row := exportRow(&task)
		if err := excel.SetSheetRow(exportSheet, cell, &row); err != nil {
			return "", err
		}
	}

	exportPath := filepath.Join(os.TempDir(), fmt.Sprintf("tasks-%d-%d.xlsx", userID, time.Now().UnixNano()))
	if err := excel.SaveAs(exportPath); err != nil {
		return "", err
	}

	return exportPath, nil
}

func exportRow(task *entity.Task) []interface{} {
	description := ""
	if task.Description != nil {
		description = *task.Description
	}
	start, end := "", ""
	if task.Start != nil {
		start = task.Start.Format(time.RFC3339)
	}
	if task.End != nil {
		end = task.End.Format(time.RFC3339)
	}
	return []interface{}{
		task.ID, task.Title, description, string(task.Priority), start, end,
		task.IsDraft, task.IsDone, task.TotalAttachments,
		task.CreatedAt.Format(time.RFC3339), task.UpdatedAt.Format(time.RFC3339),
	}
}

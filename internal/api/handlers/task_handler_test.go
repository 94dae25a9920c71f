package handlers

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/hirwaf/task-management-be/internal/entity"
)

func TestParseSearchParamsDefaults(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/v1/tasks", nil)

	params := parseSearchParams(r)

	if params.Drafts {
		t.Error("без drafts в запросе наружу идут только не-черновики")
	}
	if params.Status != nil || params.Priority != nil || params.Project != nil {
		t.Error("незаданные фильтры должны остаться nil")
	}
	if params.Start != nil || params.End != nil {
		t.Error("незаданные даты должны остаться nil")
	}
	if params.PageOrDefault() != entity.DefaultPage || params.LimitOrDefault() != entity.DefaultLimit {
		t.Error("дефолты пагинации не применились")
	}
}

func TestParseSearchParamsAllValues(t *testing.T) {
	r := httptest.NewRequest("GET",
		"/api/v1/tasks?title=rep&priority=High&status=true&drafts=true&project=7&start=2024-01-01&end=2024-12-31T23:59:59Z&sortBy=createdAt&order=desc&page=2&limit=10", nil)

	params := parseSearchParams(r)

	if params.Title != "rep" {
		t.Errorf("Title = %q", params.Title)
	}
	if params.Priority == nil || *params.Priority != entity.PriorityHigh {
		t.Errorf("Priority = %v", params.Priority)
	}
	if params.Status == nil || !*params.Status {
		t.Errorf("Status = %v", params.Status)
	}
	if !params.Drafts {
		t.Error("Drafts должен быть true")
	}
	if params.Project == nil || *params.Project != 7 {
		t.Errorf("Project = %v", params.Project)
	}
	if params.Start == nil || params.Start.Year() != 2024 {
		t.Errorf("Start = %v", params.Start)
	}
	if params.End == nil || params.End.Month() != time.December {
		t.Errorf("End = %v", params.End)
	}
	if params.SortBy != "createdAt" || params.Order != entity.OrderDesc {
		t.Errorf("сортировка: %q %q", params.SortBy, params.Order)
	}
	if params.Page != 2 || params.Limit != 10 {
		t.Errorf("пагинация: page=%d limit=%d", params.Page, params.Limit)
	}
}

func TestParseSearchParamsGarbage(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/v1/tasks?status=banana&drafts=banana&project=abc&start=not-a-date", nil)

	params := parseSearchParams(r)

	if params.Status != nil {
		t.Error("кривой status не должен попадать в фильтр")
	}
	if params.Drafts {
		t.Error("кривой drafts падает в дефолт false")
	}
	if params.Project != nil {
		t.Error("кривой project не должен попадать в фильтр")
	}
	if params.Start != nil {
		t.Error("кривая дата не должна попадать в фильтр")
	}
}

func TestParseIntList(t *testing.T) {
	got := parseIntList([]string{"1,2", "3", "x", " 4 "})

	want := []int{1, 2, 3, 4}
	if len(got) != len(want) {
		t.Fatalf("parseIntList = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("parseIntList = %v, want %v", got, want)
		}
	}
}

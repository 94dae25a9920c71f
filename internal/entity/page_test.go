package entity

import "testing"

func TestNewPage(t *testing.T) {
	tests := []struct {
		name        string
		page        int
		take        int
		itemCount   int
		wantPages   int
		wantHasPrev bool
		wantHasNext bool
	}{
		{"первая страница из многих", 1, 25, 60, 3, false, true},
		{"средняя страница", 2, 25, 60, 3, true, true},
		{"последняя страница", 3, 25, 60, 3, true, false},
		{"неполная последняя страница считается", 1, 25, 26, 2, false, true},
		{"ровно одна страница", 1, 25, 25, 1, false, false},
		{"один элемент", 1, 25, 1, 1, false, false},
		{"пустая выдача", 1, 25, 0, 0, false, false},
		{"страница 3 пустой выдачи", 3, 25, 0, 0, true, false},
		{"limit 1", 4, 1, 10, 10, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPage(tt.page, tt.take, tt.itemCount, nil)

			if p.PageCount != tt.wantPages {
				t.Errorf("PageCount = %d, want %d", p.PageCount, tt.wantPages)
			}
			if p.HasPreviousPage != tt.wantHasPrev {
				t.Errorf("HasPreviousPage = %v, want %v", p.HasPreviousPage, tt.wantHasPrev)
			}
			if p.HasNextPage != tt.wantHasNext {
				t.Errorf("HasNextPage = %v, want %v", p.HasNextPage, tt.wantHasNext)
			}
			if p.ItemCount != tt.itemCount {
				t.Errorf("ItemCount = %d, want %d", p.ItemCount, tt.itemCount)
			}
			if p.Data == nil {
				t.Error("Data должен быть пустым слайсом, не nil")
			}
		})
	}
}

func TestSearchParamsDefaults(t *testing.T) {
	params := &TaskSearchParams{}

	if params.PageOrDefault() != DefaultPage {
		t.Errorf("PageOrDefault = %d, want %d", params.PageOrDefault(), DefaultPage)
	}
	if params.LimitOrDefault() != DefaultLimit {
		t.Errorf("LimitOrDefault = %d, want %d", params.LimitOrDefault(), DefaultLimit)
	}

	params.Page = -1
	if params.PageOrDefault() != DefaultPage {
		t.Errorf("отрицательная страница должна падать в дефолт, got %d", params.PageOrDefault())
	}

	params.Page = 7
	params.Limit = 10
	if params.PageOrDefault() != 7 || params.LimitOrDefault() != 10 {
		t.Error("заданные page/limit не должны подменяться дефолтами")
	}
}

package repository

import (
	"strconv"
	"strings"

	"github.com/hirwaf/task-management-be/internal/entity"
)

// Разрешённые колонки сортировки: ключ - имя параметра, значение - колонка
var sortColumns = map[string]string{
	"isDone":    "t.is_done",
	"createdAt": "t.created_at",
	"title":     "t.title",
	"priority":  "t.priority",
	"start":     "t.start_date",
	"end":       "t.end_date",
}

// buildTaskFilter собирает WHERE-часть списочного запроса: scope владельца
// и мягкое удаление присутствуют всегда, каждый заданный фильтр добавляет
// ровно один AND-предикат. Плейсхолдер $? заменяется на следующий номер
// аргумента.
func buildTaskFilter(ownerID int, params *entity.TaskSearchParams) (string, []any) {
	where := []string{"t.deleted_at IS NULL"}
	args := []any{}

	and := func(expr string, value any) {
		args = append(args, value)
		where = append(where, strings.Replace(expr, "$?", "$"+strconv.Itoa(len(args)), 1))
	}

	and("t.user_id = $?", ownerID)
	// черновики фильтруются всегда: без явного drafts=true наружу
	// видны только не-черновики
	and("t.is_draft = $?", params.Drafts)

	if params.Title != "" {
		and("t.title LIKE '%' || $? || '%'", params.Title)
	}
	if params.Priority != nil {
		and("t.priority = $?", *params.Priority)
	}
	if params.Status != nil {
		and("t.is_done = $?", *params.Status)
	}
	if params.Project != nil {
		// задачи без связи с проектом отсекаются
		and("EXISTS (SELECT 1 FROM task_projects tp WHERE tp.task_id = t.id AND tp.project_id = $?)", *params.Project)
	}
	if params.Start != nil {
		and("t.start_date >= $?", *params.Start)
	}
	if params.End != nil {
		and("t.end_date <= $?", *params.End)
	}

	return strings.Join(where, " AND "), args
}

// resolveOrder выбирает явную сортировку только если заданы и колонка,
// и направление, и колонка из белого списка. Иначе - дефолт: сначала
// незавершённые, свежие сверху.
func resolveOrder(sortBy string, order entity.SortOrder) string {
	col, ok := sortColumns[sortBy]
	if ok && (order == entity.OrderAsc || order == entity.OrderDesc) {
		return col + " " + string(order)
	}
	return "t.is_done ASC, t.created_at DESC"
}

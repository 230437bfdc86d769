package repository

import (
	"strings"
	"testing"
)

// --- Тесты buildHistoryWhere ---

// TestBuildHistoryWhere_Empty проверяет пустой фильтр.
func TestBuildHistoryWhere_Empty(t *testing.T) {
	where, args := buildHistoryWhere(ListFilter{}, 1)

	if where != "" {
		t.Errorf("where = %q, ожидалась пустая строка", where)
	}
	if len(args) != 0 {
		t.Errorf("args count = %d, ожидался 0", len(args))
	}
}

// TestBuildHistoryWhere_InspectionIDOnly проверяет точный фильтр по идентификатору.
func TestBuildHistoryWhere_InspectionIDOnly(t *testing.T) {
	where, args := buildHistoryWhere(ListFilter{InspectionID: "INS-1"}, 1)

	if !strings.Contains(where, "inspection_id = $1") {
		t.Errorf("where = %q, ожидалось 'inspection_id = $1'", where)
	}
	if len(args) != 1 {
		t.Fatalf("args count = %d, ожидался 1", len(args))
	}
	if args[0] != "INS-1" {
		t.Errorf("args[0] = %v, ожидался 'INS-1'", args[0])
	}
}

// TestBuildHistoryWhere_DateRange проверяет двусторонний диапазон.
func TestBuildHistoryWhere_DateRange(t *testing.T) {
	where, args := buildHistoryWhere(ListFilter{FromDate: "2024-01-10", ToDate: "2024-01-20"}, 1)

	if !strings.Contains(where, "left(create_date, 10) BETWEEN $1 AND $2") {
		t.Errorf("where = %q, ожидался BETWEEN $1 AND $2", where)
	}
	if len(args) != 2 {
		t.Fatalf("args count = %d, ожидался 2", len(args))
	}
	if args[0] != "2024-01-10" || args[1] != "2024-01-20" {
		t.Errorf("args = %v, ожидались границы в порядке from, to", args)
	}
}

// TestBuildHistoryWhere_OpenBounds проверяет дефолтные границы
// одностороннего диапазона.
func TestBuildHistoryWhere_OpenBounds(t *testing.T) {
	// Только from — to подставляется максимумом
	_, args := buildHistoryWhere(ListFilter{FromDate: "2024-01-10"}, 1)
	if len(args) != 2 {
		t.Fatalf("args count = %d, ожидался 2", len(args))
	}
	if args[0] != "2024-01-10" || args[1] != maxFilterDate {
		t.Errorf("args = %v, ожидались ['2024-01-10', %q]", args, maxFilterDate)
	}

	// Только to — from подставляется минимумом
	_, args = buildHistoryWhere(ListFilter{ToDate: "2024-01-20"}, 1)
	if len(args) != 2 {
		t.Fatalf("args count = %d, ожидался 2", len(args))
	}
	if args[0] != minFilterDate || args[1] != "2024-01-20" {
		t.Errorf("args = %v, ожидались [%q, '2024-01-20']", args, minFilterDate)
	}
}

// TestBuildHistoryWhere_Combined проверяет AND-комбинацию идентификатора
// и диапазона, а также порядок аргументов: сперва id, затем границы —
// ровно в порядке упоминания $n.
func TestBuildHistoryWhere_Combined(t *testing.T) {
	where, args := buildHistoryWhere(ListFilter{
		InspectionID: "INS-7",
		FromDate:     "2024-01-01",
		ToDate:       "2024-02-01",
	}, 1)

	if !strings.Contains(where, "inspection_id = $1") {
		t.Errorf("where = %q, ожидалось 'inspection_id = $1'", where)
	}
	if !strings.Contains(where, "BETWEEN $2 AND $3") {
		t.Errorf("where = %q, ожидался 'BETWEEN $2 AND $3'", where)
	}
	if !strings.Contains(where, " AND ") {
		t.Errorf("where = %q, ожидалась AND-комбинация", where)
	}

	if len(args) != 3 {
		t.Fatalf("args count = %d, ожидался 3", len(args))
	}
	if args[0] != "INS-7" || args[1] != "2024-01-01" || args[2] != "2024-02-01" {
		t.Errorf("args = %v, нарушен порядок привязки параметров", args)
	}
}

// TestBuildHistoryWhere_StartArg проверяет нумерацию с произвольного $n.
func TestBuildHistoryWhere_StartArg(t *testing.T) {
	where, _ := buildHistoryWhere(ListFilter{InspectionID: "INS-1", FromDate: "2024-01-01"}, 5)

	if !strings.Contains(where, "inspection_id = $5") {
		t.Errorf("where = %q, ожидалось 'inspection_id = $5'", where)
	}
	if !strings.Contains(where, "BETWEEN $6 AND $7") {
		t.Errorf("where = %q, ожидался 'BETWEEN $6 AND $7'", where)
	}
}

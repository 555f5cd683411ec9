package filter

import (
	"testing"
	"time"

	"github.com/ALT-F4-LLC/hours/internal/model"
)

func at(s string) time.Time {
	t, err := time.Parse(time.DateTime, s)
	if err != nil {
		panic(err)
	}
	return t
}

func logs(times ...string) []model.TimeLog {
	out := make([]model.TimeLog, len(times))
	for i, s := range times {
		out[i] = model.TimeLog{ID: i + 1, UserID: i%2 + 1, CreatedAt: at(s)}
	}
	return out
}

func TestTimeLogsExcludesBothBounds(t *testing.T) {
	w := Window{From: at("2024-01-01 00:00:00"), To: at("2024-02-01 00:00:00")}
	entries := logs(
		"2024-01-01 00:00:00", // equal to From
		"2024-01-01 00:00:01",
		"2024-01-15 12:00:00",
		"2024-01-31 23:59:59",
		"2024-02-01 00:00:00", // equal to To
		"2023-12-31 23:59:59",
	)

	got := TimeLogs(entries, w)
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	for i, wantID := range []int{2, 3, 4} {
		if got[i].ID != wantID {
			t.Errorf("got[%d].ID = %d, want %d", i, got[i].ID, wantID)
		}
	}
}

func TestTimeLogsDegenerateWindow(t *testing.T) {
	w := Window{From: at("2024-02-01 00:00:00"), To: at("2024-01-01 00:00:00")}
	if !w.Degenerate() {
		t.Fatal("expected degenerate window")
	}
	if got := TimeLogs(logs("2024-01-15 12:00:00"), w); len(got) != 0 {
		t.Errorf("degenerate window returned %d entries, want 0", len(got))
	}
}

func TestTimeLogsEqualBounds(t *testing.T) {
	w := Window{From: at("2024-01-15 12:00:00"), To: at("2024-01-15 12:00:00")}
	if w.Degenerate() {
		t.Error("equal bounds should not be degenerate")
	}
	if got := TimeLogs(logs("2024-01-15 12:00:00"), w); len(got) != 0 {
		t.Errorf("equal bounds returned %d entries, want 0", len(got))
	}
}

func TestByUser(t *testing.T) {
	got := ByUser(logs("2024-01-01 10:00:00", "2024-01-02 10:00:00", "2024-01-03 10:00:00"), 1)
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].ID != 1 || got[1].ID != 3 {
		t.Errorf("ids = %d,%d, want 1,3", got[0].ID, got[1].ID)
	}
}

func TestParseWindow(t *testing.T) {
	w, err := ParseWindow("2024-01-01", " 2024-02-01 ")
	if err != nil {
		t.Fatalf("ParseWindow: %v", err)
	}
	if !w.From.Equal(at("2024-01-01 00:00:00")) || !w.To.Equal(at("2024-02-01 00:00:00")) {
		t.Errorf("window = %s", w)
	}
	if w.From.Location() != time.UTC {
		t.Errorf("From location = %v, want UTC", w.From.Location())
	}

	for _, bad := range [][2]string{{"2024-13-01", "2024-02-01"}, {"2024-01-01", "tomorrow"}} {
		if _, err := ParseWindow(bad[0], bad[1]); err == nil {
			t.Errorf("ParseWindow(%q, %q) expected error", bad[0], bad[1])
		}
	}
}

func TestMonth(t *testing.T) {
	w := Month(time.Date(2024, 12, 17, 15, 4, 5, 0, time.UTC))
	if !w.From.Equal(at("2024-12-01 00:00:00")) {
		t.Errorf("From = %v", w.From)
	}
	if !w.To.Equal(at("2025-01-01 00:00:00")) {
		t.Errorf("To = %v", w.To)
	}
}

func TestYear(t *testing.T) {
	w := Year(2024)
	if !w.From.Equal(at("2024-01-01 00:00:00")) {
		t.Errorf("From = %v", w.From)
	}
	if !w.To.Equal(at("2024-12-31 23:59:59")) {
		t.Errorf("To = %v", w.To)
	}
	if w.Contains(at("2024-12-31 23:59:59")) {
		t.Error("the last second of the year is excluded")
	}
	if !w.Contains(at("2024-12-31 23:59:58")) {
		t.Error("expected Dec 31 23:59:58 to be inside the year window")
	}
}

package perflog

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestAppend(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pushes.csv")

	recs := []Record{
		{File: "data.csv", Bytes: 2048, Duration: 2 * time.Second, Result: "ok"},
		{File: "log.txt", Bytes: 0, Duration: 0, Result: "skipped"},
	}
	for _, r := range recs {
		if err := Append(path, r); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want header + 2 records", len(rows))
	}

	if !strings.HasPrefix(csvHeader, strings.Join(rows[0], ",")) {
		t.Errorf("header row = %v", rows[0])
	}
	if rows[1][1] != "data.csv" || rows[1][2] != "2048" || rows[1][4] != "1.0" {
		t.Errorf("first record = %v", rows[1])
	}
	if rows[2][1] != "log.txt" || rows[2][4] != "0.0" || rows[2][5] != "skipped" {
		t.Errorf("second record = %v", rows[2])
	}
}

func TestAppendWritesHeaderOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pushes.csv")

	for i := 0; i < 2; i++ {
		if err := Append(path, Record{File: "data.csv", Result: "ok"}); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if got := strings.Count(string(data), "Timestamp,"); got != 1 {
		t.Errorf("header written %d times, want 1", got)
	}
}

// Package perflog appends a CSV record per archive push, so operators
// can eyeball transfer health without scraping application logs.
package perflog

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"time"
)

// csvHeader is written once, when the log file is created.
const csvHeader = "Timestamp,File,Bytes,Seconds,KBps,Result\n"

// Record is one completed (or failed) upload.
type Record struct {
	File     string
	Bytes    int64
	Duration time.Duration
	Result   string // "ok" or the error text
}

// Append writes r to the CSV file at path, creating the file with a
// header line when it does not exist yet.
func Append(path string, r Record) error {
	_, statErr := os.Stat(path)
	fileExists := statErr == nil

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	if !fileExists {
		if _, err := f.WriteString(csvHeader); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
	}

	secs := r.Duration.Seconds()
	kbps := 0.0
	if secs > 0 {
		kbps = float64(r.Bytes) / secs / 1024
	}

	w := csv.NewWriter(f)
	if err := w.Write([]string{
		time.Now().Format(time.RFC3339),
		r.File,
		strconv.FormatInt(r.Bytes, 10),
		strconv.FormatFloat(secs, 'f', 2, 64),
		strconv.FormatFloat(kbps, 'f', 1, 64),
		r.Result,
	}); err != nil {
		return fmt.Errorf("write record: %w", err)
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush: %w", err)
	}
	return nil
}

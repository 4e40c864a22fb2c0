package store

import (
	"bufio"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// scanRecords feeds every non-blank line of r to parse. Lines parse rejects
// are returned as *LineError values carrying path and line number; the
// final error is only set when reading itself fails.
func scanRecords[T any](r io.Reader, path string, parse func(string) (T, error)) ([]T, []error, error) {
	var (
		records []T
		skipped []error
	)
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		record, err := parse(line)
		if err != nil {
			var lineErr *LineError
			if !errors.As(err, &lineErr) {
				lineErr = &LineError{Kind: ErrMalformedValue, Msg: err.Error()}
			}
			lineErr.Path = path
			lineErr.Line = lineNo
			skipped = append(skipped, lineErr)
			continue
		}
		records = append(records, record)
	}
	return records, skipped, scanner.Err()
}

func splitFields(line string) []string {
	parts := strings.Split(line, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// FormatPrice renders prices the way the data files hold them:
// shortest form, with at least one decimal place ("10.0", "12.5").
func FormatPrice(price float64) string {
	s := strconv.FormatFloat(price, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

// writeFileAtomic replaces path with data through a temporary file in the
// same directory so an interrupted save never leaves a truncated file.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	return os.Rename(tmpName, path)
}

// Package script loads WL program files into program memory.
package script

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Program is a loaded WL program: one instruction per line, addressed by
// 0-based line number.
type Program struct {
	FileName string // base name of the program file
	Lines    []string
	Size     int64 // file size in bytes
}

// Load reads the program file at path. UTF-8 and UTF-16 input, with or
// without a byte-order mark, is normalized to UTF-8, and CRLF line endings
// are accepted.
func Load(path string) (*Program, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	content, err := normalizeEncoding(data)
	if err != nil {
		return nil, fmt.Errorf("failed to convert encoding: %w", err)
	}

	return &Program{
		FileName: filepath.Base(path),
		Lines:    Parse(content),
		Size:     info.Size(),
	}, nil
}

// Parse splits program text into lines. Blank lines are kept: line numbers
// are jump targets, so every line must stay addressable. Only a single
// trailing newline is dropped.
func Parse(content string) []string {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.TrimSuffix(content, "\n")
	if content == "" {
		return nil
	}
	return strings.Split(content, "\n")
}

// normalizeEncoding decodes raw file bytes to UTF-8. A UTF-16 byte-order
// mark selects UTF-16; otherwise the input is treated as UTF-8 and a UTF-8
// BOM, if present, is stripped.
func normalizeEncoding(data []byte) (string, error) {
	decoder := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	reader := transform.NewReader(bytes.NewReader(data), decoder)

	utf8Data, err := io.ReadAll(reader)
	if err != nil {
		return "", fmt.Errorf("failed to decode program text: %w", err)
	}

	return string(utf8Data), nil
}

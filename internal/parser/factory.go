package parser

import (
	"fmt"
	"path/filepath"
	"strings"
)

// NewParser creates a parser based on file extension or content
func NewParser(filename string, data []byte, profile Profile) (Parser, error) {
	// First try by extension
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".fit":
		return NewFITParser(profile), nil
	case ".json":
		return NewJSONParser(), nil
	}

	return NewParserFromData(data, profile)
}

// NewParserFromData creates a parser based on file content
func NewParserFromData(data []byte, profile Profile) (Parser, error) {
	fileType := DetectFileTypeFromData(data)

	switch fileType {
	case FileTypeFIT:
		return NewFITParser(profile), nil
	case FileTypeJSON:
		return NewJSONParser(), nil
	default:
		return nil, fmt.Errorf("unsupported file type: %s", fileType)
	}
}

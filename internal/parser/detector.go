package parser

import "bytes"

type FileType string

const (
	FileTypeFIT     FileType = "fit"
	FileTypeJSON    FileType = "json"
	FileTypeUnknown FileType = "unknown"
)

func DetectFileTypeFromData(data []byte) FileType {
	// FIT header carries ".FIT" at offset 8
	if len(data) >= 12 && bytes.Equal(data[8:12], []byte(".FIT")) {
		return FileTypeFIT
	}

	trimmed := bytes.TrimLeft(data, " \t\r\n\ufeff")
	if len(trimmed) > 0 && (trimmed[0] == '[' || trimmed[0] == '{') {
		return FileTypeJSON
	}

	return FileTypeUnknown
}

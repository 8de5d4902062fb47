// Package filemeta infers display metadata for tracked files from their
// source paths: base name, mimetype and whether the path came from a
// cloud-connector sync.
package filemeta

import (
	"path"
	"strings"
)

// mimeByExt covers the document types the ingestion pipeline accepts. The
// table is fixed rather than read from the host system so projections are
// identical everywhere.
var mimeByExt = map[string]string{
	".pdf":  "application/pdf",
	".txt":  "text/plain",
	".md":   "text/markdown",
	".html": "text/html",
	".htm":  "text/html",
	".csv":  "text/csv",
	".json": "application/json",
	".xml":  "application/xml",
	".rtf":  "application/rtf",
	".epub": "application/epub+zip",
	".doc":  "application/msword",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	".ppt":  "application/vnd.ms-powerpoint",
	".pptx": "application/vnd.openxmlformats-officedocument.presentationml.presentation",
	".xls":  "application/vnd.ms-excel",
	".xlsx": "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
}

// Filename returns the base name of a source path, or the path itself when it
// has no separators.
func Filename(sourceURL string) string {
	if sourceURL == "" {
		return ""
	}
	return path.Base(sourceURL)
}

// MimeType guesses a file's mimetype from its extension. Unknown extensions
// fall back to application/octet-stream.
func MimeType(name string) string {
	ext := strings.ToLower(path.Ext(name))
	if mt, ok := mimeByExt[ext]; ok {
		return mt
	}
	return "application/octet-stream"
}

// IsRemote reports whether a source path came from a cloud connector: those
// paths are relative and contain separators ("Reports/2024/q1.pdf"), while
// direct uploads are bare names or absolute local paths.
func IsRemote(sourceURL string) bool {
	return strings.Contains(sourceURL, "/") && !strings.HasPrefix(sourceURL, "/")
}

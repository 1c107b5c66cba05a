package codeexecutors

import (
	"mime"
	"path"
	"strings"
)

const defaultMimeType = "application/octet-stream"

// mimeTypes takes precedence over the system's MIME database, which varies
// from host to host and, for example, doesn't know about CSV everywhere.
var mimeTypes = map[string]string{
	".csv":  "text/csv",
	".gif":  "image/gif",
	".html": "text/html",
	".jpeg": "image/jpeg",
	".jpg":  "image/jpeg",
	".json": "application/json",
	".pdf":  "application/pdf",
	".png":  "image/png",
	".svg":  "image/svg+xml",
	".tsv":  "text/tab-separated-values",
	".txt":  "text/plain",
}

// MimeType infers a file's MIME type from the extension on its name, without
// parameters like charset. Unrecognized extensions are
// application/octet-stream.
func MimeType(name string) string {
	ext := strings.ToLower(path.Ext(name))
	if ext == "" {
		return defaultMimeType
	}
	if mimeType, ok := mimeTypes[ext]; ok {
		return mimeType
	}
	if mimeType, _, err := mime.ParseMediaType(mime.TypeByExtension(ext)); err == nil {
		return mimeType
	}
	return defaultMimeType
}

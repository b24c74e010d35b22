package handlers

import (
	"mime"
	"net/http"
)

// checkContentType пропускает запрос без заголовка, иначе требует target
func checkContentType(r *http.Request, target string) bool {
	contentType := r.Header.Get("Content-Type")
	if contentType == "" {
		return true
	}

	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}

	return mediaType == target
}

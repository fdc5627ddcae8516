package utils

import (
	"encoding/base64"
	"errors"
	"mime"
	"strings"
)

var ErrInvalidDataURI = errors.New("invalid base64 image")

// DataURI is a decoded "data:<mime>;base64,<payload>" image.
type DataURI struct {
	ContentType string
	Data        []byte
}

func ParseDataURI(s string) (DataURI, error) {
	meta, payload, ok := strings.Cut(s, ",")
	if !ok || !strings.HasPrefix(meta, "data:image/") || !strings.HasSuffix(meta, ";base64") {
		return DataURI{}, ErrInvalidDataURI
	}
	contentType := strings.TrimSuffix(strings.TrimPrefix(meta, "data:"), ";base64")

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil || len(data) == 0 {
		return DataURI{}, ErrInvalidDataURI
	}
	return DataURI{ContentType: contentType, Data: data}, nil
}

func (d DataURI) Ext() string {
	if d.ContentType == "image/jpeg" || d.ContentType == "image/jpg" {
		return ".jpg"
	}
	if exts, _ := mime.ExtensionsByType(d.ContentType); len(exts) > 0 {
		return exts[0]
	}
	if _, sub, ok := strings.Cut(d.ContentType, "/"); ok {
		return "." + sub
	}
	return ""
}

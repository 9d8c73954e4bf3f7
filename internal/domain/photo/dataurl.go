package photo

import (
	"encoding/base64"
	"fmt"
	"strings"
)

const dataURLPrefix = "data:"

func IsDataURL(s string) bool {
	return strings.HasPrefix(s, dataURLPrefix)
}

// ParseDataURL разбирает data:<mime>;base64,<payload>
func ParseDataURL(s string) (string, []byte, error) {
	if !IsDataURL(s) {
		return "", nil, ErrInvalidDataURL
	}

	header, payload, ok := strings.Cut(s[len(dataURLPrefix):], ",")
	if !ok {
		return "", nil, fmt.Errorf("%w: missing payload", ErrInvalidDataURL)
	}

	mime, enc, _ := strings.Cut(header, ";")
	if enc != "base64" {
		return "", nil, fmt.Errorf("%w: only base64 payloads are supported", ErrInvalidDataURL)
	}
	if mime == "" {
		mime = "application/octet-stream"
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrInvalidDataURL, err)
	}

	return mime, data, nil
}

func EncodeDataURL(mime string, data []byte) string {
	return dataURLPrefix + mime + ";base64," + base64.StdEncoding.EncodeToString(data)
}

func IsImage(mime string) bool {
	return strings.HasPrefix(mime, "image/")
}

// Extension расширение файла для типа изображения
func Extension(mime string) string {
	switch mime {
	case "image/jpeg", "image/jpg":
		return "jpg"
	case "image/png":
		return "png"
	case "image/gif":
		return "gif"
	case "image/webp":
		return "webp"
	case "image/heic":
		return "heic"
	}
	return "bin"
}

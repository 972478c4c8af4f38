package decoder

import (
	"encoding/base64"
	"errors"
	"fmt"
	"net/url"
	"strings"
)

const dataScheme = "data:"

var ErrDataURI = errors.New("malformed data URI")

// IsDataURI reports whether s looks like RFC 2397 data URI.
func IsDataURI(s string) bool {
	return len(s) >= len(dataScheme) && strings.EqualFold(s[:len(dataScheme)], dataScheme)
}

// ParseDataURI extracts media type and payload from RFC 2397 data URI, both
// base64 and percent encoded payloads are accepted.
func ParseDataURI(uri string) (string, []byte, error) {
	if !IsDataURI(uri) {
		return "", nil, fmt.Errorf("%w: missing data scheme", ErrDataURI)
	}
	header, payload, found := strings.Cut(uri[len(dataScheme):], ",")
	if !found {
		return "", nil, fmt.Errorf("%w: missing payload separator", ErrDataURI)
	}

	params := strings.Split(header, ";")
	mediaType := strings.TrimSpace(params[0])
	isBase64 := false
	for _, p := range params[1:] {
		if strings.EqualFold(strings.TrimSpace(p), "base64") {
			isBase64 = true
		}
	}
	if mediaType == "" {
		mediaType = "text/plain"
	}

	if isBase64 {
		// browsers are forgiving about whitespace and missing padding
		payload = strings.Join(strings.Fields(payload), "")
		data, err := base64.StdEncoding.DecodeString(payload)
		if err != nil {
			if data, err = base64.RawStdEncoding.DecodeString(strings.TrimRight(payload, "=")); err != nil {
				return "", nil, fmt.Errorf("%w: %w", ErrDataURI, err)
			}
		}
		return mediaType, data, nil
	}

	data, err := url.PathUnescape(payload)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrDataURI, err)
	}
	return mediaType, []byte(data), nil
}

// DecodeDataURI decodes image carried by data URI. Declared media type is
// informational only, actual type is sniffed from the payload.
func DecodeDataURI(uri string, opts Options) (*Image, error) {
	_, data, err := ParseDataURI(uri)
	if err != nil {
		return nil, err
	}
	return Decode(data, opts)
}

package service

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// DecodeDataURL extracts the image bytes from a data-URL style string such as
// "data:image/jpeg;base64,/9j/4AAQ...".  Everything up to the first comma is
// treated as the header and ignored.
func DecodeDataURL(s string) ([]byte, error) {
	_, payload, ok := strings.Cut(s, ",")
	if !ok {
		return nil, fmt.Errorf("%w: missing ',' separator", ErrMalformedImage)
	}
	b, err := base64.StdEncoding.DecodeString(strings.TrimSpace(payload))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedImage, err)
	}
	if len(b) == 0 {
		return nil, fmt.Errorf("%w: empty payload", ErrMalformedImage)
	}
	return b, nil
}

package vision

import (
	"encoding/base64"
	"fmt"
	"strings"
)

const defaultMIME = "image/jpeg"

// DecodeDataURI splits a data URI such as "data:image/png;base64,..." into
// its MIME type and decoded bytes. A bare base64 payload is accepted and
// assumed to be JPEG.
func DecodeDataURI(uri string) (mimeType string, data []byte, err error) {
	mimeType = defaultMIME
	payload := uri
	if header, rest, ok := strings.Cut(uri, ","); ok && strings.HasPrefix(header, "data:") {
		payload = rest
		meta := strings.TrimPrefix(header, "data:")
		if !strings.HasSuffix(meta, ";base64") {
			return "", nil, fmt.Errorf("data uri is not base64 encoded")
		}
		if mt := strings.TrimSuffix(meta, ";base64"); mt != "" {
			mimeType = mt
		}
	}

	data, err = base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("failed to decode image payload: %w", err)
	}
	return mimeType, data, nil
}

// EncodeDataURI is the inverse of DecodeDataURI.
func EncodeDataURI(mimeType string, data []byte) string {
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

package parsers

import (
	"bytes"
	"encoding/base64"
	"os"
	"strings"

	json "github.com/goccy/go-json"

	"exportlens/internal/models"
)

// SplitPayload strips the "<mime>;base64," prefix of an upload payload and
// returns the decoded bytes.
func SplitPayload(payload string) ([]byte, error) {
	parts := strings.Split(payload, ",")
	if len(parts) != 2 {
		return nil, &models.DecodeError{Reason: "payload is not validly delimited"}
	}
	raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(parts[1]))
	if err != nil {
		return nil, &models.DecodeError{Reason: "invalid base64 data", Err: err}
	}
	return raw, nil
}

// Decode turns one encoded upload payload into its JSON value.
func Decode(payload string) (any, error) {
	raw, err := SplitPayload(payload)
	if err != nil {
		return nil, err
	}
	return DecodeBytes(raw)
}

// DecodeFirst decodes the first payload of a batch. Upload widgets hand over
// lists even when a slot holds a single file.
func DecodeFirst(payloads []string) (any, error) {
	if len(payloads) == 0 {
		return nil, &models.DecodeError{Reason: "no payload"}
	}
	return Decode(payloads[0])
}

// DecodeBytes parses raw JSON. The root must be an object or an array.
func DecodeBytes(raw []byte) (any, error) {
	raw = bytes.TrimPrefix(raw, []byte("\xef\xbb\xbf"))
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, &models.DecodeError{Reason: "invalid JSON", Err: err}
	}
	switch v.(type) {
	case map[string]any, []any:
		return v, nil
	default:
		return nil, &models.DecodeError{Reason: "export root must be an object or an array"}
	}
}

// DecodeFile parses an export that was staged to disk.
func DecodeFile(path string) (any, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return DecodeBytes(raw)
}

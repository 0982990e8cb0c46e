package httpserver

import (
	"bytes"
	"encoding/json"
	"io"

	domain "github.com/bryanwahyu/content-analyzer/internal/domain/analysis"
)

const maxBodyBytes = 10 << 20

// decodeAnalyzeRequest checks the body shape before anything else runs.
// The body must be a JSON object; content must be a string (it may still be
// blank, which the service rejects); metadata that is not an object becomes {}.
func decodeAnalyzeRequest(body io.Reader) (domain.Request, error) {
	raw, err := io.ReadAll(io.LimitReader(body, maxBodyBytes+1))
	if err != nil || len(raw) > maxBodyBytes || len(bytes.TrimSpace(raw)) == 0 {
		return domain.Request{}, domain.NewValidationError(domain.MsgInvalidBody)
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil || fields == nil {
		return domain.Request{}, domain.NewValidationError(domain.MsgInvalidBody)
	}

	var content string
	if rawContent, ok := fields["content"]; ok {
		if err := json.Unmarshal(rawContent, &content); err != nil {
			return domain.Request{}, domain.NewValidationError(domain.MsgNoContent)
		}
	}

	return domain.Request{
		Content:  content,
		Metadata: decodeMetadata(fields["metadata"]),
	}, nil
}

// decodeMetadata keeps numbers as json.Number so they round-trip unchanged.
func decodeMetadata(raw json.RawMessage) domain.Metadata {
	if len(raw) == 0 {
		return domain.Metadata{}
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var m map[string]any
	if err := dec.Decode(&m); err != nil || m == nil {
		return domain.Metadata{}
	}
	return m
}

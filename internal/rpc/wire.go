package rpc

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/MKhiriev/t4-api/internal/utils"
)

// maxBatchBody limits mutation request bodies.
const maxBatchBody = 1 << 20

// ResultData wraps a successful, transformer-encoded output.
type ResultData struct {
	Data json.RawMessage `json:"data"`
}

// ResultItem is one element of a batch response.
type ResultItem struct {
	Result *ResultData     `json:"result,omitempty"`
	Error  json.RawMessage `json:"error,omitempty"`
	status int
}

// BatchRequest is a decoded RPC HTTP request.
type BatchRequest struct {
	Batched    bool
	Operations []Operation
}

// ParseBatchRequest decodes the procedures addressed by paths together with
// their inputs. GET carries queries with the inputs in the "input" query
// parameter, POST carries mutations with the inputs in the body. With
// batch=1 the inputs are an object keyed by call index; otherwise paths names
// a single procedure and input is its bare encoded input.
func ParseBatchRequest(r *http.Request, paths string) (BatchRequest, error) {
	var opType OpType
	switch r.Method {
	case http.MethodGet:
		opType = OpQuery
	case http.MethodPost:
		opType = OpMutation
	default:
		return BatchRequest{}, Errorf(CodeMethodNotSupported, "method %s is not supported", r.Method)
	}

	names := strings.Split(paths, ",")
	for i, name := range names {
		unescaped, err := url.PathUnescape(name)
		if err != nil || unescaped == "" {
			return BatchRequest{}, Errorf(CodeBadRequest, "invalid procedure path %q", name)
		}
		names[i] = unescaped
	}

	raw, err := rawInput(r, opType)
	if err != nil {
		return BatchRequest{}, err
	}

	batched := r.URL.Query().Get("batch") == "1"
	req := BatchRequest{Batched: batched, Operations: make([]Operation, len(names))}

	if !batched {
		if len(names) != 1 {
			return BatchRequest{}, Errorf(CodeBadRequest, "multiple procedures require batch=1")
		}
		req.Operations[0] = Operation{Type: opType, Path: names[0], Input: raw}
		return req, nil
	}

	inputs := map[string]json.RawMessage{}
	if raw != nil {
		if err = json.Unmarshal(raw, &inputs); err != nil {
			return BatchRequest{}, Errorf(CodeParseError, "batch input must be an object keyed by call index: %v", err)
		}
	}
	for i, name := range names {
		req.Operations[i] = Operation{Type: opType, Path: name, Input: inputs[strconv.Itoa(i)]}
	}
	return req, nil
}

func rawInput(r *http.Request, opType OpType) (json.RawMessage, error) {
	if opType == OpQuery {
		input := r.URL.Query().Get("input")
		if input == "" {
			return nil, nil
		}
		if !json.Valid([]byte(input)) {
			return nil, Errorf(CodeParseError, "input is not valid JSON")
		}
		return json.RawMessage(input), nil
	}

	if r.Body == nil {
		return nil, nil
	}
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBatchBody))
	if err != nil {
		return nil, fmt.Errorf("error reading body: %w", err)
	}
	if len(strings.TrimSpace(string(body))) == 0 {
		return nil, nil
	}
	if !json.Valid(body) {
		return nil, Errorf(CodeParseError, "body is not valid JSON")
	}
	return body, nil
}

// responseStatus is 200 when every call succeeded, the shared status when
// all items agree and 207 when they differ.
func responseStatus(items []ResultItem) int {
	if len(items) == 0 {
		return http.StatusOK
	}
	status := items[0].status
	for _, item := range items[1:] {
		if item.status != status {
			return http.StatusMultiStatus
		}
	}
	return status
}

func writeBatchResponse(w http.ResponseWriter, items []ResultItem, batched bool) {
	var payload any = items
	if !batched && len(items) == 1 {
		payload = items[0]
	}
	_, _ = utils.WriteJSON(w, payload, responseStatus(items))
}

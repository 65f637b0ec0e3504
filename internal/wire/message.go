package wire

import "encoding/json"

// Request is one inbound message: id is the caller-chosen correlation tag,
// methodName is the registry key, args is handler-specific and may be
// absent. Unknown fields are ignored by encoding/json by default.
type Request struct {
	ID         int64          `json:"id"`
	MethodName string         `json:"methodName"`
	Args       map[string]any `json:"args"`
}

// Response is one outbound message. Errcode is 0 on success, else a POSIX
// errno value; Errstr is "SUCCESS" on success. Result is an empty map when
// the handler has no value to return. Frame-level protocol failures
// (malformed JSON, an oversized frame) never reach a Response — they are
// fatal to the connection and handled by closing it instead.
type Response struct {
	ID      int64  `json:"id"`
	Errcode int    `json:"errcode"`
	Errstr  string `json:"errstr"`
	Result  any    `json:"result"`
}

// ParseRequest decodes a raw frame payload into a Request. A malformed
// payload is a protocol error: the caller must treat it as fatal to the
// connection, not retry it.
func ParseRequest(payload []byte) (*Request, error) {
	req := &Request{}
	if err := json.Unmarshal(payload, req); err != nil {
		return nil, err
	}
	if req.Args == nil {
		req.Args = map[string]any{}
	}
	return req, nil
}

// Encode serializes a Response to its wire JSON representation.
func (r *Response) Encode() ([]byte, error) {
	if r.Result == nil {
		r.Result = map[string]any{}
	}
	return json.Marshal(r)
}

// NewSuccess builds a Response for a handler that completed without error.
func NewSuccess(id int64, result any) *Response {
	if result == nil {
		result = map[string]any{}
	}
	return &Response{ID: id, Errcode: 0, Errstr: "SUCCESS", Result: result}
}

// NewError builds a Response carrying an errno-like code and message.
func NewError(id int64, errcode int, errstr string) *Response {
	return &Response{ID: id, Errcode: errcode, Errstr: errstr, Result: map[string]any{}}
}

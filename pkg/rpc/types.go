// Package rpc contains JSON-RPC 2.0 wire types shared by the upstream client and the proxy.
package rpc

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// JSON-RPC 2.0 Types
// https://www.jsonrpc.org/specification

// Version is the only protocol version accepted.
const Version = "2.0"

// Request represents a JSON-RPC 2.0 request.
// ID and Params are kept raw so a proxied request can be forwarded byte for byte.
type Request struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id,omitempty"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// Response represents a JSON-RPC 2.0 response
type Response struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id,omitempty"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *Error          `json:"error,omitempty"`
}

// Error represents a JSON-RPC 2.0 error
type Error struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("rpc error %d: %s", e.Code, e.Message)
}

// Standard JSON-RPC error codes
const (
	ParseError     = -32700
	InvalidRequest = -32600
	MethodNotFound = -32601
	InvalidParams  = -32602
	InternalError  = -32603
)

var errorMessages = map[int]string{
	ParseError:     "Parse error",
	InvalidRequest: "Invalid Request",
	MethodNotFound: "Method not found",
	InvalidParams:  "Invalid params",
	InternalError:  "Internal error",
}

// NewError creates a new JSON-RPC error with the standard message for code.
func NewError(code int) *Error {
	msg, ok := errorMessages[code]
	if !ok {
		msg = "Unknown error"
	}
	return &Error{Code: code, Message: msg}
}

// NewRequest builds a request with positional params.
// id may be any JSON-encodable value.
func NewRequest(id any, method string, params ...any) (*Request, error) {
	rawID, err := json.Marshal(id)
	if err != nil {
		return nil, fmt.Errorf("marshal id: %w", err)
	}
	req := &Request{JSONRPC: Version, ID: rawID, Method: method}
	if len(params) > 0 {
		raw, err := json.Marshal(params)
		if err != nil {
			return nil, fmt.Errorf("marshal params: %w", err)
		}
		req.Params = raw
	}
	return req, nil
}

// Validate validates the JSON-RPC request
func (r *Request) Validate() error {
	if r.JSONRPC != Version {
		return fmt.Errorf("invalid jsonrpc version: expected %s", Version)
	}
	if r.Method == "" {
		return fmt.Errorf("method is required")
	}
	return nil
}

// PositionalParams splits array-shaped params into their raw elements.
// Object-shaped or absent params yield nil.
func (r *Request) PositionalParams() []json.RawMessage {
	if len(r.Params) == 0 {
		return nil
	}
	var out []json.RawMessage
	if err := json.Unmarshal(r.Params, &out); err != nil {
		return nil
	}
	return out
}

// IsBatch reports whether body holds a JSON array, i.e. a batch call.
func IsBatch(body []byte) bool {
	trimmed := bytes.TrimLeft(body, " \t\r\n")
	return len(trimmed) > 0 && trimmed[0] == '['
}

// IsNull reports whether a raw value is absent or JSON null.
func IsNull(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

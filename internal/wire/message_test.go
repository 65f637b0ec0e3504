package wire

import (
	"encoding/json"
	"testing"
)

func TestParseRequestDefaultsNilArgs(t *testing.T) {
	req, err := ParseRequest([]byte(`{"id":1,"methodName":"ping"}`))
	if err != nil {
		t.Fatalf("ParseRequest returned error: %v", err)
	}
	if req.MethodName != "ping" {
		t.Fatalf("got methodName %q, want %q", req.MethodName, "ping")
	}
	if req.Args == nil {
		t.Fatal("expected Args to default to an empty, non-nil map")
	}
	if len(req.Args) != 0 {
		t.Fatalf("expected empty Args, got %v", req.Args)
	}
}

func TestParseRequestMalformedPayload(t *testing.T) {
	if _, err := ParseRequest([]byte(`not json`)); err == nil {
		t.Fatal("expected an error for malformed JSON")
	}
}

func TestParseRequestPreservesArgs(t *testing.T) {
	req, err := ParseRequest([]byte(`{"id":2,"methodName":"echo","args":{"text":"hi"}}`))
	if err != nil {
		t.Fatalf("ParseRequest returned error: %v", err)
	}
	if req.Args["text"] != "hi" {
		t.Fatalf("got args %v, want text=hi", req.Args)
	}
}

func TestNewSuccessDefaultsNilResult(t *testing.T) {
	resp := NewSuccess(5, nil)
	if resp.Errcode != 0 || resp.Errstr != "SUCCESS" {
		t.Fatalf("unexpected success response: %+v", resp)
	}
	if resp.Result == nil {
		t.Fatal("expected a non-nil Result")
	}
}

func TestNewErrorCarriesErrcodeAndMessage(t *testing.T) {
	resp := NewError(9, 22, "Invalid argument")
	if resp.ID != 9 || resp.Errcode != 22 || resp.Errstr != "Invalid argument" {
		t.Fatalf("unexpected error response: %+v", resp)
	}
}

func TestResponseEncodeRoundTrip(t *testing.T) {
	resp := NewSuccess(3, map[string]any{"pong": true})
	payload, err := resp.Encode()
	if err != nil {
		t.Fatalf("Encode returned error: %v", err)
	}

	decoded := &Response{}
	if err := json.Unmarshal(payload, decoded); err != nil {
		t.Fatalf("could not decode encoded response: %v", err)
	}
	if decoded.ID != 3 || decoded.Errcode != 0 {
		t.Fatalf("unexpected decoded response: %+v", decoded)
	}
}

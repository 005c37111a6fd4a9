package spo

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// Error represents a structured error returned by the SharePoint REST API.
type Error struct {
	Message string
	Code    string
	Status  int
}

func (e *Error) Error() string {
	return fmt.Sprintf("spo: %s (code=%s status=%d)", e.Message, e.Code, e.Status)
}

// odataError mirrors the verbose OData error envelope
// {"odata.error":{"code":"...","message":{"lang":"...","value":"..."}}}.
type odataError struct {
	Code    string `json:"code"`
	Message struct {
		Value string `json:"value"`
	} `json:"message"`
}

// restError covers the envelopes SharePoint and the identity platform return
// outside the odata.error shape.
type restError struct {
	OData            *odataError     `json:"odata.error"`
	Err              json.RawMessage `json:"error"`
	ErrorDescription string          `json:"error_description"`
}

// decodeError materializes a SharePoint error from a non-2xx HTTP response.
// The remote message is carried verbatim; no remapping happens here.
func decodeError(resp *http.Response) error {
	if resp == nil {
		return errors.New("spo: nil response")
	}

	body, readErr := io.ReadAll(resp.Body)
	closeErr := resp.Body.Close()
	if readErr != nil {
		joined := errors.Join(readErr, closeErr)
		return fmt.Errorf("spo: read error response: %w", joined)
	}
	if closeErr != nil {
		return fmt.Errorf("spo: close error response: %w", closeErr)
	}

	se := &Error{
		Status:  resp.StatusCode,
		Code:    resp.Status,
		Message: string(body),
	}

	var envelope restError
	if err := json.Unmarshal(body, &envelope); err != nil {
		return se
	}

	switch {
	case envelope.OData != nil:
		se.Code = envelope.OData.Code
		se.Message = envelope.OData.Message.Value
	case len(envelope.Err) > 0:
		applyErrorField(se, envelope.Err, envelope.ErrorDescription)
	case envelope.ErrorDescription != "":
		se.Message = envelope.ErrorDescription
	}
	return se
}

// applyErrorField handles the two spellings of the "error" field: a nested
// object with a message, or a bare error code string paired with
// error_description.
func applyErrorField(se *Error, raw json.RawMessage, description string) {
	var nested odataError
	if err := json.Unmarshal(raw, &nested); err == nil && nested.Message.Value != "" {
		se.Code = nested.Code
		se.Message = nested.Message.Value
		return
	}

	var code string
	if err := json.Unmarshal(raw, &code); err == nil {
		se.Code = code
		if description != "" {
			se.Message = description
		}
	}
}

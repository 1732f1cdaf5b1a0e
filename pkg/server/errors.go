// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	docserrors "github.com/futureguide/api-docs/pkg/errors"
	"github.com/futureguide/api-docs/pkg/serializer"
)

// Error codes written by the server itself.
const (
	ErrCodeRateLimitExceeded  = docserrors.ErrCodeRateLimitExceeded
	ErrCodeInternalError      = docserrors.ErrCodeInternal
	ErrCodeServiceUnavailable = docserrors.ErrCodeUnavailable
	ErrCodeInvalidRequest     = docserrors.ErrCodeInvalidRequest
	ErrCodeMethodNotAllowed   = docserrors.ErrCodeMethodNotAllowed
	ErrCodeNotFound           = docserrors.ErrCodeNotFound
)

// ErrorResponse is the JSON body of every error returned by the API.
type ErrorResponse struct {
	Code      string         `json:"code" yaml:"code"`
	Message   string         `json:"message" yaml:"message"`
	Details   map[string]any `json:"details,omitempty" yaml:"details,omitempty"`
	RequestID string         `json:"requestId" yaml:"requestId"`
	Timestamp time.Time      `json:"timestamp" yaml:"timestamp"`
	Retryable bool           `json:"retryable" yaml:"retryable"`
}

// WriteError writes a structured error response.
func WriteError(w http.ResponseWriter, r *http.Request, statusCode int,
	code docserrors.ErrorCode, message string, retryable bool, details map[string]any) {

	requestID := RequestID(r.Context())
	if requestID == "" {
		requestID = uuid.New().String()
	}

	errResp := ErrorResponse{
		Code:      string(code),
		Message:   message,
		Details:   details,
		RequestID: requestID,
		Timestamp: time.Now().UTC(),
		Retryable: retryable,
	}

	serializer.RespondJSON(w, statusCode, errResp)
}

// WriteErrorFromErr maps err to a status and code. A StructuredError keeps
// its own code, message and context; anything else becomes an internal
// error with fallbackMessage.
func WriteErrorFromErr(w http.ResponseWriter, r *http.Request, err error,
	fallbackMessage string, extraDetails map[string]any) {

	var se *docserrors.StructuredError
	if errors.As(err, &se) {
		details := mergeDetails(se.Context, extraDetails)
		if se.Cause != nil {
			if details == nil {
				details = map[string]any{}
			}
			details["error"] = se.Cause.Error()
		}
		WriteError(w, r, HTTPStatusFromCode(se.Code), se.Code, se.Message,
			retryableFromCode(se.Code), details)
		return
	}

	details := mergeDetails(nil, extraDetails)
	if err != nil {
		if details == nil {
			details = map[string]any{}
		}
		details["error"] = err.Error()
	}
	WriteError(w, r, http.StatusInternalServerError, ErrCodeInternalError,
		fallbackMessage, true, details)
}

// HTTPStatusFromCode maps an error code to an HTTP status.
func HTTPStatusFromCode(code docserrors.ErrorCode) int {
	switch code {
	case docserrors.ErrCodeInvalidRequest:
		return http.StatusBadRequest
	case docserrors.ErrCodeNotFound:
		return http.StatusNotFound
	case docserrors.ErrCodeMethodNotAllowed:
		return http.StatusMethodNotAllowed
	case docserrors.ErrCodeRateLimitExceeded:
		return http.StatusTooManyRequests
	case docserrors.ErrCodeTimeout:
		return http.StatusGatewayTimeout
	case docserrors.ErrCodeUnavailable:
		return http.StatusServiceUnavailable
	case docserrors.ErrCodeInvalidData:
		// The catalog is server-side data, so a bad record is our fault.
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

func retryableFromCode(code docserrors.ErrorCode) bool {
	switch code {
	case docserrors.ErrCodeTimeout, docserrors.ErrCodeUnavailable,
		docserrors.ErrCodeRateLimitExceeded, docserrors.ErrCodeInternal:
		return true
	default:
		return false
	}
}

func mergeDetails(base, extra map[string]any) map[string]any {
	if len(base) == 0 && len(extra) == 0 {
		return nil
	}
	out := make(map[string]any, len(base)+len(extra))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range extra {
		out[k] = v
	}
	return out
}

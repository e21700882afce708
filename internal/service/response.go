// Package service implements the ledger operations: authentication, group
// management, expense creation and balance/dashboard queries. Every
// operation returns a uniform Response envelope so callers branch on
// Succeeded without inspecting errors.
package service

import "net/http"

// Response is the envelope returned by every service operation.
// ErrorCode doubles as the HTTP status the API layer writes.
type Response[T any] struct {
	Succeeded bool   `json:"succeeded"`
	Data      T      `json:"data"`
	Message   string `json:"message"`
	ErrorCode int    `json:"errorCode"`
}

// Success builds a successful envelope.
func Success[T any](data T, message string) Response[T] {
	return Response[T]{
		Succeeded: true,
		Data:      data,
		Message:   message,
		ErrorCode: http.StatusOK,
	}
}

// Fail builds a failed envelope with the given client-visible message and code.
func Fail[T any](message string, code int) Response[T] {
	return Response[T]{
		Succeeded: false,
		Message:   message,
		ErrorCode: code,
	}
}

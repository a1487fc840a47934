package toolerr

import (
	"errors"
	"testing"
)

func TestErrorFormat(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "message only",
			err:  New("akshare_search", "lookup", ErrCodeDataNotFound, "未找到A股代码: 999999"),
			want: "akshare_search [lookup/DATA_NOT_FOUND]: 未找到A股代码: 999999",
		},
		{
			name: "with cause",
			err: New("generate_markdown_report", "render", ErrCodeExecutionFailed, "write failed").
				WithCause(errors.New("permission denied")),
			want: "generate_markdown_report [render/EXECUTION_FAILED]: write failed: permission denied",
		},
		{
			name: "no message",
			err:  New("add", "call", ErrCodeInvalidInput, ""),
			want: "add [call/INVALID_INPUT]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestErrorUnwrap(t *testing.T) {
	cause := errors.New("connection reset")
	err := New("akshare_search", "fetch", ErrCodeNetworkError, "request failed").WithCause(cause)

	if !errors.Is(err, cause) {
		t.Error("errors.Is must reach the cause through Unwrap")
	}
	if errors.Unwrap(err) != cause {
		t.Error("Unwrap() must return the cause")
	}
}

func TestErrorIs(t *testing.T) {
	a := New("akshare_search", "lookup", ErrCodeDataNotFound, "msg one")
	b := New("akshare_search", "lookup", ErrCodeDataNotFound, "different message")
	c := New("akshare_search", "lookup", ErrCodeTimeout, "msg one")

	if !errors.Is(a, b) {
		t.Error("errors with matching tool/operation/code must be equal")
	}
	if errors.Is(a, c) {
		t.Error("errors with different codes must not be equal")
	}
}

func TestErrorAs(t *testing.T) {
	err := New("retrieve_reports", "search", ErrCodeDataNotFound, "未找到研报").
		WithDetails(map[string]any{"query": "量子计算"}).
		WithCause(ErrDataNotFound)

	wrapped := errors.Join(errors.New("outer"), err)

	var te *Error
	if !errors.As(wrapped, &te) {
		t.Fatal("errors.As must extract *Error from a wrapped chain")
	}
	if te.Code != ErrCodeDataNotFound {
		t.Errorf("code = %q", te.Code)
	}
	if te.Details["query"] != "量子计算" {
		t.Errorf("details = %v", te.Details)
	}
	if !errors.Is(wrapped, ErrDataNotFound) {
		t.Error("sentinel must be reachable through the chain")
	}
}

package database

import (
	"errors"
	"testing"
)

func TestWrapDBError(t *testing.T) {
	underlying := errors.New("connection refused")
	err := WrapDBError("load cases", underlying)
	if err == nil {
		t.Fatal("expected a wrapped error")
	}

	var dbErr *DBError
	if !errors.As(err, &dbErr) {
		t.Fatalf("expected *DBError, got %T", err)
	}
	if dbErr.Operation != "load cases" {
		t.Errorf("unexpected operation: %q", dbErr.Operation)
	}
	if !errors.Is(err, underlying) {
		t.Error("wrapped error must unwrap to the underlying error")
	}
}

func TestWrapDBErrorNil(t *testing.T) {
	if err := WrapDBError("load cases", nil); err != nil {
		t.Errorf("nil error must stay nil, got %v", err)
	}
}

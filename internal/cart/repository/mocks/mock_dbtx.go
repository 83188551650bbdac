package mocks

import (
	"context"
	"database/sql"

	"github.com/stretchr/testify/mock"
)

// MockDBTX stands in for the *sql.Tx handed out by BeginTx.
type MockDBTX struct {
	mock.Mock
}

func (m *MockDBTX) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	callArgs := m.Called(ctx, query, args)
	if res := callArgs.Get(0); res != nil {
		return res.(sql.Result), callArgs.Error(1)
	}
	return nil, callArgs.Error(1)
}

func (m *MockDBTX) PrepareContext(ctx context.Context, query string) (*sql.Stmt, error) {
	callArgs := m.Called(ctx, query)
	if stmt := callArgs.Get(0); stmt != nil {
		return stmt.(*sql.Stmt), callArgs.Error(1)
	}
	return nil, callArgs.Error(1)
}

func (m *MockDBTX) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	callArgs := m.Called(ctx, query, args)
	if rows := callArgs.Get(0); rows != nil {
		return rows.(*sql.Rows), callArgs.Error(1)
	}
	return nil, callArgs.Error(1)
}

func (m *MockDBTX) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	callArgs := m.Called(ctx, query, args)
	if row := callArgs.Get(0); row != nil {
		return row.(*sql.Row)
	}
	return nil
}

func (m *MockDBTX) Commit() error {
	return m.Called().Error(0)
}

func (m *MockDBTX) Rollback() error {
	return m.Called().Error(0)
}

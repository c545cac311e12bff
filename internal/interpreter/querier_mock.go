package interpreter

import "context"

// MockQuerier is a mock implementation of Querier for testing
type MockQuerier struct {
	QueryFunc func(ctx context.Context, executable string) (*Interpreter, error)
	Calls     []string
}

// Query implements Querier.Query and records the executable
func (m *MockQuerier) Query(ctx context.Context, executable string) (*Interpreter, error) {
	m.Calls = append(m.Calls, executable)
	if m.QueryFunc != nil {
		return m.QueryFunc(ctx, executable)
	}
	return nil, &QueryError{Path: executable, Err: context.Canceled}
}

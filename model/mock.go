package model

import (
	"context"
	"fmt"
)

// MockModel is a lightweight in-memory Model useful for tests & examples.
type MockModel struct {
	info      Info
	responses map[string]string
	err       error
	lastReq   *Request
}

// NewMockModel constructs a MockModel.
func NewMockModel(name string) *MockModel {
	return &MockModel{
		info:      Info{Name: name, Provider: "mock"},
		responses: make(map[string]string),
	}
}

// AddResponse registers a deterministic canned completion for an instructions
// string.
func (m *MockModel) AddResponse(instructions, response string) {
	m.responses[instructions] = response
}

// FailWith makes every Generate call return the given error.
func (m *MockModel) FailWith(err error) { m.err = err }

// LastRequest returns the most recent request passed to Generate.
func (m *MockModel) LastRequest() *Request { return m.lastReq }

// Generate implements Model.
func (m *MockModel) Generate(_ context.Context, req Request) (string, error) {
	m.lastReq = &req
	if m.err != nil {
		return "", m.err
	}
	if resp, ok := m.responses[req.Instructions]; ok {
		return resp, nil
	}
	return fmt.Sprintf("Mock response to: %s", req.Instructions), nil
}

// Info implements Model.
func (m *MockModel) Info() Info { return m.info }

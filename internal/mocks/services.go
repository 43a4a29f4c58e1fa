package mocks

import (
	"io"

	"github.com/post-engagement-api/internal/report"
)

// MockComposer is a mock implementation of report.Composer
type MockComposer struct {
	// Output is written before Err is returned, simulating a stream that fails midway
	Output  []byte
	Err     error
	Reports []*report.Report
}

// Verify interface compliance
var _ report.Composer = (*MockComposer)(nil)

func NewMockComposer() *MockComposer {
	return &MockComposer{Output: []byte("%PDF-1.3 mock")}
}

func (m *MockComposer) Compose(w io.Writer, r *report.Report) error {
	m.Reports = append(m.Reports, r)
	if len(m.Output) > 0 {
		if _, err := w.Write(m.Output); err != nil {
			return err
		}
	}
	return m.Err
}

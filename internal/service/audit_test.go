package service

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ayame-bbs/ayame/internal/domain"
)

type MockAuditStorage struct {
	accessErr error
	errorErr  error

	accessEntries []domain.AccessLogEntry
	errorEntries  []domain.ErrorLogEntry
}

func (m *MockAuditStorage) AppendAccessLog(entry domain.AccessLogEntry) error {
	m.accessEntries = append(m.accessEntries, entry)
	return m.accessErr
}

func (m *MockAuditStorage) AppendErrorLog(entry domain.ErrorLogEntry) error {
	m.errorEntries = append(m.errorEntries, entry)
	return m.errorErr
}

func TestAudit(t *testing.T) {
	t.Run("records entries", func(t *testing.T) {
		storage := &MockAuditStorage{}
		svc := NewAudit(storage)

		svc.Access("aabbccdd11223344", "create_post", "42", "thread 7", "req-1")
		svc.Error("aabbccdd11223344", "persistence", "connection reset")

		assert.Len(t, storage.accessEntries, 1)
		assert.Equal(t, "create_post", storage.accessEntries[0].Action)
		assert.Len(t, storage.errorEntries, 1)
	})

	t.Run("storage failure is swallowed", func(t *testing.T) {
		storage := &MockAuditStorage{accessErr: errors.New("disk full"), errorErr: errors.New("disk full")}
		svc := NewAudit(storage)

		// must not panic or surface the error
		svc.Access("aabbccdd11223344", "create_post", "42", "", "")
		svc.Error("aabbccdd11223344", "persistence", "connection reset")
	})
}

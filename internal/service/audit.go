package service

import (
	"github.com/ayame-bbs/ayame/internal/domain"
	"github.com/ayame-bbs/ayame/internal/logger"
)

// AuditService records access and error events. Every method is
// fire-and-forget: a failed insert is logged and swallowed, it must never
// fail or delay the operation being audited.
type AuditService interface {
	Access(identity domain.IdentityHash, action, resourceId, details, requestId string)
	Error(identity domain.IdentityHash, errorType, errorMessage string)
}

type Audit struct {
	storage AuditStorage
}

type AuditStorage interface {
	AppendAccessLog(entry domain.AccessLogEntry) error
	AppendErrorLog(entry domain.ErrorLogEntry) error
}

func NewAudit(storage AuditStorage) AuditService {
	return &Audit{storage}
}

func (a *Audit) Access(identity domain.IdentityHash, action, resourceId, details, requestId string) {
	err := a.storage.AppendAccessLog(domain.AccessLogEntry{
		Identity:   identity,
		Action:     action,
		ResourceId: resourceId,
		Details:    details,
		RequestId:  requestId,
	})
	if err != nil {
		logger.Log.Warn("failed to append access log", "action", action, "error", err)
	}
}

func (a *Audit) Error(identity domain.IdentityHash, errorType, errorMessage string) {
	err := a.storage.AppendErrorLog(domain.ErrorLogEntry{
		Identity:     identity,
		ErrorType:    errorType,
		ErrorMessage: errorMessage,
	})
	if err != nil {
		logger.Log.Warn("failed to append error log", "errorType", errorType, "error", err)
	}
}

// Package notify posts best-effort announcements about notable events. A
// failed announcement never fails the operation that triggered it; callers
// log and move on.
package notify

import (
	"context"

	"github.com/vaadly/vaadly/internal/domain"
)

// Notifier announces notable events to an external channel.
type Notifier interface {
	TenancyEnded(ctx context.Context, h *domain.TenantHistory) error
	ReportGenerated(ctx context.Context, reportType, reportID string) error
}

// Nop is the disabled notifier, used when no channel is configured.
type Nop struct{}

func (Nop) TenancyEnded(context.Context, *domain.TenantHistory) error { return nil }

func (Nop) ReportGenerated(context.Context, string, string) error { return nil }

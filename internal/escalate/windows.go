//go:build windows

package escalate

import (
	"context"
	"log/slog"
)

type windowsEscalator struct {
	logger *slog.Logger
}

func newPlatformEscalator(logger *slog.Logger) Escalator {
	return &windowsEscalator{logger: logger}
}

func (e *windowsEscalator) Supported() bool { return false }

func (e *windowsEscalator) WithPrivileges(_ context.Context, reason string, _ func() error) error {
	e.logger.Error("privileged execution requested on unsupported platform", "reason", reason)
	return ErrNotSupported
}

package matcher

import (
	"fmt"

	"go.uber.org/zap"
)

// safeText runs fn and substitutes fallback if it panics.
func safeText(log *zap.Logger, what string, fn func() string, fallback string) (out string) {
	defer func() {
		if r := recover(); r != nil {
			log.Warn("text generation failed", zap.String("part", what), zap.Any("panic", r))
			out = fallback
		}
	}()
	return fn()
}

// systemError formats a recovered panic as a system error reason.
func systemError(r any) string {
	return fmt.Sprintf("System error: %v", r)
}

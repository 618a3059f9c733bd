package session

import (
	"fmt"

	"dochub/pkg/platform/sentinel"
)

// ErrSessionRevoked is returned by RevokeSessionIfActive for a session that is
// already revoked.
var ErrSessionRevoked = fmt.Errorf("session revoked: %w", sentinel.ErrInvalidState)

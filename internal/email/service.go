package email

import (
	"context"
)

// Service sends the transactional mail the auth flows depend on.
type Service interface {
	SendVerification(ctx context.Context, email string, token string) error
	SendPasswordReset(ctx context.Context, email string, token string) error
}

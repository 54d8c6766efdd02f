package flash

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bookadmin/internal/domain"
)

type NoticeType string

const (
	NoticeSuccess NoticeType = "success"
	NoticeError   NoticeType = "error"
	NoticeWarning NoticeType = "warning"
	NoticeInfo    NoticeType = "info"
)

type Notice struct {
	Type    NoticeType `json:"type"`
	Message string     `json:"message"`
	Code    string     `json:"code,omitempty"`
}

// Store keeps at most one pending notice per user. A second Put replaces the first.
type Store interface {
	Put(ctx context.Context, userID string, notice Notice) error
	// Take returns the pending notice and clears it. It returns nil, nil when there is none.
	Take(ctx context.Context, userID string) (*Notice, error)
}

const DefaultTTL = 5 * time.Minute

func Success(format string, args ...interface{}) Notice {
	return Notice{Type: NoticeSuccess, Message: fmt.Sprintf(format, args...)}
}

// Failure turns an error into an error notice, keeping the domain code when there is one.
func Failure(err error) Notice {
	var de *domain.Error
	if errors.As(err, &de) {
		return Notice{Type: NoticeError, Message: de.Message, Code: string(de.Code)}
	}
	return Notice{Type: NoticeError, Message: err.Error()}
}

func key(userID string) string {
	return fmt.Sprintf("flash:notice:%s", userID)
}

package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPending(t *testing.T) {
	files := []string{
		"000002_customers.sql",
		"README.md",
		"000001_init.sql",
		"broken.sql",
		"000003_notifications.sql",
	}

	pending, skipped := Pending(files, map[string]bool{"000002": true})

	assert.Equal(t, []Migration{
		{Version: "000001", Name: "init", File: "000001_init.sql"},
		{Version: "000003", Name: "notifications", File: "000003_notifications.sql"},
	}, pending)
	assert.Equal(t, []string{"broken.sql"}, skipped)
}

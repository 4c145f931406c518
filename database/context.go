package database

import (
	"context"
	"time"
)

// Database operation timeouts
const (
	DefaultDBTimeout = 10 * time.Second
	LongDBTimeout    = 30 * time.Second
	BatchDBTimeout   = 60 * time.Second
)

// NewContext creates a context with default timeout for database operations.
// Usage:
//
//	ctx, cancel := database.NewContext()
//	defer cancel()
func NewContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), DefaultDBTimeout)
}

// NewLongContext creates a context with longer timeout for heavy operations.
func NewLongContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), LongDBTimeout)
}

// NewBatchContext creates a context for batch database operations.
func NewBatchContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), BatchDBTimeout)
}

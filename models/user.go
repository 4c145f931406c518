package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents a user in the system
type User struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Username  string             `json:"username" bson:"username"`
	Password  string             `json:"-" bson:"password"`
	Email     string             `json:"email" bson:"email"`
	Role      string             `json:"role" bson:"role"`     // admin, user, viewer
	Status    int                `json:"status" bson:"status"` // 1: active, 0: disabled
	LastLogin time.Time          `json:"last_login" bson:"last_login"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time          `json:"updated_at" bson:"updated_at"`
}

// OperationLog represents operation audit logs
type OperationLog struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	RequestID string             `json:"request_id" bson:"request_id"`
	UserID    primitive.ObjectID `json:"user_id" bson:"user_id"`
	Username  string             `json:"username" bson:"username"`
	Action    string             `json:"action" bson:"action"`
	Module    string             `json:"module" bson:"module"`
	Target    string             `json:"target" bson:"target"`
	IP        string             `json:"ip" bson:"ip"`
	UserAgent string             `json:"user_agent" bson:"user_agent"`
	Status    int                `json:"status" bson:"status"` // 1: success, 0: failed
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
}

// Collection names
const (
	CollectionUsers        = "users"
	CollectionOperationLog = "operation_logs"
)

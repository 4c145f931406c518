package middleware

import (
	"context"
	"time"

	"vulnguard/database"
	"vulnguard/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OperationLogMiddleware tags every request with an id and logs
// mutating operations to the audit collection
func OperationLogMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := uuid.NewString()
		c.Set("request_id", requestID)
		c.Header("X-Request-ID", requestID)

		// Skip logging for GET requests
		if c.Request.Method == "GET" {
			c.Next()
			return
		}

		startTime := time.Now()

		c.Next()

		userID, _ := c.Get("user_id")
		username, _ := c.Get("username")

		opLog := models.OperationLog{
			RequestID: requestID,
			Action:    c.Request.Method,
			Module:    getModuleFromPath(c.Request.URL.Path),
			Target:    c.Request.URL.Path,
			IP:        c.ClientIP(),
			UserAgent: c.Request.UserAgent(),
			Status:    getStatusFromCode(c.Writer.Status()),
			CreatedAt: startTime,
		}

		if userID != nil {
			objID, _ := primitive.ObjectIDFromHex(userID.(string))
			opLog.UserID = objID
		}
		if username != nil {
			opLog.Username = username.(string)
		}

		// Save log asynchronously
		go saveOperationLog(opLog)
	}
}

func saveOperationLog(opLog models.OperationLog) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	collection := database.GetCollection(models.CollectionOperationLog)
	_, _ = collection.InsertOne(ctx, opLog)
}

func getModuleFromPath(path string) string {
	modules := map[string]string{
		"/api/auth":       "auth",
		"/api/users":      "users",
		"/api/assets":     "assets",
		"/api/findings":   "findings",
		"/api/risk":       "risk",
		"/api/compliance": "compliance",
		"/api/intel":      "intel",
		"/api/refdata":    "refdata",
	}

	for prefix, module := range modules {
		if len(path) >= len(prefix) && path[:len(prefix)] == prefix {
			return module
		}
	}
	return "other"
}

func getStatusFromCode(code int) int {
	if code >= 200 && code < 400 {
		return 1
	}
	return 0
}

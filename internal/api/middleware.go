package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"fitpulse/fitness-backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// ContextPrincipalKey is where the auth middleware stores the resolved
// principal for downstream handlers.
const ContextPrincipalKey = "principal"

// jwtClaims mirrors the payload written by authService.generateJWT. Only the
// user id travels in the token; profiles are loaded fresh per request.
type jwtClaims struct {
	UserID string `json:"uid"`
	jwt.RegisteredClaims
}

// AuthMiddleware validates the bearer token and resolves the caller into a
// Principal (user plus profiles) for the rest of the request.
func AuthMiddleware(jwtSecret string, principals service.PrincipalService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortWithError(c, http.StatusUnauthorized, "Authorization header is missing")
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			abortWithError(c, http.StatusUnauthorized, "Authorization header format must be Bearer {token}")
			return
		}
		tokenString := parts[1]

		claims := &jwtClaims{}
		token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return []byte(jwtSecret), nil
		})
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				abortWithError(c, http.StatusUnauthorized, "Token has expired")
			} else {
				abortWithError(c, http.StatusUnauthorized, "Invalid token")
			}
			return
		}
		if !token.Valid || claims.UserID == "" {
			abortWithError(c, http.StatusUnauthorized, "Invalid token or missing claims")
			return
		}

		userID, err := primitive.ObjectIDFromHex(claims.UserID)
		if err != nil {
			abortWithError(c, http.StatusUnauthorized, "Invalid user id in token")
			return
		}

		principal, err := principals.Resolve(c.Request.Context(), userID)
		if err != nil {
			if errors.Is(err, service.ErrNotFound) {
				abortWithError(c, http.StatusUnauthorized, "Token refers to a deleted user")
			} else {
				abortWithError(c, http.StatusInternalServerError, "Failed to resolve user")
			}
			return
		}

		c.Set(ContextPrincipalKey, principal)
		c.Next()
	}
}

// RequestLogger logs one line per request with method, path, status and
// latency.
func RequestLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		log.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}

// abortWithError returns a JSON error response and aborts the request.
func abortWithError(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, gin.H{"error": message})
}

// handleServiceError maps service error kinds to HTTP status codes.
func handleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrAuthenticationFailed):
		abortWithError(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, service.ErrNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrForbidden):
		abortWithError(c, http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrBadRequest):
		abortWithError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrConflict):
		abortWithError(c, http.StatusConflict, err.Error())
	default:
		abortWithError(c, http.StatusInternalServerError, "An unexpected error occurred")
	}
}

// getPrincipal pulls the resolved principal out of the gin context.
func getPrincipal(c *gin.Context) (*service.Principal, bool) {
	raw, exists := c.Get(ContextPrincipalKey)
	if !exists {
		abortWithError(c, http.StatusInternalServerError, "Principal not found in context")
		return nil, false
	}
	principal, ok := raw.(*service.Principal)
	if !ok {
		abortWithError(c, http.StatusInternalServerError, "Invalid principal type in context")
		return nil, false
	}
	return principal, true
}

// pagination reads and validates the page/size query parameters.
func pagination(c *gin.Context) (page, size int, ok bool) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "0"))
	if err != nil || page < 0 {
		abortWithError(c, http.StatusBadRequest, "page must be a non-negative integer")
		return 0, 0, false
	}
	size, err = strconv.Atoi(c.DefaultQuery("size", "20"))
	if err != nil || size < 1 || size > 100 {
		abortWithError(c, http.StatusBadRequest, "size must be between 1 and 100")
		return 0, 0, false
	}
	return page, size, true
}

// objectIDParam parses a hex ObjectID path parameter.
func objectIDParam(c *gin.Context, name string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param(name))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("invalid %s", name))
		return primitive.NilObjectID, false
	}
	return id, true
}

// dateParam parses a YYYY-MM-DD path parameter.
func dateParam(c *gin.Context, name string) (time.Time, bool) {
	date, err := time.Parse("2006-01-02", c.Param(name))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("%s must be YYYY-MM-DD", name))
		return time.Time{}, false
	}
	return date, true
}

// dateRangeQuery parses the from/to query parameters (YYYY-MM-DD, both
// required).
func dateRangeQuery(c *gin.Context) (from, to time.Time, ok bool) {
	from, err := time.Parse("2006-01-02", c.Query("from"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "from must be YYYY-MM-DD")
		return time.Time{}, time.Time{}, false
	}
	to, err = time.Parse("2006-01-02", c.Query("to"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "to must be YYYY-MM-DD")
		return time.Time{}, time.Time{}, false
	}
	return from, to, true
}

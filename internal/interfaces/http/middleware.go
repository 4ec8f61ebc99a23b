package httpinterface

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt"
	log "github.com/sirupsen/logrus"
)

const (
	userIDKey    = "userId"
	userIDHeader = "X-User-Id"
)

// authenticate sets the acting user id in the gin context. The id is the
// subject of the HS256 bearer token, or the X-User-Id header if noAuth is
// set.
func authenticate(secret string, noAuth bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		var userID string
		if noAuth {
			userID = c.GetHeader(userIDHeader)
		} else {
			var err error
			userID, err = parseBearerToken(c.GetHeader("Authorization"), secret)
			if err != nil {
				abortWithError(c, http.StatusUnauthorized, err)
				return
			}
		}
		if userID == "" {
			abortWithError(c, http.StatusUnauthorized, fmt.Errorf("missing user id"))
			return
		}

		c.Set(userIDKey, userID)
		c.Next()
	}
}

func parseBearerToken(header, secret string) (string, error) {
	tokenString := strings.TrimPrefix(header, "Bearer ")
	if tokenString == "" || tokenString == header {
		return "", fmt.Errorf("missing bearer token")
	}

	claims := &jwt.StandardClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %s", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return "", fmt.Errorf("invalid bearer token")
	}
	return claims.Subject, nil
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.WithFields(log.Fields{
			"status":  c.Writer.Status(),
			"latency": time.Since(start),
		}).Debugf("%s %s", c.Request.Method, c.Request.URL.Path)
	}
}

func userID(c *gin.Context) string {
	return c.GetString(userIDKey)
}

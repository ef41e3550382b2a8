package middleware

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/udex/lapizza-api/internal/models"
)

// JWTAuth validates Bearer tokens and places the authenticated user's ID and
// role into the gin context for downstream handlers.
func JWTAuth(jwtSecret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthorized(c, "Missing Authorization header. A valid Bearer token is required.")
			return
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			abortUnauthorized(c, "Authorization header must use Bearer scheme. Format: 'Bearer <token>'")
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == "" {
			abortUnauthorized(c, "Bearer token is empty")
			return
		}

		claims, err := parseAndValidateJWT(tokenString, jwtSecret)
		if err != nil {
			abortUnauthorized(c, err.Error())
			return
		}

		if err := extractAndSetClaims(c, claims); err != nil {
			abortUnauthorized(c, err.Error())
			return
		}

		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, description string) {
	c.JSON(http.StatusUnauthorized, gin.H{"error": description})
	c.Abort()
}

// parseJWTToken validates and parses a JWT token using HMAC signing method
func parseJWTToken(tokenString string, jwtSecret []byte) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// Validate the signing method to prevent algorithm confusion attacks
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v. Expected HMAC", token.Header["alg"])
		}
		return jwtSecret, nil
	})

	if err != nil {
		return nil, fmt.Errorf("token parsing failed: %w", err)
	}

	if !token.Valid {
		return nil, fmt.Errorf("token is invalid")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("invalid token claims format")
	}

	return claims, nil
}

// parseAndValidateJWT parses the JWT and performs strict validation
func parseAndValidateJWT(tokenString string, jwtSecret []byte) (jwt.MapClaims, error) {
	claims, err := parseJWTToken(tokenString, jwtSecret)
	if err != nil {
		return nil, err
	}

	now := time.Now()

	exp, err := claims.GetExpirationTime()
	if err != nil {
		return nil, fmt.Errorf("invalid exp claim: %w", err)
	}
	if exp != nil && exp.Before(now) {
		return nil, fmt.Errorf("token has expired")
	}

	nbf, err := claims.GetNotBefore()
	if err != nil {
		return nil, fmt.Errorf("invalid nbf claim: %w", err)
	}
	if nbf != nil && nbf.After(now) {
		return nil, fmt.Errorf("token not yet valid")
	}

	iat, err := claims.GetIssuedAt()
	if err != nil {
		return nil, fmt.Errorf("invalid iat claim: %w", err)
	}
	if iat != nil && iat.After(now) {
		return nil, fmt.Errorf("token issued in the future")
	}

	return claims, nil
}

// extractAndSetClaims extracts user information from JWT claims and sets it
// in the Gin context
func extractAndSetClaims(c *gin.Context, claims jwt.MapClaims) error {
	userID, err := extractUserID(claims)
	if err != nil {
		return err
	}
	if userID == 0 {
		return fmt.Errorf("invalid user identifier: cannot be zero")
	}
	c.Set("userID", userID)

	role, err := extractRole(claims)
	if err != nil {
		return err
	}
	c.Set("userRole", role)

	return nil
}

// extractUserID reads the required "uid" claim. JSON numbers arrive as
// float64; numeric strings are also accepted.
func extractUserID(claims jwt.MapClaims) (int, error) {
	if uid, ok := claims["uid"].(string); ok && uid != "" {
		parsedID, err := strconv.Atoi(uid)
		if err != nil {
			return 0, fmt.Errorf("invalid uid claim format: must be a numeric string, got: %s", uid)
		}
		return parsedID, nil
	}

	if uid, ok := claims["uid"].(float64); ok {
		if uid <= 0 {
			return 0, fmt.Errorf("invalid uid claim: must be positive, got: %f", uid)
		}
		return int(uid), nil
	}

	return 0, fmt.Errorf("token missing required 'uid' claim. This token is not valid for this API")
}

// extractRole reads the required "role" claim; no default is provided.
func extractRole(claims jwt.MapClaims) (string, error) {
	role, ok := claims["role"].(string)
	if !ok || role == "" {
		return "", fmt.Errorf("token missing required 'role' claim. Tokens must explicitly specify user roles")
	}

	if role != models.RoleUser && role != models.RoleAdmin {
		return "", fmt.Errorf("invalid role '%s'. Allowed roles: %s, %s", role, models.RoleUser, models.RoleAdmin)
	}

	return role, nil
}

package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	autherrors "go-personnel/internal/auth/errors"
	"go-personnel/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// AuthMiddleware validates the bearer token (or access_token cookie) signed with secret and
// copies user_id, employee_id, company_id and role into the gin context.
func AuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, found := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
		if !found {
			tokenString = ""
		}

		if tokenString == "" {
			if cookie, err := c.Cookie("access_token"); err == nil {
				tokenString = cookie
			}
		}

		if tokenString == "" {
			abortWith(c, autherrors.ErrTokenNotFound.HTTPStatus, autherrors.ErrTokenNotFound.Code, autherrors.ErrTokenNotFound.Message)
			return
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method")
			}
			return []byte(secret), nil
		})

		if err != nil || !token.Valid {
			errObj := autherrors.ErrInvalidToken
			if errors.Is(err, jwt.ErrTokenExpired) {
				errObj = autherrors.ErrTokenExpired
			}
			abortWith(c, errObj.HTTPStatus, errObj.Code, errObj.Message)
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			abortWith(c, http.StatusUnauthorized, "INVALID_TOKEN", "Invalid token claims")
			return
		}

		if typ, _ := claims["typ"].(string); typ == "refresh" {
			abortWith(c, http.StatusUnauthorized, "INVALID_TOKEN", "Refresh token cannot be used for API access")
			return
		}

		userID, _ := claims["user_id"].(string)
		companyID, _ := claims["company_id"].(string)
		employeeID, _ := claims["employee_id"].(string)
		switch {
		case userID == "":
			abortWith(c, http.StatusUnauthorized, "INVALID_TOKEN", "User ID not found in token")
			return
		case companyID == "":
			abortWith(c, http.StatusUnauthorized, "INVALID_TOKEN", "Company ID not found in token")
			return
		case employeeID == "":
			abortWith(c, http.StatusUnauthorized, "INVALID_TOKEN", "Employee ID not found in token")
			return
		}

		role, _ := claims["role"].(string)

		c.Set("user_id", userID)
		c.Set("employee_id", employeeID)
		c.Set("company_id", companyID)
		c.Set("role", role)

		c.Next()
	}
}

func abortWith(c *gin.Context, status int, code, message string) {
	response.Error(c, status, code, message, nil)
	c.Abort()
}

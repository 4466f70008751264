package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func testContext(t *testing.T) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	return c
}

func TestGetCustomerIDFromContext(t *testing.T) {
	t.Run("customer token", func(t *testing.T) {
		c := testContext(t)
		c.Set("user_id", uint(7))
		c.Set("is_admin", false)

		id, ok := GetCustomerIDFromContext(c)
		assert.True(t, ok)
		assert.Equal(t, uint(7), id)
	})

	t.Run("admin token is not a customer", func(t *testing.T) {
		// Admin ids have their own sequence; admin #7 must not resolve
		// as customer #7 on cart or order paths.
		c := testContext(t)
		c.Set("user_id", uint(7))
		c.Set("is_admin", true)

		_, ok := GetCustomerIDFromContext(c)
		assert.False(t, ok)

		id, ok := GetUserIDFromContext(c)
		assert.True(t, ok)
		assert.Equal(t, uint(7), id)
	})

	t.Run("anonymous", func(t *testing.T) {
		c := testContext(t)

		_, ok := GetCustomerIDFromContext(c)
		assert.False(t, ok)
	})
}

package utils

import "github.com/gin-gonic/gin"

// JSONError writes the uniform {"error": ...} body every handler uses.
func JSONError(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{"error": message})
}

// JSONSuccess writes a {"success": true} body merged with extra fields.
func JSONSuccess(c *gin.Context, code int, extra gin.H) {
	body := gin.H{"success": true}
	for k, v := range extra {
		body[k] = v
	}
	c.JSON(code, body)
}

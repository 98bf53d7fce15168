package common

import "github.com/gin-gonic/gin"

// Ok and Fail are the shared response envelope: {code, message, data}.
// code 0 means success; non-zero codes identify the failure class.

func Ok(c *gin.Context, data any) {
	c.JSON(200, gin.H{
		"code":    0,
		"message": "ok",
		"data":    data,
	})
}

func Fail(c *gin.Context, httpStatus int, code int, msg string) {
	c.JSON(httpStatus, gin.H{
		"code":    code,
		"message": msg,
		"data":    nil,
	})
}

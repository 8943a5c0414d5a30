package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Error codes
const (
	CodeSuccess          = 0
	CodeParamError       = 1000
	CodeResourceNotFound = 1003
	CodeConflict         = 1005
	CodeServerError      = 5000
)

var codeMessages = map[int]string{
	CodeSuccess:          "success",
	CodeParamError:       "invalid parameters",
	CodeResourceNotFound: "resource not found",
	CodeConflict:         "conflicting operation",
	CodeServerError:      "internal server error",
}

// Response is the uniform JSON envelope.
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

// Success responds with data and a zero code.
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    CodeSuccess,
		Message: "success",
		Data:    data,
	})
}

// SuccessWithMessage responds with data and a custom message.
func SuccessWithMessage(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    CodeSuccess,
		Message: message,
		Data:    data,
	})
}

// Error responds with an error code and message.
func Error(c *gin.Context, code int, message string) {
	if message == "" {
		message = codeMessages[code]
	}
	c.JSON(http.StatusOK, Response{
		Code:    code,
		Message: message,
		Data:    nil,
	})
}

func ParamError(c *gin.Context, message string) {
	Error(c, CodeParamError, message)
}

func NotFoundError(c *gin.Context, message string) {
	Error(c, CodeResourceNotFound, message)
}

func ConflictError(c *gin.Context, message string) {
	Error(c, CodeConflict, message)
}

func ServerError(c *gin.Context, message string) {
	Error(c, CodeServerError, message)
}

package errors

import (
	"errors"

	"github.com/gin-gonic/gin"
)

// ContentTypeProblemJSON is the media type for Problem Details responses.
const ContentTypeProblemJSON = "application/problem+json"

// Respond writes the problem with its status and the problem+json content type.
// Instance defaults to the request path.
func Respond(c *gin.Context, problem ProblemDetail) {
	if problem.Instance == "" && c.Request != nil {
		problem.Instance = c.Request.URL.Path
	}
	c.Header("Content-Type", ContentTypeProblemJSON)
	c.JSON(problem.Status, problem)
}

// RespondError answers with err when it already is a ProblemDetail, otherwise with
// fallback carrying err's message.
func RespondError(c *gin.Context, err error, fallback ProblemDetail) {
	var problem ProblemDetail
	if errors.As(err, &problem) {
		Respond(c, problem)
		return
	}
	if err != nil {
		fallback = fallback.WithDetail(err.Error())
	}
	Respond(c, fallback)
}

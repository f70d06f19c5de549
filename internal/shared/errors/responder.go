package errors

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// ContentTypeProblemJSON is the media type for Problem Details responses.
const ContentTypeProblemJSON = "application/problem+json"

// Responder writes Problem Details responses.
type Responder struct {
	// BaseURI is prepended to problem type URIs if they are relative.
	BaseURI string
	mappers []ErrorMapper
}

// ErrorMapper maps domain/application errors to a ProblemDetail.
type ErrorMapper func(err error) (ProblemDetail, bool)

// NewResponder creates a responder with optional base URI and error mappers,
// tried in order before the internal-error fallback.
func NewResponder(baseURI string, mappers ...ErrorMapper) *Responder {
	return &Responder{BaseURI: baseURI, mappers: mappers}
}

// DefaultResponder uses relative URIs for problem types and no mappers.
var DefaultResponder = NewResponder("")

// Respond sends a ProblemDetail response with proper content type.
func (r *Responder) Respond(c *gin.Context, problem ProblemDetail) {
	if r.BaseURI != "" && len(problem.Type) > 0 && problem.Type[0] == '/' {
		problem.Type = r.BaseURI + problem.Type
	}
	if problem.Instance == "" {
		problem.Instance = c.Request.URL.Path
	}
	c.Header("Content-Type", ContentTypeProblemJSON)
	c.JSON(problem.Status, problem)
}

// RespondError converts err to a ProblemDetail and responds. ProblemDetail
// errors pass through; registered mappers come next; anything else is a 500
// carrying the underlying error text.
func (r *Responder) RespondError(c *gin.Context, err error) {
	var problem ProblemDetail
	if errors.As(err, &problem) {
		r.Respond(c, problem)
		return
	}
	for _, mapper := range r.mappers {
		if problem, ok := mapper(err); ok {
			r.Respond(c, problem)
			return
		}
	}
	r.Respond(c, ErrInternal.WithDetail(err.Error()))
}

// NotFound sends a 404 problem response.
func (r *Responder) NotFound(c *gin.Context, resourceType string, identifier any) {
	r.Respond(c, NewNotFoundProblem(resourceType, identifier))
}

// BadRequest sends a 400 problem response.
func (r *Responder) BadRequest(c *gin.Context, detail string) {
	r.Respond(c, ErrBadRequest.WithDetail(detail))
}

// ValidationFailed sends a 400 problem response with the problem list.
func (r *Responder) ValidationFailed(c *gin.Context, detail string, problems []string) {
	r.Respond(c, NewValidationProblem(detail, problems))
}

// Respond is a convenience function using the default responder.
func Respond(c *gin.Context, problem ProblemDetail) {
	DefaultResponder.Respond(c, problem)
}

// RespondError is a convenience function using the default responder.
func RespondError(c *gin.Context, err error) {
	DefaultResponder.RespondError(c, err)
}

// HTTPStatusFromError extracts HTTP status from an error if possible.
func HTTPStatusFromError(err error) int {
	var problem ProblemDetail
	if errors.As(err, &problem) {
		return problem.Status
	}
	return http.StatusInternalServerError
}

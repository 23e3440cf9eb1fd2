package aggregation

import (
	"net/http"

	"github.com/gin-gonic/gin"

	v1 "github.com/strata-lab/strata/internal/api/v1"
	httperr "github.com/strata-lab/strata/internal/core/errors"
)

// RegisterRoutes registers all aggregate API routes on the given router.
func (s *Service) RegisterRoutes(r gin.IRouter) {
	r.POST("/v1/models/:model/aggregate", s.HandleAggregate)
	r.GET("/v1/models/:model/count", s.HandleCount)
}

// HandleAggregate handles POST /v1/models/:model/aggregate.
func (s *Service) HandleAggregate(c *gin.Context) {
	var req v1.AggregateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, httperr.ErrorResponse{
			ErrorType: httperr.HttpInvalidJsonError,
			Message:   "Invalid request body",
			Details:   err.Error(),
		})
		return
	}

	resp, err := s.Aggregate(c.Request.Context(), c.Param("model"), req)
	if err != nil {
		writeError(c, err, "Failed to run aggregate query")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// HandleCount handles GET /v1/models/:model/count.
// Query parameters: property (optional).
func (s *Service) HandleCount(c *gin.Context) {
	resp, err := s.Count(c.Request.Context(), c.Param("model"), c.Query("property"))
	if err != nil {
		writeError(c, err, "Failed to count rows")
		return
	}

	c.JSON(http.StatusOK, resp)
}

func writeError(c *gin.Context, err error, message string) {
	errorType, callerFault := classify(err)
	status := http.StatusInternalServerError
	if callerFault {
		status = http.StatusBadRequest
	}
	c.JSON(status, httperr.ErrorResponse{
		ErrorType: errorType,
		Message:   message,
		Details:   err.Error(),
	})
}

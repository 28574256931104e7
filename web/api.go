package web

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kilianp07/socest/core/model"
	"github.com/kilianp07/socest/core/soc"
)

// EstimateResponse is the JSON body of /api/soc.
type EstimateResponse struct {
	Voltage   float64 `json:"voltage"`
	SOC       float64 `json:"soc"`
	Clamped   bool    `json:"clamped"`
	Outcome   string  `json:"outcome"`
	RequestID string  `json:"request_id"`
}

// EstimateRequest is the JSON body accepted by POST /api/soc.
type EstimateRequest struct {
	Voltage *float64 `json:"voltage" binding:"required"`
}

// TableResponse is the JSON body of /api/table.
type TableResponse struct {
	Model  string                   `json:"model"`
	Points []model.CalibrationPoint `json:"points"`
}

type errorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

func (s *Server) getSOC(c *gin.Context) {
	v, err := parseVoltage(c.Query("voltage"))
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error(), RequestID: RequestIDFrom(c)})
		return
	}
	s.respondEstimate(c, v)
}

func (s *Server) postSOC(c *gin.Context) {
	var req EstimateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error(), RequestID: RequestIDFrom(c)})
		return
	}
	s.respondEstimate(c, *req.Voltage)
}

func (s *Server) respondEstimate(c *gin.Context, v float64) {
	res, err := s.estimate(c, "api", v)
	if errors.Is(err, soc.ErrUndefinedInterpolation) {
		c.JSON(http.StatusUnprocessableEntity, errorResponse{Error: s.rangeMessage(), RequestID: RequestIDFrom(c)})
		return
	}
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, errorResponse{Error: err.Error(), RequestID: RequestIDFrom(c)})
		return
	}
	c.JSON(http.StatusOK, EstimateResponse{
		Voltage:   res.Voltage,
		SOC:       res.SOC,
		Clamped:   res.Clamped(),
		Outcome:   res.Outcome.String(),
		RequestID: RequestIDFrom(c),
	})
}

func (s *Server) getTable(c *gin.Context) {
	tbl := s.est.Table()
	c.JSON(http.StatusOK, TableResponse{Model: tbl.Model(), Points: tbl.Sorted()})
}

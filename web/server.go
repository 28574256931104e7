package web

import (
	"errors"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kilianp07/socest/config"
	coremetrics "github.com/kilianp07/socest/core/metrics"
	"github.com/kilianp07/socest/core/monitoring"
	"github.com/kilianp07/socest/core/soc"
	"github.com/kilianp07/socest/infra/logger"
)

// Publisher receives one event per estimation.
type Publisher interface {
	Publish(ev coremetrics.EstimateEvent)
}

// Server holds the handlers of the UI and API.
type Server struct {
	est    *soc.Estimator
	ui     config.UIConfig
	events Publisher
	log    logger.Logger
	now    func() time.Time
}

// Option configures a Server.
type Option func(*Server)

// WithPublisher sends estimation events to p.
func WithPublisher(p Publisher) Option { return func(s *Server) { s.events = p } }

// WithLogger sets the request and estimation logger.
func WithLogger(l logger.Logger) Option { return func(s *Server) { s.log = l } }

// NewServer creates the web server around an estimator.
func NewServer(est *soc.Estimator, ui config.UIConfig, opts ...Option) *Server {
	s := &Server{est: est, ui: ui, log: logger.NopLogger{}, now: time.Now}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Handler builds the gin engine with every route registered.
func (s *Server) Handler() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(requestID(), recovery(s.log), accessLog(s.log))
	router.GET("/", s.index)
	router.GET("/chart", s.chart)
	router.GET("/healthz", func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	api := router.Group("/api")
	api.GET("/soc", s.getSOC)
	api.POST("/soc", s.postSOC)
	api.GET("/table", s.getTable)
	return router
}

// estimate runs the estimator and reports the result to the logger and
// publisher. Failures are also sent to the monitor.
func (s *Server) estimate(c *gin.Context, source string, voltage float64) (soc.Result, error) {
	res, err := s.est.Evaluate(voltage)
	ev := coremetrics.EstimateEvent{
		RequestID: RequestIDFrom(c),
		Voltage:   voltage,
		SOC:       res.SOC,
		Outcome:   res.Outcome.String(),
		Err:       err,
		Source:    source,
		Time:      s.now(),
	}
	if s.events != nil {
		s.events.Publish(ev)
	}
	fields := map[string]any{
		"request_id": ev.RequestID,
		"voltage":    voltage,
		"soc":        res.SOC,
		"outcome":    ev.Outcome,
		"source":     source,
	}
	if err != nil {
		s.log.Warnf("estimate %v V (%s): %v", voltage, ev.RequestID, err)
		monitoring.CaptureException(err, map[string]string{
			"request_id": ev.RequestID,
			"source":     source,
			"model":      s.est.Table().Model(),
		})
	} else {
		s.log.Debugw("estimate", fields)
	}
	return res, err
}

var errNoVoltage = errors.New("voltage is required")

// parseVoltage reads a voltage from a query or form value. Infinities are
// rejected; NaN is accepted here and left to the estimator, which reports
// it as undefined.
func parseVoltage(raw string) (float64, error) {
	if raw == "" {
		return 0, errNoVoltage
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, errors.New("voltage must be a number")
	}
	if math.IsInf(v, 0) {
		return 0, errors.New("voltage must be finite")
	}
	return v, nil
}

// withinInput reports whether v respects the input widget bounds. NaN
// passes so the estimator can reject it.
func (s *Server) withinInput(v float64) bool {
	if math.IsNaN(v) {
		return true
	}
	return v >= s.ui.MinVoltage && v <= s.ui.MaxVoltage
}

// rangeMessage is shown when the estimator cannot interpolate.
func (s *Server) rangeMessage() string {
	low, high := s.est.Range()
	return "Voltage out of valid range (" + formatVolts(low) + " V – " + formatVolts(high) + " V) for estimation."
}

func formatVolts(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }

func formatSOC(v float64) string { return strconv.FormatFloat(v, 'f', 1, 64) }

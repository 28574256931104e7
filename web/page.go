package web

import (
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/kilianp07/socest/core/soc"
	"github.com/kilianp07/socest/pkg/export"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var indexTmpl = template.Must(template.ParseFS(templateFS, "templates/index.html.tmpl"))

// pageData feeds the index template.
type pageData struct {
	Model     string
	Min       string
	Max       string
	Step      string
	Value     string
	FormError string
	Error     string
	SOC       string
	ChartURL  string
	Rows      []export.Row
}

func (s *Server) index(c *gin.Context) {
	data := pageData{
		Model: s.est.Table().Model(),
		Min:   formatVolts(s.ui.MinVoltage),
		Max:   formatVolts(s.ui.MaxVoltage),
		Step:  formatVolts(s.ui.Step),
		Value: formatVolts(s.ui.DefaultVoltage),
	}
	status := http.StatusOK
	if raw, ok := c.GetQuery("voltage"); ok {
		data.Value = raw
		status = s.fillResult(c, &data, raw)
	}
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(status)
	if err := indexTmpl.Execute(c.Writer, data); err != nil {
		_ = c.Error(err)
	}
}

// fillResult validates the submitted value, runs the estimation and
// returns the HTTP status of the page.
func (s *Server) fillResult(c *gin.Context, data *pageData, raw string) int {
	v, err := parseVoltage(raw)
	if err != nil {
		data.FormError = err.Error()
		return http.StatusBadRequest
	}
	if !s.withinInput(v) {
		data.FormError = fmt.Sprintf("Voltage must be between %s V and %s V.", data.Min, data.Max)
		return http.StatusBadRequest
	}
	res, err := s.estimate(c, "ui", v)
	if errors.Is(err, soc.ErrUndefinedInterpolation) {
		data.Error = s.rangeMessage()
		return http.StatusOK
	}
	if err != nil {
		data.Error = err.Error()
		return http.StatusInternalServerError
	}
	data.SOC = formatSOC(res.SOC)
	data.ChartURL = "/chart?voltage=" + url.QueryEscape(strconv.FormatFloat(v, 'f', -1, 64))
	data.Rows = export.Rows(s.est.Table())
	return http.StatusOK
}

package web

import (
	"fmt"
	"io"
	"math"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/kilianp07/socest/core/model"
	"github.com/kilianp07/socest/core/soc"
)

const curveSeries = "Voltage vs SOC curve"

// RenderChart writes a standalone HTML page holding the voltage vs SOC
// curve. When reading is non-nil the estimated point is overlaid.
func RenderChart(w io.Writer, tbl model.CalibrationTable, reading *soc.Result) error {
	pts := tbl.Sorted()
	if len(pts) == 0 {
		return fmt.Errorf("empty calibration table")
	}
	xMin, xMax := pts[0].Voltage, pts[len(pts)-1].Voltage
	if reading != nil {
		xMin = math.Min(xMin, reading.Voltage)
		xMax = math.Max(xMax, reading.Voltage)
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: tbl.Model() + " SOC",
			Width:     "800px",
			Height:    "500px",
		}),
		charts.WithTitleOpts(opts.Title{Title: tbl.Model() + " Battery Voltage vs SOC"}),
		charts.WithXAxisOpts(opts.XAxis{
			Name: "Voltage (V)",
			Type: "value",
			Min:  math.Floor(xMin*10) / 10,
			Max:  math.Ceil(xMax*10) / 10,
		}),
		charts.WithYAxisOpts(opts.YAxis{Name: "State of Charge (%)", Min: 0, Max: 100}),
	)

	curve := make([]opts.LineData, len(pts))
	for i, p := range pts {
		curve[i] = opts.LineData{Name: formatVolts(p.Voltage), Value: []float64{p.Voltage, p.SOC}}
	}
	line.AddSeries(curveSeries, curve)

	if reading != nil {
		label := fmt.Sprintf("Input Voltage: %s V / Estimated SOC: %s%%", formatVolts(reading.Voltage), formatSOC(reading.SOC))
		scatter := charts.NewScatter()
		scatter.AddSeries(label, []opts.ScatterData{{
			Name:       label,
			Value:      []float64{reading.Voltage, reading.SOC},
			SymbolSize: 14,
		}}, charts.WithItemStyleOpts(opts.ItemStyle{Color: "red"}))
		line.Overlap(scatter)
	}
	return line.Render(w)
}

func (s *Server) chart(c *gin.Context) {
	var reading *soc.Result
	if raw := c.Query("voltage"); raw != "" {
		v, err := parseVoltage(raw)
		if err != nil {
			c.String(http.StatusBadRequest, err.Error())
			return
		}
		res, err := s.est.Evaluate(v)
		if err == nil {
			reading = &res
		}
	}
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(http.StatusOK)
	if err := RenderChart(c.Writer, s.est.Table(), reading); err != nil {
		_ = c.Error(err)
	}
}

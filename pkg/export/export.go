package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"github.com/kilianp07/socest/core/model"
)

// Row is a calibration point formatted for display: voltage with two
// decimals and SOC with none.
type Row struct {
	Voltage string `json:"voltage_v" yaml:"voltage_v"`
	SOC     string `json:"soc_pct" yaml:"soc_pct"`
}

// Rows formats the table in ascending voltage order.
func Rows(t model.CalibrationTable) []Row {
	pts := t.Sorted()
	rows := make([]Row, len(pts))
	for i, p := range pts {
		rows[i] = Row{
			Voltage: strconv.FormatFloat(p.Voltage, 'f', 2, 64),
			SOC:     strconv.FormatFloat(p.SOC, 'f', 0, 64),
		}
	}
	return rows
}

// WriteJSON writes the calibration points to w in JSON format.
func WriteJSON(w io.Writer, t model.CalibrationTable) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(t.Sorted())
}

// WriteYAML writes the calibration points to w in YAML format.
func WriteYAML(w io.Writer, t model.CalibrationTable) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(t.Sorted()); err != nil {
		return err
	}
	return enc.Close()
}

// WriteCSV writes the formatted rows to w with a header line.
func WriteCSV(w io.Writer, t model.CalibrationTable) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"voltage_v", "soc_pct"}); err != nil {
		return err
	}
	for _, r := range Rows(t) {
		if err := cw.Write([]string{r.Voltage, r.SOC}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteText writes an aligned two column table.
func WriteText(w io.Writer, t model.CalibrationTable) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	if _, err := fmt.Fprintln(tw, "Voltage (V)\tSOC (%)\t"); err != nil {
		return err
	}
	for _, r := range Rows(t) {
		if _, err := fmt.Fprintf(tw, "%s\t%s\t\n", r.Voltage, r.SOC); err != nil {
			return err
		}
	}
	return tw.Flush()
}

// Write dispatches on format: text, csv, json or yaml.
func Write(w io.Writer, format string, t model.CalibrationTable) error {
	switch format {
	case "", "text":
		return WriteText(w, t)
	case "csv":
		return WriteCSV(w, t)
	case "json":
		return WriteJSON(w, t)
	case "yaml", "yml":
		return WriteYAML(w, t)
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

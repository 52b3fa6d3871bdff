package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/growthlab/internal/growth"
)

// Run bundles one simulation with the parameters that produced it.
type Run struct {
	Params         growth.Params       `json:"params" yaml:"params"`
	InitialCapital float64             `json:"initial_capital" yaml:"initial_capital"`
	Steps          int                 `json:"steps" yaml:"steps"`
	SteadyState    *growth.SteadyState `json:"steady_state,omitempty" yaml:"steady_state,omitempty"`
	Diagnostics    growth.Diagnostics  `json:"diagnostics" yaml:"diagnostics"`
	Metrics        map[string]float64  `json:"metrics,omitempty" yaml:"metrics,omitempty"`
}

type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatJSON, FormatYAML:
		return Format(s), nil
	}
	return "", fmt.Errorf("unknown format: %s (available: json, yaml)", s)
}

// WriteCSV writes one row per step: t, k, k_change, k_growth. Diagnostics
// without deltas get empty change and growth columns.
func WriteCSV(out io.Writer, d growth.Diagnostics) error {
	w := csv.NewWriter(out)

	if err := w.Write([]string{"t", "k", "k_change", "k_growth"}); err != nil {
		return err
	}

	for i, k := range d.Path {
		row := []string{strconv.Itoa(i), formatFloat(k), "", ""}
		if i < len(d.Change) {
			row[2] = formatFloat(d.Change[i])
		}
		if i < len(d.Growth) {
			row[3] = formatFloat(d.Growth[i])
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

func WriteJSON(out io.Writer, run *Run) error {
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(run)
}

func SaveJSON(path string, run *Run) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return WriteJSON(file, run)
}

// WriteReport encodes a comparative report in the given format.
func WriteReport(out io.Writer, report growth.ComparativeReport, format Format) error {
	return Encode(out, report, format)
}

// Encode writes any value as indented JSON or YAML.
func Encode(out io.Writer, v any, format Format) error {
	switch format {
	case FormatJSON:
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		return encoder.Encode(v)
	case FormatYAML:
		encoder := yaml.NewEncoder(out)
		encoder.SetIndent(2)
		if err := encoder.Encode(v); err != nil {
			return err
		}
		return encoder.Close()
	}
	return fmt.Errorf("unknown format: %s", format)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 8, 64)
}

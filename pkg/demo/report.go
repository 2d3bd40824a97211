package demo

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/oxygene76/cmdemo/pkg/linalg"
)

// Output formats understood by Result.Write
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Result is the outcome of one demonstration run
type Result struct {
	State    linalg.Vector `json:"state" yaml:"state"`
	Path1    linalg.Vector `json:"path_1" yaml:"path_1"`
	Path2    linalg.Vector `json:"path_2" yaml:"path_2"`
	Distance float64       `json:"distance" yaml:"distance"`
	Epsilon  float64       `json:"epsilon" yaml:"epsilon"`
	Diverged bool          `json:"diverged" yaml:"diverged"`
}

type resultJSON struct {
	State    linalg.Vector `json:"state"`
	Path1    linalg.Vector `json:"path_1"`
	Path2    linalg.Vector `json:"path_2"`
	Distance linalg.Scalar `json:"distance"`
	Epsilon  linalg.Scalar `json:"epsilon"`
	Diverged bool          `json:"diverged"`
}

// MarshalJSON keeps overflowed (Inf/NaN) results encodable
func (r Result) MarshalJSON() ([]byte, error) {
	return json.Marshal(resultJSON{
		State:    r.State,
		Path1:    r.Path1,
		Path2:    r.Path2,
		Distance: linalg.Scalar(r.Distance),
		Epsilon:  linalg.Scalar(r.Epsilon),
		Diverged: r.Diverged,
	})
}

// UnmarshalJSON implements json.Unmarshaler
func (r *Result) UnmarshalJSON(data []byte) error {
	var aux resultJSON
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*r = Result{
		State:    aux.State,
		Path1:    aux.Path1,
		Path2:    aux.Path2,
		Distance: float64(aux.Distance),
		Epsilon:  float64(aux.Epsilon),
		Diverged: aux.Diverged,
	}
	return nil
}

// Write renders the result in the requested format
func (r *Result) Write(w io.Writer, format string) error {
	switch format {
	case "", FormatText:
		return r.WriteText(w)
	case FormatJSON:
		return r.WriteJSON(w)
	case FormatYAML:
		return r.WriteYAML(w)
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}

// WriteText writes the human readable console report
func (r *Result) WriteText(w io.Writer) error {
	lines := []string{
		"--- Cognitional Mechanics Operational Demo ---",
		fmt.Sprintf("Initial State (psi): %s", r.State),
		"",
		"[Path 1] Apply A -> then B:",
		r.Path1.String(),
		"",
		"[Path 2] Apply B -> then A:",
		r.Path2.String(),
		"",
		"--- Conclusion ---",
	}

	if r.Diverged {
		lines = append(lines,
			fmt.Sprintf("Operational Divergence Detected: %.4f", r.Distance),
			"RESULT: The final state is determined by the ORDER of reasoning.",
			"Non-commutative computation is successfully operationalized on classical CPU/GPU.",
			"NO QUANTUM HARDWARE REQUIRED.",
		)
	} else {
		lines = append(lines, "Error: No divergence detected. Check operator definitions.")
	}

	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// WriteJSON writes the result as indented JSON
func (r *Result) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}
	return nil
}

// WriteYAML writes the result as YAML
func (r *Result) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}
	return enc.Close()
}

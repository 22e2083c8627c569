package report

import (
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/antoonpurnal/clangover/attack"
)

// Document is the YAML export of a run.
type Document struct {
	RunID       string                   `yaml:"run_id"`
	Started     time.Time                `yaml:"started"`
	Victim      string                   `yaml:"victim"`
	Scheme      string                   `yaml:"scheme"`
	Fingerprint string                   `yaml:"fingerprint,omitempty"`
	Parameters  attack.ParametersLiteral `yaml:"parameters"`
	Extra       map[string]interface{}   `yaml:"extra,omitempty"`
	Summary     Summary                  `yaml:"summary"`
	Error       string                   `yaml:"error,omitempty"`

	Coefficients []Coefficient `yaml:"coefficients"`
}

// Coefficient is the result of one coefficient together with its true value.
type Coefficient struct {
	attack.Result `yaml:",inline"`
	Truth         *int16 `yaml:"truth,omitempty"`
	Correct       *bool  `yaml:"correct,omitempty"`
}

// NewRunID returns a fresh random run identifier.
func NewRunID() string {
	return uuid.New().String()
}

// NewDocument assembles the export of results. truth may be nil; runErr is the
// error that aborted the run, if any.
func NewDocument(runID, victim, scheme string, params attack.Parameters, results *attack.Results, truth []int16, runErr error) (doc Document, err error) {

	doc = Document{
		RunID:      runID,
		Started:    time.Now().Add(-results.Elapsed).UTC().Truncate(time.Second),
		Victim:     victim,
		Scheme:     scheme,
		Parameters: params.ParametersLiteral(),
	}

	if runErr != nil {
		doc.Error = runErr.Error()
	}

	if doc.Summary, err = Summarize(results, truth); err != nil {
		return doc, fmt.Errorf("cannot NewDocument: %w", err)
	}

	doc.Coefficients = make([]Coefficient, len(results.Coefficients))
	for i, res := range results.Coefficients {
		doc.Coefficients[i].Result = res
		if truth != nil {
			t := truth[res.Index]
			ok := res.Guess.Matches(t)
			doc.Coefficients[i].Truth = &t
			doc.Coefficients[i].Correct = &ok
		}
	}

	return doc, nil
}

// WriteYAML encodes doc on w.
func WriteYAML(w io.Writer, doc Document) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(&doc); err != nil {
		return fmt.Errorf("cannot WriteYAML: %w", err)
	}
	return enc.Close()
}

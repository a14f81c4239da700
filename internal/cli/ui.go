package cli

import (
	"io"
	"time"

	"github.com/briandowns/spinner"
)

// SpinnerRefreshRate is the animation interval of the fetch spinner.
const SpinnerRefreshRate = 200 * time.Millisecond

// Spinner abstracts a terminal spinner so that fetch feedback can be tested
// without a terminal.
type Spinner interface {
	// Start begins the spinner animation.
	Start()
	// Stop halts the spinner animation.
	Stop()
	// UpdateSuffix sets the text that is displayed after the spinner.
	UpdateSuffix(suffix string)
}

// realSpinner adapts spinner.Spinner to the Spinner interface.
type realSpinner struct {
	s *spinner.Spinner
}

func (rs *realSpinner) Start() { rs.s.Start() }

func (rs *realSpinner) Stop() { rs.s.Stop() }

func (rs *realSpinner) UpdateSuffix(suffix string) { rs.s.Suffix = suffix }

var newSpinner = func(options ...spinner.Option) Spinner {
	s := spinner.New(spinner.CharSets[11], SpinnerRefreshRate, options...)
	return &realSpinner{s}
}

// WithSpinner shows a spinner labelled message on out while fn runs.
func WithSpinner(out io.Writer, message string, fn func() error) error {
	s := newSpinner(spinner.WithWriter(out))
	s.UpdateSuffix(" " + message)
	s.Start()
	defer s.Stop()
	return fn()
}

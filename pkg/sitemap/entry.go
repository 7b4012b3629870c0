package sitemap

import (
	"fmt"
)

// ChangeFrequency how frequently the page is likely to change
type ChangeFrequency string

const (
	ChangeFrequencyAlways  ChangeFrequency = "always"
	ChangeFrequencyHourly  ChangeFrequency = "hourly"
	ChangeFrequencyDaily   ChangeFrequency = "daily"
	ChangeFrequencyWeekly  ChangeFrequency = "weekly"
	ChangeFrequencyMonthly ChangeFrequency = "monthly"
	ChangeFrequencyYearly  ChangeFrequency = "yearly"
	ChangeFrequencyNever   ChangeFrequency = "never"
)

// Valid reports whether f is empty or one of the known frequencies
func (f ChangeFrequency) Valid() bool {
	switch f {
	case "",
		ChangeFrequencyAlways,
		ChangeFrequencyHourly,
		ChangeFrequencyDaily,
		ChangeFrequencyWeekly,
		ChangeFrequencyMonthly,
		ChangeFrequencyYearly,
		ChangeFrequencyNever:
		return true
	default:
		return false
	}
}

// Entry a single url record of a sitemap
type Entry struct {
	// URL path or url segment, joined with the base url
	URL string `json:"url" yaml:"url" mapstructure:"url"`
	// LastModified is rendered as given
	LastModified string `json:"lastModified,omitempty" yaml:"lastModified,omitempty" mapstructure:"lastModified"`
	// ChangeFrequency optional change frequency hint
	ChangeFrequency ChangeFrequency `json:"changeFrequency,omitempty" yaml:"changeFrequency,omitempty" mapstructure:"changeFrequency"`
	// Priority nil means unset, zero is a valid priority
	Priority *float64 `json:"priority,omitempty" yaml:"priority,omitempty" mapstructure:"priority"`
}

// Validate checks the fields that have a closed set of values.
func (e Entry) Validate() error {
	if !e.ChangeFrequency.Valid() {
		return fmt.Errorf("invalid change frequency %q for url %q", e.ChangeFrequency, e.URL)
	}
	return nil
}

// PriorityInRange reports whether the priority is unset or within [0, 1]
func (e Entry) PriorityInRange() bool {
	return e.Priority == nil || (*e.Priority >= 0 && *e.Priority <= 1)
}

// Priority returns a pointer to v
func Priority(v float64) *float64 {
	return &v
}

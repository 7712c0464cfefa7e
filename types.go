package main

import "errors"

// Platform tags used in the published document
const (
	PlatformYouTube   = "youtube"
	PlatformInstagram = "instagram"
)

// VideoItem is the latest upload of the configured channel
type VideoItem struct {
	Platform    string `json:"platform"`
	VideoID     string `json:"videoId"`
	Title       string `json:"title"`
	PublishedAt string `json:"publishedAt"`
	URL         string `json:"url"`
	Thumbnail   string `json:"thumbnail,omitempty"`
}

// SocialPost is the latest media item of the authenticated account
type SocialPost struct {
	Platform  string `json:"platform"`
	Caption   string `json:"caption"`
	URL       string `json:"url"`
	MediaType string `json:"mediaType"`
	MediaURL  string `json:"mediaUrl"`
	Thumb     string `json:"thumb"`
	Timestamp string `json:"timestamp"`
}

// Button is a label/href pair rendered by the site
type Button struct {
	Label string `json:"label" yaml:"label"`
	Href  string `json:"href" yaml:"href"`
}

// OutputDocument is the JSON payload read by the static site
type OutputDocument struct {
	Brand     string      `json:"brand"`
	Audience  string      `json:"audience"`
	UpdatedAt string      `json:"updatedAt"`
	Headline  string      `json:"headline"`
	Offer     string      `json:"offer"`
	YouTube   *VideoItem  `json:"youtube"`
	Instagram *SocialPost `json:"instagram"`
	Buttons   []Button    `json:"buttons"`
	Contact   []Button    `json:"contact"`
}

// Status represents the outcome of one optional integration
type Status string

const (
	StatusOK       Status = "ok"
	StatusDisabled Status = "disabled"
	StatusFailed   Status = "failed"
)

// ErrDisabled marks an integration that is not configured
var ErrDisabled = errors.New("integration disabled")

// Result is the tagged outcome of an optional integration.
// Value is only meaningful when Status is StatusOK.
type Result[T any] struct {
	Status Status
	Value  T
	Err    error
}

// OK wraps a successful value
func OK[T any](v T) Result[T] {
	return Result[T]{Status: StatusOK, Value: v}
}

// Disabled reports a missing configuration; reason names what is missing
func Disabled[T any](reason string) Result[T] {
	return Result[T]{Status: StatusDisabled, Err: &disabledError{reason: reason}}
}

// Failed reports an upstream failure
func Failed[T any](err error) Result[T] {
	return Result[T]{Status: StatusFailed, Err: err}
}

// Ptr returns a pointer to the value on success and nil otherwise
func (r Result[T]) Ptr() *T {
	if r.Status != StatusOK {
		return nil
	}
	v := r.Value
	return &v
}

type disabledError struct {
	reason string
}

func (e *disabledError) Error() string {
	return "disabled: " + e.reason
}

func (e *disabledError) Unwrap() error {
	return ErrDisabled
}

// Outcome summarises a completed run
type Outcome string

const (
	OutcomeOK       Outcome = "ok"
	OutcomeDegraded Outcome = "degraded"
)

// RunReport tracks what each integration yielded during one run
type RunReport struct {
	RunID     string
	Path      string
	YouTube   Status
	Instagram Status
	Headline  Status
}

// Outcome returns ok only when every integration succeeded.
// Disabled integrations count as degradations.
func (r RunReport) Outcome() Outcome {
	for _, s := range []Status{r.YouTube, r.Instagram, r.Headline} {
		if s != StatusOK {
			return OutcomeDegraded
		}
	}
	return OutcomeOK
}

// Degradations lists the integrations that did not succeed
func (r RunReport) Degradations() []string {
	var out []string
	if r.YouTube != StatusOK {
		out = append(out, "youtube:"+string(r.YouTube))
	}
	if r.Instagram != StatusOK {
		out = append(out, "instagram:"+string(r.Instagram))
	}
	if r.Headline != StatusOK {
		out = append(out, "headline:"+string(r.Headline))
	}
	return out
}

// processor.go
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// VideoSource yields the latest video of a channel
type VideoSource interface {
	LatestVideo(ctx context.Context) Result[VideoItem]
}

// SocialSource yields the latest post of an account
type SocialSource interface {
	LatestPost(ctx context.Context) Result[SocialPost]
}

// HeadlineSource yields a generated headline
type HeadlineSource interface {
	Headline(ctx context.Context, in HeadlineInput) Result[string]
}

// ContentProcessor handles the main workflow: fetch, headline, write
type ContentProcessor struct {
	cfg      *Config
	runID    string
	video    VideoSource
	social   SocialSource
	headline HeadlineSource
	logger   *slog.Logger
	now      func() time.Time
}

// NewContentProcessor wires the real integrations. Every log line of the
// run carries the same run_id.
func NewContentProcessor(cfg *Config, logger *slog.Logger) *ContentProcessor {
	runID := uuid.NewString()
	logger = logger.With("run_id", runID)
	client := &http.Client{Timeout: cfg.Settings.HTTP.Timeout}

	return &ContentProcessor{
		cfg:      cfg,
		runID:    runID,
		video:    NewYouTubeFetcher(cfg, client, logger),
		social:   NewInstagramFetcher(cfg, client, logger),
		headline: NewHeadlineWriter(cfg, client, logger),
		logger:   logger,
		now:      time.Now,
	}
}

// Run executes one pass. Only a failure to write the document is returned
// as an error; every other problem is reflected in the report.
func (p *ContentProcessor) Run(ctx context.Context) (RunReport, error) {
	report := RunReport{RunID: p.runID, Path: p.cfg.Settings.OutputPath}
	env := p.cfg.Env

	var (
		g         errgroup.Group
		videoRes  Result[VideoItem]
		socialRes Result[SocialPost]
	)
	g.Go(func() error {
		videoRes = p.video.LatestVideo(ctx)
		return nil
	})
	g.Go(func() error {
		socialRes = p.social.LatestPost(ctx)
		return nil
	})
	_ = g.Wait()

	report.YouTube = videoRes.Status
	report.Instagram = socialRes.Status

	in := HeadlineInput{
		Brand:    env.Brand,
		Audience: env.Audience,
		Offer:    env.Offer,
		Video:    videoRes.Ptr(),
		Post:     socialRes.Ptr(),
	}

	hctx, cancel := context.WithTimeout(ctx, p.cfg.Settings.HTTP.Timeout)
	headlineRes := p.headline.Headline(hctx, in)
	cancel()
	report.Headline = headlineRes.Status

	var headline string
	switch headlineRes.Status {
	case StatusOK:
		headline = headlineRes.Value
	case StatusFailed:
		headline = FailureHeadline(in)
	default:
		headline = FallbackHeadline(in)
	}

	doc := BuildDocument(DocumentInput{
		Brand:     env.Brand,
		Audience:  env.Audience,
		Offer:     env.Offer,
		Headline:  headline,
		Video:     in.Video,
		Post:      in.Post,
		Contact:   p.cfg.Settings.Contact,
		UpdatedAt: p.now(),
	})

	if err := WriteDocument(report.Path, doc, p.logger); err != nil {
		return report, fmt.Errorf("writing content: %w", err)
	}

	if report.Outcome() == OutcomeDegraded {
		p.logger.Warn("Run completed with degradations", "degraded", report.Degradations())
	} else {
		p.logger.Info("✓ Run completed")
	}
	return report, nil
}

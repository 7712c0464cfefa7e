package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
)

var instagramFields = []string{
	"id", "caption", "permalink", "media_type", "media_url", "thumbnail_url", "timestamp",
}

// InstagramFetcher reads the newest media of the token's account from the Graph API
type InstagramFetcher struct {
	apiURL string
	token  string
	api    *apiClient
	logger *slog.Logger
}

type instagramMediaResponse struct {
	Data []struct {
		ID           string `json:"id"`
		Caption      string `json:"caption"`
		Permalink    string `json:"permalink"`
		MediaType    string `json:"media_type"`
		MediaURL     string `json:"media_url"`
		ThumbnailURL string `json:"thumbnail_url"`
		Timestamp    string `json:"timestamp"`
	} `json:"data"`
}

// NewInstagramFetcher creates a fetcher; an empty token leaves it disabled
func NewInstagramFetcher(cfg *Config, client *http.Client, logger *slog.Logger) *InstagramFetcher {
	return &InstagramFetcher{
		apiURL: strings.TrimRight(cfg.Settings.Instagram.APIURL, "/"),
		token:  cfg.Env.Instagram.Token,
		api:    newAPIClient(client, cfg.Settings.HTTP.Timeout),
		logger: logger.With("source", PlatformInstagram),
	}
}

// LatestPost never returns an error; failures are reported in the Result
func (f *InstagramFetcher) LatestPost(ctx context.Context) Result[SocialPost] {
	// Optional integration, stay quiet when it is not configured
	if f.token == "" {
		f.logger.Debug("INSTAGRAM_TOKEN not set, skipping Instagram")
		return Disabled[SocialPost]("INSTAGRAM_TOKEN not set")
	}

	f.logger.Info("→ Fetching latest Instagram post")

	q := url.Values{}
	q.Set("fields", strings.Join(instagramFields, ","))
	redacted := f.apiURL + "/me/media?" + q.Encode()
	q.Set("access_token", f.token)

	req, err := http.NewRequest(http.MethodGet, f.apiURL+"/me/media?"+q.Encode(), nil)
	if err != nil {
		f.logger.Error("Instagram request could not be built", "error", err)
		return Failed[SocialPost](err)
	}

	var data instagramMediaResponse
	if err := f.api.doJSON(ctx, req, redacted, &data); err != nil {
		logUpstreamError(f.logger, "Instagram API error", err)
		return Failed[SocialPost](err)
	}

	if len(data.Data) == 0 {
		f.logger.Warn("Instagram returned no media for this account")
		return Failed[SocialPost](errors.New("no media for account"))
	}

	media := data.Data[0]
	post := SocialPost{
		Platform:  PlatformInstagram,
		Caption:   media.Caption,
		URL:       media.Permalink,
		MediaType: media.MediaType,
		MediaURL:  media.MediaURL,
		Thumb:     firstNonEmpty(media.ThumbnailURL, media.MediaURL),
		Timestamp: media.Timestamp,
	}

	f.logger.Info("✓ Instagram post found", "id", media.ID, "media_type", post.MediaType)
	return OK(post)
}

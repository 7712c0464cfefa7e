// youtube.go
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
)

const watchURLFormat = "https://www.youtube.com/watch?v=%s"

// YouTubeFetcher looks up the newest upload of one channel through the Data API
type YouTubeFetcher struct {
	apiURL    string
	apiKey    string
	channelID string
	api       *apiClient
	logger    *slog.Logger
}

type youtubeSearchResponse struct {
	Items []struct {
		ID struct {
			VideoID string `json:"videoId"`
		} `json:"id"`
		Snippet struct {
			Title       string `json:"title"`
			PublishedAt string `json:"publishedAt"`
			Thumbnails  struct {
				High *struct {
					URL string `json:"url"`
				} `json:"high"`
			} `json:"thumbnails"`
		} `json:"snippet"`
	} `json:"items"`
}

// NewYouTubeFetcher creates a fetcher; a missing key or channel id leaves it disabled
func NewYouTubeFetcher(cfg *Config, client *http.Client, logger *slog.Logger) *YouTubeFetcher {
	return &YouTubeFetcher{
		apiURL:    strings.TrimRight(cfg.Settings.YouTube.APIURL, "/"),
		apiKey:    cfg.Env.YouTube.APIKey,
		channelID: cfg.Env.YouTube.ChannelID,
		api:       newAPIClient(client, cfg.Settings.HTTP.Timeout),
		logger:    logger.With("source", PlatformYouTube),
	}
}

// LatestVideo never returns an error; failures are reported in the Result
func (f *YouTubeFetcher) LatestVideo(ctx context.Context) Result[VideoItem] {
	if missing := f.missingConfig(); len(missing) > 0 {
		f.logger.Warn("YouTube env missing, skipping YouTube", "missing", strings.Join(missing, ", "))
		return Disabled[VideoItem](strings.Join(missing, ", ") + " not set")
	}

	f.logger.Info("→ Fetching latest YouTube video", "channel", f.channelID)

	q := url.Values{}
	q.Set("part", "snippet")
	q.Set("channelId", f.channelID)
	q.Set("maxResults", "1")
	q.Set("order", "date")
	q.Set("type", "video")
	redacted := f.apiURL + "/search?" + q.Encode()
	q.Set("key", f.apiKey)

	req, err := http.NewRequest(http.MethodGet, f.apiURL+"/search?"+q.Encode(), nil)
	if err != nil {
		f.logger.Error("YouTube request could not be built", "error", err)
		return Failed[VideoItem](err)
	}

	var data youtubeSearchResponse
	if err := f.api.doJSON(ctx, req, redacted, &data); err != nil {
		logUpstreamError(f.logger, "YouTube API error", err)
		return Failed[VideoItem](err)
	}

	if len(data.Items) == 0 || data.Items[0].ID.VideoID == "" {
		f.logger.Warn("YouTube returned no items. Ensure the channel id starts with UC and has public videos", "channel", f.channelID)
		return Failed[VideoItem](fmt.Errorf("no videos for channel %s", f.channelID))
	}

	item := data.Items[0]
	video := VideoItem{
		Platform:    PlatformYouTube,
		VideoID:     item.ID.VideoID,
		Title:       plainText(item.Snippet.Title),
		PublishedAt: item.Snippet.PublishedAt,
		URL:         fmt.Sprintf(watchURLFormat, url.QueryEscape(item.ID.VideoID)),
	}
	if item.Snippet.Thumbnails.High != nil {
		video.Thumbnail = item.Snippet.Thumbnails.High.URL
	}

	f.logger.Info("✓ YouTube video found", "video_id", video.VideoID, "title", video.Title)
	return OK(video)
}

func (f *YouTubeFetcher) missingConfig() []string {
	var missing []string
	if f.apiKey == "" {
		missing = append(missing, "YOUTUBE_API_KEY")
	}
	if f.channelID == "" {
		missing = append(missing, "YOUTUBE_CHANNEL_ID")
	}
	return missing
}

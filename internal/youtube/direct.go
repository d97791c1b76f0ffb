package youtube

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/text/language"

	"github.com/MikeSquared-Agency/moodline/internal/transcript"
)

const (
	defaultWatchURL = "https://www.youtube.com/watch"
	playerMarker    = "ytInitialPlayerResponse"
	maxPageBytes    = 8 << 20
	userAgent       = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"

	// recentTTL covers the caption and details lookups of one analysis.
	recentTTL = 2 * time.Minute
	maxRecent = 32
)

// DirectClient reads captions straight from the public watch page: the
// embedded player response lists caption tracks whose baseUrl serves timedtext
// XML. A player response is reused for a short while so one analysis reads
// the watch page once.
type DirectClient struct {
	watchURL string
	lang     language.Tag
	client   *http.Client
	logger   *slog.Logger

	mu     sync.Mutex
	recent map[string]recentPlayer
	now    func() time.Time
}

type recentPlayer struct {
	pr      *playerResponse
	fetched time.Time
}

func NewDirectClient(lang string, logger *slog.Logger) *DirectClient {
	tag, err := language.Parse(lang)
	if err != nil {
		tag = language.English
	}
	return &DirectClient{
		watchURL: defaultWatchURL,
		lang:     tag,
		client:   &http.Client{Timeout: 20 * time.Second},
		logger:   logger,
		recent:   make(map[string]recentPlayer),
		now:      time.Now,
	}
}

// SetTestTransport points the client at a test server serving watch pages.
func (c *DirectClient) SetTestTransport(watchURL string) {
	c.watchURL = watchURL
}

type playerResponse struct {
	PlayabilityStatus struct {
		Status string `json:"status"`
		Reason string `json:"reason"`
	} `json:"playabilityStatus"`
	VideoDetails struct {
		VideoID       string `json:"videoId"`
		Title         string `json:"title"`
		LengthSeconds string `json:"lengthSeconds"`
		Thumbnail     struct {
			Thumbnails []struct {
				URL string `json:"url"`
			} `json:"thumbnails"`
		} `json:"thumbnail"`
	} `json:"videoDetails"`
	Captions *struct {
		Renderer struct {
			CaptionTracks []captionTrack `json:"captionTracks"`
		} `json:"playerCaptionsTracklistRenderer"`
	} `json:"captions"`
}

// FetchRawCues implements CaptionSource.
func (c *DirectClient) FetchRawCues(ctx context.Context, videoID string) ([]transcript.RawCue, error) {
	pr, err := c.playerResponse(ctx, videoID)
	if err != nil {
		return nil, err
	}
	if pr.Captions == nil {
		return nil, fmt.Errorf("%w: video %s has no caption tracks", ErrCaptionsUnavailable, videoID)
	}

	track, ok := selectTrack(pr.Captions.Renderer.CaptionTracks, c.lang)
	if !ok || track.BaseURL == "" {
		return nil, fmt.Errorf("%w: video %s has no caption tracks", ErrCaptionsUnavailable, videoID)
	}

	c.logger.Debug("fetching caption track",
		"video_id", videoID,
		"language", track.LanguageCode,
		"auto_generated", track.autoGenerated(),
	)

	body, err := c.get(ctx, track.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("fetch caption track: %w", err)
	}
	defer body.Close()

	cues, err := transcript.ParseTimedText(body)
	if err != nil {
		return nil, fmt.Errorf("caption track for %s: %w", videoID, err)
	}
	if len(cues) == 0 {
		return nil, fmt.Errorf("%w: caption track for %s is empty", ErrCaptionsUnavailable, videoID)
	}
	return cues, nil
}

// VideoDetails implements DetailsProvider.
func (c *DirectClient) VideoDetails(ctx context.Context, videoID string) (VideoDetails, error) {
	pr, err := c.playerResponse(ctx, videoID)
	if err != nil {
		return VideoDetails{}, err
	}

	d := VideoDetails{
		ID:           videoID,
		Title:        pr.VideoDetails.Title,
		ThumbnailURL: fmt.Sprintf("https://img.youtube.com/vi/%s/hqdefault.jpg", videoID),
	}
	if d.Title == "" {
		d.Title = "Unknown Title"
	}
	if n, err := strconv.Atoi(pr.VideoDetails.LengthSeconds); err == nil {
		d.Duration = n
	}
	if thumbs := pr.VideoDetails.Thumbnail.Thumbnails; len(thumbs) > 0 && thumbs[0].URL != "" {
		d.ThumbnailURL = thumbs[0].URL
	}
	return d, nil
}

func (c *DirectClient) playerResponse(ctx context.Context, videoID string) (*playerResponse, error) {
	if !IsValidVideoID(videoID) {
		return nil, fmt.Errorf("%w: malformed video id %q", ErrLookup, videoID)
	}
	if pr, ok := c.recentPlayer(videoID); ok {
		return pr, nil
	}
	pr, err := c.fetchPlayerResponse(ctx, videoID)
	if err != nil {
		return nil, err
	}
	c.remember(videoID, pr)
	return pr, nil
}

func (c *DirectClient) recentPlayer(videoID string) (*playerResponse, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	r, ok := c.recent[videoID]
	if !ok || c.now().Sub(r.fetched) > recentTTL {
		return nil, false
	}
	return r.pr, true
}

func (c *DirectClient) remember(videoID string, pr *playerResponse) {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.now()
	for id, r := range c.recent {
		if now.Sub(r.fetched) > recentTTL {
			delete(c.recent, id)
		}
	}
	if len(c.recent) >= maxRecent {
		oldest := ""
		for id, r := range c.recent {
			if oldest == "" || r.fetched.Before(c.recent[oldest].fetched) {
				oldest = id
			}
		}
		delete(c.recent, oldest)
	}
	c.recent[videoID] = recentPlayer{pr: pr, fetched: now}
}

func (c *DirectClient) fetchPlayerResponse(ctx context.Context, videoID string) (*playerResponse, error) {

	u, err := url.Parse(c.watchURL)
	if err != nil {
		return nil, fmt.Errorf("%w: watch url: %v", ErrLookup, err)
	}
	q := u.Query()
	q.Set("v", videoID)
	q.Set("hl", c.lang.String())
	u.RawQuery = q.Encode()

	body, err := c.get(ctx, u.String())
	if err != nil {
		return nil, err
	}
	defer body.Close()

	page, err := io.ReadAll(io.LimitReader(body, maxPageBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: read watch page: %v", ErrLookup, err)
	}

	pr, err := extractPlayerResponse(string(page))
	if err != nil {
		return nil, fmt.Errorf("%w: video %s: %v", ErrLookup, videoID, err)
	}
	if status := pr.PlayabilityStatus.Status; status != "" && status != "OK" {
		return nil, fmt.Errorf("%w: video %s is %s: %s", ErrLookup, videoID, strings.ToLower(status), pr.PlayabilityStatus.Reason)
	}
	return pr, nil
}

// extractPlayerResponse decodes the JSON object assigned to
// ytInitialPlayerResponse in the watch page's inline script.
func extractPlayerResponse(page string) (*playerResponse, error) {
	idx := strings.Index(page, playerMarker)
	if idx < 0 {
		return nil, errors.New("player response not found")
	}
	rest := page[idx+len(playerMarker):]
	brace := strings.IndexByte(rest, '{')
	if brace < 0 {
		return nil, errors.New("player response not found")
	}

	var pr playerResponse
	if err := json.NewDecoder(strings.NewReader(rest[brace:])).Decode(&pr); err != nil {
		return nil, fmt.Errorf("decode player response: %w", err)
	}
	return &pr, nil
}

func (c *DirectClient) get(ctx context.Context, target string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: create request: %v", ErrLookup, err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept-Language", c.lang.String()+";q=0.9,*;q=0.5")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLookup, err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("%w: GET %s: status %d", ErrLookup, redactQuery(target), resp.StatusCode)
	}
	return resp.Body, nil
}

func redactQuery(target string) string {
	if i := strings.IndexByte(target, '?'); i >= 0 {
		return target[:i]
	}
	return target
}

package youtube

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/MikeSquared-Agency/moodline/internal/transcript"
)

// ServiceClient fetches cues from a transcript service exposing
// GET {base}/transcripts/{videoID}?lang=xx and answering with
// {"cues":[{"start":..,"duration":..,"text":..}]}.
type ServiceClient struct {
	baseURL string
	lang    string
	client  *http.Client
}

func NewServiceClient(baseURL, lang string) *ServiceClient {
	return &ServiceClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		lang:    lang,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

type serviceResponse struct {
	Cues []transcript.RawCue `json:"cues"`
}

// FetchRawCues implements CaptionSource.
func (c *ServiceClient) FetchRawCues(ctx context.Context, videoID string) ([]transcript.RawCue, error) {
	target := fmt.Sprintf("%s/transcripts/%s", c.baseURL, url.PathEscape(videoID))
	if c.lang != "" {
		target += "?lang=" + url.QueryEscape(c.lang)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: create request: %v", ErrLookup, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLookup, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%w: video %s", ErrCaptionsUnavailable, videoID)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("%w: transcript service status %d: %s", ErrLookup, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var sr serviceResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return nil, fmt.Errorf("%w: decode transcript service response: %v", ErrLookup, err)
	}

	cues := make([]transcript.RawCue, 0, len(sr.Cues))
	for _, rc := range sr.Cues {
		rc.Text = transcript.CleanText(rc.Text)
		if rc.Text == "" {
			continue
		}
		cues = append(cues, rc)
	}
	if len(cues) == 0 {
		return nil, fmt.Errorf("%w: video %s has an empty transcript", ErrCaptionsUnavailable, videoID)
	}
	return cues, nil
}

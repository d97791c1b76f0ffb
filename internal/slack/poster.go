package slack

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/MikeSquared-Agency/moodline/internal/analysis"
	"github.com/MikeSquared-Agency/moodline/internal/sentiment"
	"github.com/MikeSquared-Agency/moodline/internal/transcript"
)

const defaultPostMessageURL = "https://slack.com/api/chat.postMessage"

type Poster struct {
	token   string
	channel string
	client  *http.Client
	logger  *slog.Logger
	apiURL  string
}

func NewPoster(token, channel string, logger *slog.Logger) *Poster {
	return &Poster{
		token:   token,
		channel: channel,
		client:  &http.Client{Timeout: 10 * time.Second},
		apiURL:  defaultPostMessageURL,
		logger:  logger,
	}
}

// PostAnalysisSummary posts a short report of a finished analysis.
func (p *Poster) PostAnalysisSummary(ctx context.Context, r *analysis.Result) error {
	text := formatSummaryMessage(r)

	ts, err := p.post(ctx, map[string]any{
		"channel": p.channel,
		"text":    text,
		"blocks": []map[string]any{
			{
				"type": "section",
				"text": map[string]any{
					"type": "mrkdwn",
					"text": text,
				},
			},
			{
				"type": "context",
				"elements": []map[string]any{
					{
						"type": "mrkdwn",
						"text": fmt.Sprintf("analysis `%s` | scorer %s | %gs chunks", r.ID, r.Scorer, r.ChunkDuration),
					},
				},
			},
		},
	})
	if err != nil {
		return err
	}

	p.logger.Info("posted analysis summary to slack", "ts", ts, "analysis_id", r.ID, "video_id", r.VideoID)
	return nil
}

func (p *Poster) post(ctx context.Context, payload map[string]any) (string, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal slack payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.apiURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json; charset=utf-8")
	req.Header.Set("Authorization", "Bearer "+p.token)

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("slack post: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	var slackResp struct {
		OK    bool   `json:"ok"`
		TS    string `json:"ts"`
		Error string `json:"error,omitempty"`
	}
	if err := json.Unmarshal(respBody, &slackResp); err != nil {
		return "", fmt.Errorf("parse slack response: %w", err)
	}
	if !slackResp.OK {
		return "", fmt.Errorf("slack error: %s", slackResp.Error)
	}
	return slackResp.TS, nil
}

func formatSummaryMessage(r *analysis.Result) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "*Video:* <https://www.youtube.com/watch?v=%s|%s> (%s)\n", r.VideoID, r.VideoTitle, transcript.FormatTimestamp(float64(r.VideoDuration)))
	fmt.Fprintf(&sb, "*Overall:* %s %s (score %d, comparative %.3f)\n",
		labelEmoji(r.OverallSentiment.Label), r.OverallSentiment.Label, r.OverallSentiment.Score, r.OverallSentiment.Comparative)
	fmt.Fprintf(&sb, "*Segments:* %d\n", len(r.Segments))

	if len(r.Segments) == 0 {
		sb.WriteString("\n_No captions to score for this video._")
		return sb.String()
	}

	writeTop := func(title string, segs []sentiment.AnnotatedSegment) {
		if len(segs) == 0 {
			return
		}
		fmt.Fprintf(&sb, "\n*%s*\n", title)
		for i, s := range segs {
			fmt.Fprintf(&sb, "%d. [%s] %+d %s\n", i+1, transcript.FormatTimestamp(s.Start), s.Sentiment.Score, quote(s.Text))
		}
	}
	writeTop("Most positive", r.TopPositive)
	writeTop("Most negative", r.TopNegative)

	return sb.String()
}

func labelEmoji(l sentiment.Label) string {
	switch l {
	case sentiment.LabelPositive:
		return ":large_green_circle:"
	case sentiment.LabelNegative:
		return ":red_circle:"
	default:
		return ":white_circle:"
	}
}

const maxQuoteLen = 120

func quote(text string) string {
	r := []rune(text)
	if len(r) > maxQuoteLen {
		text = string(r[:maxQuoteLen-1]) + "…"
	}
	return "_" + text + "_"
}

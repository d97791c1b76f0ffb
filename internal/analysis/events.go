package analysis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/MikeSquared-Agency/moodline/internal/hermes"
)

// requestTimeout bounds one NATS-triggered analysis.
const requestTimeout = 5 * time.Minute

// HandleAnalysisRequested is the NATS handler for swarm.moodline.analysis.requested.
func (a *Analyzer) HandleAnalysisRequested(subject string, data []byte) {
	var evt hermes.AnalysisRequested
	if err := json.Unmarshal(data, &evt); err != nil {
		a.logger.Error("failed to parse analysis request", "subject", subject, "error", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	a.logger.Info("analysis requested",
		"request_id", evt.RequestID,
		"video_id", evt.VideoID,
		"url", evt.URL,
	)

	req := Request{VideoID: evt.VideoID, URL: evt.URL, ChunkDuration: evt.ChunkDuration}
	res, err := a.Analyze(ctx, req)
	if err != nil {
		videoID := evt.VideoID
		if id, rerr := req.resolve(); rerr == nil {
			videoID = id
		}
		a.logger.Error("requested analysis failed", "request_id", evt.RequestID, "video_id", videoID, "error", err)
		a.publish(hermes.SubjectAnalysisFailed, hermes.AnalysisFailed{
			RequestID: evt.RequestID,
			VideoID:   videoID,
			Code:      Code(err),
			Error:     err.Error(),
		})
		return
	}

	a.publish(hermes.SubjectAnalysisCompleted, hermes.AnalysisCompleted{
		RequestID:          evt.RequestID,
		AnalysisID:         res.ID.String(),
		VideoID:            res.VideoID,
		VideoTitle:         res.VideoTitle,
		SegmentCount:       len(res.Segments),
		OverallScore:       res.OverallSentiment.Score,
		OverallComparative: res.OverallSentiment.Comparative,
		OverallLabel:       string(res.OverallSentiment.Label),
	})
}

func (a *Analyzer) publish(subject string, payload any) {
	if a.events == nil {
		return
	}
	if err := a.events.Publish(subject, payload); err != nil {
		a.logger.Error("failed to publish event", "subject", subject, "error", err)
	}
}

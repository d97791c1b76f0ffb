package hermes

const (
	// SubjectAnalysisRequested asks moodline to analyse a video.
	SubjectAnalysisRequested = "swarm.moodline.analysis.requested"
	// SubjectAnalysisCompleted carries the summary of a finished analysis.
	SubjectAnalysisCompleted = "swarm.moodline.analysis.completed"
	// SubjectAnalysisFailed reports a request that could not be analysed.
	SubjectAnalysisFailed = "swarm.moodline.analysis.failed"
	// SubjectRegistered announces the agent on startup.
	SubjectRegistered = "swarm.agent.moodline.registered"
)

// AnalysisRequested is the payload of SubjectAnalysisRequested. One of
// VideoID or URL must be set.
type AnalysisRequested struct {
	RequestID     string  `json:"request_id"`
	VideoID       string  `json:"video_id,omitempty"`
	URL           string  `json:"url,omitempty"`
	ChunkDuration *float64 `json:"chunk_duration,omitempty"`
}

type AnalysisCompleted struct {
	RequestID          string  `json:"request_id"`
	AnalysisID         string  `json:"analysis_id"`
	VideoID            string  `json:"video_id"`
	VideoTitle         string  `json:"video_title"`
	SegmentCount       int     `json:"segment_count"`
	OverallScore       int     `json:"overall_score"`
	OverallComparative float64 `json:"overall_comparative"`
	OverallLabel       string  `json:"overall_label"`
}

type AnalysisFailed struct {
	RequestID string `json:"request_id"`
	VideoID   string `json:"video_id,omitempty"`
	Code      string `json:"code"`
	Error     string `json:"error"`
}

type Registration struct {
	Timestamp string `json:"timestamp"`
	Port      string `json:"port"`
	Scorer    string `json:"scorer"`
	Version   string `json:"version"`
}

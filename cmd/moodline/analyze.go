package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/MikeSquared-Agency/moodline/internal/analysis"
	"github.com/MikeSquared-Agency/moodline/internal/config"
	"github.com/MikeSquared-Agency/moodline/internal/sentiment"
	"github.com/MikeSquared-Agency/moodline/internal/transcript"
	"github.com/MikeSquared-Agency/moodline/internal/youtube"
)

const maxCellText = 60

func newAnalyzeCommand() *cobra.Command {
	var (
		asJSON     bool
		file       string
		chunk      float64
		scorerName string
	)

	cmd := &cobra.Command{
		Use:   "analyze <url|video-id>",
		Short: "Analyze the sentiment of a video's captions",
		Long: "Fetches the caption track of a video, splits it into time segments and scores each one.\n" +
			"With --file the captions are read from a local timedtext XML or SRT file instead.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			if cmd.Flags().Changed("chunk") {
				cfg.ChunkDuration = chunk
			}
			if scorerName != "" {
				cfg.Scorer = scorerName
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}

			logger := newLogger(cfg.LogLevel, cmd.ErrOrStderr(), false)
			ctx := cmd.Context()

			var (
				source  youtube.CaptionSource
				details youtube.DetailsProvider
			)
			if file != "" {
				source = youtube.FileSource{Path: file}
			} else {
				backend := buildCaptionBackend(ctx, cfg, logger)
				defer backend.Close()
				source, details = backend.source, backend.details
			}

			analyzer := analysis.New(source, details, buildScorer(cfg, logger), analysis.Options{
				ChunkDuration: cfg.ChunkDuration,
				Concurrency:   cfg.ScoringConcurrency,
				ScorerName:    cfg.Scorer,
			}, logger)

			res, err := analyzer.Analyze(ctx, analysis.Request{VideoID: args[0]})
			if err != nil {
				return err
			}

			if asJSON {
				return writeJSON(cmd.OutOrStdout(), res)
			}
			writeReport(cmd.OutOrStdout(), res)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the full analysis as JSON")
	cmd.Flags().StringVar(&file, "file", "", "Read captions from a local .xml or .srt file")
	cmd.Flags().Float64Var(&chunk, "chunk", 0, "Target segment duration in seconds (default from CHUNK_DURATION)")
	cmd.Flags().StringVar(&scorerName, "scorer", "", "Scorer to use: lexicon or llm (default from MOODLINE_SCORER)")

	return cmd
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeReport(w io.Writer, res *analysis.Result) {
	fmt.Fprintf(w, "%s (%s)  %s\n", res.VideoTitle, res.VideoID, transcript.FormatTimestamp(float64(res.VideoDuration)))
	fmt.Fprintf(w, "Overall: %s  score %d  comparative %.3f  segments %d\n\n",
		res.OverallSentiment.Label, res.OverallSentiment.Score, res.OverallSentiment.Comparative, len(res.Segments))

	if len(res.Segments) == 0 {
		fmt.Fprintln(w, "No captions to score.")
		return
	}

	fmt.Fprintln(w, renderTable(
		[]string{"#", "Time", "Score", "Label", "Text"},
		segmentRows(res.Segments),
		[]columnAlignment{alignRight, alignLeft, alignRight, alignLeft, alignLeft},
	))

	for _, group := range []struct {
		title string
		segs  []sentiment.AnnotatedSegment
	}{
		{"Most positive", res.TopPositive},
		{"Most negative", res.TopNegative},
	} {
		if len(group.segs) == 0 {
			continue
		}
		fmt.Fprintf(w, "\n%s\n", group.title)
		fmt.Fprintln(w, renderTable(
			[]string{"Time", "Score", "Text"},
			topRows(group.segs),
			[]columnAlignment{alignLeft, alignRight, alignLeft},
		))
	}
}

func segmentRows(segs []sentiment.AnnotatedSegment) [][]string {
	rows := make([][]string, len(segs))
	for i, s := range segs {
		rows[i] = []string{
			strconv.Itoa(s.ID),
			timeRange(s.Segment),
			fmt.Sprintf("%+d", s.Sentiment.Score),
			string(s.Label),
			truncate(s.Text, maxCellText),
		}
	}
	return rows
}

func topRows(segs []sentiment.AnnotatedSegment) [][]string {
	rows := make([][]string, len(segs))
	for i, s := range segs {
		rows[i] = []string{timeRange(s.Segment), fmt.Sprintf("%+d", s.Sentiment.Score), truncate(s.Text, maxCellText)}
	}
	return rows
}

func timeRange(s transcript.Segment) string {
	return transcript.FormatTimestamp(s.Start) + "-" + transcript.FormatTimestamp(s.End)
}

func truncate(s string, n int) string {
	r := []rune(strings.TrimSpace(s))
	if len(r) <= n {
		return string(r)
	}
	return string(r[:n-3]) + "..."
}

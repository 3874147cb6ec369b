// Package app orchestrates the transcript pipeline: transcription, grammar
// correction, episode boundary detection, speaker attribution, and formatted
// output.
package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/xiaodongyu/spanish-helper/internal/config"
	"github.com/xiaodongyu/spanish-helper/internal/episode"
	"github.com/xiaodongyu/spanish-helper/internal/format"
	"github.com/xiaodongyu/spanish-helper/internal/speaker"
	"github.com/xiaodongyu/spanish-helper/internal/transcribe"
)

// Transcriber is the audio transcription collaborator.
type Transcriber interface {
	Transcribe(ctx context.Context, path string) (*transcribe.Result, error)
}

// Application coordinates all pipeline components.
type Application struct {
	config      *config.Configuration
	logger      *zap.Logger
	scanner     *episode.Scanner
	engine      *speaker.Engine
	corrector   transcribe.Corrector
	transcriber Transcriber
}

// NewApplication creates an Application with the given configuration. A
// transcription client is wired only when an API key is configured; without
// one the application can still process existing transcript text.
func NewApplication(cfg *config.Configuration, logger *zap.Logger) *Application {
	if logger == nil {
		logger = zap.NewNop()
	}
	a := &Application{
		config:    cfg,
		logger:    logger,
		scanner:   episode.NewScannerWithLogger(logger),
		engine:    speaker.NewEngineWithLogger(logger),
		corrector: transcribe.NopCorrector{},
	}
	if key := cfg.GetOpenAIAPIKey(); key != "" {
		a.transcriber = transcribe.NewClient(key, cfg.GetLanguage(), logger)
	}
	return a
}

// SetCorrector installs a grammar-correction collaborator.
func (a *Application) SetCorrector(c transcribe.Corrector) {
	a.corrector = c
}

// SetTranscriber installs a transcription collaborator.
func (a *Application) SetTranscriber(t Transcriber) {
	a.transcriber = t
}

// Input is one transcript to process. Words and Segments are optional audio
// evidence; DurationSec <= 0 means the audio duration is unknown.
type Input struct {
	Text        string
	DurationSec float64
	Words       []speaker.WordStamp
	Segments    []speaker.Segment
}

// Output is the processed transcript.
type Output struct {
	Episodes []episode.Episode
	Rendered []string
	Document string
}

// ProcessTranscript runs the full text pipeline: correction, boundary
// detection, per-episode speaker attribution, and rendering. Episodes are
// attributed concurrently; the output preserves transcript order.
func (a *Application) ProcessTranscript(ctx context.Context, in Input) (*Output, error) {
	text := strings.TrimSpace(in.Text)
	if text == "" {
		return nil, fmt.Errorf("empty transcript")
	}

	corrected, err := a.corrector.Correct(ctx, text)
	if err != nil {
		a.logger.Warn("grammar correction failed, using original text", zap.Error(err))
		corrected = text
	}

	th := episode.NewThresholds(len(corrected), in.DurationSec)
	candidates := a.scanner.Scan(corrected)
	refiner := episode.NewRefinerWithLogger(th, a.logger)
	episodes := refiner.Refine(corrected, candidates)

	a.logger.Info("episode boundaries detected",
		zap.Int("candidates", len(candidates)),
		zap.Int("episodes", len(episodes)),
		zap.Int("min_chars", th.Min),
		zap.Int("max_chars", th.Max))
	if th.CharsPerSecond > 0 {
		for i, ep := range episodes {
			a.logger.Debug("episode span",
				zap.Int("episode", i),
				zap.Int("chars", ep.End-ep.Start),
				zap.Float64("estimated_sec", float64(ep.End-ep.Start)/th.CharsPerSecond))
		}
	}

	globalNames := speaker.ExtractNames(corrected)

	rendered := make([][]string, len(episodes))
	g, ctx := errgroup.WithContext(ctx)
	for i, ep := range episodes {
		i, ep := i, ep
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			rendered[i] = a.renderEpisode(ep, i, globalNames, th, in)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := &Output{Episodes: episodes}
	for _, parts := range rendered {
		out.Rendered = append(out.Rendered, parts...)
	}
	out.Document = strings.Join(out.Rendered, "\n\n"+format.Separator()+"\n\n")
	return out, nil
}

// renderEpisode attributes and renders one episode. Episodes that open with
// an English narrator introduction keep it as a leading narrator line, and
// section hints inside an episode split it into separately rendered stories.
func (a *Application) renderEpisode(ep episode.Episode, idx int, globalNames []string, th episode.Thresholds, in Input) []string {
	english, body := speaker.DetectEnglishNarrator(ep.Text)

	names := speaker.ExtractNames(body)
	if len(names) == 0 {
		names = globalNames
	}

	words, segments := sliceAudio(ep, th, in.Words, in.Segments)

	stories := []string{body}
	if hints := episode.FindHints(body); len(hints) > 1 {
		stories = episode.SplitByHints(body, hints)
		a.logger.Debug("episode split by section hints",
			zap.Int("episode", idx),
			zap.Int("stories", len(stories)))
	}

	var parts []string
	for si, story := range stories {
		opts := speaker.Options{EpisodeStart: si == 0}
		attrs := a.engine.AttributeWithAudio(story, names, words, segments, opts)
		text := format.RenderEpisode(attrs)
		if si == 0 && english != "" {
			var narrated []speaker.Attribution
			for _, s := range speaker.SplitSentences(english) {
				narrated = append(narrated, speaker.Attribution{
					Sentence: s,
					Speaker:  "Narrator",
					Phase:    speaker.PhaseNarrator,
				})
			}
			if intro := format.RenderEpisode(narrated); intro != "" {
				text = intro + "\n\n" + text
			}
		}
		if text != "" {
			parts = append(parts, text)
		}
	}
	return parts
}

// sliceAudio restricts word and segment evidence to an episode's estimated
// time range. Character offsets map to seconds through the transcript's
// speaking rate; without a known rate the evidence is only usable for a
// single-episode transcript.
func sliceAudio(ep episode.Episode, th episode.Thresholds, words []speaker.WordStamp, segments []speaker.Segment) ([]speaker.WordStamp, []speaker.Segment) {
	if len(words) == 0 && len(segments) == 0 {
		return nil, nil
	}
	if th.CharsPerSecond <= 0 {
		if ep.Start == 0 {
			return words, segments
		}
		return nil, nil
	}

	startSec := float64(ep.Start) / th.CharsPerSecond
	endSec := float64(ep.End) / th.CharsPerSecond

	var ws []speaker.WordStamp
	for _, w := range words {
		if w.End >= startSec && w.Start <= endSec {
			ws = append(ws, w)
		}
	}
	var segs []speaker.Segment
	for _, s := range segments {
		if s.End >= startSec && s.Start <= endSec {
			segs = append(segs, s)
		}
	}
	return ws, segs
}

// ProcessFile transcribes one audio file and writes its attributed
// transcript next to the configured transcript directory. Files whose
// transcript already exists are skipped.
func (a *Application) ProcessFile(ctx context.Context, audioPath string) error {
	stem := strings.TrimSuffix(filepath.Base(audioPath), filepath.Ext(audioPath))
	outPath := filepath.Join(a.config.GetTranscriptDir(), stem+"_transcript.txt")

	if _, err := os.Stat(outPath); err == nil {
		a.logger.Info("transcript exists, skipping", zap.String("path", outPath))
		return nil
	}

	if a.transcriber == nil {
		return fmt.Errorf("no transcription service configured")
	}

	result, err := a.transcriber.Transcribe(ctx, audioPath)
	if err != nil {
		return fmt.Errorf("failed to transcribe %s: %w", audioPath, err)
	}

	duration, err := transcribe.ProbeDuration(ctx, audioPath)
	if err != nil {
		a.logger.Warn("duration probe failed, using service-reported duration",
			zap.String("path", audioPath), zap.Error(err))
		duration = result.Duration
	}

	out, err := a.ProcessTranscript(ctx, Input{
		Text:        result.Text,
		DurationSec: duration,
		Words:       result.Words,
		Segments:    result.Segments,
	})
	if err != nil {
		return fmt.Errorf("failed to process %s: %w", audioPath, err)
	}

	if err := os.MkdirAll(a.config.GetTranscriptDir(), 0o755); err != nil {
		return fmt.Errorf("failed to create transcript directory: %w", err)
	}
	if err := os.WriteFile(outPath, []byte(out.Document+"\n"), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", outPath, err)
	}

	a.logger.Info("transcript written",
		zap.String("path", outPath),
		zap.Int("episodes", len(out.Episodes)))
	return nil
}

// Run processes every audio file in the configured audio directory. A
// failing file is logged and the rest continue.
func (a *Application) Run(ctx context.Context) error {
	dir := a.config.GetAudioDir()
	ext := a.config.GetAudioExtension()

	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("failed to read audio directory %s: %w", dir, err)
	}

	var processed, failed int
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ext) {
			continue
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		path := filepath.Join(dir, entry.Name())
		if err := a.ProcessFile(ctx, path); err != nil {
			a.logger.Error("file processing failed", zap.String("path", path), zap.Error(err))
			failed++
			continue
		}
		processed++
	}

	a.logger.Info("run complete", zap.Int("processed", processed), zap.Int("failed", failed))
	if processed == 0 && failed > 0 {
		return fmt.Errorf("all %d audio files failed", failed)
	}
	return nil
}

// CombineTranscripts merges every per-file transcript in the transcript
// directory into one combined document, in filename order.
func (a *Application) CombineTranscripts() (string, error) {
	dir := a.config.GetTranscriptDir()

	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("failed to read transcript directory %s: %w", dir, err)
	}

	var names []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, "_transcript.txt") {
			continue
		}
		if strings.Contains(strings.ToLower(name), "combined") {
			continue
		}
		names = append(names, name)
	}
	if len(names) == 0 {
		return "", fmt.Errorf("no transcripts found in %s", dir)
	}
	sort.Strings(names)

	var contents []string
	for _, name := range names {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return "", fmt.Errorf("failed to read %s: %w", name, err)
		}
		contents = append(contents, string(data))
	}

	outPath := filepath.Join(dir, a.config.GetCombinedFilename())
	combined := format.Combine(contents)
	if err := os.WriteFile(outPath, []byte(combined), 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", outPath, err)
	}

	a.logger.Info("combined transcript written",
		zap.String("path", outPath),
		zap.Int("sources", len(names)))
	return outPath, nil
}

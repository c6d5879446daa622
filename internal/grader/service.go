package grader

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/njchilds90/polygrade"
	"github.com/njchilds90/polygrade/internal/logging"
	"github.com/njchilds90/polygrade/internal/metrics"
)

// Cache stores verdicts between requests. *cache.Store implements it.
type Cache interface {
	Key(mode polygrade.Mode, expected, answer string) string
	Get(ctx context.Context, key string) (polygrade.Result, bool, error)
	Set(ctx context.Context, key string, res polygrade.Result) error
}

// Request is one answer to grade.
type Request struct {
	Expected string `json:"expected"`
	Answer   string `json:"answer"`
	Mode     string `json:"mode"`
}

// Service grades answers, consulting the cache first when one is set.
type Service struct {
	cache   Cache
	metrics *metrics.Metrics
	logger  *slog.Logger
}

type Option func(*Service)

func WithCache(c Cache) Option { return func(s *Service) { s.cache = c } }

func WithMetrics(m *metrics.Metrics) Option { return func(s *Service) { s.metrics = m } }

func WithLogger(l *slog.Logger) Option { return func(s *Service) { s.logger = l } }

func New(opts ...Option) *Service {
	s := &Service{logger: logging.NewNop()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Grade validates the mode and grades req. Cache failures are logged and
// never fail the grade.
func (s *Service) Grade(ctx context.Context, req Request) (polygrade.Result, error) {
	mode, err := polygrade.ParseMode(req.Mode)
	if err != nil {
		return polygrade.Result{}, err
	}

	var key string
	if s.cache != nil {
		key = s.cache.Key(mode, req.Expected, req.Answer)
		res, ok, err := s.cache.Get(ctx, key)
		switch {
		case err != nil:
			s.observeCache("error")
			s.logger.Warn("verdict cache read failed", "error", err)
		case ok:
			s.observeCache("hit")
			return res, nil
		default:
			s.observeCache("miss")
		}
	}

	start := time.Now()
	res, err := polygrade.Grade(req.Expected, req.Answer, mode)
	if err != nil {
		return polygrade.Result{}, fmt.Errorf("grade: %w", err)
	}
	if s.metrics != nil {
		s.metrics.ObserveGrade(string(mode), string(res.Verdict), time.Since(start))
	}
	s.logger.Debug("graded", "mode", mode, "verdict", res.Verdict)

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, res); err != nil {
			s.logger.Warn("verdict cache write failed", "error", err)
		}
	}
	return res, nil
}

// Call runs a polygrade tool and records it.
func (s *Service) Call(req polygrade.ToolRequest) polygrade.ToolResponse {
	resp := polygrade.HandleToolCall(req)
	if s.metrics != nil {
		s.metrics.ObserveTool(req.Tool, resp.Error != "")
	}
	if resp.Error != "" {
		s.logger.Debug("tool call failed", "tool", req.Tool, "error", resp.Error)
	}
	return resp
}

func (s *Service) observeCache(result string) {
	if s.metrics != nil {
		s.metrics.ObserveCache(result)
	}
}

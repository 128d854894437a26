package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/guttosm/college-order-service/internal/domain/model"
	"github.com/guttosm/college-order-service/internal/repository"
)

// ErrInvalidLogQuery is returned for log filters that can never match.
var ErrInvalidLogQuery = errors.New("invalid log query")

var logLevels = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}

// LoggingService stores and queries request and audit logs.
type LoggingService interface {
	CreateLog(ctx context.Context, entry *model.LogEntry) error
	// CreateLogs stores a batch. Entries without an ID or timestamp are stamped.
	CreateLogs(ctx context.Context, entries []*model.LogEntry) error
	QueryLogs(ctx context.Context, opts model.LogQueryOptions) ([]model.LogEntry, error)
	CountLogs(ctx context.Context, opts model.LogQueryOptions) (int64, error)
}

type logStore struct {
	repo repository.LogsRepositoryInterface
	now  func() time.Time
}

// NewLoggingService returns a LoggingService backed by repo.
func NewLoggingService(repo repository.LogsRepositoryInterface) LoggingService {
	return &logStore{repo: repo, now: time.Now}
}

func (s *logStore) CreateLog(ctx context.Context, entry *model.LogEntry) error {
	return s.repo.Create(ctx, s.stamp(entry))
}

func (s *logStore) CreateLogs(ctx context.Context, entries []*model.LogEntry) error {
	if len(entries) == 0 {
		return nil
	}
	docs := make([]*repository.LogEntryDocument, 0, len(entries))
	for _, entry := range entries {
		docs = append(docs, s.stamp(entry))
	}
	return s.repo.CreateMany(ctx, docs)
}

func (s *logStore) QueryLogs(ctx context.Context, opts model.LogQueryOptions) ([]model.LogEntry, error) {
	filter, err := logFilter(opts)
	if err != nil {
		return nil, err
	}
	docs, err := s.repo.Query(ctx, filter)
	if err != nil {
		return nil, err
	}
	entries := make([]model.LogEntry, 0, len(docs))
	for _, doc := range docs {
		entries = append(entries, model.LogEntry(*doc))
	}
	return entries, nil
}

func (s *logStore) CountLogs(ctx context.Context, opts model.LogQueryOptions) (int64, error) {
	filter, err := logFilter(opts)
	if err != nil {
		return 0, err
	}
	return s.repo.Count(ctx, filter)
}

// stamp fills in the ID and the UTC timestamp on entry itself so the
// caller sees what was stored.
func (s *logStore) stamp(entry *model.LogEntry) *repository.LogEntryDocument {
	if entry.ID.IsZero() {
		entry.ID = primitive.NewObjectID()
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = s.now().UTC()
	}
	doc := repository.LogEntryDocument(*entry)
	return &doc
}

// logFilter validates opts and lowercases the level.
func logFilter(opts model.LogQueryOptions) (repository.LogQueryOptions, error) {
	level := strings.ToLower(strings.TrimSpace(opts.Level))
	switch {
	case level != "" && !logLevels[level]:
		return repository.LogQueryOptions{}, fmt.Errorf("%w: unknown level %q", ErrInvalidLogQuery, opts.Level)
	case opts.Skip < 0 || opts.Limit < 0:
		return repository.LogQueryOptions{}, fmt.Errorf("%w: negative paging", ErrInvalidLogQuery)
	case opts.StartTime != nil && opts.EndTime != nil && opts.EndTime.Before(*opts.StartTime):
		return repository.LogQueryOptions{}, fmt.Errorf("%w: end before start", ErrInvalidLogQuery)
	}

	return repository.LogQueryOptions{
		RequestID:  opts.RequestID,
		Level:      level,
		College:    opts.College,
		ActionType: opts.ActionType,
		StartTime:  opts.StartTime,
		EndTime:    opts.EndTime,
		Limit:      opts.Limit,
		Skip:       opts.Skip,
	}, nil
}

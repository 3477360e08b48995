package logger

//go:generate go run go.uber.org/mock/mockgen -source=./sink.go -destination=./mocks/sink_mock.go -package=mocks

import (
	"bufio"
	"fmt"
	"garagebook/config"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Conflict listings can make one report line far longer than bufio's 64KiB default.
const maxReportLineBytes = 1 << 20

// ReportSink receives the human readable report lines and serves them back for the status page.
type ReportSink interface {
	Write(lines ...string) error
	Tail(n int) ([]string, error)
	Path() string
}

// FileSink appends "[RFC3339] message" lines to a plain text file.
type FileSink struct {
	mu     sync.Mutex
	path   string
	file   *os.File
	logger zerolog.Logger
	now    func() time.Time
}

// NewReportSink opens REPORT_LOG_PATH. Failing to open it is fatal.
func NewReportSink(cfg *config.Config) ReportSink {
	sink, err := NewFileSink(cfg.Report.LogPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.Report.LogPath).Msg("Failed to open report log")
	}

	return sink
}

func NewFileSink(path string) (*FileSink, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, errors.Wrap(err, "creating report log directory")
	}

	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, errors.Wrap(err, "opening report log")
	}

	output := zerolog.ConsoleWriter{
		Out:        file,
		NoColor:    true,
		PartsOrder: []string{zerolog.TimestampFieldName, zerolog.MessageFieldName},
		FormatTimestamp: func(i any) string {
			return fmt.Sprintf("[%v]", i)
		},
	}

	return &FileSink{
		path:   path,
		file:   file,
		logger: zerolog.New(output),
		now:    time.Now,
	}, nil
}

// Write stamps every line with the same timestamp so one report stays grouped.
func (s *FileSink) Write(lines ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stamp := s.now().UTC().Format(time.RFC3339)

	for _, line := range lines {
		s.logger.Log().Str(zerolog.TimestampFieldName, stamp).Msg(line)
	}

	return errors.Wrap(s.file.Sync(), "flushing report log")
}

// Tail returns up to n of the most recent lines, oldest first.
func (s *FileSink) Tail(n int) ([]string, error) {
	if n <= 0 {
		return []string{}, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := os.Open(s.path)
	if err != nil {
		return nil, errors.Wrap(err, "opening report log")
	}
	defer file.Close()

	ring := make([]string, 0, n)
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), maxReportLineBytes)

	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), " ")
		if line == "" {
			continue
		}

		if len(ring) == n {
			ring = ring[1:]
		}

		ring = append(ring, line)
	}

	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "reading report log")
	}

	return ring, nil
}

func (s *FileSink) Path() string {
	return s.path
}

func (s *FileSink) Close() error {
	return s.file.Close()
}

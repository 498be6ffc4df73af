package auditlog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go-bulk-messaging-dashboard/src/domain/campaign"
	logger "go-bulk-messaging-dashboard/src/infrastructure/logger"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
	"go.uber.org/zap"
)

const partitionPrefix = "messages-"

// FileAuditLog persists delivery-attempt records as one JSON array per
// calendar day. A corrupt partition is treated as empty rather than
// surfacing an error: the audit log must never take the send loop down.
type FileAuditLog struct {
	dir    string
	mu     sync.Mutex
	now    func() time.Time
	Logger *logger.Logger
}

func NewFileAuditLog(dir string, loggerInstance *logger.Logger) (*FileAuditLog, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create audit log directory: %w", err)
	}
	return &FileAuditLog{
		dir:    dir,
		now:    time.Now,
		Logger: loggerInstance,
	}, nil
}

func (s *FileAuditLog) partitionPath(t time.Time) string {
	return filepath.Join(s.dir, partitionPrefix+t.Format("2006-01-02")+".json")
}

// Append adds the entry to the current day's partition. The partition
// is rewritten whole and swapped into place with a rename so a reader
// never observes a truncated file.
func (s *FileAuditLog) Append(entry campaign.AuditLogEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	path := s.partitionPath(s.now())
	data := s.loadPartition(path)

	entryBytes, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal audit entry: %w", err)
	}

	data, err = sjson.SetRawBytes(data, "-1", entryBytes)
	if err != nil {
		return fmt.Errorf("failed to append audit entry: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write audit partition: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to replace audit partition: %w", err)
	}
	return nil
}

// Today returns all entries recorded in the current day's partition,
// in append order.
func (s *FileAuditLog) Today() ([]campaign.AuditLogEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data := s.loadPartition(s.partitionPath(s.now()))

	entries := []campaign.AuditLogEntry{}
	if err := json.Unmarshal(data, &entries); err != nil {
		return []campaign.AuditLogEntry{}, nil
	}
	return entries, nil
}

// loadPartition reads the partition, resetting missing or corrupt
// files to an empty array.
func (s *FileAuditLog) loadPartition(path string) []byte {
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.Logger.Warn("Couldn't read audit partition, starting fresh",
				zap.String("path", path),
				zap.Error(err))
		}
		return []byte("[]")
	}

	if !gjson.ValidBytes(data) || !gjson.ParseBytes(data).IsArray() {
		s.Logger.Warn("Audit partition is corrupt, starting fresh", zap.String("path", path))
		return []byte("[]")
	}
	return data
}

package storage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"time"

	"go-bulk-messaging-dashboard/src/domain/campaign"
	logger "go-bulk-messaging-dashboard/src/infrastructure/logger"

	securejoin "github.com/cyphar/filepath-securejoin"
	"github.com/gabriel-vasile/mimetype"
	uuid "github.com/gofrs/uuid"
	"go.uber.org/zap"
)

// TransientStorage holds uploaded media files for the duration of a
// send run. Files are stored under generated names; client-supplied
// names never touch the filesystem directly.
type TransientStorage struct {
	mediaDir string
	Logger   *logger.Logger
}

func NewTransientStorage(mediaDir string, loggerInstance *logger.Logger) (*TransientStorage, error) {
	if err := os.MkdirAll(mediaDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create media directory: %w", err)
	}
	return &TransientStorage{mediaDir: mediaDir, Logger: loggerInstance}, nil
}

// SaveMedia stores the uploaded file and returns the media descriptor
// for the send job, with the MIME type sniffed from the content.
func (s *TransientStorage) SaveMedia(fileHeader *multipart.FileHeader) (*campaign.Media, error) {
	src, err := fileHeader.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open uploaded media: %w", err)
	}
	defer src.Close()

	id, err := uuid.NewV4()
	if err != nil {
		return nil, err
	}

	name := id.String() + filepath.Ext(fileHeader.Filename)
	path, err := securejoin.SecureJoin(s.mediaDir, name)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve media path: %w", err)
	}

	dst, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create media file: %w", err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		_ = os.Remove(path)
		return nil, fmt.Errorf("failed to store media file: %w", err)
	}
	if err := dst.Close(); err != nil {
		_ = os.Remove(path)
		return nil, fmt.Errorf("failed to store media file: %w", err)
	}

	mtype, err := mimetype.DetectFile(path)
	mimeType := fileHeader.Header.Get("Content-Type")
	if err == nil {
		mimeType = mtype.String()
	}

	s.Logger.Info("Stored transient media",
		zap.String("path", path),
		zap.String("mimeType", mimeType),
		zap.Int64("size", fileHeader.Size))

	return &campaign.Media{
		Path:     path,
		MimeType: mimeType,
		FileName: fileHeader.Filename,
	}, nil
}

// ScheduleRemoval deletes the file after the grace period, tolerating
// it already being gone.
func (s *TransientStorage) ScheduleRemoval(path string, after time.Duration) {
	time.AfterFunc(after, func() {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			s.Logger.Warn("Couldn't remove transient media", zap.String("path", path), zap.Error(err))
			return
		}
		s.Logger.Debug("Removed transient media", zap.String("path", path))
	})
}

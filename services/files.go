package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"chat-relay/domain"
	"chat-relay/errors"
	"chat-relay/repositories"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// UploadCommand is a validated file upload request.
type UploadCommand struct {
	SenderID    string `validate:"required"`
	RecipientID *string
	FileName    string `validate:"required"`
	ContentType string
	Data        []byte `validate:"required"`
}

// FileDownload carries the bytes and headers for a file response.
type FileDownload struct {
	FileName    string
	ContentType string
	Data        []byte
}

type IFileService interface {
	Upload(ctx context.Context, cmd UploadCommand) (int64, error)
	Download(ctx context.Context, id int64) (FileDownload, error)
}

// FileService stores file messages ahead of their send event. An upload
// creates (or refreshes) the unclaimed FILE record that a later routed send
// claims by identity.
type FileService struct {
	log         *slog.Logger
	messages    repositories.IMessageRepository
	maxFileSize int64
}

func NewFileService(log *slog.Logger, messages repositories.IMessageRepository, maxFileSize int64) *FileService {
	return &FileService{log: log, messages: messages, maxFileSize: maxFileSize}
}

// Upload persists the file bytes and returns the message identity.
// Re-uploading the same file name for the same sender updates the existing
// record in place instead of duplicating it.
func (s *FileService) Upload(ctx context.Context, cmd UploadCommand) (int64, error) {
	if err := validate.Struct(cmd); err != nil {
		return 0, fmt.Errorf("%w: %v", errors.ErrInvalidUpload, err)
	}
	size := int64(len(cmd.Data))
	if s.maxFileSize > 0 && size > s.maxFileSize {
		return 0, fmt.Errorf("%w: file exceeds %d bytes", errors.ErrInvalidUpload, s.maxFileSize)
	}

	contentType := cmd.ContentType
	if contentType == "" {
		contentType = mimetype.Detect(cmd.Data).String()
	}
	now := time.Now().UTC()

	existing, err := s.messages.FindUnclaimedFile(ctx, cmd.SenderID, cmd.FileName)
	if err == nil {
		existing.FileType = &contentType
		existing.FileSize = &size
		existing.FileData = cmd.Data
		existing.SentAt = now
		if err := s.messages.Update(ctx, existing); err != nil {
			return 0, err
		}
		return existing.ID, nil
	}
	if err != errors.ErrMessageNotFound {
		return 0, err
	}

	fileName := cmd.FileName
	saved, err := s.messages.Insert(ctx, domain.Message{
		SenderID:    cmd.SenderID,
		RecipientID: cmd.RecipientID,
		Content:     domain.FileCaption(cmd.FileName),
		FileName:    &fileName,
		FileType:    &contentType,
		FileSize:    &size,
		FileData:    cmd.Data,
		Kind:        domain.KindFile,
		SentAt:      now,
	})
	if err != nil {
		return 0, err
	}
	return saved.ID, nil
}

// Download returns the stored bytes for a FILE message. A record that is not
// a file, or whose payload never arrived, is reported as missing regardless
// of its other fields.
func (s *FileService) Download(ctx context.Context, id int64) (FileDownload, error) {
	message, err := s.messages.FindByID(ctx, id)
	if err != nil {
		return FileDownload{}, errors.ErrFileNotFound
	}
	if message.Kind != domain.KindFile || len(message.FileData) == 0 {
		return FileDownload{}, errors.ErrFileNotFound
	}

	download := FileDownload{
		ContentType: "application/octet-stream",
		Data:        message.FileData,
	}
	if message.FileName != nil {
		download.FileName = *message.FileName
	}
	if message.FileType != nil && *message.FileType != "" {
		download.ContentType = *message.FileType
	}
	return download, nil
}

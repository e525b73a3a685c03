package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"chat-relay/domain"
	"chat-relay/errors"
	"chat-relay/mocks"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestFileService_Upload(t *testing.T) {
	t.Run("rejects a command without sender or data", func(t *testing.T) {
		req := require.New(t)
		ctrl := gomock.NewController(t)
		messages := mocks.NewMockIMessageRepository(ctrl)
		svc := NewFileService(testLogger(), messages, 0)

		_, err := svc.Upload(context.Background(), UploadCommand{FileName: "a.pdf"})
		req.ErrorIs(err, errors.ErrInvalidUpload)
	})

	t.Run("rejects files above the size cap", func(t *testing.T) {
		req := require.New(t)
		ctrl := gomock.NewController(t)
		messages := mocks.NewMockIMessageRepository(ctrl)
		svc := NewFileService(testLogger(), messages, 4)

		_, err := svc.Upload(context.Background(), UploadCommand{
			SenderID: "user1", FileName: "a.pdf", Data: []byte("too big"),
		})
		req.ErrorIs(err, errors.ErrInvalidUpload)
	})

	t.Run("creates a new unclaimed record with the paperclip caption", func(t *testing.T) {
		req := require.New(t)
		ctrl := gomock.NewController(t)
		messages := mocks.NewMockIMessageRepository(ctrl)
		svc := NewFileService(testLogger(), messages, 0)

		messages.EXPECT().
			FindUnclaimedFile(gomock.Any(), "user1", "a.pdf").
			Return(domain.Message{}, errors.ErrMessageNotFound)
		messages.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, m domain.Message) (domain.Message, error) {
				req.Equal(domain.KindFile, m.Kind)
				req.Equal(domain.FileCaption("a.pdf"), m.Content)
				req.Equal("application/pdf", *m.FileType)
				req.Equal(int64(4), *m.FileSize)
				req.Equal([]byte("%PDF"), m.FileData)
				m.ID = 5
				return m, nil
			})

		id, err := svc.Upload(context.Background(), UploadCommand{
			SenderID: "user1", FileName: "a.pdf",
			ContentType: "application/pdf", Data: []byte("%PDF"),
		})
		req.NoError(err)
		req.Equal(int64(5), id)
	})

	t.Run("re-upload of the same name updates the record in place", func(t *testing.T) {
		req := require.New(t)
		ctrl := gomock.NewController(t)
		messages := mocks.NewMockIMessageRepository(ctrl)
		svc := NewFileService(testLogger(), messages, 0)
		fileName := "a.pdf"

		messages.EXPECT().
			FindUnclaimedFile(gomock.Any(), "user1", "a.pdf").
			Return(domain.Message{
				ID: 5, SenderID: "user1", FileName: &fileName,
				Kind: domain.KindFile, SentAt: time.Now().UTC(),
			}, nil)
		messages.EXPECT().
			Update(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, m domain.Message) error {
				req.Equal(int64(5), m.ID)
				req.Equal([]byte("v2"), m.FileData)
				return nil
			})

		id, err := svc.Upload(context.Background(), UploadCommand{
			SenderID: "user1", FileName: "a.pdf",
			ContentType: "application/pdf", Data: []byte("v2"),
		})
		req.NoError(err)
		req.Equal(int64(5), id)
	})

	t.Run("sniffs the content type when the client omits it", func(t *testing.T) {
		req := require.New(t)
		ctrl := gomock.NewController(t)
		messages := mocks.NewMockIMessageRepository(ctrl)
		svc := NewFileService(testLogger(), messages, 0)

		messages.EXPECT().
			FindUnclaimedFile(gomock.Any(), "user1", "notes.txt").
			Return(domain.Message{}, errors.ErrMessageNotFound)
		messages.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, m domain.Message) (domain.Message, error) {
				req.True(strings.HasPrefix(*m.FileType, "text/plain"))
				m.ID = 6
				return m, nil
			})

		_, err := svc.Upload(context.Background(), UploadCommand{
			SenderID: "user1", FileName: "notes.txt", Data: []byte("plain text notes"),
		})
		req.NoError(err)
	})
}

func TestFileService_Download(t *testing.T) {
	fileName := "a.pdf"
	fileType := "application/pdf"

	t.Run("returns bytes with the stored name and type", func(t *testing.T) {
		req := require.New(t)
		ctrl := gomock.NewController(t)
		messages := mocks.NewMockIMessageRepository(ctrl)
		svc := NewFileService(testLogger(), messages, 0)

		messages.EXPECT().FindByID(gomock.Any(), int64(5)).Return(domain.Message{
			ID: 5, Kind: domain.KindFile, FileName: &fileName, FileType: &fileType,
			FileData: []byte("%PDF"),
		}, nil)

		download, err := svc.Download(context.Background(), 5)
		req.NoError(err)
		req.Equal("a.pdf", download.FileName)
		req.Equal("application/pdf", download.ContentType)
		req.Equal([]byte("%PDF"), download.Data)
	})

	t.Run("defaults to a generic binary type when no type was stored", func(t *testing.T) {
		req := require.New(t)
		ctrl := gomock.NewController(t)
		messages := mocks.NewMockIMessageRepository(ctrl)
		svc := NewFileService(testLogger(), messages, 0)

		messages.EXPECT().FindByID(gomock.Any(), int64(5)).Return(domain.Message{
			ID: 5, Kind: domain.KindFile, FileName: &fileName, FileData: []byte{1},
		}, nil)

		download, err := svc.Download(context.Background(), 5)
		req.NoError(err)
		req.Equal("application/octet-stream", download.ContentType)
	})

	t.Run("a FILE record without payload is reported missing", func(t *testing.T) {
		req := require.New(t)
		ctrl := gomock.NewController(t)
		messages := mocks.NewMockIMessageRepository(ctrl)
		svc := NewFileService(testLogger(), messages, 0)

		messages.EXPECT().FindByID(gomock.Any(), int64(5)).Return(domain.Message{
			ID: 5, Kind: domain.KindFile, FileName: &fileName, FileType: &fileType,
		}, nil)

		_, err := svc.Download(context.Background(), 5)
		req.ErrorIs(err, errors.ErrFileNotFound)
	})

	t.Run("a TEXT record is never downloadable", func(t *testing.T) {
		req := require.New(t)
		ctrl := gomock.NewController(t)
		messages := mocks.NewMockIMessageRepository(ctrl)
		svc := NewFileService(testLogger(), messages, 0)

		messages.EXPECT().FindByID(gomock.Any(), int64(2)).Return(domain.Message{
			ID: 2, Kind: domain.KindText, Content: "hi",
		}, nil)

		_, err := svc.Download(context.Background(), 2)
		req.ErrorIs(err, errors.ErrFileNotFound)
	})

	t.Run("an unknown id is reported missing", func(t *testing.T) {
		req := require.New(t)
		ctrl := gomock.NewController(t)
		messages := mocks.NewMockIMessageRepository(ctrl)
		svc := NewFileService(testLogger(), messages, 0)

		messages.EXPECT().FindByID(gomock.Any(), int64(404)).
			Return(domain.Message{}, errors.ErrMessageNotFound)

		_, err := svc.Download(context.Background(), 404)
		req.ErrorIs(err, errors.ErrFileNotFound)
	})
}

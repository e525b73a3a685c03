//go:generate go run go.uber.org/mock/mockgen -source=message.go -destination=../mocks/mock_message_repository.go -package=mocks
package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"chat-relay/domain"
	"chat-relay/errors"
)

type IMessageRepository interface {
	Insert(ctx context.Context, message domain.Message) (domain.Message, error)
	FindByID(ctx context.Context, id int64) (domain.Message, error)
	FindRecentBroadcast(ctx context.Context, limit int) ([]domain.Message, error)
	FindBetween(ctx context.Context, userA, userB string, limit int) ([]domain.Message, error)
	FindUnclaimedFile(ctx context.Context, senderID, fileName string) (domain.Message, error)
	Update(ctx context.Context, message domain.Message) error
}

type MessageRepository struct {
	db  *sql.DB
	log *slog.Logger
}

func NewMessageRepository(db *sql.DB, log *slog.Logger) MessageRepository {
	return MessageRepository{db: db, log: log}
}

const messageColumns = `id, sender_id, recipient_id, content, file_name, file_type, file_size, file_data, message_type, sent_at`

// Insert persists a message and returns it with the assigned identity.
// Identities come from the rowid sequence and are strictly increasing.
func (r MessageRepository) Insert(ctx context.Context, message domain.Message) (domain.Message, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO messages (sender_id, recipient_id, content, file_name, file_type, file_size, file_data, message_type, sent_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		message.SenderID, message.RecipientID, message.Content,
		message.FileName, message.FileType, message.FileSize, message.FileData,
		string(message.Kind), message.SentAt.UTC(),
	)
	if err != nil {
		return domain.Message{}, fmt.Errorf("insert message: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return domain.Message{}, fmt.Errorf("insert message id: %w", err)
	}
	message.ID = id
	return message, nil
}

func (r MessageRepository) FindByID(ctx context.Context, id int64) (domain.Message, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+messageColumns+` FROM messages WHERE id = ?`, id)
	return scanMessage(row)
}

// FindRecentBroadcast returns broadcast messages only, newest first.
func (r MessageRepository) FindRecentBroadcast(ctx context.Context, limit int) ([]domain.Message, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+messageColumns+` FROM messages
		 WHERE recipient_id IS NULL
		 ORDER BY sent_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	return collectMessages(rows)
}

// FindBetween returns direct messages exchanged in either direction
// between the two users, newest first.
func (r MessageRepository) FindBetween(ctx context.Context, userA, userB string, limit int) ([]domain.Message, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+messageColumns+` FROM messages
		 WHERE (sender_id = ? AND recipient_id = ?) OR (sender_id = ? AND recipient_id = ?)
		 ORDER BY sent_at DESC LIMIT ?`,
		userA, userB, userB, userA, limit)
	if err != nil {
		return nil, err
	}
	return collectMessages(rows)
}

// FindUnclaimedFile resolves the (sender, file name) reconciliation key for
// FILE messages. There is deliberately no uniqueness constraint backing it:
// concurrent creations for the same key can both succeed.
func (r MessageRepository) FindUnclaimedFile(ctx context.Context, senderID, fileName string) (domain.Message, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+messageColumns+` FROM messages
		 WHERE sender_id = ? AND file_name = ? AND message_type = ?
		 LIMIT 1`,
		senderID, fileName, string(domain.KindFile))
	return scanMessage(row)
}

// Update rewrites the mutable fields of an existing record. Only the upload
// reconciliation path uses it.
func (r MessageRepository) Update(ctx context.Context, message domain.Message) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE messages
		 SET recipient_id = ?, content = ?, file_name = ?, file_type = ?, file_size = ?, file_data = ?, sent_at = ?
		 WHERE id = ?`,
		message.RecipientID, message.Content,
		message.FileName, message.FileType, message.FileSize, message.FileData,
		message.SentAt.UTC(), message.ID,
	)
	if err != nil {
		return fmt.Errorf("update message %d: %w", message.ID, err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMessage(row rowScanner) (domain.Message, error) {
	var (
		m         domain.Message
		recipient sql.NullString
		fileName  sql.NullString
		fileType  sql.NullString
		fileSize  sql.NullInt64
		kind      string
	)
	err := row.Scan(&m.ID, &m.SenderID, &recipient, &m.Content,
		&fileName, &fileType, &fileSize, &m.FileData, &kind, &m.SentAt)
	if err == sql.ErrNoRows {
		return domain.Message{}, errors.ErrMessageNotFound
	}
	if err != nil {
		return domain.Message{}, err
	}
	m.Kind = domain.MessageKind(kind)
	if recipient.Valid {
		m.RecipientID = &recipient.String
	}
	if fileName.Valid {
		m.FileName = &fileName.String
	}
	if fileType.Valid {
		m.FileType = &fileType.String
	}
	if fileSize.Valid {
		m.FileSize = &fileSize.Int64
	}
	m.SentAt = m.SentAt.UTC()
	return m, nil
}

func collectMessages(rows *sql.Rows) ([]domain.Message, error) {
	defer rows.Close()
	var messages []domain.Message
	for rows.Next() {
		m, err := scanMessage(rows)
		if err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}

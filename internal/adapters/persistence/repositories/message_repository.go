package repositories

import (
	"context"

	"gxas-memberhub/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// messageRepository implements MessageRepository interface
type messageRepository struct {
	db *gorm.DB
}

// NewMessageRepository creates a new message repository
func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepository{db: db}
}

// Create creates a new message
func (r *messageRepository) Create(ctx context.Context, msg *models.Message) error {
	return r.db.WithContext(ctx).Create(msg).Error
}

// GetByID gets a message by ID with sender and receiver preloaded
func (r *messageRepository) GetByID(ctx context.Context, id uint) (*models.Message, error) {
	var msg models.Message
	err := r.db.WithContext(ctx).
		Preload("Sender").
		Preload("Receiver").
		Where("message_id = ?", id).
		First(&msg).Error
	if err != nil {
		return nil, err
	}
	return &msg, nil
}

// GetForReceiver gets a message only if it is addressed to receiverID
func (r *messageRepository) GetForReceiver(ctx context.Context, id, receiverID uint) (*models.Message, error) {
	var m models.Message
	err := r.db.WithContext(ctx).
		Preload("Sender").
		Where("message_id = ? AND receiver_id = ?", id, receiverID).
		First(&m).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// ListForUser lists messages sent to or by a user, newest first
func (r *messageRepository) ListForUser(ctx context.Context, userID uint, offset, limit int) ([]*models.Message, int64, error) {
	var msgs []*models.Message
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Message{}).
		Where("receiver_id = ? OR sender_id = ?", userID, userID)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Preload("Sender").
		Preload("Receiver").
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&msgs).Error
	if err != nil {
		return nil, 0, err
	}

	return msgs, total, nil
}

// ListAll lists every message, optionally filtered by read state
func (r *messageRepository) ListAll(ctx context.Context, isRead *bool, offset, limit int) ([]*models.Message, int64, error) {
	var msgs []*models.Message
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Message{})
	if isRead != nil {
		query = query.Where("is_read = ?", *isRead)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Preload("Sender").
		Preload("Receiver").
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&msgs).Error
	if err != nil {
		return nil, 0, err
	}

	return msgs, total, nil
}

// CountUnread counts unread messages addressed to a user
func (r *messageRepository) CountUnread(ctx context.Context, receiverID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Message{}).
		Where("receiver_id = ? AND is_read = ?", receiverID, false).
		Count(&count).Error
	return count, err
}

// MarkRead flips is_read to true. The transition is one-way; re-marking a
// read message changes nothing.
func (r *messageRepository) MarkRead(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Model(&models.Message{}).
		Where("message_id = ?", id).
		Update("is_read", true).Error
}

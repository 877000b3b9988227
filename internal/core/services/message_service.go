package services

import (
	"context"
	"errors"
	"log"

	"gxas-memberhub/internal/adapters/persistence/models"
	"gxas-memberhub/internal/adapters/persistence/repositories"
	"gxas-memberhub/internal/core/domain"

	"gorm.io/gorm"
)

// MessageService handles messages exchanged between members and admins
type MessageService struct {
	messageRepo repositories.MessageRepository
	userRepo    repositories.UserRepository
	memberRepo  repositories.MemberRepository
	notifier    *NotificationService
}

// NewMessageService creates a new message service
func NewMessageService(
	messageRepo repositories.MessageRepository,
	userRepo repositories.UserRepository,
	memberRepo repositories.MemberRepository,
	notifier *NotificationService,
) *MessageService {
	return &MessageService{
		messageRepo: messageRepo,
		userRepo:    userRepo,
		memberRepo:  memberRepo,
		notifier:    notifier,
	}
}

// SendInput represents a message to create. Attachment fields are filled by
// the handler after the upload has been stored.
type SendInput struct {
	Subject  string `json:"subject"`
	Content  string `json:"content"`
	FileName string `json:"-"`
	FilePath string `json:"-"`
	FileSize int64  `json:"-"`
	FileType string `json:"-"`
}

// SendToMember sends an admin message to a member, mirrored to email
// best-effort.
func (s *MessageService) SendToMember(ctx context.Context, adminID, memberID uint, input *SendInput) (*models.Message, error) {
	member, err := s.memberRepo.GetByID(ctx, memberID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrMemberNotFound
		}
		return nil, err
	}

	msg := s.buildMessage(adminID, member.UserID, input)
	if err := s.messageRepo.Create(ctx, msg); err != nil {
		return nil, err
	}

	log.Printf("✅ Message #%d sent to member %d", msg.MessageID, memberID)

	if member.User != nil {
		s.notifier.NotifyMemberMessage(member.User.Email, member.FullName, input.Subject, input.Content)
	}

	return msg, nil
}

// SendToAdmin sends a member message to the association office. The
// receiver is the first admin account.
func (s *MessageService) SendToAdmin(ctx context.Context, senderID uint, input *SendInput) (*models.Message, error) {
	admin, err := s.userRepo.FirstAdmin(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNoAdminAccount
		}
		return nil, err
	}

	msg := s.buildMessage(senderID, admin.UserID, input)
	if err := s.messageRepo.Create(ctx, msg); err != nil {
		return nil, err
	}

	log.Printf("✅ Message #%d sent to admin %d", msg.MessageID, admin.UserID)
	return msg, nil
}

func (s *MessageService) buildMessage(senderID, receiverID uint, input *SendInput) *models.Message {
	return &models.Message{
		SenderID:   senderID,
		ReceiverID: receiverID,
		Subject:    input.Subject,
		Content:    input.Content,
		FileName:   input.FileName,
		FilePath:   input.FilePath,
		FileSize:   input.FileSize,
		FileType:   input.FileType,
	}
}

// ListForUser lists messages a user sent or received
func (s *MessageService) ListForUser(ctx context.Context, userID uint, offset, limit int) ([]*models.Message, int64, error) {
	return s.messageRepo.ListForUser(ctx, userID, offset, limit)
}

// ListAll lists every message (admin view), optionally by read state
func (s *MessageService) ListAll(ctx context.Context, isRead *bool, offset, limit int) ([]*models.Message, int64, error) {
	return s.messageRepo.ListAll(ctx, isRead, offset, limit)
}

// GetForUser returns a message only when the caller sent or received it
func (s *MessageService) GetForUser(ctx context.Context, messageID, userID uint) (*models.Message, error) {
	msg, err := s.messageRepo.GetByID(ctx, messageID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrMessageNotFound
		}
		return nil, err
	}

	if msg.SenderID != userID && msg.ReceiverID != userID {
		return nil, domain.ErrMessageNotFound
	}

	return msg, nil
}

// CountUnread counts unread messages addressed to a user
func (s *MessageService) CountUnread(ctx context.Context, userID uint) (int64, error) {
	return s.messageRepo.CountUnread(ctx, userID)
}

// MarkRead flips a received message to read. The transition is one-way and
// idempotent: marking an already-read message succeeds without touching it.
func (s *MessageService) MarkRead(ctx context.Context, messageID, receiverID uint) error {
	msg, err := s.messageRepo.GetForReceiver(ctx, messageID, receiverID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrMessageNotFound
		}
		return err
	}

	if msg.IsRead {
		return nil
	}

	return s.messageRepo.MarkRead(ctx, messageID)
}

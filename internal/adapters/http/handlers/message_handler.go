package handlers

import (
	"errors"
	"fmt"
	"path/filepath"

	"gxas-memberhub/internal/adapters/http/middleware"
	"gxas-memberhub/internal/config"
	"gxas-memberhub/internal/core/domain"
	"gxas-memberhub/internal/core/services"
	"gxas-memberhub/internal/pkg/pagination"
	"gxas-memberhub/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// MaxAttachmentSize caps message attachments at 10 MB
const MaxAttachmentSize = 10 << 20

// MessageHandler handles member-admin messaging endpoints
type MessageHandler struct {
	messageService *services.MessageService
	cfg            *config.Config
}

// NewMessageHandler creates a new message handler
func NewMessageHandler(messageService *services.MessageService, cfg *config.Config) *MessageHandler {
	return &MessageHandler{
		messageService: messageService,
		cfg:            cfg,
	}
}

// MessageRequest represents the message body fields. The attachment rides
// alongside as a multipart file field named "file".
type MessageRequest struct {
	Subject string `json:"subject" form:"subject"`
	Content string `json:"content" form:"content"`
}

// buildInput assembles the service input, storing the optional attachment
// under a random name so uploads can never collide or traverse paths.
func (h *MessageHandler) buildInput(c *fiber.Ctx, req *MessageRequest) (*services.SendInput, error) {
	input := &services.SendInput{
		Subject: req.Subject,
		Content: req.Content,
	}

	file, err := c.FormFile("file")
	if err != nil {
		// No attachment
		return input, nil
	}

	if file.Size > MaxAttachmentSize {
		return nil, fmt.Errorf("attachment too large: %d bytes", file.Size)
	}

	stored := uuid.New().String() + filepath.Ext(file.Filename)
	dest := filepath.Join(h.cfg.UploadDir, stored)
	if err := c.SaveFile(file, dest); err != nil {
		return nil, err
	}

	input.FileName = file.Filename
	input.FilePath = stored
	input.FileSize = file.Size
	input.FileType = file.Header.Get("Content-Type")
	return input, nil
}

// SendToAdmin handles a member writing to the association office
func (h *MessageHandler) SendToAdmin(c *fiber.Ctx) error {
	var req MessageRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.Subject == "" || req.Content == "" {
		return response.BadRequest(c, "Subject and content are required")
	}

	input, err := h.buildInput(c, &req)
	if err != nil {
		return response.BadRequest(c, "Failed to store attachment")
	}

	senderID := middleware.UserID(c)
	msg, err := h.messageService.SendToAdmin(c.Context(), senderID, input)
	if err != nil {
		if errors.Is(err, domain.ErrNoAdminAccount) {
			return response.InternalServerError(c, "No admin account available")
		}
		return response.InternalServerError(c, "Failed to send message")
	}

	return response.Created(c, "消息已发送", msg)
}

// SendToMember handles an admin writing to a member
func (h *MessageHandler) SendToMember(c *fiber.Ctx) error {
	memberID, err := c.ParamsInt("id")
	if err != nil || memberID < 1 {
		return response.BadRequest(c, "Invalid member ID")
	}

	var req MessageRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.Subject == "" || req.Content == "" {
		return response.BadRequest(c, "Subject and content are required")
	}

	input, err := h.buildInput(c, &req)
	if err != nil {
		return response.BadRequest(c, "Failed to store attachment")
	}

	adminID := middleware.UserID(c)
	msg, err := h.messageService.SendToMember(c.Context(), adminID, uint(memberID), input)
	if err != nil {
		if errors.Is(err, domain.ErrMemberNotFound) {
			return response.NotFound(c, "Member not found")
		}
		return response.InternalServerError(c, "Failed to send message")
	}

	return response.Created(c, "消息已发送", msg)
}

// MyMessages lists messages the caller sent or received
func (h *MessageHandler) MyMessages(c *fiber.Ctx) error {
	userID := middleware.UserID(c)
	params := pagination.GetParams(c)

	msgs, total, err := h.messageService.ListForUser(c.Context(), userID, params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list messages")
	}

	return response.Success(c, "Messages retrieved", fiber.Map{
		"messages":   msgs,
		"pagination": pagination.GetMeta(params, total),
	})
}

// ListAll lists every message, optionally by read state (admin)
func (h *MessageHandler) ListAll(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	var isRead *bool
	switch c.Query("is_read") {
	case "true":
		v := true
		isRead = &v
	case "false":
		v := false
		isRead = &v
	}

	msgs, total, err := h.messageService.ListAll(c.Context(), isRead, params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list messages")
	}

	return response.Success(c, "Messages retrieved", fiber.Map{
		"messages":   msgs,
		"pagination": pagination.GetMeta(params, total),
	})
}

// Get returns a message the caller sent or received
func (h *MessageHandler) Get(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid message ID")
	}

	userID := middleware.UserID(c)
	msg, err := h.messageService.GetForUser(c.Context(), uint(id), userID)
	if err != nil {
		if errors.Is(err, domain.ErrMessageNotFound) {
			return response.NotFound(c, "Message not found")
		}
		return response.InternalServerError(c, "Failed to get message")
	}

	return response.Success(c, "Message retrieved", msg)
}

// UnreadCount returns the caller's unread message count
func (h *MessageHandler) UnreadCount(c *fiber.Ctx) error {
	userID := middleware.UserID(c)

	count, err := h.messageService.CountUnread(c.Context(), userID)
	if err != nil {
		return response.InternalServerError(c, "Failed to count messages")
	}

	return response.Success(c, "Unread count retrieved", fiber.Map{
		"unread_count": count,
	})
}

// MarkRead marks a received message as read
func (h *MessageHandler) MarkRead(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequest(c, "Invalid message ID")
	}

	userID := middleware.UserID(c)
	if err := h.messageService.MarkRead(c.Context(), uint(id), userID); err != nil {
		if errors.Is(err, domain.ErrMessageNotFound) {
			return response.NotFound(c, "Message not found")
		}
		return response.InternalServerError(c, "Failed to mark message as read")
	}

	return response.Success(c, "消息已标记为已读", nil)
}

package api

import (
	"fmt"
	"io"
	"strconv"

	"chat-relay/errors"
	"chat-relay/services"

	"github.com/gofiber/fiber/v2"
)

type loginRequest struct {
	UserID string `json:"userId"`
}

func (s *Server) handleLogin(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil || req.UserID == "" {
		return c.Status(fiber.StatusBadRequest).SendString("User not found")
	}
	if err := s.presence.Login(c.Context(), req.UserID); err != nil {
		return c.Status(fiber.StatusBadRequest).SendString("User not found")
	}
	return c.SendString("Login successful")
}

func (s *Server) handleAllUsers(c *fiber.Ctx) error {
	return c.JSON(s.presence.ListUsers(c.Context()))
}

func (s *Server) handleOnlineUsers(c *fiber.Ctx) error {
	return c.JSON(s.presence.OnlineUsers(c.Context()))
}

func (s *Server) handleRecentMessages(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", services.DefaultHistoryLimit)
	return c.JSON(s.history.Recent(c.Context(), limit))
}

func (s *Server) handleDirectMessages(c *fiber.Ctx) error {
	user1 := c.Query("user1")
	user2 := c.Query("user2")
	if user1 == "" || user2 == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "missing user1 or user2"})
	}
	limit := c.QueryInt("limit", services.DefaultHistoryLimit)
	return c.JSON(s.history.Between(c.Context(), user1, user2, limit))
}

func (s *Server) handleUpload(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).SendString("File upload failed")
	}
	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).SendString("File upload failed")
	}
	defer file.Close()
	data, err := io.ReadAll(file)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).SendString("File upload failed")
	}

	cmd := services.UploadCommand{
		SenderID:    c.FormValue("senderId"),
		FileName:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Data:        data,
	}
	if recipientID := c.FormValue("recipientId"); recipientID != "" {
		cmd.RecipientID = &recipientID
	}

	id, err := s.files.Upload(c.Context(), cmd)
	if err != nil {
		s.log.Warn("file upload rejected", "senderId", cmd.SenderID, "error", err)
		return c.Status(fiber.StatusBadRequest).SendString("File upload failed")
	}
	return c.SendString(strconv.FormatInt(id, 10))
}

func (s *Server) handleDownload(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.SendStatus(fiber.StatusNotFound)
	}
	download, err := s.files.Download(c.Context(), id)
	if err != nil {
		if err == errors.ErrFileNotFound {
			return c.SendStatus(fiber.StatusNotFound)
		}
		return c.SendStatus(fiber.StatusInternalServerError)
	}
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", download.FileName))
	c.Set(fiber.HeaderContentType, download.ContentType)
	return c.Send(download.Data)
}

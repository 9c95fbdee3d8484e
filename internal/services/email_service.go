package services

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"taskify_backend/internal/email"
	"taskify_backend/internal/logger"
	"taskify_backend/internal/models"
)

// EmailService собирает письма приложения поверх email.Provider
type EmailService struct {
	provider  email.Provider
	verifyURL string
	verifyTTL time.Duration
}

func NewEmailService(provider email.Provider, verifyURL string, verifyTTL time.Duration) *EmailService {
	return &EmailService{
		provider:  provider,
		verifyURL: verifyURL,
		verifyTTL: verifyTTL,
	}
}

// SendVerification отправляет ссылку подтверждения email.
func (s *EmailService) SendVerification(ctx context.Context, user *models.User, token string) error {
	return s.send(ctx, user, token, "Verify your Taskify account", email.TemplateVerifyEmail)
}

// SendEmailChanged отправляет ссылку подтверждения на новый адрес.
func (s *EmailService) SendEmailChanged(ctx context.Context, user *models.User, token string) error {
	return s.send(ctx, user, token, "Confirm your new Taskify email", email.TemplateChangeEmail)
}

func (s *EmailService) send(ctx context.Context, user *models.User, token, subject, templateName string) error {
	data := email.TemplateData{
		"FirstName":  user.FirstName,
		"Email":      user.Email,
		"VerifyLink": s.link(token),
		"ExpiresIn":  s.verifyTTL.String(),
	}

	if err := s.provider.SendTemplate([]string{user.Email}, subject, templateName, data); err != nil {
		logger.CtxWithError(ctx, "failed to send email", err, "template", templateName, "user_id", user.ID)
		return fmt.Errorf("send %s: %w", templateName, err)
	}
	logger.CtxInfo(ctx, "email sent", "template", templateName, "user_id", user.ID)
	return nil
}

func (s *EmailService) link(token string) string {
	return s.verifyURL + "?token=" + url.QueryEscape(token)
}

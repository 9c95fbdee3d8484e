package services

import (
	"encoding/json"
	"time"

	"taskify_backend/internal/access"
	"taskify_backend/internal/logger"
	"taskify_backend/internal/models"
	"taskify_backend/internal/repositories"
	"taskify_backend/internal/services/dto"
	"taskify_backend/pkg/apperrors"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// NotificationPublisher доставляет уведомление подключенному клиенту.
// Реализуется ws.Manager.
type NotificationPublisher interface {
	PublishToUser(userID string, payload interface{})
}

type NotificationService interface {
	// Системные уведомления из других сервисов
	Notify(db *gorm.DB, notifications ...*models.Notification) error

	Send(db *gorm.DB, senderID, receiverID string, req *dto.SendNotificationRequest) (*dto.NotificationResponse, error)
	List(db *gorm.DB, userID string, query *dto.NotificationQuery, page, pageSize int) (*dto.NotificationListResponse, error)
	UnreadCount(db *gorm.DB, userID string) (int64, error)
	MarkAsRead(db *gorm.DB, userID, notificationID string) error
	MarkAllAsRead(db *gorm.DB, userID string) (int64, error)
	Delete(db *gorm.DB, userID, notificationID string) error
	CleanOld(db *gorm.DB, olderThan time.Duration) (int64, error)
}

type notificationService struct {
	notificationRepo repositories.NotificationRepository
	userRepo         repositories.UserRepository
	publisher        NotificationPublisher
}

func NewNotificationService(
	notificationRepo repositories.NotificationRepository,
	userRepo repositories.UserRepository,
	publisher NotificationPublisher,
) NotificationService {
	return &notificationService{
		notificationRepo: notificationRepo,
		userRepo:         userRepo,
		publisher:        publisher,
	}
}

// Notify сохраняет уведомления и отправляет их получателям, которые онлайн.
// Вызывается после коммита основной операции.
func (s *notificationService) Notify(db *gorm.DB, notifications ...*models.Notification) error {
	if len(notifications) == 0 {
		return nil
	}
	if err := s.notificationRepo.CreateBulk(db, notifications); err != nil {
		return apperrors.InternalError(err)
	}
	for _, n := range notifications {
		s.publish(n)
	}
	return nil
}

func (s *notificationService) Send(db *gorm.DB, senderID, receiverID string, req *dto.SendNotificationRequest) (*dto.NotificationResponse, error) {
	sender, err := loadActor(db, s.userRepo, senderID)
	if err != nil {
		return nil, err
	}
	if _, err := authorize(db, sender, access.Write, nil, writeRules()...); err != nil {
		return nil, err
	}

	receiver, err := s.userRepo.FindByID(db, receiverID)
	if err != nil {
		return nil, handleRepositoryError(err)
	}

	notification := &models.Notification{
		Type:       models.NotificationTypeDirect,
		Message:    req.Message,
		SenderID:   &sender.ID,
		ReceiverID: receiver.ID,
	}
	if err := s.notificationRepo.Create(db, notification); err != nil {
		return nil, apperrors.InternalError(err)
	}
	notification.Sender = sender
	s.publish(notification)

	return dto.NewNotificationResponse(notification), nil
}

func (s *notificationService) List(db *gorm.DB, userID string, query *dto.NotificationQuery, page, pageSize int) (*dto.NotificationListResponse, error) {
	criteria := repositories.NotificationCriteria{
		UnreadOnly: query.UnreadOnly,
		Type:       query.Type,
		Page:       page,
		PageSize:   pageSize,
	}

	notifications, total, err := s.notificationRepo.FindByReceiver(db, userID, criteria)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	list := make([]*dto.NotificationResponse, 0, len(notifications))
	for i := range notifications {
		list = append(list, dto.NewNotificationResponse(&notifications[i]))
	}
	return &dto.NotificationListResponse{
		Notifications: list,
		Total:         total,
		Page:          page,
		PageSize:      pageSize,
	}, nil
}

func (s *notificationService) UnreadCount(db *gorm.DB, userID string) (int64, error) {
	count, err := s.notificationRepo.CountUnread(db, userID)
	if err != nil {
		return 0, apperrors.InternalError(err)
	}
	return count, nil
}

func (s *notificationService) MarkAsRead(db *gorm.DB, userID, notificationID string) error {
	if _, err := s.owned(db, userID, notificationID); err != nil {
		return err
	}
	return handleRepositoryError(s.notificationRepo.MarkAsRead(db, notificationID))
}

func (s *notificationService) MarkAllAsRead(db *gorm.DB, userID string) (int64, error) {
	count, err := s.notificationRepo.MarkAllAsRead(db, userID)
	if err != nil {
		return 0, apperrors.InternalError(err)
	}
	return count, nil
}

func (s *notificationService) Delete(db *gorm.DB, userID, notificationID string) error {
	if _, err := s.owned(db, userID, notificationID); err != nil {
		return err
	}
	return handleRepositoryError(s.notificationRepo.Delete(db, notificationID))
}

func (s *notificationService) CleanOld(db *gorm.DB, olderThan time.Duration) (int64, error) {
	return s.notificationRepo.DeleteReadOlderThan(db, time.Now().Add(-olderThan))
}

// owned загружает уведомление и проверяет, что пользователь его получатель.
func (s *notificationService) owned(db *gorm.DB, userID, notificationID string) (*models.Notification, error) {
	user, err := loadActor(db, s.userRepo, userID)
	if err != nil {
		return nil, err
	}
	notification, err := s.notificationRepo.FindByID(db, notificationID)
	if err != nil {
		return nil, handleRepositoryError(err)
	}
	if _, err := authorize(db, user, access.Write, notification, access.NotificationOwner); err != nil {
		return nil, err
	}
	return notification, nil
}

func (s *notificationService) publish(n *models.Notification) {
	if s.publisher == nil {
		return
	}
	s.publisher.PublishToUser(n.ReceiverID, dto.NewNotificationResponse(n))
}

// systemNotification - уведомление без отправителя со ссылками на ресурсы в Data.
func systemNotification(kind, receiverID, message string, data map[string]string) *models.Notification {
	n := &models.Notification{
		Type:       kind,
		Message:    message,
		ReceiverID: receiverID,
	}
	if len(data) > 0 {
		raw, err := json.Marshal(data)
		if err != nil {
			logger.WithError(err).Warn("failed to encode notification data", "type", kind)
		} else {
			n.Data = datatypes.JSON(raw)
		}
	}
	return n
}

// notifyAfterCommit отправляет системные уведомления. Ошибка не влияет
// на результат уже закоммиченной операции.
func notifyAfterCommit(db *gorm.DB, notifier NotificationService, notifications ...*models.Notification) {
	if notifier == nil {
		return
	}
	if err := notifier.Notify(db, notifications...); err != nil {
		logger.CtxWithError(db.Statement.Context, "failed to create notifications", err, "count", len(notifications))
	}
}

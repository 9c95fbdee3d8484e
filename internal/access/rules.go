package access

import (
	"taskify_backend/internal/models"
	"taskify_backend/pkg/apperrors"
)

type Operation int

const (
	Read Operation = iota
	Write
)

const (
	MsgNotOwnerOrEditor  = "You are not authorized to make any changes to this workspace as you are not the creator or an editor of the workspace."
	MsgNotProjectMember  = "You are not a member of this project"
	MsgNotTeamMember     = "You do not belong in this team"
	MsgNotTaskMember     = "You are not a member of this task"
	MsgNotCommentOwner   = "You are not the owner of this comment so you cannot make changes to it."
	MsgNotVerified       = "Your email has not been verified. Verify your email to continue."
	MsgInactive          = "Your account is inactive."
	MsgNotNotifReceiver  = "Access denied as you are not the receiver of this notification"
	MsgNotInAnyWorkspace = "You do not exist in this workspace"
)

// Request - все, что нужно правилу для решения.
type Request struct {
	User      *models.User
	Op        Operation
	Workspace *models.Workspace
	Member    *models.Member // nil, если пользователь не состоит в Workspace
	Resource  any
}

// Rule возвращает nil или ошибку PermissionDenied с текстом для клиента.
type Rule func(req *Request) error

// MemberSet реализуют Project, Team и Task.
type MemberSet interface {
	HasMember(memberID string) bool
}

// Evaluate проверяет правила по порядку и возвращает первый отказ.
func Evaluate(req *Request, rules ...Rule) error {
	for _, rule := range rules {
		if err := rule(req); err != nil {
			return err
		}
	}
	return nil
}

// OwnerOrEditor: чтение разрешено; запись только создателю или редактору.
func OwnerOrEditor(req *Request) error {
	if req.Op == Read {
		return nil
	}
	if req.Member == nil {
		return apperrors.PermissionDenied(MsgNotOwnerOrEditor)
	}
	if req.Workspace != nil && req.Workspace.CreatorID == req.User.ID {
		return nil
	}
	if req.Member.IsEditor() {
		return nil
	}
	return apperrors.PermissionDenied(MsgNotOwnerOrEditor)
}

// ResourceMember требует, чтобы Member состоял в самом ресурсе запроса.
func ResourceMember(req *Request) error {
	set, ok := req.Resource.(MemberSet)
	if !ok {
		return apperrors.PermissionDenied(MsgNotProjectMember)
	}
	return MemberOf(set)(req)
}

// MemberOf - вариант ResourceMember для родительского ресурса,
// например проекта при создании команды.
func MemberOf(set MemberSet) Rule {
	return func(req *Request) error {
		if req.Op == Read {
			return nil
		}
		msg := memberMessage(set)
		if req.Member == nil || !set.HasMember(req.Member.ID) {
			return apperrors.PermissionDenied(msg)
		}
		return nil
	}
}

// CommentOwner: изменять комментарий или ответ может только его автор.
func CommentOwner(req *Request) error {
	if req.Op == Read {
		return nil
	}
	var commenterID *string
	switch r := req.Resource.(type) {
	case *models.Comment:
		commenterID = r.CommenterID
	case *models.CommentReply:
		commenterID = r.CommenterID
	}
	if req.Member == nil || commenterID == nil || *commenterID != req.Member.ID {
		return apperrors.PermissionDenied(MsgNotCommentOwner)
	}
	return nil
}

func VerifiedUser(req *Request) error {
	if req.User == nil || !req.User.IsVerified {
		return apperrors.PermissionDenied(MsgNotVerified)
	}
	return nil
}

func ActiveUser(req *Request) error {
	if req.User == nil || !req.User.IsActive {
		return apperrors.PermissionDenied(MsgInactive)
	}
	return nil
}

func NotificationOwner(req *Request) error {
	n, ok := req.Resource.(*models.Notification)
	if !ok || req.User == nil || n.ReceiverID != req.User.ID {
		return apperrors.PermissionDenied(MsgNotNotifReceiver)
	}
	return nil
}

func memberMessage(set MemberSet) string {
	switch set.(type) {
	case *models.Team:
		return MsgNotTeamMember
	case *models.Task:
		return MsgNotTaskMember
	default:
		return MsgNotProjectMember
	}
}

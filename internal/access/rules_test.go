package access

import (
	"net/http"
	"testing"

	"taskify_backend/internal/models"
	"taskify_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUser(id string) *models.User {
	u := &models.User{IsVerified: true, IsActive: true}
	u.ID = id
	return u
}

func newMember(id, userID string, role models.MemberRole) *models.Member {
	m := &models.Member{UserID: userID, Role: role}
	m.ID = id
	return m
}

func assertDenied(t *testing.T, err error, msg string) {
	t.Helper()
	require.Error(t, err)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusForbidden, appErr.HTTPCode)
	assert.Equal(t, msg, appErr.Message)
}

func TestOwnerOrEditor(t *testing.T) {
	workspace := &models.Workspace{CreatorID: "creator"}

	t.Run("чтение разрешено без Member", func(t *testing.T) {
		req := &Request{User: newUser("stranger"), Op: Read, Workspace: workspace}
		assert.NoError(t, OwnerOrEditor(req))
	})

	t.Run("запись без Member запрещена", func(t *testing.T) {
		req := &Request{User: newUser("stranger"), Op: Write, Workspace: workspace}
		assertDenied(t, OwnerOrEditor(req), MsgNotOwnerOrEditor)
	})

	t.Run("viewer не может писать", func(t *testing.T) {
		req := &Request{
			User:      newUser("viewer"),
			Op:        Write,
			Workspace: workspace,
			Member:    newMember("m1", "viewer", models.RoleViewer),
		}
		assertDenied(t, OwnerOrEditor(req), MsgNotOwnerOrEditor)
	})

	t.Run("editor может писать", func(t *testing.T) {
		req := &Request{
			User:      newUser("editor"),
			Op:        Write,
			Workspace: workspace,
			Member:    newMember("m2", "editor", models.RoleEditor),
		}
		assert.NoError(t, OwnerOrEditor(req))
	})

	t.Run("создатель с ролью viewer может писать", func(t *testing.T) {
		req := &Request{
			User:      newUser("creator"),
			Op:        Write,
			Workspace: workspace,
			Member:    newMember("m3", "creator", models.RoleViewer),
		}
		assert.NoError(t, OwnerOrEditor(req))
	})
}

func TestResourceMember(t *testing.T) {
	member := newMember("m1", "u1", models.RoleViewer)
	project := &models.Project{Members: []models.Member{*member}}
	other := &models.Project{}

	assert.NoError(t, ResourceMember(&Request{User: newUser("u1"), Op: Write, Member: member, Resource: project}))
	assertDenied(t, ResourceMember(&Request{User: newUser("u1"), Op: Write, Member: member, Resource: other}), MsgNotProjectMember)
	assert.NoError(t, ResourceMember(&Request{User: newUser("u1"), Op: Read, Member: member, Resource: other}))

	team := &models.Team{}
	assertDenied(t, MemberOf(team)(&Request{User: newUser("u1"), Op: Write, Member: member}), MsgNotTeamMember)

	task := &models.Task{}
	assertDenied(t, MemberOf(task)(&Request{User: newUser("u1"), Op: Write}), MsgNotTaskMember)
}

func TestCommentOwner(t *testing.T) {
	author := newMember("author", "u1", models.RoleViewer)
	intruder := newMember("intruder", "u2", models.RoleEditor)
	authorID := author.ID
	comment := &models.Comment{CommenterID: &authorID}

	assert.NoError(t, CommentOwner(&Request{User: newUser("u1"), Op: Write, Member: author, Resource: comment}))
	assertDenied(t, CommentOwner(&Request{User: newUser("u2"), Op: Write, Member: intruder, Resource: comment}), MsgNotCommentOwner)
	assert.NoError(t, CommentOwner(&Request{User: newUser("u2"), Op: Read, Member: intruder, Resource: comment}))

	orphan := &models.CommentReply{}
	assertDenied(t, CommentOwner(&Request{User: newUser("u1"), Op: Write, Member: author, Resource: orphan}), MsgNotCommentOwner)
}

func TestVerifiedActiveAndNotificationOwner(t *testing.T) {
	unverified := newUser("u1")
	unverified.IsVerified = false
	assertDenied(t, VerifiedUser(&Request{User: unverified}), MsgNotVerified)

	inactive := newUser("u2")
	inactive.IsActive = false
	assertDenied(t, ActiveUser(&Request{User: inactive}), MsgInactive)

	notification := &models.Notification{ReceiverID: "u1"}
	assert.NoError(t, NotificationOwner(&Request{User: newUser("u1"), Resource: notification}))
	assertDenied(t, NotificationOwner(&Request{User: newUser("u2"), Resource: notification}), MsgNotNotifReceiver)
}

func TestEvaluate_FirstFailureWins(t *testing.T) {
	user := newUser("u1")
	user.IsVerified = false
	req := &Request{User: user, Op: Write, Workspace: &models.Workspace{CreatorID: "other"}}

	// Оба правила отказывают, клиент видит сообщение первого
	assertDenied(t, Evaluate(req, VerifiedUser, OwnerOrEditor), MsgNotVerified)
	assertDenied(t, Evaluate(req, OwnerOrEditor, VerifiedUser), MsgNotOwnerOrEditor)

	calls := 0
	counting := func(*Request) error { calls++; return nil }
	_ = Evaluate(req, VerifiedUser, counting)
	assert.Equal(t, 0, calls, "после первого отказа правила не вызываются")
}

package access

import (
	"fmt"
	"testing"
	"time"

	"taskify_backend/database"
	"taskify_backend/internal/logger"
	"taskify_backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := database.Open(database.DriverSQLite, dsn, logger.NewGormLogger("test"))
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
	})
	return db
}

type fixture struct {
	creator   *models.User
	viewer    *models.User
	outsider  *models.User
	workspace *models.Workspace
	viewerM   *models.Member
	project   *models.Project
	team      *models.Team
	task      *models.Task
	comment   *models.Comment
	reply     *models.CommentReply
}

func seed(t *testing.T, db *gorm.DB) *fixture {
	t.Helper()
	f := &fixture{}
	mkUser := func(email string) *models.User {
		u := &models.User{Email: email, FirstName: "A", LastName: "B", PasswordHash: "x", IsVerified: true, IsActive: true}
		require.NoError(t, db.Create(u).Error)
		return u
	}
	f.creator = mkUser("creator@acme.test")
	f.viewer = mkUser("viewer@acme.test")
	f.outsider = mkUser("outsider@acme.test")

	f.workspace = &models.Workspace{Name: "Acme", CompanyEmail: "hq@acme.test", MemberCapacity: 5, CurrentMemberCount: 2, Plan: models.PlanBasic, CreatorID: f.creator.ID}
	require.NoError(t, db.Create(f.workspace).Error)

	creatorM := &models.Member{UserID: f.creator.ID, WorkspaceID: f.workspace.ID, Role: models.RoleEditor, DateJoined: time.Now()}
	f.viewerM = &models.Member{UserID: f.viewer.ID, WorkspaceID: f.workspace.ID, Role: models.RoleViewer, DateJoined: time.Now()}
	require.NoError(t, db.Create(creatorM).Error)
	require.NoError(t, db.Create(f.viewerM).Error)

	f.project = &models.Project{Name: "Launch", StartDate: time.Now(), EndDate: time.Now().Add(time.Hour), WorkspaceID: f.workspace.ID, Members: []models.Member{*creatorM}}
	require.NoError(t, db.Create(f.project).Error)

	f.team = &models.Team{Name: "Core", ProjectID: f.project.ID}
	require.NoError(t, db.Create(f.team).Error)

	f.task = &models.Task{Name: "Ship", ProjectID: f.project.ID, StartDate: time.Now(), EndDate: time.Now().Add(time.Hour)}
	require.NoError(t, db.Create(f.task).Error)

	f.comment = &models.Comment{Content: "hi", ProjectID: f.project.ID, CommenterID: &creatorM.ID}
	require.NoError(t, db.Create(f.comment).Error)

	f.reply = &models.CommentReply{Content: "hello", CommentID: f.comment.ID, CommenterID: &f.viewerM.ID}
	require.NoError(t, db.Create(f.reply).Error)
	return f
}

func TestResolveWorkspace_AllResourceKinds(t *testing.T) {
	db := openTestDB(t)
	f := seed(t, db)

	for name, resource := range map[string]any{
		"workspace": f.workspace,
		"project":   f.project,
		"team":      f.team,
		"task":      f.task,
		"comment":   f.comment,
		"reply":     f.reply,
	} {
		ws, err := ResolveWorkspace(db, resource)
		require.NoError(t, err, name)
		assert.Equal(t, f.workspace.ID, ws.ID, name)
	}

	_, err := ResolveWorkspace(db, &models.Notification{})
	assert.Error(t, err)
}

func TestResolveMember(t *testing.T) {
	db := openTestDB(t)
	f := seed(t, db)

	member, err := ResolveMember(db, f.viewer.ID, f.workspace.ID)
	require.NoError(t, err)
	assert.Equal(t, f.viewerM.ID, member.ID)

	_, err = ResolveMember(db, f.outsider.ID, f.workspace.ID)
	assert.ErrorIs(t, err, ErrNoMember)
}

func TestAuthorize(t *testing.T) {
	db := openTestDB(t)
	f := seed(t, db)

	// viewer читает, но не пишет
	_, err := Authorize(db, f.viewer, Read, f.project, VerifiedUser, OwnerOrEditor)
	assert.NoError(t, err)

	_, err = Authorize(db, f.viewer, Write, f.project, VerifiedUser, OwnerOrEditor)
	assertDenied(t, err, MsgNotOwnerOrEditor)

	// посторонний без Member
	_, err = Authorize(db, f.outsider, Write, f.task, OwnerOrEditor)
	assertDenied(t, err, MsgNotOwnerOrEditor)

	req, err := Authorize(db, f.creator, Write, f.team, VerifiedUser, OwnerOrEditor)
	require.NoError(t, err)
	assert.Equal(t, f.workspace.ID, req.Workspace.ID)
	require.NotNil(t, req.Member)
	assert.Equal(t, f.creator.ID, req.Member.UserID)

	// Автор ответа может его менять, создатель пространства - нет
	_, err = Authorize(db, f.viewer, Write, f.reply, CommentOwner)
	assert.NoError(t, err)
	_, err = Authorize(db, f.creator, Write, f.reply, CommentOwner)
	assertDenied(t, err, MsgNotCommentOwner)
}

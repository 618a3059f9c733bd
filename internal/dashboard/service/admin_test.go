package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	appmodels "dochub/internal/applications/models"
	authmodels "dochub/internal/auth/models"
	userStore "dochub/internal/auth/store/user"
	"dochub/internal/dashboard/service/mocks"
	id "dochub/pkg/domain"
	dErrors "dochub/pkg/domain-errors"
	"dochub/pkg/platform/audit"
	"dochub/pkg/requestcontext"
)

type AdminSuite struct {
	suite.Suite
	ctrl     *gomock.Controller
	users    *mocks.MockUserDirectory
	remover  *mocks.MockUserRemover
	apps     *mocks.MockApplicationStore
	docs     *mocks.MockDocumentStore
	activity *mocks.MockActivityLog
	audit    *mocks.MockAuditPublisher
}

func TestAdminSuite(t *testing.T) {
	suite.Run(t, new(AdminSuite))
}

func (s *AdminSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.users = mocks.NewMockUserDirectory(s.ctrl)
	s.remover = mocks.NewMockUserRemover(s.ctrl)
	s.apps = mocks.NewMockApplicationStore(s.ctrl)
	s.docs = mocks.NewMockDocumentStore(s.ctrl)
	s.activity = mocks.NewMockActivityLog(s.ctrl)
	s.audit = mocks.NewMockAuditPublisher(s.ctrl)
}

func (s *AdminSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *AdminSuite) newAdmin(checks map[string]HealthCheck) *Admin {
	admin, err := NewAdmin(s.users, s.remover, s.apps, s.docs, s.activity, checks, WithAuditPublisher(s.audit))
	s.Require().NoError(err)
	return admin
}

func (s *AdminSuite) TestNew() {
	_, err := NewAdmin(nil, s.remover, s.apps, s.docs, s.activity, nil)
	s.Error(err)
	_, err = NewAdmin(s.users, s.remover, s.apps, s.docs, nil, nil)
	s.Error(err)
}

func (s *AdminSuite) TestOverview() {
	events := []audit.Event{{Action: string(audit.EventLoginSucceeded)}}
	s.users.EXPECT().CountByRole(gomock.Any(), authmodels.RoleCitizen).Return(1250, nil)
	s.users.EXPECT().CountByRole(gomock.Any(), authmodels.RoleOfficer).Return(45, nil)
	s.apps.EXPECT().CountByStatus(gomock.Any(), id.UserID{}).Return(map[appmodels.Status]int{
		appmodels.StatusPending:   3,
		appmodels.StatusCompleted: 4,
	}, nil)
	s.activity.EXPECT().ListRecent(gomock.Any(), defaultActivityLimit).Return(events, nil)

	admin := s.newAdmin(map[string]HealthCheck{
		"postgres": func(context.Context) error { return nil },
		"redis":    func(context.Context) error { return errors.New("connection refused") },
	})

	got, err := admin.Overview(context.Background())
	s.Require().NoError(err)
	s.Equal(1250, got.TotalCitizens)
	s.Equal(45, got.ActiveOfficers)
	s.Equal(7, got.TotalApplications)
	s.Equal(events, got.RecentActivity)
	s.Equal(map[string]string{"postgres": "ok", "redis": "degraded"}, got.Dependencies)
	s.Equal("degraded", got.SystemHealth)
}

func (s *AdminSuite) TestOverviewHealthyWithoutChecks() {
	s.users.EXPECT().CountByRole(gomock.Any(), gomock.Any()).Return(0, nil).Times(2)
	s.apps.EXPECT().CountByStatus(gomock.Any(), gomock.Any()).Return(map[appmodels.Status]int{}, nil)
	s.activity.EXPECT().ListRecent(gomock.Any(), gomock.Any()).Return(nil, nil)

	got, err := s.newAdmin(nil).Overview(context.Background())
	s.Require().NoError(err)
	s.Equal("ok", got.SystemHealth)
}

func (s *AdminSuite) TestOverviewStoreFailure() {
	s.users.EXPECT().CountByRole(gomock.Any(), gomock.Any()).Return(0, errors.New("db down")).AnyTimes()
	s.apps.EXPECT().CountByStatus(gomock.Any(), gomock.Any()).Return(map[appmodels.Status]int{}, nil).AnyTimes()
	s.activity.EXPECT().ListRecent(gomock.Any(), gomock.Any()).Return(nil, nil).AnyTimes()

	_, err := s.newAdmin(nil).Overview(context.Background())
	s.True(dErrors.HasCode(err, dErrors.CodeInternal))
}

func (s *AdminSuite) TestUsers() {
	officers := []*authmodels.User{{ID: id.UserID(uuid.New()), Role: authmodels.RoleOfficer}}
	s.users.EXPECT().List(gomock.Any(), userStore.ListFilter{Role: authmodels.RoleOfficer, Search: "ram"}).Return(officers, nil)
	s.users.EXPECT().List(gomock.Any(), userStore.ListFilter{}).Return(officers, nil)

	admin := s.newAdmin(nil)
	got, err := admin.Users(context.Background(), UserQuery{Role: "Officer", Search: "ram"})
	s.Require().NoError(err)
	s.Equal(officers, got)

	_, err = admin.Users(context.Background(), UserQuery{Role: "all"})
	s.Require().NoError(err)

	_, err = admin.Users(context.Background(), UserQuery{Role: "superuser"})
	s.True(dErrors.HasCode(err, dErrors.CodeValidation))
}

func (s *AdminSuite) TestDeleteUser() {
	ctx := context.Background()
	actor := id.UserID(uuid.New())
	target := id.UserID(uuid.New())
	admin := s.newAdmin(nil)

	s.Run("requires confirmation", func() {
		err := admin.DeleteUser(ctx, actor, target, false)
		s.True(dErrors.HasCode(err, dErrors.CodeConfirmationRequired))
	})

	s.Run("removes the account then its data", func() {
		gomock.InOrder(
			s.remover.EXPECT().DeleteUser(ctx, actor, target).Return(nil),
			s.apps.EXPECT().DeleteByOwner(ctx, target).Return(2, nil),
			s.docs.EXPECT().DeleteByOwner(ctx, target).Return(3, nil),
		)
		s.NoError(admin.DeleteUser(ctx, actor, target, true))
	})

	s.Run("remover errors pass through", func() {
		selfErr := dErrors.New(dErrors.CodeInvalidState, "You cannot delete your own account")
		s.remover.EXPECT().DeleteUser(ctx, actor, actor).Return(selfErr)
		err := admin.DeleteUser(ctx, actor, actor, true)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidState))
	})
}

func (s *AdminSuite) TestBackup() {
	now := time.Date(2026, 8, 9, 10, 11, 12, 0, time.UTC)
	ctx := requestcontext.WithTime(context.Background(), now)
	actor := id.UserID(uuid.New())

	s.audit.EXPECT().Emit(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, e audit.Event) error {
		s.Equal(string(audit.EventBackupRequested), e.Action)
		s.Equal(actor.String(), e.ActorID)
		return nil
	})

	receipt, err := s.newAdmin(nil).Backup(ctx, actor)
	s.Require().NoError(err)
	s.True(strings.HasPrefix(receipt.Reference, "backup-20260809T101112Z-"), receipt.Reference)
	s.Equal(now, receipt.RequestedAt)
}

func (s *AdminSuite) TestRecentActivityDefaultsLimit() {
	s.activity.EXPECT().ListRecent(gomock.Any(), defaultActivityLimit).Return(nil, nil)
	s.activity.EXPECT().ListRecent(gomock.Any(), 25).Return(nil, nil)

	admin := s.newAdmin(nil)
	_, err := admin.RecentActivity(context.Background(), 0)
	s.NoError(err)
	_, err = admin.RecentActivity(context.Background(), 25)
	s.NoError(err)
}

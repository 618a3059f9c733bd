//go:build integration

package user_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"dochub/internal/auth/models"
	"dochub/internal/auth/store/user"
	"dochub/internal/identity"
	id "dochub/pkg/domain"
	"dochub/pkg/platform/sentinel"
	"dochub/pkg/testutil/containers"
)

type PostgresUserStoreSuite struct {
	suite.Suite
	pg    *containers.PostgresContainer
	store *user.PostgresStore
}

func TestPostgresUserStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresUserStoreSuite))
}

func (s *PostgresUserStoreSuite) SetupSuite() {
	s.pg = containers.GetManager().GetPostgres(s.T())
	s.store = user.NewPostgres(s.pg.DB)
}

func (s *PostgresUserStoreSuite) SetupTest() {
	s.Require().NoError(s.pg.Truncate(context.Background(), "users"))
}

func makeUser(email, phone, nationalID string, role models.Role) *models.User {
	return &models.User{
		ID:           id.UserID(uuid.New()),
		FullName:     "Sita Sharma",
		Email:        email,
		Phone:        phone,
		NationalID:   nationalID,
		Role:         role,
		PasswordHash: "$2a$04$hash",
		Status:       models.UserStatusActive,
		CreatedAt:    time.Now().UTC().Truncate(time.Microsecond),
	}
}

func (s *PostgresUserStoreSuite) TestCreateAndFind() {
	ctx := context.Background()
	u := makeUser("Sita@Example.com", "9801234567", "01-04-73-02-01234", models.RoleCitizen)
	s.Require().NoError(s.store.Create(ctx, u))

	found, err := s.store.FindByIdentifier(ctx, identity.MethodEmail, "sita@example.com")
	s.Require().NoError(err)
	s.Equal(u.ID, found.ID)
	s.Equal("sita@example.com", found.Email)
	s.Equal(models.RoleCitizen, found.Role)

	found, err = s.store.FindByIdentifier(ctx, identity.MethodNationalID, "01-04-73-02-01234")
	s.Require().NoError(err)
	s.Equal(u.ID, found.ID)

	_, err = s.store.FindByID(ctx, id.UserID(uuid.New()))
	s.ErrorIs(err, sentinel.ErrNotFound)
}

func (s *PostgresUserStoreSuite) TestUniqueIndexesMapToFieldErrors() {
	ctx := context.Background()
	s.Require().NoError(s.store.Create(ctx, makeUser("a@example.com", "9801111111", "01-01-01-01-00001", models.RoleCitizen)))

	s.ErrorIs(s.store.Create(ctx, makeUser("A@EXAMPLE.COM", "9802222222", "", models.RoleAdmin)), user.ErrEmailTaken)
	s.ErrorIs(s.store.Create(ctx, makeUser("b@example.com", "9801111111", "", models.RoleAdmin)), user.ErrPhoneTaken)
	s.ErrorIs(s.store.Create(ctx, makeUser("c@example.com", "9803333333", "01-01-01-01-00001", models.RoleOfficer)), user.ErrNationalIDTaken)

	s.NoError(s.store.Create(ctx, makeUser("d@example.com", "9804444444", "", models.RoleAdmin)))
	s.NoError(s.store.Create(ctx, makeUser("e@example.com", "9805555555", "", models.RoleAdmin)))
}

func (s *PostgresUserStoreSuite) TestListCountDelete() {
	ctx := context.Background()
	officer := makeUser("officer@example.com", "9700000001", "02-02-02-02-00002", models.RoleOfficer)
	citizen := makeUser("citizen@example.com", "9700000002", "03-03-03-03-00003", models.RoleCitizen)
	s.Require().NoError(s.store.Create(ctx, officer))
	s.Require().NoError(s.store.Create(ctx, citizen))

	list, err := s.store.List(ctx, user.ListFilter{Role: models.RoleOfficer})
	s.Require().NoError(err)
	s.Require().Len(list, 1)
	s.Equal(officer.ID, list[0].ID)

	list, err = s.store.List(ctx, user.ListFilter{Search: "citizen"})
	s.Require().NoError(err)
	s.Len(list, 1)

	n, err := s.store.CountByRole(ctx, models.RoleCitizen)
	s.Require().NoError(err)
	s.Equal(1, n)

	s.Require().NoError(s.store.Delete(ctx, citizen.ID))
	s.ErrorIs(s.store.Delete(ctx, citizen.ID), sentinel.ErrNotFound)
}

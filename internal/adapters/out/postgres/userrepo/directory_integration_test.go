package userrepo_test

import (
	"context"
	"testing"
	"time"

	"cafeteria/internal/adapters/out/postgres/userrepo"
	"cafeteria/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type UserDirectoryIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	directory *userrepo.GormUserDirectory
}

func (suite *UserDirectoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(userrepo.Migrate(db))
	suite.directory = userrepo.NewGormUserDirectory(db)
}

func (suite *UserDirectoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *UserDirectoryIntegrationTestSuite) TestDisplayNames() {
	ctx := context.Background()
	alice, bob, ghost := kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID()

	suite.Require().NoError(suite.db.Create(&[]userrepo.UserDTO{
		{ID: alice.Bytes(), Username: "alice", Role: "user"},
		{ID: bob.Bytes(), Username: "bob", Role: "waiter"},
	}).Error)

	names, err := suite.directory.DisplayNames(ctx, []kernel.UUID{alice, bob, ghost})

	suite.Require().NoError(err)
	suite.Len(names, 2)
	suite.Equal("alice", names[alice])
	suite.Equal("bob", names[bob])
	suite.NotContains(names, ghost)
}

func (suite *UserDirectoryIntegrationTestSuite) TestDisplayNames_Empty() {
	names, err := suite.directory.DisplayNames(context.Background(), nil)

	suite.Require().NoError(err)
	suite.Empty(names)
}

func TestUserDirectoryIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(UserDirectoryIntegrationTestSuite))
}

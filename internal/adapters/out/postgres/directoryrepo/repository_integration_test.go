package directoryrepo_test

import (
	"context"
	"testing"
	"time"

	"subcontract/internal/adapters/out/postgres/directoryrepo"
	"subcontract/internal/core/domain/model/kernel"
	"subcontract/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type DirectoryIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
}

func (suite *DirectoryIntegrationTestSuite) SetupSuite() {
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

	suite.Require().NoError(db.AutoMigrate(directoryrepo.Models()...))
}

func (suite *DirectoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *DirectoryIntegrationTestSuite) TestProductDirectory_Get() {
	ctx := context.Background()
	id := kernel.NewUUID()
	suite.Require().NoError(suite.db.Create(&directoryrepo.ProductDTO{ID: id.Bytes(), Name: "Cotton fabric", Code: "FAB-01"}).Error)
	products := directoryrepo.NewGormProductDirectory(suite.db)

	product, err := products.Get(ctx, id)
	suite.Require().NoError(err)
	suite.Equal("Cotton fabric", product.Name)
	suite.Equal("FAB-01", product.Code)
	suite.True(id.IsEqual(product.ID))

	_, err = products.Get(ctx, kernel.NewUUID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *DirectoryIntegrationTestSuite) TestWarehouseDirectory_Exists() {
	ctx := context.Background()
	id := kernel.NewUUID()
	suite.Require().NoError(suite.db.Create(&directoryrepo.WarehouseDTO{ID: id.Bytes(), Name: "Main"}).Error)
	warehouses := directoryrepo.NewGormWarehouseDirectory(suite.db)

	exists, err := warehouses.Exists(ctx, id)
	suite.Require().NoError(err)
	suite.True(exists)

	exists, err = warehouses.Exists(ctx, kernel.NewUUID())
	suite.Require().NoError(err)
	suite.False(exists)
}

func TestDirectoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(DirectoryIntegrationTestSuite))
}

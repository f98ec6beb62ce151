package candidaterepo_test

import (
	"context"
	"testing"
	"time"

	"dispatch/internal/adapters/out/postgres/candidaterepo"
	"dispatch/internal/core/domain/model/candidate"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/task"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// MockAggregateTracker is a mock implementation of aggregateTracker interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate interface{}) {
	m.Called(id, aggregate)
}

// CandidateRepositoryIntegrationTestSuite provides integration tests for
// CandidateRepository using PostgreSQL containers.
type CandidateRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *candidaterepo.GormCandidateRepository
	tracker    *MockAggregateTracker
}

func (suite *CandidateRepositoryIntegrationTestSuite) SetupSuite() {
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

	suite.Require().NoError(db.AutoMigrate(&candidaterepo.CandidateDTO{}))
}

func (suite *CandidateRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE candidates").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.repository = candidaterepo.NewGormCandidateRepository(suite.db, suite.tracker)
}

func (suite *CandidateRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *CandidateRepositoryIntegrationTestSuite) createTestCandidate(kind task.Kind) *candidate.Candidate {
	location, err := kernel.NewGeoPoint(12.9716, 77.5946)
	suite.Require().NoError(err)

	testCandidate, err := candidate.NewCandidate(kernel.NewUUID(), "Fresh Mart", kind, location)
	suite.Require().NoError(err)
	return testCandidate
}

func (suite *CandidateRepositoryIntegrationTestSuite) TestAddAndGet_RoundTrip() {
	ctx := context.Background()
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything)

	testCandidate := suite.createTestCandidate(task.FulfillmentAssignment)
	suite.Require().NoError(suite.repository.Add(ctx, testCandidate))

	loaded, err := suite.repository.Get(ctx, testCandidate.ID())
	suite.Require().NoError(err)

	suite.True(testCandidate.ID().IsEqual(loaded.ID()))
	suite.Equal("Fresh Mart", loaded.Name())
	suite.Equal(task.FulfillmentAssignment, loaded.Kind())
	suite.True(loaded.IsAvailable())
	equal, err := testCandidate.Location().IsEqual(loaded.Location())
	suite.Require().NoError(err)
	suite.True(equal)
}

func (suite *CandidateRepositoryIntegrationTestSuite) TestGet_NotFound() {
	ctx := context.Background()

	_, err := suite.repository.Get(ctx, kernel.NewUUID())
	suite.Require().Error(err)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *CandidateRepositoryIntegrationTestSuite) TestUpdate_PersistsBusyFlag() {
	ctx := context.Background()
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything)

	testCandidate := suite.createTestCandidate(task.CarriageAssignment)
	suite.Require().NoError(suite.repository.Add(ctx, testCandidate))

	suite.Require().NoError(testCandidate.MarkBusy())
	suite.Require().NoError(suite.repository.Update(ctx, testCandidate))

	loaded, err := suite.repository.Get(ctx, testCandidate.ID())
	suite.Require().NoError(err)
	suite.False(loaded.IsAvailable())

	// And back again after release.
	suite.Require().NoError(testCandidate.Release())
	suite.Require().NoError(suite.repository.Update(ctx, testCandidate))

	loaded, err = suite.repository.Get(ctx, testCandidate.ID())
	suite.Require().NoError(err)
	suite.True(loaded.IsAvailable())
}

func (suite *CandidateRepositoryIntegrationTestSuite) TestGetAllAvailableByKind_Filters() {
	ctx := context.Background()
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything)

	available := suite.createTestCandidate(task.FulfillmentAssignment)
	suite.Require().NoError(suite.repository.Add(ctx, available))

	busy := suite.createTestCandidate(task.FulfillmentAssignment)
	suite.Require().NoError(busy.MarkBusy())
	suite.Require().NoError(suite.repository.Add(ctx, busy))

	otherKind := suite.createTestCandidate(task.CarriageAssignment)
	suite.Require().NoError(suite.repository.Add(ctx, otherKind))

	pool, err := suite.repository.GetAllAvailableByKind(ctx, task.FulfillmentAssignment)
	suite.Require().NoError(err)
	suite.Require().Len(pool, 1)
	suite.True(available.ID().IsEqual(pool[0].ID()))
}

func TestCandidateRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(CandidateRepositoryIntegrationTestSuite))
}

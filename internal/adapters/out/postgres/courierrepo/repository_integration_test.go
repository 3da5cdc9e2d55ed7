package courierrepo_test

import (
	"context"
	"testing"
	"time"

	"dispatch/internal/adapters/out/postgres/courierrepo"
	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// MockAggregateTracker is a mock implementation of the aggregateTracker interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate any) {
	m.Called(id, aggregate)
}

// CourierRepositoryIntegrationTestSuite provides integration tests for the
// courier repository using a PostgreSQL container.
type CourierRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *courierrepo.GormCourierRepository
	tracker    *MockAggregateTracker
}

func (suite *CourierRepositoryIntegrationTestSuite) SetupSuite() {
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

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{TranslateError: true})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&courierrepo.CourierDTO{}))
}

func (suite *CourierRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE couriers").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.repository = courierrepo.NewGormCourierRepository(suite.db, suite.tracker)
}

func (suite *CourierRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func TestCourierRepositoryIntegrationSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	suite.Run(t, new(CourierRepositoryIntegrationTestSuite))
}

func (suite *CourierRepositoryIntegrationTestSuite) TestAdd_ValidCourier_Success() {
	ctx := context.Background()
	testCourier := suite.createCourier("Dmitry Orlov")
	suite.tracker.On("TrackAggregate", testCourier.ID(), testCourier).Return()

	err := suite.repository.Add(ctx, testCourier)

	suite.Require().NoError(err)
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *CourierRepositoryIntegrationTestSuite) TestGet_ExistingCourier_RoundTripsFullState() {
	ctx := context.Background()
	testCourier := suite.createCourier("Dmitry Orlov")
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything).Return()

	testCourier.Verify()
	suite.Require().NoError(testCourier.SetAvailability(true))

	point, err := kernel.NewGeoPoint(40.7128, -74.0060)
	suite.Require().NoError(err)
	suite.Require().NoError(testCourier.UpdateLocation(point, time.Now().UTC()))

	testCourier.RecordDelivery(true, true)
	testCourier.RecordDelivery(true, false)
	suite.Require().NoError(testCourier.ApplyReputation(courier.Reputation{Average: 4.5, Count: 2}))

	suite.Require().NoError(suite.repository.Add(ctx, testCourier))

	stored, err := suite.repository.Get(ctx, testCourier.ID())

	suite.Require().NoError(err)
	suite.Assert().True(stored.ID().IsEqual(testCourier.ID()))
	suite.Assert().Equal("Dmitry Orlov", stored.Name())
	suite.Assert().Equal(courier.Bicycle, stored.Vehicle())
	suite.Assert().True(stored.IsVerified())
	suite.Assert().True(stored.IsAvailable())
	suite.Require().NotNil(stored.Location())
	suite.Assert().InDelta(40.7128, stored.Location().Lat(), 1e-9)
	suite.Assert().InDelta(-74.0060, stored.Location().Lng(), 1e-9)
	suite.Assert().Equal(courier.DeliveryCounters{Total: 2, Successful: 2, OnTime: 1}, stored.Counters())
	suite.Assert().Equal(courier.Reputation{Average: 4.5, Count: 2}, stored.Reputation())
}

func (suite *CourierRepositoryIntegrationTestSuite) TestGet_NonExistentCourier_ReturnsNotFoundError() {
	ctx := context.Background()

	_, err := suite.repository.Get(ctx, kernel.NewUUID())

	suite.Require().Error(err)
	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)
}

func (suite *CourierRepositoryIntegrationTestSuite) TestGetForUpdate_RoundTripsThroughRowLock() {
	ctx := context.Background()
	testCourier := suite.createCourier("Dmitry Orlov")
	testCourier.RecordDelivery(true, true)
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything).Return()
	suite.Require().NoError(suite.repository.Add(ctx, testCourier))

	err := suite.db.Transaction(func(tx *gorm.DB) error {
		txRepo := courierrepo.NewGormCourierRepository(tx, suite.tracker)

		locked, lockErr := txRepo.GetForUpdate(ctx, testCourier.ID())
		if lockErr != nil {
			return lockErr
		}

		locked.RecordDelivery(true, false)
		return txRepo.Update(ctx, locked)
	})
	suite.Require().NoError(err)

	stored, err := suite.repository.Get(ctx, testCourier.ID())

	suite.Require().NoError(err)
	suite.Assert().Equal(courier.DeliveryCounters{Total: 2, Successful: 2, OnTime: 1}, stored.Counters())
}

func (suite *CourierRepositoryIntegrationTestSuite) TestGetForUpdate_NonExistentCourier_ReturnsNotFoundError() {
	ctx := context.Background()

	err := suite.db.Transaction(func(tx *gorm.DB) error {
		txRepo := courierrepo.NewGormCourierRepository(tx, suite.tracker)
		_, lockErr := txRepo.GetForUpdate(ctx, kernel.NewUUID())
		return lockErr
	})

	suite.Require().Error(err)
	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)
}

func (suite *CourierRepositoryIntegrationTestSuite) TestUpdate_PersistsProfileChanges() {
	ctx := context.Background()
	testCourier := suite.createCourier("Dmitry Orlov")
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything).Return()
	suite.Require().NoError(suite.repository.Add(ctx, testCourier))

	testCourier.Verify()
	suite.Require().NoError(testCourier.SetAvailability(true))
	suite.Require().NoError(suite.repository.Update(ctx, testCourier))

	stored, err := suite.repository.Get(ctx, testCourier.ID())

	suite.Require().NoError(err)
	suite.Assert().True(stored.IsVerified())
	suite.Assert().True(stored.IsAvailable())
}

func (suite *CourierRepositoryIntegrationTestSuite) TestUpdate_NonExistentCourier_ReturnsError() {
	ctx := context.Background()
	testCourier := suite.createCourier("Dmitry Orlov")

	err := suite.repository.Update(ctx, testCourier)

	suite.Require().ErrorIs(err, gorm.ErrRecordNotFound)
}

func (suite *CourierRepositoryIntegrationTestSuite) TestGetAllAvailable_FiltersOnFlags() {
	ctx := context.Background()
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything).Return()

	ready := suite.createCourier("Ready Courier")
	ready.Verify()
	suite.Require().NoError(ready.SetAvailability(true))
	suite.Require().NoError(suite.repository.Add(ctx, ready))

	unverified := suite.createCourier("Unverified Courier")
	suite.Require().NoError(suite.repository.Add(ctx, unverified))

	offline := suite.createCourier("Offline Courier")
	offline.Verify()
	suite.Require().NoError(suite.repository.Add(ctx, offline))

	inactive := suite.createCourier("Inactive Courier")
	inactive.Verify()
	suite.Require().NoError(inactive.SetAvailability(true))
	suite.Require().NoError(suite.repository.Add(ctx, inactive))
	inactive.Deactivate()
	suite.Require().NoError(suite.repository.Update(ctx, inactive))

	available, err := suite.repository.GetAllAvailable(ctx)

	suite.Require().NoError(err)
	suite.Require().Len(available, 1)
	suite.Assert().True(available[0].ID().IsEqual(ready.ID()))
}

func (suite *CourierRepositoryIntegrationTestSuite) createCourier(name string) *courier.Courier {
	window, err := courier.NewDayWindow("00:00", "23:59", true)
	suite.Require().NoError(err)

	days := make(map[time.Weekday]courier.DayWindow, 7)
	for day := time.Sunday; day <= time.Saturday; day++ {
		days[day] = window
	}
	schedule, err := courier.NewWeekSchedule(days)
	suite.Require().NoError(err)

	newCourier, err := courier.NewCourier(
		kernel.NewUUID(), name, "+15550111", courier.Bicycle, schedule, time.Now().UTC())
	suite.Require().NoError(err)
	return newCourier
}

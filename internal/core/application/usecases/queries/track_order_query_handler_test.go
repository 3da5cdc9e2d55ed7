package queries_test

import (
	"context"
	"testing"
	"time"

	"dispatch/internal/adapters/out/postgres/orderrepo"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// nopTracker satisfies the repository's tracker dependency in read-model tests.
type nopTracker struct{}

func (nopTracker) TrackAggregate(kernel.UUID, any) {}

type TrackOrderQueryHandlerTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	handler   queries.TrackOrderQueryHandler
	orderRepo *orderrepo.GormOrderRepository
}

func (suite *TrackOrderQueryHandlerTestSuite) SetupSuite() {
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

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{TranslateError: true})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(&orderrepo.OrderDTO{})
	suite.Require().NoError(err)

	suite.handler = queries.NewTrackOrderQueryHandler(db)
	suite.orderRepo = orderrepo.NewGormOrderRepository(db, nopTracker{})
}

func (suite *TrackOrderQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *TrackOrderQueryHandlerTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE orders").Error
	suite.Require().NoError(err)
}

func (suite *TrackOrderQueryHandlerTestSuite) TestHandle_PendingOrder_ReturnsPublicView() {
	testOrder := suite.createOrder()
	suite.Require().NoError(suite.orderRepo.Add(context.Background(), testOrder))

	query, err := queries.NewTrackOrderQuery(testOrder.TrackingCode())
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)
	suite.Require().NoError(err)

	suite.Equal(testOrder.TrackingCode().String(), result.TrackingCode)
	suite.Equal("pending", result.Status)
	suite.Equal("high", result.Priority)
	suite.Equal("55 Elm Ave", result.DeliveryAddress)
	suite.Equal(40, result.EstimatedDeliveryMinutes)
	suite.Nil(result.AcceptedAt)
	suite.Nil(result.PickedUpAt)
	suite.Nil(result.DeliveredAt)
	suite.Nil(result.CancelledAt)
}

func (suite *TrackOrderQueryHandlerTestSuite) TestHandle_DeliveredOrder_CarriesMilestoneTimestamps() {
	testOrder := suite.createOrder()
	courierID := kernel.NewUUID()
	now := time.Now().UTC().Truncate(time.Second)

	suite.Require().NoError(testOrder.Accept(courierID, now))
	suite.Require().NoError(testOrder.TransitionTo(order.PickedUp, courierID, now.Add(5*time.Minute), ""))
	suite.Require().NoError(testOrder.TransitionTo(order.Delivered, courierID, now.Add(30*time.Minute), ""))
	suite.Require().NoError(suite.orderRepo.Add(context.Background(), testOrder))

	query, err := queries.NewTrackOrderQuery(testOrder.TrackingCode())
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)
	suite.Require().NoError(err)

	suite.Equal("delivered", result.Status)
	suite.Require().NotNil(result.AcceptedAt)
	suite.Require().NotNil(result.PickedUpAt)
	suite.Require().NotNil(result.DeliveredAt)
	suite.Nil(result.CancelledAt)
	suite.True(result.AcceptedAt.Before(*result.DeliveredAt))
}

func (suite *TrackOrderQueryHandlerTestSuite) TestHandle_UnknownCode_ReturnsNotFoundError() {
	query, err := queries.NewTrackOrderQuery(kernel.NewTrackingCode())
	suite.Require().NoError(err)

	_, err = suite.handler.Handle(context.Background(), query)
	suite.Require().Error(err)

	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)
}

func (suite *TrackOrderQueryHandlerTestSuite) TestHandle_InvalidQuery_ReturnsError() {
	invalidQuery := queries.TrackOrderQuery{}

	_, err := suite.handler.Handle(context.Background(), invalidQuery)

	suite.Require().Error(err)
	suite.Contains(err.Error(), "must be created via NewTrackOrderQuery constructor")
}

func (suite *TrackOrderQueryHandlerTestSuite) createOrder() *order.Order {
	pickupPoint, err := kernel.NewGeoPoint(40.7128, -74.0060)
	suite.Require().NoError(err)
	pickup, err := order.NewWaypoint("170 Main St", pickupPoint, "")
	suite.Require().NoError(err)

	deliveryPoint, err := kernel.NewGeoPoint(40.7306, -73.9866)
	suite.Require().NoError(err)
	delivery, err := order.NewWaypoint("55 Elm Ave", deliveryPoint, "")
	suite.Require().NoError(err)

	testOrder, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), order.Details{
		CustomerName:             "Carol Reyes",
		CustomerPhone:            "+15550104",
		Pickup:                   pickup,
		Delivery:                 delivery,
		TotalValue:               64.00,
		DeliveryFee:              6.00,
		Priority:                 order.High,
		EstimatedDeliveryMinutes: 40,
	}, time.Now().UTC().Truncate(time.Second))
	suite.Require().NoError(err)
	return testOrder
}

func TestTrackOrderQueryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(TrackOrderQueryHandlerTestSuite))
}

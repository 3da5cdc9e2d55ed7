package cmd

import (
	"log/slog"
	"time"

	"dispatch/internal/adapters/in/http"
	"dispatch/internal/adapters/out/geo"
	"dispatch/internal/adapters/out/postgres"
	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/jobs"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
}

func NewCompositionRoot(_ Config, gormDB *gorm.DB) CompositionRoot {
	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
	}
}

func (c *CompositionRoot) CreateMatchEngine() services.MatchEngine {
	return services.NewMatchEngine(geo.HaversineDistance)
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.OrderCompanyUoWFactory = FuncOrderCompanyUoWFactory(func() commands.OrderCompanyUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrderCommandHandler(f, time.Now)
}

func (c *CompositionRoot) CreateAcceptOrderCommandHandler() commands.AcceptOrderCommandHandler {
	var f commands.OrderCourierUoWFactory = FuncOrderCourierUoWFactory(func() commands.OrderCourierUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAcceptOrderCommandHandler(f, time.Now)
}

func (c *CompositionRoot) CreateUpdateOrderStatusCommandHandler() commands.UpdateOrderStatusCommandHandler {
	var f commands.OrderCourierUoWFactory = FuncOrderCourierUoWFactory(func() commands.OrderCourierUoW {
		return c.uowFactory.Create()
	})
	return commands.NewUpdateOrderStatusCommandHandler(f, time.Now)
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCancelOrderCommandHandler(f, time.Now)
}

func (c *CompositionRoot) CreateSubmitRatingCommandHandler() commands.SubmitRatingCommandHandler {
	var f commands.RatingUoWFactory = FuncRatingUoWFactory(func() commands.RatingUoW {
		return c.uowFactory.Create()
	})
	return commands.NewSubmitRatingCommandHandler(f, time.Now)
}

func (c *CompositionRoot) CreateVerifyCourierCommandHandler() commands.VerifyCourierCommandHandler {
	var f commands.CourierUoWFactory = FuncCourierUoWFactory(func() commands.CourierUoW {
		return c.uowFactory.Create()
	})
	return commands.NewVerifyCourierCommandHandler(f)
}

func (c *CompositionRoot) CreateSetCourierAvailabilityCommandHandler() commands.SetCourierAvailabilityCommandHandler {
	var f commands.CourierUoWFactory = FuncCourierUoWFactory(func() commands.CourierUoW {
		return c.uowFactory.Create()
	})
	return commands.NewSetCourierAvailabilityCommandHandler(f)
}

func (c *CompositionRoot) CreateUpdateCourierLocationCommandHandler() commands.UpdateCourierLocationCommandHandler {
	var f commands.CourierUoWFactory = FuncCourierUoWFactory(func() commands.CourierUoW {
		return c.uowFactory.Create()
	})
	return commands.NewUpdateCourierLocationCommandHandler(f, time.Now)
}

func (c *CompositionRoot) CreateUpdateCompanyConfigCommandHandler() commands.UpdateCompanyConfigCommandHandler {
	var f commands.CompanyUoWFactory = FuncCompanyUoWFactory(func() commands.CompanyUoW {
		return c.uowFactory.Create()
	})
	return commands.NewUpdateCompanyConfigCommandHandler(f)
}

func (c *CompositionRoot) CreateDispatchPendingOrderCommandHandler() commands.DispatchPendingOrderCommandHandler {
	var f commands.OrderCourierUoWFactory = FuncOrderCourierUoWFactory(func() commands.OrderCourierUoW {
		return c.uowFactory.Create()
	})
	return commands.NewDispatchPendingOrderCommandHandler(f, c.CreateMatchEngine(), time.Now)
}

func (c *CompositionRoot) CreateTrackOrderQueryHandler() queries.TrackOrderQueryHandler {
	return queries.NewTrackOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListEligibleOrdersQueryHandler() queries.ListEligibleOrdersQueryHandler {
	uow := c.uowFactory.Create()
	return queries.NewListEligibleOrdersQueryHandler(
		uow.OrderRepository(), uow.CourierRepository(), c.CreateMatchEngine())
}

func (c *CompositionRoot) CreateListAvailableCouriersQueryHandler() queries.ListAvailableCouriersQueryHandler {
	uow := c.uowFactory.Create()
	return queries.NewListAvailableCouriersQueryHandler(
		uow.OrderRepository(), uow.CourierRepository(), c.CreateMatchEngine(), time.Now)
}

func (c *CompositionRoot) CreateRatingStatsQueryHandler() queries.RatingStatsQueryHandler {
	uow := c.uowFactory.Create()
	return queries.NewRatingStatsQueryHandler(uow.RatingRepository(), time.Now)
}

func (c *CompositionRoot) CreateCourierStatsQueryHandler() queries.CourierStatsQueryHandler {
	uow := c.uowFactory.Create()
	return queries.NewCourierStatsQueryHandler(uow.OrderRepository(), time.Now)
}

func (c *CompositionRoot) CreateHTTPServer() *http.Server {
	return http.NewServer(
		c.CreateCreateOrderCommandHandler(),
		c.CreateAcceptOrderCommandHandler(),
		c.CreateUpdateOrderStatusCommandHandler(),
		c.CreateCancelOrderCommandHandler(),
		c.CreateSubmitRatingCommandHandler(),
		c.CreateVerifyCourierCommandHandler(),
		c.CreateSetCourierAvailabilityCommandHandler(),
		c.CreateUpdateCourierLocationCommandHandler(),
		c.CreateUpdateCompanyConfigCommandHandler(),
		c.CreateTrackOrderQueryHandler(),
		c.CreateListEligibleOrdersQueryHandler(),
		c.CreateListAvailableCouriersQueryHandler(),
		c.CreateRatingStatsQueryHandler(),
		c.CreateCourierStatsQueryHandler(),
	)
}

func (c *CompositionRoot) CreateJobManager(schedule string, logger *slog.Logger) *jobs.JobManager {
	return jobs.NewJobManager(c.CreateDispatchPendingOrderCommandHandler(), schedule, logger)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncCourierUoWFactory func() commands.CourierUoW

func (f FuncCourierUoWFactory) Create() commands.CourierUoW {
	return f()
}

type FuncCompanyUoWFactory func() commands.CompanyUoW

func (f FuncCompanyUoWFactory) Create() commands.CompanyUoW {
	return f()
}

type FuncOrderCompanyUoWFactory func() commands.OrderCompanyUoW

func (f FuncOrderCompanyUoWFactory) Create() commands.OrderCompanyUoW {
	return f()
}

type FuncOrderCourierUoWFactory func() commands.OrderCourierUoW

func (f FuncOrderCourierUoWFactory) Create() commands.OrderCourierUoW {
	return f()
}

type FuncRatingUoWFactory func() commands.RatingUoW

func (f FuncRatingUoWFactory) Create() commands.RatingUoW {
	return f()
}

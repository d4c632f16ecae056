package commands

import (
	"context"
	"log/slog"

	"dispatch/internal/core/application/usecases/relay"
	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/ports"
)

// ReportLocationCommandHandler records driver position samples. The history
// append runs outside the unit of work because location writes are
// high-frequency and must never contend with lifecycle transactions; the
// denormalized last-location cache on the driver row is updated with
// last-write-wins, so a stale retry cannot move a driver backwards.
type ReportLocationCommandHandler struct {
	uowFactory DriverUoWFactory
	history    ports.LocationHistoryRepository
	notifier   *relay.Notifier
	logger     *slog.Logger
}

// NewReportLocationCommandHandler creates a handler for location reports.
func NewReportLocationCommandHandler(
	uowFactory DriverUoWFactory,
	history ports.LocationHistoryRepository,
	notifier *relay.Notifier,
	logger *slog.Logger,
) ReportLocationCommandHandler {
	return ReportLocationCommandHandler{
		uowFactory: uowFactory,
		history:    history,
		notifier:   notifier,
		logger:     logger,
	}
}

// Handle processes the location report. The trail append is best effort: a
// failure is logged and the cache upsert still runs, because the live
// position matters more than a complete trail. The cache and the relay event
// only advance when the sample is newer than the cached position.
func (h ReportLocationCommandHandler) Handle(ctx context.Context, command ReportLocationCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	point, err := kernel.NewGeoPoint(command.Latitude(), command.Longitude())
	if err != nil {
		return err
	}
	sample, err := driver.NewLocationSample(point, command.Accuracy(), command.RecordedAt())
	if err != nil {
		return err
	}

	if err = h.history.Append(ctx, command.DriverID(), sample); err != nil {
		h.logger.WarnContext(ctx, "location history append failed",
			slog.String("driver_id", command.DriverID().String()),
			slog.Any("error", err),
		)
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	driverRepo := uow.DriverRepository()

	aggregate, err := driverRepo.Get(ctx, command.DriverID())
	if err != nil {
		return err
	}

	statusRead := aggregate.Status()
	applied, err := aggregate.RecordLocation(sample)
	if err != nil {
		return err
	}
	if !applied {
		return uow.Rollback(ctx)
	}

	if err = driverRepo.Update(ctx, aggregate, statusRead); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.notifier.NotifyDriverLocation(ctx, aggregate, sample)
	return nil
}

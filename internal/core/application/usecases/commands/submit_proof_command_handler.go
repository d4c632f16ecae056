package commands

import (
	"context"
	"time"

	"dispatch/internal/core/application/usecases/relay"
	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/services"
)

// proofHistoryNote is the note written on the history entry produced by an
// accepted proof submission.
const proofHistoryNote = "proof of delivery submitted"

// SubmitProofCommandHandler records delivery-confirmation evidence and
// completes the delivery in one transaction: the proof row, the transition
// to delivered, the driver release and the history entry commit together.
// The unique proof-per-order constraint makes duplicate submissions fail.
type SubmitProofCommandHandler struct {
	uowFactory ProofUoWFactory
	dispatcher services.Dispatcher
	notifier   *relay.Notifier
}

// NewSubmitProofCommandHandler creates a handler for proof submission.
func NewSubmitProofCommandHandler(uowFactory ProofUoWFactory, notifier *relay.Notifier) SubmitProofCommandHandler {
	return SubmitProofCommandHandler{
		uowFactory: uowFactory,
		dispatcher: services.NewDispatcher(),
		notifier:   notifier,
	}
}

// Handle processes the proof submission and returns the id of the recorded
// proof. The submitting driver must be the one assigned to the order, and
// the order must be picked_up or in_transit; both are enforced by the
// aggregates. Proof from a picked_up order is accepted even though the
// in_transit step was never reported.
func (h SubmitProofCommandHandler) Handle(ctx context.Context, command SubmitProofCommand) (kernel.UUID, error) {
	if err := command.Validate(); err != nil {
		return kernel.UUID{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return kernel.UUID{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	driverRepo := uow.DriverRepository()

	aggregate, err := orderRepo.Get(ctx, command.OrderID())
	if err != nil {
		return kernel.UUID{}, err
	}

	if !aggregate.IsAssignedTo(command.DriverID()) {
		return kernel.UUID{}, ErrDriverNotAssignedToOrder
	}

	assignee, err := driverRepo.Get(ctx, command.DriverID())
	if err != nil {
		return kernel.UUID{}, err
	}

	statusRead := aggregate.Status()
	now := time.Now().UTC()

	proof, err := order.NewProofOfDelivery(
		kernel.NewUUID(), aggregate.ID(), assignee.ID(),
		command.ProofType(), command.Payload(), command.Notes(), command.Location(), now,
	)
	if err != nil {
		return kernel.UUID{}, err
	}
	if err = uow.ProofOfDeliveryRepository().Add(ctx, proof); err != nil {
		return kernel.UUID{}, err
	}

	released, err := h.dispatcher.Complete(aggregate, assignee, now)
	if err != nil {
		return kernel.UUID{}, err
	}

	if err = orderRepo.Update(ctx, aggregate, statusRead); err != nil {
		return kernel.UUID{}, err
	}
	if released {
		if err = driverRepo.Update(ctx, assignee, driver.Busy); err != nil {
			return kernel.UUID{}, err
		}
	}

	previous := statusRead
	note := proofHistoryNote
	change, err := order.NewStatusChange(
		kernel.NewUUID(), aggregate.ID(), &previous, aggregate.Status(),
		command.DriverID(), true, &note, now,
	)
	if err != nil {
		return kernel.UUID{}, err
	}
	if err = uow.StatusHistoryRepository().Append(ctx, change); err != nil {
		return kernel.UUID{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return kernel.UUID{}, err
	}

	h.notifier.NotifyProofOfDelivery(ctx, proof)
	h.notifier.NotifyStatusChange(ctx, aggregate, previous)
	return proof.ID(), nil
}

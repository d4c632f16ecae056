package commands_test

import (
	"context"
	"log/slog"
	"time"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/relay"
	"dispatch/internal/core/domain/model/customer"
	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order, expected order.Status) error {
	args := m.Called(ctx, o, expected)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

type MockDriverRepository struct{ mock.Mock }

func (m *MockDriverRepository) Add(ctx context.Context, d *driver.Driver) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *MockDriverRepository) Update(ctx context.Context, d *driver.Driver, expected driver.Status) error {
	args := m.Called(ctx, d, expected)
	return args.Error(0)
}

func (m *MockDriverRepository) Get(ctx context.Context, id kernel.UUID) (*driver.Driver, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*driver.Driver), args.Error(1)
}

func (m *MockDriverRepository) GetByEmail(ctx context.Context, email string) (*driver.Driver, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*driver.Driver), args.Error(1)
}

func (m *MockDriverRepository) GetAllByStatus(ctx context.Context, status driver.Status) ([]*driver.Driver, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*driver.Driver), args.Error(1)
}

func (m *MockDriverRepository) GetAvailableStale(ctx context.Context, cutoff time.Time) ([]*driver.Driver, error) {
	args := m.Called(ctx, cutoff)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*driver.Driver), args.Error(1)
}

type MockCustomerRepository struct{ mock.Mock }

func (m *MockCustomerRepository) Add(ctx context.Context, c *customer.Customer) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCustomerRepository) Get(ctx context.Context, id kernel.UUID) (*customer.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*customer.Customer), args.Error(1)
}

type MockHistoryRepository struct{ mock.Mock }

func (m *MockHistoryRepository) Append(ctx context.Context, change *order.StatusChange) error {
	args := m.Called(ctx, change)
	return args.Error(0)
}

func (m *MockHistoryRepository) ListByOrder(ctx context.Context, orderID kernel.UUID) ([]*order.StatusChange, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.StatusChange), args.Error(1)
}

type MockProofRepository struct{ mock.Mock }

func (m *MockProofRepository) Add(ctx context.Context, proof *order.ProofOfDelivery) error {
	args := m.Called(ctx, proof)
	return args.Error(0)
}

func (m *MockProofRepository) GetByOrder(ctx context.Context, orderID kernel.UUID) (*order.ProofOfDelivery, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.ProofOfDelivery), args.Error(1)
}

type MockLocationHistoryRepository struct{ mock.Mock }

func (m *MockLocationHistoryRepository) Append(ctx context.Context, driverID kernel.UUID, sample driver.LocationSample) error {
	args := m.Called(ctx, driverID, sample)
	return args.Error(0)
}

func (m *MockLocationHistoryRepository) ListByDriver(ctx context.Context, driverID kernel.UUID, limit int) ([]driver.LocationSample, error) {
	args := m.Called(ctx, driverID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]driver.LocationSample), args.Error(1)
}

// MockUoW satisfies every narrowed unit of work interface in this package.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) DriverRepository() ports.DriverRepository {
	args := m.Called()
	return args.Get(0).(ports.DriverRepository)
}

func (m *MockUoW) CustomerRepository() ports.CustomerRepository {
	args := m.Called()
	return args.Get(0).(ports.CustomerRepository)
}

func (m *MockUoW) StatusHistoryRepository() ports.StatusHistoryRepository {
	args := m.Called()
	return args.Get(0).(ports.StatusHistoryRepository)
}

func (m *MockUoW) ProofOfDeliveryRepository() ports.ProofOfDeliveryRepository {
	args := m.Called()
	return args.Get(0).(ports.ProofOfDeliveryRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockLifecycleUoWFactory struct{ mock.Mock }

func (m *MockLifecycleUoWFactory) Create() commands.LifecycleUoW {
	args := m.Called()
	return args.Get(0).(commands.LifecycleUoW)
}

type MockCreateOrderUoWFactory struct{ mock.Mock }

func (m *MockCreateOrderUoWFactory) Create() commands.CreateOrderUoW {
	args := m.Called()
	return args.Get(0).(commands.CreateOrderUoW)
}

type MockProofUoWFactory struct{ mock.Mock }

func (m *MockProofUoWFactory) Create() commands.ProofUoW {
	args := m.Called()
	return args.Get(0).(commands.ProofUoW)
}

type MockDriverUoWFactory struct{ mock.Mock }

func (m *MockDriverUoWFactory) Create() commands.DriverUoW {
	args := m.Called()
	return args.Get(0).(commands.DriverUoW)
}

type noopPublisher struct{}

func (noopPublisher) Publish(context.Context, string, ports.Event) error {
	return nil
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func newTestNotifier() *relay.Notifier {
	return relay.NewNotifier(noopPublisher{}, newTestLogger())
}

func mustMoney(amount float64) kernel.Money {
	m, err := kernel.NewMoneyFromFloat(amount)
	if err != nil {
		panic(err)
	}
	return m
}

func newPendingOrder(orderID, customerID kernel.UUID) *order.Order {
	item, err := order.NewItem("Box", 1, mustMoney(10.00))
	if err != nil {
		panic(err)
	}
	o, err := order.NewOrder(orderID, customerID, "1 Main St", nil, nil,
		[]order.Item{item}, mustMoney(10.00), time.Now())
	if err != nil {
		panic(err)
	}
	return o
}

func newAvailableDriver(driverID kernel.UUID) *driver.Driver {
	d, err := driver.NewDriver(driverID, "Sam Porter", "sam@example.com", "", "$2a$10$hash", time.Now())
	if err != nil {
		panic(err)
	}
	if err = d.ChangeStatus(driver.Available, time.Now()); err != nil {
		panic(err)
	}
	return d
}

func newBusyDriver(driverID, orderID kernel.UUID) *driver.Driver {
	d := newAvailableDriver(driverID)
	if err := d.TakeOrder(orderID, time.Now()); err != nil {
		panic(err)
	}
	return d
}

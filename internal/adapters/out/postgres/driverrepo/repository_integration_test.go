package driverrepo_test

import (
	"context"
	"testing"
	"time"

	"dispatch/internal/adapters/out/postgres/driverrepo"
	"dispatch/internal/core/domain/model/driver"
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

// DriverRepositoryIntegrationTestSuite provides integration tests for
// DriverRepository using PostgreSQL containers.
type DriverRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *driverrepo.GormDriverRepository
	tracker    *MockAggregateTracker
}

func (suite *DriverRepositoryIntegrationTestSuite) SetupSuite() {
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

	// TranslateError turns the unique-index violation into gorm.ErrDuplicatedKey
	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{TranslateError: true})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&driverrepo.DriverDTO{}))
}

func (suite *DriverRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE drivers").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.repository = driverrepo.NewGormDriverRepository(suite.db, suite.tracker)
}

func (suite *DriverRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *DriverRepositoryIntegrationTestSuite) TestAdd_ValidDriver_Success() {
	ctx := context.Background()

	testDriver := suite.createTestDriver("marco@example.com")
	suite.tracker.On("TrackAggregate", testDriver.ID(), testDriver).Once()

	err := suite.repository.Add(ctx, testDriver)
	suite.Require().NoError(err)

	retrievedDriver, err := suite.repository.Get(ctx, testDriver.ID())
	suite.Require().NoError(err)
	suite.Equal(testDriver.ID(), retrievedDriver.ID())
	suite.Equal("marco@example.com", retrievedDriver.Email())
	suite.Equal(driver.Offline, retrievedDriver.Status())
	suite.Nil(retrievedDriver.ActiveOrderID())
	suite.Nil(retrievedDriver.LastLocation())

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *DriverRepositoryIntegrationTestSuite) TestAdd_DuplicateEmail_ReturnsInvalidOperation() {
	ctx := context.Background()

	first := suite.createTestDriver("marco@example.com")
	suite.tracker.On("TrackAggregate", first.ID(), first).Once()
	err := suite.repository.Add(ctx, first)
	suite.Require().NoError(err)

	second := suite.createTestDriver("marco@example.com")
	err = suite.repository.Add(ctx, second)
	suite.Require().Error(err)
	suite.Require().ErrorIs(err, errs.ErrInvalidOperation)

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *DriverRepositoryIntegrationTestSuite) TestGetByEmail() {
	ctx := context.Background()

	testDriver := suite.createTestDriver("lena@example.com")
	suite.tracker.On("TrackAggregate", testDriver.ID(), testDriver).Once()
	err := suite.repository.Add(ctx, testDriver)
	suite.Require().NoError(err)

	retrievedDriver, err := suite.repository.GetByEmail(ctx, "lena@example.com")
	suite.Require().NoError(err)
	suite.Equal(testDriver.ID(), retrievedDriver.ID())

	_, err = suite.repository.GetByEmail(ctx, "nobody@example.com")
	suite.Require().Error(err)

	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)
}

func (suite *DriverRepositoryIntegrationTestSuite) TestUpdate_GuardedByReadStatus_Success() {
	ctx := context.Background()

	testDriver := suite.createTestDriver("marco@example.com")
	suite.tracker.On("TrackAggregate", testDriver.ID(), testDriver).Times(3)
	err := suite.repository.Add(ctx, testDriver)
	suite.Require().NoError(err)

	err = testDriver.ChangeStatus(driver.Available, time.Now().UTC())
	suite.Require().NoError(err)
	err = suite.repository.Update(ctx, testDriver, driver.Offline)
	suite.Require().NoError(err)

	orderID := kernel.NewUUID()
	err = testDriver.TakeOrder(orderID, time.Now().UTC())
	suite.Require().NoError(err)
	err = suite.repository.Update(ctx, testDriver, driver.Available)
	suite.Require().NoError(err)

	retrievedDriver, err := suite.repository.Get(ctx, testDriver.ID())
	suite.Require().NoError(err)
	suite.Equal(driver.Busy, retrievedDriver.Status())
	suite.Require().NotNil(retrievedDriver.ActiveOrderID())
	suite.True(orderID.IsEqual(*retrievedDriver.ActiveOrderID()))

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *DriverRepositoryIntegrationTestSuite) TestUpdate_StaleReadStatus_ReturnsDriverUnavailable() {
	ctx := context.Background()

	testDriver := suite.createAvailableDriver("marco@example.com")
	suite.tracker.On("TrackAggregate", testDriver.ID(), testDriver).Twice()
	err := suite.repository.Add(ctx, testDriver)
	suite.Require().NoError(err)

	// First dispatcher wins the driver
	err = testDriver.TakeOrder(kernel.NewUUID(), time.Now().UTC())
	suite.Require().NoError(err)
	err = suite.repository.Update(ctx, testDriver, driver.Available)
	suite.Require().NoError(err)

	// Second dispatcher read the driver while it was still available
	staleDriver := suite.restoreAvailableDriver(testDriver)
	err = staleDriver.TakeOrder(kernel.NewUUID(), time.Now().UTC())
	suite.Require().NoError(err)

	err = suite.repository.Update(ctx, staleDriver, driver.Available)
	suite.Require().Error(err)
	suite.Require().ErrorIs(err, errs.ErrDriverUnavailable)

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *DriverRepositoryIntegrationTestSuite) TestUpdate_LocationCache_RoundTrip() {
	ctx := context.Background()

	testDriver := suite.createAvailableDriver("marco@example.com")
	suite.tracker.On("TrackAggregate", testDriver.ID(), testDriver).Twice()
	err := suite.repository.Add(ctx, testDriver)
	suite.Require().NoError(err)

	point, err := kernel.NewGeoPoint(52.52, 13.405)
	suite.Require().NoError(err)
	accuracy := 12.5
	sample, err := driver.NewLocationSample(point, &accuracy, time.Now().UTC().Truncate(time.Microsecond))
	suite.Require().NoError(err)

	applied, err := testDriver.RecordLocation(sample)
	suite.Require().NoError(err)
	suite.True(applied)

	err = suite.repository.Update(ctx, testDriver, driver.Available)
	suite.Require().NoError(err)

	retrievedDriver, err := suite.repository.Get(ctx, testDriver.ID())
	suite.Require().NoError(err)
	suite.Require().NotNil(retrievedDriver.LastLocation())
	suite.InDelta(52.52, retrievedDriver.LastLocation().Point().Latitude(), 1e-9)
	suite.InDelta(13.405, retrievedDriver.LastLocation().Point().Longitude(), 1e-9)
	suite.Require().NotNil(retrievedDriver.LastLocation().Accuracy())
	suite.InDelta(accuracy, *retrievedDriver.LastLocation().Accuracy(), 1e-9)

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *DriverRepositoryIntegrationTestSuite) TestGetAllByStatus() {
	ctx := context.Background()

	available := suite.createAvailableDriver("a@example.com")
	offline := suite.createTestDriver("b@example.com")

	suite.tracker.On("TrackAggregate", mock.AnythingOfType("kernel.UUID"), mock.Anything).Twice()
	suite.Require().NoError(suite.repository.Add(ctx, available))
	suite.Require().NoError(suite.repository.Add(ctx, offline))

	availableDrivers, err := suite.repository.GetAllByStatus(ctx, driver.Available)
	suite.Require().NoError(err)
	suite.Require().Len(availableDrivers, 1)
	suite.Equal(available.ID(), availableDrivers[0].ID())

	offlineDrivers, err := suite.repository.GetAllByStatus(ctx, driver.Offline)
	suite.Require().NoError(err)
	suite.Require().Len(offlineDrivers, 1)
	suite.Equal(offline.ID(), offlineDrivers[0].ID())

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *DriverRepositoryIntegrationTestSuite) TestGetAvailableStale() {
	ctx := context.Background()
	now := time.Now().UTC()
	cutoff := now.Add(-5 * time.Minute)

	// Reported recently, must not be swept
	fresh := suite.createAvailableDriverWithReport("fresh@example.com", now.Add(-time.Minute))
	// Reported before the cutoff
	stale := suite.createAvailableDriverWithReport("stale@example.com", now.Add(-time.Hour))
	// Never reported, last touched before the cutoff
	silent := suite.restoreDriverWithStatus("silent@example.com", driver.Available, now.Add(-time.Hour))
	// Offline drivers are never swept
	offline := suite.restoreDriverWithStatus("offline@example.com", driver.Offline, now.Add(-time.Hour))

	suite.tracker.On("TrackAggregate", mock.AnythingOfType("kernel.UUID"), mock.Anything).Times(4)
	for _, d := range []*driver.Driver{fresh, stale, silent, offline} {
		suite.Require().NoError(suite.repository.Add(ctx, d))
	}

	staleDrivers, err := suite.repository.GetAvailableStale(ctx, cutoff)
	suite.Require().NoError(err)
	suite.Require().Len(staleDrivers, 2)

	staleIDs := make(map[string]bool, len(staleDrivers))
	for _, d := range staleDrivers {
		staleIDs[d.ID().String()] = true
	}
	suite.True(staleIDs[stale.ID().String()])
	suite.True(staleIDs[silent.ID().String()])

	suite.tracker.AssertExpectations(suite.T())
}

// createTestDriver creates a freshly registered (offline) driver.
func (suite *DriverRepositoryIntegrationTestSuite) createTestDriver(email string) *driver.Driver {
	testDriver, err := driver.NewDriver(
		kernel.NewUUID(), "Marco Rossi", email, "+4915112345678",
		"$2a$10$abcdefghijklmnopqrstuv", time.Now().UTC(),
	)
	suite.Require().NoError(err)
	return testDriver
}

// createAvailableDriver creates a driver that already went on shift.
func (suite *DriverRepositoryIntegrationTestSuite) createAvailableDriver(email string) *driver.Driver {
	testDriver := suite.createTestDriver(email)
	suite.Require().NoError(testDriver.ChangeStatus(driver.Available, time.Now().UTC()))
	return testDriver
}

// createAvailableDriverWithReport creates an available driver whose last
// location report carries the given timestamp.
func (suite *DriverRepositoryIntegrationTestSuite) createAvailableDriverWithReport(
	email string, recordedAt time.Time,
) *driver.Driver {
	testDriver := suite.createAvailableDriver(email)

	point, err := kernel.NewGeoPoint(48.137, 11.576)
	suite.Require().NoError(err)
	sample, err := driver.NewLocationSample(point, nil, recordedAt)
	suite.Require().NoError(err)

	applied, err := testDriver.RecordLocation(sample)
	suite.Require().NoError(err)
	suite.Require().True(applied)
	return testDriver
}

// restoreDriverWithStatus reconstructs a driver with a given status and
// updated-at timestamp, as if loaded from an old row.
func (suite *DriverRepositoryIntegrationTestSuite) restoreDriverWithStatus(
	email string, status driver.Status, updatedAt time.Time,
) *driver.Driver {
	testDriver, err := driver.RestoreDriver(
		kernel.NewUUID(), "Marco Rossi", email, "+4915112345678",
		"$2a$10$abcdefghijklmnopqrstuv", status, nil, nil,
		updatedAt, updatedAt,
	)
	suite.Require().NoError(err)
	return testDriver
}

// restoreAvailableDriver rebuilds the driver as a second reader saw it
// before the winning update.
func (suite *DriverRepositoryIntegrationTestSuite) restoreAvailableDriver(original *driver.Driver) *driver.Driver {
	staleDriver, err := driver.RestoreDriver(
		original.ID(), original.Name(), original.Email(), original.Phone(),
		original.PasswordHash(), driver.Available, nil, nil,
		original.CreatedAt(), original.CreatedAt(),
	)
	suite.Require().NoError(err)
	return staleDriver
}

func TestDriverRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(DriverRepositoryIntegrationTestSuite))
}

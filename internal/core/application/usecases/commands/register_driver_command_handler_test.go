package commands_test

import (
	"testing"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockPasswordHasher struct{ mock.Mock }

func (m *MockPasswordHasher) Hash(password string) (string, error) {
	args := m.Called(password)
	return args.String(0), args.Error(1)
}

func (m *MockPasswordHasher) Compare(hash, password string) bool {
	args := m.Called(hash, password)
	return args.Bool(0)
}

func TestRegisterDriverCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	driverID := kernel.NewUUID()
	cmd, err := commands.NewRegisterDriverCommand(driverID, "Sam Porter", "sam@example.com", "+15550100", "hunter2hunter2")
	require.NoError(t, err)

	hasher := new(MockPasswordHasher)
	hasher.On("Hash", "hunter2hunter2").Return("$2a$10$hash", nil).Once()

	driverRepo := new(MockDriverRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("DriverRepository").Return(driverRepo).Once(),
		driverRepo.On("Add", ctx, mock.MatchedBy(func(d *driver.Driver) bool {
			return d.ID().IsEqual(driverID) && d.Status() == driver.Offline && d.PasswordHash() == "$2a$10$hash"
		})).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockDriverUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewRegisterDriverCommandHandler(factory, hasher)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	hasher.AssertExpectations(t)
	driverRepo.AssertExpectations(t)
}

func TestRegisterDriverCommandHandler_Handle_DuplicateEmail(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewRegisterDriverCommand(kernel.NewUUID(), "Sam", "sam@example.com", "", "hunter2hunter2")
	require.NoError(t, err)

	hasher := new(MockPasswordHasher)
	hasher.On("Hash", "hunter2hunter2").Return("$2a$10$hash", nil).Once()

	duplicate := errs.NewInvalidOperationError("register driver", "email already registered")

	driverRepo := new(MockDriverRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("DriverRepository").Return(driverRepo).Once(),
		driverRepo.On("Add", ctx, mock.AnythingOfType("*driver.Driver")).Return(duplicate).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockDriverUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewRegisterDriverCommandHandler(factory, hasher)
	err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrInvalidOperation)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestNewRegisterDriverCommand_ShortPassword(t *testing.T) {
	_, err := commands.NewRegisterDriverCommand(kernel.NewUUID(), "Sam", "sam@example.com", "", "short")

	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

package service

import (
	"context"

	"churnsynth/events"
	"churnsynth/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockGenerationRunRepository is a mock implementation of GenerationRunRepository
type MockGenerationRunRepository struct {
	mock.Mock
}

func (m *MockGenerationRunRepository) Create(ctx context.Context, run *models.GenerationRun) error {
	args := m.Called(ctx, run)
	return args.Error(0)
}

func (m *MockGenerationRunRepository) Delete(ctx context.Context, runID uuid.UUID) error {
	args := m.Called(ctx, runID)
	return args.Error(0)
}

func (m *MockGenerationRunRepository) CountRows(ctx context.Context, runID uuid.UUID) (models.RowCounts, error) {
	args := m.Called(ctx, runID)
	return args.Get(0).(models.RowCounts), args.Error(1)
}

// MockCustomerRepository is a mock implementation of CustomerRepository
type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) BulkInsert(ctx context.Context, runID uuid.UUID, customers []models.Customer) (int64, error) {
	args := m.Called(ctx, runID, customers)
	return args.Get(0).(int64), args.Error(1)
}

// MockLabelRepository is a mock implementation of LabelRepository
type MockLabelRepository struct {
	mock.Mock
}

func (m *MockLabelRepository) BulkInsert(ctx context.Context, runID uuid.UUID, labels []models.Label) (int64, error) {
	args := m.Called(ctx, runID, labels)
	return args.Get(0).(int64), args.Error(1)
}

// MockPolicyRepository is a mock implementation of PolicyRepository
type MockPolicyRepository struct {
	mock.Mock
}

func (m *MockPolicyRepository) BulkInsert(ctx context.Context, runID uuid.UUID, policies []models.Policy) (int64, error) {
	args := m.Called(ctx, runID, policies)
	return args.Get(0).(int64), args.Error(1)
}

// MockTransactionRepository is a mock implementation of TransactionRepository
type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) BulkInsert(ctx context.Context, runID uuid.UUID, transactions []models.Transaction) (int64, error) {
	args := m.Called(ctx, runID, transactions)
	return args.Get(0).(int64), args.Error(1)
}

// MockEngagementRepository is a mock implementation of EngagementRepository
type MockEngagementRepository struct {
	mock.Mock
}

func (m *MockEngagementRepository) BulkInsert(ctx context.Context, runID uuid.UUID, engagements []models.Engagement) (int64, error) {
	args := m.Called(ctx, runID, engagements)
	return args.Get(0).(int64), args.Error(1)
}

// MockTransactionalPublisher is a mock implementation of TransactionalPublisher
type MockTransactionalPublisher struct {
	mock.Mock
}

func (m *MockTransactionalPublisher) Publish(event events.Event) {
	m.Called(event)
}

// MockEventPublisher is a mock implementation of EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, event events.Event) {
	m.Called(ctx, event)
}

// MockUnitOfWork hands out the embedded mock repositories
type MockUnitOfWork struct {
	mock.Mock
	Runs         *MockGenerationRunRepository
	Customers    *MockCustomerRepository
	Labels       *MockLabelRepository
	Policies     *MockPolicyRepository
	Transactions *MockTransactionRepository
	Engagements  *MockEngagementRepository
	Events       *MockTransactionalPublisher
}

// NewMockUnitOfWork creates a unit of work whose repositories are fresh mocks
func NewMockUnitOfWork() *MockUnitOfWork {
	return &MockUnitOfWork{
		Runs:         new(MockGenerationRunRepository),
		Customers:    new(MockCustomerRepository),
		Labels:       new(MockLabelRepository),
		Policies:     new(MockPolicyRepository),
		Transactions: new(MockTransactionRepository),
		Engagements:  new(MockEngagementRepository),
		Events:       new(MockTransactionalPublisher),
	}
}

func (m *MockUnitOfWork) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUnitOfWork) Commit() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockUnitOfWork) Rollback() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockUnitOfWork) GenerationRunRepository() GenerationRunRepository {
	return m.Runs
}

func (m *MockUnitOfWork) CustomerRepository() CustomerRepository {
	return m.Customers
}

func (m *MockUnitOfWork) LabelRepository() LabelRepository {
	return m.Labels
}

func (m *MockUnitOfWork) PolicyRepository() PolicyRepository {
	return m.Policies
}

func (m *MockUnitOfWork) TransactionRepository() TransactionRepository {
	return m.Transactions
}

func (m *MockUnitOfWork) EngagementRepository() EngagementRepository {
	return m.Engagements
}

func (m *MockUnitOfWork) EventBus() TransactionalPublisher {
	return m.Events
}

// MockUnitOfWorkFactory always returns the same unit of work
type MockUnitOfWorkFactory struct {
	UnitOfWork *MockUnitOfWork
}

func (f *MockUnitOfWorkFactory) Create() UnitOfWork {
	return f.UnitOfWork
}

package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"pet-sitter.com/pet-sitter/internal/constants"
	"pet-sitter.com/pet-sitter/internal/events"
	model "pet-sitter.com/pet-sitter/internal/models"
	"pet-sitter.com/pet-sitter/internal/queue"
	repository "pet-sitter.com/pet-sitter/internal/repositories"
)

const mockLease = time.Minute

// mockJobQueue is an in-memory job queue for testing. Like the redis client
// it refuses to run once ctx is done, and claiming leases a job instead of
// removing it.
type mockJobQueue struct {
	mu          sync.Mutex
	jobs        map[string]scheduledJob
	scheduleErr error
	canceled    []string
}

type scheduledJob struct {
	job   queue.CompletionJob
	runAt time.Time
}

func newMockJobQueue() *mockJobQueue {
	return &mockJobQueue{jobs: make(map[string]scheduledJob)}
}

func (m *mockJobQueue) Schedule(ctx context.Context, job queue.CompletionJob, runAt time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.scheduleErr != nil {
		return m.scheduleErr
	}
	m.jobs[job.OrderID] = scheduledJob{job: job, runAt: runAt}
	return nil
}

func (m *mockJobQueue) Cancel(ctx context.Context, orderID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.jobs, orderID)
	m.canceled = append(m.canceled, orderID)
	return nil
}

func (m *mockJobQueue) ClaimDue(ctx context.Context, now time.Time, limit int) ([]queue.CompletionJob, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	var due []queue.CompletionJob
	for id, s := range m.jobs {
		if len(due) >= limit {
			break
		}
		if !s.runAt.After(now) {
			due = append(due, s.job)
			m.jobs[id] = scheduledJob{job: s.job, runAt: now.Add(mockLease)}
		}
	}
	return due, nil
}

func (m *mockJobQueue) get(orderID string) (scheduledJob, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.jobs[orderID]
	return s, ok
}

func (m *mockJobQueue) size() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.jobs)
}

// mockPublisher records every published event
type mockPublisher struct {
	mu     sync.Mutex
	events []events.OrderStatusChanged
}

func (m *mockPublisher) OrderStatusChanged(ctx context.Context, event events.OrderStatusChanged) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.events = append(m.events, event)
}

func (m *mockPublisher) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.events)
}

func (m *mockPublisher) last() events.OrderStatusChanged {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.events[len(m.events)-1]
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}

	if err := db.AutoMigrate(model.All()...); err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}

	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	return db
}

type fixture struct {
	db        *gorm.DB
	store     *repository.Store
	jobs      *mockJobQueue
	publisher *mockPublisher
	orders    *OrderService
	now       time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db := setupTestDB(t)
	f := &fixture{
		db:        db,
		store:     repository.NewStore(db),
		jobs:      newMockJobQueue(),
		publisher: &mockPublisher{},
		now:       time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
	}
	f.orders = NewOrderService(f.store, f.jobs, f.publisher, 7*24*time.Hour)
	f.orders.now = func() time.Time { return f.now }
	return f
}

func (f *fixture) user(t *testing.T, name string) *model.User {
	t.Helper()

	u := &model.User{
		ID:           model.NewID(),
		Email:        strings.ToLower(name) + "@example.com",
		Name:         name,
		PasswordHash: "x",
	}
	if err := f.store.Users.Create(context.Background(), u); err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	return u
}

func (f *fixture) task(t *testing.T, ownerID string) *model.Task {
	t.Helper()

	task := &model.Task{
		ID:          model.NewID(),
		OwnerUserID: ownerID,
		Title:       "Walk Rex",
		ServiceType: constants.ServiceDogWalking,
		Price:       2500,
		Status:      constants.TaskStatusNone,
		Public:      constants.TaskPublicOpen,
		StartAt:     f.now.Add(24 * time.Hour),
		EndAt:       f.now.Add(26 * time.Hour),
	}
	if err := f.store.Tasks.Create(context.Background(), task); err != nil {
		t.Fatalf("failed to create task: %v", err)
	}
	return task
}

func (f *fixture) apply(t *testing.T, sitterID, taskID string) *model.Order {
	t.Helper()

	order, err := f.orders.CreateOrder(context.Background(), sitterID, taskID, "happy to help")
	if err != nil {
		t.Fatalf("failed to create order: %v", err)
	}
	return order
}

func (f *fixture) reloadTask(t *testing.T, id string) *model.Task {
	t.Helper()

	task, err := f.store.Tasks.FindByID(context.Background(), id)
	if err != nil {
		t.Fatalf("failed to load task: %v", err)
	}
	return task
}

func (f *fixture) reloadOrder(t *testing.T, id string) *model.Order {
	t.Helper()

	order, err := f.store.Orders.FindByID(context.Background(), id)
	if err != nil {
		t.Fatalf("failed to load order: %v", err)
	}
	return order
}

// completedTask walks a fresh task through accept, pay and complete.
func (f *fixture) completedTask(t *testing.T, owner, sitter *model.User) (*model.Task, *model.Order) {
	t.Helper()

	ctx := context.Background()
	task := f.task(t, owner.ID)
	order := f.apply(t, sitter.ID, task.ID)

	if _, err := f.orders.AcceptSitter(ctx, owner.ID, order.ID, task.ID); err != nil {
		t.Fatalf("accept failed: %v", err)
	}
	if _, err := f.orders.MarkPaid(ctx, owner.ID, order.ID, task.ID); err != nil {
		t.Fatalf("mark paid failed: %v", err)
	}
	if _, err := f.orders.CompleteOrder(ctx, owner.ID, order.ID, task.ID); err != nil {
		t.Fatalf("complete failed: %v", err)
	}

	return f.reloadTask(t, task.ID), f.reloadOrder(t, order.ID)
}

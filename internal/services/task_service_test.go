package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"pet-sitter.com/pet-sitter/internal/constants"
	apperrors "pet-sitter.com/pet-sitter/internal/errors"
	repository "pet-sitter.com/pet-sitter/internal/repositories"
)

func taskInput(title string, serviceType constants.ServiceType) TaskInput {
	start := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	return TaskInput{
		Title:       title,
		ServiceType: serviceType,
		Price:       3000,
		StartAt:     start,
		EndAt:       start.Add(2 * time.Hour),
	}
}

func TestTaskService_CreateAndList(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	tasks := NewTaskService(f.store)

	owner := f.user(t, "Owner")

	walk, err := tasks.CreateTask(ctx, owner.ID, taskInput("Walk", constants.ServiceDogWalking))
	if err != nil {
		t.Fatalf("create task failed: %v", err)
	}
	if walk.Status != constants.TaskStatusNone || walk.Public != constants.TaskPublicOpen {
		t.Errorf("expected new task NULL/OPEN, got %q/%s", walk.Status, walk.Public)
	}
	if _, err := tasks.CreateTask(ctx, owner.ID, taskInput("Groom", constants.ServiceGrooming)); err != nil {
		t.Fatalf("create task failed: %v", err)
	}

	page := repository.Page{Page: 1, Limit: 10}

	all, total, err := tasks.ListOpenTasks(ctx, "", page)
	if err != nil || total != 2 || len(all) != 2 {
		t.Errorf("expected 2 open tasks, got %d/%d (%v)", len(all), total, err)
	}

	walks, total, err := tasks.ListOpenTasks(ctx, constants.ServiceDogWalking, page)
	if err != nil || total != 1 || len(walks) != 1 || walks[0].ID != walk.ID {
		t.Errorf("expected only the walk, got %d (%v)", total, err)
	}

	firstPage, total, err := tasks.ListOwnTasks(ctx, owner.ID, repository.Page{Page: 1, Limit: 1})
	if err != nil || total != 2 || len(firstPage) != 1 {
		t.Errorf("expected 1 of 2 own tasks, got %d/%d (%v)", len(firstPage), total, err)
	}
}

func TestTaskService_UpdateOnlyBeforeApplications(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	tasks := NewTaskService(f.store)

	owner := f.user(t, "Owner")
	sitter := f.user(t, "Sitter")
	stranger := f.user(t, "Stranger")

	task, err := tasks.CreateTask(ctx, owner.ID, taskInput("Walk", constants.ServiceDogWalking))
	if err != nil {
		t.Fatalf("create task failed: %v", err)
	}

	if _, err := tasks.UpdateTask(ctx, stranger.ID, task.ID, taskInput("Mine now", constants.ServiceDogWalking)); !errors.Is(err, apperrors.ErrForbidden) {
		t.Errorf("expected ErrForbidden, got %v", err)
	}

	updated, err := tasks.UpdateTask(ctx, owner.ID, task.ID, taskInput("Long walk", constants.ServiceDogWalking))
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Title != "Long walk" {
		t.Errorf("expected new title, got %q", updated.Title)
	}

	f.apply(t, sitter.ID, task.ID)

	if _, err := tasks.UpdateTask(ctx, owner.ID, task.ID, taskInput("Too late", constants.ServiceDogWalking)); !errors.Is(err, apperrors.ErrTaskNotEditable) {
		t.Errorf("expected ErrTaskNotEditable once a sitter applied, got %v", err)
	}
}

func TestTaskService_DeleteTask(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	tasks := NewTaskService(f.store)

	owner := f.user(t, "Owner")
	sitter := f.user(t, "Sitter")

	pending, _ := tasks.CreateTask(ctx, owner.ID, taskInput("Walk", constants.ServiceDogWalking))
	order := f.apply(t, sitter.ID, pending.ID)

	if err := tasks.DeleteTask(ctx, owner.ID, pending.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := tasks.GetTask(ctx, pending.ID); !errors.Is(err, apperrors.ErrTaskNotFound) {
		t.Errorf("expected deleted task to be hidden, got %v", err)
	}
	if got := f.reloadOrder(t, order.ID); got.Status != constants.OrderStatusInvalid {
		t.Errorf("expected pending application invalidated, got %s", got.Status)
	}

	engaged, _ := tasks.CreateTask(ctx, owner.ID, taskInput("Sit", constants.ServicePetSitting))
	accepted := f.apply(t, sitter.ID, engaged.ID)
	if _, err := f.orders.AcceptSitter(ctx, owner.ID, accepted.ID, engaged.ID); err != nil {
		t.Fatalf("accept failed: %v", err)
	}

	if err := tasks.DeleteTask(ctx, owner.ID, engaged.ID); !errors.Is(err, apperrors.ErrTaskNotEditable) {
		t.Errorf("expected ErrTaskNotEditable with an accepted sitter, got %v", err)
	}
}

func TestPetService_OwnerScoped(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	pets := NewPetService(f.store)
	tasks := NewTaskService(f.store)

	owner := f.user(t, "Owner")
	stranger := f.user(t, "Stranger")

	pet, err := pets.Create(ctx, owner.ID, PetInput{Name: "Rex", Species: "dog", Age: 3})
	if err != nil {
		t.Fatalf("create pet failed: %v", err)
	}

	if _, err := pets.Get(ctx, stranger.ID, pet.ID); !errors.Is(err, apperrors.ErrForbidden) {
		t.Errorf("expected ErrForbidden, got %v", err)
	}

	in := taskInput("Walk Rex", constants.ServiceDogWalking)
	in.PetID = &pet.ID
	if _, err := tasks.CreateTask(ctx, stranger.ID, in); !errors.Is(err, apperrors.ErrForbidden) {
		t.Errorf("expected ErrForbidden using someone else's pet, got %v", err)
	}
	if _, err := tasks.CreateTask(ctx, owner.ID, in); err != nil {
		t.Errorf("expected task for own pet, got %v", err)
	}

	if err := pets.Delete(ctx, owner.ID, pet.ID); err != nil {
		t.Fatalf("delete pet failed: %v", err)
	}
	list, err := pets.List(ctx, owner.ID)
	if err != nil || len(list) != 0 {
		t.Errorf("expected no pets left, got %d (%v)", len(list), err)
	}
}

func TestSitterService_Profile(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	sitters := NewSitterService(f.store, newTestCache(t))

	user := f.user(t, "Sitter")

	if _, err := sitters.CreateProfile(ctx, user.ID, SitterProfile{Bio: "cats", HourlyRate: 1500}); err != nil {
		t.Fatalf("create profile failed: %v", err)
	}
	if _, err := sitters.CreateProfile(ctx, user.ID, SitterProfile{}); !errors.Is(err, apperrors.ErrSitterExists) {
		t.Errorf("expected ErrSitterExists, got %v", err)
	}

	if _, err := sitters.GetProfile(ctx, user.ID); err != nil {
		t.Fatalf("get profile failed: %v", err)
	}
	if _, err := sitters.UpdateProfile(ctx, user.ID, SitterProfile{Bio: "cats and dogs", HourlyRate: 1800}); err != nil {
		t.Fatalf("update profile failed: %v", err)
	}

	got, err := sitters.GetProfile(ctx, user.ID)
	if err != nil {
		t.Fatalf("get profile failed: %v", err)
	}
	if got.Bio != "cats and dogs" || got.HourlyRate != 1800 {
		t.Errorf("expected the cached profile to be refreshed, got %+v", got)
	}
}

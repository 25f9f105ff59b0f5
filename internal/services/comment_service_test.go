package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	apperrors "pet-sitter.com/pet-sitter/internal/errors"
)

func TestCommentService_KeysetPagination(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	comments := NewCommentService(f.store)

	owner := f.user(t, "Owner")
	task := f.task(t, owner.ID)

	var ids []string
	for i := 0; i < 7; i++ {
		c, err := comments.CreateComment(ctx, owner.ID, task.ID, nil, fmt.Sprintf("comment %d", i))
		if err != nil {
			t.Fatalf("create comment failed: %v", err)
		}
		ids = append(ids, c.ID)
	}

	first, err := comments.ListTaskComments(ctx, task.ID, "", 4)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(first.Comments) != 4 || first.EndOfPaginationReached {
		t.Fatalf("expected 4 comments and more to come, got %d end=%v", len(first.Comments), first.EndOfPaginationReached)
	}
	for i, c := range first.Comments {
		if c.ID != ids[i] {
			t.Errorf("position %d: expected %s, got %s", i, ids[i], c.ID)
		}
	}
	if first.ContinueAfterID != ids[3] {
		t.Errorf("expected cursor %s, got %s", ids[3], first.ContinueAfterID)
	}

	second, err := comments.ListTaskComments(ctx, task.ID, first.ContinueAfterID, 4)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(second.Comments) != 3 || !second.EndOfPaginationReached {
		t.Errorf("expected last 3 comments and the end, got %d end=%v", len(second.Comments), second.EndOfPaginationReached)
	}
	if second.Comments[0].ID != ids[4] {
		t.Errorf("expected page to resume at %s, got %s", ids[4], second.Comments[0].ID)
	}
}

func TestCommentService_ExactPageReachesEnd(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	comments := NewCommentService(f.store)

	owner := f.user(t, "Owner")
	task := f.task(t, owner.ID)

	for i := 0; i < 2; i++ {
		if _, err := comments.CreateComment(ctx, owner.ID, task.ID, nil, "hi"); err != nil {
			t.Fatalf("create comment failed: %v", err)
		}
	}

	page, err := comments.ListTaskComments(ctx, task.ID, "", 2)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(page.Comments) != 2 || !page.EndOfPaginationReached {
		t.Errorf("expected 2 comments and the end, got %d end=%v", len(page.Comments), page.EndOfPaginationReached)
	}

	empty, err := comments.ListTaskComments(ctx, task.ID, page.ContinueAfterID, 2)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(empty.Comments) != 0 || !empty.EndOfPaginationReached || empty.Comments == nil {
		t.Errorf("expected an empty final page, got %+v", empty)
	}

	if _, err := comments.ListTaskComments(ctx, task.ID, "", 101); !errors.Is(err, apperrors.ErrInvalidPageSize) {
		t.Errorf("expected ErrInvalidPageSize, got %v", err)
	}
}

func TestCommentService_RepliesAndCascadeDelete(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	comments := NewCommentService(f.store)

	owner := f.user(t, "Owner")
	sitter := f.user(t, "Sitter")
	task := f.task(t, owner.ID)

	parent, err := comments.CreateComment(ctx, owner.ID, task.ID, nil, "Anyone free Saturday?")
	if err != nil {
		t.Fatalf("create comment failed: %v", err)
	}
	other, err := comments.CreateComment(ctx, owner.ID, task.ID, nil, "Rex is friendly")
	if err != nil {
		t.Fatalf("create comment failed: %v", err)
	}

	reply, err := comments.CreateComment(ctx, sitter.ID, task.ID, &parent.ID, "I am")
	if err != nil {
		t.Fatalf("create reply failed: %v", err)
	}
	if _, err := comments.CreateComment(ctx, sitter.ID, task.ID, &parent.ID, "me too"); err != nil {
		t.Fatalf("create reply failed: %v", err)
	}
	if _, err := comments.CreateComment(ctx, owner.ID, task.ID, &reply.ID, "nested"); !errors.Is(err, apperrors.ErrNestedReply) {
		t.Errorf("expected ErrNestedReply, got %v", err)
	}

	top, err := comments.ListTaskComments(ctx, task.ID, "", 10)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(top.Comments) != 2 {
		t.Errorf("replies must not appear in the top-level listing, got %d", len(top.Comments))
	}

	replies, err := comments.ListReplies(ctx, parent.ID, "", 10)
	if err != nil {
		t.Fatalf("list replies failed: %v", err)
	}
	if len(replies.Comments) != 2 || replies.Comments[0].ID != reply.ID {
		t.Errorf("expected 2 replies in order, got %+v", replies.Comments)
	}

	if _, err := comments.DeleteComment(ctx, sitter.ID, parent.ID); !errors.Is(err, apperrors.ErrForbidden) {
		t.Errorf("expected ErrForbidden for non-author, got %v", err)
	}

	deleted, err := comments.DeleteComment(ctx, owner.ID, parent.ID)
	if err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if deleted != 3 {
		t.Errorf("expected parent and 2 replies deleted, got %d", deleted)
	}

	remaining, err := f.store.Comments.CountAll(ctx, task.ID)
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if remaining != 1 {
		t.Errorf("expected only the unrelated comment to remain, got %d", remaining)
	}
	if _, err := f.store.Comments.FindByID(ctx, other.ID); err != nil {
		t.Errorf("unrelated comment must survive: %v", err)
	}
}

func TestCommentService_UpdateComment(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	comments := NewCommentService(f.store)

	owner := f.user(t, "Owner")
	stranger := f.user(t, "Stranger")
	task := f.task(t, owner.ID)

	c, err := comments.CreateComment(ctx, owner.ID, task.ID, nil, "first")
	if err != nil {
		t.Fatalf("create comment failed: %v", err)
	}

	if _, err := comments.UpdateComment(ctx, stranger.ID, c.ID, "hijack"); !errors.Is(err, apperrors.ErrForbidden) {
		t.Errorf("expected ErrForbidden, got %v", err)
	}
	if _, err := comments.UpdateComment(ctx, owner.ID, c.ID, "   "); !errors.Is(err, apperrors.ErrCommentContentRequired) {
		t.Errorf("expected ErrCommentContentRequired, got %v", err)
	}

	updated, err := comments.UpdateComment(ctx, owner.ID, c.ID, "edited")
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Content != "edited" {
		t.Errorf("expected edited content, got %q", updated.Content)
	}
}

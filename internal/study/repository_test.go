package study_test

import (
	"context"
	"testing"

	"carrel/internal/store"
	"carrel/internal/study"
	"carrel/internal/testsupport"
)

func TestGetReturnsDefaultWithoutWriting(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)
	repo := study.NewRepository(st)
	ctx := context.Background()

	deck, err := repo.Get(ctx, "ws1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if deck.ID != "study_ws1" || len(deck.Cards) != 0 {
		t.Fatalf("unexpected default deck: %+v", deck)
	}

	payload, err := st.Get(ctx, store.Study, "study_ws1")
	if err != nil {
		t.Fatalf("raw Get failed: %v", err)
	}
	if payload != nil {
		t.Fatal("default read should not persist a record")
	}
}

func TestAddAndRemoveCards(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)
	repo := study.NewRepository(st)
	ctx := context.Background()

	first, err := repo.AddCard(ctx, "ws1", "question", "answer")
	if err != nil {
		t.Fatalf("AddCard failed: %v", err)
	}
	second, err := repo.AddCard(ctx, "ws1", "q2", "a2")
	if err != nil {
		t.Fatalf("AddCard failed: %v", err)
	}

	deck, err := repo.Get(ctx, "ws1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if len(deck.Cards) != 2 || deck.Cards[0].ID != first.ID || deck.Cards[1].ID != second.ID {
		t.Fatalf("unexpected deck order: %+v", deck.Cards)
	}

	removed, err := repo.RemoveCard(ctx, "ws1", first.ID)
	if err != nil || !removed {
		t.Fatalf("RemoveCard failed: removed=%v err=%v", removed, err)
	}
	removed, err = repo.RemoveCard(ctx, "ws1", first.ID)
	if err != nil {
		t.Fatalf("second RemoveCard errored: %v", err)
	}
	if removed {
		t.Fatal("removing an absent card should report false")
	}

	deck, err = repo.Get(ctx, "ws1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if len(deck.Cards) != 1 || deck.Cards[0].ID != second.ID {
		t.Fatalf("unexpected deck after removal: %+v", deck.Cards)
	}
}

func TestMarkReviewedStampsCard(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)
	repo := study.NewRepository(st)
	ctx := context.Background()

	card, err := repo.AddCard(ctx, "ws1", "front", "back")
	if err != nil {
		t.Fatalf("AddCard failed: %v", err)
	}
	if card.ReviewedAt != nil {
		t.Fatal("new card should not be reviewed")
	}

	marked, err := repo.MarkReviewed(ctx, "ws1", card.ID)
	if err != nil || !marked {
		t.Fatalf("MarkReviewed failed: marked=%v err=%v", marked, err)
	}
	deck, err := repo.Get(ctx, "ws1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if deck.Cards[0].ReviewedAt == nil {
		t.Fatal("expected ReviewedAt set after review")
	}

	marked, err = repo.MarkReviewed(ctx, "ws1", "missing")
	if err != nil {
		t.Fatalf("MarkReviewed errored: %v", err)
	}
	if marked {
		t.Fatal("reviewing an unknown card should report false")
	}
}

func TestDecksAreWorkspaceScoped(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	st := testsupport.MustOpenStore(t, cfg)
	repo := study.NewRepository(st)
	ctx := context.Background()

	if _, err := repo.AddCard(ctx, "ws1", "q", "a"); err != nil {
		t.Fatalf("AddCard failed: %v", err)
	}
	other, err := repo.Get(ctx, "ws2")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if len(other.Cards) != 0 {
		t.Fatalf("ws2 deck should be empty, got %+v", other.Cards)
	}

	if err := repo.Clear(ctx, "ws1"); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	cleared, err := repo.Get(ctx, "ws1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if len(cleared.Cards) != 0 {
		t.Fatalf("expected empty deck after Clear, got %+v", cleared.Cards)
	}
}

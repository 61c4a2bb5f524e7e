package study

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"carrel/internal/store"
)

// Repository persists flashcard decks in the study partition.
type Repository struct {
	store *store.Store
}

func NewRepository(st *store.Store) *Repository {
	return &Repository{store: st}
}

// Get returns the workspace's deck. When no record exists the empty
// default is returned without writing anything.
func (r *Repository) Get(ctx context.Context, workspaceID string) (Deck, error) {
	payload, err := r.store.Get(ctx, store.Study, DeriveID(workspaceID))
	if err != nil {
		return Deck{}, fmt.Errorf("study: get deck: %w", err)
	}
	if payload == nil {
		return Default(workspaceID), nil
	}
	var deck Deck
	if err := json.Unmarshal(payload, &deck); err != nil {
		return Deck{}, fmt.Errorf("study: decode deck: %w", err)
	}
	return deck, nil
}

// Set replaces the workspace's deck wholesale. The record id is forced to
// the derived key so a caller cannot write under a foreign workspace.
func (r *Repository) Set(ctx context.Context, workspaceID string, deck Deck) error {
	deck.ID = DeriveID(workspaceID)
	deck.UpdatedAt = time.Now().UnixMilli()
	payload, err := json.Marshal(deck)
	if err != nil {
		return fmt.Errorf("study: encode deck: %w", err)
	}
	if err := r.store.Put(ctx, store.Study, deck.ID, payload); err != nil {
		return fmt.Errorf("study: put deck: %w", err)
	}
	return nil
}

// AddCard appends a new card to the workspace's deck and returns it.
func (r *Repository) AddCard(ctx context.Context, workspaceID, front, back string) (Card, error) {
	deck, err := r.Get(ctx, workspaceID)
	if err != nil {
		return Card{}, err
	}
	card := Card{
		ID:        uuid.NewString(),
		Front:     front,
		Back:      back,
		CreatedAt: time.Now().UnixMilli(),
	}
	deck.Cards = append(deck.Cards, card)
	if err := r.Set(ctx, workspaceID, deck); err != nil {
		return Card{}, err
	}
	return card, nil
}

// RemoveCard deletes a card by id. It reports whether a card was removed;
// removing an unknown id is not an error.
func (r *Repository) RemoveCard(ctx context.Context, workspaceID, cardID string) (bool, error) {
	deck, err := r.Get(ctx, workspaceID)
	if err != nil {
		return false, err
	}
	kept := deck.Cards[:0]
	removed := false
	for _, card := range deck.Cards {
		if card.ID == cardID {
			removed = true
			continue
		}
		kept = append(kept, card)
	}
	if !removed {
		return false, nil
	}
	deck.Cards = kept
	if err := r.Set(ctx, workspaceID, deck); err != nil {
		return false, err
	}
	return true, nil
}

// MarkReviewed stamps a card's ReviewedAt with the current time. Unknown
// ids are a no-op.
func (r *Repository) MarkReviewed(ctx context.Context, workspaceID, cardID string) (bool, error) {
	deck, err := r.Get(ctx, workspaceID)
	if err != nil {
		return false, err
	}
	for i := range deck.Cards {
		if deck.Cards[i].ID != cardID {
			continue
		}
		now := time.Now().UnixMilli()
		deck.Cards[i].ReviewedAt = &now
		if err := r.Set(ctx, workspaceID, deck); err != nil {
			return false, err
		}
		return true, nil
	}
	return false, nil
}

// Clear removes the workspace's deck record entirely.
func (r *Repository) Clear(ctx context.Context, workspaceID string) error {
	if err := r.store.Delete(ctx, store.Study, DeriveID(workspaceID)); err != nil {
		return fmt.Errorf("study: clear deck: %w", err)
	}
	return nil
}

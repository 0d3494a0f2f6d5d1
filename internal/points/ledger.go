// Package points maintient le journal de points append-only et les totaux
// cumulés par catégorie.
package points

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/MassCalmStudio/Serenity-backend/internal/logger"
	model "github.com/MassCalmStudio/Serenity-backend/internal/models"
	"github.com/MassCalmStudio/Serenity-backend/internal/utils"
)

// RecentWindow est la fenêtre des "points récents"
const RecentWindow = 7 * 24 * time.Hour

// Invalidator invalide les vues de classement en cache d'un utilisateur.
// Implémenté par leaderboard.Ranker.
type Invalidator interface {
	InvalidateUserCache(userID string)
}

// Store est la persistance du journal et des totaux
type Store interface {
	// Append écrit une ligne de journal. Les lignes ne sont jamais modifiées.
	Append(ctx context.Context, entry model.PointsLedgerEntry) error
	// AddToTotals incrémente le total et la colonne de la catégorie,
	// en créant la ligne de totaux au premier gain
	AddToTotals(ctx context.Context, userID string, pts int, sourceCategory string) error
	// GetTotals retourne les totaux, tous à zéro si l'utilisateur est inconnu
	GetTotals(ctx context.Context, userID string) (model.PointsTotals, error)
	// SumSince retourne la somme des gains depuis l'instant donné
	SumSince(ctx context.Context, userID string, since time.Time) (int, error)
	// History retourne les dernières lignes du journal, plus récentes d'abord
	History(ctx context.Context, userID string, limit int) ([]model.PointsLedgerEntry, error)
}

// Ledger est le service de points. Chaque gain réussi invalide les caches de
// classement de l'utilisateur — couplage voulu, pas optionnel.
type Ledger struct {
	store       Store
	invalidator Invalidator
}

func NewLedger(store Store, invalidator Invalidator) *Ledger {
	return &Ledger{store: store, invalidator: invalidator}
}

// AddPoints ajoute une ligne au journal et met à jour les totaux
func (l *Ledger) AddPoints(ctx context.Context, userID string, pts int, sourceCategory, description string) error {
	if err := utils.ValidateUserID(userID); err != nil {
		return err
	}
	if pts <= 0 {
		return fmt.Errorf("points must be positive, got %d", pts)
	}

	entry := model.PointsLedgerEntry{
		ID:             uuid.NewString(),
		UserID:         userID,
		Points:         pts,
		SourceCategory: sourceCategory,
		Description:    description,
	}

	if err := l.store.Append(ctx, entry); err != nil {
		logger.Error("could not append ledger entry for %s: %v", userID, err)
		return err
	}
	if err := l.store.AddToTotals(ctx, userID, pts, sourceCategory); err != nil {
		logger.Error("could not update totals for %s: %v", userID, err)
		return err
	}

	// Les vues de classement mémorisées de cet utilisateur sont périmées
	l.invalidator.InvalidateUserCache(userID)

	return nil
}

// GetTotals retourne les totaux par catégorie, les points récents étant
// recalculés sur la fenêtre glissante à chaque lecture
func (l *Ledger) GetTotals(ctx context.Context, userID string) (model.PointsTotals, error) {
	if err := utils.ValidateUserID(userID); err != nil {
		return model.PointsTotals{}, err
	}

	totals, err := l.store.GetTotals(ctx, userID)
	if err != nil {
		return model.PointsTotals{}, err
	}

	recent, err := l.store.SumSince(ctx, userID, time.Now().Add(-RecentWindow))
	if err != nil {
		return model.PointsTotals{}, err
	}
	totals.UserID = userID
	totals.RecentPoints = recent

	return totals, nil
}

// GetHistory retourne les derniers gains d'un utilisateur (journal brut)
func (l *Ledger) GetHistory(ctx context.Context, userID string, limit int) ([]model.PointsLedgerEntry, error) {
	if err := utils.ValidateUserID(userID); err != nil {
		return nil, err
	}
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return l.store.History(ctx, userID, limit)
}

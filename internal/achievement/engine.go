package achievement

import (
	"context"
	"fmt"
	"time"

	"github.com/MassCalmStudio/Serenity-backend/internal/logger"
	model "github.com/MassCalmStudio/Serenity-backend/internal/models"
	"github.com/MassCalmStudio/Serenity-backend/internal/streak"
	"github.com/MassCalmStudio/Serenity-backend/internal/utils"
)

// Granter accorde des points via le journal. Implémenté par points.Ledger.
type Granter interface {
	AddPoints(ctx context.Context, userID string, points int, sourceCategory, description string) error
}

// Engine applique les règles de succès aux événements entrants.
// Machine à états par (user, type) : not-started → in-progress → completed,
// completed étant terminal.
type Engine struct {
	store      Store
	granter    Granter
	windowDays int
}

func NewEngine(store Store, granter Granter, windowDays int) *Engine {
	if windowDays <= 0 {
		windowDays = streak.DefaultWindowDays
	}
	return &Engine{store: store, granter: granter, windowDays: windowDays}
}

// ProvisionUser crée les lignes du catalogue manquantes pour un utilisateur.
// Idempotent : les lignes existantes ne sont pas touchées.
func (e *Engine) ProvisionUser(ctx context.Context, userID string) error {
	if err := utils.ValidateUserID(userID); err != nil {
		return err
	}
	return e.store.Provision(ctx, userID, Catalog())
}

// GetUserAchievements retourne la vue API des succès d'un utilisateur.
// Un utilisateur jamais provisionné obtient une liste vide, pas une erreur.
func (e *Engine) GetUserAchievements(ctx context.Context, userID string) ([]model.UserAchievement, error) {
	if err := utils.ValidateUserID(userID); err != nil {
		return nil, err
	}

	rows, err := e.store.List(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := make([]model.UserAchievement, 0, len(rows))
	for _, p := range rows {
		ua := model.UserAchievement{
			AchievementType: p.AchievementType,
			Title:           p.Title,
			Description:     p.Description,
			Category:        p.Category,
			Progress:        p.Progress,
			Target:          p.Target,
			Points:          p.Points,
			Earned:          p.Completed,
		}
		if p.CompletedAt.Valid {
			t := p.CompletedAt.Time
			ua.DateEarned = &t
		}
		out = append(out, ua)
	}
	return out, nil
}

// Increment fait avancer la progression de amount, bornée à la cible.
// Retourne true si ce passage-ci a déclenché la complétion (et le gain de
// points). No-op si la ligne n'existe pas ou est déjà complétée.
func (e *Engine) Increment(ctx context.Context, userID string, t Type, amount int) (bool, error) {
	if amount <= 0 {
		return false, nil
	}
	progress, target, found, err := e.store.AddProgress(ctx, userID, t, amount)
	if err != nil || !found {
		return false, err
	}
	if progress < target {
		return false, nil
	}
	return e.completeAndGrant(ctx, userID, t)
}

// RaiseTo élève la progression à value (jamais en arrière), bornée à la
// cible. Chemin utilisé par les règles de streak, où la valeur est absolue.
func (e *Engine) RaiseTo(ctx context.Context, userID string, t Type, value int) (bool, error) {
	if value <= 0 {
		return false, nil
	}
	progress, target, found, err := e.store.RaiseProgress(ctx, userID, t, value)
	if err != nil || !found {
		return false, err
	}
	if progress < target {
		return false, nil
	}
	return e.completeAndGrant(ctx, userID, t)
}

// CompleteDirectly force progress = target et marque complété. Idempotent :
// un succès déjà complété ne rapporte rien de plus.
func (e *Engine) CompleteDirectly(ctx context.Context, userID string, t Type) (bool, error) {
	if err := utils.ValidateUserID(userID); err != nil {
		return false, err
	}
	return e.completeAndGrant(ctx, userID, t)
}

// completeAndGrant fait la transition conditionnelle et, si elle a eu lieu
// dans cet appel, accorde les points du succès. La mise à jour est atomique
// côté store : les points ne peuvent être accordés qu'une seule fois.
func (e *Engine) completeAndGrant(ctx context.Context, userID string, t Type) (bool, error) {
	def, ok := DefinitionFor(t)
	if !ok {
		return false, fmt.Errorf("unknown achievement type: %q", t)
	}

	transitioned, err := e.store.Complete(ctx, userID, t)
	if err != nil || !transitioned {
		return false, err
	}

	logger.Success("achievement unlocked: user=%s type=%s (+%d pts)", userID, t, def.Points)

	if err := e.granter.AddPoints(ctx, userID, def.Points, model.PointsSourceAchievement,
		fmt.Sprintf("Achievement unlocked: %s", def.Title)); err != nil {
		return true, fmt.Errorf("could not grant achievement points: %w", err)
	}
	return true, nil
}

// sessionRule est un prédicat indépendant évalué sur un événement de session.
// amount retourne la quantité de progression apportée par l'événement
// (0 : la règle ne s'applique pas).
type sessionRule struct {
	achievementType Type
	amount          func(ev model.SessionCompletedEvent) int
}

// sessionRules est la liste ordonnée fixe des règles de session.
// L'ordre suit le catalogue.
var sessionRules = []sessionRule{
	{TypeFirstSession, func(ev model.SessionCompletedEvent) int { return 1 }},
	{TypeSessions10, func(ev model.SessionCompletedEvent) int { return 1 }},
	{TypeSessions50, func(ev model.SessionCompletedEvent) int { return 1 }},
	{TypeMindfulHour, func(ev model.SessionCompletedEvent) int { return ev.Duration }},
	{TypeCalmMind, func(ev model.SessionCompletedEvent) int {
		if ev.Interruptions == 0 {
			return 1
		}
		return 0
	}},
	{TypeMoodLifter, func(ev model.SessionCompletedEvent) int {
		if ev.MoodBefore != nil && ev.MoodAfter != nil && *ev.MoodAfter > *ev.MoodBefore {
			return 1
		}
		return 0
	}},
	{TypeDeepFocus, func(ev model.SessionCompletedEvent) int {
		if ev.FocusRating != nil && *ev.FocusRating >= 4 {
			return 1
		}
		return 0
	}},
}

// HandleSessionCompleted évalue les règles sur une session terminée.
//
// Chaque règle dont la condition tient incrémente le succès correspondant ;
// la complétion étant une transition conditionnelle unique, un même événement
// ne peut pas récompenser deux fois la même règle. Les règles de streak sont
// alimentées séparément par le résultat du StreakCalculator, via le même
// chemin de progression.
func (e *Engine) HandleSessionCompleted(ctx context.Context, ev model.SessionCompletedEvent) error {
	if err := utils.ValidateUserID(ev.UserID); err != nil {
		return err
	}

	for _, rule := range sessionRules {
		amount := rule.amount(ev)
		if amount == 0 {
			continue
		}
		if _, err := e.Increment(ctx, ev.UserID, rule.achievementType, amount); err != nil {
			return err
		}
	}

	// Points de participation : chaque session terminée alimente la
	// catégorie meditation (base + 1 point par minute, plafonné à 40)
	sessionPoints := 10 + ev.Duration/60
	if sessionPoints > 40 {
		sessionPoints = 40
	}
	if err := e.granter.AddPoints(ctx, ev.UserID, sessionPoints, model.PointsSourceMeditation,
		fmt.Sprintf("Session completed (%s)", ev.SessionID)); err != nil {
		return err
	}

	// Bonus de maintien de streak, catégorie streak
	if ev.StreakMaintained != nil && *ev.StreakMaintained {
		day := 1
		if ev.StreakDay != nil && *ev.StreakDay > 0 {
			day = *ev.StreakDay
		}
		if err := e.granter.AddPoints(ctx, ev.UserID, 5, model.PointsSourceStreak,
			fmt.Sprintf("Daily streak maintained (day %d)", day)); err != nil {
			return err
		}
	}

	// Règles de streak hebdo/mensuelle depuis l'historique de la fenêtre
	if len(ev.CompletedDates) > 0 {
		if err := e.UpdateStreakAchievements(ctx, ev.UserID, ev.CompletedDates); err != nil {
			return err
		}
	}

	return nil
}

// UpdateStreakAchievements pousse la meilleure série de la fenêtre dans les
// succès week_streak et month_streak
func (e *Engine) UpdateStreakAchievements(ctx context.Context, userID string, dates []time.Time) error {
	run := streak.LongestRun(dates, e.windowDays)
	if run == 0 {
		return nil
	}
	for _, t := range []Type{TypeWeekStreak, TypeMonthStreak} {
		if _, err := e.RaiseTo(ctx, userID, t, run); err != nil {
			return err
		}
	}
	return nil
}

// HandleFriendCount applique le compte d'amitiés acceptées rapporté par le
// service social. La progression ne recule jamais si le compte baisse.
// La complétion du succès déclenche en plus un bonus en catégorie social.
func (e *Engine) HandleFriendCount(ctx context.Context, userID string, count int) error {
	if err := utils.ValidateUserID(userID); err != nil {
		return err
	}
	if count <= 0 {
		return nil
	}

	completedNow, err := e.RaiseTo(ctx, userID, TypeSocialButterfly, count)
	if err != nil {
		return err
	}
	if completedNow {
		if err := e.granter.AddPoints(ctx, userID, 50, model.PointsSourceSocial,
			"Friend milestone reached"); err != nil {
			return err
		}
	}
	return nil
}

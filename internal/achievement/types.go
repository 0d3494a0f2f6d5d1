// Package achievement implémente le moteur de succès : provisioning,
// transitions de progression idempotentes et évaluation des règles sur les
// événements de session et sociaux.
package achievement

import model "github.com/MassCalmStudio/Serenity-backend/internal/models"

// Type identifie un succès du catalogue. Le type est fermé : toute valeur
// hors des constantes ci-dessous est rejetée par DefinitionFor.
type Type string

const (
	TypeFirstSession    Type = "first_session"
	TypeSessions10      Type = "sessions_10"
	TypeSessions50      Type = "sessions_50"
	TypeMindfulHour     Type = "mindful_hour"
	TypeCalmMind        Type = "calm_mind"
	TypeMoodLifter      Type = "mood_lifter"
	TypeDeepFocus       Type = "deep_focus"
	TypeWeekStreak      Type = "week_streak"
	TypeMonthStreak     Type = "month_streak"
	TypeSocialButterfly Type = "social_butterfly"
)

// Definition décrit un succès : cible, points accordés à la complétion,
// catégorie et textes affichés
type Definition struct {
	Type        Type
	Target      int
	Points      int
	Category    string
	Title       string
	Description string
}

// catalog est la liste ordonnée des succès. L'ordre est aussi l'ordre
// d'évaluation des règles sur un événement de session.
var catalog = []Definition{
	{TypeFirstSession, 1, 50, model.CategoryMeditation, "First Steps", "Complete your first meditation session"},
	{TypeSessions10, 10, 100, model.CategoryMeditation, "Dedicated Mind", "Complete 10 meditation sessions"},
	{TypeSessions50, 50, 250, model.CategoryMeditation, "Meditation Master", "Complete 50 meditation sessions"},
	{TypeMindfulHour, 3600, 150, model.CategoryMeditation, "Mindful Hour", "Meditate for a total of 60 minutes"},
	{TypeCalmMind, 10, 150, model.CategoryMeditation, "Calm Mind", "Complete 10 sessions without interruption"},
	{TypeMoodLifter, 10, 100, model.CategoryMeditation, "Mood Lifter", "Finish 10 sessions feeling better than you started"},
	{TypeDeepFocus, 10, 100, model.CategoryMeditation, "Deep Focus", "Rate your focus 4 or higher on 10 sessions"},
	{TypeWeekStreak, 7, 150, model.CategoryStreak, "Week Warrior", "Meditate 7 days in a row"},
	{TypeMonthStreak, 30, 500, model.CategoryStreak, "Monthly Devotion", "Meditate 30 days in a row"},
	{TypeSocialButterfly, 5, 100, model.CategorySocial, "Social Butterfly", "Connect with 5 friends"},
}

// Catalog retourne les définitions dans l'ordre d'évaluation
func Catalog() []Definition {
	out := make([]Definition, len(catalog))
	copy(out, catalog)
	return out
}

// DefinitionFor retourne la définition d'un type, false si le type est inconnu
func DefinitionFor(t Type) (Definition, bool) {
	for _, def := range catalog {
		if def.Type == t {
			return def, true
		}
	}
	return Definition{}, false
}

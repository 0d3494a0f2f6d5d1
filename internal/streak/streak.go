// Package streak calcule les séries de jours consécutifs avec session.
package streak

import "time"

// DefaultWindowDays est la fenêtre glissante par défaut
const DefaultWindowDays = 30

// LongestRun retourne la plus longue série de jours calendaires consécutifs
// présents dans dates, limitée à une fenêtre de windowDays jours à partir de
// la date la plus ancienne. Les dates sont supposées tronquées à minuit.
//
// C'est la meilleure série dans la fenêtre, pas la série courante jusqu'à
// aujourd'hui : un appelant qui veut cette dernière doit vérifier lui-même que
// aujourd'hui ou hier est présent avant d'utiliser le résultat.
//
// Liste vide : 0. Une seule date : 1. Les windowDays jours présents : windowDays.
func LongestRun(dates []time.Time, windowDays int) int {
	if len(dates) == 0 {
		return 0
	}
	if windowDays <= 0 {
		windowDays = DefaultWindowDays
	}

	// Ensemble d'appartenance "ce jour a eu une session"
	days := make(map[int64]bool, len(dates))
	earliest := truncate(dates[0])
	for _, d := range dates {
		day := truncate(d)
		if day.Before(earliest) {
			earliest = day
		}
		days[day.Unix()] = true
	}

	// Marche jour par jour depuis la date la plus ancienne, en comptant la
	// série courante et en gardant le maximum ; remise à zéro sur jour absent.
	longest, current := 0, 0
	for i := 0; i < windowDays; i++ {
		day := earliest.AddDate(0, 0, i)
		if days[day.Unix()] {
			current++
			if current > longest {
				longest = current
			}
		} else {
			current = 0
		}
	}

	return longest
}

// CurrentRun retourne la série en cours se terminant aujourd'hui ou hier,
// 0 si la série est rompue. now est tronqué à minuit local.
func CurrentRun(dates []time.Time, windowDays int, now time.Time) int {
	if len(dates) == 0 {
		return 0
	}

	days := make(map[int64]bool, len(dates))
	for _, d := range dates {
		days[truncate(d).Unix()] = true
	}

	today := truncate(now)
	anchor := today
	if !days[anchor.Unix()] {
		// La journée n'est pas encore faite : la série d'hier tient toujours
		anchor = today.AddDate(0, 0, -1)
		if !days[anchor.Unix()] {
			return 0
		}
	}

	if windowDays <= 0 {
		windowDays = DefaultWindowDays
	}

	run := 0
	for i := 0; i < windowDays; i++ {
		day := anchor.AddDate(0, 0, -i)
		if !days[day.Unix()] {
			break
		}
		run++
	}
	return run
}

func truncate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

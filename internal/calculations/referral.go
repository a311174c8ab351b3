package calculations

import (
	"sort"

	"github.com/cloud-ru/invest-client-go/internal/models"
	"github.com/cloud-ru/invest-client-go/pkg/utils"
)

// LevelProgress положение пользователя в реферальной программе
type LevelProgress struct {
	Count      int                   `json:"count"`
	Current    *models.ReferralLevel `json:"current,omitempty"`
	Next       *models.ReferralLevel `json:"next,omitempty"`
	Remaining  int                   `json:"remaining"`
	Percent    float64               `json:"percent"`
	IsMaxLevel bool                  `json:"is_max_level"`
}

// ReferralProgress определяет текущий и следующий уровни по числу рефералов.
// Без каталога уровней используется models.DefaultReferralLevels.
func ReferralProgress(count int, levels []models.ReferralLevel) LevelProgress {
	if count < 0 {
		count = 0
	}
	if len(levels) == 0 {
		levels = models.DefaultReferralLevels
	}

	sorted := make([]models.ReferralLevel, len(levels))
	copy(sorted, levels)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].MinReferrals < sorted[j].MinReferrals
	})

	lp := LevelProgress{Count: count}

	idx := -1
	for i := range sorted {
		if sorted[i].MinReferrals <= count {
			idx = i
		}
	}

	if idx >= 0 {
		lp.Current = &sorted[idx]
	}
	if idx+1 < len(sorted) {
		lp.Next = &sorted[idx+1]
	} else {
		lp.IsMaxLevel = true
		lp.Percent = 100
		return lp
	}

	floor := 0
	if lp.Current != nil {
		floor = lp.Current.MinReferrals
	}
	span := lp.Next.MinReferrals - floor
	lp.Remaining = lp.Next.MinReferrals - count
	if span > 0 {
		lp.Percent = utils.Round2(float64(count-floor) / float64(span) * 100)
	}
	if lp.Percent < 0 {
		lp.Percent = 0
	}
	if lp.Percent > 100 {
		lp.Percent = 100
	}

	return lp
}

package service

import (
	"sort"

	"youthhub_backend/internal/model"
)

// BadgeProgress 徽章解析结果，完全由积分推导
type BadgeProgress struct {
	Earned           []model.Badge `json:"earned"`
	Next             *model.Badge  `json:"next,omitempty"`
	ProgressFraction float64       `json:"progressFraction"`
}

// SortBadgeCatalog 按阈值升序排列，阈值相同保持目录声明顺序。不修改入参
func SortBadgeCatalog(catalog []model.Badge) []model.Badge {
	sorted := make([]model.Badge, len(catalog))
	copy(sorted, catalog)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].ThresholdPoints < sorted[j].ThresholdPoints
	})
	return sorted
}

// ResolveBadges 根据积分计算已获得徽章、下一个徽章及进度
func ResolveBadges(catalog []model.Badge, points int) BadgeProgress {
	sorted := SortBadgeCatalog(catalog)

	result := BadgeProgress{Earned: []model.Badge{}}
	for i := range sorted {
		if sorted[i].ThresholdPoints <= points {
			result.Earned = append(result.Earned, sorted[i])
			continue
		}
		if result.Next == nil {
			next := sorted[i]
			result.Next = &next
		}
	}

	if result.Next == nil {
		result.ProgressFraction = 1
		return result
	}

	base := 0
	if n := len(result.Earned); n > 0 {
		base = result.Earned[n-1].ThresholdPoints
	}
	span := result.Next.ThresholdPoints - base
	if span <= 0 {
		return result
	}
	result.ProgressFraction = clampFraction(float64(points-base) / float64(span))
	return result
}

// BadgeIDs 返回徽章 ID 列表（保持顺序）
func BadgeIDs(badges []model.Badge) []uint {
	ids := make([]uint, 0, len(badges))
	for _, b := range badges {
		ids = append(ids, b.ID)
	}
	return ids
}

func clampFraction(f float64) float64 {
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

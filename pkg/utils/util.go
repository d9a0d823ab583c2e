package utils

import (
	"sort"

	"github.com/agnivade/levenshtein"
)

// ResolveSeed は、指定されたシードを安全にデリファレンスします。
// ポインタがnilの場合は draw で新しいシードを引きます。
func ResolveSeed(seed *int64, draw func() int64) int64 {
	if seed != nil {
		return *seed
	}
	if draw == nil {
		return 0
	}
	return draw()
}

// Suggest は入力に最も近い候補を編集距離で探します。
// 候補の長さに応じた許容距離を超える場合は見つからなかったものとして扱います。
func Suggest(input string, candidates []string) (string, bool) {
	type scored struct {
		val  string
		dist int
	}
	results := make([]scored, 0, len(candidates))
	for _, cand := range candidates {
		dist := levenshtein.ComputeDistance(input, cand)
		if dist > distanceLimit(len(cand)) {
			continue
		}
		results = append(results, scored{val: cand, dist: dist})
	}
	if len(results) == 0 {
		return "", false
	}
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].dist == results[j].dist {
			return results[i].val < results[j].val
		}
		return results[i].dist < results[j].dist
	})
	return results[0].val, true
}

func distanceLimit(length int) int {
	switch {
	case length <= 2:
		return 1
	case length <= 8:
		return 2
	default:
		return 3
	}
}

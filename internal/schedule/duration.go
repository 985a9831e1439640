package schedule

import "strings"

// DurationSuggestion is a recommended usage-duration envelope for a booking.
type DurationSuggestion struct {
	RecommendedHours float64 `json:"recommended_hours"`
	MinHours         float64 `json:"min_hours"`
	MaxHours         float64 `json:"max_hours"`
	Reason           string  `json:"reason"`
}

// durationRule matches purpose keywords, optionally narrowed to equipment
// whose name contains one of the category markers.
type durationRule struct {
	keywords   []string
	categories []string // empty = any equipment
	suggestion DurationSuggestion
}

// The rule table is curated from typical lab usage, not learned; matching is
// first-hit in declaration order so behavior stays explainable.
var durationRules = []durationRule{
	{
		keywords:   []string{"观察", "培养", "生长"},
		categories: []string{"显微镜", "电镜", "培养"},
		suggestion: DurationSuggestion{
			RecommendedHours: 3, MinHours: 2, MaxHours: 6,
			Reason: "观察培养类实验通常需要较长的连续使用时间",
		},
	},
	{
		keywords:   []string{"检测", "测量", "测试"},
		categories: []string{"色谱", "光谱", "分析"},
		suggestion: DurationSuggestion{
			RecommendedHours: 1, MinHours: 0.5, MaxHours: 2,
			Reason: "检测测量类任务一般可在较短时间内完成",
		},
	},
	{
		keywords: []string{"制备", "合成", "反应"},
		suggestion: DurationSuggestion{
			RecommendedHours: 4, MinHours: 2, MaxHours: 8,
			Reason: "制备合成类实验耗时较长，建议预留充足时间",
		},
	},
	{
		keywords: []string{"表征", "扫描", "成像"},
		suggestion: DurationSuggestion{
			RecommendedHours: 2, MinHours: 1, MaxHours: 3,
			Reason: "表征成像类任务通常在两小时左右完成",
		},
	},
	{
		keywords: []string{"清洗", "维护", "校准", "调试"},
		suggestion: DurationSuggestion{
			RecommendedHours: 1, MinHours: 0.5, MaxHours: 2,
			Reason: "维护调试类操作时间较短",
		},
	},
}

// categoryDefaults apply when no purpose keyword matched, keyed by markers
// contained in the equipment display name. The electron-microscope row lists
// both the short and the spelled-out form and precedes the optical one, so
// full names like 扫描电子显微镜 resolve to it rather than to 显微镜.
var categoryDefaults = []struct {
	markers    []string
	suggestion DurationSuggestion
}{
	{[]string{"电镜", "电子显微镜"}, DurationSuggestion{RecommendedHours: 2, MinHours: 1, MaxHours: 4, Reason: "电镜类设备的常规使用时长为 2 小时左右"}},
	{[]string{"显微镜"}, DurationSuggestion{RecommendedHours: 2, MinHours: 1, MaxHours: 4, Reason: "显微观察类设备的常规使用时长为 2 小时左右"}},
	{[]string{"色谱"}, DurationSuggestion{RecommendedHours: 1.5, MinHours: 0.5, MaxHours: 3, Reason: "色谱类设备单次进样分析通常在 1-2 小时内"}},
	{[]string{"离心"}, DurationSuggestion{RecommendedHours: 1, MinHours: 0.5, MaxHours: 2, Reason: "离心类设备单次运行时间较短"}},
}

// fallbackDuration is returned when nothing matches, including an empty
// purpose. The advisor always answers.
var fallbackDuration = DurationSuggestion{
	RecommendedHours: 2, MinHours: 1, MaxHours: 4,
	Reason: "暂无针对该用途的使用记录，按常规时长建议",
}

// SuggestDuration maps a free-text purpose and the equipment display name to
// a duration envelope. It is a deterministic table lookup: purpose-keyword
// rules narrowed by equipment category win over keyword-only rules, then
// category defaults, then the global fallback.
func SuggestDuration(purpose, equipmentName string) DurationSuggestion {
	purpose = strings.TrimSpace(purpose)

	if purpose != "" {
		// Category-narrowed rules first: they encode the strongest signal.
		for _, rule := range durationRules {
			if len(rule.categories) == 0 {
				continue
			}
			if containsAny(purpose, rule.keywords) && containsAny(equipmentName, rule.categories) {
				return rule.suggestion
			}
		}
		for _, rule := range durationRules {
			if len(rule.categories) > 0 {
				continue
			}
			if containsAny(purpose, rule.keywords) {
				return rule.suggestion
			}
		}
	}

	for _, def := range categoryDefaults {
		if containsAny(equipmentName, def.markers) {
			return def.suggestion
		}
	}

	return fallbackDuration
}

// containsAny reports whether s contains at least one of the substrings.
func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

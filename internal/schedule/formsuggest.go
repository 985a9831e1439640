package schedule

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// ProjectInfo is the engine's read-only view of a research project.
type ProjectInfo struct {
	Name         string
	Category     string
	Keywords     []string // declared domain keywords, e.g. 材料, 表征
	Members      []string // member display names
	LastActiveAt time.Time
}

// ProjectSuggestion is a candidate linked project ranked for the current form.
type ProjectSuggestion struct {
	Name           string   `json:"name"`
	Category       string   `json:"category"`
	Team           []string `json:"team"`
	RelevanceScore float64  `json:"relevance_score"` // 0-1
	Reason         string   `json:"reason"`
}

// FormState is the partially filled booking form.
type FormState struct {
	Purpose    string `json:"purpose"`
	Project    string `json:"project"`
	BookerName string `json:"booker_name"`
}

// SampleInfo is a required-fields checklist plus a free-text template the
// caller may insert into the booking notes.
type SampleInfo struct {
	RequiredFields []string `json:"required_fields"`
	Template       string   `json:"template"`
}

// FormSuggestions bundles all contextual help for the booking form.
type FormSuggestions struct {
	Purpose        []string            `json:"purpose"`
	Projects       []ProjectSuggestion `json:"projects"`
	SampleInfo     *SampleInfo         `json:"sample_info"`
	CompletionTips []string            `json:"completion_tips"`
}

// baseRelevance keeps unmatched but eligible projects visible with a low
// score instead of dropping them.
const baseRelevance = 0.1

// ProjectSuggestions ranks candidate projects for the booking form.
//
// Projects are filtered to ones the booker participates in (unfiltered when
// the booker field is empty), scored by keyword overlap with the purpose
// text normalized to [0,1], ties broken by most recent project activity then
// name. An empty or unmatched purpose yields the base score, so the list is
// never empty while eligible projects exist.
func ProjectSuggestions(purpose string, projects []ProjectInfo, bookerName string) []ProjectSuggestion {
	purpose = strings.TrimSpace(purpose)
	bookerName = strings.TrimSpace(bookerName)

	type ranked struct {
		suggestion ProjectSuggestion
		lastActive time.Time
	}

	var candidates []ranked
	for _, p := range projects {
		if bookerName != "" && !containsName(p.Members, bookerName) {
			continue
		}

		score, matched := keywordOverlap(purpose, p.Keywords)
		reason := "您参与的项目，按近期活跃度推荐"
		if bookerName == "" {
			reason = "按近期活跃度推荐"
		}
		if matched != "" {
			reason = fmt.Sprintf("使用目的与项目关键词「%s」相关", matched)
		}

		candidates = append(candidates, ranked{
			suggestion: ProjectSuggestion{
				Name:           p.Name,
				Category:       p.Category,
				Team:           append([]string(nil), p.Members...),
				RelevanceScore: score,
				Reason:         reason,
			},
			lastActive: p.LastActiveAt,
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].suggestion.RelevanceScore != candidates[j].suggestion.RelevanceScore {
			return candidates[i].suggestion.RelevanceScore > candidates[j].suggestion.RelevanceScore
		}
		if !candidates[i].lastActive.Equal(candidates[j].lastActive) {
			return candidates[i].lastActive.After(candidates[j].lastActive)
		}
		return candidates[i].suggestion.Name < candidates[j].suggestion.Name
	})

	result := make([]ProjectSuggestion, len(candidates))
	for i, c := range candidates {
		result[i] = c.suggestion
	}
	return result
}

// keywordOverlap scores how many declared keywords appear in the purpose
// text, normalized to [baseRelevance, 1]. It returns the first matched
// keyword for the reason text.
func keywordOverlap(purpose string, keywords []string) (float64, string) {
	if purpose == "" || len(keywords) == 0 {
		return baseRelevance, ""
	}

	matches := 0
	first := ""
	for _, kw := range keywords {
		if kw != "" && strings.Contains(purpose, kw) {
			matches++
			if first == "" {
				first = kw
			}
		}
	}
	if matches == 0 {
		return baseRelevance, ""
	}

	score := baseRelevance + (1-baseRelevance)*float64(matches)/float64(len(keywords))
	if score > 1 {
		score = 1
	}
	return score, first
}

func containsName(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}

// sampleKeywords lists purpose markers that imply handling a physical
// sample, per equipment category. Full-form names like 扫描电子显微镜 carry
// 电镜 only in its spelled-out form, so the markers list both. An empty
// markers list is the default set.
var sampleKeywords = []struct {
	markers  []string
	keywords []string
}{
	{[]string{"电镜", "电子显微镜"}, []string{"样品", "样本", "试样", "观察", "表征"}},
	{[]string{"显微镜"}, []string{"样品", "样本", "试样", "观察"}},
	{[]string{"色谱"}, []string{"样品", "样本", "试样", "检测", "分析"}},
	{nil, []string{"样品", "样本", "试样"}},
}

var defaultSampleInfo = SampleInfo{
	RequiredFields: []string{"样品名称", "样品数量", "样品状态", "特殊处理要求"},
	Template:       "样品名称：\n样品数量：\n样品状态（固体/液体/粉末）：\n特殊处理要求：无",
}

// sampleInfoFor returns the sample checklist when the purpose implies a
// physical sample for this equipment category, otherwise nil.
func sampleInfoFor(purpose, equipmentName string) *SampleInfo {
	if purpose == "" {
		return nil
	}
	for _, set := range sampleKeywords {
		if len(set.markers) > 0 && !containsAny(equipmentName, set.markers) {
			continue
		}
		if containsAny(purpose, set.keywords) {
			info := defaultSampleInfo
			return &info
		}
	}
	return nil
}

// purposePresets offers canned purpose phrases per equipment category.
var purposePresets = []struct {
	markers []string
	phrases []string
}{
	{[]string{"电镜", "电子显微镜"}, []string{"样品微观形貌观察", "材料微区成分分析"}},
	{[]string{"显微镜"}, []string{"样品形貌观察", "细胞生长状态记录"}},
	{[]string{"色谱"}, []string{"成分定量分析", "纯度检测"}},
	{[]string{"光谱"}, []string{"光谱表征", "结构鉴定"}},
}

var defaultPurposes = []string{"常规实验", "设备调试"}

// SmartFormSuggestions derives all contextual suggestions from the current
// form state and the chosen equipment. The function is stateless; callers
// invoked per keystroke are expected to debounce.
func SmartFormSuggestions(form FormState, equipmentName string, projects []ProjectInfo) FormSuggestions {
	purpose := strings.TrimSpace(form.Purpose)

	phrases := defaultPurposes
	for _, preset := range purposePresets {
		if containsAny(equipmentName, preset.markers) {
			phrases = preset.phrases
			break
		}
	}

	return FormSuggestions{
		Purpose:        append([]string(nil), phrases...),
		Projects:       ProjectSuggestions(purpose, projects, form.BookerName),
		SampleInfo:     sampleInfoFor(purpose, equipmentName),
		CompletionTips: completionTips(form),
	}
}

// completionTips points at the form fields still worth filling in.
func completionTips(form FormState) []string {
	var tips []string
	if strings.TrimSpace(form.Purpose) == "" {
		tips = append(tips, "请填写使用目的，便于管理员审核")
	}
	if strings.TrimSpace(form.Project) == "" {
		tips = append(tips, "关联科研项目有助于经费核算")
	}
	if strings.TrimSpace(form.BookerName) == "" {
		tips = append(tips, "请填写预约人姓名")
	}
	if len(tips) == 0 {
		tips = append(tips, "信息填写完整，可提交预约")
	}
	return tips
}

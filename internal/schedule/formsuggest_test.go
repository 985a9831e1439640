package schedule_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/labgrid/equipment-booking-backend/internal/schedule"
)

func testProjects() []schedule.ProjectInfo {
	return []schedule.ProjectInfo{
		{
			Name:         "新型纳米材料表征研究",
			Category:     "材料科学",
			Keywords:     []string{"材料", "表征", "纳米"},
			Members:      []string{"王小明", "李华"},
			LastActiveAt: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			Name:         "肿瘤细胞成像分析",
			Category:     "生物医学",
			Keywords:     []string{"细胞", "成像", "荧光"},
			Members:      []string{"王小明"},
			LastActiveAt: time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
		},
		{
			Name:         "水体污染物检测平台",
			Category:     "环境工程",
			Keywords:     []string{"检测", "污染物"},
			Members:      []string{"赵芳"},
			LastActiveAt: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
		},
	}
}

func TestProjectSuggestionsKeywordRanking(t *testing.T) {
	got := schedule.ProjectSuggestions("纳米材料表面表征", testProjects(), "王小明")

	require.Len(t, got, 2, "only the booker's projects are eligible")
	require.Equal(t, "新型纳米材料表征研究", got[0].Name)
	require.Greater(t, got[0].RelevanceScore, got[1].RelevanceScore)
	require.Contains(t, got[0].Reason, "关键词")

	for _, s := range got {
		require.GreaterOrEqual(t, s.RelevanceScore, 0.0)
		require.LessOrEqual(t, s.RelevanceScore, 1.0)
		require.NotEmpty(t, s.Reason)
	}
}

// Empty purpose with a known booker ranks their projects by recency.
func TestProjectSuggestionsEmptyPurpose(t *testing.T) {
	got := schedule.ProjectSuggestions("", testProjects(), "王小明")

	require.Len(t, got, 2)
	require.Equal(t, "肿瘤细胞成像分析", got[0].Name, "most recently active project first")
	for _, s := range got {
		require.InDelta(t, 0.1, s.RelevanceScore, 0.0001)
	}
}

func TestProjectSuggestionsNoBookerIsUnfiltered(t *testing.T) {
	got := schedule.ProjectSuggestions("", testProjects(), "")
	require.Len(t, got, 3)
}

func TestProjectSuggestionsUnknownBooker(t *testing.T) {
	got := schedule.ProjectSuggestions("材料表征", testProjects(), "不存在的人")
	require.Empty(t, got)
}

func TestSmartFormSuggestions(t *testing.T) {
	form := schedule.FormState{
		Purpose:    "纳米样品表面形貌观察",
		Project:    "",
		BookerName: "王小明",
	}

	got := schedule.SmartFormSuggestions(form, "扫描电子显微镜", testProjects())

	require.NotEmpty(t, got.Purpose, "equipment category should yield purpose presets")
	require.NotEmpty(t, got.Projects)

	// 样品 on an electron microscope implies a physical sample.
	require.NotNil(t, got.SampleInfo)
	require.NotEmpty(t, got.SampleInfo.RequiredFields)
	require.NotEmpty(t, got.SampleInfo.Template)

	// Project field is still empty, so the tips call it out.
	require.Contains(t, got.CompletionTips, "关联科研项目有助于经费核算")
}

// 表征 implies a sample only on electron microscopes, whose full display
// names spell 电镜 out as 电子显微镜.
func TestSmartFormSuggestionsElectronMicroscope(t *testing.T) {
	form := schedule.FormState{
		Purpose:    "纳米材料表征",
		BookerName: "王小明",
	}

	got := schedule.SmartFormSuggestions(form, "扫描电子显微镜", testProjects())

	require.NotNil(t, got.SampleInfo)
	require.Contains(t, got.SampleInfo.RequiredFields, "样品名称")
	require.Equal(t, []string{"样品微观形貌观察", "材料微区成分分析"}, got.Purpose)

	// An optical microscope keeps the narrower keyword set.
	got = schedule.SmartFormSuggestions(form, "荧光显微镜", testProjects())
	require.Nil(t, got.SampleInfo)
}

func TestSmartFormSuggestionsNoSample(t *testing.T) {
	form := schedule.FormState{
		Purpose:    "参数标定",
		Project:    "某项目",
		BookerName: "赵芳",
	}

	got := schedule.SmartFormSuggestions(form, "万能试验机", testProjects())
	require.Nil(t, got.SampleInfo)
	require.Equal(t, []string{"信息填写完整，可提交预约"}, got.CompletionTips)
}

func TestSmartFormSuggestionsEmptyForm(t *testing.T) {
	got := schedule.SmartFormSuggestions(schedule.FormState{}, "未登记设备", nil)

	require.NotEmpty(t, got.Purpose, "default purpose presets apply to unknown equipment")
	require.Empty(t, got.Projects)
	require.Nil(t, got.SampleInfo)
	require.Len(t, got.CompletionTips, 3, "every empty field gets a tip")
}

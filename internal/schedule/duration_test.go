package schedule_test

import (
	"testing"

	"github.com/labgrid/equipment-booking-backend/internal/schedule"
)

func TestSuggestDuration(t *testing.T) {
	tests := []struct {
		name      string
		purpose   string
		equipment string
		wantHours float64
	}{
		{
			name:      "observation on a microscope runs long",
			purpose:   "细胞形态观察",
			equipment: "激光共聚焦显微镜",
			wantHours: 3,
		},
		{
			name:      "culture monitoring on an electron microscope",
			purpose:   "菌落培养状态记录",
			equipment: "扫描电子显微镜",
			wantHours: 3,
		},
		{
			name:      "measurement on an analytical instrument is short",
			purpose:   "含量检测",
			equipment: "高效液相色谱仪",
			wantHours: 1,
		},
		{
			name:      "synthesis applies regardless of equipment",
			purpose:   "中间体合成",
			equipment: "通风橱",
			wantHours: 4,
		},
		{
			name:      "characterization keyword",
			purpose:   "表面表征",
			equipment: "原子力显微镜台",
			wantHours: 2,
		},
		{
			name:      "no keyword falls back to category default",
			purpose:   "日常使用",
			equipment: "倒置显微镜",
			wantHours: 2,
		},
		{
			name:      "unknown purpose and equipment use the global default",
			purpose:   "随便看看",
			equipment: "某新设备",
			wantHours: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := schedule.SuggestDuration(tt.purpose, tt.equipment)
			if got.RecommendedHours != tt.wantHours {
				t.Errorf("RecommendedHours = %v, want %v", got.RecommendedHours, tt.wantHours)
			}
			assertEnvelope(t, got)
		})
	}
}

// A full electron-microscope name carries 电镜 only as 电子显微镜, so the
// category default must resolve to the electron-microscope row.
func TestSuggestDurationElectronMicroscopeDefault(t *testing.T) {
	got := schedule.SuggestDuration("常规拍摄", "扫描电子显微镜")
	if got.Reason != "电镜类设备的常规使用时长为 2 小时左右" {
		t.Errorf("Reason = %q, want the electron-microscope default", got.Reason)
	}
	assertEnvelope(t, got)
}

// An empty purpose must still produce a fully populated suggestion.
func TestSuggestDurationEmptyPurpose(t *testing.T) {
	got := schedule.SuggestDuration("", "")
	if got.RecommendedHours != 2 || got.MinHours != 1 || got.MaxHours != 4 {
		t.Errorf("fallback envelope = %+v, want 2h (1-4)", got)
	}
	assertEnvelope(t, got)
}

func assertEnvelope(t *testing.T, s schedule.DurationSuggestion) {
	t.Helper()
	if s.Reason == "" {
		t.Error("reason must not be empty")
	}
	if s.MinHours <= 0 || s.RecommendedHours < s.MinHours || s.MaxHours < s.RecommendedHours {
		t.Errorf("inconsistent envelope: %+v", s)
	}
}

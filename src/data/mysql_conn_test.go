package data

import "testing"

func TestEnsureParam(t *testing.T) {
	got := ensureParam("user:pw@tcp(db:3306)/bot", "parseTime", "true")
	if got != "user:pw@tcp(db:3306)/bot?parseTime=true" {
		t.Errorf("unexpected dsn %q", got)
	}
	got = ensureParam(got, "charset", "utf8mb4")
	if got != "user:pw@tcp(db:3306)/bot?parseTime=true&charset=utf8mb4" {
		t.Errorf("unexpected dsn %q", got)
	}
	if again := ensureParam(got, "charset", "latin1"); again != got {
		t.Errorf("existing param should be kept, got %q", again)
	}
}

func TestSettingsCache(t *testing.T) {
	ReplaceSettings(map[string]string{"summary_profile": "enriched"})
	t.Cleanup(func() { ReplaceSettings(nil) })

	if got := GetSetting("summary_profile"); got != "enriched" {
		t.Errorf("GetSetting = %q", got)
	}
	if got := GetSetting("missing"); got != "" {
		t.Errorf("missing setting = %q", got)
	}
}

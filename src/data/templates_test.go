package data

import "testing"

func TestTemplateFingerprintStable(t *testing.T) {
	a := TemplateFingerprint("You are a helpful assistant.")
	b := TemplateFingerprint("You are a helpful assistant.")
	c := TemplateFingerprint("You are a helpful assistant!")
	if a != b {
		t.Errorf("fingerprint not stable: %d vs %d", a, b)
	}
	if a == c {
		t.Error("different bodies should not share a fingerprint")
	}
}

func TestNilStores(t *testing.T) {
	ts := NewTemplateStore(nil)
	tmpl, err := ts.Latest("classic", "system")
	if err != nil || tmpl != nil {
		t.Errorf("Latest on nil db = %v, %v", tmpl, err)
	}
	if _, err := ts.Publish("classic", "system", "body", "admin"); err == nil {
		t.Error("Publish without db should fail")
	}

	rs := NewRunStore(nil)
	if err := rs.Record(SummaryRun{ID: "x"}); err != nil {
		t.Errorf("Record on nil db = %v", err)
	}
}

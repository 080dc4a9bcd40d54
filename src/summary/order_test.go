package summary

import "testing"

func TestSourceIDs(t *testing.T) {
	text := "- Release cut [source](https://discord.com/channels/1/2/300)\n" +
		"- Bug found by <@9> [source](<https://discord.com/channels/1/2/200>)\n" +
		"- Kickoff [source](https://ptb.discord.com/channels/@me/2/100)\n" +
		"- Not a source [docs](https://example.com/400)"
	ids := SourceIDs(text)
	want := []string{"300", "200", "100"}
	if len(ids) != len(want) {
		t.Fatalf("ids = %v", ids)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Errorf("ids[%d] = %s, want %s", i, ids[i], want[i])
		}
	}
}

func TestNewestFirst(t *testing.T) {
	if !NewestFirst([]string{"1190000000000000300", "1190000000000000200", "1190000000000000200"}) {
		t.Error("descending ids should pass")
	}
	if NewestFirst([]string{"100", "300"}) {
		t.Error("ascending ids should fail")
	}
	if !NewestFirst(nil) {
		t.Error("no ids should pass")
	}
}

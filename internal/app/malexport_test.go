package app

import (
	"strings"
	"testing"
)

const sampleExport = `<?xml version="1.0" encoding="UTF-8" ?>
<myanimelist>
	<myinfo>
		<user_id>123</user_id>
		<user_name>tester</user_name>
	</myinfo>
	<anime>
		<series_animedb_id>5114</series_animedb_id>
		<series_title><![CDATA[Fullmetal Alchemist: Brotherhood]]></series_title>
		<series_episodes>64</series_episodes>
		<my_status>Plan to Watch</my_status>
	</anime>
	<anime>
		<series_animedb_id>1</series_animedb_id>
		<series_title><![CDATA[Cowboy Bebop]]></series_title>
		<my_status>Completed</my_status>
	</anime>
	<anime>
		<series_animedb_id>20</series_animedb_id>
		<series_title><![CDATA[Naruto]]></series_title>
		<my_status>Plan to Watch</my_status>
	</anime>
</myanimelist>`

func TestParseMALExport_OrderAndFields(t *testing.T) {
	entries, err := ParseMALExport(strings.NewReader(sampleExport))
	if err != nil {
		t.Fatalf("ParseMALExport: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("entries: want 3, got %d", len(entries))
	}
	if entries[0].ID != "5114" || entries[0].Title != "Fullmetal Alchemist: Brotherhood" || entries[0].Status != "Plan to Watch" {
		t.Fatalf("entry 0: %+v", entries[0])
	}
	if entries[1].ID != "1" || entries[1].Status != "Completed" {
		t.Fatalf("entry 1: %+v", entries[1])
	}
}

func TestParseMALExport_Errors(t *testing.T) {
	cases := map[string]string{
		"malformed": `<myanimelist><anime>`,
		"empty":     ``,
		"no anime":  `<?xml version="1.0"?><myanimelist><myinfo><user_name>x</user_name></myinfo></myanimelist>`,
		"wrong root": `<notalist><anime><series_animedb_id>1</series_animedb_id></anime></notalist>`,
	}
	for name, input := range cases {
		_, err := ParseMALExport(strings.NewReader(input))
		if err == nil {
			t.Fatalf("%s: expected error", name)
		}
		if !IsParseError(err) {
			t.Fatalf("%s: want ParseError, got %T (%v)", name, err, err)
		}
	}
}

func TestFilterByStatus(t *testing.T) {
	entries, err := ParseMALExport(strings.NewReader(sampleExport))
	if err != nil {
		t.Fatalf("ParseMALExport: %v", err)
	}

	filtered := FilterByStatus(entries, "plan to watch")
	if len(filtered) != 2 {
		t.Fatalf("filtered: want 2, got %d", len(filtered))
	}
	for _, e := range filtered {
		if !strings.EqualFold(e.Status, "Plan to Watch") {
			t.Fatalf("unexpected entry %+v", e)
		}
	}

	if got := FilterByStatus(entries, ""); len(got) != len(entries) {
		t.Fatalf("empty filter should keep everything")
	}
}

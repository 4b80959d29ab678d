package jsonutil

import "testing"

func TestExtractJSONPayload(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"bare", `{"a":1}`, `{"a":1}`},
		{"whitespace", "  {\"a\":1}\n", `{"a":1}`},
		{"fence", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"fence json tag", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"fence with prose", "Here you go:\n```json\n{\"a\":1}\n```\nthanks", `{"a":1}`},
		{"unterminated fence", "```json\n{\"a\":1}", `{"a":1}`},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := ExtractJSONPayload(c.in); got != c.want {
				t.Fatalf("got %q want %q", got, c.want)
			}
		})
	}
}

func TestUnmarshalFlex_StringWrapped(t *testing.T) {
	type payload struct {
		A int `json:"a"`
	}
	var direct payload
	if err := UnmarshalFlex([]byte(`{"a":2}`), &direct); err != nil {
		t.Fatalf("direct: %v", err)
	}
	if direct.A != 2 {
		t.Fatalf("direct: got %d", direct.A)
	}

	var wrapped payload
	if err := UnmarshalFlex([]byte(`"{\"a\":3}"`), &wrapped); err != nil {
		t.Fatalf("wrapped: %v", err)
	}
	if wrapped.A != 3 {
		t.Fatalf("wrapped: got %d", wrapped.A)
	}

	if err := UnmarshalFlex([]byte(`not json`), &direct); err == nil {
		t.Fatal("expected error for invalid payload")
	}
}

func TestMarshalNoEscape(t *testing.T) {
	out, err := MarshalNoEscape(map[string]string{"q": "a < b && c > d"})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(out) != `{"q":"a < b && c > d"}` {
		t.Fatalf("got %s", out)
	}
}

package http11

import "testing"

func TestClassifyBody(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		data        string
		want        BodyKind
	}{
		{"empty", "application/json", "", BodyEmpty},
		{"json", "application/json", `{"ok":true}`, BodyText},
		{"json with charset", "application/json; charset=utf-8", `{}`, BodyText},
		{"plain text", "text/plain", "hello", BodyText},
		{"html", "text/html", "<html></html>", BodyText},
		{"xml", "application/xml", "<a/>", BodyText},
		{"javascript", "application/javascript", "x=1", BodyText},
		{"json suffix", "application/vnd.api+json", "{}", BodyText},
		{"xml suffix", "image/svg+xml", "<svg/>", BodyText},
		{"case insensitive type", "Application/JSON", "{}", BodyText},
		{"textual type invalid utf8", "text/plain", "\xff\xfe", BodyBinary},
		{"octet stream", "application/octet-stream", "hello", BodyBinary},
		{"no content type", "", "hello", BodyBinary},
		{"png", "image/png", "\x89PNG", BodyBinary},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ct []byte
			if tt.contentType != "" {
				ct = []byte(tt.contentType)
			}
			got := ClassifyBody(ct, []byte(tt.data))
			if got.Kind != tt.want {
				t.Errorf("ClassifyBody(%q, %q).Kind = %v, want %v", tt.contentType, tt.data, got.Kind, tt.want)
			}
		})
	}
}

func TestBodyAccessors(t *testing.T) {
	var empty Body
	if !empty.IsEmpty() || empty.Len() != 0 || empty.Text() != "" {
		t.Errorf("zero Body: IsEmpty=%v Len=%d Text=%q", empty.IsEmpty(), empty.Len(), empty.Text())
	}

	text := TextBody("hi")
	if text.Kind != BodyText || text.Len() != 2 || text.Text() != "hi" {
		t.Errorf("TextBody: Kind=%v Len=%d Text=%q", text.Kind, text.Len(), text.Text())
	}

	bin := BinaryBody([]byte{0x00, 0xff})
	if bin.Kind != BodyBinary || bin.Len() != 2 {
		t.Errorf("BinaryBody: Kind=%v Len=%d", bin.Kind, bin.Len())
	}

	if TextBody("").Kind != BodyEmpty {
		t.Errorf("TextBody(\"\").Kind = %v, want BodyEmpty", TextBody("").Kind)
	}
	if BinaryBody(nil).Kind != BodyEmpty {
		t.Errorf("BinaryBody(nil).Kind = %v, want BodyEmpty", BinaryBody(nil).Kind)
	}
}

package blob

import (
	"bytes"
	"math/rand"
	"testing"
)

func TestRoundTrip(t *testing.T) {
	large := make([]byte, 10<<20)
	rnd := rand.New(rand.NewSource(42))
	if _, err := rnd.Read(large); err != nil {
		t.Fatalf("failed to fill random buffer: %v", err)
	}

	inputs := [][]byte{
		{},
		[]byte("hi"),
		[]byte{0x00, 0xff, 0x10, 0x80},
		large,
	}
	for _, in := range inputs {
		out, err := Decode(Encode(in))
		if err != nil {
			t.Fatalf("round trip of %d bytes failed: %v", len(in), err)
		}
		if !bytes.Equal(in, out) {
			t.Fatalf("round trip of %d bytes altered the content", len(in))
		}
	}
}

func TestDecodeRejectsMalformedText(t *testing.T) {
	for _, text := range []string{"not base64!!", "abc", "====", "aGk=x"} {
		if _, err := Decode(text); err != ErrInvalidEncoding {
			t.Fatalf("Decode(%q): expected ErrInvalidEncoding, got %v", text, err)
		}
	}
}

func TestDecodeEmptyString(t *testing.T) {
	data, err := Decode("")
	if err != nil {
		t.Fatalf("empty string should decode: %v", err)
	}
	if len(data) != 0 {
		t.Fatalf("empty string decoded to %d bytes", len(data))
	}
}

func TestSniffMime(t *testing.T) {
	cases := []struct {
		name    string
		content []byte
		file    string
		want    string
	}{
		{"txt extension", []byte("hi"), "a.txt", "text/plain"},
		{"html extension", []byte("<html>"), "index.html", "text/html"},
		{"png content, no extension", []byte("\x89PNG\r\n\x1a\nttttttttttt"), "picture", "image/png"},
		{"unknown everything", []byte{0x01, 0x02, 0x03}, "data.xyz123", "application/octet-stream"},
		{"empty content, no extension", nil, "blank", "application/octet-stream"},
	}
	for _, c := range cases {
		got := SniffMime(c.content, c.file)
		if got != c.want {
			t.Fatalf("%s: SniffMime = %q, want %q", c.name, got, c.want)
		}
		// Sniffing must be stable for identical inputs.
		if again := SniffMime(c.content, c.file); again != got {
			t.Fatalf("%s: SniffMime not deterministic: %q then %q", c.name, got, again)
		}
	}
}

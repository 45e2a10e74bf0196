package format

import "testing"

func TestDecodeZString(t *testing.T) {
	cases := []struct {
		name string
		in   []byte
		want string
	}{
		{"terminated", []byte("Door01\x00"), "Door01"},
		{"padded", []byte("Gate\x00\x00"), "Gate"},
		{"unterminated", []byte("Gate"), "Gate"},
		{"empty", []byte{0}, ""},
		{"windows1252", []byte{'C', 'a', 'f', 0xE9, 0}, "Café"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := DecodeZString(tc.in)
			if err != nil {
				t.Fatalf("DecodeZString: %v", err)
			}
			if got != tc.want {
				t.Fatalf("DecodeZString = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestEncodeZString(t *testing.T) {
	got, err := EncodeZString("Café")
	if err != nil {
		t.Fatalf("EncodeZString: %v", err)
	}
	want := []byte{'C', 'a', 'f', 0xE9, 0}
	if string(got) != string(want) {
		t.Fatalf("EncodeZString = %v, want %v", got, want)
	}

	if _, err := EncodeZString("snow ☃"); err == nil {
		t.Fatalf("expected error for a rune outside Windows-1252")
	}
}

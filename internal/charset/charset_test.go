package charset

import "testing"

func TestDecodeUTF8(t *testing.T) {
	got, err := Decode([]byte("你好，世界"), "")
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got != "你好，世界" {
		t.Fatalf("Decode = %q", got)
	}
}

func TestDecodeStripsBOM(t *testing.T) {
	data := append([]byte{0xef, 0xbb, 0xbf}, []byte("hello")...)
	got, err := Decode(data, "UTF-8")
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got != "hello" {
		t.Fatalf("Decode = %q, want bare text", got)
	}
}

func TestDecodeEmpty(t *testing.T) {
	got, err := Decode(nil, "")
	if err != nil || got != "" {
		t.Fatalf("Decode(nil) = %q, %v", got, err)
	}
}

func TestDecodeForcedEncoding(t *testing.T) {
	// GBK bytes for 你好.
	data := []byte{0xc4, 0xe3, 0xba, 0xc3}
	got, err := Decode(data, "GBK")
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got != "你好" {
		t.Fatalf("Decode = %q, want 你好", got)
	}
}

func TestDecodeUnknownEncoding(t *testing.T) {
	if _, err := Decode([]byte("abc"), "no-such-charset"); err == nil {
		t.Fatal("Decode accepted an unknown encoding name")
	}
}

package encoding

import "testing"

func TestEUCKRRoundTrip(t *testing.T) {
	tests := []string{
		"3DDATA/TERRAIN/TILES/ZONE1/T01.DDS",
		"지형/타일.DDS",
		"",
	}

	for _, s := range tests {
		encoded := UTF8ToEUCKR(s)
		if got := EUCKRToUTF8(encoded); got != s {
			t.Errorf("round trip %q: got %q", s, got)
		}
	}
}

func TestEUCKRToUTF8_ASCIIUnchanged(t *testing.T) {
	in := []byte(`3DDATA\TERRAIN\TILES\T01.DDS`)
	if got := EUCKRToUTF8(in); got != string(in) {
		t.Errorf("expected ASCII to pass through, got %q", got)
	}
}

func TestFoldName(t *testing.T) {
	if got := FoldName("31_30.HIM"); got != "31_30.him" {
		t.Errorf("FoldName: got %q", got)
	}
}

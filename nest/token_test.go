package nest

import (
	"testing"
)

func TestNewRunToken(t *testing.T) {
	seen := make(map[RunToken]bool)
	for range 100 {
		tok := NewRunToken()
		if _, err := ParseRunToken(string(tok)); err != nil {
			t.Fatalf("NewRunToken() = %q is not a valid token: %v", tok, err)
		}
		if seen[tok] {
			t.Fatalf("NewRunToken() repeated %q", tok)
		}
		seen[tok] = true
	}
}

func TestParseRunToken(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "valid", input: "0123abcd", wantErr: false},
		{name: "too short", input: "abc", wantErr: true},
		{name: "too long", input: "0123abcd0", wantErr: true},
		{name: "uppercase", input: "0123ABCD", wantErr: true},
		{name: "separator", input: "0123/bcd", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseRunToken(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ParseRunToken(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if tt.wantErr && err != ErrInvalidToken {
				t.Errorf("ParseRunToken(%q) error = %v, want ErrInvalidToken", tt.input, err)
			}
		})
	}
}

func TestTempNames(t *testing.T) {
	tok := RunToken("cafebabe")
	if got := tok.TempName("a.txt"); got != "a.txt_cafebabe.zip" {
		t.Errorf("TempName = %q", got)
	}
	if got := FinalName("sub"); got != "sub.zip" {
		t.Errorf("FinalName = %q", got)
	}

	tests := []struct {
		name      string
		wantBase  string
		wantToken RunToken
		wantOK    bool
	}{
		{name: "a.txt_cafebabe.zip", wantBase: "a.txt", wantToken: "cafebabe", wantOK: true},
		{name: "my_dir_0000ffff.zip", wantBase: "my_dir", wantToken: "0000ffff", wantOK: true},
		{name: "a.txt.zip", wantOK: false},
		{name: "report_final.zip", wantOK: false},
		{name: "_cafebabe.zip", wantOK: false},
		{name: "a_cafebabe.tar", wantOK: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			base, token, ok := ParseTempName(tt.name)
			if ok != tt.wantOK || base != tt.wantBase || token != tt.wantToken {
				t.Errorf("ParseTempName(%q) = (%q, %q, %v), want (%q, %q, %v)",
					tt.name, base, token, ok, tt.wantBase, tt.wantToken, tt.wantOK)
			}
			if IsTempName(tt.name) != tt.wantOK {
				t.Errorf("IsTempName(%q) = %v", tt.name, !tt.wantOK)
			}
		})
	}
}

func TestTempNameRoundTrip(t *testing.T) {
	tok := NewRunToken()
	for _, base := range []string{"x", "a.b.c", "with space", "under_score"} {
		b, got, ok := ParseTempName(tok.TempName(base))
		if !ok || b != base || got != tok {
			t.Errorf("ParseTempName(TempName(%q)) = (%q, %q, %v)", base, b, got, ok)
		}
	}
}

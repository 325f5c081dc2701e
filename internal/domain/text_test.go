package domain

import "testing"

func TestPickJosa(t *testing.T) {
	tests := []struct {
		word, josa, want string
	}{
		{"훈련", "을", "을"},
		{"화계", "이", "가"},
		{"선동", "이", "이"},
		{"탈취", "을", "를"},
		{"서울", "으로", "로"},
		{"낙양", "으로", "으로"},
		{"허창", "은", "은"},
		{"ABC", "이", "가"},
		{"", "을", "를"},
		{"훈련", "의", "의"},
	}
	for _, tt := range tests {
		if got := PickJosa(tt.word, tt.josa); got != tt.want {
			t.Errorf("PickJosa(%q, %q) = %q, want %q", tt.word, tt.josa, got, tt.want)
		}
	}
}

func TestFormatNumber(t *testing.T) {
	tests := map[int]string{
		0:       "0",
		500:     "500",
		12345:   "12,345",
		-100000: "-100,000",
	}
	for n, want := range tests {
		if got := FormatNumber(n); got != want {
			t.Errorf("FormatNumber(%d) = %q, want %q", n, got, want)
		}
	}
}

func TestEnvFormatDate(t *testing.T) {
	e := NewEnv(184, 3, 184)
	if got := e.FormatDate(); got != "184년 03월" {
		t.Errorf("FormatDate = %q", got)
	}
	if e.TurnIndex() != 184*12+3 {
		t.Errorf("TurnIndex = %d", e.TurnIndex())
	}
}

package cmd

import "testing"

func TestParsePageArg(t *testing.T) {
	tests := []struct {
		args    []string
		want    int
		wantErr bool
	}{
		{nil, 1, false},
		{[]string{"3"}, 3, false},
		{[]string{"0"}, 0, true},
		{[]string{"-2"}, 0, true},
		{[]string{"next"}, 0, true},
	}

	for _, tt := range tests {
		got, err := parsePageArg(tt.args)
		if (err != nil) != tt.wantErr {
			t.Errorf("parsePageArg(%v) error = %v, wantErr %v", tt.args, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("parsePageArg(%v) = %d, want %d", tt.args, got, tt.want)
		}
	}
}

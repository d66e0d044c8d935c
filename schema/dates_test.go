package schema

import "testing"

func TestDetectDateFormat(t *testing.T) {
	cases := []struct {
		name    string
		values  []string
		pattern string
		ok      bool
	}{
		{"iso", []string{"1850-01-02", "1901-12-31", ""}, "YYYY-MM-DD", true},
		{"us dashes", []string{"01-02-1850", "12-31-1901"}, "MM-DD-YYYY", true},
		{"us slashes unpadded", []string{"1/2/1850", "12/31/1901"}, "MM/DD/YYYY", true},
		{"ymd slashes", []string{"1850/01/02"}, "YYYY/MM/DD", true},
		{"day first dashes", []string{"31-12-1901", "02-01-1850"}, "DD-MM-YYYY", true},
		{"day first slashes", []string{"31/12/1901"}, "DD/MM/YYYY", true},
		{"mixed", []string{"1850-01-02", "12/31/1901"}, "", false},
		{"prose", []string{"March 3, 1851"}, "", false},
		{"empty column", []string{"", " "}, "YYYY-MM-DD", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f, ok := DetectDateFormat(tc.values)
			if ok != tc.ok {
				t.Fatalf("ok: got %v, want %v", ok, tc.ok)
			}
			if f.Pattern != tc.pattern {
				t.Fatalf("pattern: got %q, want %q", f.Pattern, tc.pattern)
			}
		})
	}
}

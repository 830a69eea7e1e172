package resolution

import "testing"

func TestExtractOrderID(t *testing.T) {
	cases := []struct {
		name    string
		message string
		want    string
		ok      bool
	}{
		{"plain", "my order is ORD001 damaged", "ORD001", true},
		{"embedded", "refund ORD123 please", "ORD123", true},
		{"first of several", "ORD111 and also ORD222", "ORD111", true},
		{"longer digit run keeps first three", "see ORD1234", "ORD123", true},
		{"no reference", "where is my package", "", false},
		{"lowercase prefix rejected", "my order ord001", "", false},
		{"too few digits", "ORD12 broken", "", false},
		{"empty", "", "", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := ExtractOrderID(tc.message)
			if ok != tc.ok || got != tc.want {
				t.Fatalf("ExtractOrderID(%q) = (%q, %v), want (%q, %v)", tc.message, got, ok, tc.want, tc.ok)
			}
		})
	}
}

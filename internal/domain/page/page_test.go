package page

import (
	"encoding/json"
	"net/url"
	"strings"
	"testing"
)

func TestNewParams_Clamping(t *testing.T) {
	tests := []struct {
		name                  string
		limit, offset         int
		defLimit, maxLimit    int
		wantLimit, wantOffset int
	}{
		{"defaults", 0, 0, 20, 100, 20, 0},
		{"explicit", 5, 40, 20, 100, 5, 40},
		{"over max", 500, 0, 20, 100, 100, 0},
		{"negative offset", 10, -3, 20, 100, 10, 0},
		{"negative limit", -1, 0, 20, 100, 20, 0},
		{"zero config", 0, 0, 0, 0, DefaultLimit, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewParams(tt.limit, tt.offset, tt.defLimit, tt.maxLimit)
			if p.Limit() != tt.wantLimit || p.Offset() != tt.wantOffset {
				t.Errorf("got limit=%d offset=%d, want limit=%d offset=%d",
					p.Limit(), p.Offset(), tt.wantLimit, tt.wantOffset)
			}
		})
	}
}

func mustParse(t *testing.T, raw string) *url.URL {
	t.Helper()
	u, err := url.Parse(raw)
	if err != nil {
		t.Fatalf("parse %q: %v", raw, err)
	}
	return u
}

func TestNewEnvelope_MiddlePage(t *testing.T) {
	u := mustParse(t, "http://api.test/api/v1/users?q=ali&limit=10&offset=10")
	env := NewEnvelope(u, NewParams(10, 10, 20, 100), 35, []string{})

	if env.Count != 35 {
		t.Errorf("Count = %d, want 35", env.Count)
	}
	if env.Next == nil || !strings.Contains(*env.Next, "offset=20") {
		t.Errorf("Next = %v, want offset=20", env.Next)
	}
	if env.Next != nil && !strings.Contains(*env.Next, "q=ali") {
		t.Errorf("Next = %v, should preserve other query params", *env.Next)
	}
	// previous drops the offset param when it would be zero
	if env.Previous == nil || strings.Contains(*env.Previous, "offset=") {
		t.Errorf("Previous = %v, want link without offset", env.Previous)
	}
}

func TestNewEnvelope_FirstAndLastPage(t *testing.T) {
	u := mustParse(t, "http://api.test/api/v1/users?limit=20")
	env := NewEnvelope(u, NewParams(20, 0, 20, 100), 15, []string{})

	if env.Next != nil {
		t.Errorf("Next = %v, want nil", *env.Next)
	}
	if env.Previous != nil {
		t.Errorf("Previous = %v, want nil", *env.Previous)
	}
}

func TestEnvelope_JSONShape(t *testing.T) {
	u := mustParse(t, "http://api.test/api/v1/users")
	env := NewEnvelope(u, NewParams(20, 0, 20, 100), 0, []int{})

	b, err := json.Marshal(env)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"next":null,"previous":null,"count":0,"results":[]}`
	if string(b) != want {
		t.Errorf("json = %s, want %s", b, want)
	}
}

package model

import (
	"encoding/json"
	"testing"
	"time"
)

func TestValidateDimension(t *testing.T) {
	for _, d := range Dimensions {
		if err := ValidateDimension(d); err != nil {
			t.Errorf("ValidateDimension(%q) unexpected error: %v", d, err)
		}
	}
	if err := ValidateDimension("COLOR"); err == nil {
		t.Error("ValidateDimension('COLOR') expected error, got nil")
	}
}

func TestParseDimension(t *testing.T) {
	tests := []struct {
		input   string
		want    Dimension
		wantErr bool
	}{
		{"NAMESPACE", DimensionNamespace, false},
		{"project", DimensionProject, false},
		{" Issue ", DimensionIssue, false},
		{"user", DimensionUser, false},
		{"PRODUCT", DimensionProduct, false},
		{"label", DimensionLabel, false},
		{"", "", true},
		{"projects", "", true},
	}

	for _, tt := range tests {
		got, err := ParseDimension(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseDimension(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseDimension(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestParseDimensionsKeepsOrder(t *testing.T) {
	got, err := ParseDimensions([]string{"user", "namespace", "user"})
	if err != nil {
		t.Fatalf("ParseDimensions: %v", err)
	}
	want := []Dimension{DimensionUser, DimensionNamespace, DimensionUser}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("dims[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestParseDimensionsRejectsEmpty(t *testing.T) {
	if _, err := ParseDimensions(nil); err == nil {
		t.Error("ParseDimensions(nil) expected error, got nil")
	}
	if _, err := ParseDimensions([]string{"PROJECT", "bogus"}); err == nil {
		t.Error("ParseDimensions with invalid entry expected error, got nil")
	}
}

func TestValidateTargetType(t *testing.T) {
	for _, tt := range []TargetType{TargetIssue, TargetMergeRequest} {
		if err := ValidateTargetType(tt); err != nil {
			t.Errorf("ValidateTargetType(%q) unexpected error: %v", tt, err)
		}
	}
	for _, bad := range []TargetType{"", "issue", "Epic"} {
		if err := ValidateTargetType(bad); err == nil {
			t.Errorf("ValidateTargetType(%q) expected error, got nil", bad)
		}
	}
}

func TestDimensionColor(t *testing.T) {
	if c := DimensionUser.Color(); c != "green" {
		t.Errorf("DimensionUser.Color() = %q, want %q", c, "green")
	}
	if c := Dimension("x").Color(); c != "white" {
		t.Errorf("unknown dimension color = %q, want %q", c, "white")
	}
}

func TestTimeLogJSONOmitsUnsetReferences(t *testing.T) {
	tl := TimeLog{
		ID:        1,
		TimeSpent: -600,
		UserID:    2,
		CreatedAt: time.Date(2024, 1, 5, 10, 0, 0, 0, time.UTC),
	}
	data, err := json.Marshal(tl)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	for _, key := range []string{"issue_id", "merge_request_id", "updated_at"} {
		if _, ok := raw[key]; ok {
			t.Errorf("expected %s to be omitted, got %v", key, raw[key])
		}
	}
	if raw["time_spent"] != float64(-600) {
		t.Errorf("time_spent = %v, want -600", raw["time_spent"])
	}
}

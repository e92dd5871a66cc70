package weather

import "testing"

// TestClassifyAlert verifies the ordered rule table, first match wins.
func TestClassifyAlert(t *testing.T) {
	cases := []struct {
		name        string
		conditionID int
		temp        float64
		units       Units
		want        string
		wantAlert   bool
	}{
		{"thunderstorm", 202, 20, UnitsMetric, "Warning: Thunderstorm conditions detected.", true},
		{"snow", 601, 20, UnitsMetric, "Advisory: Snow expected.", true},
		{"tornado", 781, 20, UnitsMetric, "DANGER: Tornado detected in area.", true},
		{"extreme heat metric", 800, 39, UnitsMetric, "Warning: Extreme High Temperature.", true},
		{"extreme heat imperial", 800, 101, UnitsImperial, "Warning: Extreme High Temperature.", true},
		{"clear and mild", 800, 20, UnitsMetric, "", false},
		{"metric threshold not crossed", 800, 38, UnitsMetric, "", false},
		{"imperial threshold is higher", 800, 39, UnitsImperial, "", false},
		{"thunderstorm wins over heat", 210, 45, UnitsMetric, "Warning: Thunderstorm conditions detected.", true},
		{"snow range upper bound excluded", 603, 20, UnitsMetric, "", false},
	}

	for _, tc := range cases {
		got, ok := ClassifyAlert(tc.conditionID, tc.temp, tc.units)
		if ok != tc.wantAlert {
			t.Fatalf("%s: expected alert=%v, got %v", tc.name, tc.wantAlert, ok)
		}
		if got != tc.want {
			t.Fatalf("%s: expected %q, got %q", tc.name, tc.want, got)
		}
	}
}

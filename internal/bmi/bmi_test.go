package bmi

import (
	"errors"
	"testing"
)

func TestCompute(t *testing.T) {
	tests := []struct {
		name   string
		system System
		weight string
		height string
		want   string
	}{
		{"metric normal", Metric, "70", "175", "BMI: 22.9 (Normal weight)"},
		{"metric under", Metric, "50", "180", "BMI: 15.4 (Underweight)"},
		{"metric over", Metric, "85", "175", "BMI: 27.8 (Overweight)"},
		{"metric obese", Metric, "110", "170", "BMI: 38.1 (Obesity)"},
		{"imperial", Imperial, "154", "69", "BMI: 22.7 (Normal weight)"},
		{"spaces", Metric, " 70 ", " 175", "BMI: 22.9 (Normal weight)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Compute(tt.system, tt.weight, tt.height)
			if err != nil {
				t.Fatalf("Compute error: %v", err)
			}
			if got.String() != tt.want {
				t.Fatalf("Compute = %q, want %q", got.String(), tt.want)
			}
		})
	}
}

func TestComputeRejectsInvalidInput(t *testing.T) {
	cases := [][2]string{
		{"", "175"},
		{"70", ""},
		{"0", "175"},
		{"70", "-1"},
		{"abc", "175"},
		{"NaN", "175"},
	}
	for _, c := range cases {
		_, err := Compute(Metric, c[0], c[1])
		if !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("Compute(%q, %q) error = %v, want ErrInvalidInput", c[0], c[1], err)
		}
	}
}

func TestClassifyBoundaries(t *testing.T) {
	tests := []struct {
		bmi  float64
		want string
	}{
		{18.49, "Underweight"},
		{18.5, "Normal weight"},
		{24.99, "Normal weight"},
		{25, "Overweight"},
		{30, "Obesity"},
	}
	for _, tt := range tests {
		if got := Classify(tt.bmi); got != tt.want {
			t.Fatalf("Classify(%v) = %q, want %q", tt.bmi, got, tt.want)
		}
	}
}

func TestMessage(t *testing.T) {
	_, err := Compute(Metric, "", "")
	if got := Message(err); got != "Enter valid weight and height." {
		t.Fatalf("Message = %q", got)
	}
}

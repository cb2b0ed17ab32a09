package main

import (
	"testing"
)

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("GROWATT_TOKEN", "test-token")
	t.Setenv("GROWATT_SERVER_URL", "https://openapi.example.com")
	t.Setenv("GROWATT_PLANT_IDS", "1234567, 7654321")
	t.Setenv("GROWATT_LOG_LEVEL", "debug")

	cfg, err := loadConfig()
	if err != nil {
		t.Fatalf("loadConfig() unexpected error: %v", err)
	}
	if cfg.Token != "test-token" {
		t.Errorf("Token = %s, want test-token", cfg.Token)
	}
	if cfg.ServerURL != "https://openapi.example.com" {
		t.Errorf("ServerURL = %s", cfg.ServerURL)
	}
	if cfg.Port != "9522" {
		t.Errorf("Port = %s, want default 9522", cfg.Port)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %s, want debug", cfg.LogLevel)
	}
	if len(cfg.PlantIDs) != 2 || cfg.PlantIDs[0] != 1234567 || cfg.PlantIDs[1] != 7654321 {
		t.Errorf("PlantIDs = %v, want [1234567 7654321]", cfg.PlantIDs)
	}
}

func TestLoadConfigRequiresToken(t *testing.T) {
	t.Setenv("GROWATT_TOKEN", "")

	if _, err := loadConfig(); err == nil {
		t.Error("loadConfig() expected error for missing token")
	}
}

func TestParsePlantIDs(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []int
		wantErr bool
	}{
		{name: "empty means discover", input: "", want: nil},
		{name: "single", input: "1234567", want: []int{1234567}},
		{name: "multiple with spaces", input: " 1 , 2 ,3", want: []int{1, 2, 3}},
		{name: "empty values skipped", input: "1,,2", want: []int{1, 2}},
		{name: "not a number", input: "1,abc", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parsePlantIDs(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("parsePlantIDs(%q) expected error but got none", tt.input)
				}
				return
			}
			if err != nil {
				t.Errorf("parsePlantIDs(%q) unexpected error: %v", tt.input, err)
				return
			}
			if len(got) != len(tt.want) {
				t.Fatalf("parsePlantIDs(%q) = %v, want %v", tt.input, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("parsePlantIDs(%q)[%d] = %d, want %d", tt.input, i, got[i], tt.want[i])
				}
			}
		})
	}
}

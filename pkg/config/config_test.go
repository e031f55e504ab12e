package config

import (
	"os"
	"testing"
)

func TestLoad(t *testing.T) {
	// Set up test environment variables
	os.Setenv("botToken", "test-token")
	os.Setenv("PORT", "3001")
	os.Setenv("enviroment", "test")
	defer func() {
		os.Unsetenv("botToken")
		os.Unsetenv("PORT")
		os.Unsetenv("enviroment")
	}()

	// Reset global config
	resetForTesting()

	config, err := Load()
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}

	if config.BotToken != "test-token" {
		t.Errorf("BotToken = %v, want %v", config.BotToken, "test-token")
	}

	if config.Port != "3001" {
		t.Errorf("Port = %v, want %v", config.Port, "3001")
	}

	if config.Environment != "test" {
		t.Errorf("Environment = %v, want %v", config.Environment, "test")
	}
}

func TestGetEnv(t *testing.T) {
	os.Setenv("TEST_VAR", "test-value")
	defer os.Unsetenv("TEST_VAR")

	if got := getEnv("TEST_VAR", "default"); got != "test-value" {
		t.Errorf("getEnv() = %v, want %v", got, "test-value")
	}

	if got := getEnv("NON_EXISTENT_VAR", "default"); got != "default" {
		t.Errorf("getEnv() = %v, want %v", got, "default")
	}
}

func TestIsProd(t *testing.T) {
	resetForTesting()
	os.Setenv("enviroment", "prod")
	config, _ := Load()

	if !config.IsProd() {
		t.Error("IsProd() should return true when environment is 'prod'")
	}

	resetForTesting()
	os.Setenv("enviroment", "dev")
	config, _ = Load()

	if config.IsProd() {
		t.Error("IsProd() should return false when environment is not 'prod'")
	}

	os.Unsetenv("enviroment")
}

func TestSplitList(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int
	}{
		{"empty", "", 0},
		{"single", "123", 1},
		{"multiple", "123,456", 2},
		{"spaces and empties", " 123 , ,456, ", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := splitList(tt.input)
			if len(got) != tt.want {
				t.Errorf("splitList(%q) length = %d, want %d", tt.input, len(got), tt.want)
			}
		})
	}
}

func TestIDs(t *testing.T) {
	os.Setenv("modLogChannelId", "111")
	os.Setenv("trustedRoleId", "222")
	os.Setenv("broadcastChannelIds", "333,444")
	defer func() {
		os.Unsetenv("modLogChannelId")
		os.Unsetenv("trustedRoleId")
		os.Unsetenv("broadcastChannelIds")
	}()

	resetForTesting()
	config, _ := Load()
	ids := config.IDs()

	if ids.ModLogChannel != "111" {
		t.Errorf("ModLogChannel = %v, want %v", ids.ModLogChannel, "111")
	}

	if ids.TrustedRole != "222" {
		t.Errorf("TrustedRole = %v, want %v", ids.TrustedRole, "222")
	}

	if len(ids.BroadcastChannels) != 2 {
		t.Fatalf("BroadcastChannels length = %d, want 2", len(ids.BroadcastChannels))
	}
}

func TestGet(t *testing.T) {
	resetForTesting()

	// Get should create a new config if none exists
	config := Get()
	if config == nil {
		t.Fatal("Get() returned nil")
	}

	// Get should return the same config on subsequent calls
	config2 := Get()
	if config != config2 {
		t.Error("Get() should return the same config on subsequent calls")
	}
}

package cfg

import (
	"errors"
	"testing"
	"time"

	"github.com/DRSN-tech/shop-console/pkg/e"
	"github.com/DRSN-tech/shop-console/pkg/logger"
)

func TestLoadShopAPICfgDefaults(t *testing.T) {
	t.Setenv("SHOP_API_BASE", "")
	t.Setenv("SHOP_API_TIMEOUT", "")
	t.Setenv("SHOP_API_LIST_LIMIT", "")

	got, err := loadShopAPICfg(logger.NewNopLogger())
	if err != nil {
		t.Fatalf("loadShopAPICfg returned error: %v", err)
	}

	if got.BaseURL != "http://94.228.120.6:8000" {
		t.Errorf("BaseURL = %q, expected default address", got.BaseURL)
	}
	if got.RequestTimeout != 10*time.Second {
		t.Errorf("RequestTimeout = %v, expected %v", got.RequestTimeout, 10*time.Second)
	}
	if got.ListLimit != 100 {
		t.Errorf("ListLimit = %d, expected 100", got.ListLimit)
	}
}

func TestLoadShopAPICfgOverride(t *testing.T) {
	t.Setenv("SHOP_API_BASE", "https://api.example.com/")
	t.Setenv("SHOP_API_TIMEOUT", "2s")

	got, err := loadShopAPICfg(logger.NewNopLogger())
	if err != nil {
		t.Fatalf("loadShopAPICfg returned error: %v", err)
	}

	if got.BaseURL != "https://api.example.com" {
		t.Errorf("BaseURL = %q, expected trailing slash trimmed", got.BaseURL)
	}
	if got.RequestTimeout != 2*time.Second {
		t.Errorf("RequestTimeout = %v, expected 2s", got.RequestTimeout)
	}
}

func TestParseIntEnv(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		want    int
		wantErr error
	}{
		{name: "unset", value: "", want: 7},
		{name: "valid", value: "42", want: 42},
		{name: "invalid", value: "forty", want: 7, wantErr: e.ErrIncorrectEnvVariable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TEST_INT_ENV", tt.value)

			got, err := parseIntEnv("TEST_INT_ENV", 7)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("err = %v, expected %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("got = %d, expected %d", got, tt.want)
			}
		})
	}
}

func TestLoadKafkaCfgRequiresBrokers(t *testing.T) {
	t.Setenv("KAFKA_BROKERS", "")

	if _, err := loadKafkaCfg(); err == nil {
		t.Error("loadKafkaCfg returned nil error without KAFKA_BROKERS")
	}
}

func TestLoadKafkaCfg(t *testing.T) {
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")
	t.Setenv("KAFKA_TOPIC", "")

	got, err := loadKafkaCfg()
	if err != nil {
		t.Fatalf("loadKafkaCfg returned error: %v", err)
	}
	if len(got.Brokers) != 2 || got.Brokers[1] != "k2:9092" {
		t.Errorf("Brokers = %v, expected two brokers", got.Brokers)
	}
	if got.Topic != "console.audit" {
		t.Errorf("Topic = %q, expected default topic", got.Topic)
	}
}

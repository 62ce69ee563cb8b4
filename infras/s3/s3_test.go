package s3_test

import (
	"testing"

	"houserental/config"
	"houserental/infras/otel/mocks"
	"houserental/infras/s3"

	"github.com/stretchr/testify/assert"
)

func TestGetObjectNameFromURL(t *testing.T) {
	cfg := &config.Config{}
	cfg.External.S3.PublicDomain = "https://cdn.example.com/"
	cfg.External.S3.APIEndpoint = "https://storage.example.com"
	cfg.External.S3.BucketName = "rentals"

	svc := s3.New(cfg, mocks.NewOtel())

	tests := []struct {
		name     string
		url      string
		expected string
	}{
		{
			name:     "public domain url",
			url:      "https://cdn.example.com/receipts/pay-1.json",
			expected: "receipts/pay-1.json",
		},
		{
			name:     "api endpoint url",
			url:      "https://storage.example.com/rentals/receipts/pay-2.json",
			expected: "receipts/pay-2.json",
		},
		{
			name:     "bare public domain",
			url:      "https://cdn.example.com/",
			expected: "",
		},
		{
			name:     "other bucket on the endpoint",
			url:      "https://storage.example.com/archive/receipts/pay-2.json",
			expected: "",
		},
		{
			name:     "foreign url",
			url:      "https://elsewhere.example.com/receipts/pay-3.json",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, svc.GetObjectNameFromURL("", tt.url))
		})
	}
}

func TestGetObjectNameFromURLWithoutPublicDomain(t *testing.T) {
	cfg := &config.Config{}
	cfg.External.S3.APIEndpoint = "https://storage.example.com/"
	cfg.External.S3.BucketName = "rentals"

	svc := s3.New(cfg, mocks.NewOtel())

	assert.Equal(t, "receipts/pay-1.json", svc.GetObjectNameFromURL("", "https://storage.example.com/rentals/receipts/pay-1.json"))
	assert.Equal(t, "pay-1.json", svc.GetObjectNameFromURL("archive", "https://storage.example.com/archive/pay-1.json"))
	assert.Empty(t, svc.GetObjectNameFromURL("", "/receipts/pay-1.json"))
}

package utils

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"time"
)

// ErrInvalidPhoneNumber marks a number the lookup service rejected, as opposed
// to the lookup itself failing.
var ErrInvalidPhoneNumber = fmt.Errorf("enter a valid mobile number")

type numverifyResponse struct {
	Valid    bool   `json:"valid"`
	LineType string `json:"line_type"`
}

// VerifyPhoneNumber checks the number against the numverify API. It returns
// ErrInvalidPhoneNumber for numbers the service rejects and a plain error when
// the service itself is unreachable.
func VerifyPhoneNumber(phoneNumber string) error {
	if phoneNumber == "" {
		return ErrInvalidPhoneNumber
	}

	apiKey := os.Getenv("NUMVERIFY_API_KEY")
	if apiKey == "" {
		return fmt.Errorf("missing NUMVERIFY_API_KEY")
	}

	params := url.Values{}
	params.Set("access_key", apiKey)
	params.Set("number", phoneNumber)

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Get("https://apilayer.net/api/validate?" + params.Encode())
	if err != nil {
		return fmt.Errorf("failed to validate phone number: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("numverify API error: %s", resp.Status)
	}

	var data numverifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return fmt.Errorf("failed to decode numverify response: %v", err)
	}

	if !data.Valid || data.LineType != "mobile" {
		return ErrInvalidPhoneNumber
	}

	return nil
}

package utils

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/rs/zerolog/log"
)

type smsRequest struct {
	Route           string `json:"route"`
	VariablesValues string `json:"variables_values"`
	Numbers         string `json:"numbers"`
}

type smsResponse struct {
	Return  bool   `json:"return"`
	Message string `json:"message"`
}

// SendOTP delivers a one-time code to a phone number over the Fast2SMS
// bulk API.
func SendOTP(phoneNumber, code string) error {
	apiKey := os.Getenv("FAST2SMS_API_KEY")
	if apiKey == "" {
		log.Warn().Msg("missing FAST2SMS_API_KEY")
		return fmt.Errorf("missing required sms config")
	}

	payload := smsRequest{
		Route:           "otp",
		VariablesValues: code,
		Numbers:         phoneNumber,
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequest("POST", "https://www.fast2sms.com/dev/bulkV2", bytes.NewBuffer(jsonData))
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", apiKey)

	client := &http.Client{Timeout: 15 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		log.Error().Err(err).Msg("failed to send otp sms")
		return err
	}
	defer resp.Body.Close()

	var data smsResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return fmt.Errorf("failed to decode sms response: %v", err)
	}

	if resp.StatusCode != http.StatusOK || !data.Return {
		log.Error().Str("status", resp.Status).Str("message", data.Message).Msg("fast2sms API error")
		return fmt.Errorf("fast2sms API error: %s", data.Message)
	}

	return nil
}

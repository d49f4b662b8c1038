package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/mkoval24/printflow/internal/domain"
)

// process-orders — ручной запуск конвейера через HTTP API сервиса.
// Удобен для cron и отладки: код возврата отражает исход прогона.

func main() {
	baseURL := flag.String("url", "http://localhost:8080", "адрес сервиса")
	skipHealth := flag.Bool("skip-health", false, "не проверять /services/health перед запуском")
	timeout := flag.Duration("timeout", 5*time.Minute, "таймаут запроса на запуск")
	flag.Parse()

	client := &http.Client{Timeout: *timeout}

	if !*skipHealth {
		if err := checkServices(client, *baseURL); err != nil {
			fmt.Fprintf(os.Stderr, "services health: %v\n", err)
			os.Exit(1)
		}
	}

	res, statusCode, err := triggerRun(client, *baseURL)
	if err != nil {
		fmt.Fprintf(os.Stderr, "process: %v\n", err)
		os.Exit(1)
	}

	if statusCode == http.StatusConflict {
		fmt.Println("processing already in progress, try again later")
		os.Exit(2)
	}

	fmt.Printf("run %s finished: %s\n", res.RunID, res.Outcome)
	if res.Outcome == domain.OutcomeCompleted {
		fmt.Printf("  orders processed: %d\n", res.OrdersProcessed)
		fmt.Printf("  files found:      %d\n", res.FilesFound)
		fmt.Printf("  files missing:    %d\n", res.FilesMissing)
		fmt.Printf("  emails sent:      %d\n", res.EmailsSent)
	}
	if res.Err != "" {
		fmt.Printf("  error: %s\n", res.Err)
	}
	if !res.Success() {
		os.Exit(1)
	}
}

func checkServices(client *http.Client, baseURL string) error {
	resp, err := client.Get(baseURL + "/services/health")
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var body struct {
		Healthy  bool `json:"healthy"`
		Services []struct {
			Name    string `json:"name"`
			Healthy bool   `json:"healthy"`
			Error   string `json:"error"`
		} `json:"services"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	if !body.Healthy {
		for _, s := range body.Services {
			if !s.Healthy {
				fmt.Fprintf(os.Stderr, "  %s: %s\n", s.Name, s.Error)
			}
		}
		return fmt.Errorf("not all services are healthy")
	}
	return nil
}

func triggerRun(client *http.Client, baseURL string) (domain.RunResult, int, error) {
	resp, err := client.Post(baseURL+"/process", "application/json", http.NoBody)
	if err != nil {
		return domain.RunResult{}, 0, err
	}
	defer resp.Body.Close()

	var body struct {
		Results domain.RunResult `json:"results"`
		Message string           `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return domain.RunResult{}, resp.StatusCode, fmt.Errorf("decode response: %w", err)
	}
	return body.Results, resp.StatusCode, nil
}

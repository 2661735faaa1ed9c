package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"
)

// StartRequest is the payload for starting a session
type StartRequest struct {
	UserID    uint64 `json:"userId"`
	MachineID uint64 `json:"machineId"`
}

// SessionResponse is the subset of the API session payload the script needs
type SessionResponse struct {
	ID            uint64 `json:"id"`
	UserID        uint64 `json:"userId"`
	MachineID     uint64 `json:"machineId"`
	AmountCharged string `json:"amountCharged"`
	Active        bool   `json:"active"`
}

// EndResponse wraps the closed session and its ledger entry
type EndResponse struct {
	Session SessionResponse `json:"session"`
}

// LoginRequest is the admin login payload
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse carries the bearer token for subsequent calls
type LoginResponse struct {
	AccessToken string `json:"accessToken"`
}

// CycleResult contains metrics for one start/end cycle
type CycleResult struct {
	Outcome      string // "billed", "conflict", "rejected", "error"
	ResponseTime time.Duration
	Error        error
}

// CycleStats aggregates results across all workers
type CycleStats struct {
	TotalCycles    int
	Billed         int
	Conflicts      int
	Rejected       int
	Errors         int
	TotalTime      time.Duration
	ResponseTimes  []time.Duration
	ErrorCounts    map[string]int
	MachineCycles  map[uint64]int
	Lock           sync.Mutex
}

func main() {
	concurrency := flag.Int("c", 5, "Number of concurrent goroutines")
	totalCycles := flag.Int("n", 100, "Total number of start/end cycles")
	userIDsStr := flag.String("u", "2,3,4", "Comma-separated user IDs to play as")
	machineIDsStr := flag.String("m", "1,2,3", "Comma-separated machine IDs to contend for")
	baseURL := flag.String("url", "http://localhost:8080", "Base URL for the API")
	username := flag.String("username", "admin", "Admin username")
	password := flag.String("password", "admin12345", "Admin password")
	holdMs := flag.Int("hold", 200, "Milliseconds to hold a session before ending it")
	flag.Parse()

	userIDs := parseIDs(*userIDsStr, 2)
	machineIDs := parseIDs(*machineIDsStr, 1)

	client := &http.Client{Timeout: 10 * time.Second}

	token, err := login(client, *baseURL, *username, *password)
	if err != nil {
		fmt.Printf("Login failed: %v\n", err)
		return
	}

	fmt.Printf("Load testing %d machines with %d users\n", len(machineIDs), len(userIDs))
	fmt.Printf("Concurrency: %d goroutines, %d cycles, %d ms hold time\n",
		*concurrency, *totalCycles, *holdMs)

	stats := &CycleStats{
		TotalCycles:   *totalCycles,
		ErrorCounts:   make(map[string]int),
		ResponseTimes: make([]time.Duration, 0, *totalCycles),
		MachineCycles: make(map[uint64]int),
	}

	results := make(chan CycleResult, *totalCycles)
	jobs := make(chan int, *totalCycles)

	var wg sync.WaitGroup
	for i := 0; i < *concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			worker(client, *baseURL, token, *holdMs, userIDs, machineIDs, jobs, results, stats)
		}()
	}

	go func() {
		for i := 0; i < *totalCycles; i++ {
			jobs <- i
		}
		close(jobs)
	}()

	done := make(chan struct{})
	go func() {
		for result := range results {
			stats.Lock.Lock()
			switch result.Outcome {
			case "billed":
				stats.Billed++
			case "conflict":
				stats.Conflicts++
			case "rejected":
				stats.Rejected++
			default:
				stats.Errors++
				errMsg := "unknown"
				if result.Error != nil {
					errMsg = result.Error.Error()
				}
				stats.ErrorCounts[errMsg]++
			}
			stats.ResponseTimes = append(stats.ResponseTimes, result.ResponseTime)
			stats.Lock.Unlock()
		}
		close(done)
	}()

	startTime := time.Now()
	wg.Wait()
	close(results)
	<-done
	stats.TotalTime = time.Since(startTime)

	printResults(stats)
}

func parseIDs(csv string, fallback uint64) []uint64 {
	var ids []uint64
	for _, raw := range strings.Split(csv, ",") {
		var id uint64
		if _, err := fmt.Sscanf(strings.TrimSpace(raw), "%d", &id); err == nil && id > 0 {
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		ids = []uint64{fallback}
	}
	return ids
}

func login(client *http.Client, baseURL, username, password string) (string, error) {
	body, err := json.Marshal(LoginRequest{Username: username, Password: password})
	if err != nil {
		return "", err
	}

	resp, err := client.Post(baseURL+"/api/auth/login", "application/json", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		payload, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("HTTP status code %d: %s", resp.StatusCode, payload)
	}

	var loginResp LoginResponse
	if err := json.NewDecoder(resp.Body).Decode(&loginResp); err != nil {
		return "", err
	}
	return loginResp.AccessToken, nil
}

func worker(client *http.Client, baseURL, token string, holdMs int,
	userIDs, machineIDs []uint64, jobs <-chan int, results chan<- CycleResult, stats *CycleStats) {

	for range jobs {
		userID := userIDs[rand.Intn(len(userIDs))]
		machineID := machineIDs[rand.Intn(len(machineIDs))]

		stats.Lock.Lock()
		stats.MachineCycles[machineID]++
		stats.Lock.Unlock()

		startedAt := time.Now()
		session, status, err := startSession(client, baseURL, token, userID, machineID)

		if err != nil {
			results <- CycleResult{Outcome: "error", ResponseTime: time.Since(startedAt), Error: err}
			continue
		}

		switch {
		case status == http.StatusConflict:
			// Another worker holds the machine; expected under contention
			results <- CycleResult{Outcome: "conflict", ResponseTime: time.Since(startedAt)}
			continue
		case status == http.StatusBadRequest:
			// User out of funds
			results <- CycleResult{Outcome: "rejected", ResponseTime: time.Since(startedAt)}
			continue
		case status != http.StatusCreated && status != http.StatusOK:
			results <- CycleResult{
				Outcome:      "error",
				ResponseTime: time.Since(startedAt),
				Error:        fmt.Errorf("start: HTTP status code %d", status),
			}
			continue
		}

		if holdMs > 0 {
			time.Sleep(time.Duration(holdMs) * time.Millisecond)
		}

		status, err = endSession(client, baseURL, token, session.ID)
		elapsed := time.Since(startedAt)

		switch {
		case err != nil:
			results <- CycleResult{Outcome: "error", ResponseTime: elapsed, Error: err}
		case status == http.StatusOK:
			results <- CycleResult{Outcome: "billed", ResponseTime: elapsed}
		default:
			results <- CycleResult{
				Outcome:      "error",
				ResponseTime: elapsed,
				Error:        fmt.Errorf("end: HTTP status code %d", status),
			}
		}
	}
}

func startSession(client *http.Client, baseURL, token string, userID, machineID uint64) (*SessionResponse, int, error) {
	body, err := json.Marshal(StartRequest{UserID: userID, MachineID: machineID})
	if err != nil {
		return nil, 0, err
	}

	req, err := http.NewRequest(http.MethodPost, baseURL+"/api/sessions/start", bytes.NewReader(body))
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := client.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return nil, resp.StatusCode, nil
	}

	var session SessionResponse
	if err := json.NewDecoder(resp.Body).Decode(&session); err != nil {
		return nil, resp.StatusCode, err
	}
	return &session, resp.StatusCode, nil
}

func endSession(client *http.Client, baseURL, token string, sessionID uint64) (int, error) {
	url := fmt.Sprintf("%s/api/sessions/%d/end", baseURL, sessionID)
	req, err := http.NewRequest(http.MethodPost, url, nil)
	if err != nil {
		return 0, err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	return resp.StatusCode, nil
}

func printResults(stats *CycleStats) {
	completed := stats.Billed + stats.Conflicts + stats.Rejected + stats.Errors
	cps := float64(stats.Billed) / stats.TotalTime.Seconds()

	var avgResponseTime time.Duration
	var p50, p95, p99 time.Duration
	if len(stats.ResponseTimes) > 0 {
		sorted := make([]time.Duration, len(stats.ResponseTimes))
		copy(sorted, stats.ResponseTimes)
		sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

		var total time.Duration
		for _, rt := range sorted {
			total += rt
		}
		avgResponseTime = total / time.Duration(len(sorted))
		p50 = sorted[len(sorted)*50/100]
		p95 = sorted[len(sorted)*95/100]
		p99 = sorted[len(sorted)*99/100]
	}

	fmt.Println("\n================= TEST RESULTS =================")
	fmt.Printf("Total Cycles:     %d\n", completed)
	fmt.Printf("Billed Sessions:  %d (%.1f%%)\n", stats.Billed,
		float64(stats.Billed)/float64(completed)*100)
	fmt.Printf("Machine Conflicts: %d (%.1f%%)\n", stats.Conflicts,
		float64(stats.Conflicts)/float64(completed)*100)
	fmt.Printf("Balance Rejections: %d (%.1f%%)\n", stats.Rejected,
		float64(stats.Rejected)/float64(completed)*100)
	fmt.Printf("Errors:           %d (%.1f%%)\n", stats.Errors,
		float64(stats.Errors)/float64(completed)*100)
	fmt.Printf("Total Test Time:  %.2f seconds\n", stats.TotalTime.Seconds())

	fmt.Println("\n----------------- PERFORMANCE -----------------")
	fmt.Printf("Billed cycles/sec: %.2f\n", cps)
	fmt.Printf("Average Cycle:     %v\n", avgResponseTime)
	fmt.Printf("P50 Cycle:         %v\n", p50)
	fmt.Printf("P95 Cycle:         %v\n", p95)
	fmt.Printf("P99 Cycle:         %v\n", p99)

	fmt.Println("\n----------------- MACHINE DISTRIBUTION -----------------")
	for machineID, count := range stats.MachineCycles {
		fmt.Printf("Machine %d: %d cycles (%.1f%%)\n", machineID, count,
			float64(count)/float64(completed)*100)
	}

	if stats.Errors > 0 {
		fmt.Println("\n----------------- ERROR DISTRIBUTION -----------------")
		for errMsg, count := range stats.ErrorCounts {
			fmt.Printf("%-40s: %d\n", errMsg, count)
		}
	}
	fmt.Println("================================================")
}

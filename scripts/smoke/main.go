// Command smoke posts a sample grade session against a running API instance
// and reports per-endpoint status and latency. Intended for post-deploy
// verification; exits non-zero when any critical endpoint fails.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"
)

type target struct {
	Method   string
	Path     string
	Body     interface{}
	Critical bool
}

type result struct {
	Target   target
	Status   int
	Duration time.Duration
	Err      error
}

func sampleSession() map[string]interface{} {
	return map[string]interface{}{
		"session": map[string]interface{}{
			"metadata": map[string]interface{}{"scale": 10, "round_to": 2},
			"semesters": []map[string]interface{}{
				{
					"name":  "Semester 1",
					"order": 1,
					"courses": []map[string]interface{}{
						{"code": "CS101", "name": "Programming", "credits": 4, "grade": "A", "grade_point": 9},
						{"code": "MA101", "name": "Calculus", "credits": 3, "grade": "B", "grade_point": 8},
					},
				},
			},
		},
	}
}

func targets() []target {
	session := sampleSession()
	return []target{
		{Method: http.MethodGet, Path: "/health", Critical: true},
		{Method: http.MethodGet, Path: "/api/v1/templates", Critical: true},
		{Method: http.MethodPost, Path: "/api/v1/convert-scale", Critical: true, Body: map[string]interface{}{
			"value": 9.0, "from_scale": 10, "to_scale": 4, "method": "official",
		}},
		{Method: http.MethodPost, Path: "/api/v1/calculator/summary", Critical: true, Body: session},
		{Method: http.MethodPost, Path: "/api/v1/calculator/statistics", Critical: true, Body: session},
		{Method: http.MethodPost, Path: "/api/v1/calculator/target", Critical: true, Body: map[string]interface{}{
			"session": session["session"], "target_cgpa": 9.0, "remaining_credits": 40,
		}},
		{Method: http.MethodPost, Path: "/api/v1/calculator/charts/timeline", Body: session},
		{Method: http.MethodPost, Path: "/api/v1/calculator/charts/distribution", Body: session},
		{Method: http.MethodPost, Path: "/api/v1/calculator/charts/progress", Body: session},
		{Method: http.MethodPost, Path: "/api/v1/export/csv", Body: session},
		{Method: http.MethodPost, Path: "/api/v1/export/pdf", Body: session},
	}
}

func main() {
	var (
		base    string
		timeout time.Duration
	)

	flag.StringVar(&base, "base", "http://localhost:8080", "API base URL")
	flag.DurationVar(&timeout, "timeout", 5*time.Second, "HTTP client timeout")
	flag.Parse()

	client := &http.Client{Timeout: timeout}

	var failures int
	results := make([]result, 0)
	for _, t := range targets() {
		res := run(client, base, t)
		if res.Err != nil || res.Status >= http.StatusBadRequest {
			if t.Critical {
				failures++
			}
		}
		results = append(results, res)
	}

	printReport(results)

	fmt.Printf("Critical failures: %d\n", failures)
	if failures > 0 {
		os.Exit(1)
	}
}

func run(client *http.Client, base string, tgt target) result {
	res := result{Target: tgt}

	var body *bytes.Reader
	if tgt.Body != nil {
		payload, err := json.Marshal(tgt.Body)
		if err != nil {
			res.Err = fmt.Errorf("marshal body: %w", err)
			return res
		}
		body = bytes.NewReader(payload)
	} else {
		body = bytes.NewReader(nil)
	}

	url := strings.TrimRight(base, "/") + tgt.Path
	req, err := http.NewRequest(tgt.Method, url, body)
	if err != nil {
		res.Err = err
		return res
	}
	if tgt.Body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := client.Do(req)
	res.Duration = time.Since(start)
	if err != nil {
		res.Err = err
		return res
	}
	defer resp.Body.Close()

	res.Status = resp.StatusCode
	return res
}

func printReport(results []result) {
	fmt.Println("Smoke Test Report")
	fmt.Println("=================")
	for _, res := range results {
		status := "OK"
		if res.Err != nil {
			status = "ERROR"
		} else if res.Status >= http.StatusBadRequest {
			status = "FAIL"
		}
		fmt.Printf("[%s] %s %s\n", status, res.Target.Method, res.Target.Path)
		if res.Err != nil {
			fmt.Printf("  Error: %v\n", res.Err)
			continue
		}
		fmt.Printf("  Status: %d (%s) | Critical: %t\n", res.Status, res.Duration, res.Target.Critical)
	}
}

package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// seed bulk-creates bookings from a YAML file through the HTTP API.
//
//	seed -file provision/bookings.yml -api http://localhost:4000
//
// The file is either a list of bookings or {bookings: [...]}. Entries without
// name or email are skipped. Exit status 2 means at least one POST failed.
func main() {
	file := flag.String("file", "provision/bookings.yml", "YAML file with bookings")
	api := flag.String("api", getenv("SEED_API", "http://localhost:4000"), "API base URL")
	flag.Parse()

	items, err := loadBookings(*file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to read %s: %v\n", *file, err)
		os.Exit(1)
	}
	if len(items) == 0 {
		fmt.Println("No bookings to create.")
		return
	}

	cli := &http.Client{Timeout: 15 * time.Second}
	base := strings.TrimRight(*api, "/")

	var anyFailed bool
	for _, b := range items {
		if !complete(b) {
			fmt.Fprintf(os.Stderr, "Skipping incomplete entry: %v\n", b)
			continue
		}
		id, err := postBooking(cli, base, b)
		if err != nil {
			anyFailed = true
			fmt.Fprintf(os.Stderr, "Failed to add %v: %v\n", b["name"], err)
			continue
		}
		fmt.Printf("Added %v (%s)\n", b["name"], id)
	}

	if anyFailed {
		os.Exit(2)
	}
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func complete(b map[string]any) bool {
	name, _ := b["name"].(string)
	email, _ := b["email"].(string)
	return strings.TrimSpace(name) != "" && strings.TrimSpace(email) != ""
}

func postBooking(cli *http.Client, base string, b map[string]any) (string, error) {
	data, err := json.Marshal(b)
	if err != nil {
		return "", err
	}
	resp, err := cli.Post(base+"/Hotelbooking", "application/json", bytes.NewReader(data))
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("status=%d body=%s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	var out struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}
	if out.ID == "" {
		return "", errors.New("no id in response")
	}
	return out.ID, nil
}

func loadBookings(path string) ([]map[string]any, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return parseBookings(b)
}

// parseBookings accepts a list or {bookings: [...]}; non-object items are dropped.
func parseBookings(b []byte) ([]map[string]any, error) {
	var data any
	if err := yaml.Unmarshal(b, &data); err != nil {
		return nil, err
	}

	var items []any
	switch v := data.(type) {
	case []any:
		items = v
	case map[string]any:
		if arr, ok := v["bookings"].([]any); ok {
			items = arr
		}
	}

	var out []map[string]any
	for _, it := range items {
		if m, ok := it.(map[string]any); ok {
			delete(m, "id")
			out = append(out, m)
		}
	}
	return out, nil
}

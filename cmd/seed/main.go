// Command seed posts demo orders against a running server so the chef
// dashboard has something to show.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
)

type itemRef struct {
	ID       string `json:"id"`
	Quantity int    `json:"quantity"`
}

type orderRequest struct {
	TableNumber string    `json:"tableNumber"`
	Items       []itemRef `json:"items"`
	Combos      []itemRef `json:"combos"`
	Notes       string    `json:"notes,omitempty"`
}

func main() {
	baseURL := flag.String("url", "", "Base URL of a running server")
	flag.Parse()

	if *baseURL == "" {
		*baseURL = os.Getenv("SEED_URL")
	}
	if *baseURL == "" {
		*baseURL = "http://localhost:3001"
	}

	demo := []orderRequest{
		{
			TableNumber: "B",
			Items:       []itemRef{{ID: "rice-meat", Quantity: 1}, {ID: "coke", Quantity: 1}},
		},
		{
			TableNumber: "C",
			Items:       []itemRef{{ID: "jollof-chicken", Quantity: 2}},
			Combos:      []itemRef{{ID: "combo-4", Quantity: 1}},
			Notes:       "extra spicy",
		},
		{
			TableNumber: "A",
			Combos:      []itemRef{{ID: "combo-1", Quantity: 1}},
		},
	}

	for _, req := range demo {
		body, err := json.Marshal(req)
		if err != nil {
			log.Fatalf("marshal order: %v", err)
		}

		resp, err := http.Post(*baseURL+"/api/order", "application/json", bytes.NewReader(body))
		if err != nil {
			log.Fatalf("post order for table %s: %v", req.TableNumber, err)
		}

		var result map[string]interface{}
		if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
			log.Fatalf("decode response: %v", err)
		}
		resp.Body.Close()

		if resp.StatusCode != http.StatusCreated {
			log.Fatalf("order for table %s rejected (%d): %v", req.TableNumber, resp.StatusCode, result["error"])
		}
		fmt.Printf("seeded order %v for table %s (total %v)\n", result["orderId"], req.TableNumber, result["total"])
	}
}

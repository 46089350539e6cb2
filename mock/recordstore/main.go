// Command recordstore serves a PostgREST-shaped partners table for local
// development against the Supabase record source.
package main

import (
	_ "embed"
	"encoding/json"
	"log"
	"math/rand/v2"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

//go:embed data.json
var jsonData []byte

func main() {
	var rows []map[string]any
	if err := json.Unmarshal(jsonData, &rows); err != nil {
		log.Fatalf("[recordstore] invalid seed data: %v", err)
	}

	apiKey := os.Getenv("MOCK_API_KEY")
	addr := os.Getenv("MOCK_ADDR")
	if addr == "" {
		addr = ":8081"
	}

	app := fiber.New(fiber.Config{
		AppName:      "mock-recordstore",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	})
	app.Use(logger.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "healthy"})
	})

	app.Get("/rest/v1/:table", func(c *fiber.Ctx) error {
		if apiKey != "" && c.Get("apikey") != apiKey {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Invalid API key"})
		}
		if c.Params("table") != "partners" {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "relation does not exist"})
		}

		// simulated network latency, 50-200ms
		time.Sleep(time.Duration(50+rand.IntN(150)) * time.Millisecond)

		out := project(rows, c.Query("select", "*"))
		if limit, err := strconv.Atoi(c.Query("limit")); err == nil && limit >= 0 && limit < len(out) {
			out = out[:limit]
		}

		return c.JSON(out)
	})

	log.Printf("[recordstore] serving %d rows on %s", len(rows), addr)
	log.Fatal(app.Listen(addr))
}

// project keeps only the comma-separated columns of a PostgREST select.
func project(rows []map[string]any, selectParam string) []map[string]any {
	if selectParam == "*" {
		return rows
	}

	columns := strings.Split(selectParam, ",")
	out := make([]map[string]any, len(rows))
	for i, row := range rows {
		picked := make(map[string]any, len(columns))
		for _, col := range columns {
			col = strings.TrimSpace(col)
			if v, ok := row[col]; ok {
				picked[col] = v
			}
		}
		out[i] = picked
	}

	return out
}

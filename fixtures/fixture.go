package fixtures

import (
	"io"
	"net/http"
	"strings"
)

const FlagsPath = "/v1/flags/"

const DelaySimulationJson = `
{
	"id": "delay_simulation",
	"enabled": true,
	"name": "Simulate delays in broker service",
	"description": "When enabled, the broker service will introduce artificial delays to simulate network latency.",
	"updated_at": "2024-05-01T10:00:00Z"
}
`

const TimeoutErrorJson = `
{
	"key": "timeout_error",
	"enabled": false,
	"updated_at": "2024-05-01 10:00:00"
}
`

const MissingEnabledJson = `
{
	"id": "large_payload",
	"name": "Create large payload response"
}
`

const FlagsFileJson = `
[
	{"id": "delay_simulation", "enabled": true, "updated_at": "2024-05-01T10:00:00Z"},
	{"key": "timeout_error", "enabled": false},
	{"id": "large_payload", "name": "no enabled field"}
]
`

// FlagServiceHandler serves the records above the way the flag service does.
// Unknown keys get a 404.
func FlagServiceHandler(rw http.ResponseWriter, req *http.Request) {
	if !strings.HasPrefix(req.URL.Path, FlagsPath) {
		panic("Wrong path")
	}
	if req.Method != http.MethodGet {
		panic("Wrong method")
	}

	var body string
	switch strings.TrimPrefix(req.URL.Path, FlagsPath) {
	case "delay_simulation":
		body = DelaySimulationJson
	case "timeout_error":
		body = TimeoutErrorJson
	case "large_payload":
		body = MissingEnabledJson
	default:
		rw.WriteHeader(http.StatusNotFound)
		return
	}

	rw.Header().Set("Content-Type", "application/json")
	rw.WriteHeader(http.StatusOK)
	_, err := io.WriteString(rw, body)
	if err != nil {
		panic(err)
	}
}

package httpapi

import (
	"net/http"
	"time"

	httpopenapi "github.com/fairyhunter13/vending-machine-simulator/internal/http/openapi"
)

func (a *App) healthHandler(w http.ResponseWriter, r *http.Request) {
	status := "ok"
	if a.closing.Load() {
		status = "shutting_down"
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": status})
}

func (a *App) metricsHandler(w http.ResponseWriter, r *http.Request) {
	enq, proc, backlog, depth := a.Manager.QueueMetrics()
	seq, _ := a.Store.Sequence()
	a.mu.Lock()
	commands := make(map[string]uint64, len(a.commands))
	for op, n := range a.commands {
		commands[string(op)] = n
	}
	failures := make(map[string]uint64, len(a.failures))
	for cat, n := range a.failures {
		failures[string(cat)] = n
	}
	a.mu.Unlock()
	m := map[string]any{
		"commands_enqueued":  enq,
		"commands_processed": proc,
		"backlog_size":       backlog,
		"queue_depth":        depth,
		"worker_count":       a.Manager.WorkerCount(),
		"message_sequence":   seq,
		"commands":           commands,
		"failures":           failures,
		"uptime_sec":         time.Since(a.started).Seconds(),
	}
	writeJSON(w, http.StatusOK, m)
}

func (a *App) openapiHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/yaml")
	_, _ = w.Write(httpopenapi.YAML)
}

const docsHTML = `<!doctype html>
<html>
  <head>
    <meta charset="utf-8" />
    <title>Vending Machine API</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css" />
  </head>
  <body>
    <div id="swagger-ui"></div>
    <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
    <script>
      window.ui = SwaggerUIBundle({ url: '/openapi.yaml', dom_id: '#swagger-ui' });
    </script>
  </body>
</html>`

func (a *App) docsHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(docsHTML))
}

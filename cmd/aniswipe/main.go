package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

func main() {
	baseURL := flag.String("server", envOr("ASW_SERVER_URL", "http://127.0.0.1:8080"), "URL du serveur (ex: http://127.0.0.1:8080)")
	timeout := flag.Duration("timeout", 10*time.Second, "Timeout HTTP")
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "Usage: aniswipe [health|version|session|liked|upload <fichier.xml>|like|dislike]")
		os.Exit(2)
	}

	client := &http.Client{Timeout: *timeout}

	switch args[0] {
	case "health":
		get(client, *baseURL+"/api/v1/health")
	case "version":
		get(client, *baseURL+"/api/v1/version")
	case "session":
		get(client, *baseURL+"/api/v1/session")
	case "liked":
		get(client, *baseURL+"/api/v1/liked")
	case "upload":
		if len(args) < 2 {
			fmt.Fprintln(os.Stderr, "Usage: aniswipe upload <fichier.xml>")
			os.Exit(2)
		}
		upload(client, *baseURL+"/api/v1/lists", args[1])
	case "like":
		decide(client, *baseURL+"/api/v1/session/decision", "liked")
	case "dislike":
		decide(client, *baseURL+"/api/v1/session/decision", "disliked")
	default:
		fmt.Fprintln(os.Stderr, "Commande inconnue:", args[0])
		os.Exit(2)
	}
}

func get(client *http.Client, url string) {
	resp, err := client.Get(url)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Erreur:", err)
		os.Exit(1)
	}
	show(resp)
}

func upload(client *http.Client, url, path string) {
	raw, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Erreur:", err)
		os.Exit(1)
	}
	resp, err := client.Post(url, "application/xml", bytes.NewReader(raw))
	if err != nil {
		fmt.Fprintln(os.Stderr, "Erreur:", err)
		os.Exit(1)
	}
	show(resp)
}

func decide(client *http.Client, url, decision string) {
	body := []byte(`{"decision":"` + decision + `"}`)
	resp, err := client.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		fmt.Fprintln(os.Stderr, "Erreur:", err)
		os.Exit(1)
	}
	show(resp)
}

func show(resp *http.Response) {
	defer resp.Body.Close()

	b, _ := io.ReadAll(resp.Body)
	var pretty any
	if err := json.Unmarshal(b, &pretty); err == nil {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(pretty)
		if resp.StatusCode >= 400 {
			os.Exit(1)
		}
		return
	}

	os.Stdout.Write(b)
	os.Stdout.Write([]byte("\n"))
	if resp.StatusCode >= 400 {
		os.Exit(1)
	}
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

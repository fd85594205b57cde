package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"verdant/internal/api"
	"verdant/internal/netsec"
	"verdant/internal/session"
)

func main() {
	_ = godotenv.Load()

	backend := flag.String("backend", "", "backend base URL (defaults to BACKEND_URL)")
	caFile := flag.String("ca", "", "PEM bundle trusted for TLS (defaults to CHAT_CA_FILE)")
	insecure := flag.Bool("insecure", false, "skip TLS verification (or CHAT_INSECURE_TLS=1)")
	flag.Parse()

	base := strings.TrimSpace(*backend)
	if base == "" {
		base = strings.TrimSpace(os.Getenv("BACKEND_URL"))
	}
	if base == "" {
		fmt.Println("backend URL required: set BACKEND_URL or pass -backend")
		os.Exit(1)
	}
	if !*insecure && os.Getenv("CHAT_INSECURE_TLS") == "1" {
		*insecure = true
	}
	if strings.TrimSpace(*caFile) == "" {
		*caFile = os.Getenv("CHAT_CA_FILE")
	}

	tlsConf, err := netsec.ClientTLSConfig(*caFile, *insecure)
	if err != nil {
		fmt.Printf("tls configuration failed: %v\n", err)
		os.Exit(1)
	}
	client, err := api.NewClient(base, tlsConf)
	if err != nil {
		fmt.Printf("client setup failed: %v\n", err)
		os.Exit(1)
	}

	m := newModel(client, session.NewStore(), tlsConf)
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("tui failed: %v\n", err)
		os.Exit(1)
	}
}

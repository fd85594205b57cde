package main

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"verdant/internal/api"
	"verdant/internal/netsec"
	"verdant/internal/realtime"
	"verdant/internal/timefmt"
)

func main() {
	_ = godotenv.Load()

	backend := flag.String("backend", "", "backend base URL (defaults to BACKEND_URL)")
	email := flag.String("email", "", "login email")
	password := flag.String("password", "", "login password")
	list := flag.Bool("list", false, "list conversations and exit")
	search := flag.String("search", "", "search the user directory and exit")
	to := flag.String("to", "", "receiver user id for -msg")
	msg := flag.String("msg", "", "send one message and exit")
	watch := flag.Bool("watch", false, "print pushed events until interrupted")
	caFile := flag.String("ca", "", "PEM bundle trusted for TLS")
	insecure := flag.Bool("insecure", false, "skip TLS verification")
	flag.Parse()

	base := strings.TrimSpace(*backend)
	if base == "" {
		base = strings.TrimSpace(os.Getenv("BACKEND_URL"))
	}
	if base == "" {
		log.Fatal("backend URL required: set BACKEND_URL or pass -backend")
	}
	if strings.TrimSpace(*email) == "" || *password == "" {
		log.Fatal("-email and -password are required")
	}

	tlsConf, err := netsec.ClientTLSConfig(*caFile, *insecure)
	if err != nil {
		log.Fatalf("tls configuration failed: %v", err)
	}
	client, err := api.NewClient(base, tlsConf)
	if err != nil {
		log.Fatalf("client setup failed: %v", err)
	}

	ctx := context.Background()
	creds, err := client.Login(ctx, *email, *password)
	if err != nil {
		log.Fatalf("login failed: %v", err)
	}
	fmt.Printf("logged in as %s\n", creds.User.Name)

	switch {
	case *list:
		convos, err := client.Conversations(ctx, creds.AccessToken)
		if err != nil {
			log.Fatalf("conversations fetch failed: %v", err)
		}
		if len(convos) == 0 {
			fmt.Println("no conversations")
			return
		}
		now := time.Now()
		for _, conv := range convos {
			preview := "No messages yet"
			stamp := ""
			if len(conv.Messages) > 0 {
				preview = conv.Messages[0].Content
				stamp = timefmt.MessageTime(conv.Messages[0].CreatedAt, now)
			}
			fmt.Printf("%s  %s  %s  %s\n", conv.ID, conv.OtherUser.Name, preview, stamp)
		}

	case strings.TrimSpace(*search) != "":
		users, err := client.SearchUsers(ctx, creds.AccessToken, *search)
		if err != nil {
			log.Fatalf("search failed: %v", err)
		}
		if len(users) == 0 {
			fmt.Println("no users found")
			return
		}
		for _, user := range users {
			fmt.Printf("%s  %s\n", user.ID, user.Name)
		}

	case strings.TrimSpace(*msg) != "":
		if strings.TrimSpace(*to) == "" {
			log.Fatal("-to is required with -msg")
		}
		sent, err := client.SendMessage(ctx, creds.AccessToken, *msg, *to)
		if err != nil {
			log.Fatalf("send failed: %v", err)
		}
		fmt.Printf("sent %s at %s\n", sent.ID, timefmt.Clock(sent.CreatedAt))

	case *watch:
		watchEvents(client, creds, tlsConf)

	default:
		log.Fatal("nothing to do: pass -list, -search, -msg or -watch")
	}
}

func watchEvents(client *api.Client, creds api.Credentials, tlsConf *tls.Config) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	ch, err := realtime.Dial(ctx, client.WebsocketURL(), creds.User.ID, tlsConf)
	if err != nil {
		log.Fatalf("event channel connect failed: %v", err)
	}
	defer ch.Close()

	msgHandle := ch.On(realtime.EventMessage, func(data json.RawMessage) {
		var m api.Message
		if err := json.Unmarshal(data, &m); err != nil {
			return
		}
		fmt.Printf("%s [%s -> %s] %s\n", timefmt.Clock(m.CreatedAt), m.SenderID, m.ReceiverID, m.Content)
	})
	defer ch.Off(realtime.EventMessage, msgHandle)

	goneHandle := ch.On(realtime.EventUserDisconnected, func(data json.RawMessage) {
		var d realtime.Disconnect
		if err := json.Unmarshal(data, &d); err != nil {
			return
		}
		fmt.Printf("user %s went offline, last seen %s\n", d.UserID, timefmt.Clock(d.LastActive))
	})
	defer ch.Off(realtime.EventUserDisconnected, goneHandle)

	fmt.Println("watching events, ctrl+c to stop")
	select {
	case <-ctx.Done():
	case <-ch.Done():
		if err := ch.Err(); err != nil {
			fmt.Printf("event channel closed: %v\n", err)
		}
	}
}

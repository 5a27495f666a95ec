package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/zhouzirui/flight-insights/backend/internal/widget"
	"github.com/zhouzirui/flight-insights/backend/pkg/insights"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)

	if err := godotenv.Load(); err != nil {
		log.Printf("[WARN] .env not loaded, using system environment: %v", err)
	}

	defaultServer := os.Getenv("INSIGHTS_SERVER_URL")
	if defaultServer == "" {
		defaultServer = "http://localhost:8080"
	}

	server := flag.String("server", defaultServer, "insights server base URL or full /insights URL")
	guard := flag.Bool("guard", false, "disable input while a request is pending")
	width := flag.Int("width", 80, "terminal width used to right-align your messages")
	noColor := flag.Bool("no-color", false, "disable colored output")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := insights.NewClient(*server, nil)
	opts := []widget.Option{widget.WithView(widget.NewTerminalView(os.Stdout, *width, *noColor))}
	if *guard {
		opts = append(opts, widget.WithInFlightGuard())
	}
	w := widget.New(client, opts...)

	fmt.Printf("Connected to %s\n", client.Endpoint())
	fmt.Println("Ask about flight bookings. Type 'exit' to quit.")
	fmt.Println()

	// Replies arrive in the background, so a new question can be typed while
	// one is still pending unless -guard is set.
	var pending sync.WaitGroup
	defer pending.Wait()

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}

		line := scanner.Text()
		switch strings.TrimSpace(line) {
		case "exit", "quit":
			return
		}

		if w.Input().Disabled() {
			fmt.Println("waiting for the previous answer, input ignored")
			continue
		}

		w.Input().Set(line)
		if done := w.SubmitAsync(ctx); done != nil {
			pending.Add(1)
			go func() {
				defer pending.Done()
				<-done
			}()
		}

		if ctx.Err() != nil {
			return
		}
	}

	if err := scanner.Err(); err != nil {
		log.Fatalf("read input: %v", err)
	}
}

package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/dvloznov/sms-tracker/internal/config"
	"github.com/dvloznov/sms-tracker/internal/feed"
	"github.com/dvloznov/sms-tracker/internal/feed/inmemory"
	"github.com/dvloznov/sms-tracker/internal/logger"
	"github.com/dvloznov/sms-tracker/internal/smsparser"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	log := logger.New(cfg.LogLevel)

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "parse":
		runParse(log)
	case "batch":
		runBatch(log, cfg)
	case "stats":
		runStats(log)
	case "watch":
		runWatch(log, cfg)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("SMS Transaction Parser CLI")
	fmt.Println("\nUsage:")
	fmt.Println("  smsparse <command> [options]")
	fmt.Println("\nCommands:")
	fmt.Println("  parse     Parse a single SMS given on the command line")
	fmt.Println("  batch     Parse a JSONL file of exported messages")
	fmt.Println("  stats     Aggregate totals over a JSONL file of messages")
	fmt.Println("  watch     Parse a JSONL stream of messages from stdin")
	fmt.Println("  help      Show this help message")
	fmt.Println("\nRun 'smsparse <command> -h' for more information on a command.")
}

// inputMessage is one line of an exported inbox: the {body, address, date}
// tuple a device SMS reader produces, with date in epoch milliseconds.
type inputMessage struct {
	ID      string `json:"id,omitempty"`
	Body    string `json:"body"`
	Address string `json:"address"`
	Date    int64  `json:"date"`
}

func (m inputMessage) raw() feed.RawMessage {
	var ts time.Time
	if m.Date != 0 {
		ts = time.UnixMilli(m.Date)
	}
	return feed.RawMessage{
		ID:         m.ID,
		Body:       m.Body,
		Address:    m.Address,
		ReceivedAt: ts,
	}
}

func runParse(log zerolog.Logger) {
	fs := flag.NewFlagSet("parse", flag.ExitOnError)
	body := fs.String("body", "", "SMS body text")
	sender := fs.String("sender", "", "Sender id or short code")
	ts := fs.Int64("ts", 0, "Receive time as epoch milliseconds (defaults to now)")
	fs.Parse(os.Args[2:])

	if *body == "" {
		log.Fatal().Msg("Error: --body is required")
	}

	var receivedAt time.Time
	if *ts != 0 {
		receivedAt = time.UnixMilli(*ts)
	}

	tx, err := smsparser.Parse(*body, *sender, receivedAt)
	if err != nil {
		log.Fatal().Err(err).Msg("Parse failed")
	}

	printJSON(tx)
}

func runBatch(log zerolog.Logger, cfg *config.Config) {
	fs := flag.NewFlagSet("batch", flag.ExitOnError)
	file := fs.String("file", "", "Path to a JSONL file of messages")
	all := fs.Bool("all", false, "Include non-transactional messages")
	fs.Parse(os.Args[2:])

	if *file == "" {
		log.Fatal().Msg("Error: --file is required")
	}

	msgs, err := readMessages(*file)
	if err != nil {
		log.Fatal().Err(err).Str("file", *file).Msg("Reading messages failed")
	}

	ctx := logger.WithContext(context.Background(), log)

	store := inmemory.NewStore()
	queue := inmemory.NewQueue(cfg.QueueSize, cfg.Workers, store)

	var mu sync.Mutex
	var txs []*smsparser.ParsedTransaction
	sink := func(ctx context.Context, tx *smsparser.ParsedTransaction) error {
		mu.Lock()
		defer mu.Unlock()
		txs = append(txs, tx)
		return nil
	}

	handler := feed.ParseHandler(log, sink)
	if *all {
		handler = allMessagesHandler(sink)
	}

	if err := queue.Start(ctx, handler); err != nil {
		log.Fatal().Err(err).Msg("Starting parse workers failed")
	}

	for _, msg := range msgs {
		if err := queue.Publish(ctx, &feed.ParseJob{Message: msg}); err != nil {
			log.Fatal().Err(err).Msg("Publishing message failed")
		}
	}

	if err := drain(ctx, store); err != nil {
		log.Fatal().Err(err).Msg("Waiting for parse jobs failed")
	}

	stopCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := queue.Stop(stopCtx); err != nil {
		log.Fatal().Err(err).Msg("Stopping queue failed")
	}

	sort.SliceStable(txs, func(i, j int) bool {
		return txs[i].Timestamp.After(txs[j].Timestamp)
	})

	printJSON(txs)
}

// allMessagesHandler parses every message, with no transactional pre-filter.
func allMessagesHandler(sink feed.Sink) feed.Handler {
	return func(ctx context.Context, job *feed.ParseJob) error {
		msg := job.Message
		tx, err := smsparser.Parse(msg.Body, msg.Address, msg.ReceivedAt)
		if err != nil {
			return err
		}
		if msg.ID != "" {
			tx.ID = msg.ID
		}
		job.Result = tx
		return sink(ctx, tx)
	}
}

func runStats(log zerolog.Logger) {
	fs := flag.NewFlagSet("stats", flag.ExitOnError)
	file := fs.String("file", "", "Path to a JSONL file of messages")
	fs.Parse(os.Args[2:])

	if *file == "" {
		log.Fatal().Msg("Error: --file is required")
	}

	msgs, err := readMessages(*file)
	if err != nil {
		log.Fatal().Err(err).Str("file", *file).Msg("Reading messages failed")
	}

	txs := feed.ParseBatch(msgs)
	stats := smsparser.ComputeStats(txs)

	log.Info().
		Str("in", smsparser.FormatMoney(&stats.TotalIn)).
		Str("out", smsparser.FormatMoney(&stats.TotalOut)).
		Str("cashback", smsparser.FormatMoney(&stats.TotalCashback)).
		Int("count", stats.Count).
		Msg("Aggregated messages")

	printJSON(stats)
}

func runWatch(log zerolog.Logger, cfg *config.Config) {
	fs := flag.NewFlagSet("watch", flag.ExitOnError)
	fs.Parse(os.Args[2:])

	ctx := logger.WithContext(context.Background(), log)

	store := inmemory.NewStore()
	queue := inmemory.NewQueue(cfg.QueueSize, cfg.Workers, store)

	enc := json.NewEncoder(os.Stdout)
	var mu sync.Mutex
	sink := func(ctx context.Context, tx *smsparser.ParsedTransaction) error {
		mu.Lock()
		defer mu.Unlock()
		return enc.Encode(tx)
	}

	if err := queue.Start(ctx, feed.ParseHandler(log, sink)); err != nil {
		log.Fatal().Err(err).Msg("Starting parse workers failed")
	}

	log.Info().Int("workers", cfg.Workers).Msg("Watching stdin for messages")

	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var msg inputMessage
		if err := json.Unmarshal(line, &msg); err != nil {
			log.Warn().Err(err).Msg("Skipping malformed input line")
			continue
		}
		if err := queue.Publish(ctx, &feed.ParseJob{Message: msg.raw()}); err != nil {
			log.Fatal().Err(err).Msg("Publishing message failed")
		}
	}
	if err := scanner.Err(); err != nil {
		log.Fatal().Err(err).Msg("Reading stdin failed")
	}

	if err := drain(ctx, store); err != nil {
		log.Fatal().Err(err).Msg("Waiting for parse jobs failed")
	}

	stopCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := queue.Stop(stopCtx); err != nil {
		log.Fatal().Err(err).Msg("Stopping queue failed")
	}
}

// readMessages loads a JSONL export: one {id, body, address, date} object
// per line, blank lines ignored.
func readMessages(path string) ([]feed.RawMessage, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var msgs []feed.RawMessage
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var msg inputMessage
		if err := json.Unmarshal(line, &msg); err != nil {
			return nil, fmt.Errorf("line %d: %w", len(msgs)+1, err)
		}
		msgs = append(msgs, msg.raw())
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return msgs, nil
}

// drain waits until the store has no unfinished jobs.
func drain(ctx context.Context, store feed.JobStore) error {
	for {
		busy := 0
		for _, st := range []feed.JobStatus{feed.JobStatusPending, feed.JobStatusRunning, feed.JobStatusRetrying} {
			jobs, err := store.ListJobs(ctx, feed.JobFilter{Status: st})
			if err != nil {
				return err
			}
			busy += len(jobs)
		}
		if busy == 0 {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(50 * time.Millisecond):
		}
	}
}

func printJSON(v interface{}) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		fmt.Fprintf(os.Stderr, "encoding output: %v\n", err)
		os.Exit(1)
	}
}

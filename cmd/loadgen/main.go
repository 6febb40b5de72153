// Command loadgen pipelines NEW commands against a running matchd
// instance and reports ACK round-trip latency percentiles, the
// regression guard for spec.md §8's performance smoke test. Grounded on
// luxfi-dex/backend/cmd/stress-test/main.go's percentile computation
// and terminal report style.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"math/rand"
	"net"
	"os"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

func main() {
	addr := flag.String("addr", "127.0.0.1:8080", "matchd TCP address")
	count := flag.Int("count", 10000, "number of NEW commands to send")
	minPrice := flag.Float64("min-price", 49.00, "lower bound of the randomized price range")
	maxPrice := flag.Float64("max-price", 51.00, "upper bound of the randomized price range")
	minQty := flag.Int("min-qty", 1, "lower bound of the randomized quantity range")
	maxQty := flag.Int("max-qty", 100, "upper bound of the randomized quantity range")
	seed := flag.Int64("seed", 1, "PRNG seed, for reproducible runs")
	flag.Parse()

	fmt.Println("matchd load generator")
	fmt.Println(strings.Repeat("=", 40))
	fmt.Printf("Target:   %s\n", *addr)
	fmt.Printf("Commands: %d\n", *count)
	fmt.Println(strings.Repeat("=", 40))

	conn, err := net.Dial("tcp", *addr)
	if err != nil {
		fmt.Fprintln(os.Stderr, "loadgen: dial failed:", err)
		os.Exit(1)
	}
	defer conn.Close()

	rng := rand.New(rand.NewSource(*seed))

	var (
		mu        sync.Mutex
		latencies = make([]time.Duration, 0, *count)
		acked     atomic.Int64
	)

	sentAt := make([]time.Time, *count)
	var sentMu sync.Mutex

	go func() {
		reader := bufio.NewReader(conn)
		for {
			line, err := reader.ReadString('\n')
			if err != nil {
				return
			}
			if !strings.HasPrefix(line, "ACK ") {
				continue
			}
			n := acked.Add(1)
			if n > int64(*count) {
				continue
			}
			idx := n - 1
			sentMu.Lock()
			at := sentAt[idx]
			sentMu.Unlock()
			latency := time.Since(at)
			mu.Lock()
			latencies = append(latencies, latency)
			mu.Unlock()
		}
	}()

	writer := bufio.NewWriter(conn)
	start := time.Now()
	for i := 0; i < *count; i++ {
		side := "BUY"
		if rng.Intn(2) == 1 {
			side = "SELL"
		}
		qty := *minQty + rng.Intn(*maxQty-*minQty+1)
		price := *minPrice + rng.Float64()*(*maxPrice-*minPrice)

		sentMu.Lock()
		sentAt[i] = time.Now()
		sentMu.Unlock()
		fmt.Fprintf(writer, "NEW %s %d @ %.2f\n", side, qty, price)
		if err := writer.Flush(); err != nil {
			fmt.Fprintln(os.Stderr, "loadgen: write failed:", err)
			break
		}
	}
	elapsed := time.Since(start)

	// Give the reader goroutine a moment to catch straggling ACKs.
	time.Sleep(200 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	printReport(elapsed, *count, latencies)
}

func printReport(elapsed time.Duration, sent int, latencies []time.Duration) {
	fmt.Println()
	fmt.Println(strings.Repeat("=", 40))
	fmt.Println("RESULTS")
	fmt.Println(strings.Repeat("=", 40))
	fmt.Printf("Sent:       %d\n", sent)
	fmt.Printf("ACKed:      %d\n", len(latencies))
	fmt.Printf("Elapsed:    %v\n", elapsed)
	fmt.Printf("Throughput: %.0f cmds/sec\n", float64(sent)/elapsed.Seconds())

	if len(latencies) == 0 {
		fmt.Println(strings.Repeat("=", 40))
		return
	}

	sort.Slice(latencies, func(i, j int) bool { return latencies[i] < latencies[j] })
	p50 := latencies[len(latencies)*50/100]
	p95 := latencies[len(latencies)*95/100]
	p99 := latencies[len(latencies)*99/100]

	fmt.Println("\nACK round-trip latency:")
	fmt.Printf("  p50: %v\n", p50)
	fmt.Printf("  p95: %v\n", p95)
	fmt.Printf("  p99: %v\n", p99)
	fmt.Println(strings.Repeat("=", 40))

	if p50 < 500*time.Microsecond {
		fmt.Println("p50 under 500µs: smoke test passes")
	} else {
		fmt.Println("p50 at or above 500µs: smoke test regression")
	}
}

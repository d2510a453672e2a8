package perftests

import (
	"fmt"
	"math/rand"
	"sort"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"auction-room/internal/biddingerrors"
	"auction-room/internal/decoder"
	"auction-room/internal/dispatcher"
	repository "auction-room/internal/repository"
	"auction-room/internal/session"

	"github.com/shopspring/decimal"
)

// LoadScenario defines configurable benchmark parameters
type LoadScenario struct {
	Name            string
	NumUsers        int
	Watchers        int // connections that only receive broadcasts
	ChatRatio       int // out of 10 operations
	MaxBidIncrement int
}

// OperationMetrics collects latencies safely
type OperationMetrics struct {
	mu        sync.Mutex
	latencies []time.Duration
}

func (om *OperationMetrics) Record(d time.Duration) {
	om.mu.Lock()
	om.latencies = append(om.latencies, d)
	om.mu.Unlock()
}

func (om *OperationMetrics) Stats() (min, max, avg, p95, p99 time.Duration) {
	om.mu.Lock()
	latencies := append([]time.Duration(nil), om.latencies...)
	om.mu.Unlock()
	if len(latencies) == 0 {
		return
	}
	sort.Slice(latencies, func(i, j int) bool { return latencies[i] < latencies[j] })

	min = latencies[0]
	max = latencies[len(latencies)-1]

	var total time.Duration
	for _, d := range latencies {
		total += d
	}
	avg = total / time.Duration(len(latencies))
	p95 = latencies[int(0.95*float64(len(latencies)))]
	p99 = latencies[int(0.99*float64(len(latencies)))]
	return
}

// setupRoom creates a room with joined bidders and passive watchers
func setupRoom(b *testing.B, s LoadScenario) (*session.Session, func()) {
	d := dispatcher.New(8192, nil)
	stop := drainClients(b, d, s.Watchers)

	repo := repository.NewMemoryRepo()
	room := session.New(repo, repo, d, session.Options{BidDuration: time.Hour, HistoryLimit: 50})
	for i := 0; i < s.NumUsers; i++ {
		id := fmt.Sprintf("user_%d", i)
		if err := room.Handle(id, decoder.Command{Kind: decoder.SetUsername, Username: id}); err != nil {
			b.Fatalf("failed to join %s: %v", id, err)
		}
	}
	return room, stop
}

// Benchmark_Load_AuctionRoom runs multiple scenarios
func Benchmark_Load_AuctionRoom(b *testing.B) {
	scenarios := []LoadScenario{
		{"Few-Bidders-BidHeavy", 10, 10, 0, 50},
		{"Many-Bidders-BidHeavy", 500, 50, 0, 5},
		{"Mixed-Chat-And-Bids", 200, 100, 7, 20},
		{"Large-Audience", 50, 1000, 5, 10},
	}

	for _, s := range scenarios {
		b.Run(s.Name, func(b *testing.B) {
			runParallelScenario(b, s)
		})
	}
}

func runParallelScenario(b *testing.B, s LoadScenario) {
	b.ReportAllocs()

	room, stop := setupRoom(b, s)
	defer stop()

	var totalOps, acceptedBids, rejectedBids, chats int64
	var ceiling int64
	metrics := &OperationMetrics{}

	start := time.Now()
	b.ResetTimer()

	b.RunParallel(func(pb *testing.PB) {
		rnd := rand.New(rand.NewSource(time.Now().UnixNano()))

		for pb.Next() {
			connID := fmt.Sprintf("user_%d", rnd.Intn(s.NumUsers))

			opStart := time.Now()
			if rnd.Intn(10) < s.ChatRatio {
				if err := room.Handle(connID, decoder.Command{Kind: decoder.Chat, Text: "hello"}); err != nil {
					b.Errorf("chat rejected: %v", err)
				}
				atomic.AddInt64(&chats, 1)
			} else {
				next := atomic.AddInt64(&ceiling, int64(rnd.Intn(s.MaxBidIncrement)+1))
				amount := decimal.NewFromInt(next)
				err := room.Handle(connID, decoder.Command{Kind: decoder.Bid, Text: "bid " + amount.String(), Amount: amount})
				switch {
				case err == nil:
					atomic.AddInt64(&acceptedBids, 1)
				case biddingerrors.Kind(err) == biddingerrors.KindBidRejected:
					atomic.AddInt64(&rejectedBids, 1)
				default:
					b.Errorf("unexpected bid error: %v", err)
				}
			}
			metrics.Record(time.Since(opStart))
			atomic.AddInt64(&totalOps, 1)
		}
	})

	elapsed := time.Since(start)
	b.StopTimer()

	minL, maxL, avgL, p95L, p99L := metrics.Stats()
	b.ReportMetric(float64(totalOps)/elapsed.Seconds(), "ops/s")
	b.ReportMetric(float64(p99L.Microseconds()), "p99_us")
	b.Logf("[%s] ops=%d accepted=%d rejected=%d chats=%d latency min=%v avg=%v p95=%v p99=%v max=%v",
		s.Name, totalOps, acceptedBids, rejectedBids, chats, minL, avgL, p95L, p99L, maxL)

	if highest, ok := room.HighestBid(); ok && acceptedBids > 0 && highest.Amount.IntPart() > atomic.LoadInt64(&ceiling) {
		b.Fatalf("highest bid %s above issued ceiling %d", highest.Amount, ceiling)
	}
}

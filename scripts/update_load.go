package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand/v2"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	grpcadapter "task-tracker/internal/adapters/input/grpc"
)

type stats struct {
	sent     uint64
	ok       uint64
	errCount uint64
	pushes   uint64
	errCodes map[codes.Code]uint64
	mu       sync.Mutex
}

func main() {
	addr := flag.String("addr", "127.0.0.1:50051", "gRPC address")
	taskID := flag.String("task", "", "task id to update")
	workers := flag.Int("workers", 2, "number of concurrent workers")
	count := flag.Int("count", 2, "total requests (ignored if -forever)")
	forever := flag.Bool("forever", false, "run until interrupted")
	delay := flag.Duration("delay", 0, "delay between requests per worker (e.g. 10ms)")
	logEvery := flag.Int("log-every", 100, "log every N successes")
	verbose := flag.Bool("verbose", false, "log every request")
	watch := flag.Bool("watch", true, "subscribe to WatchDashboard and count pushes")
	checkDB := flag.Bool("check-db", false, "poll the postgres slot for updated_at changes")
	slotKey := flag.String("key", "konig_tasks_v1", "slot key polled by -check-db")
	poll := flag.Duration("poll", time.Second, "db poll interval (e.g. 200ms)")
	flag.Parse()

	if *taskID == "" {
		fmt.Println("usage: go run ./scripts/update_load.go --task <id> [--workers 2] [--count 100|--forever] [--delay 0ms] [--log-every 100] [--watch] [--check-db --key konig_tasks_v1] [--poll 1s]")
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt)
	go func() {
		<-sig
		cancel()
	}()

	conn, err := grpc.NewClient(*addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		fmt.Printf("grpc dial failed: %v\n", err)
		os.Exit(1)
	}
	defer conn.Close()

	client := grpcadapter.NewClient(conn)

	var st stats
	st.errCodes = make(map[codes.Code]uint64)

	watchCtx, stopWatch := context.WithCancel(ctx)
	watchDone := make(chan struct{})
	if *watch {
		go func() {
			defer close(watchDone)
			watchDashboard(watchCtx, client, &st)
		}()
	} else {
		close(watchDone)
	}

	var watcher *dbWatcher
	if *checkDB {
		watcher, err = startDBWatcher(ctx, *slotKey, *poll)
		if err != nil {
			fmt.Printf("db watcher failed: %v\n", err)
			os.Exit(1)
		}
	}

	run := func(id int) {
		for {
			if !*forever {
				n := atomic.AddUint64(&st.sent, 1)
				if n > uint64(*count) {
					return
				}
			} else {
				atomic.AddUint64(&st.sent, 1)
			}

			req, _ := structpb.NewStruct(map[string]any{
				"id":       *taskID,
				"progress": rand.IntN(101),
			})
			if err := client.UpdateTask(ctx, req); err != nil {
				code := status.Code(err)
				atomic.AddUint64(&st.errCount, 1)
				st.mu.Lock()
				st.errCodes[code]++
				st.mu.Unlock()
				fmt.Printf("[W%d] error code=%s msg=%s\n", id, code.String(), err.Error())
			} else {
				n := atomic.AddUint64(&st.ok, 1)
				if *verbose || (n%uint64(*logEvery) == 0) {
					fmt.Printf("[W%d] ok\n", id)
				}
			}

			if *delay > 0 {
				select {
				case <-time.After(*delay):
				case <-ctx.Done():
					return
				}
			}

			select {
			case <-ctx.Done():
				return
			default:
			}
		}
	}

	var wg sync.WaitGroup
	for i := 0; i < *workers; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			run(id + 1)
		}(i)
	}
	wg.Wait()

	// let the last pushes arrive
	time.Sleep(200 * time.Millisecond)
	stopWatch()
	<-watchDone

	if watcher != nil {
		watcher.Stop()
	}

	sent := atomic.LoadUint64(&st.sent)
	if !*forever {
		sent = min(sent, uint64(*count))
	}
	st.mu.Lock()
	fmt.Printf("summary sent=%d ok=%d errors=%d pushes=%d error_codes=%v\n",
		sent, st.ok, st.errCount, atomic.LoadUint64(&st.pushes), st.errCodes)
	st.mu.Unlock()
}

func watchDashboard(ctx context.Context, client *grpcadapter.Client, st *stats) {
	stream, err := client.WatchDashboard(ctx, &structpb.Struct{})
	if err != nil {
		fmt.Printf("watch failed: %v\n", err)
		return
	}
	for {
		d, err := stream.Recv()
		if err != nil {
			if status.Code(err) != codes.Canceled {
				fmt.Printf("watch stopped: %v\n", err)
			}
			return
		}
		atomic.AddUint64(&st.pushes, 1)
		metrics := d.GetFields()["metrics"].GetStructValue().GetFields()
		fmt.Printf("watch push total=%.0f completed=%.0f overdue=%.0f\n",
			metrics["total"].GetNumberValue(),
			metrics["completed"].GetNumberValue(),
			metrics["overdue"].GetNumberValue(),
		)
	}
}

type dbWatcher struct {
	pool          *pgxpool.Pool
	key           string
	lastUpdatedAt time.Time
	updateCount   int
	cancel        context.CancelFunc
	done          chan struct{}
}

func startDBWatcher(ctx context.Context, key string, poll time.Duration) (*dbWatcher, error) {
	pool, err := pgxpool.New(ctx, buildDSN())
	if err != nil {
		return nil, err
	}

	wctx, cancel := context.WithCancel(ctx)
	w := &dbWatcher{
		pool:   pool,
		key:    key,
		cancel: cancel,
		done:   make(chan struct{}),
	}

	go w.loop(wctx, poll)
	return w, nil
}

func (w *dbWatcher) loop(ctx context.Context, poll time.Duration) {
	ticker := time.NewTicker(poll)
	defer ticker.Stop()
	defer close(w.done)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			var updatedAt time.Time
			err := w.pool.QueryRow(ctx, `SELECT updated_at FROM kv_slots WHERE key = $1`, w.key).Scan(&updatedAt)
			if err != nil {
				continue
			}
			if !w.lastUpdatedAt.IsZero() && updatedAt.After(w.lastUpdatedAt) {
				w.updateCount++
				fmt.Printf("db-watch change: updated_at changed (prev=%s now=%s)\n", w.lastUpdatedAt.UTC().Format(time.RFC3339Nano), updatedAt.UTC().Format(time.RFC3339Nano))
			}
			w.lastUpdatedAt = updatedAt
		}
	}
}

func (w *dbWatcher) Stop() {
	w.cancel()
	<-w.done
	w.pool.Close()
	fmt.Printf("db-watch summary key=%s updated_at=%s updates=%d\n",
		w.key,
		w.lastUpdatedAt.UTC().Format(time.RFC3339Nano),
		w.updateCount,
	)
}

func buildDSN() string {
	db := getEnv("POSTGRES_DB", "task_tracker")
	user := getEnv("POSTGRES_USER", "task_tracker")
	pass := getEnv("POSTGRES_PASSWORD", "task_tracker")
	host := getEnv("POSTGRES_HOST", "localhost")
	port := getEnv("POSTGRES_PORT", "5432")
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", user, pass, host, port, db)
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
